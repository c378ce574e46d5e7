package extract

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/timberintel/timberintel/internal/catalog"
	"github.com/timberintel/timberintel/internal/store"
	"github.com/timberintel/timberintel/internal/tendata"
)

// PageFetcher is the remote-API surface the extractor depends on.
type PageFetcher interface {
	FetchPage(ctx context.Context, q tendata.Query) (tendata.Page, error)
	QueryCount(ctx context.Context, q tendata.Query) (int64, error)
}

// Config tunes one extractor.
type Config struct {
	// ChunkDays is the fixed day span of each date window. It bounds the
	// cost of a single remote query and is not derived from data volume.
	ChunkDays int

	// PageSize for full pulls; defaults to tendata.DefaultPageSize.
	PageSize int

	// PageRate is the allowed page-fetch rate, respecting the source-side
	// rate limit. Defaults to ~3 pages/second (the 0.3s spacing the
	// provider tolerates).
	PageRate rate.Limit
}

// Task is one HS-code × direction unit of a batch run.
type Task struct {
	HSCode    string
	Direction tendata.Direction
}

// Request describes a batch extraction.
type Request struct {
	Tasks     []Task
	StartDate time.Time
	EndDate   time.Time
	Origins   []string
	Dests     []string
	// Keyword restricts results server-side; see KeywordForSpecies.
	Keyword string
	// StartPage resumes a previously interrupted run inside its first
	// chunk. It applies to every task, so resumed runs should carry a
	// single task.
	StartPage int
}

// Failure records one failed page or chunk. It carries the source error
// code and message so the operator can triage without rerunning.
type Failure struct {
	HSCode    string            `json:"hs_code"`
	Direction tendata.Direction `json:"direction"`
	Chunk     DateChunk         `json:"chunk"`
	Page      int               `json:"page"`
	Code      string            `json:"code"`
	Msg       string            `json:"msg"`
}

// RunStats is the aggregate outcome of a batch run. A run completes even
// when individual tasks fail; Failures carries the per-item detail.
type RunStats struct {
	RunID     string        `json:"run_id"`
	RowsSeen  int64         `json:"rows_seen"`
	RowsSaved int64         `json:"rows_saved"`
	Pages     int           `json:"pages"`
	Failures  []Failure     `json:"failures"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

// VolumeCheck is one cell of the pre-download volume-check grid.
type VolumeCheck struct {
	HSCode    string            `json:"hs_code"`
	Direction tendata.Direction `json:"direction"`
	Count     int64             `json:"count"`
	Err       string            `json:"err,omitempty"`
}

// Extractor runs chunked, paginated extractions against the remote API
// and upserts results into the store. Single-writer: one extraction at a
// time, pages fetched sequentially.
type Extractor struct {
	fetcher PageFetcher
	repo    store.RecordRepository
	limiter *rate.Limiter
	logger  *slog.Logger
	cfg     Config

	// Progress, when set, receives a monotonically increasing fraction of
	// elapsed days per task as chunks complete.
	Progress func(taskIndex int, fraction float64)
}

// NewExtractor wires an extractor from its dependencies.
func NewExtractor(fetcher PageFetcher, repo store.RecordRepository, logger *slog.Logger, cfg Config) *Extractor {
	if cfg.ChunkDays <= 0 {
		cfg.ChunkDays = 7
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = tendata.DefaultPageSize
	}
	if cfg.PageRate <= 0 {
		cfg.PageRate = rate.Limit(3)
	}
	return &Extractor{
		fetcher: fetcher,
		repo:    repo,
		limiter: rate.NewLimiter(cfg.PageRate, 1),
		logger:  logger.With("component", "extractor"),
		cfg:     cfg,
	}
}

// Run executes the batch. A failed page marks its chunk failed and the
// run moves on; only context cancellation stops the whole batch.
func (e *Extractor) Run(ctx context.Context, req Request) (*RunStats, error) {
	stats := &RunStats{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	logger := e.logger.With("run_id", stats.RunID)
	logger.Info("starting batch extraction",
		"tasks", len(req.Tasks),
		"start", req.StartDate.Format("2006-01-02"),
		"end", req.EndDate.Format("2006-01-02"))

	chunks := DateChunks(req.StartDate, req.EndDate, e.cfg.ChunkDays)
	totalDays := 0
	for _, c := range chunks {
		totalDays += c.Days()
	}

	for ti, task := range req.Tasks {
		elapsedDays := 0
		for ci, chunk := range chunks {
			startPage := 1
			if ci == 0 && req.StartPage > 1 {
				startPage = req.StartPage
				logger.Info("resuming from page", "hs_code", task.HSCode, "page", startPage)
			}
			if err := e.runChunk(ctx, req, task, chunk, startPage, stats, logger); err != nil {
				return stats, err
			}
			elapsedDays += chunk.Days()
			if e.Progress != nil && totalDays > 0 {
				e.Progress(ti, float64(elapsedDays)/float64(totalDays))
			}
		}
	}

	stats.Elapsed = time.Since(stats.StartedAt)
	logger.Info("batch extraction finished",
		"rows_saved", stats.RowsSaved,
		"rows_seen", stats.RowsSeen,
		"pages", stats.Pages,
		"failures", len(stats.Failures),
		"elapsed", stats.Elapsed)
	return stats, nil
}

// runChunk walks pages for one task × chunk until a short page signals
// the end of results.
func (e *Extractor) runChunk(ctx context.Context, req Request, task Task, chunk DateChunk, startPage int, stats *RunStats, logger *slog.Logger) error {
	for page := startPage; ; page++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}

		result, err := e.fetcher.FetchPage(ctx, tendata.Query{
			HSCode:    task.HSCode,
			Direction: task.Direction,
			StartDate: chunk.Start,
			EndDate:   chunk.End,
			Origins:   req.Origins,
			Dests:     req.Dests,
			Keyword:   req.Keyword,
			PageNo:    page,
			PageSize:  e.cfg.PageSize,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			stats.Failures = append(stats.Failures, newFailure(task, chunk, page, err))
			logger.Error("page fetch failed",
				"hs_code", task.HSCode, "direction", task.Direction,
				"page", page, "error", err)
			return nil
		}

		stats.Pages++
		stats.RowsSeen += int64(result.RawCount)

		records := make([]store.TradeRecord, 0, len(result.Items))
		for _, raw := range result.Items {
			if rec, ok := store.FromRaw(raw); ok {
				records = append(records, rec)
			}
		}
		saved, err := e.repo.UpsertRecords(ctx, records)
		if err != nil {
			stats.Failures = append(stats.Failures, newFailure(task, chunk, page, err))
			logger.Error("upsert failed", "hs_code", task.HSCode, "page", page, "error", err)
			return nil
		}
		stats.RowsSaved += saved

		logger.Info("page saved",
			"hs_code", task.HSCode, "direction", task.Direction,
			"chunk_start", chunk.Start.Format("2006-01-02"),
			"page", page, "fetched", result.RawCount, "saved", saved)

		if result.RawCount < e.cfg.PageSize {
			return nil
		}
	}
}

// CheckVolume reads the API-reported result total for every task
// without downloading data, the cheap pre-flight before a batch run.
func (e *Extractor) CheckVolume(ctx context.Context, req Request) []VolumeCheck {
	checks := make([]VolumeCheck, 0, len(req.Tasks))
	for _, task := range req.Tasks {
		count, err := e.fetcher.QueryCount(ctx, tendata.Query{
			HSCode:    task.HSCode,
			Direction: task.Direction,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Origins:   req.Origins,
			Dests:     req.Dests,
			Keyword:   req.Keyword,
		})
		check := VolumeCheck{HSCode: task.HSCode, Direction: task.Direction, Count: count}
		if err != nil {
			check.Err = err.Error()
		}
		checks = append(checks, check)
	}
	return checks
}

func newFailure(task Task, chunk DateChunk, page int, err error) Failure {
	f := Failure{
		HSCode:    task.HSCode,
		Direction: task.Direction,
		Chunk:     chunk,
		Page:      page,
		Msg:       err.Error(),
	}
	var apiErr *tendata.APIError
	if errors.As(err, &apiErr) {
		f.Code = apiErr.Code
		f.Msg = apiErr.Msg
	}
	return f
}

// KeywordForSpecies derives the server-side search keyword for a set of
// species labels: the first (strongest) keyword of each label, space
// joined. The API treats multiple terms as AND, so multi-species
// keywords are best used for volume checks one species at a time.
func KeywordForSpecies(labels []string) string {
	var kws []string
	for _, label := range labels {
		for _, entry := range catalog.SpeciesKeywords {
			if entry.Label == label && len(entry.Keywords) > 0 {
				kws = append(kws, entry.Keywords[0])
				break
			}
		}
	}
	if len(kws) == 0 {
		return ""
	}
	out := kws[0]
	for _, k := range kws[1:] {
		out += " " + k
	}
	return out
}
