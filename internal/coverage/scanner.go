// Package coverage reports per-day record density from the local store,
// the pre-download check that tells the operator which date ranges are
// already ingested. It reads the database, never the remote API.
package coverage

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/timberintel/timberintel/internal/catalog"
	"github.com/timberintel/timberintel/internal/clean"
	"github.com/timberintel/timberintel/internal/store"
)

// ScanPolicy names the degradation thresholds applied to scans that
// would otherwise time out. Keeping them in one struct makes the
// degradation rule a testable, swappable policy instead of an inline
// conditional.
type ScanPolicy struct {
	// DefaultRowLimit caps how many rows a scan samples.
	DefaultRowLimit int

	// HeavyRowLimit replaces DefaultRowLimit when the scan targets a
	// high-volume origin, where sorting a full sample times out.
	HeavyRowLimit int

	// HeavyOrigins are the origin codes whose partitions are known to be
	// too large for full sampling. Species text filtering is also skipped
	// for them, trading completeness for bounded latency.
	HeavyOrigins []string
}

// DefaultScanPolicy matches observed database behavior: India's
// partition is the one that cannot sustain the full sample.
func DefaultScanPolicy() ScanPolicy {
	return ScanPolicy{
		DefaultRowLimit: 100000,
		HeavyRowLimit:   15000,
		HeavyOrigins:    []string{"IND"},
	}
}

func (p ScanPolicy) isHeavy(origins []string) bool {
	for _, o := range origins {
		for _, h := range p.HeavyOrigins {
			if o == h {
				return true
			}
		}
	}
	return false
}

// Request describes one coverage scan.
type Request struct {
	HSCodes   []string
	StartDate time.Time
	EndDate   time.Time
	Origins   []string
	Dests     []string
	// Species restricts counting to records classifying to these labels.
	// Skipped under the heavy-origin policy.
	Species []string
}

// DayCount is one day's record count.
type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Result is a day-bucketed coverage series. An empty Days slice is a
// valid outcome: the range simply holds no data. Degraded is set when
// the policy reduced the sample or skipped text filtering, with Notice
// explaining what was traded away.
type Result struct {
	Days     []DayCount `json:"days"`
	Total    int        `json:"total"`
	Degraded bool       `json:"degraded"`
	Notice   string     `json:"notice,omitempty"`
}

// Scanner runs coverage scans under a degradation policy.
type Scanner struct {
	repo   store.RecordRepository
	policy ScanPolicy
	logger *slog.Logger
}

// NewScanner builds a scanner with the given policy.
func NewScanner(repo store.RecordRepository, policy ScanPolicy, logger *slog.Logger) *Scanner {
	return &Scanner{
		repo:   repo,
		policy: policy,
		logger: logger.With("component", "coverage"),
	}
}

// Scan samples matching rows and buckets them per day. HS matching is
// prefix-based and applied client-side after the bulk read; the store
// is not assumed to index prefixes.
func (s *Scanner) Scan(ctx context.Context, req Request) (*Result, error) {
	result := &Result{}

	needsText := len(req.Species) > 0
	limit := s.policy.DefaultRowLimit
	if s.policy.isHeavy(req.Origins) {
		limit = s.policy.HeavyRowLimit
		result.Degraded = true
		result.Notice = "high-volume origin: row sample reduced"
		if needsText {
			needsText = false
			result.Notice = "high-volume origin: row sample reduced, species filter skipped"
		}
		s.logger.Warn("degraded scan", "limit", limit, "origins", req.Origins)
	}

	rows, err := s.repo.CoverageRows(ctx, store.Filter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Origins:   req.Origins,
		Dests:     req.Dests,
	}, limit, needsText)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]int)
	for _, row := range rows {
		if len(req.HSCodes) > 0 && !catalog.MatchesAny(row.HSCode, req.HSCodes) {
			continue
		}
		if needsText && !speciesMatch(row.ProductDescText, req.Species) {
			continue
		}
		day := row.TransactionDate.Truncate(24 * time.Hour)
		byDay[day]++
		result.Total++
	}

	result.Days = make([]DayCount, 0, len(byDay))
	for day, count := range byDay {
		result.Days = append(result.Days, DayCount{Date: day, Count: count})
	}
	sort.Slice(result.Days, func(i, j int) bool {
		return result.Days[i].Date.Before(result.Days[j].Date)
	})

	s.logger.Info("coverage scan complete",
		"sampled", len(rows), "matched", result.Total, "days", len(result.Days), "degraded", result.Degraded)
	return result, nil
}

func speciesMatch(desc string, want []string) bool {
	label := clean.ClassifySpecies(desc)
	for _, w := range want {
		if w == label {
			return true
		}
	}
	return false
}
