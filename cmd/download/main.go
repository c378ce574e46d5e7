package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/timberintel/timberintel/configs"
	"github.com/timberintel/timberintel/internal/catalog"
	"github.com/timberintel/timberintel/internal/extract"
	"github.com/timberintel/timberintel/internal/store"
	"github.com/timberintel/timberintel/internal/tendata"
)

func main() {
	var (
		category   string
		hsCodes    string
		directions string
		startDate  string
		endDate    string
		origins    string
		dests      string
		region     string
		species    string
		startPage  int
		checkOnly  bool
	)

	flag.StringVar(&category, "category", "", "Product category, e.g. \"Softwood Lumber\", \"Hardwood Logs\", \"Wood Chips\", \"Wood Pulp\", \"Plywood\" (expands to its HS codes)")
	flag.StringVar(&hsCodes, "hs", "", "Comma-separated HS codes (overrides -category)")
	flag.StringVar(&directions, "direction", "imports", "Comma-separated directions: imports, exports")
	flag.StringVar(&startDate, "start", "", "Range start date, YYYY-MM-DD (required)")
	flag.StringVar(&endDate, "end", "", "Range end date, YYYY-MM-DD (required)")
	flag.StringVar(&origins, "origins", "", "Comma-separated origin country codes")
	flag.StringVar(&dests, "dests", "", "Comma-separated destination country codes")
	flag.StringVar(&region, "region", "", "Destination region group: asia, europe, africa, oceania, north-america, south-america, central-america")
	flag.StringVar(&species, "species", "", "Comma-separated species labels; derives the server-side search keyword")
	flag.IntVar(&startPage, "start-page", 1, "Resume an interrupted run from this page of the first chunk")
	flag.BoolVar(&checkOnly, "check", false, "Check result volumes per task without downloading")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	req, tasks, err := buildRequest(category, hsCodes, directions, startDate, endDate, origins, dests, region, species, startPage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}
	req.Tasks = tasks

	cfg := configs.AppLoad()
	if cfg.Tendata.APIKey == "" {
		logger.Error("TENDATA_API_KEY is not set")
		os.Exit(1)
	}

	client := tendata.NewClient(cfg.Tendata.BaseURL, cfg.Tendata.APIKey, logger)

	// Graceful shutdown: a signal cancels the run; completed pages stay
	// saved and -start-page resumes the rest.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if checkOnly {
		runVolumeCheck(ctx, client, req, logger)
		return
	}

	db, err := store.Open(cfg.DBDSN)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	repo := store.NewGormRecordRepository(db)

	extractor := extract.NewExtractor(client, repo, logger, extract.Config{
		ChunkDays: cfg.Extract.ChunkDays,
		PageSize:  cfg.Extract.PageSize,
		PageRate:  rate.Limit(cfg.Extract.PagesPerSecond),
	})
	extractor.Progress = func(taskIndex int, fraction float64) {
		logger.Info("task progress", "task", taskIndex, "fraction", fmt.Sprintf("%.2f", fraction))
	}

	stats, err := extractor.Run(ctx, *req)
	if err != nil {
		logger.Error("Batch run aborted", "error", err)
	}
	printJSON(stats)
	if len(stats.Failures) > 0 {
		os.Exit(2)
	}
}

// buildRequest validates and expands the CLI parameters into an
// extraction request plus its HS-code × direction task grid.
func buildRequest(category, hsCodes, directions, startDate, endDate, origins, dests, region, species string, startPage int) (*extract.Request, []extract.Task, error) {
	codes := splitCSV(hsCodes)
	if len(codes) == 0 && category != "" {
		codes = catalog.CategoryCodes(category)
		if len(codes) == 0 {
			return nil, nil, fmt.Errorf("unknown category %q", category)
		}
	}
	if len(codes) == 0 {
		return nil, nil, fmt.Errorf("one of -hs or -category is required")
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, nil, fmt.Errorf("-start: %w", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, nil, fmt.Errorf("-end: %w", err)
	}
	if end.Before(start) {
		return nil, nil, fmt.Errorf("-end precedes -start")
	}

	var dirs []tendata.Direction
	for _, d := range splitCSV(directions) {
		switch strings.ToLower(d) {
		case "imports":
			dirs = append(dirs, tendata.Imports)
		case "exports":
			dirs = append(dirs, tendata.Exports)
		default:
			return nil, nil, fmt.Errorf("unknown direction %q", d)
		}
	}
	if len(dirs) == 0 {
		return nil, nil, fmt.Errorf("-direction is required")
	}

	destCodes := splitCSV(dests)
	if region != "" {
		group, ok := catalog.RegionGroups[region]
		if !ok {
			return nil, nil, fmt.Errorf("unknown region %q", region)
		}
		destCodes = append(destCodes, group...)
	}

	tasks := make([]extract.Task, 0, len(codes)*len(dirs))
	for _, code := range codes {
		for _, dir := range dirs {
			tasks = append(tasks, extract.Task{HSCode: code, Direction: dir})
		}
	}

	return &extract.Request{
		StartDate: start,
		EndDate:   end,
		Origins:   splitCSV(origins),
		Dests:     destCodes,
		Keyword:   extract.KeywordForSpecies(splitCSV(species)),
		StartPage: startPage,
	}, tasks, nil
}

func runVolumeCheck(ctx context.Context, client *tendata.Client, req *extract.Request, logger *slog.Logger) {
	extractor := extract.NewExtractor(client, nil, logger, extract.Config{})
	checks := extractor.CheckVolume(ctx, *req)
	printJSON(checks)

	if info, err := client.AccountInfo(ctx); err == nil {
		logger.Info("account", "balance", info.Balance, "expires", info.ExpiresIn)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
