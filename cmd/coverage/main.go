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

	"github.com/timberintel/timberintel/configs"
	"github.com/timberintel/timberintel/internal/catalog"
	"github.com/timberintel/timberintel/internal/coverage"
	"github.com/timberintel/timberintel/internal/store"
)

func main() {
	var (
		category  string
		hsCodes   string
		startDate string
		endDate   string
		origins   string
		dests     string
		species   string
	)

	flag.StringVar(&category, "category", "", "Product category, e.g. \"Softwood Lumber\", \"Hardwood Logs\", \"Wood Chips\", \"Wood Pulp\", \"Plywood\"")
	flag.StringVar(&hsCodes, "hs", "", "Comma-separated HS codes (overrides -category)")
	flag.StringVar(&startDate, "start", "", "Range start date, YYYY-MM-DD (required)")
	flag.StringVar(&endDate, "end", "", "Range end date, YYYY-MM-DD (required)")
	flag.StringVar(&origins, "origins", "", "Comma-separated origin country codes")
	flag.StringVar(&dests, "dests", "", "Comma-separated destination country codes")
	flag.StringVar(&species, "species", "", "Comma-separated species labels to count")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -start: %v\n", err)
		os.Exit(1)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -end: %v\n", err)
		os.Exit(1)
	}

	codes := splitCSV(hsCodes)
	if len(codes) == 0 && category != "" {
		codes = catalog.CategoryCodes(category)
		if len(codes) == 0 {
			fmt.Fprintf(os.Stderr, "Error: unknown category %q\n", category)
			os.Exit(1)
		}
	}

	cfg := configs.AppLoad()
	db, err := store.Open(cfg.DBDSN)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	repo := store.NewGormRecordRepository(db)

	scanner := coverage.NewScanner(repo, coverage.ScanPolicy{
		DefaultRowLimit: cfg.Scan.RowLimit,
		HeavyRowLimit:   cfg.Scan.HeavyRowLimit,
		HeavyOrigins:    cfg.Scan.HeavyOrigins,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := scanner.Scan(ctx, coverage.Request{
		HSCodes:   codes,
		StartDate: start,
		EndDate:   end,
		Origins:   splitCSV(origins),
		Dests:     splitCSV(dests),
		Species:   splitCSV(species),
	})
	if err != nil {
		logger.Error("Coverage scan failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
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
