package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/timberintel/timberintel/internal/clean"
	"github.com/timberintel/timberintel/internal/store"
)

// RecordQuery binds the shared query parameters of the record
// endpoints.
type RecordQuery struct {
	Start   string `form:"start"`
	End     string `form:"end"`
	HS      string `form:"hs"`
	Origins string `form:"origins"`
	Dests   string `form:"dests"`
	Species string `form:"species"`
	Unit    string `form:"unit"`

	// MinPrice overrides the default unit-price floor; -1 keeps it.
	MinPrice float64 `form:"min_price,default=-1"`

	// StrictWoodType drops records whose description contradicts the
	// declared HS chapter.
	StrictWoodType bool `form:"strict_wood_type"`
}

// Filter converts the bound dates and country lists into a store
// filter. HS codes stay out of it: they are matched by prefix after the
// read.
func (q RecordQuery) Filter() (store.Filter, error) {
	f := store.Filter{
		Origins: SplitCSV(q.Origins),
		Dests:   SplitCSV(q.Dests),
	}
	var err error
	if q.Start != "" {
		f.StartDate, err = time.Parse("2006-01-02", q.Start)
		if err != nil {
			return f, fmt.Errorf("start: %w", err)
		}
	}
	if q.End != "" {
		f.EndDate, err = time.Parse("2006-01-02", q.End)
		if err != nil {
			return f, fmt.Errorf("end: %w", err)
		}
	}
	return f, nil
}

// CleanOptions converts the bound parameters into cleaning options.
func (q RecordQuery) CleanOptions() clean.Options {
	opts := clean.Options{
		HSPrefixes:      SplitCSV(q.HS),
		Species:         SplitCSV(q.Species),
		TargetUnit:      q.Unit,
		EnforceWoodType: q.StrictWoodType,
	}
	if q.MinPrice >= 0 {
		opts.MinUnitPrice = q.MinPrice
	} else {
		opts.MinUnitPrice = clean.DefaultMinUnitPrice
	}
	return opts
}

// SplitCSV splits a comma-separated query value, dropping empties.
func SplitCSV(s string) []string {
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
