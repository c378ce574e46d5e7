package extract

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/timberintel/timberintel/internal/store"
)

// cursorRepo serves CursorPage from an in-memory id-sorted set.
type cursorRepo struct {
	fakeRepo
	ids   []string
	calls int
}

func newCursorRepo(n int) *cursorRepo {
	r := &cursorRepo{}
	for i := 0; i < n; i++ {
		r.ids = append(r.ids, fmt.Sprintf("REC-%04d", i))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(r.ids)))
	return r
}

func (r *cursorRepo) CursorPage(ctx context.Context, q store.CursorQuery) ([]store.TradeRecord, error) {
	r.calls++
	var page []store.TradeRecord
	for _, id := range r.ids {
		if q.AfterID != "" && id >= q.AfterID {
			continue
		}
		page = append(page, store.TradeRecord{UniqueRecordID: id})
		if len(page) == q.Limit {
			break
		}
	}
	return page, nil
}

func TestLoaderWalksCursorToEnd(t *testing.T) {
	repo := newCursorRepo(12)
	loader := NewLoader(repo, testLogger(), 5)

	result, err := loader.Load(context.Background(), store.Filter{}, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(result.Records) != 12 {
		t.Errorf("Expected 12 records, got %d", len(result.Records))
	}
	// Two full pages plus the short final page.
	if repo.calls != 3 {
		t.Errorf("Expected 3 cursor pages, got %d", repo.calls)
	}
	if result.LastID != "REC-0000" {
		t.Errorf("Expected final watermark 'REC-0000', got %q", result.LastID)
	}
}

func TestLoaderResumesFromWatermark(t *testing.T) {
	repo := newCursorRepo(10)
	loader := NewLoader(repo, testLogger(), 5)

	result, err := loader.Load(context.Background(), store.Filter{}, "REC-0004")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Only ids strictly below the watermark come back.
	if len(result.Records) != 4 {
		t.Errorf("Expected 4 records below watermark, got %d", len(result.Records))
	}
	for _, rec := range result.Records {
		if rec.UniqueRecordID >= "REC-0004" {
			t.Errorf("Record %q should be below the watermark", rec.UniqueRecordID)
		}
	}
}

func TestLoaderEmptyStore(t *testing.T) {
	repo := newCursorRepo(0)
	loader := NewLoader(repo, testLogger(), 5)

	result, err := loader.Load(context.Background(), store.Filter{}, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("Expected no records, got %d", len(result.Records))
	}
	if result.LastID != "" {
		t.Errorf("Expected empty watermark, got %q", result.LastID)
	}
}
