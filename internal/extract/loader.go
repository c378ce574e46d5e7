package extract

import (
	"context"
	"log/slog"

	"github.com/timberintel/timberintel/internal/store"
)

// DefaultLoadBatch is the id-cursor page size for local bulk reads.
const DefaultLoadBatch = 5000

// LoadResult is the outcome of a cursor-mode bulk read.
type LoadResult struct {
	Records []store.TradeRecord
	// LastID is the cursor watermark after the final page. An interrupted
	// load can resume exactly from here without re-reading or skipping.
	LastID string
}

// Loader reads record sets out of the store with id-cursor pagination.
type Loader struct {
	repo   store.RecordRepository
	logger *slog.Logger
	batch  int
}

// NewLoader builds a loader; batch <= 0 uses DefaultLoadBatch.
func NewLoader(repo store.RecordRepository, logger *slog.Logger, batch int) *Loader {
	if batch <= 0 {
		batch = DefaultLoadBatch
	}
	return &Loader{
		repo:   repo,
		logger: logger.With("component", "loader"),
		batch:  batch,
	}
}

// Load walks the id cursor downward from resumeID (empty = from the
// top) until a short page, accumulating every record matching the
// filter. Records come back ordered by id; callers wanting date order
// sort afterwards.
func (l *Loader) Load(ctx context.Context, f store.Filter, resumeID string) (*LoadResult, error) {
	result := &LoadResult{LastID: resumeID}
	for {
		page, err := l.repo.CursorPage(ctx, store.CursorQuery{
			Filter:  f,
			AfterID: result.LastID,
			Limit:   l.batch,
		})
		if err != nil {
			return result, err
		}
		if len(page) == 0 {
			break
		}
		result.Records = append(result.Records, page...)
		result.LastID = page[len(page)-1].UniqueRecordID
		l.logger.Debug("cursor page loaded", "fetched", len(page), "total", len(result.Records))
		if len(page) < l.batch {
			break
		}
	}
	l.logger.Info("bulk load complete", "records", len(result.Records))
	return result, nil
}
