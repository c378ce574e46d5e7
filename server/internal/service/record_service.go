package service

import (
	"context"

	"github.com/timberintel/timberintel/internal/clean"
	"github.com/timberintel/timberintel/internal/coverage"
	"github.com/timberintel/timberintel/internal/extract"
	"github.com/timberintel/timberintel/internal/tendata"
	"github.com/timberintel/timberintel/server/internal/model"
	"github.com/timberintel/timberintel/server/internal/repository"
)

type RecordsService struct {
	repo    repository.RecordRepository
	loader  *extract.Loader
	cleaner *clean.Pipeline
	scanner *coverage.Scanner
	client  *tendata.Client
}

func NewRecordsService(repo repository.RecordRepository, loader *extract.Loader, cleaner *clean.Pipeline, scanner *coverage.Scanner, client *tendata.Client) *RecordsService {
	return &RecordsService{
		repo:    repo,
		loader:  loader,
		cleaner: cleaner,
		scanner: scanner,
		client:  client,
	}
}

// GetCleanedRecords cursor-walks every matching row and runs the full
// cleaning pipeline over them. The cursor walk keeps wide date ranges
// complete instead of capping them at a single page.
func (rs *RecordsService) GetCleanedRecords(ctx context.Context, q model.RecordQuery) (*clean.Result, error) {
	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	loaded, err := rs.loader.Load(ctx, f, "")
	if err != nil {
		return nil, err
	}
	return rs.cleaner.Clean(loaded.Records, q.CleanOptions()), nil
}

func (rs *RecordsService) GetCountRecords(q model.RecordQuery) (int64, error) {
	f, err := q.Filter()
	if err != nil {
		return 0, err
	}
	return rs.repo.GetRecordsCount(f)
}

func (rs *RecordsService) GetCoverage(ctx context.Context, req coverage.Request) (*coverage.Result, error) {
	return rs.scanner.Scan(ctx, req)
}

// GetAccount reports the upstream subscription balance and expiry. It
// is the only endpoint that talks to the remote API.
func (rs *RecordsService) GetAccount(ctx context.Context) (tendata.AccountInfo, error) {
	return rs.client.AccountInfo(ctx)
}
