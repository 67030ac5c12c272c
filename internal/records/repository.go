package records

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/registrar-tools/tally/pkg/query"
	"github.com/registrar-tools/tally/pkg/repository"
)

// DefaultDetailBatchSize bounds a single detail query's identifier set.
const DefaultDetailBatchSize = 500

type repo struct {
	db        *sql.DB
	logger    *slog.Logger
	batchSize int
}

// New creates a record repository implementing the System interface.
// A non-positive batchSize falls back to DefaultDetailBatchSize.
func New(db *sql.DB, logger *slog.Logger, batchSize int) System {
	if batchSize < 1 {
		batchSize = DefaultDetailBatchSize
	}
	return &repo{
		db:        db,
		logger:    logger.With("system", "records"),
		batchSize: batchSize,
	}
}

func (r *repo) ValidateCollection(ctx context.Context, name string) error {
	q := "SELECT name FROM public.collections WHERE name = $1"

	_, err := repository.QueryOne(ctx, r.db, q, []any{name}, scanName)
	if err != nil {
		unknown := fmt.Errorf("%w: %q", ErrUnknownCollection, name)
		return repository.MapError(err, unknown, err)
	}
	return nil
}

func (r *repo) Population(ctx context.Context, collection, predicate string) ([]int64, error) {
	q, args := query.
		NewBuilder(idProjection, query.SortField{Field: "ID"}).
		WhereEquals("Collection", collection).
		WherePredicate(predicate).
		Build()

	ids, err := repository.QueryMany(ctx, r.db, q, args, scanID)
	if err != nil {
		return nil, fmt.Errorf("query population: %w", err)
	}

	return ids, nil
}

func (r *repo) Details(ctx context.Context, ids []int64) ([]Detail, error) {
	details := make([]Detail, 0, len(ids))

	for batch := range chunk(ids, r.batchSize) {
		q, args := query.
			NewBuilder(projection).
			WhereInInt64("ID", batch).
			Build()

		rows, err := repository.QueryMany(ctx, r.db, q, args, scanDetail)
		if err != nil {
			return nil, fmt.Errorf("query details: %w", err)
		}
		details = append(details, rows...)
	}

	if len(details) != len(ids) {
		r.logger.Warn(
			"detail fetch incomplete",
			"requested", len(ids),
			"resolved", len(details),
		)
	}

	SortDetails(details)
	return details, nil
}

// chunk yields ids in slices of at most size elements.
func chunk(ids []int64, size int) func(yield func([]int64) bool) {
	return func(yield func([]int64) bool) {
		for start := 0; start < len(ids); start += size {
			end := min(start+size, len(ids))
			if !yield(ids[start:end]) {
				return
			}
		}
	}
}
