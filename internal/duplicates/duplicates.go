// Package duplicates finds records sharing a field combination at or above
// an occurrence threshold.
package duplicates

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/registrar-tools/tally/pkg/query"
	"github.com/registrar-tools/tally/pkg/repository"
)

// DefaultFields is the field combination checked when none is specified.
var DefaultFields = []string{"CodePrefix", "CodeNumber", "CodeSuffix"}

// allowedFields maps logical field names to their record columns. Only
// these may participate in a duplicate check; anything else is rejected
// before query construction.
var allowedFields = map[string]string{
	"CodePrefix": "code_prefix",
	"CodeNumber": "code_number",
	"CodeSuffix": "code_suffix",
	"Summary":    "summary",
	"Location":   "location",
}

// Entry is one duplicated field combination and its occurrence count.
type Entry struct {
	Values []string
	Count  int
}

// System defines the duplicate finder contract.
type System interface {
	// Find returns field combinations occurring at least threshold times
	// within the collection, most frequent first.
	Find(ctx context.Context, collection string, fields []string, threshold int) ([]Entry, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a duplicate finder implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "duplicates"),
	}
}

func (r *repo) Find(ctx context.Context, collection string, fields []string, threshold int) ([]Entry, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: threshold %d must be positive", ErrInvalidThreshold, threshold)
	}
	if len(fields) == 0 {
		fields = DefaultFields
	}

	projection := query.NewProjectionMap("public", "records", "r").
		Map("collection", "Collection")
	for _, f := range fields {
		col, ok := allowedFields[f]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, f)
		}
		// Cast to text so every grouped value scans uniformly.
		projection.Map(fmt.Sprintf("%s::text", col), f)
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("Collection", collection).
		BuildGroupCount(fields, threshold)

	entries, err := repository.QueryMany(ctx, r.db, q, args, scanEntry(len(fields)))
	if err != nil {
		return nil, fmt.Errorf("query duplicates: %w", err)
	}

	r.logger.Info(
		"duplicate scan complete",
		"collection", collection,
		"fields", fields,
		"threshold", threshold,
		"matches", len(entries),
	)
	return entries, nil
}

func scanEntry(fieldCount int) repository.ScanFunc[Entry] {
	return func(s repository.Scanner) (Entry, error) {
		values := make([]sql.NullString, fieldCount)
		dest := make([]any, 0, fieldCount+1)
		for i := range values {
			dest = append(dest, &values[i])
		}

		var count int
		dest = append(dest, &count)

		if err := s.Scan(dest...); err != nil {
			return Entry{}, err
		}

		entry := Entry{Values: make([]string, fieldCount), Count: count}
		for i, v := range values {
			entry.Values[i] = v.String
		}
		return entry, nil
	}
}
