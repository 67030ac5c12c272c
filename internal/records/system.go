package records

import "context"

// System defines the public contract for record domain operations.
type System interface {
	// ValidateCollection checks name against the collection lookup table.
	// Returns ErrUnknownCollection if no such collection exists.
	ValidateCollection(ctx context.Context, name string) error

	// Population returns the ordered identifiers of all records in the
	// collection matching the category predicate. An empty predicate
	// matches the whole collection.
	Population(ctx context.Context, collection, predicate string) ([]int64, error)

	// Details returns one Detail per identifier, batched to a safe query
	// size and re-sorted by the natural code key (prefix, number, suffix
	// ascending). Identifiers with no resolvable location yield a Detail
	// carrying the LocationNotRecorded sentinel.
	Details(ctx context.Context, ids []int64) ([]Detail, error)
}
