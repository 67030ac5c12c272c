// Package selection merges per-category samples into a deduplicated
// selection while preserving per-category lists for report sectioning.
package selection

import (
	"github.com/registrar-tools/tally/pkg/query"
)

// MembershipSeparator joins member identifiers in the persisted group
// record. The bar character never occurs in integer identifiers, so the
// joined string round-trips without escaping.
const MembershipSeparator = "|"

// CategorySample pairs a category name with the identifiers it drew.
type CategorySample struct {
	Category string
	IDs      []int64
}

// Merged is the result of merging category samples in processing order.
//
// Ordered holds each selected identifier exactly once, in first-seen order
// across categories. Owner records, for each identifier, the first category
// that drew it; later categories that draw the same identifier keep it in
// their own Categories entry but do not change ownership. len(Ordered) is
// at most the sum of the category sample sizes, with equality exactly when
// no identifier was drawn twice.
type Merged struct {
	Ordered    []int64
	Owner      map[int64]string
	Categories []CategorySample
}

// Merge combines samples in the given order. The caller's ordering decides
// both ownership precedence and report section order.
func Merge(samples []CategorySample) Merged {
	m := Merged{
		Ordered:    make([]int64, 0),
		Owner:      make(map[int64]string),
		Categories: make([]CategorySample, 0, len(samples)),
	}

	for _, s := range samples {
		ids := make([]int64, len(s.IDs))
		copy(ids, s.IDs)
		m.Categories = append(m.Categories, CategorySample{Category: s.Category, IDs: ids})

		for _, id := range s.IDs {
			if _, seen := m.Owner[id]; seen {
				continue
			}
			m.Owner[id] = s.Category
			m.Ordered = append(m.Ordered, id)
		}
	}

	return m
}

// Membership returns the bar-joined member identifier string persisted on
// the group record.
func (m Merged) Membership() string {
	return query.JoinInt64(m.Ordered, MembershipSeparator)
}
