// Package quota computes how many records to sample from a category
// population under that category's quota rule.
package quota

import "fmt"

// Kind identifies a quota rule variant.
type Kind string

const (
	// KindAll selects the entire population.
	KindAll Kind = "all"
	// KindFixed selects a fixed number of records, capped at the population size.
	KindFixed Kind = "fixed"
	// KindPercent selects a percentage of the population clamped to
	// configured lower and upper bounds.
	KindPercent Kind = "percent"
)

// Rule describes how a category's sample size is derived from its
// population size. Count applies to KindFixed; Percent, Min, and Max apply
// to KindPercent.
type Rule struct {
	Kind    Kind
	Count   int
	Percent int
	Min     int
	Max     int
}

// Validate reports whether the rule is well formed.
// Percent rules require percent within [0,100] and min <= max; fixed rules
// require a positive count.
func (r Rule) Validate() error {
	switch r.Kind {
	case KindAll:
		return nil
	case KindFixed:
		if r.Count < 1 {
			return fmt.Errorf("%w: fixed count %d must be positive", ErrInvalidRule, r.Count)
		}
		return nil
	case KindPercent:
		if r.Percent < 0 || r.Percent > 100 {
			return fmt.Errorf("%w: percent %d outside [0,100]", ErrInvalidRule, r.Percent)
		}
		if r.Min < 0 {
			return fmt.Errorf("%w: min %d must be non-negative", ErrInvalidRule, r.Min)
		}
		if r.Min > r.Max {
			return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidRule, r.Min, r.Max)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRule, r.Kind)
	}
}

// Quota computes the number of records to sample from a population of size n.
//
// Percent rules floor the integer percentage and clamp it to [Min, Max],
// except when n is smaller than Min: then the whole population is taken,
// since the quota can never exceed what exists.
func (r Rule) Quota(n int) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: population size %d must be non-negative", ErrInvalidRule, n)
	}

	switch r.Kind {
	case KindAll:
		return n, nil
	case KindFixed:
		return min(r.Count, n), nil
	default:
		if n < r.Min {
			return n, nil
		}
		q := n * r.Percent / 100
		if q < r.Min {
			q = r.Min
		}
		if q > r.Max {
			q = r.Max
		}
		return q, nil
	}
}

// All returns a rule selecting the entire population.
func All() Rule {
	return Rule{Kind: KindAll}
}

// Fixed returns a rule selecting count records, capped at the population size.
func Fixed(count int) Rule {
	return Rule{Kind: KindFixed, Count: count}
}

// PercentWithBounds returns a rule selecting percent of the population,
// clamped to [minCount, maxCount].
func PercentWithBounds(percent, minCount, maxCount int) Rule {
	return Rule{Kind: KindPercent, Percent: percent, Min: minCount, Max: maxCount}
}
