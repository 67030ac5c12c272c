package sampling

import "errors"

// ErrInvalidQuota indicates a negative quota or one exceeding the population size.
var ErrInvalidQuota = errors.New("invalid sample quota")
