package quota

import "errors"

// ErrInvalidRule indicates a malformed quota rule.
var ErrInvalidRule = errors.New("invalid quota rule")
