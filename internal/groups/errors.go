package groups

import "errors"

// ErrEmptyName indicates a group create command without a name.
var ErrEmptyName = errors.New("group name must not be empty")
