package records

import "errors"

// ErrUnknownCollection indicates the collection name is not in the lookup table.
var ErrUnknownCollection = errors.New("unknown collection")
