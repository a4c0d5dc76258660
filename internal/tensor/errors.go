package tensor

import "errors"

// Engine errors. Backends panic with values wrapping these so that callers
// at an API boundary can tell a bad shape from a failed allocation.
var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrAllocation   = errors.New("tensor allocation failed")
)
