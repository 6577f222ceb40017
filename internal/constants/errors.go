package constants

import "errors"

// Validation errors.
var (
	ErrInvalidPageSize = errors.New("page size must be between 1 and 1024")
)
