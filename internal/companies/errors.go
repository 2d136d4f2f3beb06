package companies

import "errors"

var (
	ErrNotFound = errors.New("company not found")
	ErrInvalid  = errors.New("invalid company")
)
