package analyses

import "errors"

var (
	ErrNotFound = errors.New("analysis not found")
	ErrInvalid  = errors.New("invalid analysis request")
)

// Failure codes stored on failed analyses.
const (
	failCodeProgram  = "program_unavailable"
	failCodeStorage  = "storage_error"
	failCodeInternal = "internal_error"
)
