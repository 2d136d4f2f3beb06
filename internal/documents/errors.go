package documents

import "errors"

var (
	ErrNotFound    = errors.New("document not found")
	ErrTooLarge    = errors.New("document exceeds size limit")
	ErrUnsupported = errors.New("unsupported document type")
)
