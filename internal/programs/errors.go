package programs

import "errors"

// ErrNotFound indicates the program does not exist.
var ErrNotFound = errors.New("program not found")
