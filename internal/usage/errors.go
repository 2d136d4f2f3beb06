package usage

import "errors"

// ErrLimitReached is returned when the user's monthly allowance is spent.
var ErrLimitReached = errors.New("usage limit reached")
