package keygen

import "errors"

// ErrEntropyUnavailable is returned when the secure random source fails and no fallback was allowed.
var ErrEntropyUnavailable = errors.New("secure random source unavailable")
