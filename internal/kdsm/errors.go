package kdsm

import "errors"

// ErrEmptyKey is returned when the engine requires a key and none was given.
var ErrEmptyKey = errors.New("key must not be empty")
