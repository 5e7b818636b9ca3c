package encryption

import "errors"

var (
	// ErrNotText is returned for inputs that are not valid UTF-8.
	ErrNotText = errors.New("input is not valid UTF-8 text")
	// ErrNotReversible is returned when ciphertext would not decrypt back to its input.
	ErrNotReversible = errors.New("message cannot be encrypted reversibly with this key")
	// ErrSameOutput is returned when the output path would overwrite the input.
	ErrSameOutput = errors.New("output path equals input path")
)
