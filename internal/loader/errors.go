package loader

import "errors"

// Common errors.
var (
	ErrHeaderTooLarge   = errors.New("header exceeds maximum size")
	ErrOutOfBounds      = errors.New("tensor extends beyond data section")
	ErrTensorNotFound   = errors.New("tensor not found")
	ErrChecksumMismatch = errors.New("checksum mismatch: file may be corrupted")
)
