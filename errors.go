package hamming

import (
	herrors "github.com/23skdu/hamming/internal/errors"
)

// Error is the structured error returned by this package. Its Context holds
// "len_a" and "len_b" for length mismatches and "mode" for unknown kernels.
type Error = herrors.StructuredError

var (
	// ErrInvalidInput matches (via errors.Is) the error Distance returns for
	// buffers of different lengths.
	ErrInvalidInput = herrors.ErrInvalidInput

	// ErrConfiguration matches the error UseKernel returns for an unknown mode.
	ErrConfiguration = herrors.ErrConfiguration
)
