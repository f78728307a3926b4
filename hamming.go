// Package hamming counts bits in byte buffers: the Hamming weight (number of
// set bits) of one buffer and the Hamming distance (number of differing bit
// positions) of two equal-length buffers.
//
// Both operations are pure, allocation-free and safe for concurrent use.
// Buffers are read in 8-byte words; trailing bytes that do not fill a word
// are counted as a zero-extended word. The word primitive is either the CPU
// population count instruction or a portable parallel bit summing routine,
// selected once at init (see UseKernel and HAMMING_KERNEL).
//
//	hamming.Weight([]byte{1, 0xFF, 1, 0xFF})        // 18
//	hamming.Distance([]byte{1, 0xFF}, []byte{0xFF, 1}) // 14, nil
package hamming

import (
	herrors "github.com/23skdu/hamming/internal/errors"
	"github.com/23skdu/hamming/internal/popcount"
)

// Weight returns the number of bits set to 1 in buf. An empty buffer has
// weight 0.
func Weight(buf []byte) uint64 {
	// Static calls keep buf from escaping.
	if active.Load().strategy == popcount.StrategyHardware {
		return popcount.HardwareCount(buf)
	}
	return popcount.PortableCount(buf)
}

// Distance returns the number of bit positions at which a and b differ.
// It returns an error matching ErrInvalidInput when len(a) != len(b); the
// buffers are never truncated or padded.
func Distance(a, b []byte) (uint64, error) {
	if len(a) != len(b) {
		return 0, herrors.NewLengthMismatchError("distance", len(a), len(b))
	}
	if active.Load().strategy == popcount.StrategyHardware {
		return popcount.HardwareCountXor(a, b), nil
	}
	return popcount.PortableCountXor(a, b), nil
}

// MustDistance is like Distance but panics if the lengths differ.
func MustDistance(a, b []byte) uint64 {
	d, err := Distance(a, b)
	if err != nil {
		panic(err)
	}
	return d
}
