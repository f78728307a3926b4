// Package popcount implements the chunked population count engine behind
// hamming.Weight and hamming.Distance.
//
// Buffers are consumed as 8-byte little-endian words. The 0..7 trailing
// bytes are loaded as one zero-extended word and counted with the same
// word primitive, so every kernel handles every length. No kernel allocates.
package popcount

// WordBytes is the chunk width of every kernel.
const WordBytes = 8

// Strategy identifies how a kernel counts the bits of one word.
type Strategy int

const (
	// StrategyPortable counts with parallel bit summing in plain Go.
	StrategyPortable Strategy = iota

	// StrategyHardware counts with the CPU population count instruction.
	StrategyHardware
)

// String returns a human-readable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyPortable:
		return "portable"
	case StrategyHardware:
		return "hardware"
	default:
		return "unknown"
	}
}

// Kernel counts set bits in byte buffers.
type Kernel interface {
	// Name returns the kernel name used in logs and metrics.
	Name() string

	// Strategy returns the word counting strategy of the kernel.
	Strategy() Strategy

	// Word returns the number of set bits in x.
	Word(x uint64) int

	// Count returns the number of set bits in buf.
	Count(buf []byte) uint64

	// CountXor returns the number of set bits in a XOR b without
	// materializing the XOR. The caller guarantees len(a) == len(b).
	CountXor(a, b []byte) uint64
}

// loadTail returns the 0..7 bytes of b as a zero-extended little-endian word.
func loadTail(b []byte) uint64 {
	var x uint64
	for i := len(b) - 1; i >= 0; i-- {
		x = x<<8 | uint64(b[i])
	}
	return x
}
