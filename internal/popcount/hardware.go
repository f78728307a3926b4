package popcount

import (
	"encoding/binary"
	"math/bits"
)

// hardwareKernel counts with math/bits.OnesCount64, which the compiler
// lowers to POPCNT on amd64 and CNT+ADDV on arm64.
type hardwareKernel struct{}

func (hardwareKernel) Name() string       { return "hardware" }
func (hardwareKernel) Strategy() Strategy { return StrategyHardware }

func (hardwareKernel) Word(x uint64) int { return bits.OnesCount64(x) }

func (hardwareKernel) Count(buf []byte) uint64 { return HardwareCount(buf) }

func (hardwareKernel) CountXor(a, b []byte) uint64 { return HardwareCountXor(a, b) }

// HardwareCount returns the number of set bits in buf using the population
// count instruction.
func HardwareCount(buf []byte) uint64 {
	// Independent accumulators let consecutive POPCNTs overlap.
	var c0, c1, c2, c3 uint64
	for len(buf) >= 4*WordBytes {
		c0 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(buf[0:])))
		c1 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(buf[8:])))
		c2 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(buf[16:])))
		c3 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(buf[24:])))
		buf = buf[4*WordBytes:]
	}
	for len(buf) >= WordBytes {
		c0 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(buf)))
		buf = buf[WordBytes:]
	}
	c1 += uint64(bits.OnesCount64(loadTail(buf)))
	return c0 + c1 + c2 + c3
}

// HardwareCountXor returns the number of set bits in a XOR b.
// len(b) must be at least len(a).
func HardwareCountXor(a, b []byte) uint64 {
	b = b[:len(a)] // BCE
	var c0, c1, c2, c3 uint64
	for len(a) >= 4*WordBytes {
		c0 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(a[0:]) ^ binary.LittleEndian.Uint64(b[0:])))
		c1 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(a[8:]) ^ binary.LittleEndian.Uint64(b[8:])))
		c2 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(a[16:]) ^ binary.LittleEndian.Uint64(b[16:])))
		c3 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(a[24:]) ^ binary.LittleEndian.Uint64(b[24:])))
		a, b = a[4*WordBytes:], b[4*WordBytes:]
	}
	for len(a) >= WordBytes {
		c0 += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(a) ^ binary.LittleEndian.Uint64(b)))
		a, b = a[WordBytes:], b[WordBytes:]
	}
	c1 += uint64(bits.OnesCount64(loadTail(a) ^ loadTail(b)))
	return c0 + c1 + c2 + c3
}
