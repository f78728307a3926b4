package popcount

import "encoding/binary"

// BlockBytes is the size of one tree-merge block in the portable kernel:
// ten groups of three words.
const BlockBytes = 30 * WordBytes

const (
	m1 = 0x5555555555555555 // 01010101 ...
	m2 = 0x3333333333333333 // 00110011 ...
	m4 = 0x0f0f0f0f0f0f0f0f // 00001111 ...
	m8 = 0x00ff00ff00ff00ff // 00000000 11111111 ...
)

// portableKernel counts without relying on a population count instruction.
type portableKernel struct{}

func (portableKernel) Name() string       { return "portable" }
func (portableKernel) Strategy() Strategy { return StrategyPortable }

func (portableKernel) Word(x uint64) int { return onesCount64(x) }

func (portableKernel) Count(buf []byte) uint64 { return PortableCount(buf) }

func (portableKernel) CountXor(a, b []byte) uint64 { return PortableCountXor(a, b) }

// PortableCount returns the number of set bits in buf without a population
// count instruction.
func PortableCount(buf []byte) uint64 {
	var n uint64
	for len(buf) >= BlockBytes {
		n += mergeBlock(buf[:BlockBytes])
		buf = buf[BlockBytes:]
	}
	for len(buf) >= WordBytes {
		n += uint64(onesCount64(binary.LittleEndian.Uint64(buf)))
		buf = buf[WordBytes:]
	}
	return n + uint64(onesCount64(loadTail(buf)))
}

// PortableCountXor returns the number of set bits in a XOR b.
// len(b) must be at least len(a).
func PortableCountXor(a, b []byte) uint64 {
	b = b[:len(a)] // BCE
	var n uint64
	for len(a) >= BlockBytes {
		n += mergeBlockXor(a[:BlockBytes], b[:BlockBytes])
		a, b = a[BlockBytes:], b[BlockBytes:]
	}
	for len(a) >= WordBytes {
		n += uint64(onesCount64(binary.LittleEndian.Uint64(a) ^ binary.LittleEndian.Uint64(b)))
		a, b = a[WordBytes:], b[WordBytes:]
	}
	return n + uint64(onesCount64(loadTail(a)^loadTail(b)))
}

// onesCount64 is the parallel bit summing population count.
func onesCount64(x uint64) int {
	x -= (x >> 1) & m1
	x = (x & m2) + ((x >> 2) & m2)
	x = (x + (x >> 4)) & m4
	x += x >> 8
	x += x >> 16
	x += x >> 32
	return int(x & 0x7f)
}

// mergeBlock counts one BlockBytes block with Lauradoux's tree merging:
// each group of three words shares the 2-bit and 4-bit reduction steps, and
// byte-wide partial sums are folded once per block. A block holds at most
// 1920 set bits, so the final 16-bit field cannot overflow.
func mergeBlock(blk []byte) uint64 {
	_ = blk[BlockBytes-1] // BCE
	var acc uint64
	for j := 0; j < BlockBytes; j += 3 * WordBytes {
		acc += mergeTriple(
			binary.LittleEndian.Uint64(blk[j:]),
			binary.LittleEndian.Uint64(blk[j+8:]),
			binary.LittleEndian.Uint64(blk[j+16:]),
		)
	}
	return foldBytes(acc)
}

// mergeBlockXor is mergeBlock over a XOR b.
func mergeBlockXor(a, b []byte) uint64 {
	_ = a[BlockBytes-1] // BCE
	_ = b[BlockBytes-1]
	var acc uint64
	for j := 0; j < BlockBytes; j += 3 * WordBytes {
		acc += mergeTriple(
			binary.LittleEndian.Uint64(a[j:])^binary.LittleEndian.Uint64(b[j:]),
			binary.LittleEndian.Uint64(a[j+8:])^binary.LittleEndian.Uint64(b[j+8:]),
			binary.LittleEndian.Uint64(a[j+16:])^binary.LittleEndian.Uint64(b[j+16:]),
		)
	}
	return foldBytes(acc)
}

// mergeTriple returns the set bits of three words as eight byte-wide
// partial sums, each at most 24.
func mergeTriple(c1, c2, half uint64) uint64 {
	h1 := half & m1
	h2 := (half >> 1) & m1
	c1 -= (c1 >> 1) & m1
	c2 -= (c2 >> 1) & m1
	c1 += h1
	c2 += h2
	c1 = (c1 & m2) + ((c1 >> 2) & m2)
	c1 += (c2 & m2) + ((c2 >> 2) & m2)
	return (c1 & m4) + ((c1 >> 4) & m4)
}

// foldBytes sums the eight byte-wide fields of acc.
func foldBytes(acc uint64) uint64 {
	acc = (acc & m8) + ((acc >> 8) & m8)
	acc += acc >> 16
	acc += acc >> 32
	return acc & 0xffff
}
