package benchmark

import (
	"github.com/apache/arrow-go/v18/arrow/bitutil"
)

// NaiveWeight counts set bits one bit at a time. It is the trusted reference
// for the harness. Do not alter.
func NaiveWeight(buf []byte) uint64 {
	var n uint64
	for _, b := range buf {
		for j := 0; j < 8; j++ {
			n += uint64(b >> j & 1)
		}
	}
	return n
}

// NaiveDistance counts differing bits one bit at a time. len(b) must be at
// least len(a). Do not alter.
func NaiveDistance(a, b []byte) uint64 {
	var n uint64
	for i := range a {
		x := a[i] ^ b[i]
		for j := 0; j < 8; j++ {
			n += uint64(x >> j & 1)
		}
	}
	return n
}

// ArrowWeight counts set bits with Apache Arrow's bitmap popcount, an
// implementation independent of this module.
func ArrowWeight(buf []byte) uint64 {
	return uint64(bitutil.CountSetBits(buf, 0, len(buf)*8))
}
