//go:build arm64

package popcount

import "golang.org/x/sys/cpu"

func init() {
	// CNT is part of ASIMD, which is mandatory on ARM64
	hasPopcount = cpu.ARM64.HasASIMD
}
