//go:build amd64

package popcount

import "golang.org/x/sys/cpu"

func init() {
	hasPopcount = cpu.X86.HasPOPCNT
}
