package popcount

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// CPUFeatures contains the detected CPU capabilities relevant to counting
type CPUFeatures struct {
	Arch          string
	Vendor        string
	Brand         string
	PhysicalCores int
	LogicalCores  int
	HasPOPCNT     bool
	HasASIMD      bool

	// PopcountInstruction is the flag kernel selection uses (HasPopcount).
	// HasPOPCNT and HasASIMD come from cpuid and are informational.
	PopcountInstruction bool

	// Auto is the kernel ModeAuto resolves to on this machine.
	Auto string
}

// Features returns a report of the CPU the process runs on.
func Features() CPUFeatures {
	return CPUFeatures{
		Arch:          runtime.GOARCH,
		Vendor:        cpuid.CPU.VendorString,
		Brand:         cpuid.CPU.BrandName,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		HasPOPCNT:     cpuid.CPU.Supports(cpuid.POPCNT),
		HasASIMD:      cpuid.CPU.Supports(cpuid.ASIMD),
		Auto:          Resolve(ModeAuto).Name(),

		PopcountInstruction: HasPopcount(),
	}
}
