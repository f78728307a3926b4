package popcount

import (
	"fmt"
	"strings"

	herrors "github.com/23skdu/hamming/internal/errors"
	"github.com/23skdu/hamming/internal/metrics"
)

// Mode names a kernel selection policy.
type Mode string

const (
	// ModeAuto selects the hardware kernel when the CPU reports a
	// population count instruction and the portable kernel otherwise.
	ModeAuto Mode = "auto"

	// ModeHardware forces the hardware kernel.
	ModeHardware Mode = "hardware"

	// ModePortable forces the portable kernel.
	ModePortable Mode = "portable"
)

// hasPopcount is set by init() in detect_*.go files.
var hasPopcount bool

var (
	hardware Kernel = hardwareKernel{}
	portable Kernel = portableKernel{}
)

// Hardware returns the kernel built on the population count instruction.
func Hardware() Kernel { return hardware }

// Portable returns the kernel built on parallel bit summing.
func Portable() Kernel { return portable }

// HasPopcount reports whether the CPU exposes a population count instruction.
func HasPopcount() bool { return hasPopcount }

// ParseMode parses a kernel mode. The empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeHardware, ModePortable:
		return m, nil
	default:
		return "", herrors.NewConfigurationError("parse_mode",
			fmt.Sprintf("unknown kernel mode %q (want auto, hardware or portable)", s)).
			WithContext("mode", s)
	}
}

// Resolve returns the kernel for m without recording the choice.
func Resolve(m Mode) Kernel {
	switch m {
	case ModeHardware:
		return hardware
	case ModePortable:
		return portable
	default:
		if hasPopcount {
			return hardware
		}
		return portable
	}
}

// Select resolves m and records the choice in the dispatch metrics.
// Callers select once and keep the kernel; the hot path never selects.
func Select(m Mode) Kernel {
	k := Resolve(m)

	metrics.KernelDispatchCount.WithLabelValues(k.Name()).Inc()
	metrics.KernelDispatchType.Set(float64(k.Strategy()))
	if hasPopcount {
		metrics.PopcountInstructionAvailable.Set(1)
	} else {
		metrics.PopcountInstructionAvailable.Set(0)
	}
	return k
}
