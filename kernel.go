package hamming

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/23skdu/hamming/internal/config"
	"github.com/23skdu/hamming/internal/popcount"
)

// Kernel names
const (
	KernelAuto     = string(popcount.ModeAuto)
	KernelHardware = string(popcount.ModeHardware)
	KernelPortable = string(popcount.ModePortable)
)

// CPUFeatures reports the CPU capabilities that drive kernel selection.
type CPUFeatures = popcount.CPUFeatures

type selection struct {
	mode     popcount.Mode
	kernel   popcount.Kernel
	strategy popcount.Strategy
}

var (
	active atomic.Pointer[selection]
	logger atomic.Pointer[zerolog.Logger]
)

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)

	mode, err := config.LoadKernel()
	if err != nil {
		mode = popcount.ModeAuto
	}
	install(mode)
}

func install(mode popcount.Mode) popcount.Kernel {
	k := popcount.Select(mode)
	active.Store(&selection{mode: mode, kernel: k, strategy: k.Strategy()})
	return k
}

// Kernel returns the name of the kernel in use: "hardware" or "portable".
func Kernel() string {
	return active.Load().kernel.Name()
}

// KernelMode returns the mode the kernel was selected with: "auto",
// "hardware" or "portable".
func KernelMode() string {
	return string(active.Load().mode)
}

// UseKernel selects the kernel used by Weight and Distance. mode is "auto",
// "hardware" or "portable"; "auto" picks hardware when the CPU reports a
// population count instruction. Calls in flight finish on the previous
// kernel. The initial mode comes from HAMMING_KERNEL.
func UseKernel(mode string) error {
	m, err := popcount.ParseMode(mode)
	if err != nil {
		return err
	}

	k := install(m)
	log := logger.Load()
	log.Info().
		Str("mode", string(m)).
		Str("kernel", k.Name()).
		Bool("popcount_instruction", popcount.HasPopcount()).
		Msg("Population count kernel selected")
	if m == popcount.ModeHardware && !popcount.HasPopcount() {
		log.Warn().
			Str("kernel", k.Name()).
			Msg("Hardware kernel forced on a CPU without a population count instruction")
	}
	return nil
}

// SetLogger sets the logger used for kernel selection events. The default
// discards everything.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// Features returns the CPU report used for kernel selection.
func Features() CPUFeatures {
	return popcount.Features()
}
