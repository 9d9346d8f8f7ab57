package substr

import (
	"fmt"
	"strings"

	"github.com/mhr3/memscan/internal/bytealg"
)

// Kernel selects the block compare implementation used by a Scanner.
type Kernel uint8

const (
	// KernelAuto picks the fastest kernel available at run time.
	KernelAuto Kernel = iota
	// KernelScalar compares one lane at a time.
	KernelScalar
	// KernelSWAR compares eight lanes per 64-bit word.
	KernelSWAR
	// KernelVector compares sixteen lanes per archsimd register. Only
	// present in amd64 builds with GOEXPERIMENT=simd on CPUs with AVX.
	KernelVector
)

var kernelNames = [...]string{
	KernelAuto:   "auto",
	KernelScalar: "scalar",
	KernelSWAR:   "swar",
	KernelVector: "vector",
}

func (k Kernel) String() string {
	if int(k) < len(kernelNames) {
		return kernelNames[k]
	}
	return fmt.Sprintf("Kernel(%d)", uint8(k))
}

// ParseKernel maps a kernel name, case-insensitively, to a Kernel.
func ParseKernel(name string) (Kernel, error) {
	for k, n := range kernelNames {
		if strings.EqualFold(name, n) {
			return Kernel(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
}

// Kernels returns the concrete kernels usable in this process, slowest
// first. KernelAuto resolves to the last one.
func Kernels() []Kernel {
	ks := []Kernel{KernelScalar, KernelSWAR}
	if bytealg.Available(bytealg.Vector) {
		ks = append(ks, KernelVector)
	}
	return ks
}

// resolve maps k to the bytealg kernel it runs on.
func (k Kernel) resolve() (bytealg.Kernel, error) {
	var bk bytealg.Kernel
	switch k {
	case KernelAuto:
		return bytealg.Default(), nil
	case KernelScalar:
		bk = bytealg.Scalar
	case KernelSWAR:
		bk = bytealg.SWAR
	case KernelVector:
		bk = bytealg.Vector
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownKernel, k)
	}
	if !bytealg.Available(bk) {
		return 0, fmt.Errorf("%w: %s (%s)", ErrKernelUnavailable, k, bytealg.Features())
	}
	return bk, nil
}

func fromBytealg(bk bytealg.Kernel) Kernel {
	switch bk {
	case bytealg.Scalar:
		return KernelScalar
	case bytealg.Vector:
		return KernelVector
	}
	return KernelSWAR
}
