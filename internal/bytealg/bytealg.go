// Package bytealg holds the block kernels behind the substr package.
//
// A kernel computes the candidate mask of one block: BlockSize lanes, each
// testing one byte at a fixed offset and a second byte delta bytes further.
// All kernels return identical masks; they differ only in how many lanes
// they compare per instruction.
package bytealg

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// BlockSize is the number of lanes a kernel compares per call. The search
// loop advances by exactly this many bytes, so no lane is skipped.
const BlockSize = 16

// MaskFunc returns the candidate mask for the block at h[i:]: bit j is set
// iff h[i+j] == first and h[i+j+delta] == last. Only the low BlockSize bits
// are used. Callers must guarantee i+BlockSize+delta <= len(h).
type MaskFunc func(h []byte, i int, first, last byte, delta int) uint32

// Kernel identifies a MaskFunc implementation.
type Kernel uint8

const (
	Scalar Kernel = iota
	SWAR
	Vector
)

var kernelNames = [...]string{
	Scalar: "scalar",
	SWAR:   "swar",
	Vector: "vector",
}

func (k Kernel) String() string {
	if int(k) < len(kernelNames) {
		return kernelNames[k]
	}
	return fmt.Sprintf("kernel(%d)", uint8(k))
}

var (
	hasAVX   = cpu.X86.HasAVX
	hasAVX2  = cpu.X86.HasAVX2
	hasASIMD = cpu.ARM64.HasASIMD
)

// Available reports whether k can run in this binary on this CPU.
// archsimd 128-bit ops on amd64 require AVX.
func Available(k Kernel) bool {
	switch k {
	case Scalar, SWAR:
		return true
	case Vector:
		return vectorBuilt && hasAVX
	}
	return false
}

// Default returns the fastest available kernel.
func Default() Kernel {
	if Available(Vector) {
		return Vector
	}
	return SWAR
}

// Mask returns the MaskFunc for k. Unavailable kernels resolve to SWAR.
func Mask(k Kernel) MaskFunc {
	switch k {
	case Scalar:
		return PairMaskScalar
	case Vector:
		if Available(Vector) {
			return pairMaskVector
		}
	}
	return PairMaskSWAR
}

// Features describes the CPU flags consulted for dispatch.
func Features() string {
	return fmt.Sprintf("avx=%t avx2=%t asimd=%t vector_built=%t", hasAVX, hasAVX2, hasASIMD, vectorBuilt)
}
