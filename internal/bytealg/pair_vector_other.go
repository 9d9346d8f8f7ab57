//go:build !goexperiment.simd || !amd64 || noasm

package bytealg

const vectorBuilt = false

func pairMaskVector(h []byte, i int, first, last byte, delta int) uint32 {
	return PairMaskSWAR(h, i, first, last, delta)
}
