//go:build goexperiment.simd && amd64 && !noasm

package bytealg

import "simd/archsimd"

const vectorBuilt = true

// pairMaskVector broadcasts both filter bytes into 16-lane registers,
// compares them against the two shifted loads and packs the AND of the
// two equality masks into one bit per lane.
func pairMaskVector(h []byte, i int, first, last byte, delta int) uint32 {
	a := h[i : i+BlockSize]
	b := h[i+delta : i+delta+BlockSize]

	eqFirst := archsimd.LoadUint8x16Slice(a).Equal(archsimd.BroadcastUint8x16(first))
	eqLast := archsimd.LoadUint8x16Slice(b).Equal(archsimd.BroadcastUint8x16(last))
	return uint32(eqFirst.And(eqLast).ToBits())
}
