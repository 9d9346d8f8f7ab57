package bytealg

import "encoding/binary"

const (
	lsb8 = 0x0101010101010101
	lo7  = 0x7f7f7f7f7f7f7f7f

	// gatherLSB collects bit 0 of every byte into the top byte when
	// multiplied with a word holding only 0 or 1 per byte.
	gatherLSB = 0x0102040810204080
)

// broadcast replicates b into every byte of a word.
func broadcast(b byte) uint64 {
	return uint64(b) * lsb8
}

// eqBytes sets 0x80 in every byte of x that equals the same byte of pattern
// and clears everything else. Unlike the (v-lo)&^v&hi form, bytes above a
// match never report a false 0x80 through borrow propagation, so the
// result can be ANDed with another mask.
func eqBytes(x, pattern uint64) uint64 {
	v := x ^ pattern
	t := (v & lo7) + lo7
	return ^(t | v | lo7)
}

// movemask8 packs the high bit of each byte into an 8-bit lane mask,
// lane 0 being the lowest-addressed byte.
func movemask8(m uint64) uint32 {
	return uint32(((m >> 7) * gatherLSB) >> 56)
}

// PairMaskSWAR compares a block as two little-endian words, eight lanes each.
func PairMaskSWAR(h []byte, i int, first, last byte, delta int) uint32 {
	a := h[i : i+BlockSize]
	b := h[i+delta : i+delta+BlockSize]
	f, l := broadcast(first), broadcast(last)

	lo := eqBytes(binary.LittleEndian.Uint64(a), f) & eqBytes(binary.LittleEndian.Uint64(b), l)
	hi := eqBytes(binary.LittleEndian.Uint64(a[8:]), f) & eqBytes(binary.LittleEndian.Uint64(b[8:]), l)
	return movemask8(lo) | movemask8(hi)<<8
}
