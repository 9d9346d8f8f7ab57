package bytealg

// PairMaskScalar is the reference kernel: one lane per iteration.
func PairMaskScalar(h []byte, i int, first, last byte, delta int) uint32 {
	a := h[i : i+BlockSize]
	b := h[i+delta : i+delta+BlockSize]

	var mask uint32
	for j := range a {
		if a[j] == first && b[j] == last {
			mask |= 1 << j
		}
	}
	return mask
}
