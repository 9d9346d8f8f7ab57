package substr

import (
	"bytes"
	"math/bits"

	"github.com/mhr3/memscan/internal/bytealg"
)

var defaultMask = bytealg.Mask(bytealg.Default())

// pairFilter tests needle[off1] and needle[off2] at every candidate start.
type pairFilter struct {
	off1, off2 int
	b1, b2     byte
	mask       bytealg.MaskFunc
}

func firstLast(needle []byte, mask bytealg.MaskFunc) pairFilter {
	return newPairFilter(needle, 0, len(needle)-1, mask)
}

func newPairFilter(needle []byte, off1, off2 int, mask bytealg.MaskFunc) pairFilter {
	return pairFilter{
		off1: off1,
		off2: off2,
		b1:   needle[off1],
		b2:   needle[off2],
		mask: mask,
	}
}

// index returns the first start p with h[p+off1] == b1 and h[p+off2] == b2,
// restricted to exact matches when verify is set, or -1.
//
// Full blocks are only taken while all BlockSize starts of the block are
// valid (p <= len(h)-len(needle)); that bound also keeps both loads of the
// kernel inside h since off2 < len(needle). The remaining starts are
// checked one at a time.
func (f *pairFilter) index(h, needle []byte, verify bool) int {
	k := len(needle)
	last := len(h) - k
	if last < 0 {
		return -1
	}
	delta := f.off2 - f.off1

	i := 0
	for ; i+bytealg.BlockSize-1 <= last; i += bytealg.BlockSize {
		mask := f.mask(h, i+f.off1, f.b1, f.b2, delta)
		for mask != 0 {
			p := i + bits.TrailingZeros32(mask)
			if !verify || bytes.Equal(h[p:p+k], needle) {
				return p
			}
			mask &= mask - 1
		}
	}

	for p := i; p <= last; p++ {
		if h[p+f.off1] != f.b1 || h[p+f.off2] != f.b2 {
			continue
		}
		if !verify || bytes.Equal(h[p:p+k], needle) {
			return p
		}
	}
	return -1
}

// count returns the number of non-overlapping exact matches.
func (f *pairFilter) count(h, needle []byte) int {
	n := 0
	for {
		p := f.index(h, needle, true)
		if p < 0 {
			return n
		}
		n++
		h = h[p+len(needle):]
	}
}

// appendAll appends the offsets of up to limit non-overlapping exact
// matches to dst. A negative limit means no limit.
func (f *pairFilter) appendAll(dst []int, h, needle []byte, limit int) []int {
	base := 0
	for limit != 0 {
		p := f.index(h[base:], needle, true)
		if p < 0 {
			break
		}
		dst = append(dst, base+p)
		base += p + len(needle)
		limit--
	}
	return dst
}
