package substr

import (
	"bytes"

	"github.com/mhr3/memscan/internal/bytealg"
)

// Scanner performs repeated searches for one needle. Construct once with
// NewScanner, then call its methods on any number of haystacks. A Scanner
// is immutable and safe for concurrent use.
type Scanner struct {
	needle []byte
	filter pairFilter
	kernel Kernel
}

type scannerConfig struct {
	kernel Kernel
	ranks  *[256]byte
}

// Option configures NewScanner.
type Option func(*scannerConfig)

// WithKernel forces the block compare kernel. NewScanner fails with
// ErrKernelUnavailable if k cannot run here.
func WithKernel(k Kernel) Option {
	return func(c *scannerConfig) {
		c.kernel = k
	}
}

// WithRanks filters on the two rarest distinct needle bytes under ranks
// instead of the first and last byte. ranks must have 256 entries, lower
// meaning rarer; see DefaultRanks and BuildRankTable.
func WithRanks(ranks []byte) Option {
	if len(ranks) != 256 {
		panic("ranks must have exactly 256 entries")
	}
	var table [256]byte
	copy(table[:], ranks)
	return func(c *scannerConfig) {
		c.ranks = &table
	}
}

// NewScanner prepares needle for searching. The needle is copied.
func NewScanner(needle []byte, opts ...Option) (*Scanner, error) {
	if len(needle) == 0 {
		return nil, ErrEmptyNeedle
	}

	var cfg scannerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	bk, err := cfg.kernel.resolve()
	if err != nil {
		return nil, err
	}

	s := &Scanner{
		needle: bytes.Clone(needle),
		kernel: fromBytealg(bk),
	}
	off1, off2 := 0, len(needle)-1
	if cfg.ranks != nil {
		off1, off2 = selectRarePair(s.needle, cfg.ranks)
	}
	s.filter = newPairFilter(s.needle, off1, off2, bytealg.Mask(bk))
	return s, nil
}

// Len returns the needle length.
func (s *Scanner) Len() int { return len(s.needle) }

// Kernel returns the kernel the scanner runs on, never KernelAuto.
func (s *Scanner) Kernel() Kernel { return s.kernel }

// Offsets returns the two needle offsets the candidate filter compares.
func (s *Scanner) Offsets() (off1, off2 int) { return s.filter.off1, s.filter.off2 }

// Index returns the index of the first instance of the needle in
// haystack, or -1.
func (s *Scanner) Index(haystack []byte) int {
	return s.filter.index(haystack, s.needle, true)
}

// IndexString is like Index but for strings.
func (s *Scanner) IndexString(haystack string) int {
	return s.filter.index(bytesOf(haystack), s.needle, true)
}

// Contains reports whether the needle occurs in haystack.
func (s *Scanner) Contains(haystack []byte) bool {
	return s.filter.index(haystack, s.needle, true) >= 0
}

// MayContain reports whether haystack holds a candidate window: the
// needle's bytes at the two filter offsets (see Offsets) match. A false
// result is definitive.
func (s *Scanner) MayContain(haystack []byte) bool {
	return s.filter.index(haystack, s.needle, false) >= 0
}

// Count returns the number of non-overlapping instances of the needle.
func (s *Scanner) Count(haystack []byte) int {
	return s.filter.count(haystack, s.needle)
}

// IndexAll returns the offsets of non-overlapping instances of the needle,
// in order. n limits the number of offsets returned; n < 0 means all.
func (s *Scanner) IndexAll(haystack []byte, n int) []int {
	if n == 0 {
		return nil
	}
	return s.filter.appendAll(nil, haystack, s.needle, n)
}
