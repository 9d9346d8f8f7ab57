package substr

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/coregx/ahocorasick"
	"github.com/stretchr/testify/require"
)

// TestIndexMatchesAutomaton cross-checks every kernel against a
// single-pattern Aho-Corasick automaton on inputs with dense partial
// matches.
func TestIndexMatchesAutomaton(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for iter := 0; iter < 300; iter++ {
		needle := randBytes(rng, 1+rng.Intn(12), "ab")

		builder := ahocorasick.NewBuilder()
		builder.AddPattern(needle)
		auto, err := builder.Build()
		require.NoError(t, err)

		var scanners []*Scanner
		for _, k := range Kernels() {
			s, err := NewScanner(needle, WithKernel(k))
			require.NoError(t, err)
			scanners = append(scanners, s)
		}

		for j := 0; j < 20; j++ {
			h := randBytes(rng, 1+rng.Intn(300), "aab")
			want := -1
			if m := auto.Find(h, 0); m != nil {
				want = m.Start
			}
			require.Equal(t, want >= 0, auto.IsMatch(h))

			require.Equal(t, want, Index(h, needle), "Index(%q, %q)", h, needle)
			for _, s := range scanners {
				require.Equal(t, want, s.Index(h), "kernel=%s Index(%q, %q)", s.Kernel(), h, needle)
			}
		}
	}
}

// TestTortureInputs runs long periodic haystacks where nearly every block
// produces candidates that fail verification.
func TestTortureInputs(t *testing.T) {
	tests := []struct {
		name     string
		haystack []byte
		needle   []byte
	}{
		{"samechar", append(bytes.Repeat([]byte("a"), 4096), 'b'), []byte("aaaaaaab")},
		{"first_last_equal", bytes.Repeat([]byte("a.a"), 2000), []byte("a..a")},
		{"periodic_miss", bytes.Repeat([]byte("ABC"), 1<<10), append(bytes.Repeat([]byte("ABC"), 20), 'D')},
		{"skip64", bytes.Repeat(append([]byte("a"), bytes.Repeat([]byte(" "), 63)...), 64), []byte("aa")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := bytes.Index(tt.haystack, tt.needle)
			for _, k := range Kernels() {
				s, err := NewScanner(tt.needle, WithKernel(k))
				require.NoError(t, err)
				require.Equal(t, want, s.Index(tt.haystack), "kernel=%s", k)
				require.Equal(t, bytes.Count(tt.haystack, tt.needle), s.Count(tt.haystack), "kernel=%s", k)
			}
		})
	}
}
