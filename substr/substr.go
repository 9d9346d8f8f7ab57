// Package substr implements substring search filtered by a two-byte
// candidate test evaluated BlockSize lanes at a time.
//
// Every window of the haystack whose first byte equals the needle's first
// byte and whose last byte equals the needle's last byte is a candidate.
// Candidates are found a block at a time with parallel byte compares
// (archsimd registers when available, 64-bit SWAR words otherwise) and,
// for the exact entry points, verified against the whole needle.
//
// Two contracts are exposed under distinct names:
//   - Index, Contains and Count report exact matches.
//   - MayContain only reports whether a candidate window exists. It never
//     misses a real match but may report windows whose interior differs.
//
// No function reads past the end of the haystack: the last partial block
// is checked lane by lane instead of with a full-width load.
package substr

import (
	"bytes"
	"unsafe"
)

// Index returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. An empty needle matches at 0.
func Index(haystack, needle []byte) int {
	switch k := len(needle); {
	case k == 0:
		return 0
	case k > len(haystack):
		return -1
	case k == 1:
		return bytes.IndexByte(haystack, needle[0])
	}
	f := firstLast(needle, defaultMask)
	return f.index(haystack, needle, true)
}

// IndexString is like Index but for strings. It does not copy.
func IndexString(haystack, needle string) int {
	return Index(bytesOf(haystack), bytesOf(needle))
}

// Contains reports whether needle occurs in haystack.
func Contains(haystack, needle []byte) bool {
	return Index(haystack, needle) >= 0
}

// ContainsString is like Contains but for strings.
func ContainsString(haystack, needle string) bool {
	return Index(bytesOf(haystack), bytesOf(needle)) >= 0
}

// MayContain reports whether haystack holds a window of len(needle) bytes
// that starts with needle's first byte and ends with needle's last byte.
// The interior of the window is not checked, so a true result is only a
// candidate; a false result is definitive. For needles of one or two
// bytes the answer is exact.
func MayContain(haystack, needle []byte) bool {
	k := len(needle)
	if k == 0 {
		return true
	}
	if k > len(haystack) {
		return false
	}
	f := firstLast(needle, defaultMask)
	return f.index(haystack, needle, false) >= 0
}

// MayContainString is like MayContain but for strings.
func MayContainString(haystack, needle string) bool {
	return MayContain(bytesOf(haystack), bytesOf(needle))
}

// Count returns the number of non-overlapping instances of needle in
// haystack. An empty needle matches at every position, len(haystack)+1
// times.
func Count(haystack, needle []byte) int {
	if len(needle) == 0 {
		return len(haystack) + 1
	}
	f := firstLast(needle, defaultMask)
	return f.count(haystack, needle)
}

// bytesOf views s as a byte slice. The result must not be written to.
func bytesOf(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
