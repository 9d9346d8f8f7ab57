package substr

// byteRank ranks bytes by how often they occur in typical text and code.
// Lower rank = rarer byte = fewer false candidates when used as a filter
// byte. Derived from the memchr BYTE_FREQUENCIES corpus (CIA World
// Factbook, rustc source, Septuaginta); UTF-8 lead bytes 0xC0-0xFF are
// pinned to 255 since continuation bytes discriminate better.
var byteRank = [256]byte{
	55, 52, 51, 50, 49, 48, 47, 46, 45, 103, 242, 66, 67, 229, 44, 43,
	42, 41, 40, 39, 38, 37, 36, 35, 34, 33, 56, 32, 31, 30, 29, 28,
	255, 148, 164, 149, 136, 160, 155, 173, 221, 222, 134, 122, 232, 202, 215, 224,
	208, 220, 204, 187, 183, 179, 177, 168, 178, 200, 226, 195, 154, 184, 174, 126,
	120, 191, 157, 194, 170, 189, 162, 161, 150, 193, 142, 137, 171, 176, 185, 167,
	186, 112, 175, 192, 188, 156, 140, 143, 123, 133, 128, 147, 138, 146, 114, 223,
	151, 249, 216, 238, 236, 253, 227, 218, 230, 247, 135, 180, 241, 233, 246, 244,
	231, 139, 245, 243, 251, 235, 201, 196, 240, 214, 152, 182, 205, 181, 127, 27,
	212, 211, 210, 213, 228, 197, 169, 159, 131, 172, 105, 80, 98, 96, 97, 81,
	207, 145, 116, 115, 144, 130, 153, 121, 107, 132, 109, 110, 124, 111, 82, 108,
	118, 141, 113, 129, 119, 125, 165, 117, 92, 106, 83, 72, 99, 93, 65, 79,
	166, 237, 163, 199, 190, 225, 209, 203, 198, 217, 219, 206, 234, 248, 158, 239,
	255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255,
	255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255,
	255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255,
	255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255,
}

// DefaultRanks returns a copy of the built-in rank table, ready to be
// adjusted and passed to WithRanks.
func DefaultRanks() [256]byte {
	return byteRank
}

// selectRarePair returns the offsets of the two rarest distinct bytes of
// needle under ranks, with off1 <= off2. Needles made of a single repeated
// byte fall back to the first and last offsets.
func selectRarePair(needle []byte, ranks *[256]byte) (off1, off2 int) {
	n := len(needle)
	if n == 1 {
		return 0, 0
	}

	best1, best2 := 0, -1
	for i := 1; i < n; i++ {
		c := needle[i]
		switch {
		case ranks[c] < ranks[needle[best1]]:
			best2, best1 = best1, i
		case c != needle[best1] && (best2 < 0 || ranks[c] < ranks[needle[best2]]):
			best2 = i
		}
	}

	if best2 < 0 {
		return 0, n - 1
	}
	if best1 > best2 {
		best1, best2 = best2, best1
	}
	return best1, best2
}

// BuildRankTable builds a rank table from a corpus sample: the most
// frequent byte gets 255, bytes absent from the sample get 0.
//
//	sample, _ := os.ReadFile("access.log")
//	ranks := substr.BuildRankTable(sample)
//	s, err := substr.NewScanner(needle, substr.WithRanks(ranks[:]))
func BuildRankTable(corpus []byte) [256]byte {
	var counts [256]int
	for _, c := range corpus {
		counts[c]++
	}

	maxCount := 1
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}

	var ranks [256]byte
	for i, c := range counts {
		ranks[i] = byte(c * 255 / maxCount)
	}
	return ranks
}
