package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. An empty needle matches at 0.
//
// The search scans for the rarest byte of needle with Memchr and verifies
// the full needle around each candidate.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))
//	// pos == 4
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare, idx := RareByte(needle)
	last := len(haystack) - len(needle)
	from := idx
	for from < len(haystack) {
		pos := Memchr(haystack[from:], rare)
		if pos < 0 {
			return -1
		}
		start := from + pos - idx
		if start > last {
			return -1
		}
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		from += pos + 1
	}
	return -1
}

// RareByte returns the byte of needle least likely to occur in typical text
// and its index. Ties go to the later position. needle must not be empty.
func RareByte(needle []byte) (b byte, index int) {
	index = len(needle) - 1
	for i := index - 1; i >= 0; i-- {
		if byteRank[needle[i]] < byteRank[needle[index]] {
			index = i
		}
	}
	return needle[index], index
}

// frequentBytes lists printable bytes from most to least common in English
// text and source code.
const frequentBytes = " etaoinsrhldcumfpgwyb,.vk\n_=)(;\"'-0x1/2:*>TASCEIN{}RDOLMPFB34\tjq59786<&|[]#!?+%$@HWGUVKYJXQZ\\^`~z"

// byteRank ranks every byte by frequency; lower is rarer. Bytes missing from
// frequentBytes (controls, non-ASCII) rank 0.
var byteRank = func() (rank [256]uint8) {
	for i := 0; i < len(frequentBytes); i++ {
		rank[frequentBytes[i]] = uint8(len(frequentBytes) - i)
	}
	return rank
}()
