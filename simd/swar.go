package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// zeroBytes sets the high bit of every zero byte of v. Borrows can mark bytes
// above the first zero byte too, so only the lowest set bit is exact.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// firstZero converts a zeroBytes mask to the index of the first zero byte.
func firstZero(mask uint64) int {
	return bits.TrailingZeros64(mask) >> 3
}

func memchrSWAR(haystack []byte, needle byte) int {
	n := len(haystack)
	m := uint64(needle) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk ^ m); z != 0 {
			return i + firstZero(z)
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

func memchr2SWAR(haystack []byte, needle1, needle2 byte) int {
	n := len(haystack)
	m1 := uint64(needle1) * lo8
	m2 := uint64(needle2) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^m1) | zeroBytes(chunk^m2); z != 0 {
			return i + firstZero(z)
		}
	}
	for ; i < n; i++ {
		if c := haystack[i]; c == needle1 || c == needle2 {
			return i
		}
	}
	return -1
}

func memchr3SWAR(haystack []byte, needle1, needle2, needle3 byte) int {
	n := len(haystack)
	m1 := uint64(needle1) * lo8
	m2 := uint64(needle2) * lo8
	m3 := uint64(needle3) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^m1) | zeroBytes(chunk^m2) | zeroBytes(chunk^m3); z != 0 {
			return i + firstZero(z)
		}
	}
	for ; i < n; i++ {
		if c := haystack[i]; c == needle1 || c == needle2 || c == needle3 {
			return i
		}
	}
	return -1
}
