// Package simd provides fast byte and substring search used by the prefilters.
//
// On CPUs with wide vector units (AVX2 on amd64, ASIMD on arm64) the searches
// defer to the runtime's vectorized bytes.IndexByte. Elsewhere they use SWAR
// (SIMD Within A Register) loops that test eight bytes per iteration.
package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// vectorMin is the haystack length below which the SWAR loop beats the
// vectorized path on setup cost.
const vectorMin = 32

// hasVector reports whether bytes.IndexByte is backed by a vector unit.
var hasVector = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o')
//	// pos == 4
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if hasVector && len(haystack) >= vectorMin {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrSWAR(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present.
//
// Example:
//
//	pos := simd.Memchr2([]byte("Hello, world!"), ',', '!')
//	// pos == 5
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	if len(haystack) == 0 {
		return -1
	}
	return memchr2SWAR(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first instance of needle1, needle2 or
// needle3 in haystack, or -1 if none are present.
//
// Example:
//
//	pos := simd.Memchr3([]byte("name,age;city"), ',', ';', '|')
//	// pos == 4
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	if len(haystack) == 0 {
		return -1
	}
	return memchr3SWAR(haystack, needle1, needle2, needle3)
}
