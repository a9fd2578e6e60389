// Package prefilter provides fast candidate filtering for unanchored search
// using the literal prefixes extracted from a compiled program.
//
// A prefilter skips offsets of the subject that cannot start a match, so the
// backtracker only runs where one of the required literals occurs.
//
// The builder selects a strategy from the extracted literals:
//   - Single byte → memchr
//   - Single substring, or a common prefix of all literals → memmem
//   - Two or three distinct first bytes → memchr2 / memchr3
//   - Anything else → Aho-Corasick over the literals
//
//	p, _ := prog.NewDefaultCompiler().CompileProgram("hello|help", buf)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(p)
//	pf, _ := prefilter.NewBuilder(prefixes).Build() // memmem("hel")
//	pos := pf.Find([]byte("say hello"), 0)          // 4
package prefilter

import (
	"bytes"
	"fmt"

	"github.com/coregx/minire/literal"
	"github.com/coregx/minire/simd"
)

// Prefilter finds candidate match positions before running the matcher.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1
	// if no candidate exists. A candidate does not guarantee a match unless
	// IsComplete is true.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is a full match of length
	// LiteralLen, so verification can be skipped.
	IsComplete() bool

	// LiteralLen returns the match length when IsComplete is true, else 0.
	LiteralLen() int

	// String names the strategy and its needles for diagnostics.
	String() string
}

// Builder picks the cheapest search strategy for a literal sequence.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder returns a builder for prefixes. Build minimizes the sequence in
// place.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the prefilter for the builder's literals, or nil when there
// are no literals to search for.
//
// A prefilter is complete only when the program is a single literal: with
// several branches the first branch wins at a position, and the literal
// found there need not be that branch's.
func (b *Builder) Build() (Prefilter, error) {
	seq := b.prefixes
	if seq.IsEmpty() {
		return nil, nil
	}
	complete := seq.Len() == 1 && seq.AllComplete()
	seq.Minimize()

	if seq.Len() == 1 {
		return newLiteralPrefilter(seq.Get(0).Bytes, complete), nil
	}

	if lcp := seq.LongestCommonPrefix(); len(lcp) > 0 {
		return newLiteralPrefilter(lcp, false), nil
	}

	switch first := seq.FirstBytes(); len(first) {
	case 2:
		return &memchr2Prefilter{needles: [2]byte{first[0], first[1]}}, nil
	case 3:
		return &memchr3Prefilter{needles: [3]byte{first[0], first[1], first[2]}}, nil
	}

	return newAhoCorasickPrefilter(seq)
}

func newLiteralPrefilter(needle []byte, complete bool) Prefilter {
	if len(needle) == 1 {
		return &memchrPrefilter{needle: needle[0], complete: complete}
	}
	return &memmemPrefilter{needle: bytes.Clone(needle), complete: complete}
}

// memchrPrefilter looks for one byte: /a.*/ or the shared 'a' of /ab|ac/.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchrPrefilter) String() string {
	return fmt.Sprintf("memchr(%q)", p.needle)
}

// memmemPrefilter looks for a substring. It is complete only for programs
// like /hello/ that are nothing but the substring; /foo|foobar/ minimizes to
// an incomplete "foo".
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *memmemPrefilter) String() string {
	return fmt.Sprintf("memmem(%q)", p.needle)
}

// memchr2Prefilter searches for the first byte of two literal families,
// as in /cat|dog/.
type memchr2Prefilter struct {
	needles [2]byte
}

func (p *memchr2Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr2(haystack[start:], p.needles[0], p.needles[1])
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchr2Prefilter) IsComplete() bool { return false }

func (p *memchr2Prefilter) LiteralLen() int { return 0 }

func (p *memchr2Prefilter) String() string {
	return fmt.Sprintf("memchr2(%q, %q)", p.needles[0], p.needles[1])
}

// memchr3Prefilter is memchr2Prefilter for three first bytes.
type memchr3Prefilter struct {
	needles [3]byte
}

func (p *memchr3Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr3(haystack[start:], p.needles[0], p.needles[1], p.needles[2])
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchr3Prefilter) IsComplete() bool { return false }

func (p *memchr3Prefilter) LiteralLen() int { return 0 }

func (p *memchr3Prefilter) String() string {
	return fmt.Sprintf("memchr3(%q, %q, %q)", p.needles[0], p.needles[1], p.needles[2])
}
