// Package literal finds the literal text every match of a compiled program
// has to begin with.
//
// Unanchored searches use it to skip ahead: when each top-level branch of
// /cat|dog/ opens with a literal, the matcher only needs to be started at
// offsets where "cat" or "dog" occurs.
package literal

import (
	"bytes"
	"slices"
)

// Literal is a byte string a match may begin with. Complete is set when the
// literal is the entire branch it came from, so finding it is finding a
// match:
//
//	/hello/      → {hello, complete}
//	/hello.*x/   → {hello, incomplete}
type Literal struct {
	// Bytes holds the unescaped text.
	Bytes []byte

	Complete bool
}

// NewLiteral returns a Literal over b.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns len(l.Bytes).
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String formats the literal as literal{text, complete=bool}.
func (l Literal) String() string {
	var b bytes.Buffer
	b.WriteString("literal{")
	b.Write(l.Bytes)
	if l.Complete {
		b.WriteString(", complete=true}")
	} else {
		b.WriteString(", complete=false}")
	}
	return b.String()
}

// Seq is a set of alternative literals, in branch order. A nil *Seq is an
// empty set.
type Seq struct {
	literals []Literal
}

// NewSeq returns a sequence holding lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

func (s *Seq) Len() int {
	if s.IsEmpty() {
		return 0
	}
	return len(s.literals)
}

// Get returns literal i. It panics when i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// AllComplete reports whether every literal is a complete branch.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Minimize drops every literal that has a shorter kept literal as a prefix,
// since each of its occurrences is already a candidate for the shorter one.
// The survivors are ordered by length. A survivor turns complete when a
// complete duplicate of it is dropped.
//
//	[foobar foo] → [foo]
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	slices.SortStableFunc(s.literals, func(a, b Literal) int {
		return len(a.Bytes) - len(b.Bytes)
	})

	out := s.literals[:0:0]
next:
	for _, lit := range s.literals {
		for j := range out {
			if !bytes.HasPrefix(lit.Bytes, out[j].Bytes) {
				continue
			}
			if lit.Complete && len(lit.Bytes) == len(out[j].Bytes) {
				out[j].Complete = true
			}
			continue next
		}
		out = append(out, lit)
	}
	s.literals = out
}

// MinLen returns the length of the shortest literal, or 0 for an empty
// sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		n = min(n, len(lit.Bytes))
	}
	return n
}

// FirstBytes returns the distinct first bytes of the literals in order of
// appearance. Empty literals are ignored.
func (s *Seq) FirstBytes() []byte {
	var out []byte
	for i := 0; i < s.Len(); i++ {
		b := s.literals[i].Bytes
		if len(b) > 0 && bytes.IndexByte(out, b[0]) < 0 {
			out = append(out, b[0])
		}
	}
	return out
}

// LongestCommonPrefix returns a copy of the prefix shared by all literals.
// It is empty when the sequence is.
//
//	[hello help hero] → "he"
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	n := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		n = min(n, sharedPrefixLen(s.literals[0].Bytes, lit.Bytes))
	}
	return bytes.Clone(s.literals[0].Bytes[:n])
}

func sharedPrefixLen(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
