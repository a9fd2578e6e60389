// Package prog defines the compiled instruction program executed by the
// backtracking matcher, and the compiler that produces it from pattern text.
//
// A program is a flat sequence of instructions terminated by a single OpEmpty
// sentinel. Instructions never own pattern bytes: literal runs and character
// classes hold substrings of the pattern they were compiled from.
package prog

import (
	"fmt"
	"strconv"
	"strings"
)

// RepeatInf is the upper bound used for unbounded quantifiers (*, +, {m,}).
const RepeatInf = 0x7FFF

// Op identifies the kind of an instruction.
type Op uint8

const (
	// OpEmpty terminates every program.
	OpEmpty Op = iota

	// OpBegin asserts the start of the subject (^)
	OpBegin

	// OpEnd asserts the end of the subject ($)
	OpEnd

	// OpDot matches any single byte
	OpDot

	// OpOr separates alternation branches. It never matches input itself.
	OpOr

	// OpLiteral matches a single byte
	OpLiteral

	// OpLiteralRun matches a run of literal bytes, possibly with escape pairs
	OpLiteralRun

	// OpCharClass matches one byte against a bracket class or a \w \s \d escape
	OpCharClass

	// OpCharClassNegated is the complement of OpCharClass
	OpCharClassNegated

	// OpCaptureStart opens a capture group
	OpCaptureStart

	// OpCaptureEnd closes a capture group
	OpCaptureEnd
)

// String returns a human-readable representation of the Op
func (op Op) String() string {
	switch op {
	case OpEmpty:
		return "Empty"
	case OpBegin:
		return "Begin"
	case OpEnd:
		return "End"
	case OpDot:
		return "Dot"
	case OpOr:
		return "Or"
	case OpLiteral:
		return "Literal"
	case OpLiteralRun:
		return "LiteralRun"
	case OpCharClass:
		return "CharClass"
	case OpCharClassNegated:
		return "CharClassNegated"
	case OpCaptureStart:
		return "CaptureStart"
	case OpCaptureEnd:
		return "CaptureEnd"
	default:
		return fmt.Sprintf("Unknown(%d)", op)
	}
}

// Inst is a single compiled instruction.
//
// Which payload fields are meaningful depends on Op:
//   - OpLiteral: Char
//   - OpLiteralRun: Text holds the run as written in the pattern, escape pairs included
//   - OpCharClass, OpCharClassNegated: Text holds the bracket contents (without
//     the brackets and the negating ^) or a two-byte escape such as `\d`
//   - OpCaptureStart, OpCaptureEnd: Group and Pair
//   - OpOr: Pair is the index of the instruction closing the alternation
//
// Rep reports whether the instruction carries a quantifier; when false the
// instruction matches exactly once and Min/Max are zero.
type Inst struct {
	Op   Op
	Char byte
	Text string

	Rep      bool
	Min, Max int

	// Pair links structural markers: CaptureStart <-> CaptureEnd, and Or to
	// the CaptureEnd or OpEmpty that closes its alternation.
	Pair int

	// Group is the capture index of a capture marker, in order of the
	// opening parenthesis.
	Group int
}

// Matchable reports whether the instruction consumes subject bytes.
func (in *Inst) Matchable() bool {
	switch in.Op {
	case OpDot, OpLiteral, OpLiteralRun, OpCharClass, OpCharClassNegated:
		return true
	}
	return false
}

// Width returns the number of subject bytes one repetition of the
// instruction consumes. Escape bytes inside a literal run do not count.
func (in *Inst) Width() int {
	if in.Op != OpLiteralRun {
		if in.Matchable() {
			return 1
		}
		return 0
	}
	n := 0
	for i := 0; i < len(in.Text); i++ {
		if in.Text[i] == '\\' && i+1 < len(in.Text) {
			i++
		}
		n++
	}
	return n
}

// Literal returns the bytes a literal instruction matches, with escape
// bytes removed. It returns nil for other instructions.
func (in *Inst) Literal() []byte {
	switch in.Op {
	case OpLiteral:
		return []byte{in.Char}
	case OpLiteralRun:
		lit := make([]byte, 0, len(in.Text))
		for i := 0; i < len(in.Text); i++ {
			if in.Text[i] == '\\' && i+1 < len(in.Text) {
				i++
			}
			lit = append(lit, in.Text[i])
		}
		return lit
	}
	return nil
}

// String formats the instruction for program dumps.
func (in *Inst) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	switch in.Op {
	case OpLiteral:
		b.WriteByte(' ')
		b.WriteString(strconv.QuoteRune(rune(in.Char)))
	case OpLiteralRun:
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(in.Text))
	case OpCharClass, OpCharClassNegated:
		b.WriteString(" [")
		b.WriteString(in.Text)
		b.WriteByte(']')
	case OpCaptureStart, OpCaptureEnd:
		fmt.Fprintf(&b, " #%d -> %d", in.Group, in.Pair)
	case OpOr:
		fmt.Fprintf(&b, " -> %d", in.Pair)
	}
	if in.Rep {
		if in.Max == RepeatInf {
			fmt.Fprintf(&b, " {%d,}", in.Min)
		} else {
			fmt.Fprintf(&b, " {%d,%d}", in.Min, in.Max)
		}
	}
	return b.String()
}

// Span is the location of a capture group in the subject.
// An unset span has Offset -1.
type Span struct {
	Offset int
	Length int
}

// NoSpan is the value of a capture slot that did not participate in a match.
var NoSpan = Span{Offset: -1}

// End returns the subject offset just past the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Valid reports whether the span was recorded.
func (s Span) Valid() bool {
	return s.Offset >= 0
}
