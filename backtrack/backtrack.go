// Package backtrack executes compiled programs with a recursive backtracking
// matcher.
//
// The matcher walks the instruction cursor in a loop and recurses only at
// choice points (alternation branches and quantifier counts). At each choice
// it tries one candidate and asks a continuation whether the rest of the
// program matches the rest of the subject. The first candidate whose
// continuation succeeds is kept; no other candidates are explored afterwards.
//
// Anchors are local to their alternation branch: in `^cat|dog$` the ^ binds
// only "cat" and the $ only "dog".
package backtrack

import (
	"github.com/coregx/minire/prog"
)

// Config controls matcher resource limits
type Config struct {
	// MaxDepth limits how deeply continuations may nest before the match is
	// aborted with ErrDepthExceeded. Every choice point costs one level, and
	// so does every iteration of a quantified group whose body can end in
	// more than one place; groups of plain atoms such as (ab)+ are iterated
	// in a loop.
	// Default: 10000
	MaxDepth int

	// MaxSteps limits the number of branches and continuations one match
	// attempt may enter before it is aborted with ErrStepLimit. The budget
	// applies to each start offset separately.
	// Default: 1000000
	MaxSteps int
}

// DefaultConfig returns the default matcher configuration
func DefaultConfig() Config {
	return Config{
		MaxDepth: 10000,
		MaxSteps: 1_000_000,
	}
}

// cont is the continuation of a match: it reports whether the remainder of
// the program matches from subject offset pos.
type cont func(pos int) bool

// Backtracker matches one program against subjects. It holds per-match state
// and must not be shared between goroutines; the Program it runs may be.
type Backtracker struct {
	prog   *prog.Program
	insts  []prog.Inst
	config Config

	// flat marks quantified groups whose body is a fixed sequence of
	// unquantified atoms and anchors
	flat []bool

	subject []byte
	caps    []prog.Span
	depth   int
	steps   int
	err     error
}

// New creates a backtracker for p.
func New(p *prog.Program, config Config) *Backtracker {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	if config.MaxSteps <= 0 {
		config.MaxSteps = DefaultConfig().MaxSteps
	}
	b := &Backtracker{
		prog:   p,
		insts:  p.Insts,
		config: config,
		flat:   make([]bool, len(p.Insts)),
	}
	for pc := range p.Insts {
		b.flat[pc] = isFlatGroup(p.Insts, pc)
	}
	return b
}

// isFlatGroup reports whether pc opens a quantified group whose body has a
// single way to match, so each iteration has at most one end position.
func isFlatGroup(insts []prog.Inst, pc int) bool {
	in := &insts[pc]
	if in.Op != prog.OpCaptureStart || !in.Rep {
		return false
	}
	for i := pc + 1; i < in.Pair; i++ {
		body := &insts[i]
		if body.Rep {
			return false
		}
		switch body.Op {
		case prog.OpBegin, prog.OpEnd:
		default:
			if !body.Matchable() {
				return false
			}
		}
	}
	return true
}

// Exec matches the program against subject starting exactly at offset start.
// It returns the offset where the match ended.
//
// If caps is non-nil it must hold at least NumCaptures slots; slot i receives
// the span of group i (source order of the opening parenthesis) or
// prog.NoSpan when the group did not participate. A group matched several
// times by a quantifier keeps its last iteration.
func (b *Backtracker) Exec(subject []byte, start int, caps []prog.Span) (end int, ok bool, err error) {
	if caps != nil && len(caps) < b.prog.NumCaptures {
		return -1, false, ErrCaptureCapacity
	}
	b.subject = subject
	b.caps = caps
	b.depth = 0
	b.steps = 0
	b.err = nil
	for i := 0; i < b.prog.NumCaptures && caps != nil; i++ {
		caps[i] = prog.NoSpan
	}

	end = -1
	ok = b.alt(0, start, func(pos int) bool {
		end = pos
		return true
	})
	b.subject = nil
	b.caps = nil
	if b.err != nil {
		return -1, false, b.err
	}
	return end, ok, nil
}

// Search finds the leftmost start offset at which the program matches.
// Anchored programs are only tried at offset 0. When next is non-nil it is
// called with the lowest offset still to be tried and returns the next
// candidate offset, or -1 when no candidate remains.
func (b *Backtracker) Search(subject []byte, caps []prog.Span, next func(from int) int) (start, end int, ok bool, err error) {
	if b.prog.Anchored {
		end, ok, err = b.Exec(subject, 0, caps)
		if !ok {
			return -1, -1, false, err
		}
		return 0, end, true, nil
	}
	for at := 0; at <= len(subject); at++ {
		if next != nil {
			if at = next(at); at < 0 {
				break
			}
		}
		end, ok, err = b.Exec(subject, at, caps)
		if err != nil {
			return -1, -1, false, err
		}
		if ok {
			return at, end, true, nil
		}
	}
	return -1, -1, false, nil
}

// alt tries the alternation branches starting at pc in order. A branch is
// accepted only if its continuation succeeds; later branches are then skipped.
func (b *Backtracker) alt(pc, pos int, k cont) bool {
	for {
		end := b.prog.BranchEnd(pc)
		if b.run(pc, end, pos, k) {
			return true
		}
		if b.err != nil || b.insts[end].Op != prog.OpOr {
			return false
		}
		pc = end + 1
	}
}

// run executes the branch instructions in [pc, end) and hands the final
// position to k.
func (b *Backtracker) run(pc, end, pos int, k cont) bool {
	if !b.enter() {
		return false
	}
	defer b.leave()

	for pc < end {
		in := &b.insts[pc]
		switch in.Op {
		case prog.OpBegin:
			if pos != 0 {
				return false
			}
			pc++
			continue
		case prog.OpEnd:
			if pos != len(b.subject) {
				return false
			}
			pc++
			continue
		case prog.OpCaptureStart:
			after := in.Pair + 1
			rest := func(p int) bool { return b.run(after, end, p, k) }
			switch {
			case b.flat[pc]:
				return b.repeatFlat(pc, pos, rest)
			case in.Rep:
				return b.repeatGroup(pc, pos, rest)
			}
			return b.group(pc, pos, rest)
		}

		if in.Rep {
			after := pc + 1
			return b.repeat(in, pos, b.trivialTail(after), func(p int) bool {
				return b.run(after, end, p, k)
			})
		}
		w, ok := b.step(in, pos)
		if !ok {
			return false
		}
		pos += w
		pc++
	}
	return k(pos)
}

// group matches the body of the group opened at pc and records its span on exit.
func (b *Backtracker) group(pc, pos int, k cont) bool {
	g := b.insts[pc].Group
	return b.alt(pc+1, pos, func(p int) bool {
		if b.caps == nil {
			return k(p)
		}
		saved := b.caps[g]
		b.caps[g] = prog.Span{Offset: pos, Length: p - pos}
		if k(p) {
			return true
		}
		b.caps[g] = saved
		return false
	})
}

// step matches one repetition of a consuming instruction at pos and returns
// the number of bytes consumed.
func (b *Backtracker) step(in *prog.Inst, pos int) (int, bool) {
	if in.Op == prog.OpLiteralRun {
		return b.matchRun(in, pos)
	}
	if pos >= len(b.subject) || !matchOne(in, b.subject[pos]) {
		return 0, false
	}
	return 1, true
}

// matchRun compares a literal run byte for byte. An escape byte in the run
// is not compared; the byte after it is compared literally.
func (b *Backtracker) matchRun(in *prog.Inst, pos int) (int, bool) {
	if pos+in.Width() > len(b.subject) {
		return 0, false
	}
	text := in.Text
	j := pos
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			i++
			c = text[i]
		}
		if j >= len(b.subject) || b.subject[j] != c {
			return 0, false
		}
		j++
	}
	return j - pos, true
}

// trivialTail reports whether everything from pc to the end of the program
// is capture exits, $ anchors and the sentinel, so that a quantifier before
// pc can consume greedily and check the remainder once.
func (b *Backtracker) trivialTail(pc int) bool {
	for {
		in := &b.insts[pc]
		switch in.Op {
		case prog.OpEmpty:
			return true
		case prog.OpEnd:
			pc++
		case prog.OpOr:
			pc = in.Pair
		case prog.OpCaptureEnd:
			if b.insts[in.Pair].Rep {
				return false
			}
			pc++
		default:
			return false
		}
	}
}

func (b *Backtracker) enter() bool {
	if b.err != nil {
		return false
	}
	b.steps++
	if b.steps > b.config.MaxSteps {
		b.err = ErrStepLimit
		return false
	}
	b.depth++
	if b.depth > b.config.MaxDepth {
		b.depth--
		b.err = ErrDepthExceeded
		return false
	}
	return true
}

func (b *Backtracker) leave() {
	b.depth--
}
