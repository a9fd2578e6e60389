package backtrack

import "github.com/coregx/minire/prog"

// repeat matches a quantified atom (byte, class, dot or literal run).
//
// Repetitions are consumed one at a time up to Max. Whenever the count is at
// least Min the continuation is tried at the current position and the first
// count it accepts is locked in. When the tail is trivial nothing can be
// gained by trying early, so the atom consumes as much as it can and the
// continuation is checked once at the end.
//
// prog.RepeatInf means no upper bound.
func (b *Backtracker) repeat(in *prog.Inst, pos int, trivial bool, k cont) bool {
	count := 0
	for {
		if !trivial && count >= in.Min {
			if k(pos) {
				return true
			}
			if b.err != nil {
				return false
			}
		}
		if in.Max != prog.RepeatInf && count >= in.Max {
			break
		}
		w, ok := b.step(in, pos)
		if !ok {
			break
		}
		pos += w
		count++
	}
	return trivial && count >= in.Min && k(pos)
}

// repeatGroup matches a quantified group opened at pc with the same policy
// as repeat. Each iteration may end at several positions (the body can
// alternate), so iterations recurse through the group continuation. An
// iteration that consumes nothing ends the repetition once Min is reached.
//
// Once Min is reached an unbounded group behaves the same at a given
// position whatever the count, so positions where the remainder already
// failed are recorded in a bitset and not explored again.
func (b *Backtracker) repeatGroup(pc, pos int, k cont) bool {
	in := &b.insts[pc]
	trivial := b.trivialTail(in.Pair + 1)
	var failed []uint64

	var iterate func(count, pos int) bool
	iterate = func(count, pos int) bool {
		memo := in.Max == prog.RepeatInf && count >= in.Min
		if memo && failed != nil && failed[pos/64]&(1<<(pos%64)) != 0 {
			return false
		}
		if !trivial && count >= in.Min && k(pos) {
			return true
		}
		if b.err != nil {
			return false
		}
		if in.Max == prog.RepeatInf || count < in.Max {
			more := b.group(pc, pos, func(p int) bool {
				if p == pos && count >= in.Min {
					return false
				}
				return iterate(count+1, p)
			})
			if more {
				return true
			}
		}
		if trivial && count >= in.Min && k(pos) {
			return true
		}
		if memo && b.err == nil {
			if failed == nil {
				failed = make([]uint64, len(b.subject)/64+1)
			}
			failed[pos/64] |= 1 << (pos % 64)
		}
		return false
	}
	return iterate(0, pos)
}

// repeatFlat matches a quantified group whose body has a single way to
// match. Every iteration has one end position, so the iterations run in a
// loop instead of nesting continuations. The outcome is the one
// repeatGroup would produce.
func (b *Backtracker) repeatFlat(pc, pos int, k cont) bool {
	in := &b.insts[pc]
	trivial := b.trivialTail(in.Pair + 1)
	g := in.Group
	saved := prog.NoSpan
	if b.caps != nil {
		saved = b.caps[g]
	}

	count := 0
	for {
		if !trivial && count >= in.Min {
			if k(pos) {
				return true
			}
			if b.err != nil {
				break
			}
		}
		if in.Max != prog.RepeatInf && count >= in.Max {
			break
		}
		end, ok := b.flatBody(pc+1, in.Pair, pos)
		if !ok || (end == pos && count >= in.Min) {
			break
		}
		if b.caps != nil {
			b.caps[g] = prog.Span{Offset: pos, Length: end - pos}
		}
		pos = end
		count++
	}
	if trivial && b.err == nil && count >= in.Min && k(pos) {
		return true
	}
	if b.caps != nil {
		b.caps[g] = saved
	}
	return false
}

// flatBody matches the instructions [pc, end) once at pos.
func (b *Backtracker) flatBody(pc, end, pos int) (int, bool) {
	for ; pc < end; pc++ {
		in := &b.insts[pc]
		switch in.Op {
		case prog.OpBegin:
			if pos != 0 {
				return 0, false
			}
		case prog.OpEnd:
			if pos != len(b.subject) {
				return 0, false
			}
		default:
			w, ok := b.step(in, pos)
			if !ok {
				return 0, false
			}
			pos += w
		}
	}
	return pos, true
}
