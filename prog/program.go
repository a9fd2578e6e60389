package prog

import (
	"fmt"
	"strings"
)

// Program is a compiled instruction sequence. Insts always ends with exactly
// one OpEmpty instruction. A Program is read-only after compilation and may
// be executed by any number of matchers at once.
type Program struct {
	// Insts is the caller's buffer truncated to the program, sentinel included
	Insts []Inst

	// Pattern is the source text; Text fields of Insts point into it
	Pattern string

	// NumCaptures is the number of capture groups
	NumCaptures int

	// Anchored is true when every match must start at offset 0: each
	// top-level alternation branch starts with OpBegin
	Anchored bool

	// ends caches BranchEnd for every instruction
	ends []int
}

// NewProgram wraps instructions produced by Compile: insts must be the
// buffer truncated to n+1 entries, where n is the count Compile returned.
func NewProgram(pattern string, insts []Inst) *Program {
	p := &Program{
		Insts:   insts,
		Pattern: pattern,
	}
	p.ends = make([]int, len(insts))
	for i := len(insts) - 1; i >= 0; i-- {
		switch insts[i].Op {
		case OpOr, OpCaptureEnd, OpEmpty:
			p.ends[i] = i
		case OpCaptureStart:
			p.ends[i] = p.ends[insts[i].Pair+1]
			p.NumCaptures++
		default:
			p.ends[i] = p.ends[i+1]
		}
	}
	p.Anchored = p.anchored()
	return p
}

// Len returns the number of instructions, not counting the sentinel.
func (p *Program) Len() int {
	return len(p.Insts) - 1
}

// BranchEnd returns the index of the Or or closing instruction that ends the
// alternation branch starting at pc. Nested groups are skipped whole.
func (p *Program) BranchEnd(pc int) int {
	if p.ends != nil {
		return p.ends[pc]
	}
	for {
		switch p.Insts[pc].Op {
		case OpOr, OpCaptureEnd, OpEmpty:
			return pc
		case OpCaptureStart:
			pc = p.Insts[pc].Pair + 1
		default:
			pc++
		}
	}
}

// Branches returns the [start, end) bounds of each top-level alternation
// branch.
func (p *Program) Branches() [][2]int {
	var out [][2]int
	pc := 0
	for {
		end := p.BranchEnd(pc)
		out = append(out, [2]int{pc, end})
		if p.Insts[end].Op != OpOr {
			return out
		}
		pc = end + 1
	}
}

func (p *Program) anchored() bool {
	for _, br := range p.Branches() {
		if br[0] == br[1] || p.Insts[br[0]].Op != OpBegin {
			return false
		}
	}
	return true
}
// String dumps the program, one instruction per line.
//
// Example output for `^(ab|c)+d`:
//
//	0000 Begin
//	0001 CaptureStart #0 -> 5 {1,}
//	0002 LiteralRun "ab"
//	0003 Or -> 5
//	0004 Literal 'c'
//	0005 CaptureEnd #0 -> 1
//	0006 Literal 'd'
//	0007 Empty
func (p *Program) String() string {
	var b strings.Builder
	for i := range p.Insts {
		fmt.Fprintf(&b, "%04d %s\n", i, p.Insts[i].String())
	}
	return b.String()
}
