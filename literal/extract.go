package literal

import "github.com/coregx/minire/prog"

// ExtractorConfig configures literal extraction
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in the result.
	// Extraction gives up (returns an empty Seq) beyond it.
	// Default: 64
	MaxLiterals int
}

// DefaultConfig returns the default extraction configuration
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals: 64,
	}
}

// Extractor extracts required literal prefixes from compiled programs.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new extractor with the given configuration
func New(config ExtractorConfig) *Extractor {
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = DefaultConfig().MaxLiterals
	}
	return &Extractor{config: config}
}

// ExtractPrefixes returns the literals that every match of p starts with:
// one or more per top-level alternation branch. If any branch can start with
// something other than a literal (a class, dot, anchor, optional atom, ...)
// the result is empty, because no literal search can find its matches.
//
// Example:
//
//	p, _ := prog.NewDefaultCompiler().CompileProgram("cat|dog", buf)
//	seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(p)
//	// seq = [literal{cat, complete=true}, literal{dog, complete=true}]
func (e *Extractor) ExtractPrefixes(p *prog.Program) *Seq {
	lits, ok := e.branches(p, 0)
	if !ok || len(lits) > e.config.MaxLiterals {
		return NewSeq()
	}
	return NewSeq(lits...)
}

// branches collects prefixes for each branch of the alternation starting at pc.
func (e *Extractor) branches(p *prog.Program, pc int) ([]Literal, bool) {
	var out []Literal
	for {
		end := p.BranchEnd(pc)
		lits, ok := e.prefixes(p, pc, end)
		if !ok {
			return nil, false
		}
		out = append(out, lits...)
		if len(out) > e.config.MaxLiterals {
			return nil, false
		}
		if p.Insts[end].Op != prog.OpOr {
			return out, true
		}
		pc = end + 1
	}
}

// prefixes returns the literals the branch [pc, end) must start with.
func (e *Extractor) prefixes(p *prog.Program, pc, end int) ([]Literal, bool) {
	if pc >= end {
		return nil, false
	}
	in := &p.Insts[pc]
	if in.Rep && in.Min == 0 {
		return nil, false
	}
	switch in.Op {
	case prog.OpLiteral, prog.OpLiteralRun:
		complete := !in.Rep && pc+1 == end
		return []Literal{NewLiteral(in.Literal(), complete)}, true
	case prog.OpCaptureStart:
		lits, ok := e.branches(p, pc+1)
		if !ok {
			return nil, false
		}
		// Group contents never make the outer branch complete.
		for i := range lits {
			lits[i].Complete = false
		}
		return lits, true
	}
	return nil, false
}
