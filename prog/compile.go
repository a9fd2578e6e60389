package prog

// CompilerConfig configures pattern compilation
type CompilerConfig struct {
	// StrictBraces turns {m,n} with m > n into ErrInvalidRepeatBounds.
	// When false the brace group is read as literal text.
	// Default: false
	StrictBraces bool
}

// DefaultCompilerConfig returns a compiler configuration with the lenient brace dialect
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		StrictBraces: false,
	}
}

// Compiler translates pattern text into instructions stored in a
// caller-provided buffer. A Compiler may be reused but not shared between
// goroutines.
type Compiler struct {
	config CompilerConfig

	pattern string
	out     []Inst
	n       int

	// open holds the indices of unclosed CaptureStart instructions
	open []int

	// alts holds, per nesting level, the Or instructions waiting for the
	// index of the instruction that closes their alternation
	alts [][]int

	groups int
}

// NewCompiler creates a new compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile compiles pattern into out using the default configuration.
func Compile(pattern string, out []Inst) (int, error) {
	return NewDefaultCompiler().Compile(pattern, out)
}

// Compile compiles pattern into out and returns the number of instructions
// written before the OpEmpty sentinel, which is stored at out[n].
//
// The pattern is the bare expression: envelope delimiters and flags must
// already be stripped. On error the contents of out are unspecified.
//
// Example:
//
//	buf := make([]prog.Inst, 16)
//	n, err := prog.Compile("hello", buf)
//	// n == 1, buf[0].Op == prog.OpLiteralRun, buf[1].Op == prog.OpEmpty
func (c *Compiler) Compile(pattern string, out []Inst) (int, error) {
	c.reset(pattern, out)

	i := 0
	for i < len(pattern) {
		next, err := c.step(i)
		if err != nil {
			return 0, &CompileError{Pattern: pattern, Offset: i, Err: err}
		}
		i = next
	}

	if len(c.open) > 0 {
		return 0, &CompileError{Pattern: pattern, Offset: len(pattern), Err: ErrMissingParen}
	}
	end := c.n
	if err := c.emit(Inst{Op: OpEmpty}); err != nil {
		return 0, &CompileError{Pattern: pattern, Offset: len(pattern), Err: err}
	}
	c.closeAlternation(end)

	return end, nil
}

// CompileProgram compiles pattern into out and wraps the result in a Program.
func (c *Compiler) CompileProgram(pattern string, out []Inst) (*Program, error) {
	n, err := c.Compile(pattern, out)
	if err != nil {
		return nil, err
	}
	return NewProgram(pattern, out[:n+1]), nil
}

func (c *Compiler) reset(pattern string, out []Inst) {
	c.pattern = pattern
	c.out = out
	c.n = 0
	c.open = c.open[:0]
	c.alts = append(c.alts[:0], nil)
	c.groups = 0
}

// step compiles the construct starting at pattern[i] and returns the offset
// of the next unconsumed byte.
func (c *Compiler) step(i int) (int, error) {
	p := c.pattern
	switch p[i] {
	case '^':
		return i + 1, c.emit(Inst{Op: OpBegin})
	case '$':
		return i + 1, c.emit(Inst{Op: OpEnd})
	case '.':
		return i + 1, c.emit(Inst{Op: OpDot})
	case '|':
		top := len(c.alts) - 1
		c.alts[top] = append(c.alts[top], c.n)
		return i + 1, c.emit(Inst{Op: OpOr})
	case '(':
		c.open = append(c.open, c.n)
		c.alts = append(c.alts, nil)
		c.groups++
		return i + 1, c.emit(Inst{Op: OpCaptureStart, Group: c.groups - 1})
	case ')':
		return i + 1, c.closeGroup()
	case '*':
		return i + 1, c.repeat(0, RepeatInf)
	case '+':
		return i + 1, c.repeat(1, RepeatInf)
	case '?':
		return i + 1, c.repeat(0, 1)
	case '{':
		lo, hi, next, form := parseBraces(p, i)
		switch {
		case form == braceValid:
			return next, c.repeat(lo, hi)
		case form == braceInverted && c.config.StrictBraces:
			return i, ErrInvalidRepeatBounds
		}
		return c.literal(i)
	case '\\':
		if i+1 >= len(p) {
			return i, ErrTrailingBackslash
		}
		if IsClassEscape(p[i+1]) {
			return i + 2, c.emit(Inst{Op: OpCharClass, Text: p[i : i+2]})
		}
		return c.literal(i)
	case '[':
		return c.class(i)
	}
	return c.literal(i)
}

// literal emits the maximal run of literal elements starting at i. An element
// is a plain byte or an escape pair; an element followed by a quantifier is
// left out so the quantifier binds to that single byte.
func (c *Compiler) literal(i int) (int, error) {
	end := i + c.elementLen(i)
	elems := 1
	if !c.quantifierAt(end) {
		for {
			n := c.elementLen(end)
			if n == 0 || c.quantifierAt(end+n) {
				break
			}
			end += n
			elems++
		}
	}
	if elems == 1 {
		return end, c.emit(Inst{Op: OpLiteral, Char: c.pattern[end-1]})
	}
	return end, c.emit(Inst{Op: OpLiteralRun, Text: c.pattern[i:end]})
}

// elementLen returns the length of the literal element at j, or 0 when the
// byte at j is a metacharacter, a class escape or the end of the pattern.
func (c *Compiler) elementLen(j int) int {
	p := c.pattern
	if j >= len(p) {
		return 0
	}
	switch p[j] {
	case '^', '$', '.', '|', '(', ')', '*', '+', '?', '[':
		return 0
	case '{':
		if c.quantifierAt(j) {
			return 0
		}
	case '\\':
		if j+1 >= len(p) || IsClassEscape(p[j+1]) {
			return 0
		}
		return 2
	}
	return 1
}

// quantifierAt reports whether a quantifier starts at j.
func (c *Compiler) quantifierAt(j int) bool {
	if j >= len(c.pattern) {
		return false
	}
	switch c.pattern[j] {
	case '*', '+', '?':
		return true
	case '{':
		_, _, _, form := parseBraces(c.pattern, j)
		return form == braceValid || (form == braceInverted && c.config.StrictBraces)
	}
	return false
}

// class emits a bracket class starting at pattern[i] == '['.
func (c *Compiler) class(i int) (int, error) {
	p := c.pattern
	op := OpCharClass
	j := i + 1
	if j < len(p) && p[j] == '^' {
		op = OpCharClassNegated
		j++
	}
	start := j
	for j < len(p) && p[j] != ']' {
		if p[j] == '\\' && j+1 < len(p) {
			j++
		}
		j++
	}
	if j >= len(p) {
		return i, ErrMissingBracket
	}
	return j + 1, c.emit(Inst{Op: op, Text: p[start:j]})
}

// repeat applies bounds to the previous matchable instruction, or to the
// whole group when the previous instruction closes one.
func (c *Compiler) repeat(lo, hi int) error {
	if c.n == 0 {
		return ErrMissingRepeatArgument
	}
	target := &c.out[c.n-1]
	switch {
	case target.Op == OpCaptureEnd:
		target = &c.out[target.Pair]
	case !target.Matchable():
		return ErrMissingRepeatArgument
	}
	if target.Rep {
		return ErrNestedRepeat
	}
	target.Rep = true
	target.Min = lo
	target.Max = hi
	return nil
}

func (c *Compiler) closeGroup() error {
	if len(c.open) == 0 {
		return ErrUnexpectedParen
	}
	start := c.open[len(c.open)-1]
	c.open = c.open[:len(c.open)-1]

	end := c.n
	if err := c.emit(Inst{Op: OpCaptureEnd, Group: c.out[start].Group, Pair: start}); err != nil {
		return err
	}
	c.out[start].Pair = end
	c.closeAlternation(end)
	return nil
}

// closeAlternation points the pending Or instructions of the innermost
// level at the instruction that closes it, then drops the level.
func (c *Compiler) closeAlternation(closer int) {
	top := len(c.alts) - 1
	for _, or := range c.alts[top] {
		c.out[or].Pair = closer
	}
	c.alts = c.alts[:top]
}

func (c *Compiler) emit(in Inst) error {
	if c.n >= len(c.out) {
		return ErrCapacityExceeded
	}
	c.out[c.n] = in
	c.n++
	return nil
}
