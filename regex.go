// Package minire provides a compact backtracking regular expression engine.
//
// Patterns compile into a flat instruction program held in a fixed-capacity
// buffer; a recursive backtracking matcher executes the program against one
// subject per call. Matching is byte oriented.
//
// Supported syntax:
//   - Literals, with runs of plain bytes coalesced into one instruction
//   - . ^ $ and alternation with |
//   - Quantifiers * + ? {m} {m,} {m,n}, greedy but continuation-checked
//   - Bracket classes [a-z_] and [^...], escapes \w \W \s \S \d \D
//   - Capture groups ( ), quantifiable as a whole
//
// Basic usage:
//
//	re, err := minire.Compile(`(\w+)@(\w+)\.com`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(re.FindStringSubmatch("mail bob@example.com"))
//	// [bob@example.com bob example]
//
// The /pattern/g envelope form is accepted too:
//
//	minire.MatchEnvelope("/t.*en/g", "tilen") // true
//
// Semantics differ from Go's regexp in a few places: alternation picks the
// first branch that lets the rest of the pattern match, anchors bind only
// their own branch, and a quantifier stops at the first repetition count
// that lets the rest of the pattern match.
package minire

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/coregx/minire/backtrack"
	"github.com/coregx/minire/literal"
	"github.com/coregx/minire/prefilter"
	"github.com/coregx/minire/prog"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("minire")

// Regex represents a compiled regular expression.
//
// A Regex is safe for concurrent use by multiple goroutines. Each search
// takes its own matcher state from an internal pool.
//
// Example:
//
//	re := minire.MustCompile(`hello`)
//	if re.MatchString("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	pattern   string
	prog      *prog.Program
	config    Config
	prefilter prefilter.Prefilter

	matchers sync.Pool
	stats    Stats
}

// Compile compiles a regular expression pattern with the default
// configuration.
//
// Example:
//
//	re, err := minire.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// Example:
//
//	var word = minire.MustCompile(`[a-z]+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("minire: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Example:
//
//	config := minire.DefaultConfig()
//	config.StrictBraces = true
//	_, err := minire.CompileWithConfig(`a{3,1}`, config)
//	// errors.Is(err, prog.ErrInvalidRepeatBounds) == true
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	buf := make([]prog.Inst, config.MaxInsts)
	c := prog.NewCompiler(prog.CompilerConfig{StrictBraces: config.StrictBraces})
	p, err := c.CompileProgram(pattern, buf)
	if err != nil {
		log.Debugf("compile %q failed: %v", pattern, err)
		return nil, err
	}

	r := &Regex{
		pattern: pattern,
		prog:    p,
		config:  config,
	}
	r.matchers.New = func() any {
		return backtrack.New(r.prog, backtrack.Config{
			MaxDepth: r.config.MaxDepth,
			MaxSteps: r.config.MaxSteps,
		})
	}

	if config.EnablePrefilter && !p.Anchored {
		extractor := literal.New(literal.ExtractorConfig{MaxLiterals: config.MaxLiterals})
		pf, err := prefilter.NewBuilder(extractor.ExtractPrefixes(p)).Build()
		if err != nil {
			// The matcher alone is always correct; run without a prefilter.
			log.Warningf("prefilter for %q disabled: %v", pattern, err)
		}
		r.prefilter = pf
	}

	if r.prefilter != nil {
		log.Debugf("compiled %q: %d instructions, %d captures, prefilter %s",
			pattern, p.Len(), p.NumCaptures, r.prefilter)
	} else {
		log.Debugf("compiled %q: %d instructions, %d captures, anchored=%t",
			pattern, p.Len(), p.NumCaptures, p.Anchored)
	}
	return r, nil
}

// Match compiles pattern and reports whether text contains a match.
// Compilation and resource errors are returned.
//
// Example:
//
//	matched, err := minire.Match(`^\d+$`, "12345")
//	// matched == true, err == nil
func Match(pattern, text string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	start, _, err := re.search([]byte(text), nil)
	return start >= 0, err
}

// QuoteMeta returns a string that escapes all metacharacters inside the
// argument text; the returned string is a pattern matching the literal text.
//
// Example:
//
//	escaped := minire.QuoteMeta("1+1=2?")
//	// escaped == `1\+1=2\?`
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Program returns the compiled program. It must not be modified.
func (r *Regex) Program() *prog.Program {
	return r.prog
}

// NumSubexp returns the number of parenthesized subexpressions.
func (r *Regex) NumSubexp() int {
	return r.prog.NumCaptures
}

// Match reports whether b contains any match of the pattern. A search
// aborted by a resource limit reports false.
//
// Example:
//
//	re := minire.MustCompile(`\d+`)
//	re.Match([]byte("abc 123")) // true
func (r *Regex) Match(b []byte) bool {
	start, _, _ := r.search(b, nil)
	return start >= 0
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns the text of the leftmost match in b, or nil if there is none.
func (r *Regex) Find(b []byte) []byte {
	start, end, _ := r.search(b, nil)
	if start < 0 {
		return nil
	}
	return b[start:end:end]
}

// FindIndex returns a two-element slice of integers defining the location of
// the leftmost match in b, or nil if there is none.
//
// Example:
//
//	re := minire.MustCompile(`\d+`)
//	loc := re.FindIndex([]byte("age: 42"))
//	// loc == []int{5, 7}
func (r *Regex) FindIndex(b []byte) []int {
	start, end, _ := r.search(b, nil)
	if start < 0 {
		return nil
	}
	return []int{start, end}
}

// FindString returns the text of the leftmost match in s. It returns the
// empty string both when there is no match and when the match is empty.
func (r *Regex) FindString(s string) string {
	start, end, _ := r.search([]byte(s), nil)
	if start < 0 {
		return ""
	}
	return s[start:end]
}

// FindStringIndex is FindIndex for a string subject.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindStringSubmatch returns the text of the leftmost match in s followed by
// the text of each capture group, or nil if there is no match. Groups that
// did not participate are empty strings.
//
// Example:
//
//	re := minire.MustCompile(`(\w+)=(\d+)`)
//	m := re.FindStringSubmatch("x=10")
//	// m == []string{"x=10", "x", "10"}
func (r *Regex) FindStringSubmatch(s string) []string {
	idx := r.FindStringSubmatchIndex(s)
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx)/2)
	for i := range out {
		if idx[2*i] >= 0 {
			out[i] = s[idx[2*i]:idx[2*i+1]]
		}
	}
	return out
}

// FindStringSubmatchIndex returns index pairs for the leftmost match and its
// capture groups, or nil if there is no match. Result[2*i:2*i+2] holds
// group i-1; groups that did not participate are -1, -1.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	caps := make([]prog.Span, r.prog.NumCaptures)
	start, end, _ := r.search([]byte(s), caps)
	if start < 0 {
		return nil
	}
	out := make([]int, 0, 2+2*len(caps))
	out = append(out, start, end)
	for _, sp := range caps {
		if !sp.Valid() {
			out = append(out, -1, -1)
			continue
		}
		out = append(out, sp.Offset, sp.End())
	}
	return out
}

// Captures matches s and fills buf[i] with the span of capture group i, or
// prog.NoSpan when the group did not participate. buf must hold at least
// NumSubexp slots; a shorter non-nil buffer fails with
// backtrack.ErrCaptureCapacity. A nil buf only reports whether s matches.
// Searches aborted by MaxDepth or MaxSteps return
// backtrack.ErrDepthExceeded or backtrack.ErrStepLimit.
//
// Example:
//
//	re := minire.MustCompile(`(\d+)-(\d+)`)
//	buf := make([]prog.Span, re.NumSubexp())
//	ok, err := re.Captures("tel 12-345", buf)
//	// ok == true, buf == [{4 2} {7 3}]
func (r *Regex) Captures(s string, buf []prog.Span) (bool, error) {
	start, _, err := r.search([]byte(s), buf)
	return start >= 0, err
}

// CapturesIndex is like Captures but also returns the bounds of the match,
// or -1, -1 when s does not match.
func (r *Regex) CapturesIndex(s string, buf []prog.Span) (start, end int, err error) {
	return r.search([]byte(s), buf)
}

// search finds the leftmost match in b and returns its bounds, or -1, -1.
// When caps is non-nil the capture spans of the match are stored in it.
func (r *Regex) search(b []byte, caps []prog.Span) (start, end int, err error) {
	atomic.AddUint64(&r.stats.Searches, 1)

	pf := r.prefilter
	if pf != nil && pf.IsComplete() {
		atomic.AddUint64(&r.stats.LiteralSearches, 1)
		pos := pf.Find(b, 0)
		if pos < 0 {
			return -1, -1, nil
		}
		return pos, pos + pf.LiteralLen(), nil
	}

	var next func(from int) int
	var candidates uint64
	if pf != nil {
		next = func(from int) int {
			pos := pf.Find(b, from)
			if pos >= 0 {
				candidates++
			}
			return pos
		}
	}

	bt := r.matchers.Get().(*backtrack.Backtracker)
	start, end, ok, err := bt.Search(b, caps, next)
	r.matchers.Put(bt)

	if candidates > 0 {
		if ok {
			atomic.AddUint64(&r.stats.PrefilterHits, 1)
			candidates--
		}
		atomic.AddUint64(&r.stats.PrefilterMisses, candidates)
	}

	if err != nil {
		if errors.Is(err, backtrack.ErrDepthExceeded) || errors.Is(err, backtrack.ErrStepLimit) {
			atomic.AddUint64(&r.stats.Aborts, 1)
		}
		log.Debugf("search %q aborted: %v", r.pattern, err)
		return -1, -1, err
	}
	if !ok {
		return -1, -1, nil
	}
	return start, end, nil
}
