package minire

import (
	"errors"
	"fmt"
)

// Envelope errors.
var (
	// ErrMissingDelimiter indicates an expression not of the form /pattern/flags.
	ErrMissingDelimiter = errors.New("expression must be delimited by '/'")

	// ErrUnsupportedFlag indicates flags other than the single "g".
	ErrUnsupportedFlag = errors.New("unsupported flags, want \"g\"")

	// ErrUnbalancedBrackets indicates that opening and closing brackets
	// do not pair up.
	ErrUnbalancedBrackets = errors.New("unbalanced brackets")
)

// EnvelopeError reports a malformed /pattern/g expression.
type EnvelopeError struct {
	Expr   string
	Offset int
	Err    error
}

// Error implements the error interface.
func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("minire: envelope %q at offset %d: %v", e.Expr, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *EnvelopeError) Unwrap() error {
	return e.Err
}

// ParseEnvelope strips the delimiters from an expression of the form
// /pattern/g and returns the bare pattern and its flags. The only flag
// accepted is a single g. The pattern is returned without further checks.
//
// Example:
//
//	pattern, flags, err := minire.ParseEnvelope("/t.*en/g")
//	// pattern == "t.*en", flags == "g"
func ParseEnvelope(expr string) (pattern, flags string, err error) {
	if len(expr) < 2 || expr[0] != '/' {
		return "", "", &EnvelopeError{Expr: expr, Offset: 0, Err: ErrMissingDelimiter}
	}
	end := len(expr) - 1
	for end > 0 && expr[end] != '/' {
		end--
	}
	if end == 0 {
		return "", "", &EnvelopeError{Expr: expr, Offset: len(expr), Err: ErrMissingDelimiter}
	}
	flags = expr[end+1:]
	if flags != "g" {
		return "", "", &EnvelopeError{Expr: expr, Offset: end + 1, Err: ErrUnsupportedFlag}
	}
	return expr[1:end], flags, nil
}

// CheckBrackets reports whether the pattern opens as many round, square and
// curly brackets as it closes. All three kinds share one counter and only
// the final count matters, so "(]" and "a}b{" pass. An escaped byte is never
// counted.
func CheckBrackets(pattern string) error {
	depth := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	if depth != 0 {
		return &EnvelopeError{Expr: pattern, Offset: len(pattern), Err: ErrUnbalancedBrackets}
	}
	return nil
}

// CompileEnvelope compiles an expression of the form /pattern/g after
// validating the envelope and the bracket balance of the pattern.
//
// Example:
//
//	re, err := minire.CompileEnvelope("/^[a-z]+$/g")
func CompileEnvelope(expr string) (*Regex, error) {
	pattern, _, err := ParseEnvelope(expr)
	if err != nil {
		return nil, err
	}
	if err := CheckBrackets(pattern); err != nil {
		return nil, err
	}
	return Compile(pattern)
}

// MatchEnvelope reports whether text contains a match of the /pattern/g
// expression. Any error, whether in the envelope, the pattern or the
// search, reports false.
//
// Example:
//
//	minire.MatchEnvelope("/t.*en/g", "tilen") // true
//	minire.MatchEnvelope("t.*en", "tilen")    // false, no envelope
func MatchEnvelope(expr, text string) bool {
	re, err := CompileEnvelope(expr)
	if err != nil {
		log.Debugf("envelope %q rejected: %v", expr, err)
		return false
	}
	start, _, err := re.search([]byte(text), nil)
	return err == nil && start >= 0
}
