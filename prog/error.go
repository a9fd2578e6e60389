package prog

import (
	"errors"
	"fmt"
)

// Compilation errors
var (
	// ErrCapacityExceeded indicates the pattern needs more instruction slots
	// than the caller-provided buffer holds (sentinel included)
	ErrCapacityExceeded = errors.New("instruction buffer capacity exceeded")

	// ErrInvalidRepeatBounds indicates {m,n} with m > n under strict braces
	ErrInvalidRepeatBounds = errors.New("invalid repeat bounds")

	// ErrMissingRepeatArgument indicates a quantifier with nothing to repeat
	ErrMissingRepeatArgument = errors.New("missing argument to repetition operator")

	// ErrNestedRepeat indicates a quantifier applied to an already quantified instruction
	ErrNestedRepeat = errors.New("invalid nested repetition operator")

	// ErrMissingBracket indicates a [ without a closing ]
	ErrMissingBracket = errors.New("missing closing ]")

	// ErrMissingParen indicates a ( without a closing )
	ErrMissingParen = errors.New("missing closing )")

	// ErrUnexpectedParen indicates a ) without an opening (
	ErrUnexpectedParen = errors.New("unexpected )")

	// ErrTrailingBackslash indicates a pattern ending in a lone \
	ErrTrailingBackslash = errors.New("trailing backslash at end of expression")
)

// CompileError wraps compilation errors with the pattern and the byte offset
// at which compilation stopped.
type CompileError struct {
	Pattern string
	Offset  int
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("compile %q at offset %d: %v", e.Pattern, e.Offset, e.Err)
	}
	return fmt.Sprintf("compile: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
