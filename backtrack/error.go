package backtrack

import "errors"

var (
	// ErrDepthExceeded indicates the match was aborted because backtracking
	// nested deeper than Config.MaxDepth
	ErrDepthExceeded = errors.New("backtracking depth limit exceeded")

	// ErrStepLimit indicates the match was aborted because one match
	// attempt did more work than Config.MaxSteps allows
	ErrStepLimit = errors.New("backtracking step limit exceeded")

	// ErrCaptureCapacity indicates the capture buffer is smaller than the
	// number of capture groups in the program
	ErrCaptureCapacity = errors.New("capture buffer too small")
)
