package minire

// Config controls compilation and matching.
//
// Example:
//
//	config := minire.DefaultConfig()
//	config.MaxInsts = 512
//	re, err := minire.CompileWithConfig(`(\w+)@(\w+)`, config)
type Config struct {
	// MaxInsts is the capacity of the instruction buffer, sentinel included.
	// Patterns that need more instructions fail with prog.ErrCapacityExceeded.
	// Default: 256
	MaxInsts int

	// MaxDepth bounds the nesting of matcher continuations. Deeper matches
	// fail with backtrack.ErrDepthExceeded. Each choice point costs one
	// level, as does each iteration of a quantified group whose body can
	// end in more than one place, so /(a|b)+/ over n bytes needs more than
	// n levels. Groups of plain atoms such as /(ab)+/ iterate without
	// nesting.
	// Default: 10000
	MaxDepth int

	// MaxSteps bounds the work of one match attempt at one start offset.
	// Attempts that exceed it fail with backtrack.ErrStepLimit.
	// Default: 1000000
	MaxSteps int

	// StrictBraces rejects {m,n} with m > n instead of reading it as text.
	// Default: false
	StrictBraces bool

	// EnablePrefilter enables literal prefiltering of unanchored searches.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals caps the number of prefix literals a prefilter is built
	// from. Ignored when EnablePrefilter is false.
	// Default: 64
	MaxLiterals int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxInsts:        256,
		MaxDepth:        10_000,
		MaxSteps:        1_000_000,
		StrictBraces:    false,
		EnablePrefilter: true,
		MaxLiterals:     64,
	}
}

// Validate checks that the configuration values are in range.
//
// Example:
//
//	config := minire.DefaultConfig()
//	config.MaxInsts = 0
//	err := config.Validate() // *ConfigError for MaxInsts
func (c Config) Validate() error {
	if c.MaxInsts < 1 || c.MaxInsts > 65_536 {
		return &ConfigError{
			Field:   "MaxInsts",
			Message: "must be between 1 and 65,536",
		}
	}

	if c.MaxDepth < 16 || c.MaxDepth > 1_000_000 {
		return &ConfigError{
			Field:   "MaxDepth",
			Message: "must be between 16 and 1,000,000",
		}
	}

	if c.MaxSteps < 1_000 || c.MaxSteps > 1_000_000_000 {
		return &ConfigError{
			Field:   "MaxSteps",
			Message: "must be between 1,000 and 1,000,000,000",
		}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "minire: invalid config: " + e.Field + ": " + e.Message
}
