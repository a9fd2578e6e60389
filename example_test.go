package minire_test

import (
	"errors"
	"fmt"

	"github.com/coregx/minire"
	"github.com/coregx/minire/prog"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := minire.Compile(`\d+`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.Match([]byte("hello 123")))
	// Output: true
}

// ExampleMatchEnvelope demonstrates the /pattern/g entry point.
func ExampleMatchEnvelope() {
	fmt.Println(minire.MatchEnvelope("/t.*en/g", "tilen"))
	fmt.Println(minire.MatchEnvelope("/t.*en/x", "tilen"))
	// Output:
	// true
	// false
}

// ExampleRegex_FindStringSubmatch demonstrates capture groups.
func ExampleRegex_FindStringSubmatch() {
	re := minire.MustCompile(`(\w+)@(\w+)\.com`)
	fmt.Println(re.FindStringSubmatch("mail bob@example.com"))
	// Output: [bob@example.com bob example]
}

// ExampleRegex_Captures demonstrates filling a caller-owned span buffer.
func ExampleRegex_Captures() {
	re := minire.MustCompile(`(\d+)-(\d+)`)
	buf := make([]prog.Span, re.NumSubexp())
	ok, err := re.Captures("tel 12-345", buf)
	if err != nil {
		panic(err)
	}
	fmt.Println(ok, buf)
	// Output: true [{4 2} {7 3}]
}

// ExampleRegex_FindStringIndex shows that alternation anchors bind only
// their own branch.
func ExampleRegex_FindStringIndex() {
	re := minire.MustCompile(`^cat|dog$`)
	fmt.Println(re.FindStringIndex("xdog"))
	fmt.Println(re.FindStringIndex("xcat"))
	// Output:
	// [1 4]
	// []
}

// ExampleCompileWithConfig demonstrates the strict brace dialect.
func ExampleCompileWithConfig() {
	config := minire.DefaultConfig()
	config.StrictBraces = true

	_, err := minire.CompileWithConfig(`a{3,1}`, config)
	fmt.Println(errors.Is(err, prog.ErrInvalidRepeatBounds))

	re := minire.MustCompile(`a{3,1}`)
	fmt.Println(re.MatchString("a{3,1}"))
	// Output:
	// true
	// true
}

// ExampleQuoteMeta demonstrates escaping literal text.
func ExampleQuoteMeta() {
	fmt.Println(minire.QuoteMeta("1+1=2?"))
	// Output: 1\+1=2\?
}
