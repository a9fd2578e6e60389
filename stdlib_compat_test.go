package minire

import (
	"reflect"
	"regexp"
	"testing"
)

// compatPatterns are patterns whose meaning is the same in this dialect and
// in Go's regexp. spans marks patterns whose leftmost match also has the same
// bounds: those where no quantifier is followed by anything but the end of
// the pattern, so that stopping at the first workable count and consuming
// greedily agree.
var compatPatterns = []struct {
	pattern string
	spans   bool
}{
	{"hello", true},
	{"abc|abd", true},
	{"cat|dog|bird", true},
	{"^abc", true},
	{"abc$", true},
	{"^abc$", true},
	{"^cat|dog$", true},
	{"a.c", true},
	{`a\.c`, true},
	{"a+", true},
	{"ab*", true},
	{"ab?", true},
	{"a{2,3}", true},
	{"x{2}", true},
	{`\d+`, true},
	{`\w+`, true},
	{`\s`, true},
	{`\S+`, true},
	{`\D`, true},
	{`\W`, true},
	{"[0-9]+", true},
	{"[^0-9]", true},
	{"[a-z_]+", true},
	{"[a-z-]", true},
	{"(ab)+", false},
	{"(a|b)*c", false},
	{"a*ab", false},
	{".*x", false},
	{`\d+-\d+`, false},
	{"^(a|ab)c$", false},
	{"^(ab|a)(bc|c)$", false},
	{"^a{2,3}$", true},
	{"^(x|y){2,}$", false},
	{"a|", true},
	{"(|a)+b", false},
	{"^$", true},
	{"", true},
}

var compatSubjects = []string{
	"",
	"a",
	"aa",
	"aaa",
	"aaaa",
	"abc",
	"xabc",
	"abcx",
	"abd",
	"dog",
	"xdog",
	"catx",
	"hotdog bird",
	"a.c",
	"abbbc",
	"ababab",
	"abac",
	"aaab",
	"abxcx",
	"tel 12-345",
	"hello world",
	"snake_case 42",
	"  \t leading",
	"xyxy",
	"xx",
	"-",
	"A-Z",
	"aab",
}

// TestStdlibCompatMatch compares boolean results with Go's regexp.
func TestStdlibCompatMatch(t *testing.T) {
	for _, tc := range compatPatterns {
		re := MustCompile(tc.pattern)
		std := regexp.MustCompile(tc.pattern)
		for _, s := range compatSubjects {
			if got, want := re.MatchString(s), std.MatchString(s); got != want {
				t.Errorf("%#q on %q: MatchString = %v, stdlib %v", tc.pattern, s, got, want)
			}
		}
	}
}

// TestStdlibCompatFindIndex compares match bounds with Go's regexp where the
// two quantifier policies agree.
func TestStdlibCompatFindIndex(t *testing.T) {
	for _, tc := range compatPatterns {
		if !tc.spans {
			continue
		}
		re := MustCompile(tc.pattern)
		std := regexp.MustCompile(tc.pattern)
		for _, s := range compatSubjects {
			if got, want := re.FindStringIndex(s), std.FindStringIndex(s); !reflect.DeepEqual(got, want) {
				t.Errorf("%#q on %q: FindStringIndex = %v, stdlib %v", tc.pattern, s, got, want)
			}
		}
	}
}

// TestStdlibCompatSubmatch compares capture groups for patterns without
// quantified groups.
func TestStdlibCompatSubmatch(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
	}{
		{`(\w+)@(\w+)\.com`, "mail bob@example.com"},
		{`(\d+)-(\d+)`, "tel 12-345"},
		{"(a|ab)(c|bcd)", "abcd"},
		{"(a)|b", "b"},
		{"((a)b)", "ab"},
		{"x(y)?z", "xz"},
		{"(a)x|ay", "ay"},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		std := regexp.MustCompile(tt.pattern)
		got, want := re.FindStringSubmatchIndex(tt.subject), std.FindStringSubmatchIndex(tt.subject)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%#q on %q: FindStringSubmatchIndex = %v, stdlib %v", tt.pattern, tt.subject, got, want)
		}
		if re.NumSubexp() != std.NumSubexp() {
			t.Errorf("%#q: NumSubexp = %d, stdlib %d", tt.pattern, re.NumSubexp(), std.NumSubexp())
		}
	}
}

// TestStdlibCompatQuoteMeta checks that quoted text matches itself in both
// engines.
func TestStdlibCompatQuoteMeta(t *testing.T) {
	for _, s := range []string{"1.5-2.0?", "[a]{b}(c)", `back\slash`, "^$|*+"} {
		quoted := QuoteMeta(s)
		if !MustCompile("^" + quoted + "$").MatchString(s) {
			t.Errorf("QuoteMeta(%q) = %q does not match its input", s, quoted)
		}
		if !regexp.MustCompile("^" + quoted + "$").MatchString(s) {
			t.Errorf("stdlib rejects QuoteMeta(%q) = %q", s, quoted)
		}
	}
}
