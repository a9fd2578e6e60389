package prefilter

import (
	"strings"
	"testing"

	"github.com/coregx/minire/literal"
	"github.com/coregx/minire/prog"
)

func seqOf(complete bool, lits ...string) *literal.Seq {
	out := make([]literal.Literal, len(lits))
	for i, s := range lits {
		out[i] = literal.NewLiteral([]byte(s), complete)
	}
	return literal.NewSeq(out...)
}

func TestBuildStrategy(t *testing.T) {
	tests := []struct {
		name     string
		seq      *literal.Seq
		want     string
		complete bool
	}{
		{"single_byte", seqOf(true, "a"), `memchr('a')`, true},
		{"single_substring", seqOf(true, "hello"), `memmem("hello")`, true},
		{"single_incomplete", seqOf(false, "hello"), `memmem("hello")`, false},
		{"minimized_to_one", seqOf(true, "foo", "foobar"), `memmem("foo")`, false},
		{"common_prefix", seqOf(true, "hello", "help"), `memmem("hel")`, false},
		{"common_prefix_byte", seqOf(true, "ab", "ac"), `memchr('a')`, false},
		{"two_first_bytes", seqOf(true, "cat", "dog"), `memchr2('c', 'd')`, false},
		{"three_first_bytes", seqOf(true, "cat", "dog", "cow", "eel"), `memchr3('c', 'd', 'e')`, false},
		{"aho_corasick", seqOf(true, "apple", "banana", "cherry", "date"), `aho-corasick(4 needles, width 4)`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf, err := NewBuilder(tt.seq).Build()
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if pf == nil {
				t.Fatal("Build() returned nil prefilter")
			}
			if got := pf.String(); got != tt.want {
				t.Errorf("strategy = %s, want %s", got, tt.want)
			}
			if pf.IsComplete() != tt.complete {
				t.Errorf("IsComplete() = %v, want %v", pf.IsComplete(), tt.complete)
			}
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	for _, seq := range []*literal.Seq{nil, literal.NewSeq()} {
		pf, err := NewBuilder(seq).Build()
		if err != nil || pf != nil {
			t.Errorf("Build() = (%v, %v), want (nil, nil)", pf, err)
		}
	}
}

func TestLiteralLen(t *testing.T) {
	pf, _ := NewBuilder(seqOf(true, "needle")).Build()
	if got := pf.LiteralLen(); got != 6 {
		t.Errorf("LiteralLen() = %d, want 6", got)
	}
	pf, _ = NewBuilder(seqOf(false, "needle")).Build()
	if got := pf.LiteralLen(); got != 0 {
		t.Errorf("LiteralLen() = %d, want 0 for incomplete prefilter", got)
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		seq      *literal.Seq
		haystack string
		start    int
		want     int
	}{
		{"memchr", seqOf(true, "x"), "abcxdef", 0, 3},
		{"memchr_from_start", seqOf(true, "x"), "xabcx", 1, 4},
		{"memchr_none", seqOf(true, "x"), "abc", 0, -1},
		{"memmem", seqOf(true, "world"), "hello world", 0, 6},
		{"memmem_past_end", seqOf(true, "world"), "hello world", 11, -1},
		{"memchr2", seqOf(true, "cat", "dog"), "a hot dog", 0, 6},
		{"memchr2_false_candidate", seqOf(true, "cat", "dog"), "dig", 0, 0},
		{"memchr3", seqOf(true, "cat", "dog", "eel"), "xxexx", 0, 2},
		{"aho_corasick", seqOf(true, "apple", "banana", "cherry", "date"), "we ate cherries", 0, 7},
		{"aho_corasick_truncated", seqOf(true, "apple", "banana", "cherry", "date"), "bana", 0, 0},
		{"aho_corasick_start", seqOf(true, "apple", "banana", "cherry", "date"), "date date", 1, 5},
		{"aho_corasick_none", seqOf(true, "apple", "banana", "cherry", "date"), "kiwi", 0, -1},
		{"negative_start", seqOf(true, "a"), "a", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf, err := NewBuilder(tt.seq).Build()
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if got := pf.Find([]byte(tt.haystack), tt.start); got != tt.want {
				t.Errorf("%s.Find(%q, %d) = %d, want %d", pf, tt.haystack, tt.start, got, tt.want)
			}
		})
	}
}

// TestFindNeverSkipsMatch checks that no literal occurrence lies before the
// candidate a prefilter reports.
func TestFindNeverSkipsMatch(t *testing.T) {
	lits := []string{"foo", "bar", "baz", "qux", "quux", "corge"}
	haystack := strings.Repeat("xyzzy ", 20) + "corge qux bar"
	pf, err := NewBuilder(seqOf(false, lits...)).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := -1
	for _, lit := range lits {
		if i := strings.Index(haystack, lit); i >= 0 && (want < 0 || i < want) {
			want = i
		}
	}
	if got := pf.Find([]byte(haystack), 0); got < 0 || got > want {
		t.Errorf("%s.Find = %d, want candidate at or before %d", pf, got, want)
	}
}

func TestBuildFromProgram(t *testing.T) {
	tests := []struct {
		pattern string
		want    string // "" means no prefilter
	}{
		{"hello", `memmem("hello")`},
		{"cat|dog", `memchr2('c', 'd')`},
		{"(foo|bar)baz", `memchr2('f', 'b')`},
		{"a+b", `memchr('a')`},
		{"a*b", ""},
		{"^abc", ""},
		{"[ab]c", ""},
		{"abc|.x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			buf := make([]prog.Inst, 32)
			p, err := prog.NewDefaultCompiler().CompileProgram(tt.pattern, buf)
			if err != nil {
				t.Fatalf("compile %q: %v", tt.pattern, err)
			}
			prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(p)
			pf, err := NewBuilder(prefixes).Build()
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			got := ""
			if pf != nil {
				got = pf.String()
			}
			if got != tt.want {
				t.Errorf("prefilter for %q = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func BenchmarkPrefilterFind(b *testing.B) {
	haystack := []byte(strings.Repeat("lorem ipsum dolor sit amet ", 200) + "needle")
	for _, tc := range []struct {
		name string
		seq  *literal.Seq
	}{
		{"memchr", seqOf(false, "n")},
		{"memmem", seqOf(false, "needle")},
		{"memchr2", seqOf(false, "needle", "xylophone")},
		{"aho_corasick", seqOf(false, "needle", "haystack", "pin", "thread")},
	} {
		pf, _ := NewBuilder(tc.seq).Build()
		b.Run(tc.name, func(b *testing.B) {
			b.SetBytes(int64(len(haystack)))
			for i := 0; i < b.N; i++ {
				_ = pf.Find(haystack, 0)
			}
		})
	}
}
