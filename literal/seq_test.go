package literal

import (
	"bytes"
	"testing"
)

func lits(complete bool, ss ...string) []Literal {
	out := make([]Literal, len(ss))
	for i, s := range ss {
		out[i] = NewLiteral([]byte(s), complete)
	}
	return out
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		lit  Literal
		want string
		len  int
	}{
		{NewLiteral([]byte("hello"), true), "literal{hello, complete=true}", 5},
		{NewLiteral([]byte("test"), false), "literal{test, complete=false}", 4},
		{NewLiteral([]byte{}, true), "literal{, complete=true}", 0},
	}

	for _, tt := range tests {
		if got := tt.lit.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := tt.lit.Len(); got != tt.len {
			t.Errorf("Len() = %d, want %d", got, tt.len)
		}
	}
}

func TestSeqEmpty(t *testing.T) {
	var nilSeq *Seq
	for _, s := range []*Seq{nilSeq, NewSeq()} {
		if !s.IsEmpty() || s.Len() != 0 {
			t.Errorf("IsEmpty() = %v, Len() = %d", s.IsEmpty(), s.Len())
		}
		if s.AllComplete() {
			t.Error("empty sequence reported AllComplete")
		}
		if s.MinLen() != 0 || len(s.LongestCommonPrefix()) != 0 || len(s.FirstBytes()) != 0 {
			t.Error("empty sequence has non-zero derived values")
		}
		s.Minimize()
	}
}

func TestSeqMinimize(t *testing.T) {
	tests := []struct {
		name     string
		in       []Literal
		want     []string
		complete []bool
	}{
		{
			name:     "prefix_absorbs_longer",
			in:       lits(true, "foobar", "foo"),
			want:     []string{"foo"},
			complete: []bool{true},
		},
		{
			name:     "unrelated_kept_in_length_order",
			in:       lits(true, "banana", "fig", "apple"),
			want:     []string{"fig", "apple", "banana"},
			complete: []bool{true, true, true},
		},
		{
			name: "duplicate_completes_incomplete",
			in: []Literal{
				NewLiteral([]byte("ab"), false),
				NewLiteral([]byte("ab"), true),
			},
			want:     []string{"ab"},
			complete: []bool{true},
		},
		{
			name: "longer_complete_does_not_complete_prefix",
			in: []Literal{
				NewLiteral([]byte("ab"), false),
				NewLiteral([]byte("abc"), true),
			},
			want:     []string{"ab"},
			complete: []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeq(tt.in...)
			s.Minimize()
			if s.Len() != len(tt.want) {
				t.Fatalf("Len() = %d, want %d", s.Len(), len(tt.want))
			}
			for i, w := range tt.want {
				lit := s.Get(i)
				if string(lit.Bytes) != w || lit.Complete != tt.complete[i] {
					t.Errorf("literal %d = %s, want %q complete=%v", i, lit, w, tt.complete[i])
				}
			}
		})
	}
}

func TestSeqDerived(t *testing.T) {
	s := NewSeq(lits(false, "hello", "help", "hero")...)
	if got := s.LongestCommonPrefix(); !bytes.Equal(got, []byte("he")) {
		t.Errorf("LongestCommonPrefix() = %q, want he", got)
	}
	if got := s.MinLen(); got != 4 {
		t.Errorf("MinLen() = %d, want 4", got)
	}
	if got := s.FirstBytes(); !bytes.Equal(got, []byte("h")) {
		t.Errorf("FirstBytes() = %q, want h", got)
	}

	s = NewSeq(lits(true, "cat", "dog", "cow")...)
	if got := s.LongestCommonPrefix(); len(got) != 0 {
		t.Errorf("LongestCommonPrefix() = %q, want empty", got)
	}
	if got := s.FirstBytes(); !bytes.Equal(got, []byte("cd")) {
		t.Errorf("FirstBytes() = %q, want cd", got)
	}
	if !s.AllComplete() {
		t.Error("AllComplete() = false")
	}

	// The prefix is a copy.
	s = NewSeq(lits(true, "same")...)
	lcp := s.LongestCommonPrefix()
	lcp[0] = 'X'
	if string(s.Get(0).Bytes) != "same" {
		t.Error("LongestCommonPrefix aliases the literal")
	}
}

func BenchmarkMinimize(b *testing.B) {
	words := []string{"alpha", "alphabet", "beta", "betamax", "gamma", "delta", "deltas", "epsilon"}
	for i := 0; i < b.N; i++ {
		s := NewSeq(lits(true, words...)...)
		s.Minimize()
	}
}
