package backtrack

import "github.com/coregx/minire/prog"

// MatchClass reports whether c is a member of the class payload, which is
// either bracket contents such as `a-z_` or a two-byte escape such as `\d`.
// Negation is applied by the caller.
//
// Payload positions are alternatives, scanned left to right:
//   - X-Y is a range when the input is not '-'
//   - \w \W \s \S \d \D test the predefined classes, any other \c matches c
//   - a bare '-' matches only when it is the first or last payload byte
//   - anything else matches by equality
func MatchClass(class string, c byte) bool {
	n := len(class)
	for i := 0; i < n; i++ {
		if n-i >= 3 && class[i+1] == '-' && c != '-' && c >= class[i] && c <= class[i+2] {
			return true
		}
		switch {
		case class[i] == '\\':
			i++
			if i >= n {
				return false
			}
			e := class[i]
			if prog.IsClassEscape(e) {
				if MatchSpecial(e, c) {
					return true
				}
			} else if e == c {
				return true
			}
		case class[i] == c:
			if c == '-' {
				return class[0] == '-' || class[n-1] == '-'
			}
			return true
		}
	}
	return false
}

// MatchSpecial tests c against the predefined class named by e (one of
// w W s S d D). Uppercase names are the complement of the lowercase ones.
func MatchSpecial(e, c byte) bool {
	var in bool
	switch e | 0x20 {
	case 'w':
		in = isWord(c)
	case 's':
		in = isSpace(c)
	case 'd':
		in = isDigit(c)
	}
	if e >= 'A' && e <= 'Z' {
		return !in
	}
	return in
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWord(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c) || c == '_'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\v', '\f':
		return true
	}
	return false
}

// matchOne tests a single-byte instruction against c.
func matchOne(in *prog.Inst, c byte) bool {
	switch in.Op {
	case prog.OpDot:
		return true
	case prog.OpCharClass:
		return MatchClass(in.Text, c)
	case prog.OpCharClassNegated:
		return !MatchClass(in.Text, c)
	case prog.OpLiteral:
		return c == in.Char
	}
	return false
}
