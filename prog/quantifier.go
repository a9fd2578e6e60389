package prog

// braceForm classifies the text following a '{'.
type braceForm uint8

const (
	// braceLiteral means the brace does not start a quantifier
	braceLiteral braceForm = iota

	// braceValid is a well-formed {m}, {m,} or {m,n}
	braceValid

	// braceInverted is {m,n} with m > n
	braceInverted
)

// parseBraces looks ahead from pattern[i] == '{' without consuming anything.
// It returns the bounds, the offset just past the closing '}' and the form.
// Bounds at or above RepeatInf are not representable and read as literal text.
func parseBraces(pattern string, i int) (lo, hi, next int, form braceForm) {
	j := i + 1
	lo, j, ok := parseBound(pattern, j)
	if !ok {
		return 0, 0, i, braceLiteral
	}
	hi = lo
	if j < len(pattern) && pattern[j] == ',' {
		j++
		hi = RepeatInf
		if j < len(pattern) && isDigit(pattern[j]) {
			hi, j, ok = parseBound(pattern, j)
			if !ok {
				return 0, 0, i, braceLiteral
			}
		}
	}
	if j >= len(pattern) || pattern[j] != '}' {
		return 0, 0, i, braceLiteral
	}
	if lo > hi {
		return lo, hi, j + 1, braceInverted
	}
	return lo, hi, j + 1, braceValid
}

// parseBound reads a non-empty decimal number below RepeatInf.
func parseBound(pattern string, j int) (n, next int, ok bool) {
	start := j
	for j < len(pattern) && isDigit(pattern[j]) {
		n = n*10 + int(pattern[j]-'0')
		if n >= RepeatInf {
			return 0, j, false
		}
		j++
	}
	return n, j, j > start
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsClassEscape reports whether `\c` names a predefined class (\w \W \s \S \d \D).
func IsClassEscape(c byte) bool {
	switch c {
	case 'w', 'W', 's', 'S', 'd', 'D':
		return true
	}
	return false
}
