package grammar

import "strings"

// Unescape removes the escaping of a quoted argument's contents. Only \<quote> and \\ are escape
// sequences. Any other backslash is kept, so regex escapes like \d survive.
func Unescape(s string, quote byte) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == quote || s[i+1] == '\\') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Escape is the inverse of Unescape: Unescape(Escape(s, q), q) == s for every s.
func Escape(s string, quote byte) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\\' && (i+1 == len(s) || s[i+1] == quote || s[i+1] == '\\'):
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Quote wraps s in the given quote character, escaping as needed.
func Quote(s string, quote byte) string {
	return string(quote) + Escape(s, quote) + string(quote)
}

// NeedsQuoting reports whether s cannot be written as a bare directive argument.
func NeedsQuoting(s string) bool {
	return s == "" || strings.ContainsAny(s, " \t\r\n") || s[0] == '"' || s[0] == '\''
}

// ActionArgNeedsQuoting reports whether an action argument must be single-quoted to read back as the same value.
func ActionArgNeedsQuoting(s string) bool {
	return s == "" ||
		strings.ContainsRune(s, ',') ||
		strings.TrimSpace(s) != s ||
		s[0] == '\''
}

// UnquoteActionArg undoes the single quotes of an action argument as it appears in a parse tree.
// quoted is false if s was written bare.
func UnquoteActionArg(s string) (arg string, quoted bool) {
	if m := quotedActionArgRegex.FindString(s); m != "" && len(m) == len(s) {
		return Unescape(s[1:len(s)-1], '\''), true
	}
	return s, false
}
