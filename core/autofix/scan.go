package autofix

import (
	"regexp"
	"strings"
)

// span is a half-open byte range of the input. Literal spans include their
// quotes.
type span struct {
	start, end int
	literal    bool
}

// segments splits text into code and string-literal spans. Double-quoted
// strings are always literals; a single quote starts one only where
// opensSingleQuote allows. An unterminated double-quoted literal runs to the
// end of the text.
func segments(text string) []span {
	var out []span
	codeStart := 0
	for i := 0; i < len(text); {
		c := text[i]
		if c != '"' && (c != '\'' || !opensSingleQuote(text, i)) {
			i++
			continue
		}
		if codeStart < i {
			out = append(out, span{start: codeStart, end: i})
		}
		end := closingQuote(text, i, c)
		if end < 0 {
			end = len(text)
		} else {
			end++
		}
		out = append(out, span{start: i, end: end, literal: true})
		i = end
		codeStart = end
	}
	if codeStart < len(text) {
		out = append(out, span{start: codeStart, end: len(text)})
	}
	return out
}

// closingQuote returns the index of the unescaped quote that closes the
// literal opened at open, or -1.
func closingQuote(text string, open int, quote byte) int {
	escaped := false
	for j := open + 1; j < len(text); j++ {
		switch {
		case escaped:
			escaped = false
		case text[j] == '\\':
			escaped = true
		case text[j] == quote:
			return j
		}
	}
	return -1
}

// opensSingleQuote reports whether the ' at i starts a string: it must begin
// the text or follow whitespace, ',', '[', '{' or ':', and be closed later.
func opensSingleQuote(text string, i int) bool {
	if i > 0 {
		switch text[i-1] {
		case ' ', '\t', '\n', '\r', ',', '[', '{', ':':
		default:
			return false
		}
	}
	return closingQuote(text, i, '\'') >= 0
}

// rewriteCode applies fn to every code span, leaving literals untouched, and
// returns the reassembled text with the summed count.
func rewriteCode(text string, fn func(code string) (string, int)) (string, int) {
	var b strings.Builder
	b.Grow(len(text))
	total := 0
	for _, s := range segments(text) {
		chunk := text[s.start:s.end]
		if !s.literal {
			var n int
			chunk, n = fn(chunk)
			total += n
		}
		b.WriteString(chunk)
	}
	if total == 0 {
		return text, 0
	}
	return b.String(), total
}

// replaceCounting is ReplaceAllString that also reports the number of matches.
func replaceCounting(re *regexp.Regexp, s, repl string) (string, int) {
	n := len(re.FindAllStringIndex(s, -1))
	if n == 0 {
		return s, 0
	}
	return re.ReplaceAllString(s, repl), n
}

// codeRule rewrites code spans with a single regular expression.
func codeRule(re *regexp.Regexp, repl string) func(string) (string, int) {
	return func(code string) (string, int) {
		return replaceCounting(re, code, repl)
	}
}
