package autofix

import "strings"

// normalizeQuotes converts single-quoted strings to double-quoted ones in one
// left-to-right scan. Text inside double-quoted strings is copied verbatim,
// so apostrophes there survive. A quote that cannot open a string (see
// opensSingleQuote) is left as it is.
func normalizeQuotes(text string) (string, int) {
	if !strings.Contains(text, "'") {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))
	n := 0
	inDouble, escaped := false, false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inDouble {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inDouble = false
			}
			continue
		}

		switch {
		case c == '"':
			inDouble = true
			b.WriteByte(c)
		case c == '\'' && opensSingleQuote(text, i):
			end := closingQuote(text, i, '\'')
			b.WriteByte('"')
			writeRequoted(&b, text[i+1:end])
			b.WriteByte('"')
			i = end
			n++
		default:
			b.WriteByte(c)
		}
	}

	if n == 0 {
		return text, 0
	}
	return b.String(), n
}

// writeRequoted copies the body of a single-quoted string so that it is valid
// between double quotes: \' loses its backslash and a bare " gains one.
func writeRequoted(b *strings.Builder, body string) {
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			if body[i+1] != '\'' {
				b.WriteByte(c)
			}
			b.WriteByte(body[i+1])
			i++
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
}
