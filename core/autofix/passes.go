package autofix

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// pass is one named step of the pipeline. apply returns the rewritten text
// and the change-log entries; no entries means the text was left alone.
type pass struct {
	name  string
	apply func(e *Engine, text string) (string, []string)
}

// pipeline lists the passes in the order they run. Later passes rely on the
// cleanup done by earlier ones. Validation and formatting run after it.
var pipeline = []pass{
	{name: "bom", apply: stripBOMPass},
	{name: "comments", apply: stripCommentsPass},
	{name: "unquoted_keys", apply: countedPass(quoteKeys, "Added quotes to %d unquoted property %s", "name", "names")},
	{name: "trailing_commas", apply: countedPass(removeTrailingCommas, "Removed %d trailing %s", "comma", "commas")},
	{name: "single_quotes", apply: countedPass(normalizeQuotes, "Replaced single quotes with double quotes in %d %s", "string", "strings")},
	{name: "empty_objects", apply: countedPass(removeEmptyArrayObjects, "Removed %d empty %s from arrays", "object", "objects")},
	{name: "duplicate_commas", apply: countedPass(collapseDuplicateCommas, "Collapsed %d duplicate comma %s", "run", "runs")},
	{name: "dangling_commas", apply: countedPass(removeDanglingCommas, "Removed %d %s before closing brackets", "comma", "commas")},
	{name: "missing_commas", apply: countedPass(insertMissingCommas, "Inserted %d missing %s between entries", "comma", "commas")},
	{name: "touch_ups", apply: touchUpPass},
}

func countedPass(fn func(string) (string, int), format, singular, plural string) func(*Engine, string) (string, []string) {
	return func(_ *Engine, text string) (string, []string) {
		out, n := fn(text)
		if n == 0 {
			return text, nil
		}
		return out, []string{describe(format, n, singular, plural)}
	}
}

func describe(format string, n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf(format, n, noun)
}

const bom = "\uFEFF"

func stripBOMPass(_ *Engine, text string) (string, []string) {
	if !strings.HasPrefix(text, bom) {
		return text, nil
	}
	return strings.TrimPrefix(text, bom), []string{"Removed byte order mark"}
}

func stripCommentsPass(_ *Engine, text string) (string, []string) {
	out, lineComments, blockComments := stripComments(text)
	var notes []string
	if lineComments > 0 {
		notes = append(notes, describe("Removed %d single-line %s", lineComments, "comment", "comments"))
	}
	if blockComments > 0 {
		notes = append(notes, describe("Removed %d multi-line %s", blockComments, "comment", "comments"))
	}
	if notes == nil {
		return text, nil
	}
	return out, notes
}

// stripComments removes // comments up to (not including) the newline and
// terminated /* */ comments, skipping string literals. An unterminated block
// comment is kept.
func stripComments(text string) (string, int, int) {
	var b strings.Builder
	b.Grow(len(text))
	lineComments, blockComments := 0, 0

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '"' || (c == '\'' && opensSingleQuote(text, i)):
			end := closingQuote(text, i, c)
			if end < 0 {
				end = len(text)
			} else {
				end++
			}
			b.WriteString(text[i:end])
			i = end
		case strings.HasPrefix(text[i:], "//"):
			lineComments++
			if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
				i += nl
			} else {
				i = len(text)
			}
		case strings.HasPrefix(text[i:], "/*"):
			closeAt := strings.Index(text[i+2:], "*/")
			if closeAt < 0 {
				b.WriteString(text[i:])
				i = len(text)
				continue
			}
			blockComments++
			i += 2 + closeAt + 2
		default:
			b.WriteByte(c)
			i++
		}
	}

	if lineComments == 0 && blockComments == 0 {
		return text, 0, 0
	}
	return b.String(), lineComments, blockComments
}

var (
	unquotedKey    = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][A-Za-z0-9_$]*)(\s*:)`)
	trailingComma  = regexp.MustCompile(`,(\s*[}\]])`)
	duplicateComma = regexp.MustCompile(`,(?:\s*,)+`)
)

func quoteKeys(text string) (string, int) {
	return rewriteCode(text, codeRule(unquotedKey, `$1"$2"$3`))
}

func removeTrailingCommas(text string) (string, int) {
	return rewriteCode(text, codeRule(trailingComma, `$1`))
}

func collapseDuplicateCommas(text string) (string, int) {
	return rewriteCode(text, codeRule(duplicateComma, `,`))
}

// removeDanglingCommas repeats the trailing comma rule for commas that the
// empty-object and duplicate-comma passes left in front of a closer.
func removeDanglingCommas(text string) (string, int) {
	return rewriteCode(text, codeRule(trailingComma, `$1`))
}

var emptyObjectRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{re: regexp.MustCompile(`\[\s*\{\s*\}\s*,`), repl: "["},
	{re: regexp.MustCompile(`,\s*\{\s*\}\s*,`), repl: ","},
	{re: regexp.MustCompile(`,\s*\{\s*\}\s*\]`), repl: "]"},
	{re: regexp.MustCompile(`\[\s*\{\s*\}\s*\]`), repl: "[]"},

	// A line break also separates elements; the missing-comma pass adds the
	// comma later. "$" is the end of a code span, where a string literal or
	// the text begins or ends.
	{re: regexp.MustCompile(`(\[|,)\s*\{\s*\}(\s*\n\s*)([{\[]|$)`), repl: "$1$2$3"},
	{re: regexp.MustCompile(`([}\]]|^)(\s*\n\s*)\{\s*\}\s*,`), repl: "$1$2"},
	{re: regexp.MustCompile(`([}\]]|^)(\s*\n\s*)\{\s*\}(\s*\])`), repl: "$1$3"},
	{re: regexp.MustCompile(`([}\]]|^)(\s*\n\s*)\{\s*\}\s*\n\s*([{\[]|$)`), repl: "$1$2$3"},
}

// removeEmptyArrayObjects drops {} elements from arrays until none are left.
// This also applies to arrays in otherwise valid JSON.
func removeEmptyArrayObjects(text string) (string, int) {
	return rewriteCode(text, func(code string) (string, int) {
		total := 0
		for {
			round := 0
			for _, rule := range emptyObjectRules {
				var n int
				code, n = replaceCounting(rule.re, code, rule.repl)
				round += n
			}
			if round == 0 {
				return code, total
			}
			total += round
		}
	})
}

// touchUpPass only tidies text that is still broken; valid JSON is laid out
// by the final formatting step instead.
func touchUpPass(e *Engine, text string) (string, []string) {
	if json.Valid([]byte(strings.TrimSpace(text))) {
		return text, nil
	}

	var notes []string

	if n := strings.Count(text, "\r\n"); n > 0 {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		notes = append(notes, describe("Normalized %d line %s", n, "ending", "endings"))
	}

	if out, n := splitBraceKeys(text, e.knownKeys, e.indent); n > 0 {
		text = out
		notes = append(notes, describe("Added %d line %s after opening braces", n, "break", "breaks"))
	}

	return text, notes
}

// splitBraceKeys moves a known key that shares a line with its opening brace
// onto the next line, indented one level deeper than the brace's line. Only
// multi-line documents are touched, and only objects that stay open past the
// end of that line.
func splitBraceKeys(text string, keys []string, indent string) (string, int) {
	if len(keys) == 0 || !strings.Contains(text, "\n") {
		return text, 0
	}

	var b strings.Builder
	n, last := 0, 0
	for _, s := range segments(text) {
		if s.literal {
			continue
		}
		for k := s.start; k < s.end; k++ {
			if text[k] != '{' {
				continue
			}
			j := k + 1
			for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			if !startsWithKnownKey(text[j:], keys) || closesOnLine(text, k) {
				continue
			}
			b.WriteString(text[last : k+1])
			b.WriteByte('\n')
			b.WriteString(lineIndent(text, k))
			b.WriteString(indent)
			last = j
			n++
		}
	}
	if n == 0 {
		return text, 0
	}
	b.WriteString(text[last:])
	return b.String(), n
}

// startsWithKnownKey reports whether s begins with `"key"` and a colon for
// one of keys.
func startsWithKnownKey(s string, keys []string) bool {
	for _, key := range keys {
		quoted := `"` + key + `"`
		if !strings.HasPrefix(s, quoted) {
			continue
		}
		if strings.HasPrefix(strings.TrimLeft(s[len(quoted):], " \t"), ":") {
			return true
		}
	}
	return false
}

// closesOnLine reports whether the bracket at open is balanced before the
// next newline.
func closesOnLine(text string, open int) bool {
	depth := 0
	inString, escaped := false, false
	for i := open; i < len(text) && text[i] != '\n'; i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func lineIndent(text string, pos int) string {
	lineStart := strings.LastIndexByte(text[:pos], '\n') + 1
	end := lineStart
	for end < pos && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return text[lineStart:end]
}
