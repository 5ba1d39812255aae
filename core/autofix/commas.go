package autofix

import "strings"

type lineState struct {
	inString bool
	depth    int
}

// insertMissingCommas is a line-oriented heuristic for the most common manual
// editing slip, a missing comma between two entries written on separate
// lines. A comma is appended to a line when
//
//   - its trimmed content ends with '}', ']' or '"',
//   - the next non-blank line starts with '{', '[' or '"',
//   - the line does not end inside a string literal, and
//   - some bracket is still open after the line, so both values live in the
//     same enclosing structure.
//
// It works on lines, not tokens: values spanning several lines can fool it.
func insertMissingCommas(text string) (string, int) {
	lines := strings.Split(text, "\n")
	states := lineEndStates(lines)
	n := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !strings.ContainsRune(`}]"`, rune(trimmed[len(trimmed)-1])) {
			continue
		}
		if states[i].inString || states[i].depth <= 0 {
			continue
		}
		j := nextNonBlank(lines, i+1)
		if j < 0 {
			continue
		}
		next := strings.TrimSpace(lines[j])
		if !strings.ContainsRune(`{["`, rune(next[0])) {
			continue
		}

		cut := len(strings.TrimRight(line, " \t\r"))
		lines[i] = line[:cut] + "," + line[cut:]
		n++
	}

	if n == 0 {
		return text, 0
	}
	return strings.Join(lines, "\n"), n
}

// lineEndStates records, for every line, whether a double-quoted string is
// still open at its end and how many brackets are open.
func lineEndStates(lines []string) []lineState {
	states := make([]lineState, len(lines))
	inString, escaped, depth := false, false, 0

	for i, line := range lines {
		for k := 0; k < len(line); k++ {
			c := line[k]
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
			}
		}
		states[i] = lineState{inString: inString, depth: depth}
	}
	return states
}

func nextNonBlank(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			return j
		}
	}
	return -1
}
