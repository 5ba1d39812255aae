package parse

import "strings"

// ExtractJSON returns the most likely JSON part of content: the body of the
// first markdown code fence if it holds a balanced object or array, else the
// first balanced object or array anywhere in the text.
func ExtractJSON(content string) (string, bool) {
	if body, ok := fencedBody(content); ok {
		if candidates := extractJSONCandidates(body); len(candidates) > 0 {
			return candidates[0], true
		}
	}
	if candidates := extractJSONCandidates(content); len(candidates) > 0 {
		return candidates[0], true
	}
	return "", false
}

// fencedBody returns the trimmed text between the first ``` fence (with an
// optional language tag) and the next one. An unclosed fence runs to the end.
func fencedBody(content string) (string, bool) {
	open := strings.Index(content, "```")
	if open < 0 {
		return "", false
	}
	rest := content[open+3:]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return "", false
	}
	// the tag line holds a language name or nothing
	if tag := strings.TrimSpace(rest[:nl]); strings.ContainsAny(tag, "{[") {
		return "", false
	}
	rest = rest[nl+1:]
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	body := strings.TrimSpace(rest)
	return body, body != ""
}

// extractJSONCandidates returns every balanced object or array in s, ordered
// by start position. Nested values are reported after their parent.
func extractJSONCandidates(s string) []string {
	candidates := []string{}
	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		if candidate, ok := scanBalanced(s, i); ok {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

// scanBalanced returns the object or array starting at start if its brackets
// are balanced and correctly nested, skipping double-quoted strings.
func scanBalanced(s string, start int) (string, bool) {
	stack := make([]byte, 0, 8)
	inString, escaped := false, false

	for i := start; i < len(s); i++ {
		c := s[i]
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
			stack = append(stack, c)
		case '}', ']':
			top := stack[len(stack)-1]
			if (top == '{') != (c == '}') {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
