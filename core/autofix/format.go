package autofix

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// finish parses text and, when it is JSON, pretty-prints it. With deep repair
// enabled, text that does not parse is handed to jsonrepair first. Text that
// cannot be made valid is returned unchanged with no notes.
func (e *Engine) finish(text string) (string, bool, []string) {
	if formatted, ok := e.format(text); ok {
		// surrounding whitespace alone is not worth a note
		if formatted == strings.TrimSpace(text) {
			return formatted, true, nil
		}
		return formatted, true, []string{"Reformatted JSON"}
	}

	if !e.deepRepair {
		return text, false, nil
	}
	repaired, ok := structuralRepair(text)
	if !ok {
		return text, false, nil
	}
	formatted, ok := e.format(repaired)
	if !ok {
		return text, false, nil
	}
	notes := []string{"Applied structural repair"}
	if formatted != repaired {
		notes = append(notes, "Reformatted JSON")
	}
	return formatted, true, notes
}

// format returns text indented with e.indent, keeping key order and number
// literals as written.
func (e *Engine) format(text string) (string, bool) {
	trimmed := []byte(strings.TrimSpace(text))
	if !json.Valid(trimmed) {
		return "", false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", e.indent); err != nil {
		return "", false
	}
	return buf.String(), true
}

// structuralRepair runs jsonrepair and contains any panic from it, since Fix
// must not panic.
func structuralRepair(text string) (repaired string, ok bool) {
	defer func() {
		if recover() != nil {
			repaired, ok = "", false
		}
	}()
	out, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return "", false
	}
	return out, true
}
