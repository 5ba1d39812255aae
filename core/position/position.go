package position

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Position is a 1-based line and column. Columns count runes, not bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locate returns the position of the byte at offset. Offsets past the end
// of text are clamped to the end; negative offsets map to 1:1.
func Locate(text string, offset int64) Position {
	off := clamp(offset, len(text))
	lines := lineStarts(text)

	// last line start <= off
	line := sort.Search(len(lines), func(i int) bool { return lines[i] > off }) - 1
	start := lines[line]

	return Position{
		Line:   line + 1,
		Column: utf8.RuneCountInString(text[start:off]) + 1,
	}
}

// lineStarts returns the byte offset at which every line begins.
func lineStarts(text string) []int {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func clamp(offset int64, n int) int {
	switch {
	case offset < 0:
		return 0
	case offset > int64(n):
		return n
	default:
		return int(offset)
	}
}

// SyntaxError locates a JSON syntax error in the validated text.
type SyntaxError struct {
	// Offset is the byte offset of the offending byte.
	Offset int64
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Position returns the line and column of the error.
func (e *SyntaxError) Position() Position {
	return Position{Line: e.Line, Column: e.Column}
}

// Validate reports whether text is a single JSON value. A syntax problem is
// returned as *SyntaxError; for truncated input it points just past the end.
func Validate(text string) error {
	var raw json.RawMessage
	err := json.Unmarshal([]byte(text), &raw)
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return fmt.Errorf("validate JSON: %w", err)
	}
	// Offset counts the bytes read including the offending one.
	off := se.Offset - 1
	if se.Offset >= int64(len(text)) && strings.HasPrefix(se.Error(), "unexpected end") {
		off = int64(len(text))
	}
	if off < 0 {
		off = 0
	}
	return newSyntaxError(text, off, se.Error())
}

func newSyntaxError(text string, offset int64, msg string) *SyntaxError {
	pos := Locate(text, offset)
	return &SyntaxError{Offset: offset, Line: pos.Line, Column: pos.Column, Msg: msg}
}

// Snippet returns the line at pos followed by a caret under its column.
// Tabs are kept in the caret line so that it stays aligned in a terminal.
func Snippet(text string, pos Position) string {
	lines := strings.Split(text, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}
	line := strings.TrimRight(lines[pos.Line-1], "\r")

	var pad strings.Builder
	col := 1
	for _, r := range line {
		if col >= pos.Column {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		col++
	}

	return line + "\n" + pad.String() + "^\n"
}
