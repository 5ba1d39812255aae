package position

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int64
		want   Position
	}{
		{name: "start", text: "abc", offset: 0, want: Position{Line: 1, Column: 1}},
		{name: "second line", text: "a\nbc", offset: 3, want: Position{Line: 2, Column: 2}},
		{name: "on newline", text: "a\nb", offset: 1, want: Position{Line: 1, Column: 2}},
		{name: "after newline", text: "a\nb", offset: 2, want: Position{Line: 2, Column: 1}},
		{name: "multibyte column counts runes", text: "héllo", offset: 3, want: Position{Line: 1, Column: 3}},
		{name: "past end clamps", text: "ab\ncd", offset: 99, want: Position{Line: 2, Column: 3}},
		{name: "negative", text: "ab", offset: -4, want: Position{Line: 1, Column: 1}},
		{name: "empty text", text: "", offset: 0, want: Position{Line: 1, Column: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Locate(tt.text, tt.offset))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    *SyntaxError
		wantMsg string
	}{
		{name: "valid object", text: `{"a": [1, 2]}`},
		{name: "valid scalar with whitespace", text: " 42 \n"},
		{
			name:    "trailing comma",
			text:    `{"a": 1,}`,
			want:    &SyntaxError{Offset: 8, Line: 1, Column: 9},
			wantMsg: "looking for beginning of object key string",
		},
		{
			name:    "missing comma on later line",
			text:    "{\n  \"a\": 1\n  \"b\": 2\n}",
			want:    &SyntaxError{Offset: 13, Line: 3, Column: 3},
			wantMsg: "after object key:value pair",
		},
		{
			name:    "truncated",
			text:    `{"a": [1, 2`,
			want:    &SyntaxError{Offset: 11, Line: 1, Column: 12},
			wantMsg: "unexpected end of JSON input",
		},
		{
			name:    "empty",
			text:    "",
			want:    &SyntaxError{Offset: 0, Line: 1, Column: 1},
			wantMsg: "unexpected end of JSON input",
		},
		{
			name:    "content after value",
			text:    `{"a":1} x`,
			want:    &SyntaxError{Offset: 8, Line: 1, Column: 9},
			wantMsg: "after top-level value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.text)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}

			var se *SyntaxError
			require.True(t, errors.As(err, &se), "want *SyntaxError, got %v", err)
			assert.Equal(t, tt.want.Offset, se.Offset)
			assert.Equal(t, tt.want.Line, se.Line)
			assert.Equal(t, tt.want.Column, se.Column)
			assert.Contains(t, se.Msg, tt.wantMsg)
			assert.Contains(t, se.Error(), tt.wantMsg)
		})
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  Position
		want string
	}{
		{
			name: "ascii",
			text: "{\n  {x}\n}",
			pos:  Position{Line: 2, Column: 4},
			want: "  {x}\n   ^\n",
		},
		{
			name: "wide runes",
			text: `"日本x"`,
			pos:  Position{Line: 1, Column: 4},
			want: "\"日本x\"\n     ^\n",
		},
		{
			name: "tabs are kept",
			text: "\tx",
			pos:  Position{Line: 1, Column: 2},
			want: "\tx\n\t^\n",
		},
		{
			name: "carriage return trimmed",
			text: "ab\r\ncd",
			pos:  Position{Line: 1, Column: 3},
			want: "ab\n  ^\n",
		},
		{name: "line out of range", text: "ab", pos: Position{Line: 3, Column: 1}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Snippet(tt.text, tt.pos))
		})
	}
}

func TestSyntaxError_Position(t *testing.T) {
	err := Validate("[1,\n 2,\n ]")

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "3:2", se.Position().String())
	assert.Equal(t, " ]\n ^\n", Snippet("[1,\n 2,\n ]", se.Position()))
}
