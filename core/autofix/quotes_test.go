package autofix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		count int
	}{
		{name: "key and value", input: `{'a': 'x'}`, want: `{"a": "x"}`, count: 2},
		{name: "apostrophe in double quotes", input: `{"a": "it's"}`, want: `{"a": "it's"}`},
		{name: "escaped single quote", input: `['it\'s']`, want: `["it's"]`, count: 1},
		{name: "embedded double quote", input: `['say "hi"']`, want: `["say \"hi\""]`, count: 1},
		{name: "other escapes kept", input: `['a\nb']`, want: `["a\nb"]`, count: 1},
		{name: "escaped double quote in double string", input: `{"a": "q\"'x'"}`, want: `{"a": "q\"'x'"}`},
		{name: "unclosed quote left alone", input: `{"a": 'x}`, want: `{"a": 'x}`},
		{name: "quote after letter is not an opener", input: `[rock'n'roll]`, want: `[rock'n'roll]`},
		{name: "start of text", input: `'solo'`, want: `"solo"`, count: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := normalizeQuotes(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.count, n)
		})
	}
}
