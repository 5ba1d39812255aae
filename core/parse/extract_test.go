package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "simple object", input: `{"name":"John"}`, want: []string{`{"name":"John"}`}},
		{name: "simple array", input: `[1,2,3]`, want: []string{`[1,2,3]`}},
		{name: "text around", input: "The result is:\n{\"name\":\"John\"}\nThank you!", want: []string{`{"name":"John"}`}},
		{name: "several objects", input: `{"first":1} and {"second":2}`, want: []string{`{"first":1}`, `{"second":2}`}},
		{name: "nested", input: `{"outer":{"inner":"value"}}`, want: []string{`{"outer":{"inner":"value"}}`, `{"inner":"value"}`}},
		{name: "escaped quotes", input: `{"text":"He said \"hi}\""}`, want: []string{`{"text":"He said \"hi}\""}`}},
		{name: "array of objects", input: `[{"id":1},{"id":2}]`, want: []string{`[{"id":1},{"id":2}]`, `{"id":1}`, `{"id":2}`}},
		{name: "mismatched brackets", input: `{"a": [1}`, want: []string{}},
		{name: "no JSON", input: "just plain text", want: []string{}},
		{name: "incomplete", input: `Here is incomplete: {"name":`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONCandidates(tt.input))
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "fence wins over earlier braces",
			input:  "Use {curly} braces.\n```json\n{\"a\": 1}\n```",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "fence without tag",
			input:  "```\n[1, 2]\n```",
			want:   `[1, 2]`,
			wantOK: true,
		},
		{
			name:   "no fence",
			input:  "result: {\"a\": [1]} done",
			want:   `{"a": [1]}`,
			wantOK: true,
		},
		{
			name:  "nothing balanced",
			input: "```json\n{\"a\": \n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFencedBody(t *testing.T) {
	body, ok := fencedBody("text\n```json\n  {\"a\": 1}  \n```\nmore")
	assert.True(t, ok)
	assert.Equal(t, `{"a": 1}`, body)

	body, ok = fencedBody("```json\n{\"a\": 1}")
	assert.True(t, ok)
	assert.Equal(t, `{"a": 1}`, body)

	_, ok = fencedBody("no fences here")
	assert.False(t, ok)

	_, ok = fencedBody("```{\"a\": 1}```")
	assert.False(t, ok)
}
