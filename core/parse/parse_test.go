package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestParseStringAs_Primitives(t *testing.T) {
	t.Run("string is returned as is", func(t *testing.T) {
		for _, in := range []string{"hello world", "", "hello\nworld\t!", " padded "} {
			got, err := ParseStringAs[string](in)
			require.NoError(t, err)
			assert.Equal(t, in, got)
		}
	})

	t.Run("bool", func(t *testing.T) {
		tests := []struct {
			input   string
			want    bool
			wantErr bool
		}{
			{input: "true", want: true},
			{input: "false"},
			{input: "1", want: true},
			{input: " true\n", want: true},
			{input: "yes", wantErr: true},
		}
		for _, tt := range tests {
			got, err := ParseStringAs[bool](tt.input)
			if tt.wantErr {
				assert.Error(t, err, tt.input)
				continue
			}
			require.NoError(t, err, tt.input)
			assert.Equal(t, tt.want, got, tt.input)
		}
	})

	t.Run("int", func(t *testing.T) {
		got, err := ParseStringAs[int]("-42")
		require.NoError(t, err)
		assert.Equal(t, -42, got)

		_, err = ParseStringAs[int]("3.14")
		assert.ErrorContains(t, err, "failed to parse content as int")

		_, err = ParseStringAs[int8]("300")
		assert.Error(t, err, "out of range for int8")
	})

	t.Run("uint", func(t *testing.T) {
		got, err := ParseStringAs[uint]("7")
		require.NoError(t, err)
		assert.Equal(t, uint(7), got)

		_, err = ParseStringAs[uint]("-1")
		assert.Error(t, err)
	})

	t.Run("float", func(t *testing.T) {
		got, err := ParseStringAs[float64]("1.5e3")
		require.NoError(t, err)
		assert.InDelta(t, 1500.0, got, 1e-9)

		_, err = ParseStringAs[float64]("abc")
		assert.ErrorContains(t, err, "failed to parse content as float64")
	})
}

func TestParseStringAs_WrappedPrimitives(t *testing.T) {
	s, err := ParseStringAs[string](`{"type": "string", "value": "hello"}`)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	n, err := ParseStringAs[int](` {"type": "integer", "value": 42} `)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	f, err := ParseStringAs[float64](`{"type": "number", "value": -2.5}`)
	require.NoError(t, err)
	assert.InDelta(t, -2.5, f, 1e-9)

	b, err := ParseStringAs[bool](`{"type": "boolean", "value": true}`)
	require.NoError(t, err)
	assert.True(t, b)

	u, err := ParseStringAs[uint](`{"type": "integer", "value": 0}`)
	require.NoError(t, err)
	assert.Zero(t, u)

	// three keys is not an envelope
	_, err = ParseStringAs[int](`{"type": "integer", "value": 1, "x": 2}`)
	assert.Error(t, err)
}

func TestParseStringAs_Struct(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  person
	}{
		{name: "valid", input: `{"name":"John","age":30}`, want: person{Name: "John", Age: 30}},
		{name: "unquoted keys", input: `{name: "Alice", age: 28}`, want: person{Name: "Alice", Age: 28}},
		{name: "single quotes", input: `{'name': 'Bob', 'age': 35}`, want: person{Name: "Bob", Age: 35}},
		{name: "trailing comma", input: `{"name": "Charlie", "age": 40,}`, want: person{Name: "Charlie", Age: 40}},
		{name: "missing closing brace", input: `{"name": "David", "age": 45`, want: person{Name: "David", Age: 45}},
		{name: "line comment", input: "{\n  // who\n  \"name\": \"Eve\",\n  \"age\": 22\n}", want: person{Name: "Eve", Age: 22}},
		{name: "block comment", input: "{ /* who\n */ \"name\": \"Fay\", \"age\": 23 }", want: person{Name: "Fay", Age: 23}},
		{name: "code fence", input: "```json\n{\"name\": \"Gus\", \"age\": 35}\n```", want: person{Name: "Gus", Age: 35}},
		{name: "prose around", input: "Let me provide the data:\n{\"name\":\"Hal\",\"age\":50}\nIs this what you needed?", want: person{Name: "Hal", Age: 50}},
		{name: "prose and malformed", input: "Here you go:\n{name: 'Ivy', age: 45}", want: person{Name: "Ivy", Age: 45}},
		{name: "first of several objects", input: "Option 1: {\"age\":10}\nOption 2: {\"age\":20}", want: person{Age: 10}},
		{name: "array gives first element", input: `[{"name":"Jane","age":25},{"name":"Bob","age":35}]`, want: person{Name: "Jane", Age: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringAs[person](tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStringAs_NoJSON(t *testing.T) {
	_, err := ParseStringAs[person]("this is not json at all")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoJSON))
}

func TestParseStringAs_PythonConstants(t *testing.T) {
	type config struct {
		Enabled any `json:"enabled"`
		Value   any `json:"value"`
	}

	for _, in := range []string{
		`{"enabled": None, "value": 42}`,
		`{"enabled": True, "value": 42}`,
		`{"enabled": False, "value": 42}`,
	} {
		got, err := ParseStringAs[config](in)
		require.NoError(t, err, in)
		assert.EqualValues(t, 42, got.Value, in)
	}
}

func TestParseStringAs_Pointer(t *testing.T) {
	got, err := ParseStringAs[*person](`{name: 'Alice', age: 28}`)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, person{Name: "Alice", Age: 28}, *got)
}

func TestParseStringAs_SliceAndMap(t *testing.T) {
	list, err := ParseStringAs[[]string](`['a', 'b',]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list)

	people, err := ParseStringAs[[]person]("Here is the person:\n{\"name\":\"Jane\",\"age\":25}")
	require.NoError(t, err)
	assert.Equal(t, []person{{Name: "Jane", Age: 25}}, people)

	m, err := ParseStringAs[map[string]any](`{a: 1, 'b': "x"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1), "b": "x"}, m)

	empty, err := ParseStringAs[map[string]any](`{}`)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseStringAs_WrappedValues(t *testing.T) {
	type address struct {
		Street string `json:"street"`
		City   string `json:"city"`
	}
	type resident struct {
		Name    string  `json:"name"`
		Address address `json:"address"`
	}

	got, err := ParseStringAs[person](`{"name": {"type": "string", "value": "John"}, "age": 30}`)
	require.NoError(t, err)
	assert.Equal(t, person{Name: "John", Age: 30}, got)

	got, err = ParseStringAs[person](`{name: {type: "string", value: "Charlie"}, age: {type: "integer", value: 40}}`)
	require.NoError(t, err)
	assert.Equal(t, person{Name: "Charlie", Age: 40}, got)

	nested, err := ParseStringAs[resident](`{
		"name": {"type": "string", "value": "Alice"},
		"address": {"type": "object", "value": {
			"street": {"type": "string", "value": "456 Oak Ave"},
			"city": "Boston"
		}}
	}`)
	require.NoError(t, err)
	assert.Equal(t, resident{Name: "Alice", Address: address{Street: "456 Oak Ave", City: "Boston"}}, nested)

	list, err := ParseStringAs[[]string](`[{"type": "string", "value": "apple"}, "banana"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana"}, list)

	m, err := ParseStringAs[map[string]string](`{"k": {"type": "string", "value": "v"}}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k": "v"}, m)
}

func TestParseStringAs_LegitimateTypeValueFields(t *testing.T) {
	type typed struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}

	got, err := ParseStringAs[typed](`{"type": "integer", "value": 42}`)
	require.NoError(t, err)
	assert.Equal(t, typed{Type: "integer", Value: float64(42)}, got)
}
