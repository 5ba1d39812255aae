package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/schemafix/core/autofix"
)

// ErrNoJSON is returned when a complex target is requested but the content
// holds no object or array at all.
var ErrNoJSON = errors.New("no JSON object or array found")

// ParseStringAs parses content into a value of type T.
//
// For primitive kinds the trimmed content is converted with strconv, falling
// back to a {"type": ..., "value": ...} envelope. Every other kind goes
// through JSON decoding with these fallbacks, stopping at the first success:
//
//  1. the content as is;
//  2. each JSON candidate found in it (markdown fence body, then every
//     balanced object or array in order of appearance);
//  3. the autofix engine applied to the JSON part of the content;
//  4. github.com/kaptinlin/jsonrepair applied to the same text.
//
// Each decode also tries unwrapping envelopes and reshaping: an array given
// for a struct or map target yields its first element, and an object given
// for a slice target is wrapped in a one-element array.
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	person, err := parse.ParseStringAs[Person]("Sure:\n{name: 'John', age: 30}")
//	n, err := parse.ParseStringAs[int](`{"type": "integer", "value": 42}`)
func ParseStringAs[T any](content string) (T, error) {
	var result T
	target := reflect.ValueOf(&result).Elem()

	switch kind := target.Kind(); kind {
	case reflect.String:
		if strings.HasPrefix(content, "{") {
			if unwrapped, err := tryUnwrapPrimitive(content); err == nil {
				target.SetString(unwrapped)
				return result, nil
			}
		}
		target.SetString(content)
		return result, nil

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		text := strings.TrimSpace(content)
		err := setPrimitive(target, text)
		if err == nil {
			return result, nil
		}
		if unwrapped, unwrapErr := tryUnwrapPrimitive(text); unwrapErr == nil {
			if setPrimitive(target, unwrapped) == nil {
				return result, nil
			}
		}
		return result, fmt.Errorf("failed to parse content as %s: %w", kind, err)

	default:
		return decodeTolerant[T](content)
	}
}

// setPrimitive converts text into target according to its kind, respecting
// the kind's bit size.
func setPrimitive(target reflect.Value, text string) error {
	switch target.Kind() {
	case reflect.Bool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return err
		}
		target.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(text, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(text, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(text, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetFloat(v)
	default:
		return fmt.Errorf("unsupported kind %s", target.Kind())
	}
	return nil
}

func decodeTolerant[T any](content string) (T, error) {
	result, err := decodeValue[T](content)
	if err == nil {
		return result, nil
	}
	lastErr := err

	fence, hasFence := fencedBody(content)
	var candidates []string
	if hasFence {
		candidates = append(candidates, fence)
	}
	candidates = append(candidates, extractJSONCandidates(content)...)

	for _, candidate := range candidates {
		if result, err = decodeValue[T](candidate); err == nil {
			return result, nil
		}
		lastErr = err
	}

	source, ok := repairSource(content, fence, hasFence)
	if !ok {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal content as %T: %w: %w", zero, ErrNoJSON, lastErr)
	}

	if fixed := autofix.Fix(source); fixed.Valid {
		if result, err = decodeValue[T](fixed.Fixed); err == nil {
			return result, nil
		}
		lastErr = err
	}

	repaired, repairErr := jsonrepair.JSONRepair(source)
	if repairErr != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: %w (repair error: %v)", zero, lastErr, repairErr)
	}
	if result, err = decodeValue[T](repaired); err == nil {
		return result, nil
	}

	var zero T
	return zero, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", zero, err, repaired)
}

// repairSource picks the text handed to the repair stages: the fence body,
// or everything from the first opening bracket on.
func repairSource(content, fence string, hasFence bool) (string, bool) {
	if hasFence && strings.ContainsAny(fence, "{[") {
		return fence, true
	}
	start := strings.IndexAny(content, "{[")
	if start < 0 {
		return "", false
	}
	return strings.TrimSpace(content[start:]), true
}

// decodeValue unmarshals text into T, retrying with envelopes unwrapped and
// with the top-level shape adjusted to the target.
func decodeValue[T any](text string) (T, error) {
	var out T
	err := json.Unmarshal([]byte(text), &out)
	if err == nil {
		return out, nil
	}

	variants := []string{text}
	if unwrapped, unwrapErr := unwrapSchemaValues(text); unwrapErr == nil && unwrapped != text {
		variants = append(variants, unwrapped)
	}

	typ := reflect.TypeFor[T]()
	for i, variant := range variants {
		if i > 0 {
			var again T
			if json.Unmarshal([]byte(variant), &again) == nil {
				return again, nil
			}
		}
		if reshaped, ok := reshape(variant, typ); ok {
			var again T
			if json.Unmarshal([]byte(reshaped), &again) == nil {
				return again, nil
			}
		}
	}

	var zero T
	return zero, err
}

// reshape adapts a top-level array to a struct or map target (first element)
// and a top-level object to a slice target (one-element array).
func reshape(text string, typ reflect.Type) (string, bool) {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	trimmed := strings.TrimSpace(text)

	switch typ.Kind() {
	case reflect.Struct, reflect.Map:
		if !strings.HasPrefix(trimmed, "[") {
			return "", false
		}
		var elems []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &elems); err != nil || len(elems) == 0 {
			return "", false
		}
		return string(elems[0]), true
	case reflect.Slice, reflect.Array:
		if !strings.HasPrefix(trimmed, "{") {
			return "", false
		}
		return "[" + trimmed + "]", true
	default:
		return "", false
	}
}

// tryUnwrapPrimitive returns the value of a {"type": ..., "value": ...}
// envelope as text.
func tryUnwrapPrimitive(content string) (string, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}

	value, ok := envelopeValue(data)
	if !ok {
		return "", errors.New("not a schema-wrapped value")
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case float64, bool:
		return fmt.Sprint(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}

// envelopeValue reports whether m is exactly {"type": ..., "value": ...}.
func envelopeValue(m map[string]any) (any, bool) {
	if len(m) != 2 {
		return nil, false
	}
	if _, ok := m["type"]; !ok {
		return nil, false
	}
	value, ok := m["value"]
	return value, ok
}

// unwrapSchemaValues replaces every {"type": ..., "value": ...} envelope in
// the document with its value, a common slip when a model echoes a schema:
//
//	{"name": {"type": "string", "value": "John"}} -> {"name":"John"}
func unwrapSchemaValues(jsonStr string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", err
	}

	out, err := json.Marshal(recursiveUnwrap(data))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func recursiveUnwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if value, ok := envelopeValue(v); ok {
			return recursiveUnwrap(value)
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = recursiveUnwrap(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = recursiveUnwrap(val)
		}
		return out
	default:
		return data
	}
}
