package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leofalp/schemafix/core/autofix"
	"github.com/leofalp/schemafix/core/position"
	"github.com/leofalp/schemafix/providers/observability"
)

// ErrNotJSON is returned by Load when the text is still not JSON after repair.
var ErrNotJSON = errors.New("definition is not valid JSON")

// Load repairs text with the autofix engine, decodes it into a Definition
// (unknown keys are rejected) and validates it. The repair result is always
// returned so that callers can show the change log, even on error. A
// definition that decodes but fails validation is returned together with
// the ValidationErrors.
func Load(ctx context.Context, text string, opts ...autofix.Option) (*Definition, autofix.Result, error) {
	obs := observability.ObserverFromContext(ctx)
	var span observability.Span
	if obs != nil {
		ctx, span = obs.StartSpan(ctx, observability.SpanSchemaLoad,
			observability.Int(observability.AttrInputBytes, len(text)))
		defer span.End()
	}
	fail := func(def *Definition, res autofix.Result, err error) (*Definition, autofix.Result, error) {
		if span != nil {
			span.SetStatus(observability.StatusError, err.Error())
		}
		return def, res, err
	}

	res := autofix.New(opts...).Fix(ctx, text)
	if !res.Valid {
		err := ErrNotJSON
		var se *position.SyntaxError
		if errors.As(position.Validate(res.Fixed), &se) {
			err = fmt.Errorf("%w: %w", ErrNotJSON, se)
		}
		return fail(nil, res, err)
	}

	def, err := decodeDefinition(res.Fixed)
	if err != nil {
		return fail(nil, res, err)
	}

	if obs != nil {
		obs.Debug(ctx, "Definition decoded",
			observability.String(observability.AttrSchemaName, def.Name),
			observability.Int(observability.AttrSchemaFields, len(def.Fields)),
			observability.Strings(observability.AttrChanges, res.Changes),
		)
	}

	if err := def.Validate(); err != nil {
		return fail(def, res, err)
	}
	if span != nil {
		span.SetStatus(observability.StatusOK, "")
	}
	return def, res, nil
}

func decodeDefinition(text string) (*Definition, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()

	var def Definition
	if err := dec.Decode(&def); err != nil {
		var se *json.SyntaxError
		var te *json.UnmarshalTypeError
		switch {
		case errors.As(err, &se):
			return nil, fmt.Errorf("decode definition at %s: %w", position.Locate(text, se.Offset-1), err)
		case errors.As(err, &te):
			return nil, fmt.Errorf("decode definition at %s: %s must be %s, got %s: %w",
				position.Locate(text, te.Offset), te.Field, te.Type, te.Value, err)
		default:
			return nil, fmt.Errorf("decode definition: %w", err)
		}
	}
	return &def, nil
}
