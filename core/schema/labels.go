package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/leofalp/schemafix/core/parse"
	"github.com/leofalp/schemafix/internal/jsonschema"
	"github.com/leofalp/schemafix/providers/observability"
)

// ErrEmptyReply is returned by ApplyLabels when the assistant's reply holds
// no field suggestions.
var ErrEmptyReply = errors.New("assistant reply holds no field suggestions")

// LabelReply is the shape the assistant is asked to answer with.
type LabelReply struct {
	Fields []LabelSuggestion `json:"fields" jsonschema:"description=One entry per form field that needs a label"`
	Groups []Group           `json:"groups,omitempty" jsonschema:"description=Labels for the groups referenced by fields"`
}

// LabelSuggestion is the assistant's proposal for one field.
type LabelSuggestion struct {
	ID         string            `json:"id" jsonschema:"description=Field id exactly as listed in the request"`
	Label      string            `json:"label" jsonschema:"description=Short label a person filling the form would understand"`
	Group      string            `json:"group,omitempty" jsonschema:"description=Id of the section the field belongs to"`
	Path       string            `json:"path,omitempty" jsonschema:"description=Dotted data-model path\\, e.g. applicant.address.city"`
	Attributes map[string]string `json:"attributes,omitempty" jsonschema:"description=Extra hints such as placeholder or help text"`
}

// labelRequestField is the per-field context sent to the assistant.
type labelRequestField struct {
	ID      string    `json:"id"`
	Type    FieldType `json:"type"`
	Page    int       `json:"page,omitempty"`
	Label   string    `json:"label,omitempty"`
	Group   string    `json:"group,omitempty"`
	Options []string  `json:"options,omitempty"`
}

// LabelRequest builds the prompt asking an AI assistant to label the fields
// of def. The prompt embeds the JSON Schema of LabelReply so that the answer
// can be decoded by ApplyLabels.
func LabelRequest(def *Definition) (string, error) {
	replySchema, err := jsonschema.GenerateJSONSchema[LabelReply]()
	if err != nil {
		return "", fmt.Errorf("build reply schema: %w", err)
	}
	schemaJSON, err := replySchema.JSONString(true)
	if err != nil {
		return "", err
	}

	fields := make([]labelRequestField, len(def.Fields))
	for i, f := range def.Fields {
		fields[i] = labelRequestField{ID: f.ID, Type: f.Type, Page: f.Page, Label: f.Label, Group: f.Group, Options: f.Options}
	}
	fieldsJSON, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are labelling the form fields of the PDF %q", def.Name)
	if def.Document != "" {
		fmt.Fprintf(&b, " (%s)", def.Document)
	}
	b.WriteString(".\n")
	if def.Description != "" {
		fmt.Fprintf(&b, "About the form: %s\n", def.Description)
	}
	b.WriteString(`
For every field below, propose a short human-readable label. When fields
belong together, give them the same group id and add that group to "groups"
with a label. Suggest a data-model path when the meaning of the field is clear.
Keep field ids exactly as given. Answer with a single JSON object and nothing
else.

Fields:
`)
	b.Write(fieldsJSON)
	b.WriteString("\n\nThe answer must match this JSON Schema:\n")
	b.WriteString(schemaJSON)
	b.WriteString("\n")
	return b.String(), nil
}

// ApplyLabels decodes an assistant reply (a LabelReply object or a bare
// array of suggestions, possibly wrapped in prose or malformed) and merges
// it into d. Suggestions for unknown field ids are ignored. A field's label,
// group and attributes are overwritten by non-empty suggestions; its path is
// only filled when empty. Groups named by suggestions are created when
// missing. It returns the number of fields updated.
func (d *Definition) ApplyLabels(ctx context.Context, reply string) (int, error) {
	obs := observability.ObserverFromContext(ctx)
	if obs != nil {
		var span observability.Span
		ctx, span = obs.StartSpan(ctx, observability.SpanSchemaLabel,
			observability.String(observability.AttrSchemaName, d.Name))
		defer span.End()
	}

	parsed, err := decodeReply(reply)
	if err != nil {
		if obs != nil {
			obs.Warn(ctx, "Assistant reply could not be used", observability.Error(err))
		}
		return 0, err
	}

	for _, g := range parsed.Groups {
		if g.ID == "" {
			continue
		}
		if existing := d.Group(g.ID); existing != nil {
			if g.Label != "" {
				existing.Label = g.Label
			}
			if g.Description != "" {
				existing.Description = g.Description
			}
			continue
		}
		d.Groups = append(d.Groups, g)
	}

	applied := 0
	for _, s := range parsed.Fields {
		f := d.Field(s.ID)
		if f == nil {
			continue
		}
		if mergeSuggestion(f, s) {
			applied++
		}
		if s.Group != "" && d.Group(s.Group) == nil {
			d.Groups = append(d.Groups, Group{ID: s.Group, Label: Humanize(s.Group)})
		}
	}

	if obs != nil {
		obs.Info(ctx, "Applied assistant labels",
			observability.String(observability.AttrSchemaName, d.Name),
			observability.Int(observability.AttrLabelsApplied, applied),
		)
	}
	return applied, nil
}

func mergeSuggestion(f *Field, s LabelSuggestion) bool {
	changed := false
	if s.Label != "" && s.Label != f.Label {
		f.Label = s.Label
		changed = true
	}
	if s.Group != "" && s.Group != f.Group {
		f.Group = s.Group
		changed = true
	}
	if s.Path != "" && f.Path == "" {
		f.Path = s.Path
		changed = true
	}
	for k, v := range s.Attributes {
		if f.Attributes == nil {
			f.Attributes = map[string]string{}
		}
		if f.Attributes[k] != v {
			f.Attributes[k] = v
			changed = true
		}
	}
	return changed
}

func decodeReply(reply string) (LabelReply, error) {
	if strings.TrimSpace(reply) == "" {
		return LabelReply{}, ErrEmptyReply
	}

	parsed, err := parse.ParseStringAs[LabelReply](reply)
	if err == nil && hasIDs(parsed.Fields) {
		return parsed, nil
	}

	list, listErr := parse.ParseStringAs[[]LabelSuggestion](reply)
	if listErr == nil && hasIDs(list) {
		return LabelReply{Fields: list}, nil
	}

	if err != nil {
		return LabelReply{}, fmt.Errorf("decode assistant reply: %w", err)
	}
	return LabelReply{}, ErrEmptyReply
}

func hasIDs(suggestions []LabelSuggestion) bool {
	for _, s := range suggestions {
		if s.ID != "" {
			return true
		}
	}
	return false
}
