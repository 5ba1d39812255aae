package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every ValidationErrors value with errors.Is.
var ErrInvalid = errors.New("invalid schema definition")

// ValidationError is one problem found in a definition. Field is a JSON
// path such as "fields[2].type".
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors lists every problem found by Validate, in document order
// for struct rules followed by cross-field rules.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalid
}

var dataPathPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\[\d*\])*(\.[A-Za-z_][A-Za-z0-9_]*(\[\d*\])*)*$`)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("datapath", func(fl validator.FieldLevel) bool {
		return dataPathPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("fieldtype", func(fl validator.FieldLevel) bool {
		return slices.Contains(FieldTypes, FieldType(fl.Field().String()))
	})
	return v
}

// Validate checks struct rules (required values, known field types, data
// path syntax) and cross-field rules: field IDs, group IDs and paths are
// unique, groups referenced by fields exist, and radio and select fields
// have options. It returns nil or a ValidationErrors.
func (d *Definition) Validate() error {
	var problems ValidationErrors

	if err := validate.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate definition: %w", err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, ValidationError{Field: fieldPath(fe), Message: describeTag(fe)})
		}
	}

	problems = append(problems, d.crossFieldProblems()...)
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// fieldPath drops the root type name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "fieldtype":
		return fmt.Sprintf("unknown field type %q", fe.Value())
	case "datapath":
		return fmt.Sprintf("%q is not a data path like \"person.address[0].city\"", fe.Value())
	case "semver":
		return fmt.Sprintf("%q is not a semantic version", fe.Value())
	case "min":
		return "must be at least " + fe.Param()
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func (d *Definition) crossFieldProblems() ValidationErrors {
	var problems ValidationErrors

	groupAt := map[string]int{}
	for i, g := range d.Groups {
		if g.ID == "" {
			continue
		}
		if first, dup := groupAt[g.ID]; dup {
			problems = append(problems, ValidationError{
				Field:   fmt.Sprintf("groups[%d].id", i),
				Message: fmt.Sprintf("duplicate group id %q (first used by groups[%d])", g.ID, first),
			})
			continue
		}
		groupAt[g.ID] = i
	}

	idAt, pathAt := map[string]int{}, map[string]int{}
	for i, f := range d.Fields {
		if f.ID != "" {
			if first, dup := idAt[f.ID]; dup {
				problems = append(problems, ValidationError{
					Field:   fmt.Sprintf("fields[%d].id", i),
					Message: fmt.Sprintf("duplicate field id %q (first used by fields[%d])", f.ID, first),
				})
			} else {
				idAt[f.ID] = i
			}
		}
		if f.Path != "" {
			if first, dup := pathAt[f.Path]; dup {
				problems = append(problems, ValidationError{
					Field:   fmt.Sprintf("fields[%d].path", i),
					Message: fmt.Sprintf("path %q is already used by fields[%d]", f.Path, first),
				})
			} else {
				pathAt[f.Path] = i
			}
		}
		if f.Group != "" {
			if _, ok := groupAt[f.Group]; !ok {
				problems = append(problems, ValidationError{
					Field:   fmt.Sprintf("fields[%d].group", i),
					Message: fmt.Sprintf("unknown group %q", f.Group),
				})
			}
		}
		if f.Type.HasOptions() && len(f.Options) == 0 {
			problems = append(problems, ValidationError{
				Field:   fmt.Sprintf("fields[%d].options", i),
				Message: fmt.Sprintf("%s fields need at least one option", f.Type),
			})
		}
	}
	return problems
}
