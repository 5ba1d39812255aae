package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leofalp/schemafix/core/schema"
	"github.com/leofalp/schemafix/providers/observability"
)

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Work with PDF form schema definitions",
		Long: `Commands for schema definitions: the JSON documents describing the fields
of a PDF form. Every command repairs the definition before reading it, so
hand-written files with comments or single quotes are accepted. Use "-" to
read a definition from standard input.`,
	}
	cmd.AddCommand(
		newSchemaValidateCmd(a),
		newSchemaGroupCmd(a),
		newSchemaPromptCmd(a),
		newSchemaLabelsCmd(a),
		newSchemaJSONSchemaCmd(a),
	)
	return cmd
}

func newSchemaValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a definition for structural problems",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(cmd, a, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d fields in %d groups\n",
				displayName(args[0]), len(def.Fields), len(def.Groups))
			return nil
		},
	}
}

func newSchemaGroupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group <file>",
		Short: "Group fields by id prefix and fill in missing labels",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(cmd, a, args[0])
			if err != nil {
				return err
			}

			grouped := def.AutoGroup(a.cfg.GroupSeparators)
			filled := def.FillLabels()
			a.obs.Info(a.withObserver(cmd.Context()), "Grouped fields",
				observability.String(observability.AttrSchemaName, def.Name),
				observability.Int(observability.AttrFieldsGrouped, grouped),
				observability.Int(observability.AttrLabelsFilled, filled),
			)
			return printDefinition(cmd, a, args[0], def)
		},
	}
	cmd.Flags().String("separators", "", `characters ending a group prefix (default "`+schema.DefaultSeparators+`")`)
	addWriteFlag(cmd)
	addIndentFlag(cmd.Flags())
	return cmd
}

func newSchemaPromptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <file>",
		Short: "Print a prompt asking an AI assistant to label the fields",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(cmd, a, args[0])
			if err != nil {
				return err
			}
			prompt, err := schema.LabelRequest(def)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), prompt)
			return nil
		},
	}
}

func newSchemaLabelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels <file> <reply-file>",
		Short: "Merge an assistant's label suggestions into a definition",
		Long: `Merge the reply to "schemafix schema prompt" into the definition. The reply
may be wrapped in prose or a markdown fence and may be malformed JSON.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(cmd, a, args[0])
			if err != nil {
				return err
			}
			reply, err := readInput(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			if _, err := def.ApplyLabels(a.withObserver(cmd.Context()), reply.text); err != nil {
				return fmt.Errorf("%s: %w", displayName(args[1]), err)
			}
			if err := def.Validate(); err != nil {
				return reportInvalid(cmd, args[0], err)
			}
			return printDefinition(cmd, a, args[0], def)
		},
	}
	addWriteFlag(cmd)
	addIndentFlag(cmd.Flags())
	return cmd
}

func newSchemaJSONSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "jsonschema <file>",
		Short: "Print the JSON Schema of the data a filled-in form produces",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(cmd, a, args[0])
			if err != nil {
				return err
			}
			s, err := def.JSONSchema()
			if err != nil {
				return err
			}
			text, err := s.JSONString(true)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func addWriteFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("write", "w", false, "rewrite the definition file instead of printing it")
}

// loadDefinition reads, repairs and validates the definition in name.
// Problems are printed and reported as errInvalidInput.
func loadDefinition(cmd *cobra.Command, a *app, name string) (*schema.Definition, error) {
	in, err := readInput(cmd.InOrStdin(), name)
	if err != nil {
		return nil, err
	}

	def, res, err := schema.Load(a.withObserver(cmd.Context()), in.text, a.cfg.AutofixOptions(nil)...)
	switch {
	case err == nil:
		return def, nil
	case errors.Is(err, schema.ErrNotJSON):
		reportProblem(cmd.ErrOrStderr(), name, res.Fixed)
		return nil, errInvalidInput
	default:
		return nil, reportInvalid(cmd, name, err)
	}
}

// reportInvalid prints each validation problem on its own line.
func reportInvalid(cmd *cobra.Command, name string, err error) error {
	var problems schema.ValidationErrors
	if !errors.As(err, &problems) {
		return fmt.Errorf("%s: %w", displayName(name), err)
	}
	w := cmd.ErrOrStderr()
	for _, p := range problems {
		nameColor.Fprintf(w, "%s: ", displayName(name))
		problemColor.Fprintln(w, p.Error())
	}
	return errInvalidInput
}

// printDefinition writes def to stdout, or back to name with --write.
func printDefinition(cmd *cobra.Command, a *app, name string, def *schema.Definition) error {
	data, err := def.Marshal(a.cfg.IndentString())
	if err != nil {
		return err
	}
	data = append(data, '\n')

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	if !write {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if name == stdinName {
		return usageError("--write cannot be used with standard input")
	}
	return writeFile(name, string(data))
}
