package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/leofalp/schemafix/core/autofix"
	"github.com/leofalp/schemafix/core/position"
	"github.com/leofalp/schemafix/providers/observability"
)

var (
	nameColor    = color.New(color.Bold)
	changeColor  = color.New(color.FgGreen)
	problemColor = color.New(color.FgRed)
)

type fixOutcome struct {
	input
	result  autofix.Result
	written bool
}

func newFixCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [file...]",
		Short: "Repair JSON-like files",
		Long: `Repair comments, unquoted keys, single quotes, stray commas and similar
mistakes, then pretty-print the result. Reads standard input when no file (or
"-") is given. The repaired text goes to standard output unless --write is
set; the list of changes goes to standard error.

Exits with status 1 when some input is still not valid JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, a, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolP("write", "w", false, "rewrite files in place instead of printing them")
	flags.Bool("deep", false, "fall back to structural repair for truncated or badly broken input")
	flags.IntP("jobs", "j", 0, "number of files repaired in parallel (default: number of CPUs)")
	flags.BoolP("quiet", "q", false, "do not report changes")
	addIndentFlag(flags)
	return cmd
}

func runFix(cmd *cobra.Command, a *app, args []string) error {
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	names := inputNames(args)
	if write {
		for _, name := range names {
			if name == stdinName {
				return usageError("--write cannot be used with standard input")
			}
		}
	}

	engine := autofix.New(a.cfg.AutofixOptions(a.obs)...)
	outcomes, err := forEach(cmd.Context(), cmd.InOrStdin(), names, a.cfg.Jobs,
		func(ctx context.Context, in input) (fixOutcome, error) {
			out := fixOutcome{input: in, result: engine.Fix(ctx, in.text)}
			if write && out.result.Valid && out.result.Fixed+"\n" != in.text {
				if err := writeFile(in.name, out.result.Fixed+"\n"); err != nil {
					return out, err
				}
				out.written = true
				a.obs.Info(ctx, "File rewritten",
					observability.String(observability.AttrSource, in.name),
					observability.Int(observability.AttrOutputBytes, len(out.result.Fixed)+1),
				)
			}
			return out, nil
		})
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	invalid := 0
	for _, out := range outcomes {
		if !quiet {
			reportChanges(stderr, out)
		}
		if !out.result.Valid {
			invalid++
			reportProblem(stderr, out.name, out.result.Fixed)
		}
		if !write {
			fmt.Fprintln(stdout, out.result.Fixed)
		}
	}

	if invalid > 0 {
		return errInvalidInput
	}
	return nil
}

func reportChanges(w io.Writer, out fixOutcome) {
	name := displayName(out.name)
	for _, change := range out.result.Changes {
		nameColor.Fprintf(w, "%s: ", name)
		changeColor.Fprintln(w, change)
	}
	if out.written {
		nameColor.Fprintf(w, "%s: ", name)
		fmt.Fprintln(w, "rewritten")
	}
}

// reportProblem prints where text stops being JSON, compiler style.
func reportProblem(w io.Writer, name, text string) {
	err := position.Validate(text)
	if err == nil {
		return
	}
	var se *position.SyntaxError
	if !errors.As(err, &se) {
		problemColor.Fprintf(w, "%s: %v\n", displayName(name), err)
		return
	}
	nameColor.Fprintf(w, "%s:%s: ", displayName(name), se.Position())
	problemColor.Fprintln(w, se.Msg)
	fmt.Fprint(w, position.Snippet(text, se.Position()))
}

// writeFile replaces path keeping its permissions.
func writeFile(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
