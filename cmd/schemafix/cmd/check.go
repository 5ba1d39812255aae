package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/leofalp/schemafix/core/position"
)

type checkOutcome struct {
	input
	valid bool
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Report where files stop being valid JSON",
		Long: `Validate files without repairing them. Each problem is printed as
file:line:column followed by the offending line and a caret.

Exits with status 1 when some input is not valid JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outcomes, err := forEach(cmd.Context(), cmd.InOrStdin(), inputNames(args), a.cfg.Jobs,
				func(_ context.Context, in input) (checkOutcome, error) {
					return checkOutcome{input: in, valid: position.Validate(in.text) == nil}, nil
				})
			if err != nil {
				return err
			}

			failed := 0
			for _, out := range outcomes {
				if out.valid {
					continue
				}
				failed++
				reportProblem(cmd.ErrOrStderr(), out.name, out.text)
			}
			if failed > 0 {
				return errInvalidInput
			}
			return nil
		},
	}
}
