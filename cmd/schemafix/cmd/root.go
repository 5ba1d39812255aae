package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leofalp/schemafix/internal/config"
	"github.com/leofalp/schemafix/providers/observability"
	"github.com/leofalp/schemafix/providers/observability/slogobs"
)

// flagKeys maps command-line flags onto configuration keys. Flags override
// the environment and the config file when set.
var flagKeys = map[string]string{
	"log-level":  config.KeyLogLevel,
	"log-format": config.KeyLogFormat,
	"indent":     config.KeyIndent,
	"deep":       config.KeyDeepRepair,
	"jobs":       config.KeyJobs,
	"separators": config.KeyGroupSeparators,
}

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg config.Config
	obs *slogobs.Observer
}

// withObserver returns ctx carrying the observer.
func (a *app) withObserver(ctx context.Context) context.Context {
	return observability.ContextWithObserver(ctx, a.obs)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:           "schemafix",
		Short:         "Repair near-JSON and manage PDF form schema definitions",
		Long:          "schemafix repairs the JSON-like text people and assistants write by hand, reports what it changed, and validates, groups and labels PDF form schema definitions.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := config.NewViper()
			if err := config.ReadFile(v, configPath); err != nil {
				return err
			}
			for name, key := range flagKeys {
				if f := cmd.Flags().Lookup(name); f != nil {
					if err := v.BindPFlag(key, f); err != nil {
						return err
					}
				}
			}

			cfg, err := config.NewConfig(v)
			if err != nil {
				return usageError("%v", err)
			}
			a.cfg = cfg
			a.obs = cfg.Observer(cmd.ErrOrStderr())
			return nil
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (yaml, toml or json)")
	flags.String("log-level", "", "log level: trace, debug, info, warn or error")
	flags.String("log-format", "", "log format: compact, pretty or json")

	root.AddCommand(
		newFixCmd(a),
		newCheckCmd(a),
		newSchemaCmd(a),
	)
	return root
}

// addIndentFlag registers --indent on commands that print JSON.
func addIndentFlag(flags *pflag.FlagSet) {
	flags.Int("indent", 2, "spaces per indentation level, 0 for tabs")
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError("%s takes %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
