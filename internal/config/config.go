package config

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/leofalp/schemafix/core/autofix"
	"github.com/leofalp/schemafix/core/schema"
	"github.com/leofalp/schemafix/providers/observability"
	"github.com/leofalp/schemafix/providers/observability/slogobs"
)

// EnvPrefix is prepended to every key when reading the environment,
// e.g. SCHEMAFIX_LOG_LEVEL.
const EnvPrefix = "SCHEMAFIX"

const (
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyIndent          = "indent"
	KeyDeepRepair      = "deep_repair"
	KeyJobs            = "jobs"
	KeyKnownKeys       = "known_keys"
	KeyGroupSeparators = "group_separators"
)

const maxIndent = 8

type Config struct {
	LogLevel  string
	LogFormat string

	// Indent is the number of spaces per level in repaired output.
	// Zero means tabs.
	Indent     int
	DeepRepair bool
	Jobs       int

	KnownKeys       []string
	GroupSeparators string
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, string(slogobs.FormatCompact))
	v.SetDefault(KeyIndent, len(autofix.DefaultIndent))
	v.SetDefault(KeyDeepRepair, false)
	v.SetDefault(KeyJobs, runtime.NumCPU())
	v.SetDefault(KeyKnownKeys, autofix.DefaultKnownKeys)
	v.SetDefault(KeyGroupSeparators, schema.DefaultSeparators)

	return v
}

// ReadFile merges the config file at path (YAML, TOML or JSON, by extension)
// into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func NewConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),

		Indent:     v.GetInt(KeyIndent),
		DeepRepair: v.GetBool(KeyDeepRepair),
		Jobs:       v.GetInt(KeyJobs),

		KnownKeys:       splitList(v.GetStringSlice(KeyKnownKeys)),
		GroupSeparators: v.GetString(KeyGroupSeparators),
	}

	var errs []error
	if _, err := slogobs.LookupLogLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s: %w", KeyLogLevel, err))
	}
	switch slogobs.Format(cfg.LogFormat) {
	case slogobs.FormatCompact, slogobs.FormatPretty, slogobs.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("invalid %s %q", KeyLogFormat, cfg.LogFormat))
	}
	if cfg.Indent < 0 || cfg.Indent > maxIndent {
		errs = append(errs, fmt.Errorf("invalid %s %d: want 0..%d", KeyIndent, cfg.Indent, maxIndent))
	}
	if cfg.Jobs <= 0 {
		errs = append(errs, fmt.Errorf("invalid %s %d", KeyJobs, cfg.Jobs))
	}
	if cfg.GroupSeparators == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", KeyGroupSeparators))
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

// IndentString is the indentation unit for the autofix engine.
func (c Config) IndentString() string {
	if c.Indent == 0 {
		return "\t"
	}
	return strings.Repeat(" ", c.Indent)
}

// AutofixOptions translates the repair settings into engine options.
func (c Config) AutofixOptions(obs observability.Provider) []autofix.Option {
	opts := []autofix.Option{
		autofix.WithIndent(c.IndentString()),
		autofix.WithDeepRepair(c.DeepRepair),
		autofix.WithKnownKeys(c.KnownKeys...),
	}
	if obs != nil {
		opts = append(opts, autofix.WithObserver(obs))
	}
	return opts
}

// Observer builds the slog observer that writes to out.
func (c Config) Observer(out io.Writer) *slogobs.Observer {
	return slogobs.New(
		slogobs.WithOutput(out),
		slogobs.WithLevel(slogobs.ParseLogLevel(c.LogLevel)),
		slogobs.WithFormat(slogobs.ParseFormat(c.LogFormat)),
	)
}

// splitList accepts both list values from a config file and a single
// comma-separated environment value.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
