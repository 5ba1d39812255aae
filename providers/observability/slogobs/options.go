package slogobs

import (
	"io"
	"log/slog"
	"os"
)

// Option configures an Observer built by New.
type Option func(*settings)

// settings collects the options given to New. Unset fields fall back to
// the environment, stderr and terminal detection in resolve.
type settings struct {
	format Format
	level  *slog.Level
	output io.Writer
	colors *bool
	logger *slog.Logger
}

// WithFormat sets the log output format.
func WithFormat(format Format) Option {
	return func(s *settings) {
		s.format = format
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(s *settings) {
		s.level = &level
	}
}

// WithOutput sets the writer logs go to. Repaired documents are written to
// stdout, so the default is stderr.
func WithOutput(output io.Writer) Option {
	return func(s *settings) {
		s.output = output
	}
}

// WithColors forces level colouring on or off. Without it, compact and
// pretty output is coloured when written to a terminal.
func WithColors(enabled bool) Option {
	return func(s *settings) {
		s.colors = &enabled
	}
}

// WithLogger routes everything to logger and ignores the other options.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func resolve(opts ...Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.format == "" {
		s.format = GetFormatFromEnv()
	}
	if s.level == nil {
		level := GetLogLevelFromEnv()
		s.level = &level
	}
	if s.output == nil {
		s.output = os.Stderr
	}
	return s
}

func (s settings) handlerOptions() *HandlerOptions {
	colors := s.colors != nil && *s.colors
	if s.colors == nil && s.format != FormatJSON {
		if f, ok := s.output.(*os.File); ok {
			colors = isTerminal(f)
		}
	}
	return &HandlerOptions{
		Format: s.format,
		Level:  *s.level,
		Output: s.output,
		Colors: colors,
	}
}
