package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Handler is a slog.Handler that writes compact, pretty or JSON lines.
type Handler struct {
	format Format
	level  slog.Leveler
	output io.Writer
	colors bool
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Format specifies the output format (compact, pretty, json).
	Format Format
	// Level is the minimum log level to output.
	Level slog.Leveler
	// Output is where logs are written (defaults to os.Stderr).
	Output io.Writer
	// Colors enables level colouring (only for compact/pretty formats).
	Colors bool
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	format := opts.Format
	if format == "" {
		format = FormatCompact
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	return &Handler{
		format: format,
		level:  level,
		output: output,
		colors: opts.Colors && format != FormatJSON,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes a log record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf []byte
	var err error
	switch h.format {
	case FormatPretty:
		buf = h.appendPretty(nil, r)
	case FormatJSON:
		buf, err = h.appendJSON(nil, r)
	default:
		buf = h.appendCompact(nil, r)
	}
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.output.Write(buf)
	return err
}

// WithAttrs returns a new Handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}
	return &clone
}

// WithGroup returns a new Handler with a group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *Handler) qualify(key string) string {
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	return key
}

type kv struct {
	key   string
	value any
}

// collectAttrs returns handler attributes followed by record attributes, in order.
func (h *Handler) collectAttrs(r slog.Record) []kv {
	out := make([]kv, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		out = append(out, kv{key: a.Key, value: a.Value.Resolve().Any()})
	}
	r.Attrs(func(a slog.Attr) bool {
		out = append(out, kv{key: h.qualify(a.Key), value: a.Value.Resolve().Any()})
		return true
	})
	return out
}

// 2026-10-18 10:40:35  INFO Repaired document → {"source":"a.json"}
func (h *Handler) appendCompact(buf []byte, r slog.Record) []byte {
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')
	buf = append(buf, h.paintLevel(r.Level, fmt.Sprintf("%5s", LogLevelString(r.Level)))...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	if attrs := h.collectAttrs(r); len(attrs) > 0 {
		buf = append(buf, " → "...)
		encoded, err := json.Marshal(orderedMap(attrs))
		if err != nil {
			buf = append(buf, "[json-error]"...)
		} else {
			buf = append(buf, encoded...)
		}
	}
	return append(buf, '\n')
}

// 2026-10-18 10:40:35 INFO   Repaired document
//
//	├─ source: a.json
//	└─ autofix.valid: true
func (h *Handler) appendPretty(buf []byte, r slog.Record) []byte {
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')
	level := LogLevelString(r.Level)
	buf = append(buf, h.paintLevel(r.Level, level)...)
	for i := len(level); i < 7; i++ {
		buf = append(buf, ' ')
	}
	buf = append(buf, r.Message...)
	buf = append(buf, '\n')

	attrs := h.collectAttrs(r)
	for i, a := range attrs {
		if i == len(attrs)-1 {
			buf = append(buf, "    └─ "...)
		} else {
			buf = append(buf, "    ├─ "...)
		}
		buf = append(buf, a.key...)
		buf = append(buf, ": "...)
		buf = append(buf, fmt.Sprintf("%v", a.value)...)
		buf = append(buf, '\n')
	}
	return buf
}

func (h *Handler) appendJSON(buf []byte, r slog.Record) ([]byte, error) {
	attrs := []kv{
		{key: "time", value: r.Time.Format("2006-01-02T15:04:05")},
		{key: "level", value: LogLevelString(r.Level)},
		{key: "msg", value: r.Message},
	}
	attrs = append(attrs, h.collectAttrs(r)...)

	encoded, err := json.Marshal(orderedMap(attrs))
	if err != nil {
		return nil, err
	}
	buf = append(buf, encoded...)
	return append(buf, '\n'), nil
}

// orderedMap marshals as a JSON object preserving insertion order.
type orderedMap []kv

func (m orderedMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, a := range m {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(a.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(jsonSafe(a.value))
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, value...)
	}
	return append(buf, '}'), nil
}

func jsonSafe(v any) any {
	switch t := v.(type) {
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return v
	}
}

var levelColors = map[string]color.Attribute{
	"TRACE": color.FgHiBlack,
	"DEBUG": color.FgBlue,
	"INFO":  color.FgGreen,
	"WARN":  color.FgYellow,
	"ERROR": color.FgRed,
}

func (h *Handler) paintLevel(level slog.Level, text string) string {
	if !h.colors {
		return text
	}
	c := color.New(levelColors[LogLevelString(level)])
	c.EnableColor()
	return c.Sprint(text)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
