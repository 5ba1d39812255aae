package autofix

import "github.com/leofalp/schemafix/providers/observability"

// DefaultIndent is the indentation used when pretty-printing repaired JSON.
const DefaultIndent = "  "

// DefaultKnownKeys are the property names the brace touch-up looks for.
var DefaultKnownKeys = []string{"name", "id", "type", "label", "fields", "groups"}

// Option configures an Engine.
type Option func(*Engine)

// WithIndent sets the indentation unit used for pretty-printing and for the
// brace touch-up. An empty indent keeps the default.
func WithIndent(indent string) Option {
	return func(e *Engine) {
		if indent != "" {
			e.indent = indent
		}
	}
}

// WithKnownKeys replaces the property names recognised by the brace touch-up.
// Calling it with no keys disables that touch-up.
func WithKnownKeys(keys ...string) Option {
	return func(e *Engine) {
		e.knownKeys = append([]string(nil), keys...)
	}
}

// WithDeepRepair enables a structural fallback (github.com/kaptinlin/jsonrepair)
// for text the passes could not make valid, e.g. truncated documents.
func WithDeepRepair(enabled bool) Option {
	return func(e *Engine) {
		e.deepRepair = enabled
	}
}

// WithObserver reports spans, pass logs and counters to p.
func WithObserver(p observability.Provider) Option {
	return func(e *Engine) {
		e.observer = p
	}
}
