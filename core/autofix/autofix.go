package autofix

import (
	"context"
	"time"

	"github.com/leofalp/schemafix/providers/observability"
)

// Result is the outcome of one repair run.
type Result struct {
	// Fixed is the repaired text. It is pretty-printed JSON when Valid is
	// true and the best-effort patched text otherwise.
	Fixed string `json:"fixed"`

	// Changes lists one entry per pass that modified the text, in pass order.
	Changes []string `json:"changes"`

	// Valid reports whether Fixed parsed as JSON.
	Valid bool `json:"valid"`
}

// Changed reports whether any pass altered the input.
func (r Result) Changed() bool {
	return len(r.Changes) > 0
}

// Engine runs the repair pipeline. An Engine is immutable once built and safe
// for concurrent use.
type Engine struct {
	indent     string
	knownKeys  []string
	deepRepair bool
	observer   observability.Provider
}

// New builds an Engine from the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		indent:    DefaultIndent,
		knownKeys: append([]string(nil), DefaultKnownKeys...),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Fix repairs text with the default engine.
func Fix(text string) Result {
	return defaultEngine.Fix(context.Background(), text)
}

// Fix runs every pass over text and then validates and formats the result.
// The observer comes from WithObserver or, failing that, from ctx.
func (e *Engine) Fix(ctx context.Context, text string) Result {
	start := time.Now()

	obs := e.observer
	if obs == nil {
		obs = observability.ObserverFromContext(ctx)
	}
	var span observability.Span
	if obs != nil {
		ctx, span = obs.StartSpan(ctx, observability.SpanAutofix,
			observability.Int(observability.AttrInputBytes, len(text)),
			observability.Bool(observability.AttrDeepRepair, e.deepRepair),
		)
		defer span.End()
	}

	res := Result{Fixed: text}
	for _, p := range pipeline {
		next, notes := p.apply(e, res.Fixed)
		if len(notes) == 0 {
			continue
		}
		res.Fixed = next
		res.Changes = append(res.Changes, notes...)

		if obs != nil {
			obs.Trace(ctx, "Repair pass applied",
				observability.String(observability.AttrPass, p.name),
				observability.Strings(observability.AttrChanges, notes),
			)
			obs.Counter(observability.MetricPassesApplied).Add(ctx, 1,
				observability.String(observability.AttrPass, p.name))
		}
	}

	var notes []string
	res.Fixed, res.Valid, notes = e.finish(res.Fixed)
	res.Changes = append(res.Changes, notes...)

	if obs != nil {
		elapsed := time.Since(start)
		obs.Counter(observability.MetricFixRuns).Add(ctx, 1)
		obs.Histogram(observability.MetricFixDuration).Record(ctx, float64(elapsed.Microseconds())/1000)
		span.SetAttributes(
			observability.Bool(observability.AttrValid, res.Valid),
			observability.Int(observability.AttrOutputBytes, len(res.Fixed)),
			observability.Strings(observability.AttrChanges, res.Changes),
		)
		if res.Valid {
			span.SetStatus(observability.StatusOK, "")
		} else {
			obs.Counter(observability.MetricFixUnrepaired).Add(ctx, 1)
			span.SetStatus(observability.StatusError, "text is still not valid JSON")
			obs.Debug(ctx, "Text left unrepaired",
				observability.String(observability.AttrExcerpt, observability.TruncateString(res.Fixed, 0)))
		}
		obs.Debug(ctx, "Repair finished",
			observability.Bool(observability.AttrValid, res.Valid),
			observability.Int(observability.AttrPassCount, len(res.Changes)),
			observability.Duration(observability.AttrDuration, elapsed),
		)
	}

	return res
}
