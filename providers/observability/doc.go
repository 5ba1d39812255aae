// Package observability defines the interfaces and attribute conventions used
// for tracing, metrics and structured logging across schemafix.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into a single
// injectable dependency. The repair engine, the schema loader and the CLI all
// accept an optional Provider; a nil Provider means "do not observe". Spans
// travel through a [context.Context] with [ContextWithSpan] and
// [SpanFromContext].
//
// semconv.go holds the attribute keys, span names and metric names recorded by
// the packages in this module.
package observability
