// Package slogobs provides an observability.Provider implementation backed by
// Go's standard library log/slog package.
// It supports span logging, in-memory counters and levelled logging through a
// slog.Handler that emits compact, pretty or JSON lines.
// The main entry point is [New]; output format and log level can be tuned with
// [WithFormat], [WithLevel], [WithOutput], [WithColors] and [WithLogger], or
// through SCHEMAFIX_LOG_FORMAT and SCHEMAFIX_LOG_LEVEL.
package slogobs
