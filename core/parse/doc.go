// Package parse decodes loosely formatted JSON text into Go values.
//
// Text written by hand or returned by an AI assistant is often close to JSON
// without being JSON: it sits inside prose or markdown fences, uses single
// quotes and unquoted keys, is truncated, or wraps every value in a
// {"type": ..., "value": ...} envelope. ParseStringAs works through those
// cases in a fixed order (direct decode, candidate extraction, the autofix
// engine, structural repair, envelope unwrapping) and returns the first value
// that decodes.
//
// Primitive targets (string, bool, integers, floats) are converted directly.
package parse
