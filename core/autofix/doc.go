// Package autofix repairs near-JSON text into valid JSON and reports what it
// changed.
//
// The engine runs a fixed sequence of small textual passes over the input:
// byte-order-mark removal, comment stripping, quoting of bare property names,
// trailing comma removal, single-to-double quote conversion, removal of empty
// objects from arrays, duplicate and dangling comma cleanup, a line-oriented
// missing-comma heuristic and a few formatting touch-ups. Every pass that
// alters the text appends one human-readable entry to the change log, for
// example "Removed 2 single-line comments". Finally the text is parsed and,
// when it is valid, pretty-printed with key order preserved.
//
// Repair is best effort. Text that is still not JSON after all passes is
// returned as patched so far, with [Result.Valid] set to false; [Fix] never
// returns an error and never panics.
//
// Passes other than comment stripping and quote conversion only look at the
// text outside string literals, so "http://example.com" or "a, }" inside a
// value are left alone. The missing-comma pass reasons about lines, not
// tokens, and can misfire on values that span several lines.
//
//	res := autofix.Fix("{ name: 'Ada', tags: ['x',], }")
//	// res.Fixed:
//	// {
//	//   "name": "Ada",
//	//   "tags": [
//	//     "x"
//	//   ]
//	// }
//	// res.Changes: [
//	//   "Added quotes to 2 unquoted property names",
//	//   "Removed 2 trailing commas",
//	//   "Replaced single quotes with double quotes in 2 strings",
//	//   "Reformatted JSON",
//	// ]
package autofix
