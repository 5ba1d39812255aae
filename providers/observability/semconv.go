package observability

// Span names.
const (
	SpanAutofix     = "autofix.fix"
	SpanSchemaLoad  = "schema.load"
	SpanSchemaLabel = "schema.apply_labels"
)

// Attribute keys.
const (
	// AttrPass is the name of a repair pass (e.g. "comments", "trailing_commas").
	AttrPass = "autofix.pass"

	// AttrPassCount is how many occurrences a pass rewrote.
	AttrPassCount = "autofix.pass.count"

	// AttrChanges is the ordered change log of a repair run.
	AttrChanges = "autofix.changes"

	// AttrValid reports whether the repaired text parsed.
	AttrValid = "autofix.valid"

	// AttrDeepRepair reports whether the structural fallback ran.
	AttrDeepRepair = "autofix.deep_repair"

	// AttrInputBytes is the size of the text handed to the engine.
	AttrInputBytes = "autofix.input.bytes"

	// AttrOutputBytes is the size of the repaired text.
	AttrOutputBytes = "autofix.output.bytes"

	// AttrExcerpt is a truncated copy of the text a run could not repair.
	AttrExcerpt = "autofix.excerpt"

	// AttrSource names where the text came from (file path or "stdin").
	AttrSource = "source"

	// AttrSchemaName is the definition name.
	AttrSchemaName = "schema.name"

	// AttrSchemaFields is the number of field definitions.
	AttrSchemaFields = "schema.fields"

	// AttrLabelsApplied is the number of fields updated from an assistant reply.
	AttrLabelsApplied = "schema.labels.applied"

	// AttrFieldsGrouped is the number of fields AutoGroup assigned.
	AttrFieldsGrouped = "schema.fields.grouped"

	// AttrLabelsFilled is the number of labels derived from ids.
	AttrLabelsFilled = "schema.labels.filled"

	AttrDuration          = "duration"
	AttrError             = "error"
	AttrStatus            = "status"
	AttrStatusDescription = "status.description"
)

// Metric names.
const (
	MetricFixRuns       = "autofix.runs"
	MetricPassesApplied = "autofix.passes.applied"
	MetricFixUnrepaired = "autofix.unrepaired"
	MetricFixDuration   = "autofix.duration_ms"
)
