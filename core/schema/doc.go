// Package schema models the definitions produced by the PDF schema builder:
// which form fields a PDF carries, how they are grouped, how they are
// labelled for people, and where each value lands in the data model.
//
// Definitions are usually edited by hand or suggested by an AI assistant, so
// Load runs the autofix engine before decoding. The typical flow is
//
//	def, res, err := schema.Load(ctx, text)  // repair, decode, validate
//	def.AutoGroup("._-")                      // group fields by name prefix
//	def.FillLabels()                          // fallback labels
//	prompt, _ := schema.LabelRequest(def)     // ask the assistant for labels
//	n, err := def.ApplyLabels(ctx, reply)     // merge its answer
//	out, _ := def.Marshal("  ")
package schema
