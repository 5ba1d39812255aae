// Package position maps byte offsets in a JSON document to the 1-based line
// and column an editor shows, and renders the offending line with a caret.
//
// It is the editor-facing half of the repair workflow: Validate reports where
// a document stops parsing, and the caller decides whether to run the
// autofix engine on it.
//
//	if err := position.Validate(text); err != nil {
//	    var se *position.SyntaxError
//	    if errors.As(err, &se) {
//	        fmt.Printf("%d:%d: %s\n%s", se.Line, se.Column, se.Msg, position.Snippet(text, se.Position()))
//	    }
//	}
package position
