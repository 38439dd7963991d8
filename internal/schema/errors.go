package schema

import "fmt"

// FormatError reports model output that is not structurally parseable even
// after cleaning. It carries the byte offset and a bounded window of the
// cleaned text around it, never the full payload.
type FormatError struct {
	Stage  string
	Offset int64
	Window string
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s output parse failed at offset %d: %s", e.Stage, e.Offset, e.Msg)
}

// ValidationError reports output that parsed but is missing a required field
// or violates the stage schema.
type ValidationError struct {
	Stage  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s output invalid: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("%s output invalid: field %s: %s", e.Stage, e.Field, e.Reason)
}
