package builder

import "fmt"

// UnknownFieldError reports a field access that does not exist on the
// navigated type. It aborts the build before anything is serialized.
type UnknownFieldError struct {
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q on type %s", e.Field, e.Type)
}

// InvalidSelectionError reports a selection entry that is not a recognized
// marker, or a leaf-with-arguments field referenced without arguments.
type InvalidSelectionError struct {
	Value any
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection entry %v (%T)", e.Value, e.Value)
}

// EmptySelectionError reports a composite field whose selection resolved to
// zero children, which would serialize an invalid empty block.
type EmptySelectionError struct {
	Type  string
	Field string
}

func (e *EmptySelectionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("empty selection on type %s", e.Type)
	}
	return fmt.Sprintf("empty selection for field %q on type %s", e.Field, e.Type)
}
