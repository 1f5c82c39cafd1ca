package render

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType matches UnsupportedTypeError values via errors.Is.
var ErrUnsupportedType = errors.New("render: unsupported type")

// UnsupportedTypeError reports a field whose type has no placeholder in the
// active format and which carries no default to fall back on. Callers can use
// errors.As to decide whether to skip the field, abort or supply a default.
type UnsupportedTypeError struct {
	Record string
	Field  string
	Type   string
	Format string
	Err    error
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("render: unsupported type %q for field %q in record %q (format %s)",
		e.Type, e.Field, e.Record, e.Format)
}

// Is reports ErrUnsupportedType as a match.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

func (e *UnsupportedTypeError) Unwrap() error {
	return e.Err
}
