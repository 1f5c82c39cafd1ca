package format

import "errors"

// ErrNoPlaceholder is returned by Strategy.ValueRepr when a type label has no
// placeholder in the format and no default is available.
var ErrNoPlaceholder = errors.New("format: no placeholder for type")

// ErrUnknownFormat is returned when a strategy lookup fails.
var ErrUnknownFormat = errors.New("format: unknown format")

// Strategy renders configuration examples for one serialization syntax.
type Strategy interface {
	// Name identifies the strategy in registries and environment selection.
	Name() string
	// Extension is used for exported file names and code fence info strings.
	Extension() string
	// CommentLine renders one line of prose as a format-native comment.
	CommentLine(text string) string
	// TableHeader renders the header for a record reached via the given field
	// path. It returns "" for the root (empty path).
	TableHeader(path []string) string
	// KeyValue renders a single assignment.
	KeyValue(key, value string) string
	// ValueRepr picks the right-hand side of an assignment: defaultRepr when
	// non-empty, otherwise a placeholder for typeSummary. It returns an error
	// matching ErrNoPlaceholder when neither is available.
	ValueRepr(typeSummary, defaultRepr string) (string, error)
}
