// Package format defines the rules for rendering configuration examples in a
// concrete serialization syntax. A Strategy knows how to write comments,
// table headers and key/value assignments, and how to pick an example value
// for a field. The render package drives strategies without knowing which
// syntax it is producing, so adding a format never touches traversal logic.
package format
