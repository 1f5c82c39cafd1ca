// Package export persists rendered documentation. It selects the output
// format from the CONFIG_DOCS_FORMAT environment variable, names files
// <RecordName>.<ext>.md and creates the output directory on demand.
// An optional index.md lists every exported document.
package export
