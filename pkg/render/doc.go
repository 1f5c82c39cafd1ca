// Package render turns a registered schema.Record into markdown reference
// documentation. The root record gets a top-level heading and a code block
// holding its scalar fields; every nested record gets a subsection, visited
// depth-first in declaration order, with its own code block under a table
// header for its dotted field path. Render is a pure function: identical
// inputs always yield byte-identical output and nothing is returned on error.
package render
