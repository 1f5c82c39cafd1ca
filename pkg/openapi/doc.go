// Package openapi turns the component schemas of an OpenAPI 3 document into
// schema records so configuration described by an API contract can be
// documented the same way as hand-written or reflected records.
//
// Documents are loaded through kin-openapi. Object properties and $ref
// targets become nested records, everything else becomes a scalar field
// whose type summary follows the Go-like spelling used elsewhere in
// confdocs ("integer", "[]string", "map[string]bool", ...). Descriptions
// are stripped of markup before they reach the registry.
package openapi
