// Package schema describes the shape of configuration records: ordered fields
// with their serialized keys, type labels, documentation and pre-rendered
// default values. Records live in a Registry that indexes them by name; a field
// whose value is itself a documented record points at it by name, so nesting is
// a read-only lookup rather than ownership. The Registry rejects duplicate keys
// and nesting cycles when a record is registered, which lets renderers walk the
// nesting graph without guarding against either.
package schema
