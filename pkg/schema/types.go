package schema

import "strings"

// Field models one key of a configuration record.
type Field struct {
	// Name is the serialized key after any rename policy has been applied.
	Name string `json:"name" yaml:"name"`
	// Type is a human readable type label ("string", "u16", "bool", or the
	// nested record's name).
	Type string `json:"type" yaml:"type"`
	// Doc is optional free text and may span several lines.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`
	// Default holds the pre-rendered default value. Empty means the field has
	// no computed default.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	// Nested names the record, registered in the same Registry, that describes
	// this field's value. Empty for scalar fields.
	Nested string `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// IsNested reports whether the field's value is a documented record.
func (f Field) IsNested() bool {
	return f.Nested != ""
}

// HasDefault reports whether a default representation is available. Nested
// fields never carry one; their value is the nested record's rendering.
func (f Field) HasDefault() bool {
	return !f.IsNested() && f.Default != ""
}

// DocLines splits the documentation into lines, dropping carriage returns and
// leading or trailing blank lines. Interior blank lines are kept.
func (f Field) DocLines() []string {
	return splitDoc(f.Doc)
}

// DefaultLines splits the default representation into lines so each can be
// written as its own comment. It returns nil when there is no default.
func (f Field) DefaultLines() []string {
	if !f.HasDefault() {
		return nil
	}
	return strings.Split(strings.ReplaceAll(f.Default, "\r\n", "\n"), "\n")
}

func splitDoc(doc string) []string {
	if strings.TrimSpace(doc) == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRight(line, " \t\r")
	}
	return out
}

// Definition is the input to Registry.Register. Field order is declaration
// order and is preserved verbatim.
type Definition struct {
	Name   string  `json:"name" yaml:"name"`
	Doc    string  `json:"doc,omitempty" yaml:"doc,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
	// Export opts the record into file export (see pkg/export).
	Export bool `json:"export,omitempty" yaml:"export,omitempty"`
}

// Record is an immutable, registered configuration record.
type Record struct {
	name     string
	doc      string
	fields   []Field
	export   bool
	registry *Registry
}

// Name returns the record identifier used for headings and file names.
func (r *Record) Name() string {
	return r.name
}

// Doc returns the record level description, which may be empty.
func (r *Record) Doc() string {
	return r.doc
}

// DocLines returns Doc split the same way Field.DocLines splits field docs.
func (r *Record) DocLines() []string {
	return splitDoc(r.doc)
}

// Fields returns a copy of the fields in declaration order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Exported reports whether the record opted into file export.
func (r *Record) Exported() bool {
	return r.export
}

// Resolve returns the record a nested field points at.
func (r *Record) Resolve(field Field) (*Record, error) {
	if !field.IsNested() {
		return nil, &ValidationError{Err: ErrNotNested, Record: r.name, Field: field.Name}
	}
	if r.registry == nil {
		return nil, &ValidationError{Err: ErrUnknownRecord, Record: field.Nested, Field: field.Name}
	}
	nested, err := r.registry.Get(field.Nested)
	if err != nil {
		return nil, &ValidationError{Err: ErrUnknownRecord, Record: field.Nested, Field: field.Name}
	}
	return nested, nil
}
