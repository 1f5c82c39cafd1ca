package extract

// Defaulter is implemented by configuration types that fill in their own
// defaults. ConfigDefaults is called on a pointer to a zero value; every field
// left non-zero afterwards is documented with that default. Values a parent
// sets on a nested struct field override the nested type's own
// ConfigDefaults; `default` tags still take precedence over both.
type Defaulter interface {
	ConfigDefaults()
}

// Documenter supplies the record level description.
type Documenter interface {
	ConfigDoc() string
}

// FieldDocumenter supplies field documentation keyed by Go field name, for
// docs too long to keep in a struct tag. `doc` tags take precedence.
type FieldDocumenter interface {
	ConfigFieldDocs() map[string]string
}

// Renamer declares the rename policy for a record's untagged fields, using
// the names accepted by schema.ParseRenamePolicy.
type Renamer interface {
	ConfigRename() string
}

// Exportable marks a record type as opted into file export.
type Exportable interface {
	ConfigDocsExport()
}
