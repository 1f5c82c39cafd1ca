package schemafile

// Document is the on-disk layout of a schema file.
type Document struct {
	Records []RecordSpec `yaml:"records"`
}

// RecordSpec describes one record.
type RecordSpec struct {
	Name      string      `yaml:"name"`
	Doc       string      `yaml:"doc,omitempty"`
	Export    bool        `yaml:"export,omitempty"`
	RenameAll string      `yaml:"rename_all,omitempty"`
	Fields    []FieldSpec `yaml:"fields"`
}

// FieldSpec describes one field. Name is the declared name; Rename, when
// set, is used verbatim instead of applying the record's rename policy.
type FieldSpec struct {
	Name    string `yaml:"name"`
	Rename  string `yaml:"rename,omitempty"`
	Type    string `yaml:"type,omitempty"`
	Doc     string `yaml:"doc,omitempty"`
	Default string `yaml:"default,omitempty"`
	Value   any    `yaml:"value,omitempty"`
	Nested  string `yaml:"nested,omitempty"`
}
