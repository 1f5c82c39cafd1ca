package schema

// Builder assembles a Definition field by field, applying a rename policy to
// declared names. It is the hand-written counterpart of pkg/extract.
type Builder struct {
	def    Definition
	policy RenamePolicy
}

// NewBuilder starts a definition for the named record.
func NewBuilder(name string) *Builder {
	return &Builder{def: Definition{Name: name}}
}

// Doc sets the record description.
func (b *Builder) Doc(doc string) *Builder {
	b.def.Doc = doc
	return b
}

// Rename sets the policy applied to fields added afterwards.
func (b *Builder) Rename(policy RenamePolicy) *Builder {
	b.policy = policy
	return b
}

// Export opts the record into file export.
func (b *Builder) Export() *Builder {
	b.def.Export = true
	return b
}

// FieldOption customises a field added through Builder.Field or Builder.Nested.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	field  Field
	rename string
}

// WithDoc attaches documentation text.
func WithDoc(doc string) FieldOption {
	return func(cfg *fieldConfig) {
		cfg.field.Doc = doc
	}
}

// WithDefault attaches a pre-rendered default value, e.g. `"info"` or `8080`.
func WithDefault(repr string) FieldOption {
	return func(cfg *fieldConfig) {
		cfg.field.Default = repr
	}
}

// WithRename sets an explicit serialized key that bypasses the rename policy.
func WithRename(name string) FieldOption {
	return func(cfg *fieldConfig) {
		cfg.rename = name
	}
}

// Field appends a scalar field.
func (b *Builder) Field(name, typ string, options ...FieldOption) *Builder {
	return b.add(Field{Name: name, Type: typ}, options)
}

// Nested appends a field whose value is the named record.
func (b *Builder) Nested(name, record string, options ...FieldOption) *Builder {
	return b.add(Field{Name: name, Type: record, Nested: record}, options)
}

func (b *Builder) add(field Field, options []FieldOption) *Builder {
	cfg := fieldConfig{field: field}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.rename != "" {
		cfg.field.Name = cfg.rename
	} else {
		cfg.field.Name = b.policy.Apply(cfg.field.Name)
	}
	b.def.Fields = append(b.def.Fields, cfg.field)
	return b
}

// Definition returns a copy of the assembled definition.
func (b *Builder) Definition() Definition {
	def := b.def
	def.Fields = append([]Field(nil), b.def.Fields...)
	return def
}

// Register validates and stores the definition in reg.
func (b *Builder) Register(reg *Registry) (*Record, error) {
	return reg.Register(b.Definition())
}
