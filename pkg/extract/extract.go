package extract

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/schema"
)

const (
	docTag     = "doc"
	defaultTag = "default"
	metaTag    = "confdocs"
)

var (
	durationType      = reflect.TypeOf(time.Duration(0))
	timeType          = reflect.TypeOf(time.Time{})
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Register reflects over value's struct type and registers it, together with
// every struct type reachable through its fields, in reg. value may be a
// struct or a pointer to one; only its type is inspected. The records are
// registered together, so a failed extraction leaves reg unchanged.
func Register(reg *schema.Registry, value any, options ...Option) (*schema.Record, error) {
	if reg == nil {
		return nil, errors.New("extract: registry is required")
	}

	cfg := config{
		tag:     "toml",
		encoder: format.EncodeTOMLValue,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("extract: expected a struct, got %T", value)
	}

	e := &extractor{
		reg:        reg,
		cfg:        cfg,
		names:      make(map[reflect.Type]string),
		inProgress: make(map[reflect.Type]string),
	}
	name, err := e.record(t, cfg.name, true, reflect.Value{})
	if err != nil {
		return nil, err
	}
	if _, err := reg.RegisterAll(e.defs...); err != nil {
		return nil, err
	}
	return reg.Get(name)
}

// MustRegister panics on extraction failure. Useful for init-time wiring.
func MustRegister(reg *schema.Registry, value any, options ...Option) *schema.Record {
	rec, err := Register(reg, value, options...)
	if err != nil {
		panic(err)
	}
	return rec
}

type extractor struct {
	reg        *schema.Registry
	cfg        config
	names      map[reflect.Type]string
	inProgress map[reflect.Type]string
	defs       []schema.Definition
}

// record queues the definition of t (children first) and returns its record
// name. A type that is still being extracted is referenced by name so the
// registry can report the cycle once the loop closes. Non-zero fields of seed
// override the defaults t sets for itself.
func (e *extractor) record(t reflect.Type, name string, root bool, seed reflect.Value) (string, error) {
	if existing, ok := e.names[t]; ok {
		return existing, nil
	}
	if pending, ok := e.inProgress[t]; ok {
		return pending, nil
	}
	if name == "" {
		name = t.Name()
	}
	if name == "" {
		return "", errors.New("extract: anonymous struct needs an explicit name")
	}
	if !root {
		if _, ok := e.reg.Lookup(name); ok {
			e.names[t] = name
			return name, nil
		}
	}

	e.inProgress[t] = name
	defer delete(e.inProgress, t)

	probe := reflect.New(t).Interface()

	policy := e.cfg.policy
	if r, ok := probe.(Renamer); ok {
		parsed, err := schema.ParseRenamePolicy(r.ConfigRename())
		if err != nil {
			return "", fmt.Errorf("extract: record %s: %w", name, err)
		}
		policy = parsed
	}

	defaults := reflect.New(t)
	if d, ok := defaults.Interface().(Defaulter); ok {
		d.ConfigDefaults()
	}
	overlay(defaults.Elem(), seed)

	var fieldDocs map[string]string
	if fd, ok := probe.(FieldDocumenter); ok {
		fieldDocs = fd.ConfigFieldDocs()
	}

	def := schema.Definition{Name: name}
	if d, ok := probe.(Documenter); ok {
		def.Doc = d.ConfigDoc()
	}
	if _, ok := probe.(Exportable); ok || (root && e.cfg.export) {
		def.Export = true
	}

	fields, err := e.fields(name, t, defaults.Elem(), policy, fieldDocs)
	if err != nil {
		return "", err
	}
	def.Fields = fields

	e.defs = append(e.defs, def)
	e.names[t] = name
	return name, nil
}

func (e *extractor) fields(record string, t reflect.Type, defaults reflect.Value, policy schema.RenamePolicy, docs map[string]string) ([]schema.Field, error) {
	var out []schema.Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		meta := parseMeta(sf.Tag.Get(metaTag))
		if meta.skip {
			continue
		}
		key, _, _ := strings.Cut(sf.Tag.Get(e.cfg.tag), ",")
		if key == "-" {
			continue
		}

		fv := fieldValue(defaults, i)

		if sf.Anonymous && key == "" && isRecordType(sf.Type) {
			embedded := derefType(sf.Type)
			inner, err := e.fields(record, embedded, derefValue(fv, embedded), policy, docs)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		if key == "" {
			key = policy.Apply(sf.Name)
		}
		field := schema.Field{Name: key, Doc: sf.Tag.Get(docTag)}
		if field.Doc == "" {
			field.Doc = docs[sf.Name]
		}

		if meta.typ == "" && isRecordType(sf.Type) {
			nestedType := derefType(sf.Type)
			nestedName := nestedType.Name()
			if nestedName == "" {
				nestedName = sf.Name
			}
			name, err := e.record(nestedType, nestedName, false, derefValue(fv, nestedType))
			if err != nil {
				return nil, err
			}
			field.Nested = name
			field.Type = name
			out = append(out, field)
			continue
		}

		field.Type = meta.typ
		if field.Type == "" {
			field.Type = typeSummary(sf.Type)
		}
		repr, err := e.defaultRepr(sf, fv)
		if err != nil {
			return nil, fmt.Errorf("extract: field %s.%s: %w", record, sf.Name, err)
		}
		field.Default = repr
		out = append(out, field)
	}
	return out, nil
}

func (e *extractor) defaultRepr(sf reflect.StructField, fv reflect.Value) (string, error) {
	if raw, ok := sf.Tag.Lookup(defaultTag); ok {
		value, err := parseDefault(raw, sf.Type)
		if err != nil {
			return "", fmt.Errorf("default %q: %w", raw, err)
		}
		if value == nil {
			return raw, nil
		}
		return e.cfg.encoder(value)
	}
	if fv.IsValid() && fv.CanInterface() && !fv.IsZero() {
		return e.cfg.encoder(fv.Interface())
	}
	return "", nil
}

// parseDefault converts a `default` tag into a typed value. Composite types
// return nil, meaning the tag is used verbatim.
func parseDefault(raw string, t reflect.Type) (any, error) {
	t = derefType(t)
	if t == durationType {
		return time.ParseDuration(raw)
	}
	switch t.Kind() {
	case reflect.String:
		return raw, nil
	case reflect.Bool:
		return strconv.ParseBool(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.ParseInt(raw, 0, t.Bits())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.ParseUint(raw, 0, t.Bits())
	case reflect.Float32, reflect.Float64:
		return strconv.ParseFloat(raw, t.Bits())
	default:
		return nil, nil
	}
}

func typeSummary(t reflect.Type) string {
	switch t {
	case durationType:
		return "time.Duration"
	case timeType:
		return "time.Time"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return typeSummary(t.Elem())
	case reflect.Slice, reflect.Array:
		return "[]" + typeSummary(t.Elem())
	case reflect.Map:
		return "map[" + typeSummary(t.Key()) + "]" + typeSummary(t.Elem())
	case reflect.Interface:
		return "any"
	case reflect.Struct:
		return t.String()
	default:
		return t.Kind().String()
	}
}

// isRecordType reports whether t (after pointer indirection) should become a
// nested record. Structs that marshal themselves as text are scalars.
func isRecordType(t reflect.Type) bool {
	t = derefType(t)
	if t.Kind() != reflect.Struct || t == timeType {
		return false
	}
	return !t.Implements(textMarshalerType) && !reflect.PointerTo(t).Implements(textMarshalerType)
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func fieldValue(parent reflect.Value, index int) reflect.Value {
	if !parent.IsValid() {
		return reflect.Value{}
	}
	return parent.Field(index)
}

// derefValue follows pointers in v, substituting a zero value of t for nil.
func derefValue(v reflect.Value, t reflect.Type) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.New(t).Elem()
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.New(t).Elem()
	}
	return v
}

// overlay copies the non-zero exported fields of src into dst.
func overlay(dst, src reflect.Value) {
	if !src.IsValid() || !src.CanInterface() || src.Type() != dst.Type() {
		return
	}
	for i := 0; i < src.NumField(); i++ {
		field := dst.Field(i)
		if !field.CanSet() || src.Field(i).IsZero() {
			continue
		}
		field.Set(src.Field(i))
	}
}

type fieldMeta struct {
	skip bool
	typ  string
}

func parseMeta(tag string) fieldMeta {
	var meta fieldMeta
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "-":
			meta.skip = true
		case strings.HasPrefix(part, "type="):
			meta.typ = strings.TrimSpace(strings.TrimPrefix(part, "type="))
		}
	}
	return meta
}
