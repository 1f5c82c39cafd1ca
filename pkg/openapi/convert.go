package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/schema"
)

const (
	componentPrefix = "#/components/schemas/"

	// ExportExtension marks a component schema for bulk export.
	ExportExtension = "x-confdocs-export"
)

// ErrNoComponents is returned when a document carries no component schemas.
var ErrNoComponents = errors.New("openapi: document has no component schemas")

// ConvertOptions configures Records.
type ConvertOptions struct {
	// Schemas limits conversion to the named components and whatever they
	// reference. Empty means every object component.
	Schemas []string

	// Rename is applied to every property key.
	Rename schema.RenamePolicy
}

// ConvertOption mutates ConvertOptions.
type ConvertOption func(*ConvertOptions)

// WithSchemas restricts conversion to the named component schemas.
func WithSchemas(names ...string) ConvertOption {
	return func(opts *ConvertOptions) {
		opts.Schemas = append(opts.Schemas, names...)
	}
}

// WithRename applies policy to property keys.
func WithRename(policy schema.RenamePolicy) ConvertOption {
	return func(opts *ConvertOptions) {
		opts.Rename = policy
	}
}

// Records registers the object component schemas of spec in reg and returns
// the selected roots in name order. Component references that form a cycle
// surface as schema.ErrCyclicSchema, and a failed conversion registers
// nothing.
func Records(reg *schema.Registry, spec *openapi3.T, options ...ConvertOption) ([]*schema.Record, error) {
	if reg == nil {
		return nil, errors.New("openapi: registry is required")
	}
	if spec == nil || spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, ErrNoComponents
	}

	cfg := ConvertOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := &converter{
		cfg:        cfg,
		components: spec.Components.Schemas,
		done:       make(map[string]bool),
		inProgress: make(map[string]bool),
	}

	roots := cfg.Schemas
	if len(roots) == 0 {
		for name, ref := range spec.Components.Schemas {
			if ref != nil && isObject(ref.Value) {
				roots = append(roots, name)
			}
		}
	}
	sort.Strings(roots)

	records := make([]*schema.Record, 0, len(roots))
	for _, name := range roots {
		ref, ok := spec.Components.Schemas[name]
		if !ok || ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("openapi: unknown component schema %q", name)
		}
		if !isObject(ref.Value) {
			return nil, fmt.Errorf("openapi: component schema %q is not an object", name)
		}
		if err := c.record(name, ref.Value); err != nil {
			return nil, err
		}
	}
	if _, err := reg.RegisterAll(c.defs...); err != nil {
		return nil, err
	}
	for _, name := range roots {
		rec, err := reg.Get(name)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

type converter struct {
	cfg        ConvertOptions
	components openapi3.Schemas
	done       map[string]bool
	inProgress map[string]bool
	defs       []schema.Definition
}

func (c *converter) record(name string, src *openapi3.Schema) error {
	if c.done[name] || c.inProgress[name] {
		return nil
	}
	c.inProgress[name] = true
	defer delete(c.inProgress, name)

	b := schema.NewBuilder(name).Doc(sanitizeDescription(src.Description)).Rename(c.cfg.Rename)
	if exported, _ := src.Extensions[ExportExtension].(bool); exported {
		b.Export()
	}

	keys := make([]string, 0, len(src.Properties))
	for key := range src.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		prop := src.Properties[key]
		if prop == nil || prop.Value == nil {
			return fmt.Errorf("openapi: %s.%s: unresolved reference %q", name, key, refOf(prop))
		}

		if target, ok := c.nestedTarget(name, key, prop); ok {
			if err := c.record(target, prop.Value); err != nil {
				return err
			}
			// Referenced components carry their own description.
			var doc string
			if prop.Ref == "" {
				doc = sanitizeDescription(prop.Value.Description)
			}
			b.Nested(key, target, schema.WithDoc(doc))
			continue
		}

		doc := fieldDoc(prop.Value)
		repr, err := defaultRepr(prop.Value)
		if err != nil {
			return fmt.Errorf("openapi: %s.%s: %w", name, key, err)
		}
		b.Field(key, typeSummary(prop.Value), schema.WithDoc(doc), schema.WithDefault(repr))
	}

	c.defs = append(c.defs, b.Definition())
	c.done[name] = true
	return nil
}

// nestedTarget reports the record name for properties that become tables:
// component references to objects and inline objects with properties.
func (c *converter) nestedTarget(parent, key string, prop *openapi3.SchemaRef) (string, bool) {
	if !isObject(prop.Value) || len(prop.Value.Properties) == 0 {
		return "", false
	}
	if target, ok := strings.CutPrefix(prop.Ref, componentPrefix); ok {
		return target, true
	}
	return parent + schema.RenamePascalCase.Apply(key), true
}

func isObject(s *openapi3.Schema) bool {
	if s == nil {
		return false
	}
	if s.Type != nil && s.Type.Is(openapi3.TypeObject) {
		return true
	}
	return s.Type == nil && len(s.Properties) > 0
}

func refOf(ref *openapi3.SchemaRef) string {
	if ref == nil {
		return ""
	}
	return ref.Ref
}

func fieldDoc(s *openapi3.Schema) string {
	lines := []string{}
	if desc := sanitizeDescription(s.Description); desc != "" {
		lines = append(lines, desc)
	}
	if len(s.Enum) > 0 {
		values := make([]string, 0, len(s.Enum))
		for _, value := range s.Enum {
			values = append(values, fmt.Sprint(value))
		}
		lines = append(lines, "Allowed values: "+strings.Join(values, ", "))
	}
	if s.Deprecated {
		lines = append(lines, "Deprecated.")
	}
	return strings.Join(lines, "\n")
}

// typeSummary spells an OpenAPI schema in the Go-like vocabulary the format
// strategies classify.
func typeSummary(s *openapi3.Schema) string {
	if s == nil || s.Type == nil || len(s.Type.Slice()) == 0 {
		return "any"
	}
	switch {
	case s.Type.Is(openapi3.TypeString):
		switch s.Format {
		case "date-time":
			return "time.Time"
		case "duration":
			return "time.Duration"
		}
		return "string"
	case s.Type.Is(openapi3.TypeInteger):
		return "integer"
	case s.Type.Is(openapi3.TypeNumber):
		return "float"
	case s.Type.Is(openapi3.TypeBoolean):
		return "bool"
	case s.Type.Is(openapi3.TypeArray):
		if s.Items == nil {
			return "[]any"
		}
		return "[]" + typeSummary(s.Items.Value)
	case s.Type.Is(openapi3.TypeObject):
		if ap := s.AdditionalProperties.Schema; ap != nil {
			return "map[string]" + typeSummary(ap.Value)
		}
		return "map[string]any"
	}
	return strings.Join(s.Type.Slice(), "|")
}

func defaultRepr(s *openapi3.Schema) (string, error) {
	if s.Default == nil {
		return "", nil
	}
	return format.EncodeTOMLValue(normaliseNumbers(s, s.Default))
}

// normaliseNumbers turns the float64 values produced by JSON decoding back
// into integers where the schema says so.
func normaliseNumbers(s *openapi3.Schema, value any) any {
	if s == nil || s.Type == nil {
		return value
	}
	switch v := value.(type) {
	case float64:
		if s.Type.Is(openapi3.TypeInteger) && v == float64(int64(v)) {
			return int64(v)
		}
	case []any:
		if s.Items == nil {
			return v
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normaliseNumbers(s.Items.Value, item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			var prop *openapi3.Schema
			if ref, ok := s.Properties[key]; ok && ref != nil {
				prop = ref.Value
			} else if ap := s.AdditionalProperties.Schema; ap != nil {
				prop = ap.Value
			}
			out[key] = normaliseNumbers(prop, item)
		}
		return out
	}
	return value
}
