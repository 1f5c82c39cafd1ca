package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCyclicSchema signals a record that nests itself directly or
	// transitively.
	ErrCyclicSchema = errors.New("schema: cyclic schema")
	// ErrDuplicateField signals two fields sharing a serialized key after the
	// rename policy has been applied.
	ErrDuplicateField = errors.New("schema: duplicate field")
	// ErrDuplicateRecord signals a second registration under the same name.
	ErrDuplicateRecord = errors.New("schema: duplicate record")
	// ErrUnknownRecord signals a lookup for a record that was never registered.
	ErrUnknownRecord = errors.New("schema: unknown record")
	// ErrInvalidRecord covers structural problems such as empty names.
	ErrInvalidRecord = errors.New("schema: invalid record")
	// ErrNotNested is returned when resolving a scalar field.
	ErrNotNested = errors.New("schema: field is not nested")
)

// ValidationError carries the record and field involved in a registration or
// resolution failure. Use errors.Is against the sentinel errors above.
type ValidationError struct {
	Err    error
	Record string
	Field  string
	// Path lists the nesting chain for cyclic schemas, starting and ending
	// with the same record.
	Path []string
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrCyclicSchema) && len(e.Path) > 0:
		return fmt.Sprintf("%v: %s", e.Err, strings.Join(e.Path, " -> "))
	case e.Field != "":
		return fmt.Sprintf("%v: record %q field %q", e.Err, e.Record, e.Field)
	case e.Record != "":
		return fmt.Sprintf("%v: record %q", e.Err, e.Record)
	default:
		return e.Err.Error()
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validateDefinition checks a definition in isolation. Cross-record checks
// (cycles, duplicate records) happen in Registry.Register.
func validateDefinition(def Definition) error {
	if strings.TrimSpace(def.Name) == "" {
		return &ValidationError{Err: fmt.Errorf("%w: name is required", ErrInvalidRecord)}
	}

	seen := make(map[string]struct{}, len(def.Fields))
	for i, field := range def.Fields {
		if strings.TrimSpace(field.Name) == "" {
			return &ValidationError{
				Err:    fmt.Errorf("%w: field %d has no name", ErrInvalidRecord, i),
				Record: def.Name,
			}
		}
		if _, dup := seen[field.Name]; dup {
			return &ValidationError{Err: ErrDuplicateField, Record: def.Name, Field: field.Name}
		}
		seen[field.Name] = struct{}{}

		if field.Nested == def.Name {
			return &ValidationError{
				Err:    ErrCyclicSchema,
				Record: def.Name,
				Field:  field.Name,
				Path:   []string{def.Name, def.Name},
			}
		}
		if !field.IsNested() && strings.TrimSpace(field.Type) == "" {
			return &ValidationError{
				Err:    fmt.Errorf("%w: type is required", ErrInvalidRecord),
				Record: def.Name,
				Field:  field.Name,
			}
		}
	}
	return nil
}

// findCycle walks already registered records reachable from the definition's
// nested fields and returns the chain leading back to def.Name, if any.
// Registered records are acyclic, so the walk terminates.
func findCycle(records map[string]*Record, def Definition) []string {
	visited := make(map[string]struct{})

	var walk func(name string, path []string) []string
	walk = func(name string, path []string) []string {
		path = append(path, name)
		if name == def.Name {
			return path
		}
		if _, ok := visited[name]; ok {
			return nil
		}
		visited[name] = struct{}{}

		rec, ok := records[name]
		if !ok {
			return nil
		}
		for _, field := range rec.fields {
			if !field.IsNested() {
				continue
			}
			if found := walk(field.Nested, path); found != nil {
				return found
			}
		}
		return nil
	}

	for _, field := range def.Fields {
		if !field.IsNested() {
			continue
		}
		if found := walk(field.Nested, []string{def.Name}); found != nil {
			return found
		}
	}
	return nil
}
