package schema

import (
	"maps"
	"sort"
	"sync"
)

// Registry indexes records by name. It is append-only: records are validated
// once when registered and are read-only afterwards, so concurrent renders can
// share a Registry freely.
type Registry struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]*Record),
	}
}

// Register validates the definition and stores it as an immutable Record.
//
// Nested references may point at records that are not registered yet, which
// allows definitions to be loaded in any order. A cycle is reported by the
// registration that closes it.
func (r *Registry) Register(def Definition) (*Record, error) {
	records, err := r.RegisterAll(def)
	if err != nil {
		return nil, err
	}
	return records[0], nil
}

// RegisterAll validates and stores defs as a single unit. Definitions are
// checked in order against the registry and the ones before them; if any
// fails, none is stored.
func (r *Registry) RegisterAll(defs ...Definition) ([]*Record, error) {
	for _, def := range defs {
		if err := validateDefinition(def); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make(map[string]*Record, len(r.records)+len(defs))
	maps.Copy(staged, r.records)

	out := make([]*Record, 0, len(defs))
	for _, def := range defs {
		if _, exists := staged[def.Name]; exists {
			return nil, &ValidationError{Err: ErrDuplicateRecord, Record: def.Name}
		}
		if path := findCycle(staged, def); path != nil {
			return nil, &ValidationError{Err: ErrCyclicSchema, Record: def.Name, Path: path}
		}
		rec := r.newRecord(def)
		staged[def.Name] = rec
		out = append(out, rec)
	}

	for _, rec := range out {
		r.records[rec.name] = rec
		r.order = append(r.order, rec.name)
	}
	return out, nil
}

func (r *Registry) newRecord(def Definition) *Record {
	fields := make([]Field, len(def.Fields))
	for i, field := range def.Fields {
		if field.IsNested() {
			field.Default = ""
			if field.Type == "" {
				field.Type = field.Nested
			}
		}
		fields[i] = field
	}
	return &Record{
		name:     def.Name,
		doc:      def.Doc,
		fields:   fields,
		export:   def.Export,
		registry: r,
	}
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def Definition) *Record {
	rec, err := r.Register(def)
	if err != nil {
		panic(err)
	}
	return rec
}

// Get retrieves a record by name.
func (r *Registry) Get(name string) (*Record, error) {
	rec, ok := r.Lookup(name)
	if !ok {
		return nil, &ValidationError{Err: ErrUnknownRecord, Record: name}
	}
	return rec, nil
}

// Lookup retrieves a record by name, reporting whether it exists.
func (r *Registry) Lookup(name string) (*Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[name]
	return rec, ok
}

// Names returns the registered record names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns every record in registration order.
func (r *Registry) Records() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Record, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.records[name])
	}
	return out
}

// Exported returns the records that opted into export, in registration order.
func (r *Registry) Exported() []*Record {
	var out []*Record
	for _, rec := range r.Records() {
		if rec.export {
			out = append(out, rec)
		}
	}
	return out
}

// Unresolved lists nested references that point at unregistered records,
// formatted as "Record.field -> Target". Loaders call it once all definitions
// are in to catch typos before rendering.
func (r *Registry) Unresolved() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, name := range r.order {
		for _, field := range r.records[name].fields {
			if !field.IsNested() {
				continue
			}
			if _, ok := r.records[field.Nested]; !ok {
				out = append(out, name+"."+field.Name+" -> "+field.Nested)
			}
		}
	}
	return out
}
