package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-confdocs/pkg/schema"
)

// SourceAdapter loads a schema source into a registry.
type SourceAdapter interface {
	Name() string
	// Detect reports whether raw looks like a document this adapter reads.
	Detect(path string, raw []byte) bool
	Load(ctx context.Context, reg *schema.Registry, path string, raw []byte) ([]*schema.Record, error)
}

// AdapterRegistry stores source adapters by name.
type AdapterRegistry struct {
	mu       sync.RWMutex
	adapters map[string]SourceAdapter
}

// NewAdapterRegistry creates an empty adapter registry.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{
		adapters: make(map[string]SourceAdapter),
	}
}

// NewDefaultAdapterRegistry returns a registry holding the schema file and
// OpenAPI adapters.
func NewDefaultAdapterRegistry() *AdapterRegistry {
	r := NewAdapterRegistry()
	r.MustRegister(NewSchemaFileAdapter())
	r.MustRegister(NewOpenAPIAdapter())
	return r
}

// Register adds an adapter by its Name(). Duplicate names return an error.
func (r *AdapterRegistry) Register(adapter SourceAdapter) error {
	if adapter == nil {
		return fmt.Errorf("orchestrator: adapter is required")
	}
	name := normalizeAdapterName(adapter.Name())
	if name == "" {
		return fmt.Errorf("orchestrator: adapter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("orchestrator: adapter %q already registered", name)
	}

	r.adapters[name] = adapter
	return nil
}

// MustRegister panics on registration failure.
func (r *AdapterRegistry) MustRegister(adapter SourceAdapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Get retrieves an adapter by name.
func (r *AdapterRegistry) Get(name string) (SourceAdapter, error) {
	key := normalizeAdapterName(name)
	if key == "" {
		return nil, fmt.Errorf("orchestrator: adapter name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, ok := r.adapters[key]
	if !ok {
		return nil, fmt.Errorf("orchestrator: adapter %q not found", key)
	}
	return adapter, nil
}

// List returns a sorted list of adapter names.
func (r *AdapterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect returns all adapters that match the provided payload, in name order.
func (r *AdapterRegistry) Detect(path string, raw []byte) []SourceAdapter {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)

	var matches []SourceAdapter
	for _, name := range names {
		if adapter := r.adapters[name]; adapter.Detect(path, raw) {
			matches = append(matches, adapter)
		}
	}
	return matches
}

func normalizeAdapterName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func adapterNames(adapters []SourceAdapter) string {
	names := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		names = append(names, adapter.Name())
	}
	return strings.Join(names, ", ")
}
