package format

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultName is the strategy used when no format is selected.
const DefaultName = "toml"

// Registry stores strategies by lower-cased name.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// NewDefaultRegistry returns a registry holding the built-in strategies.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(TOML{})
	reg.MustRegister(INI{})
	return reg
}

// Register adds a strategy by its Name(). Duplicate names return an error.
func (r *Registry) Register(strategy Strategy) error {
	if strategy == nil {
		return fmt.Errorf("format: strategy is required")
	}
	name := normaliseName(strategy.Name())
	if name == "" {
		return fmt.Errorf("format: strategy name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("format: strategy %q already registered", name)
	}
	r.strategies[name] = strategy
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(strategy Strategy) {
	if err := r.Register(strategy); err != nil {
		panic(err)
	}
}

// Get retrieves a strategy by name, ignoring case and surrounding space.
// An empty name selects DefaultName.
func (r *Registry) Get(name string) (Strategy, error) {
	key := normaliseName(name)
	if key == "" {
		key = DefaultName
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, ok := r.strategies[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, strings.TrimSpace(name))
	}
	return strategy, nil
}

// List returns a sorted list of strategy names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a strategy is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.strategies[normaliseName(name)]
	return ok
}

func normaliseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
