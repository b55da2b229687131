package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-roster/pkg/projection"
	"github.com/goliatone/go-roster/pkg/store"
	"github.com/goliatone/go-roster/pkg/substitute"
)

// ErrUnknownProjection is returned when a projection name is not registered.
var ErrUnknownProjection = errors.New("render: unknown projection")

// Registry stores projections by name. Every projection is checked against
// the store at registration so a row template can never be paired with a
// projection that does not cover its slots.
type Registry struct {
	mu          sync.RWMutex
	store       *store.Store
	projections map[string]projection.Projection
}

// NewRegistry creates an empty registry bound to a fragment store.
func NewRegistry(fragments *store.Store) *Registry {
	return &Registry{
		store:       fragments,
		projections: make(map[string]projection.Projection),
	}
}

// Register validates and adds a projection. Duplicate names return an error.
func (r *Registry) Register(p projection.Projection) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("render: projection name is required")
	}
	if p.Row == "" {
		return fmt.Errorf("render: projection %q has no row fragment", name)
	}
	p.Name = name

	for _, fragName := range []string{p.Header, p.Row, p.Footer} {
		if fragName == "" {
			continue
		}
		frag, err := r.store.Get(fragName)
		if err != nil {
			return fmt.Errorf("render: projection %q: %w", name, err)
		}
		if uncovered := p.Uncovered(frag.Slots()); len(uncovered) > 0 {
			return &substitute.MismatchError{Projection: name, Fragment: fragName, Fields: uncovered}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projections[name]; exists {
		return fmt.Errorf("render: projection %q already registered", name)
	}
	r.projections[name] = p
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(p projection.Projection) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get retrieves a projection by name.
func (r *Registry) Get(name string) (projection.Projection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projections[name]
	if !ok {
		return projection.Projection{}, fmt.Errorf("%w: %q", ErrUnknownProjection, name)
	}
	return p, nil
}

// List returns a sorted list of projection names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.projections))
	for name := range r.projections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a projection is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.projections[name]
	return ok
}
