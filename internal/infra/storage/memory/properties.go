package memory

import (
	"context"
	"sort"
	"sync"

	"villetta/internal/domain/property"
)

// PropertyRepository is an in-memory implementation, seeded from fixtures.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[string]property.Property
}

// NewPropertyRepository builds an empty repository.
func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[string]property.Property)}
}

// ByID returns a property or property.ErrNotFound.
func (r *PropertyRepository) ByID(ctx context.Context, id string) (*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, property.ErrNotFound
	}
	return &p, nil
}

// List returns all properties ordered by id.
func (r *PropertyRepository) List(ctx context.Context) ([]property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]property.Property, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Save stores or updates a property entry.
func (r *PropertyRepository) Save(ctx context.Context, p *property.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = *p
	return nil
}

var _ property.Repository = (*PropertyRepository)(nil)
