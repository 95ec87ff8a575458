package chartboard

import (
	"fmt"
	"sync"
)

// DatasourceRegistry stores named raw datasets in insertion order. Ids are
// caller-supplied (typically time- or content-derived); inserting an id that
// already exists fails with ErrDuplicateID rather than overwriting.
type DatasourceRegistry struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Datasource
}

// NewDatasourceRegistry builds an empty registry.
func NewDatasourceRegistry() *DatasourceRegistry {
	return &DatasourceRegistry{
		byID: map[string]Datasource{},
	}
}

// Add inserts a new datasource.
func (r *DatasourceRegistry) Add(ds Datasource) error {
	if ds.ID == "" {
		return fmt.Errorf("chartboard: datasource id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[ds.ID]; ok {
		return fmt.Errorf("%w: datasource %s", ErrDuplicateID, ds.ID)
	}
	r.byID[ds.ID] = ds
	r.order = append(r.order, ds.ID)
	return nil
}

// Update replaces the datasource with a matching id wholesale.
func (r *DatasourceRegistry) Update(ds Datasource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[ds.ID]; !ok {
		return fmt.Errorf("%w: datasource %s", ErrNotFound, ds.ID)
	}
	r.byID[ds.ID] = ds
	return nil
}

// Remove deletes the datasource. Clearing any selection that referenced the
// deleted id is the caller's responsibility.
func (r *DatasourceRegistry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: datasource %s", ErrNotFound, id)
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get fetches a datasource by id.
func (r *DatasourceRegistry) Get(id string) (Datasource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.byID[id]
	return ds, ok
}

// List returns all datasources in insertion order.
func (r *DatasourceRegistry) List() []Datasource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Datasource, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Replace swaps the full collection, preserving the given order. Used when
// loading a persisted snapshot.
func (r *DatasourceRegistry) Replace(list []Datasource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = r.order[:0]
	r.byID = make(map[string]Datasource, len(list))
	for _, ds := range list {
		if _, ok := r.byID[ds.ID]; ok {
			continue
		}
		r.byID[ds.ID] = ds
		r.order = append(r.order, ds.ID)
	}
}
