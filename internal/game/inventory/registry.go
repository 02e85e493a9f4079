package inventory

import (
	"fmt"
	"sort"
)

// Registry holds one shared Item per catalog ID.
type Registry struct {
	items map[string]*Item
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Item)}
}

// LoadRegistry loads every item definition in dir and registers it.
//
// Postcondition: returns a populated Registry or the first load or
// registration error.
func LoadRegistry(dir string) (*Registry, error) {
	defs, err := LoadItems(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, d := range defs {
		if err := r.Register(d.Build()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds item under item.ID.
//
// Precondition: item must not be nil and item.ID must not be empty.
// Postcondition: Item(item.ID) returns item; returns error if the ID is
// already registered.
func (r *Registry) Register(item *Item) error {
	if item.ID == "" {
		return fmt.Errorf("inventory: Registry.Register: item %q has no ID", item.Name)
	}
	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("inventory: Registry.Register: item ID %q already registered", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

// Item returns the Item for id and whether it was found.
func (r *Registry) Item(id string) (*Item, bool) {
	item, ok := r.items[id]
	return item, ok
}

// All returns every registered Item sorted by ID.
func (r *Registry) All() []*Item {
	out := make([]*Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered items.
func (r *Registry) Len() int { return len(r.items) }
