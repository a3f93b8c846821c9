// Package registry holds the authoritative in-memory item collection, the item
// being edited and the derived calorie total. It never persists anything.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/idilsaglam/calories/internal/model"
)

var (
	// ErrNoCurrentItem is returned when an edit needs a selected item and none is set.
	ErrNoCurrentItem = errors.New("registry: no current item")
	// ErrItemNotFound is returned when no item carries the requested id.
	ErrItemNotFound = errors.New("registry: item not found")
)

// Loader supplies the initial collection.
type Loader interface {
	LoadAll() ([]model.Item, error)
}

// Registry owns the item collection for one session.
type Registry struct {
	items []model.Item

	// current is the id of the item being edited, resolved on demand.
	current    int
	hasCurrent bool

	total  int
	nextID int
}

// New returns a registry seeded with items.
func New(items []model.Item) *Registry {
	r := &Registry{items: slices.Clone(items)}
	if r.items == nil {
		r.items = []model.Item{}
	}
	for _, it := range r.items {
		if it.ID >= r.nextID {
			r.nextID = it.ID + 1
		}
	}
	return r
}

// Load returns a registry seeded with whatever l has persisted.
func Load(l Loader) (*Registry, error) {
	items, err := l.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return New(items), nil
}

// Items returns the collection in insertion order.
func (r *Registry) Items() []model.Item {
	return slices.Clone(r.items)
}

// Len returns the number of items.
func (r *Registry) Len() int { return len(r.items) }

// AddItem parses caloriesText, appends a new item and returns it.
// Ids come from a counter that only moves forward, so an id is never reused
// within a session even after deletes.
func (r *Registry) AddItem(name, caloriesText string) (model.Item, error) {
	calories, err := model.ParseCalories(caloriesText)
	if err != nil {
		return model.Item{}, err
	}
	item := model.Item{ID: r.nextID, Name: name, Calories: calories}
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

// UpdateItem overwrites name and calories of the current item.
func (r *Registry) UpdateItem(name, caloriesText string) (model.Item, error) {
	if !r.hasCurrent {
		return model.Item{}, ErrNoCurrentItem
	}
	calories, err := model.ParseCalories(caloriesText)
	if err != nil {
		return model.Item{}, err
	}
	idx := r.indexOf(r.current)
	if idx < 0 {
		return model.Item{}, fmt.Errorf("%w: id %d", ErrItemNotFound, r.current)
	}
	r.items[idx].Name = name
	r.items[idx].Calories = calories
	return r.items[idx], nil
}

// DeleteItem removes the item with id. The collection is untouched when id is unknown.
func (r *Registry) DeleteItem(id int) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	r.items = slices.Delete(r.items, idx, idx+1)
	return nil
}

// ClearAllItems empties the collection.
func (r *Registry) ClearAllItems() {
	r.items = []model.Item{}
}

// ItemByID looks id up with a linear scan.
func (r *Registry) ItemByID(id int) (model.Item, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return model.Item{}, false
	}
	return r.items[idx], true
}

// SetCurrentItem marks item as the one being edited.
func (r *Registry) SetCurrentItem(item model.Item) {
	r.current = item.ID
	r.hasCurrent = true
}

// CurrentItem resolves the item being edited. ok is false when nothing is
// selected or the selected item has since been removed.
func (r *Registry) CurrentItem() (model.Item, bool) {
	if !r.hasCurrent {
		return model.Item{}, false
	}
	return r.ItemByID(r.current)
}

// ClearCurrentItem leaves edit state.
func (r *Registry) ClearCurrentItem() {
	r.current = 0
	r.hasCurrent = false
}

// TotalCalories recomputes the total, caches it and returns it.
func (r *Registry) TotalCalories() int {
	r.total = model.Total(r.items)
	return r.total
}

func (r *Registry) indexOf(id int) int {
	return slices.IndexFunc(r.items, func(it model.Item) bool { return it.ID == id })
}
