// Package app sequences user actions: it reads the form from the view, mutates
// the registry, persists through the store and re-renders the view. It owns
// no state of its own.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/idilsaglam/calories/internal/model"
	"github.com/idilsaglam/calories/internal/registry"
	"github.com/idilsaglam/calories/internal/store"
)

// ErrEmptyInput is returned when the form is missing a name or calories.
var ErrEmptyInput = errors.New("app: name and calories are required")

// Store is the persistence the Coordinator writes through.
type Store interface {
	StoreItem(item model.Item) error
	UpdateItem(item model.Item) error
	DeleteItem(id int) error
	ClearAll() error
}

// Coordinator wires registry, store and view together.
type Coordinator struct {
	registry *registry.Registry
	store    Store
	view     View
	bound    bool
}

// New returns a Coordinator. Nothing is rendered until Init.
func New(reg *registry.Registry, st Store, v View) *Coordinator {
	return &Coordinator{registry: reg, store: st, view: v}
}

// Init puts the view in its baseline state, renders the collection and total
// and binds the view's events to the Coordinator.
func (c *Coordinator) Init() {
	c.view.ExitEditMode()
	c.renderItems()
	c.view.RenderTotal(c.registry.TotalCalories())
	if !c.bound {
		c.view.Bind(c)
		c.bound = true
	}
	log.Debug().Str("component", "coordinator").Int("items", c.registry.Len()).Msg("initialized")
}

// Dispatch runs the sequence for a.
func (c *Coordinator) Dispatch(a Action) error {
	var err error
	switch a.Kind {
	case ActionAdd:
		_, err = c.Add()
	case ActionBeginEdit:
		_, err = c.BeginEdit(a.ID)
	case ActionCommitEdit:
		_, err = c.CommitEdit()
	case ActionDelete:
		_, err = c.Delete()
	case ActionClear:
		err = c.ClearAll()
	case ActionBack:
		c.Back()
	default:
		err = fmt.Errorf("unknown action %d", a.Kind)
	}
	if err != nil && !errors.Is(err, ErrEmptyInput) {
		log.Warn().Str("component", "coordinator").Stringer("action", a.Kind).Err(err).Msg("action failed")
	}
	return err
}

// Add creates an item from the form.
func (c *Coordinator) Add() (model.Item, error) {
	in := c.view.ReadFormInput()
	if isBlank(in.Name) || isBlank(in.CaloriesText) {
		return model.Item{}, ErrEmptyInput
	}
	item, err := c.registry.AddItem(in.Name, in.CaloriesText)
	if err != nil {
		return model.Item{}, err
	}
	total := c.registry.TotalCalories()

	c.view.FocusName()
	c.view.AppendItem(item)
	c.view.RenderTotal(total)
	c.view.ClearInput()

	if err := c.store.StoreItem(item); err != nil {
		return item, fmt.Errorf("store item: %w", err)
	}
	log.Info().Str("component", "coordinator").Int("id", item.ID).Str("name", item.Name).Int("calories", item.Calories).Msg("item added")
	return item, nil
}

// BeginEdit selects the item with id and loads it into the form.
func (c *Coordinator) BeginEdit(id int) (model.Item, error) {
	item, ok := c.registry.ItemByID(id)
	if !ok {
		return model.Item{}, fmt.Errorf("%w: id %d", registry.ErrItemNotFound, id)
	}
	c.registry.SetCurrentItem(item)
	c.view.EnterEditMode(item)
	return item, nil
}

// CommitEdit writes the form back to the current item.
func (c *Coordinator) CommitEdit() (model.Item, error) {
	in := c.view.ReadFormInput()
	if isBlank(in.Name) || isBlank(in.CaloriesText) {
		return model.Item{}, ErrEmptyInput
	}
	updated, err := c.registry.UpdateItem(in.Name, in.CaloriesText)
	if err != nil {
		return model.Item{}, err
	}
	c.view.RefreshItem(updated)
	c.view.RenderTotal(c.registry.TotalCalories())

	err = c.persist("update item", c.store.UpdateItem(updated))

	c.registry.ClearCurrentItem()
	c.view.ExitEditMode()
	if err != nil {
		return updated, err
	}
	log.Info().Str("component", "coordinator").Int("id", updated.ID).Msg("item updated")
	return updated, nil
}

// Delete removes the current item.
func (c *Coordinator) Delete() (model.Item, error) {
	cur, ok := c.registry.CurrentItem()
	if !ok {
		return model.Item{}, registry.ErrNoCurrentItem
	}
	if err := c.registry.DeleteItem(cur.ID); err != nil {
		return model.Item{}, err
	}
	c.view.RemoveItem(cur.ID)
	c.registry.ClearCurrentItem()
	c.view.ExitEditMode()
	c.view.RenderTotal(c.registry.TotalCalories())

	err := c.persist("delete item", c.store.DeleteItem(cur.ID))

	c.renderItems()
	if err != nil {
		return cur, err
	}
	log.Info().Str("component", "coordinator").Int("id", cur.ID).Msg("item deleted")
	return cur, nil
}

// ClearAll drops every item.
func (c *Coordinator) ClearAll() error {
	c.registry.ClearAllItems()
	c.registry.ClearCurrentItem()
	c.view.ExitEditMode()
	c.view.RenderTotal(c.registry.TotalCalories())
	c.view.RemoveAllItems()

	err := c.store.ClearAll()
	c.view.HideList()
	if err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	log.Info().Str("component", "coordinator").Msg("all items cleared")
	return nil
}

// Back leaves edit state without changes.
func (c *Coordinator) Back() {
	c.registry.ClearCurrentItem()
	c.view.ExitEditMode()
}

func (c *Coordinator) renderItems() {
	items := c.registry.Items()
	if len(items) == 0 {
		c.view.HideList()
		return
	}
	c.view.RenderList(items)
}

// persist wraps a store error. A missing item in the store means the store
// drifted from the registry; that is logged and otherwise ignored.
func (c *Coordinator) persist(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrItemNotFound) {
		log.Warn().Str("component", "coordinator").Str("op", op).Err(err).Msg("store out of sync")
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
