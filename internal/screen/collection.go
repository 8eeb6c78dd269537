package screen

import (
	"context"
	"fmt"
)

// Lister fetches a whole collection from the backend
type Lister[T any] func(ctx context.Context) ([]T, error)

// Outcome is the state of a collection after a mutation. Item is set when
// the backend returned the entity; otherwise Items holds a refetch.
type Outcome[T any] struct {
	Item      *T     `json:"item,omitempty"`
	Items     []T    `json:"items,omitempty"`
	RemovedID string `json:"removedId,omitempty"`
	Refetched bool   `json:"refetched"`
}

// Collection is the list state of one CRUD screen
type Collection[T any] struct {
	list  Lister[T]
	id    func(T) string
	Items []T
}

// NewCollection creates an empty collection that loads through list and
// identifies entries with id.
func NewCollection[T any](list Lister[T], id func(T) string) *Collection[T] {
	return &Collection[T]{list: list, id: id}
}

// Load replaces the local items with the backend's collection
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	items, err := c.list(ctx)
	if err != nil {
		return c.Items, err
	}
	if items == nil {
		items = []T{}
	}
	c.Items = items
	return c.Items, nil
}

// Apply runs a create or update. A returned entity is merged into the local
// items; a nil entity triggers a refetch. On error the items are untouched.
func (c *Collection[T]) Apply(ctx context.Context, mutate func(ctx context.Context) (*T, error)) (Outcome[T], error) {
	item, err := mutate(ctx)
	if err != nil {
		return Outcome[T]{}, err
	}

	if item != nil {
		c.merge(*item)
		return Outcome[T]{Item: item}, nil
	}

	items, err := c.Load(ctx)
	if err != nil {
		return Outcome[T]{}, fmt.Errorf("mutation succeeded but refetch failed: %w", err)
	}
	return Outcome[T]{Items: items, Refetched: true}, nil
}

// Remove deletes id. Success drops it locally; failure refetches so the
// local items match the backend again.
func (c *Collection[T]) Remove(ctx context.Context, id string, del func(ctx context.Context, id string) error) (Outcome[T], error) {
	if err := del(ctx, id); err != nil {
		items, loadErr := c.Load(ctx)
		if loadErr != nil {
			return Outcome[T]{}, err
		}
		return Outcome[T]{Items: items, Refetched: true}, err
	}

	kept := c.Items[:0]
	for _, it := range c.Items {
		if c.id(it) != id {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	return Outcome[T]{RemovedID: id}, nil
}

func (c *Collection[T]) merge(item T) {
	id := c.id(item)
	for i := range c.Items {
		if c.id(c.Items[i]) == id {
			c.Items[i] = item
			return
		}
	}
	c.Items = append(c.Items, item)
}
