// Package container resolves storage entities into shared Container handles.
package container

import (
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/lock"
	"github.com/google/uuid"
)

// Container wraps an entity's live inventory together with its options and
// access gate. Items are shared with the host and never copied.
type Container struct {
	ID      uuid.UUID
	entity  host.Entity
	items   *inventory.Inventory
	options Options
	mutex   *lock.Mutex
}

func newContainer(entity host.Entity, options Options) *Container {
	id := uuid.New()
	return &Container{
		ID:      id,
		entity:  entity,
		items:   entity.Inventory(),
		options: options,
		mutex:   lock.New(entity.Kind() + ":" + entity.EntityID()),
	}
}

// Entity returns the entity the container was resolved from.
func (c *Container) Entity() host.Entity {
	if c == nil {
		return nil
	}
	return c.entity
}

// Items returns the true item sequence.
func (c *Container) Items() *inventory.Inventory {
	if c == nil {
		return nil
	}
	return c.items
}

// Options returns the merged view options.
func (c *Container) Options() Options {
	if c == nil {
		return Options{}
	}
	return c.options
}

// Mutex returns the container's exclusive access gate.
func (c *Container) Mutex() *lock.Mutex {
	if c == nil {
		return nil
	}
	return c.mutex
}

// Name returns a short label for traces and titles.
func (c *Container) Name() string {
	if c == nil || c.entity == nil {
		return ""
	}
	return cacheKey(c.entity)
}

// stale reports whether entity no longer matches what the container wraps.
func (c *Container) stale(entity host.Entity) bool {
	return c.entity != entity || c.items != entity.Inventory()
}
