// Package world is the storage world the terminal host serves: chests and
// players with their inventories, loaded from a YAML fixture.
package world

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atomicstack/chestsync/internal/container"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/logging"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultWorld []byte

// Chest is a storage entity. Players are chests of kind "player".
type Chest struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	KindName string            `yaml:"kind"`
	Capacity int               `yaml:"capacity"`
	Resize   string            `yaml:"resize"`
	Rows     int               `yaml:"rows"`
	Filters  []string          `yaml:"filters"`
	Sorts    []string          `yaml:"sorts"`
	Items    []*inventory.Item `yaml:"items"`

	inv  *inventory.Inventory
	tier container.Tier
}

var (
	_ host.Entity            = (*Chest)(nil)
	_ container.Configurable = (*Chest)(nil)
)

func (c *Chest) EntityID() string                { return c.ID }
func (c *Chest) Kind() string                    { return c.KindName }
func (c *Chest) Inventory() *inventory.Inventory { return c.inv }

// Label is the display name of the chest.
func (c *Chest) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// StorageOptions implements container.Configurable.
func (c *Chest) StorageOptions() container.Options {
	return container.Options{
		Resize:  c.tier,
		Rows:    c.Rows,
		Filters: c.Filters,
		Sorts:   c.Sorts,
	}
}

// World holds every entity by id.
type World struct {
	Chests  []*Chest `yaml:"chests"`
	Players []*Chest `yaml:"players"`

	byID map[string]*Chest
}

// Default returns the built in world.
func Default() *World {
	w, err := Parse(defaultWorld)
	if err != nil {
		panic(fmt.Sprintf("built in world: %v", err))
	}
	return w
}

// Load reads a world fixture from path.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world: %w", err)
	}
	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("world %s: %w", path, err)
	}
	return w, nil
}

// Parse decodes a YAML world. Entities without an id get a random one and
// players default to the "player" kind.
func Parse(data []byte) (*World, error) {
	var w World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode world: %w", err)
	}
	w.byID = make(map[string]*Chest)
	for _, p := range w.Players {
		if p.KindName == "" {
			p.KindName = "player"
		}
	}
	for _, c := range append(append([]*Chest(nil), w.Chests...), w.Players...) {
		if err := w.add(c); err != nil {
			return nil, err
		}
	}
	return &w, nil
}

func (w *World) add(c *Chest) error {
	if c == nil {
		return fmt.Errorf("empty entity")
	}
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	if _, dup := w.byID[c.ID]; dup {
		return fmt.Errorf("duplicate entity id %q", c.ID)
	}
	if c.KindName == "" {
		c.KindName = "chest"
	}
	tier, err := container.ParseTier(c.Resize)
	if err != nil {
		return fmt.Errorf("entity %q: %w", c.ID, err)
	}
	c.tier = tier
	c.inv = inventory.From(c.Items...)
	c.inv.SetLimit(c.Capacity)
	w.byID[c.ID] = c
	return nil
}

// Chest returns the entity with id.
func (w *World) Chest(id string) (*Chest, bool) {
	c, ok := w.byID[id]
	return c, ok
}

// Player returns the player of viewport, creating an empty one when the
// fixture has fewer players than viewports.
func (w *World) Player(viewport int) *Chest {
	for len(w.Players) <= viewport {
		p := &Chest{
			ID:       fmt.Sprintf("player-%d", len(w.Players)+1),
			Name:     fmt.Sprintf("Player %d", len(w.Players)+1),
			KindName: "player",
			Capacity: 36,
		}
		if err := w.add(p); err != nil {
			p.ID = uuid.NewString()
			if err := w.add(p); err != nil {
				logging.Error(fmt.Errorf("add player %d: %w", viewport, err))
			}
		}
		w.Players = append(w.Players, p)
	}
	return w.Players[viewport]
}

// IDs lists the chest ids, sorted.
func (w *World) IDs() []string {
	ids := make([]string, 0, len(w.Chests))
	for _, c := range w.Chests {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return ids
}

// Alive reports whether e is still the entity the world knows under its id.
func (w *World) Alive(e host.Entity) bool {
	if e == nil {
		return false
	}
	c, ok := w.byID[e.EntityID()]
	return ok && host.Entity(c) == e
}

// Rebuild replaces the chest with id by a fresh entity holding the same
// items, as a host does when it reloads an object.
func (w *World) Rebuild(id string) (*Chest, bool) {
	old, ok := w.byID[id]
	if !ok || old.KindName == "player" {
		return nil, false
	}
	fresh := *old
	fresh.Items = append([]*inventory.Item(nil), old.inv.Items()...)
	fresh.inv = inventory.From(fresh.Items...)
	fresh.inv.SetLimit(old.inv.Limit())
	w.byID[id] = &fresh
	for i, c := range w.Chests {
		if c == old {
			w.Chests[i] = &fresh
		}
	}
	return &fresh, true
}

