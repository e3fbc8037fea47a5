package container

import (
	"sort"
	"sync"

	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/logging/events"
)

// Factory resolves and caches containers by entity kind and id.
type Factory struct {
	host host.Host

	mu       sync.Mutex
	defaults Options
	kinds    map[string]Options
	cache    map[string]*Container
}

// NewFactory creates a factory. kinds lists the recognised storage kinds and
// their options; entities of any other kind never resolve.
func NewFactory(h host.Host, defaults Options, kinds map[string]Options) *Factory {
	f := &Factory{host: h, cache: make(map[string]*Container)}
	f.SetOptions(defaults, kinds)
	return f
}

// SetOptions replaces the option layers. Cached containers keep their identity
// and pick up the new options.
func (f *Factory) SetOptions(defaults Options, kinds map[string]Options) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaults = defaults
	f.kinds = make(map[string]Options, len(kinds))
	for kind, opts := range kinds {
		f.kinds[kind] = opts
	}
	for key, c := range f.cache {
		if _, ok := f.kinds[c.entity.Kind()]; !ok {
			delete(f.cache, key)
			continue
		}
		c.options = f.optionsFor(c.entity)
	}
}

// Recognizes reports whether kind resolves to containers.
func (f *Factory) Recognizes(kind string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.kinds[kind]
	return ok
}

// TryGetOne resolves entity to its container. Unrecognised kinds, nil entities
// and entities without an inventory report false.
func (f *Factory) TryGetOne(entity host.Entity) (*Container, bool) {
	if entity == nil || entity.Inventory() == nil {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.kinds[entity.Kind()]; !ok {
		events.Container.Unrecognized(entity.Kind(), entity.EntityID())
		return nil, false
	}
	key := cacheKey(entity)
	if cached, ok := f.cache[key]; ok {
		if !cached.stale(entity) {
			return cached, true
		}
		events.Container.Invalidated(cached.Name(), cached.ID.String())
	}
	c := newContainer(entity, f.optionsFor(entity))
	f.cache[key] = c
	events.Container.Resolved(c.Name(), c.ID.String(), c.options.Resize.String())
	return c, true
}

// TryGetOneFromMenu resolves the container behind the source pane of the
// active grab menu of viewport.
func (f *Factory) TryGetOneFromMenu(viewport int) (*Container, bool) {
	menu, ok := host.ResolveMenu(f.host, viewport).(host.GrabMenu)
	if !ok || menu == nil {
		return nil, false
	}
	return f.TryGetOne(menu.Source())
}

// Prune drops containers whose entity alive reports as gone and returns how
// many were removed.
func (f *Factory) Prune(alive func(host.Entity) bool) int {
	if alive == nil {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	removed := 0
	for key, c := range f.cache {
		if alive(c.entity) {
			continue
		}
		delete(f.cache, key)
		events.Container.Invalidated(c.Name(), c.ID.String())
		removed++
	}
	return removed
}

// Containers returns the cached containers ordered by name.
func (f *Factory) Containers() []*Container {
	f.mu.Lock()
	keys := make([]string, 0, len(f.cache))
	for key := range f.cache {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]*Container, 0, len(keys))
	for _, key := range keys {
		out = append(out, f.cache[key])
	}
	f.mu.Unlock()
	return out
}

// ResumeLocks gives every cached container's gate a chance to start its next
// queued request. Call once per tick.
func (f *Factory) ResumeLocks() {
	for _, c := range f.Containers() {
		c.mutex.Resume()
	}
}

func cacheKey(entity host.Entity) string {
	return entity.Kind() + ":" + entity.EntityID()
}

func (f *Factory) optionsFor(entity host.Entity) Options {
	var own Options
	if cfg, ok := entity.(Configurable); ok {
		own = cfg.StorageOptions()
	}
	return Merge(own, f.kinds[entity.Kind()], f.defaults)
}
