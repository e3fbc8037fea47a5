// Package feature holds the optional behaviours layered on top of the grab
// menu panes. Each feature is switched by configuration and binds itself to
// the panes again every time the active menu changes.
package feature

import (
	"github.com/atomicstack/chestsync/internal/config"
	"github.com/atomicstack/chestsync/internal/event"
	"github.com/atomicstack/chestsync/internal/logging"
	"github.com/atomicstack/chestsync/internal/pane"
)

// Panes gives features access to the pane managers of a viewport.
type Panes interface {
	Top(viewport int) *pane.Manager
	Bottom(viewport int) *pane.Manager
}

// Feature is one switchable behaviour.
type Feature interface {
	Name() string
	// Wanted reports whether cfg enables the feature.
	Wanted(cfg config.Features) bool
	// Configure picks up feature specific settings.
	Configure(cfg config.Features)
	// Bind attaches the feature to the panes named by a menu change.
	Bind(changed event.MenuChanged)
}

// Registry activates and deactivates features as configuration changes.
type Registry struct {
	bus      *event.Bus
	features []Feature
	active   map[string]string
	configID string
}

// NewRegistry applies cfg to features and keeps them in sync with every
// later event.ConfigChanged.
func NewRegistry(bus *event.Bus, cfg config.Features, features ...Feature) *Registry {
	r := &Registry{bus: bus, features: features, active: make(map[string]string)}
	r.Apply(cfg)
	r.configID = bus.Subscribe(event.TypeConfigChanged, func(e event.Event) {
		r.Apply(e.(event.ConfigChanged).Config.Features)
	})
	return r
}

// Apply subscribes wanted features to menu changes and unsubscribes the rest.
func (r *Registry) Apply(cfg config.Features) {
	for _, f := range r.features {
		f.Configure(cfg)
		id, on := r.active[f.Name()]
		switch want := f.Wanted(cfg); {
		case want && !on:
			r.active[f.Name()] = r.bus.Subscribe(event.TypeMenuChanged, func(e event.Event) {
				f.Bind(e.(event.MenuChanged))
			})
			logging.Trace("feature.activate", map[string]interface{}{"feature": f.Name()})
		case !want && on:
			r.bus.Unsubscribe(id)
			delete(r.active, f.Name())
			logging.Trace("feature.deactivate", map[string]interface{}{"feature": f.Name()})
		}
	}
}

// Active reports whether the named feature is subscribed.
func (r *Registry) Active(name string) bool {
	_, ok := r.active[name]
	return ok
}

// Close unsubscribes everything the registry registered.
func (r *Registry) Close() {
	for name, id := range r.active {
		r.bus.Unsubscribe(id)
		delete(r.active, name)
	}
	r.bus.Unsubscribe(r.configID)
}
