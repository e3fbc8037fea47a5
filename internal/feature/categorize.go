package feature

import (
	"github.com/atomicstack/chestsync/internal/config"
	"github.com/atomicstack/chestsync/internal/event"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/operation"
)

// Categorize fades the player items the open container's filters would not
// accept.
type Categorize struct {
	panes   Panes
	enabled bool
}

func NewCategorize(panes Panes) *Categorize { return &Categorize{panes: panes} }

func (c *Categorize) Name() string                    { return "categorize" }
func (c *Categorize) Wanted(cfg config.Features) bool { return cfg.Categorize }
func (c *Categorize) Configure(cfg config.Features)   { c.enabled = cfg.Categorize }

func (c *Categorize) Bind(changed event.MenuChanged) {
	if changed.Top == nil || changed.Bottom == nil {
		return
	}
	filters := changed.Top.Options().Filters
	if len(filters) == 0 {
		return
	}
	accept, _ := operation.BuildAll(filters)
	c.panes.Bottom(changed.Viewport).AddHighlighter(host.HighlightFunc(func(item *inventory.Item) bool {
		if !c.enabled || item == nil {
			return true
		}
		return len(accept([]*inventory.Item{item})) == 1
	}))
}
