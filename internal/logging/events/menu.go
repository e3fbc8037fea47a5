package events

import "github.com/atomicstack/chestsync/internal/logging"

type MenuTracer struct{}

type CapacityTracer struct{}

var (
	Menu     = MenuTracer{}
	Capacity = CapacityTracer{}
)

func (MenuTracer) Changed(viewport int, previous, current, top, bottom string) {
	logging.Trace("menu.changed", map[string]interface{}{
		"viewport": viewport,
		"previous": previous,
		"menu":     current,
		"top":      top,
		"bottom":   bottom,
	})
}

func (MenuTracer) Rebind(viewport int, menu string) {
	logging.Trace("menu.rebind", map[string]interface{}{"viewport": viewport, "menu": menu})
}

func (MenuTracer) Input(viewport int, kind, target string, consumed bool) {
	logging.Trace("menu.input", map[string]interface{}{
		"viewport": viewport,
		"kind":     kind,
		"target":   target,
		"consumed": consumed,
	})
}

func (CapacityTracer) Resolved(viewport, requested int, tier string, capacity int) {
	logging.Trace("capacity.resolved", map[string]interface{}{
		"viewport":  viewport,
		"requested": requested,
		"tier":      tier,
		"capacity":  capacity,
	})
}
