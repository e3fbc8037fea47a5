package events

import "github.com/atomicstack/chestsync/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type WorldTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	World  = WorldTracer{}
)

func (UITracer) Open(viewport int, chest string, queued bool) {
	logging.Trace("ui.open", map[string]interface{}{
		"viewport": viewport,
		"chest":    chest,
		"queued":   queued,
	})
}

func (UITracer) Close(viewport int, chest string) {
	logging.Trace("ui.close", map[string]interface{}{"viewport": viewport, "chest": chest})
}

func (UITracer) Leaked(subscriptions int) {
	logging.Trace("ui.leaked", map[string]interface{}{"subscriptions": subscriptions})
}

func (UITracer) Help(viewport int, shown bool) {
	logging.Trace("ui.help", map[string]interface{}{"viewport": viewport, "shown": shown})
}

func (UITracer) Transfer(viewport int, item, from, to string, index int) {
	logging.Trace("ui.transfer", map[string]interface{}{
		"viewport": viewport,
		"item":     item,
		"from":     from,
		"to":       to,
		"index":    index,
	})
}

func (UITracer) Focus(viewport int) {
	logging.Trace("ui.focus", map[string]interface{}{"viewport": viewport})
}

func (FilterTracer) Query(viewport int, query string) {
	logging.Trace("filter.query", map[string]interface{}{"viewport": viewport, "query": query})
}

func (WorldTracer) Change(kind, chest string) {
	logging.Trace("world.change", map[string]interface{}{"kind": kind, "chest": chest})
}

func (WorldTracer) Done() {
	logging.Trace("world.done", nil)
}
