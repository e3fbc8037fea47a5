package events

import "github.com/atomicstack/chestsync/internal/logging"

type PaneTracer struct{}

type PaneMismatch string

const (
	PaneMismatchMissing  PaneMismatch = "missing-pane"
	PaneMismatchCapacity PaneMismatch = "no-capacity"
	PaneMismatchColumns  PaneMismatch = "no-columns"
	PaneMismatchVisible  PaneMismatch = "no-visible-inventory"
)

var Pane = PaneTracer{}

func (PaneTracer) Reset(pane, menu string) {
	logging.Trace("pane.reset", map[string]interface{}{"pane": pane, "menu": menu})
}

func (PaneTracer) Bind(pane, container string) {
	logging.Trace("pane.bind", map[string]interface{}{"pane": pane, "container": container})
}

func (PaneTracer) Mismatch(pane string, reason PaneMismatch) {
	logging.Trace("pane.mismatch", map[string]interface{}{"pane": pane, "reason": string(reason)})
}

func (PaneTracer) Scroll(pane string, offset, max int) {
	logging.Trace("pane.scroll", map[string]interface{}{"pane": pane, "offset": offset, "max": max})
}

func (PaneTracer) BadOperation(pane, spec string, err error) {
	logging.Trace("pane.operation.error", map[string]interface{}{"pane": pane, "spec": spec, "error": err.Error()})
}

func (PaneTracer) Rebind(pane string) {
	logging.Trace("pane.highlight.rebind", map[string]interface{}{"pane": pane})
}
