package events

import "github.com/atomicstack/chestsync/internal/logging"

type ContainerTracer struct{}

var Container = ContainerTracer{}

func (ContainerTracer) Resolved(name, id, tier string) {
	logging.Trace("container.resolve", map[string]interface{}{"container": name, "id": id, "tier": tier})
}

func (ContainerTracer) Invalidated(name, id string) {
	logging.Trace("container.invalidate", map[string]interface{}{"container": name, "id": id})
}

func (ContainerTracer) Unrecognized(kind, entity string) {
	logging.Trace("container.unrecognized", map[string]interface{}{"kind": kind, "entity": entity})
}
