package events

import "github.com/atomicstack/chestsync/internal/logging"

type LockTracer struct{}

var Lock = LockTracer{}

func (LockTracer) Acquire(name string) {
	logging.Trace("lock.acquire", map[string]interface{}{"lock": name})
}

func (LockTracer) Queue(name string, waiting int) {
	logging.Trace("lock.queue", map[string]interface{}{"lock": name, "waiting": waiting})
}

func (LockTracer) Resume(name string, waiting int) {
	logging.Trace("lock.resume", map[string]interface{}{"lock": name, "waiting": waiting})
}

func (LockTracer) Release(name string) {
	logging.Trace("lock.release", map[string]interface{}{"lock": name})
}
