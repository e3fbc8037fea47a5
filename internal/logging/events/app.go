package events

import "github.com/atomicstack/chestsync/internal/logging"

type AppTracer struct{}

type ConfigTracer struct{}

var (
	App    = AppTracer{}
	Config = ConfigTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.stop", payload)
}

func (ConfigTracer) Reloaded(file, op string) {
	logging.Trace("config.reloaded", map[string]interface{}{"file": file, "op": op})
}

func (ConfigTracer) Rejected(file string, err error) {
	logging.Trace("config.rejected", map[string]interface{}{"file": file, "error": err.Error()})
}
