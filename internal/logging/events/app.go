package events

import "github.com/discstack/discstack/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Connected(addr string) {
	logging.Trace("app.connected", map[string]interface{}{"addr": addr})
}

func (AppTracer) Reconnected(addr string) {
	logging.Trace("app.reconnected", map[string]interface{}{"addr": addr})
}
