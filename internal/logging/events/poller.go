package events

import "github.com/orhun/kmon/internal/logging"

type PollerTracer struct{}

var Poller = PollerTracer{}

func (PollerTracer) Start(name string, intervalMS int64) {
	logging.Trace("poller.start", map[string]interface{}{"poller": name, "intervalMs": intervalMS})
}

func (PollerTracer) Stop(name string) {
	logging.Trace("poller.stop", map[string]interface{}{"poller": name})
}

func (PollerTracer) Error(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("poller.error", map[string]interface{}{"poller": name, "error": err.Error()})
}
