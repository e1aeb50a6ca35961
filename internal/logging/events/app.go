package events

import (
	"github.com/sirupsen/logrus"

	"github.com/orhun/kmon/internal/logging"
)

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(fields logrus.Fields) {
	logging.TraceFields("app.start", fields)
}

func (AppTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
