package events

import "github.com/orhun/kmon/internal/logging"

type UITracer struct{}

type InputTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Input   = InputTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key, panel, mode string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "panel": panel, "mode": mode})
}

func (UITracer) Panel(panel string) {
	logging.Trace("ui.panel", map[string]interface{}{"panel": panel})
}

func (UITracer) Resize(panel string, size int) {
	logging.Trace("ui.resize", map[string]interface{}{"panel": panel, "size": size})
}

func (UITracer) Options(visible bool, index int) {
	logging.Trace("ui.options", map[string]interface{}{"visible": visible, "index": index})
}

func (UITracer) Quit() {
	logging.Trace("ui.quit", nil)
}

func (InputTracer) Mode(mode string) {
	logging.Trace("input.mode", map[string]interface{}{"mode": mode})
}

func (InputTracer) Query(mode, query string) {
	logging.Trace("input.query", map[string]interface{}{"mode": mode, "query": query})
}

func (InputTracer) Exit(mode, query string) {
	logging.Trace("input.exit", map[string]interface{}{"mode": mode, "query": query})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, ok bool) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "ok": ok})
}

func (CommandTracer) Cancel(id, label string) {
	logging.Trace("command.cancel", map[string]interface{}{"id": id, "label": label})
}
