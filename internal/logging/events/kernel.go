package events

import "github.com/orhun/kmon/internal/logging"

type KernelTracer struct{}

var Kernel = KernelTracer{}

func (KernelTracer) Refresh(count int, sort string, reverse bool) {
	logging.Trace("kernel.refresh", map[string]interface{}{"count": count, "sort": sort, "reverse": reverse})
}

func (KernelTracer) Select(index int, name string) {
	logging.Trace("kernel.select", map[string]interface{}{"index": index, "name": name})
}

func (KernelTracer) Stage(kind, name string) {
	logging.Trace("kernel.stage", map[string]interface{}{"kind": kind, "name": name})
}

func (KernelTracer) ExecError(cmd string, err error) {
	if err == nil {
		return
	}
	logging.Trace("kernel.exec-error", map[string]interface{}{"cmd": cmd, "error": err.Error()})
}

func (KernelTracer) LogUpdate(lines int) {
	logging.Trace("kernel.log-update", map[string]interface{}{"lines": lines})
}
