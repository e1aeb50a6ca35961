package state

// Panel identifies one of the selectable screen blocks.
type Panel int

const (
	PanelInput Panel = iota
	PanelModuleTable
	PanelModuleInfo
	PanelActivities
	panelCount
)

func (p Panel) String() string {
	switch p {
	case PanelInput:
		return "input"
	case PanelModuleTable:
		return "module-table"
	case PanelModuleInfo:
		return "module-info"
	case PanelActivities:
		return "activities"
	default:
		return "unknown"
	}
}

// Next returns the following panel, wrapping to the first.
func (p Panel) Next() Panel {
	return (p + 1) % panelCount
}

// Previous returns the preceding panel, wrapping to the last.
func (p Panel) Previous() Panel {
	return (p + panelCount - 1) % panelCount
}

// InputMode is the text entry mode of the input panel.
type InputMode int

const (
	InputNone InputMode = iota
	InputSearch
	InputLoad
)

// IsNone reports whether no text entry is active.
func (m InputMode) IsNone() bool {
	return m == InputNone
}

// String returns the panel title for the mode. None renders as Search.
func (m InputMode) String() string {
	if m == InputLoad {
		return "Load"
	}
	return "Search"
}

// Next cycles Search and Load, skipping None.
func (m InputMode) Next() InputMode {
	if m == InputSearch {
		return InputLoad
	}
	return InputSearch
}

// Previous cycles Load and Search, skipping None.
func (m InputMode) Previous() InputMode {
	if m == InputLoad {
		return InputSearch
	}
	return InputLoad
}
