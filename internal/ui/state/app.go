package state

// App is the UI state owned by the consumer loop.
type App struct {
	Selected    Panel
	Default     Panel
	Sizes       BlockSize
	Pointer     int
	Mode        InputMode
	Query       Query
	ShowOptions bool
	Options     *Options
}

// NewApp returns the initial state with panel selected.
func NewApp(panel Panel) *App {
	return &App{
		Selected: panel,
		Default:  panel,
		Sizes:    DefaultBlockSize(),
		Options:  NewOptions(DefaultOptions()),
	}
}

// Refresh resets the selection, layout and input to their defaults.
func (a *App) Refresh() {
	a.Selected = a.Default
	a.Sizes = DefaultBlockSize()
	a.Pointer = 0
	a.Mode = InputNone
	a.Query.Clear()
}

// Rotate advances the dynamic region pointer.
func (a *App) Rotate() int {
	a.Pointer = (a.Pointer + 1) % DynamicSlots
	return a.Pointer
}

// FilterQuery returns the text used to filter the module list. A Load
// query names a module to insert and never filters.
func (a *App) FilterQuery() string {
	if a.Mode == InputLoad {
		return ""
	}
	return a.Query.String()
}
