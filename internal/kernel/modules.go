package kernel

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/orhun/kmon/internal/logging/events"
	"github.com/orhun/kmon/internal/theme"
	"github.com/pkg/errors"
)

// Direction identifies a scroll movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	Top
	Bottom
)

const (
	moduleInfoUnavailable = "module information not available"
	confirmPrompt         = "Execute the following command? [y/N]:"
	executeFailure        = "Failed to execute command:"

	// Sentinel prefixes for informational pages shown instead of a module.
	pagePrefix      = "!"
	helpPage        = "!Help"
	errorPage       = "!Error"
	dependentsPage  = "!Dependent modules of "
	dependentsTitle = "Dependent modules"
)

// ListOptions controls how the module listing is ordered.
type ListOptions struct {
	Sort    SortKey
	Reverse bool
}

// Modules owns the loaded-module list, the selection and the pending command.
type Modules struct {
	runner Runner
	opts   ListOptions
	glyphs theme.Glyphs

	// Default is the parsed listing in display order.
	Default []Module
	visible []Module
	query   string

	Index       int
	CurrentName string
	CurrentInfo Info
	Command     CommandKind
	InfoScroll  int
}

// NewModules creates an empty registry. Call Refresh to populate it.
func NewModules(runner Runner, opts ListOptions, glyphs theme.Glyphs) *Modules {
	return &Modules{runner: runner, opts: opts, glyphs: glyphs}
}

// Options returns the listing options.
func (m *Modules) Options() ListOptions {
	return m.opts
}

// Refresh reloads the listing, reapplies the filter and selects the first row.
// On failure the previous listing is kept.
func (m *Modules) Refresh(ctx context.Context) error {
	content, err := shell(ctx, m.runner, m.opts.Sort.listCommand())
	if err != nil {
		return errors.Wrap(err, "read module list")
	}
	modules, err := parseModules(content)
	if err != nil {
		return err
	}
	if m.opts.Reverse {
		for i, j := 0, len(modules)-1; i < j; i, j = i+1, j-1 {
			modules[i], modules[j] = modules[j], modules[i]
		}
	}
	m.Default = modules
	m.Filter(m.query)
	m.Scroll(ctx, Top)
	events.Kernel.Refresh(len(modules), m.opts.Sort.String(), m.opts.Reverse)
	return nil
}

// Filter recomputes the visible list from a case-insensitive substring match
// on the module name. The selection index is clamped to the new list.
func (m *Modules) Filter(query string) {
	m.query = query
	m.visible = FilterModules(m.Default, query)
	if len(m.visible) == 0 {
		m.Index = 0
		return
	}
	if m.Index >= len(m.visible) {
		m.Index = len(m.visible) - 1
	}
	if m.Index < 0 {
		m.Index = 0
	}
}

// FilterModules returns the modules whose name contains query, ignoring case.
func FilterModules(modules []Module, query string) []Module {
	if query == "" {
		return append([]Module(nil), modules...)
	}
	needle := strings.ToLower(query)
	out := make([]Module, 0, len(modules))
	for _, mod := range modules {
		if strings.Contains(strings.ToLower(mod.Name), needle) {
			out = append(out, mod)
		}
	}
	return out
}

// Visible returns the filtered list.
func (m *Modules) Visible() []Module {
	return m.visible
}

// Query returns the active filter.
func (m *Modules) Query() string {
	return m.query
}

// Selected returns the module at the selection index.
func (m *Modules) Selected() (Module, bool) {
	if m.Index < 0 || m.Index >= len(m.visible) {
		return Module{}, false
	}
	return m.visible[m.Index], true
}

// Suggest returns the module name that best matches query, or "".
func (m *Modules) Suggest(query string) string {
	query = strings.TrimSpace(query)
	if query == "" || len(m.Default) == 0 {
		return ""
	}
	names := make([]string, len(m.Default))
	for i, mod := range m.Default {
		names[i] = mod.Base()
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return ""
	}
	sort.Stable(ranks)
	return ranks[0].Target
}

// NextModule selects the next row, wrapping to the first.
func (m *Modules) NextModule() {
	if len(m.visible) == 0 {
		m.Index = 0
		return
	}
	m.Index++
	if m.Index > len(m.visible)-1 {
		m.Index = 0
	}
}

// PreviousModule selects the previous row, wrapping to the last.
func (m *Modules) PreviousModule() {
	if len(m.visible) == 0 {
		m.Index = 0
		return
	}
	if m.Index > 0 {
		m.Index--
	} else {
		m.Index = len(m.visible) - 1
	}
}

// Scroll moves the selection and resolves the module information.
func (m *Modules) Scroll(ctx context.Context, dir Direction) {
	m.InfoScroll = 0
	if len(m.visible) == 0 {
		m.Index = 0
		return
	}
	switch dir {
	case Up:
		m.PreviousModule()
	case Down:
		m.NextModule()
	case Top:
		m.Index = 0
	case Bottom:
		m.Index = len(m.visible) - 1
	}
	m.resolve(ctx)
}

// Select sets the selection to an absolute index and resolves its information.
// Out of range indexes are ignored.
func (m *Modules) Select(ctx context.Context, index int) bool {
	if index < 0 || index >= len(m.visible) {
		return false
	}
	m.InfoScroll = 0
	m.Index = index
	m.resolve(ctx)
	return true
}

func (m *Modules) resolve(ctx context.Context) {
	if m.Index >= len(m.visible) {
		m.Index = len(m.visible) - 1
	}
	m.CurrentName = m.visible[m.Index].Base()
	info, err := m.runner.Run(ctx, "modinfo", m.CurrentName)
	if err != nil {
		events.Kernel.ExecError("modinfo "+m.CurrentName, err)
		info = moduleInfoUnavailable
	}
	info = strings.ReplaceAll(info, "signature: ", "signature: \n")
	m.CurrentInfo = StylizeData(info, ":")
	if !m.Command.IsNone() {
		m.Command = CommandNone
	}
	events.Kernel.Select(m.Index, m.CurrentName)
}

// JumpToDependent selects the i-th dependent of the selected module. A
// dependent that is missing or not visible leaves the selection unchanged.
func (m *Modules) JumpToDependent(ctx context.Context, i int) bool {
	selected, ok := m.Selected()
	if !ok || i < 0 || i >= len(selected.Dependents) {
		return false
	}
	target := selected.Dependents[i]
	for idx, mod := range m.visible {
		if mod.Base() == target {
			return m.Select(ctx, idx)
		}
	}
	return false
}

// Pending returns the kind of the staged command.
func (m *Modules) Pending() CommandKind {
	return m.Command
}

// CurrentCommand returns the pending command built for the current name.
func (m *Modules) CurrentCommand() Command {
	return m.Command.Command(m.CurrentName)
}

// Stage records a pending command and shows the confirmation prompt. Names
// containing spaces are refused, as is staging while an informational page
// is displayed. An empty name keeps the current module.
func (m *Modules) Stage(kind CommandKind, name string) bool {
	if strings.Contains(name, " ") || strings.HasPrefix(m.CurrentName, pagePrefix) {
		return false
	}
	if name != "" {
		m.CurrentName = name
	}
	m.Command = kind
	cmd := m.CurrentCommand()
	lines := []Line{{{Text: confirmPrompt, Accent: true}}}
	lines = append(lines, textLines(cmd.Cmd, false)...)
	lines = append(lines, Line{})
	lines = append(lines, textLines(cmd.Desc, true)...)
	m.CurrentInfo = Info{Lines: lines, Raw: cmd.Cmd}
	m.InfoScroll = 0
	events.Kernel.Stage(kind.String(), m.CurrentName)
	return true
}

// Execute runs the pending command through the shell. It reports whether the
// command ran successfully; failures are shown in the information panel.
func (m *Modules) Execute(ctx context.Context) bool {
	if m.Command.IsNone() {
		return false
	}
	cmd := m.CurrentCommand().Cmd
	executed := false
	if _, err := shell(ctx, m.runner, cmd); err != nil {
		events.Kernel.ExecError(cmd, err)
		lines := []Line{{{Text: executeFailure, Accent: true}}, {}}
		lines = append(lines, textLines(fmt.Sprintf("'%s'\n\n%s", cmd, err), false)...)
		m.CurrentInfo = Info{
			Lines: lines,
			Raw:   fmt.Sprintf("Execution Error\n'%s'\n%s", cmd, err),
		}
		m.CurrentName = errorPage + m.glyphs.Get(theme.SymbolNoEntry)
	} else {
		executed = true
	}
	m.Command = CommandNone
	return executed
}

// Cancel discards the pending command and re-resolves the selected module by
// stepping away from it and back.
func (m *Modules) Cancel(ctx context.Context) bool {
	if m.Command.IsNone() {
		return false
	}
	m.Command = CommandNone
	if m.Index != 0 {
		m.Index--
		m.Scroll(ctx, Down)
	} else {
		m.Index++
		m.Scroll(ctx, Up)
	}
	return true
}

// ScrollInfo scrolls the information text by 1 (smooth) or 2 rows. Scrolling
// down wraps after twice the number of lines.
func (m *Modules) ScrollInfo(dir Direction, smooth bool) {
	amount := 2
	if smooth {
		amount = 1
	}
	switch dir {
	case Up:
		if m.InfoScroll > amount-1 {
			m.InfoScroll -= amount
		}
	case Down:
		if lines := m.CurrentInfo.LineCount(); lines > 0 {
			m.InfoScroll += amount
			m.InfoScroll %= lines * 2
		}
	}
}

// ShowPage replaces the information panel with an informational page.
func (m *Modules) ShowPage(name string, info Info) {
	m.InfoScroll = 0
	m.Command = CommandNone
	m.CurrentName = name
	m.CurrentInfo = info
}

// ShowHelp displays the key binding page.
func (m *Modules) ShowHelp(lines []Line) {
	raw := Info{Lines: lines}.String()
	m.ShowPage(helpPage+m.glyphs.Get(theme.SymbolHelmet), Info{Lines: lines, Raw: raw})
}

// ShowDependents lists the dependents of the selected module. It is refused
// when there are none or a dependents page is already shown.
func (m *Modules) ShowDependents() bool {
	selected, ok := m.Selected()
	if !ok || len(selected.Dependents) == 0 || strings.Contains(m.CurrentName, dependentsTitle) {
		return false
	}
	lines := make([]Line, 0, len(selected.Dependents))
	for _, dep := range selected.Dependents {
		lines = append(lines, Line{{Text: "-", Accent: true}, {Text: " " + dep}})
	}
	name := dependentsPage + m.CurrentName + m.glyphs.Get(theme.SymbolHistoricSite)
	info := Info{Lines: lines}
	info.Raw = info.String()
	m.ShowPage(name, info)
	return true
}

// IsPage reports whether an informational page is displayed.
func (m *Modules) IsPage() bool {
	return strings.HasPrefix(m.CurrentName, pagePrefix)
}

// IsExecutionError reports whether the last confirmed command failed.
func (m *Modules) IsExecutionError() bool {
	return strings.HasPrefix(m.CurrentInfo.Raw, "Execution Error\n")
}
