package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/evertras/bubble-table/table"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/orhun/kmon/internal/kernel"
	"github.com/orhun/kmon/internal/theme"
	uistate "github.com/orhun/kmon/internal/ui/state"
)

const (
	colKeyName   = "name"
	colKeySize   = "size"
	colKeyUsedBy = "usedby"

	activitiesTitle = "Kernel Activities"
	// logReserved is the border height excluded from the log rows.
	logReserved = 2
)

// moduleTableTitle shows the selection position within the visible list.
func (m *Model) moduleTableTitle() string {
	modules := m.kernel.Modules
	total := len(modules.Visible())
	current, pct := 0, 0
	if total > 0 {
		current = modules.Index + 1
		pct = current * 100 / total
	}
	lb := m.glyph(theme.SymbolLeftBracket)
	rb := m.glyph(theme.SymbolRightBracket)
	return fmt.Sprintf("Loaded Kernel Modules %s%d/%d%s %s%d%%%s", lb, current, total, rb, lb, pct, rb)
}

func (m *Model) renderModuleTable(width, height int) string {
	modules := m.kernel.Modules
	visible := modules.Visible()
	border := m.borderStyle(uistate.PanelModuleTable)
	title := m.moduleTableTitle()
	rowCount := uistate.TableRows(height)
	if len(visible) == 0 || rowCount <= 0 {
		var body []string
		if query := modules.Query(); query != "" {
			line := fmt.Sprintf("No matches for %q", query)
			if closest := modules.Suggest(query); closest != "" {
				line += fmt.Sprintf(" (closest: %s)", closest)
			}
			body = append(body, styled(m.styles.Hint, line))
		}
		return m.renderBox(title, body, width, height, border)
	}

	offset := uistate.TableOffset(modules.Index, height)
	end := offset + rowCount
	if end > len(visible) {
		end = len(visible)
	}
	usedByWidth := width/2 - 7
	rows := make([]table.Row, 0, end-offset)
	for _, mod := range visible[offset:end] {
		usedBy := mod.UsedBy
		if usedByWidth > 0 && lipgloss.Width(usedBy) > usedByWidth {
			usedBy = truncate.StringWithTail(usedBy, uint(usedByWidth), "...")
		}
		rows = append(rows, table.NewRow(table.RowData{
			colKeyName:   mod.Name,
			colKeySize:   mod.Size,
			colKeyUsedBy: usedBy,
		}))
	}

	base := lipgloss.NewStyle()
	if border != nil {
		base = border.Copy()
	}
	highlight := lipgloss.NewStyle().Reverse(true)
	if m.styles.Default != nil {
		highlight = m.styles.Default.Copy().Bold(true).Reverse(true)
	}
	header := lipgloss.NewStyle().Bold(true)
	if m.styles.Bold != nil {
		header = m.styles.Bold.Copy()
	}
	t := table.New([]table.Column{
		table.NewFlexColumn(colKeyName, "Module", 3),
		table.NewFlexColumn(colKeySize, "Size", 2),
		table.NewFlexColumn(colKeyUsedBy, "Used by", 5),
	}).
		WithBaseStyle(base.Align(lipgloss.Left)).
		BorderRounded().
		HeaderStyle(header).
		HighlightStyle(highlight).
		Focused(true).
		WithRows(rows).
		WithPageSize(rowCount).
		WithHighlightedRow(modules.Index - offset).
		WithTargetWidth(width).
		WithFooterVisibility(true).
		WithStaticFooter(title)
	return fitBlock(t.View(), width, height)
}

// renderOptions draws the options overlay in place of the module table.
func (m *Model) renderOptions(width, height int) string {
	options := m.app.Options
	body := make([]string, 0, len(options.Items))
	for i, option := range options.Items {
		if i == options.Index {
			style := m.styles.Overlay
			if style == nil {
				style = m.styles.Default
			}
			body = append(body, styled(style, "> "+option.Label))
			continue
		}
		body = append(body, styled(m.styles.Colored, "  "+option.Label))
	}
	title := "Options"
	if name := m.kernel.Modules.CurrentName; name != "" {
		title += ": " + name
	}
	return m.renderBox(title, body, width, height, m.styles.Default)
}

// renderLine joins the spans of an info line with their styles.
func (m *Model) renderLine(line kernel.Line) string {
	var b strings.Builder
	for _, span := range line {
		if span.Accent {
			b.WriteString(styled(m.styles.Colored, span.Text))
		} else {
			b.WriteString(styled(m.styles.Default, span.Text))
		}
	}
	return b.String()
}

func (m *Model) renderModuleInfo(width, height int) string {
	modules := m.kernel.Modules
	command := modules.CurrentCommand()
	title := command.Title + m.glyph(command.Symbol)
	border := m.borderStyle(uistate.PanelModuleInfo)
	innerW, innerH := width-2, height-2
	if innerW <= 0 || innerH <= 0 {
		return m.renderBox(title, nil, width, height, border)
	}
	centered := !modules.Command.IsNone() || modules.IsExecutionError()
	wrapped := make([]string, 0, modules.CurrentInfo.LineCount())
	for _, line := range modules.CurrentInfo.Lines {
		text := wordwrap.String(m.renderLine(line), innerW)
		for _, row := range strings.Split(text, "\n") {
			if centered {
				row = lipgloss.PlaceHorizontal(innerW, lipgloss.Center, row)
			}
			wrapped = append(wrapped, row)
		}
	}
	vp := viewport.New(innerW, innerH)
	vp.SetContent(strings.Join(wrapped, "\n"))
	vp.SetYOffset(modules.InfoScroll)
	return m.renderBox(title, strings.Split(vp.View(), "\n"), width, height, border)
}

func (m *Model) renderActivities(width, height int) string {
	logs := m.kernel.Logs
	title := activitiesTitle + m.glyph(theme.SymbolHighVoltage)
	// Escape sequences left in the ring buffer would break the box widths.
	text := ansi.Strip(logs.Select(height, logReserved))
	info := kernel.StylizeData(text, "] ")
	body := make([]string, 0, info.LineCount())
	for _, line := range info.Lines {
		body = append(body, m.renderLine(line))
	}
	return m.renderBox(title, body, width, height, m.borderStyle(uistate.PanelActivities))
}

func (m *Model) renderInput(width, height int) string {
	mode := m.app.Mode
	symbol := theme.SymbolMagnifier
	if mode == uistate.InputLoad {
		symbol = theme.SymbolAnchor
	}
	title := mode.String() + m.glyph(symbol)
	query := m.app.Query.String()
	line := styled(m.styles.Default, query)
	if !mode.IsNone() {
		runes := []rune(query)
		pos := m.app.Query.Cursor()
		before := string(runes[:pos])
		after := ""
		if pos < len(runes) {
			m.inputCursor.SetChar(string(runes[pos]))
			after = string(runes[pos+1:])
		} else {
			m.inputCursor.SetChar(" ")
		}
		line = styled(m.styles.Default, before) + m.inputCursor.View() + styled(m.styles.Default, after)
	}
	return m.renderBox(title, []string{line}, width, height, m.borderStyle(uistate.PanelInput))
}

func (m *Model) renderKernelInfo(width, height int) string {
	info := m.kernel.Info
	title := info.Title() + m.glyph(theme.SymbolGear)
	innerW := width - 2
	text := info.Text()
	if innerW > 0 {
		text = lipgloss.PlaceHorizontal(innerW, lipgloss.Center, fitTrim(text, innerW))
	}
	return m.renderBox(title, []string{styled(m.styles.Default, text)}, width, height, m.styles.Colored)
}

func fitTrim(text string, width int) string {
	if lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
