package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/orhun/kmon/internal/theme"
	uistate "github.com/orhun/kmon/internal/ui/state"
)

// stripHeight is the height of the input and kernel info row.
const stripHeight = 3

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 || m.quitting {
		return ""
	}
	sizes := m.app.Sizes
	topH := m.height * (100 - sizes.Activities) / 100
	bottomH := m.height - topH
	leftW := m.width * (100 - sizes.Info) / 100
	rightW := m.width - leftW

	sections := make([]string, 0, 2)
	if topH > 0 {
		columns := make([]string, 0, 2)
		if leftW > 0 {
			columns = append(columns, m.viewLeft(leftW, topH))
		}
		if rightW > 0 {
			columns = append(columns, m.renderSlot(uistate.Slot(m.app.Pointer, 1), rightW, topH))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	}
	if bottomH > 0 {
		sections = append(sections, m.renderSlot(uistate.Slot(m.app.Pointer, 2), m.width, bottomH))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLeft renders the input strip above the first dynamic region.
func (m *Model) viewLeft(width, height int) string {
	stripH := stripHeight
	if stripH > height {
		stripH = height
	}
	inputW := width * m.app.Sizes.Input / 100
	strip := make([]string, 0, 2)
	if inputW > 0 {
		strip = append(strip, m.renderInput(inputW, stripH))
	}
	if width-inputW > 0 {
		strip = append(strip, m.renderKernelInfo(width-inputW, stripH))
	}
	parts := []string{lipgloss.JoinHorizontal(lipgloss.Top, strip...)}
	if bodyH := height - stripH; bodyH > 0 {
		parts = append(parts, m.renderSlot(uistate.Slot(m.app.Pointer, 0), width, bodyH))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderSlot draws the panel placed in a dynamic region.
func (m *Model) renderSlot(panel uistate.Panel, width, height int) string {
	switch panel {
	case uistate.PanelModuleTable:
		if m.app.ShowOptions {
			return m.renderOptions(width, height)
		}
		return m.renderModuleTable(width, height)
	case uistate.PanelModuleInfo:
		return m.renderModuleInfo(width, height)
	default:
		return m.renderActivities(width, height)
	}
}

func (m *Model) glyph(s theme.Symbol) string {
	return m.styles.Glyphs.Get(s)
}

func (m *Model) borderStyle(panel uistate.Panel) *lipgloss.Style {
	if m.app.Selected == panel {
		return m.styles.Default
	}
	return m.styles.Colored
}

// renderBox builds a rounded box with the title in the top border. The box
// is exactly width columns and height rows.
func (m *Model) renderBox(title string, body []string, width, height int, border *lipgloss.Style) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	if width <= 0 || height <= 0 {
		return ""
	}
	if width < 2 || height < 2 {
		rows := make([]string, height)
		for i := range rows {
			rows[i] = strings.Repeat(" ", width)
		}
		return strings.Join(rows, "\n")
	}
	innerW := width - 2
	innerH := height - 2
	render := func(s string) string {
		if border == nil {
			return s
		}
		return border.Render(s)
	}

	titleSeg := ""
	if title != "" {
		titleSeg = " " + title + " "
	}
	if lipgloss.Width(titleSeg) > innerW {
		if innerW > 0 {
			titleSeg = truncate.StringWithTail(titleSeg, uint(innerW), "…")
		} else {
			titleSeg = ""
		}
	}
	dashes := innerW - lipgloss.Width(titleSeg)
	if dashes < 0 {
		dashes = 0
	}
	if m.styles.Bold != nil && titleSeg != "" {
		titleSeg = m.styles.Bold.Render(titleSeg)
	}
	rows := make([]string, 0, height)
	rows = append(rows, render(tlc)+titleSeg+render(strings.Repeat(hz, dashes)+trc))
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(body) {
			content = body[i]
		}
		rows = append(rows, render(vt)+fitWidth(content, innerW)+render(vt))
	}
	rows = append(rows, render(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}

// fitWidth truncates or pads an ANSI styled line to exactly width columns.
func fitWidth(content string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(content)
	if w > width {
		content = truncate.StringWithTail(content, uint(width-1), "…")
		w = lipgloss.Width(content)
	}
	if w < width {
		content += strings.Repeat(" ", width-w)
	}
	return content
}

// fitBlock pads or cuts a rendered block to exactly width by height.
func fitBlock(block string, width, height int) string {
	rows := strings.Split(block, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i, row := range rows {
		rows[i] = fitWidth(row, width)
	}
	return strings.Join(rows, "\n")
}

func styled(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
