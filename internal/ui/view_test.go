package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orhun/kmon/internal/theme"
	uistate "github.com/orhun/kmon/internal/ui/state"
)

func TestViewRendersEveryPanel(t *testing.T) {
	h, _ := newTestHarness(t, newTestRunner())
	view := h.Model().View()
	for _, want := range []string{
		"Loaded Kernel Modules (1/3) (33%)",
		"Module: abc",
		"Kernel Activities",
		"Search",
		"Kernel Release",
		"Linux 6.1.0 x86_64",
		"usb 1-1: new high-speed USB device",
		"/lib/abc.ko",
		"def",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestViewFillsTheTerminal(t *testing.T) {
	h, _ := newTestHarness(t, newTestRunner())
	view := h.Model().View()
	rows := strings.Split(view, "\n")
	if len(rows) != 40 {
		t.Fatalf("expected 40 rows, got %d", len(rows))
	}
	if w := lipgloss.Width(view); w != 120 {
		t.Fatalf("expected width 120, got %d", w)
	}
}

func TestViewEmptyWithoutSize(t *testing.T) {
	h, _ := newTestHarness(t, newTestRunner())
	m := h.Model()
	m.width, m.height, m.fixedWidth, m.fixedHeight = 0, 0, false, false
	if view := m.View(); view != "" {
		t.Fatalf("expected empty view, got %q", view)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.View() == "" {
		t.Fatalf("expected a frame after resize")
	}
}

func TestViewShowsNoMatchesWithSuggestion(t *testing.T) {
	h, _ := newTestHarness(t, newTestRunner())
	h.Press(runeKey('/'))
	h.Type("xz")
	view := h.View()
	if !strings.Contains(view, `No matches for "xz" (closest: xyz)`) {
		t.Fatalf("expected suggestion in view, got:\n%s", view)
	}
	if !strings.Contains(view, "(0/0) (0%)") {
		t.Fatalf("expected empty counters, got:\n%s", view)
	}
}

func TestViewShowsPendingCommand(t *testing.T) {
	h, _ := newTestHarness(t, newTestRunner())
	h.Press(runeKey('u'))
	view := h.View()
	for _, want := range []string{"Remove: abc", "Execute the following command? [y/N]:", "modprobe -r abc || rmmod abc"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestViewOptionsReplaceModuleTable(t *testing.T) {
	h, _ := newTestHarness(t, newTestRunner())
	h.Press(runeKey('m'))
	view := h.View()
	if !strings.Contains(view, "> Load a kernel module") || !strings.Contains(view, "Options: abc") {
		t.Fatalf("expected options overlay, got:\n%s", view)
	}
	if strings.Contains(view, "Loaded Kernel Modules") {
		t.Fatalf("expected module table hidden behind the overlay")
	}
}

func TestViewRotationKeepsAllPanels(t *testing.T) {
	h, _ := newTestHarness(t, newTestRunner())
	for i := 0; i < uistate.DynamicSlots; i++ {
		view := h.Model().View()
		for _, want := range []string{"Loaded Kernel Modules", "Module: abc", "Kernel Activities"} {
			if !strings.Contains(view, want) {
				t.Fatalf("rotation %d: expected %q, got:\n%s", i, want, view)
			}
		}
		h.Press(tea.KeyMsg{Type: tea.KeyCtrlX})
	}
}

func TestViewUnicodeGlyphs(t *testing.T) {
	h, _ := newTestHarness(t, newTestRunner())
	m := h.Model()
	m.styles.Glyphs = theme.NewGlyphs(true)
	view := m.View()
	if !strings.Contains(view, "⦗1/3⦘") {
		t.Fatalf("expected unicode brackets, got:\n%s", view)
	}
}

func TestRenderBoxExactSize(t *testing.T) {
	h, _ := newTestHarness(t, newTestRunner())
	m := h.Model()
	box := m.renderBox("a very long title that does not fit", []string{"one", strings.Repeat("x", 40)}, 12, 4, nil)
	rows := strings.Split(box, "\n")
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if w := lipgloss.Width(row); w != 12 {
			t.Fatalf("row %d: expected width 12, got %d (%q)", i, w, row)
		}
	}
}
