package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/orhun/kmon/internal/format/table"
	"github.com/orhun/kmon/internal/kernel"
)

type keyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Options     key.Binding
	Up          key.Binding
	Down        key.Binding
	Previous    key.Binding
	Next        key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	Rotate      key.Binding
	Top         key.Binding
	Bottom      key.Binding
	LogUp       key.Binding
	LogDown     key.Binding
	LogLeft     key.Binding
	LogRight    key.Binding
	InfoUp      key.Binding
	InfoDown    key.Binding
	KernelInfo  key.Binding
	Dependents  key.Binding
	Clear       key.Binding
	Unload      key.Binding
	Blacklist   key.Binding
	Reload      key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Copy        key.Binding
	Paste       key.Binding
	Search      key.Binding
	Load        key.Binding
	JumpToIndex key.Binding
}

// smoothKeys are the alt variants that scroll by the fine step.
var smoothKeys = map[string]bool{
	"alt+k": true, "alt+K": true,
	"alt+j": true, "alt+J": true,
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "ctrl+c", "ctrl+d", "esc"),
		key.WithHelp("[q], ctrl-c/d, esc", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r", "R", "f5"),
		key.WithHelp("[r], f5", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("[?], f1", "help"),
	),
	Options: key.NewBinding(
		key.WithKeys("m", "o"),
		key.WithHelp("[m], o", "show options menu"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k", "K", "alt+k", "alt+K"),
		key.WithHelp("up/down, k/j, alt-k/j", "scroll up/down [selected block]"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "J", "alt+j", "alt+J"),
	),
	Previous: key.NewBinding(
		key.WithKeys("left", "h", "H"),
		key.WithHelp("left/right, h/l", "switch between blocks"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "L"),
	),
	Grow: key.NewBinding(
		key.WithKeys("alt+e"),
		key.WithHelp("alt-e/s", "expand/shrink the selected block"),
	),
	Shrink: key.NewBinding(
		key.WithKeys("alt+s"),
	),
	Rotate: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl-x", "change the block position"),
	),
	Top: key.NewBinding(
		key.WithKeys("ctrl+t", "home"),
		key.WithHelp("ctrl-t/b, home/end", "scroll to top/bottom [module list]"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("ctrl+b", "end"),
	),
	LogUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup/pgdown", "scroll up/down [kernel activities]"),
	),
	LogDown: key.NewBinding(
		key.WithKeys("pgdown"),
	),
	LogLeft: key.NewBinding(
		key.WithKeys("alt+h", "alt+H"),
		key.WithHelp("alt-h/l", "scroll left/right [kernel activities]"),
	),
	LogRight: key.NewBinding(
		key.WithKeys("alt+l", "alt+L"),
	),
	InfoUp: key.NewBinding(
		key.WithKeys("<", "alt+ "),
		key.WithHelp("</>, alt-space/space", "scroll up/down [module information]"),
	),
	InfoDown: key.NewBinding(
		key.WithKeys(">", " "),
	),
	KernelInfo: key.NewBinding(
		key.WithKeys("\\", "tab", "shift+tab"),
		key.WithHelp("[\\], tab, backtab", "show the next kernel information"),
	),
	Dependents: key.NewBinding(
		key.WithKeys("d", "alt+d"),
		key.WithHelp("[d], alt-d", "show the dependent modules"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l", "ctrl+u", "alt+c", "alt+C"),
		key.WithHelp("ctrl-l/u, alt-c", "clear the kernel ring buffer"),
	),
	Unload: key.NewBinding(
		key.WithKeys("u", "U", "-", "backspace", "ctrl+h"),
		key.WithHelp("[u], backspace", "unload kernel module"),
	),
	Blacklist: key.NewBinding(
		key.WithKeys("x", "X", "b", "B", "delete"),
		key.WithHelp("[x], b, delete", "blacklist kernel module"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r", "alt+r", "alt+R"),
		key.WithHelp("ctrl-r, alt-r", "reload kernel module"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y/n", "execute/cancel the command"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c", "C"),
		key.WithHelp("[c]/v", "copy/paste"),
	),
	Paste: key.NewBinding(
		key.WithKeys("v", "ctrl+v"),
	),
	Search: key.NewBinding(
		key.WithKeys("enter", "s", "S", "/"),
		key.WithHelp("[/], s, enter", "search a kernel module"),
	),
	Load: key.NewBinding(
		key.WithKeys("+", "i", "I", "insert"),
		key.WithHelp("[+], i, insert", "load a kernel module"),
	),
	JumpToIndex: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("[1]..9", "jump to the dependent module"),
	),
}

// inputKeys are the bindings active while text is being entered.
type inputKeyMap struct {
	Quit      key.Binding
	Previous  key.Binding
	Next      key.Binding
	Copy      key.Binding
	Paste     key.Binding
	Exit      key.Binding
	Backspace key.Binding
	Clear     key.Binding
	Escape    key.Binding
}

var inputKeys = inputKeyMap{
	Quit:      key.NewBinding(key.WithKeys("ctrl+d")),
	Previous:  key.NewBinding(key.WithKeys("up")),
	Next:      key.NewBinding(key.WithKeys("down")),
	Copy:      key.NewBinding(key.WithKeys("ctrl+c")),
	Paste:     key.NewBinding(key.WithKeys("ctrl+v")),
	Exit:      key.NewBinding(key.WithKeys("enter", "tab", "?", "f1", "right", "left")),
	Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	Clear:     key.NewBinding(key.WithKeys("delete", "ctrl+l")),
	Escape:    key.NewBinding(key.WithKeys("esc")),
}

// helpBindings lists the bindings shown on the help page, in order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Quit, k.Refresh, k.Help, k.Options, k.Up, k.Previous, k.Grow,
		k.Rotate, k.Top, k.LogUp, k.LogLeft, k.InfoUp, k.KernelInfo,
		k.Search, k.Load, k.Unload, k.Reload, k.Blacklist, k.Dependents,
		k.JumpToIndex, k.Clear, k.Confirm, k.Copy,
	}
}

// helpLines renders the key binding page with aligned key columns.
func helpLines(bindings []key.Binding) []kernel.Line {
	rows := make([][]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		rows = append(rows, []string{h.Key + ":", h.Desc})
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	lines := make([]kernel.Line, len(formatted))
	keyWidth := 0
	for _, row := range rows {
		if w := table.Width(row[0]); w > keyWidth {
			keyWidth = w
		}
	}
	for i, text := range formatted {
		head, tail := splitAtWidth(text, keyWidth)
		lines[i] = kernel.Line{{Text: head, Accent: true}, {Text: tail}}
	}
	return lines
}

func splitAtWidth(text string, width int) (string, string) {
	runes := []rune(text)
	if width > len(runes) {
		width = len(runes)
	}
	return string(runes[:width]), string(runes[width:])
}
