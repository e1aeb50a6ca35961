package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultAccentColor = "white"
	DefaultMainColor   = "darkgray"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	// Default renders focused borders, the selected row and plain text.
	Default *lipgloss.Style
	// Colored renders unfocused borders, idle rows and accent spans.
	Colored *lipgloss.Style
	Bold    *lipgloss.Style
	Cursor  *lipgloss.Style
	Hint    *lipgloss.Style
	Overlay *lipgloss.Style

	Glyphs Glyphs
}

// namedColors maps color names to ANSI palette indexes.
var namedColors = map[string]string{
	"black":        "0",
	"red":          "1",
	"green":        "2",
	"yellow":       "3",
	"blue":         "4",
	"magenta":      "5",
	"cyan":         "6",
	"gray":         "7",
	"darkgray":     "8",
	"lightred":     "9",
	"lightgreen":   "10",
	"lightyellow":  "11",
	"lightblue":    "12",
	"lightmagenta": "13",
	"lightcyan":    "14",
	"white":        "15",
}

// ParseColor resolves a color name or hex triplet (with or without '#').
func ParseColor(value string) (lipgloss.Color, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if code, ok := namedColors[trimmed]; ok {
		return lipgloss.Color(code), nil
	}
	c, err := colorful.Hex("#" + strings.TrimPrefix(trimmed, "#"))
	if err != nil {
		return "", fmt.Errorf("invalid color %q: expected a color name or hex value", value)
	}
	return lipgloss.Color(c.Hex()), nil
}

// New builds the style set from the accent and main colors.
func New(accent, main string, unicode bool) (*Styles, error) {
	accentColor, err := ParseColor(orDefault(accent, DefaultAccentColor))
	if err != nil {
		return nil, err
	}
	mainColor, err := ParseColor(orDefault(main, DefaultMainColor))
	if err != nil {
		return nil, err
	}
	return &Styles{
		Default: ptr(lipgloss.NewStyle().Foreground(accentColor)),
		Colored: ptr(lipgloss.NewStyle().Foreground(mainColor)),
		Bold:    ptr(lipgloss.NewStyle().Bold(true)),
		Cursor:  ptr(lipgloss.NewStyle().Reverse(true)),
		Hint:    ptr(lipgloss.NewStyle().Foreground(mainColor).Italic(true)),
		Overlay: ptr(lipgloss.NewStyle().Foreground(accentColor).Bold(true)),
		Glyphs:  NewGlyphs(unicode),
	}, nil
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	styles, err := New(DefaultAccentColor, DefaultMainColor, false)
	if err != nil {
		panic(err)
	}
	return styles
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
