package theme

// Symbol names a decorative glyph used in panel titles and page sentinels.
type Symbol int

const (
	SymbolNone Symbol = iota
	SymbolBlank
	SymbolGear
	SymbolCloud
	SymbolAnchor
	SymbolHelmet
	SymbolCircleX
	SymbolSquareX
	SymbolNoEntry
	SymbolFuelPump
	SymbolMagnifier
	SymbolHighVoltage
	SymbolLeftBracket
	SymbolRightBracket
	SymbolHistoricSite
)

// glyphs holds the {unicode, plain} rendering of every symbol.
var glyphs = map[Symbol][2]string{
	SymbolNone:         {"", ""},
	SymbolBlank:        {"⠀ ", "⠀ "},
	SymbolGear:         {" ⚙ ", ""},
	SymbolCloud:        {" ⛅ ", ""},
	SymbolAnchor:       {" ⚓", ""},
	SymbolHelmet:       {" ⛑ ", ""},
	SymbolCircleX:      {" \U0001F167 ", ""},
	SymbolSquareX:      {" \U0001F187 ", ""},
	SymbolNoEntry:      {" ⛔", ""},
	SymbolFuelPump:     {" ⛽", ""},
	SymbolMagnifier:    {" \U0001F50D", ""},
	SymbolHighVoltage:  {" ⚡", ""},
	SymbolLeftBracket:  {"⦗", "("},
	SymbolRightBracket: {"⦘", ")"},
	SymbolHistoricSite: {" ⛬ ", ""},
}

// Glyphs resolves symbols to text, honouring the Unicode toggle.
type Glyphs struct {
	unicode bool
}

// NewGlyphs returns a glyph table. Plain replacements are used unless
// unicode is set.
func NewGlyphs(unicode bool) Glyphs {
	return Glyphs{unicode: unicode}
}

// Get returns the text for the symbol.
func (g Glyphs) Get(s Symbol) string {
	pair, ok := glyphs[s]
	if !ok {
		return ""
	}
	if g.unicode {
		return pair[0]
	}
	return pair[1]
}

// Unicode reports whether Unicode glyphs are enabled.
func (g Glyphs) Unicode() bool {
	return g.unicode
}
