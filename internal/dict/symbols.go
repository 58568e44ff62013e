package dict

// Symbol is a connector glyph used between or inside operator values.
type Symbol struct {
	Glyph string `json:"glyph"`

	// Meaning is the help-display description.
	Meaning string `json:"meaning"`

	// Expansion is the natural-language form used by the expander.
	Expansion string `json:"expansion"`
}

// symbols is the fixed connector table, in display order.
// Longer glyphs come first so scanners can match greedily.
var symbols = []Symbol{
	{Glyph: "=>", Meaning: "Implies / leads to / therefore", Expansion: "leading to"},
	{Glyph: "->", Meaning: "Results in / transforms to", Expansion: "resulting in"},
	{Glyph: "//", Meaning: "Or else / fallback", Expansion: "or else"},
	{Glyph: "|", Meaning: "Sequential steps / or", Expansion: "then"},
	{Glyph: "+", Meaning: "And / addition / both", Expansion: "and"},
	{Glyph: "@", Meaning: "At / time / audience / condition", Expansion: "at"},
	{Glyph: "~", Meaning: "But / except / with caveat", Expansion: "except"},
}

// Symbols returns the connector table in display order.
func Symbols() []Symbol {
	out := make([]Symbol, len(symbols))
	copy(out, symbols)
	return out
}

// ExpandSymbol returns the natural-language form of a connector glyph.
// Unknown glyphs return the glyph itself.
func ExpandSymbol(glyph string) string {
	for _, s := range symbols {
		if s.Glyph == glyph {
			return s.Expansion
		}
	}
	return glyph
}
