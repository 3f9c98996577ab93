package ui

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var Theme = selectTheme()

func selectTheme() ColorTheme {
	if detectLightTerminal() {
		return NewBreakersTheme()
	}
	return NewMarianaTheme()
}

// detectLightTerminal detects if terminal has a light background via COLORFGBG.
// iTerm2 and other terminals set this as "foreground;background".
// Background 7 or 15 indicates light, 0-6 and 8 indicate dark.
func detectLightTerminal() bool {
	colorfgbg := os.Getenv("COLORFGBG")
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	if len(parts) != 2 {
		return false
	}
	bg := parts[1]
	return bg == "7" || bg == "15"
}

// Style is how one palette entry looks on the terminal. Colors are hex
// strings or tcell color names; empty means the terminal default.
type Style struct {
	FG        string `toml:"fg" yaml:"fg"`
	BG        string `toml:"bg" yaml:"bg"`
	Bold      bool   `toml:"bold" yaml:"bold"`
	Underline bool   `toml:"underline" yaml:"underline"`
	Reverse   bool   `toml:"reverse" yaml:"reverse"`
}

func (s Style) Apply() tcell.Style {
	st := tcell.StyleDefault
	if s.FG != "" {
		st = st.Foreground(tcell.GetColor(s.FG))
	}
	if s.BG != "" {
		st = st.Background(tcell.GetColor(s.BG))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	return st
}

// Merge returns s with the non-zero fields of o applied over it.
func (s Style) Merge(o Style) Style {
	if o.FG != "" {
		s.FG = o.FG
	}
	if o.BG != "" {
		s.BG = o.BG
	}
	s.Bold = s.Bold || o.Bold
	s.Underline = s.Underline || o.Underline
	s.Reverse = s.Reverse || o.Reverse
	return s
}

// ColorTheme maps the abstract cell colors onto terminal styles.
type ColorTheme struct {
	Foreground string
	Background string
	Colors     map[Color]Style
}

// CellStyle returns the terminal style for c.
func (t ColorTheme) CellStyle(c Cell) tcell.Style {
	base := Style{FG: t.Foreground, BG: t.Background}
	st := base.Merge(t.Colors[c.Color]).Apply()
	if c.Attr.Has(AttrReverse) || c.Attr.Has(AttrStandout) {
		st = st.Reverse(true)
	}
	if c.Attr.Has(AttrUnderline) {
		st = st.Underline(true)
	}
	if c.Attr.Has(AttrBlink) {
		st = st.Blink(true)
	}
	if c.Attr.Has(AttrDim) {
		st = st.Dim(true)
	}
	if c.Attr.Has(AttrBold) || c.Attr.Has(AttrStandout) {
		st = st.Bold(true)
	}
	return st
}

// With returns a copy of t with the given entries replaced.
func (t ColorTheme) With(colors map[Color]Style) ColorTheme {
	out := ColorTheme{Foreground: t.Foreground, Background: t.Background, Colors: make(map[Color]Style, len(t.Colors))}
	for k, v := range t.Colors {
		out.Colors[k] = v
	}
	for k, v := range colors {
		out.Colors[k] = v
	}
	return out
}

func NewBreakersTheme() ColorTheme {
	return ColorTheme{
		Foreground: "#333333", // grey3
		Background: "#fbffff", // white5
		Colors: map[Color]Style{
			ColorHighlight:   {BG: "#dae0e2"},                // white3
			ColorSelection:   {BG: "#5fb3b3", FG: "#fbffff"}, // blue2
			ColorInactive:    {BG: "#d9e0e4"},                // white2
			ColorStatic:      {FG: "#999999"},                // grey2
			ColorMenuItem:    {BG: "#dae0e2"},                // white3
			ColorAttention:   {FG: "#F97B58", Bold: true},    // red2
			ColorQuestion:    {FG: "#c594c5"},                // pink
			ColorInformation: {FG: "#6699cc"},                // blue
		},
	}
}

func NewMarianaTheme() ColorTheme {
	return ColorTheme{
		Foreground: "#d8dee9", // white3
		Background: "#303841", // blue3
		Colors: map[Color]Style{
			ColorHighlight:   {BG: "#4e5a65"},
			ColorSelection:   {BG: "#5fb3b3", FG: "#303841"}, // blue5
			ColorInactive:    {BG: "#4e5a65"},
			ColorStatic:      {FG: "#a7adba"}, // blue6
			ColorMenuItem:    {BG: "#65737e"}, // blue4
			ColorAttention:   {FG: "#F97B58", Bold: true},
			ColorQuestion:    {FG: "#fac863"}, // orange
			ColorInformation: {FG: "#99c794"}, // green
		},
	}
}
