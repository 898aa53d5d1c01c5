package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/sandeepkv93/checklist/internal/model"
)

// Theme is the lipgloss rendering of a StyleSettings record. Terminals
// cannot switch fonts, so font family is only shown and a large font size
// renders bold.
type Theme struct {
	Dark      bool
	Main      lipgloss.Style
	Input     lipgloss.Style
	Item      lipgloss.Style
	Done      lipgloss.Style
	Selected  lipgloss.Style
	InputFont string
	ListFont  string
	Settings  model.StyleSettings
}

const boldFromPx = 20

func NewTheme(s model.StyleSettings, dark bool) Theme {
	item := lipgloss.NewStyle().
		Foreground(Color(s.ListTextColor)).
		Background(Color(s.ListBgColor)).
		Bold(fontPx(s.ListFontSize) >= boldFromPx).
		Padding(0, 1)
	return Theme{
		Dark: dark,
		Main: lipgloss.NewStyle().Background(Color(s.MainBgColor)).Padding(0, 1),
		Input: lipgloss.NewStyle().
			Foreground(Color(s.InputTextColor)).
			Background(Color(s.InputBgColor)).
			Bold(fontPx(s.InputFontSize) >= boldFromPx),
		Item:      item,
		Done:      item.Strikethrough(true).Faint(true),
		Selected:  item.Reverse(true),
		InputFont: fontLabel(s.InputFontFamily, s.InputFontSize),
		ListFont:  fontLabel(s.ListFontFamily, s.ListFontSize),
		Settings:  s,
	}
}

// Color maps a CSS-style hex color to a terminal color. Anything else
// (named colors, rgb() forms) leaves the terminal default.
func Color(v string) lipgloss.TerminalColor {
	c, err := colorful.Hex(strings.TrimSpace(v))
	if err != nil {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(c.Hex())
}

func fontPx(size string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(size), "px"))
	if err != nil {
		return 0
	}
	return n
}

func fontLabel(family, size string) string {
	name, _, _ := strings.Cut(family, ",")
	return strings.TrimSpace(name) + " " + strings.TrimSpace(size)
}
