package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Tabs       string
	Body       string
	Side       string
	StatusLine string
	StatusErr  bool
	Footer     string
	Width      int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const defaultWidth = 100

func RenderApp(theme Theme, data AppData) string {
	width := data.Width
	if width <= 0 {
		width = defaultWidth
	}
	body := panelStyle.Width(width/2 + width/8).Render(data.Body)
	if data.Side != "" {
		side := panelStyle.Width(width/2 - width/8 - 6).Render(data.Side)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
	}

	lines := []string{headerStyle.Render(data.Header)}
	if data.Tabs != "" {
		lines = append(lines, data.Tabs)
	}
	lines = append(lines, body)
	if data.StatusLine != "" {
		if data.StatusErr {
			lines = append(lines, errorStyle.Render("error: "+data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return theme.Main.Render(strings.Join(lines, "\n"))
}

// RenderMarkdown renders md with the glamour style matching the terminal
// background, falling back to the raw text.
func RenderMarkdown(md string, dark bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
