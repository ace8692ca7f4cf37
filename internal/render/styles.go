// Package render draws the portfolio panels shown by terminal commands.
//
// Every panel implements terminal.Output and renders to a given width.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/spf13/cast"
)

// DefaultWidth is used when the caller does not know the screen width.
const DefaultWidth = 80

// Palette
var (
	blueColor    = lipgloss.Color("#3B82F6")
	cyanColor    = lipgloss.Color("#22D3EE")
	purpleColor  = lipgloss.Color("#A855F7")
	greenColor   = lipgloss.Color("#22C55E")
	emeraldColor = lipgloss.Color("#34D399")
	yellowColor  = lipgloss.Color("#FACC15")
	orangeColor  = lipgloss.Color("#FB923C")
	redColor     = lipgloss.Color("#EF4444")
	pinkColor    = lipgloss.Color("#F472B6")
	indigoColor  = lipgloss.Color("#818CF8")
	textColor    = lipgloss.Color("#D1D5DB")
	mutedColor   = lipgloss.Color("#6B7280")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(blueColor).
			Bold(true)

	textStyle = lipgloss.NewStyle().
			Foreground(textColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(redColor)

	linkStyle = lipgloss.NewStyle().
			Foreground(cyanColor).
			Underline(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(blueColor)
)

// SetColor turns colored output on or off for the whole process.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// rule draws a "━━━ Title ━━━━" header line filling width.
func rule(title string, width int, color lipgloss.Color) string {
	head := "━━━ " + title + " "
	fill := max(3, width-runewidth.StringWidth(head))
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render(head + strings.Repeat("━", fill))
}

// wrap word-wraps text to width, breaking words longer than a line.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// padLabel pads label to a fixed display width so value columns line up.
func padLabel(label string, width int) string {
	return runewidth.FillRight(label, width)
}

// labelWidth returns the widest label plus a gap, in terminal cells.
func labelWidth(labels []string, minWidth int) int {
	w := minWidth
	for _, l := range labels {
		w = max(w, runewidth.StringWidth(l)+2)
	}
	return w
}

// formatDate turns an API date into "Jan 2006", leaving unparsable input as is.
func formatDate(date string) string {
	t, err := cast.StringToDate(date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2006")
}

func normalizeWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	return width
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
