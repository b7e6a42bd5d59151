package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	panelBg   = lipgloss.Color("#0F141A")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	modeStyle   = lipgloss.NewStyle().Foreground(baseFg).Background(accentFg).Padding(0, 1)
	offStyle    = lipgloss.NewStyle().Foreground(baseDimFg).Background(panelBg).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
)

// palette is cycled by the colour key.
var palette = []string{"#3388ff", "#e4572e", "#17bebb", "#ffc914", "#76b041", "#ffffff"}

// dashPatterns is cycled by the dash key.
var dashPatterns = [][]float64{{5, 5}, {2, 2}, {8, 3}, {1, 3}}

// swatch renders a colour sample for the footer.
func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}
