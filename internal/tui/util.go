package tui

import (
	"strconv"

	"github.com/charmbracelet/x/ansi"

	"geodraw/internal/config"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// cutLeft keeps the first n visible cells of a styled string.
func cutLeft(s string, n int) string { return ansi.Truncate(s, n, "") }

// cutRight drops the first n visible cells of a styled string.
func cutRight(s string, n int) string { return ansi.TruncateLeft(s, n, "") }

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func fmtDash(d []float64) string {
	if len(d) == 0 {
		return "solid"
	}
	return config.FormatDash(d)
}
