package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	r := m.mapRect()
	contentWidth := max(10, m.width)

	// Header
	header := titleStyle.Render(" geodraw ─ terminal map drawing ")
	if m.selPath != "" {
		header += dimStyle.Render(" " + filepath.Base(m.selPath))
	}
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(r.w, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(r.h-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View() + "\n" + dimStyle.Render("del remove  esc close"))
		mapView = lipgloss.Place(r.w, r.h, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(r.w)
		m.ta.SetHeight(min(r.h, 12))
		mapView = lipgloss.NewStyle().Width(r.w).Height(r.h).Render(m.ta.View())
	case m.inspectPopup != "":
		box := boxStyle.MaxWidth(min(r.w, 64)).Render(m.inspectPopup)
		mapView = lipgloss.Place(r.w, r.h, lipgloss.Left, lipgloss.Center, box)
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(r.w).Height(r.h).Render(m.renderMap(r.w, r.h))
	}

	body := mapView
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: drawing state, status and help on the first row, coords right
	state := offStyle.Render("off")
	if mode, ok := m.ctl.Mode(); ok {
		state = modeStyle.Render(string(mode))
	}
	o := m.ctl.Options()
	style := fmt.Sprintf(" %s %s w%s dash %s ", swatch(o.Color), o.Color, fmtFloat(o.Thickness), fmtDash(o.DashArray))
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, state, style, status)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right)),
		lipgloss.NewStyle().Width(contentWidth).MaxWidth(contentWidth).Render(m.renderHelp()),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"1-6 mode",
		"e on/off",
		"c colour",
		"[/] width",
		"d dash",
		"x clear",
		"w export",
		"p paste",
		"Tab import",
		"a features",
		"i inspect",
		"del remove",
		"f fit",
		"↑↓←→ pan",
		"+/- zoom",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
