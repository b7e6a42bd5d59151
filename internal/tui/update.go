package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geodraw/internal/draw"
)

const zoomStep = 1.2

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.mapRect().h-2)
		}
		m.syncTolerance()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showAttrs {
			return m.updateAttrs(msg)
		}
		if cmd, done := m.handleKey(msg); done {
			return m, cmd
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		n, err := m.importWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("imported WKT  features: %d", n)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateAttrs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "a":
		m.showAttrs = false
		return m, nil
	case "delete", "backspace":
		if row := m.tbl.SelectedRow(); len(row) > 0 {
			m.ctl.RemoveFeature(row[0])
			m.status = "removed " + row[0]
			m.refreshAttrs()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// handleKey runs the global key bindings. done is false for keys that
// should still reach the sidebar list.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "1", "2", "3", "4", "5", "6":
		i, _ := strconv.Atoi(key)
		m.setMode(draw.Modes[i-1])
	case "e":
		if m.ctl.Enabled() {
			m.ctl.Disable()
			m.status = "drawing disabled"
		} else {
			m.ctl.Enable()
			mode, _ := m.ctl.Mode()
			m.status = "drawing enabled: " + string(mode)
		}
	case "c":
		m.colorIdx = (m.colorIdx + 1) % len(palette)
		m.ctl.SetColor(palette[m.colorIdx])
		m.status = "colour: " + palette[m.colorIdx]
	case "[":
		m.ctl.SetThickness(max(1, m.ctl.Options().Thickness-1))
		m.status = "thickness: " + fmtFloat(m.ctl.Options().Thickness)
	case "]":
		m.ctl.SetThickness(min(12, m.ctl.Options().Thickness+1))
		m.status = "thickness: " + fmtFloat(m.ctl.Options().Thickness)
	case "d":
		m.dashIdx = (m.dashIdx + 1) % len(dashPatterns)
		m.ctl.SetDashArray(dashPatterns[m.dashIdx])
		m.status = "dash: " + fmtDash(dashPatterns[m.dashIdx])
	case "x":
		m.ctl.Clear()
		m.inspectPopup = ""
		m.status = "cleared"
	case "w":
		m.export()
	case "f":
		m.fitFeatures()
	case "+", "=":
		m.zoomBy(zoomStep)
	case "-", "_":
		m.zoomBy(1 / zoomStep)
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.mapRect().h-2)
		}
		m.syncTolerance()
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
		return nil, true
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = true
		m.refreshAttrs()
	case "i":
		m.inspect()
	case "esc":
		m.inspectPopup = ""
	case "delete", "backspace":
		if f, ok := m.ctl.Selected(); ok {
			m.ctl.RemoveFeature(f.ID)
			m.inspectPopup = ""
			m.status = "removed " + f.ID
		} else {
			m.status = "no feature selected"
		}
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.importPath(it.path)
			}
		}
	case "up":
		m.offsetY -= 1
	case "down":
		m.offsetY += 1
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
	return nil, false
}

func (m *Model) setMode(mode draw.Mode) {
	err := m.ctl.SetMode(mode)
	switch {
	case errors.Is(err, draw.ErrInvalidState):
		m.status = "drawing is disabled, press e"
	case err != nil:
		m.status = "mode error: " + err.Error()
	default:
		m.status = "mode: " + string(mode)
	}
}

func (m *Model) zoomBy(f float64) {
	z := m.zoom * f
	if z > 4096 || z < 0.05 {
		return
	}
	m.zoom = z
	m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
	m.syncTolerance()
}

func (m *Model) inspect() {
	f, ok := m.ctl.Selected()
	if !ok {
		m.inspectPopup = ""
		m.status = "no feature selected (mode 6 selects)"
		return
	}
	meta := []string{
		"id: " + f.ID,
		"mode: " + string(f.Properties.Mode),
		"colour: " + f.Properties.Color,
		"thickness: " + fmtFloat(f.Properties.Thickness),
		"dash: " + fmtDash(f.Properties.DashArray),
		fmt.Sprintf("vertices: %d", f.Vertices()),
		f.WKT(),
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect " + f.ID
}

// handleMouse translates terminal mouse reports into host pointer events.
// A press nobody prevented starts panning the map; a release that ends a
// pan is not a click.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.inspectPopup != "" {
		if msg.Action == tea.MouseActionPress {
			m.inspectPopup = ""
		}
		return
	}
	r := m.mapRect()
	cx, cy := msg.X-r.x, msg.Y-r.y
	inside := cx >= 0 && cx < r.w && cy >= 0 && cy < r.h && !m.pasteMode && !m.showAttrs
	if !inside {
		if m.hovering {
			m.hovering = false
			m.host.Dispatch(draw.EventLeave, draw.Coord{m.hoverLon, m.hoverLat})
		}
		if msg.Action == tea.MouseActionRelease {
			m.leftDown, m.panning = false, false
		}
		return
	}
	lon, lat, ok := m.cellToLonLat(cx, cy, r.w, r.h)
	if !ok {
		return
	}
	m.hovering = true
	m.hoverX, m.hoverY, m.hoverLon, m.hoverLat = cx, cy, lon, lat
	c := draw.Coord{lon, lat}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.leftDown = true
			if !m.host.Dispatch(draw.EventPress, c) {
				m.panning, m.panX, m.panY = true, cx, cy
			}
		case tea.MouseButtonRight:
			m.host.Dispatch(draw.EventSecondaryClick, c)
		case tea.MouseButtonWheelUp:
			m.zoomBy(zoomStep)
		case tea.MouseButtonWheelDown:
			m.zoomBy(1 / zoomStep)
		}
	case tea.MouseActionRelease:
		if !m.leftDown {
			return
		}
		panned := m.panning && m.panMoved
		m.leftDown, m.panning, m.panMoved = false, false, false
		m.host.Dispatch(draw.EventRelease, c)
		if panned {
			return
		}
		t := m.clicks.release(cx, cy, m.now())
		m.host.Dispatch(t, c)
		m.log.Debug("pointer", slog.String("event", string(t)), slog.Float64("lon", lon), slog.Float64("lat", lat))
	case tea.MouseActionMotion:
		if m.panning {
			if cx != m.panX || cy != m.panY {
				m.offsetX += cx - m.panX
				m.offsetY += cy - m.panY
				m.panX, m.panY = cx, cy
				m.panMoved = true
			}
			return
		}
		m.host.Dispatch(draw.EventMove, c)
	}
}
