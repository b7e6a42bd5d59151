package tui

import (
	"log/slog"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geodraw/internal/config"
	"geodraw/internal/draw"
	"geodraw/internal/geom"
)

// worldBBox is the initial viewport.
var worldBBox = geom.BBox{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int
	bbox    geom.BBox

	status string

	// drawing
	host       *Host
	ctl        *draw.Controller
	log        *slog.Logger
	exportPath string
	tolerance  float64 // configured select tolerance, 0 follows the zoom
	colorIdx   int
	dashIdx    int

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// pointer state
	hovering bool
	hoverX   int
	hoverY   int
	hoverLon float64
	hoverLat float64
	leftDown bool
	panning  bool
	panMoved bool
	panX     int
	panY     int
	clicks   clickTracker
	now      func() time.Time

	// features table
	showAttrs bool
	tbl       table.Model
}

// New builds the terminal host and a draw controller on it.
func New(cfg config.Config, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		bbox:        worldBBox,
		status:      "geodraw ready",
		log:         log.With(slog.String("component", "tui")),
		exportPath:  cfg.ExportPath,
		tolerance:   cfg.HitTolerance,
		now:         time.Now,
	}
	m.host = NewHost(log)
	m.ctl = draw.New(m.host, cfg.DrawConfig(log))
	m.colorIdx = indexOf(palette, m.ctl.Options().Color)
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Import"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (LINESTRING, POLYGON). Press Enter to import; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath imports a file's features at launch.
func NewWithPath(cfg config.Config, log *slog.Logger, path string) Model {
	m := New(cfg, log)
	m.importPath(path)
	return m
}

// Controller exposes the draw controller behind the map.
func (m Model) Controller() *draw.Controller { return m.ctl }

func (m Model) Init() tea.Cmd { return nil }

// rect is a screen area in cells.
type rect struct{ x, y, w, h int }

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// mapRect is the map canvas area, shared by View and mouse handling.
func (m Model) mapRect() rect {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	r := rect{y: headerHeight, h: contentHeight}
	if m.showSidebar {
		r.x = sidebarWidth + 1
		r.w = max(10, contentWidth-sidebarWidth-1)
	} else {
		r.w = max(10, contentWidth-1)
	}
	return r
}

// syncTolerance keeps the select tolerance at one cell unless configured.
func (m *Model) syncTolerance() {
	if m.tolerance > 0 {
		m.ctl.SetHitTolerance(m.tolerance)
		return
	}
	m.ctl.SetHitTolerance(m.cellDegrees(m.mapRect().w))
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return 0
}
