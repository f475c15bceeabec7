package tui

import (
	"log/slog"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"kochview/internal/koch"
	"kochview/internal/viewport"
)

// Config carries the command line settings into the program.
type Config struct {
	Mode        koch.Mode
	MaxSegments int
	// Out is where "s" writes the curve; the extension picks the format.
	Out      string
	PNGScale int
	Logger   *slog.Logger
}

// drag tracks a left button gesture from press to release.
type drag struct {
	active bool
	moved  bool
	start  viewport.DevicePoint
	cur    viewport.DevicePoint
	// cell coordinates inside the map, for the rectangle outline
	startCX, startCY int
	curCX, curCY     int
}

type Model struct {
	width  int
	height int

	cfg Config
	log *slog.Logger

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Curve
	session *koch.Session
	surf    *brailleSurface
	mode    koch.Mode

	// map size in cells, kept in sync with the session's device size
	mapW int
	mapH int

	drag drag

	// double click detection
	clock     func() time.Time
	lastPress time.Time
	lastCX    int
	lastCY    int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// generation statistics
	showStats bool
	tbl       table.Model

	// hover state
	hovering    bool
	hoverX      float64
	hoverY      float64
	pendingPath string
}

func New(cfg Config) Model {
	if cfg.Out == "" {
		cfg.Out = "koch.geojson"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	m := Model{
		cfg:         cfg,
		log:         cfg.Logger,
		helpVisible: true,
		status:      "drag to draw a seed",
		mode:        cfg.Mode,
		surf:        newBrailleSurface(),
		clock:       time.Now,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Seeds"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a WKT seed here (LINESTRING, MULTILINESTRING, POLYGON). Press Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// statistics table setup
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(statColumns))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a seed file at launch. The file is applied once the
// terminal size is known.
func NewWithPath(cfg Config, path string) Model {
	m := New(cfg)
	m.pendingPath = path
	return m
}

func (m Model) Init() tea.Cmd { return nil }
