package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"kochview/internal/geom"
	"kochview/internal/koch"
	"kochview/internal/viewport"
)

// doubleClick is the longest gap between two presses on one cell that
// still counts as a double click.
const doubleClick = 400 * time.Millisecond

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncSize()
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case exportedMsg:
		if msg.err != nil {
			m.log.Warn("export failed", "path", msg.path, "err", msg.err)
			m.status = "export error: " + msg.err.Error()
		} else {
			m.status = "saved: " + msg.path
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				m.status = "paste cancelled"
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					m.status = "paste: empty"
					return m, nil
				}
				segs, err := geom.ParseWKT(w)
				if err != nil {
					m.status = "wkt error: " + err.Error()
					return m, nil
				}
				m.applySeed(segs, "pasted WKT")
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.session == nil {
			if s := msg.String(); s == "ctrl+c" || s == "q" || s == "esc" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "e", " ":
			m.evolve()
		case "z", "-", "_":
			m.zoomOut()
		case "r":
			m.reset()
		case "t":
			m.toggleMode()
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.syncSize()
			if m.showSidebar {
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
			return m, textarea.Blink
		case "s":
			return m, m.exportCmd()
		case "a":
			m.showStats = !m.showStats
			if m.showStats {
				m.refreshStats()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		}
	case tea.MouseMsg:
		if m.session == nil || m.pasteMode || m.showStats {
			break
		}
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

func (m *Model) handleMouse(msg tea.MouseMsg) {
	l := m.layout()
	cx, cy := msg.X-l.mapX, msg.Y-l.mapY
	inside := cx >= 0 && cx < l.mapW && cy >= 0 && cy < l.mapH
	// drags keep going when the pointer leaves the map
	cx = min(max(cx, 0), l.mapW-1)
	cy = min(max(cy, 0), l.mapH-1)
	p := cellToDevice(cx, cy)

	m.hovering = inside
	if inside {
		w := m.session.Viewport().ToWorld(p)
		m.hoverX, m.hoverY = w.X, w.Y
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !inside {
				return
			}
			if m.isDoubleClick(cx, cy) {
				m.drag = drag{}
				m.evolve()
				return
			}
			m.drag = drag{active: true, start: p, cur: p, startCX: cx, startCY: cy, curCX: cx, curCY: cy}
		case tea.MouseButtonRight:
			if inside {
				m.zoomOut()
			}
		}
	case tea.MouseActionMotion:
		if !m.drag.active {
			return
		}
		m.drag.cur, m.drag.curCX, m.drag.curCY = p, cx, cy
		if cx != m.drag.startCX || cy != m.drag.startCY {
			m.drag.moved = true
		}
		if m.drag.moved && m.session.State() == koch.Empty {
			m.session.Preview(m.drag.start, m.drag.cur)
		}
	case tea.MouseActionRelease:
		if !m.drag.active {
			return
		}
		m.drag.cur, m.drag.curCX, m.drag.curCY = p, cx, cy
		if cx != m.drag.startCX || cy != m.drag.startCY {
			m.drag.moved = true
		}
		d := m.drag
		m.drag = drag{}
		if !d.moved {
			return
		}
		if m.session.State() == koch.Empty {
			if _, err := m.session.OnSeedGesture(d.start, d.cur); err != nil {
				m.status = "seed error: " + err.Error()
				return
			}
			m.status = fmt.Sprintf("%s seed: %d segments  double click or e to evolve", m.mode, m.session.Len())
			return
		}
		if err := m.session.OnZoomInGesture(viewport.DeviceRect{P0: d.start, P1: d.cur}); err != nil {
			m.status = "zoom error: " + err.Error()
			return
		}
		m.status = m.zoomStatus("zoom in")
	}
}

func (m *Model) isDoubleClick(cx, cy int) bool {
	now := m.clock()
	double := m.session.State() == koch.Seeded &&
		!m.lastPress.IsZero() && now.Sub(m.lastPress) <= doubleClick &&
		cx == m.lastCX && cy == m.lastCY
	if double {
		m.lastPress = time.Time{}
	} else {
		m.lastPress, m.lastCX, m.lastCY = now, cx, cy
	}
	return double
}

func (m *Model) evolve() {
	if m.session.State() != koch.Seeded {
		m.status = "drag to draw a seed first"
		return
	}
	ok, err := m.session.OnEvolveTrigger()
	switch {
	case err != nil:
		m.status = "evolve error: " + err.Error()
	case !ok:
		m.status = fmt.Sprintf("generation %d: segments already finer than the screen; zoom in to go on", m.session.Generation())
	default:
		m.status = fmt.Sprintf("generation %d: %d segments", m.session.Generation(), m.session.Len())
	}
	if m.showStats {
		m.refreshStats()
	}
}

func (m *Model) zoomOut() {
	if err := m.session.OnZoomOutTrigger(); err != nil {
		if errors.Is(err, koch.ErrNotSeeded) {
			m.status = "nothing to zoom: drag to draw a seed"
			return
		}
		m.status = "zoom error: " + err.Error()
		return
	}
	m.status = m.zoomStatus("zoom out")
}

func (m Model) zoomStatus(op string) string {
	vp := m.session.Viewport()
	return fmt.Sprintf("%s: [%.4g, %.4g] - [%.4g, %.4g]", op, vp.XLL, vp.YLL, vp.XUR, vp.YUR)
}

func (m *Model) reset() {
	m.drag = drag{}
	if err := m.session.OnReset(); err != nil {
		m.status = "reset error: " + err.Error()
		return
	}
	if m.showStats {
		m.refreshStats()
	}
	m.status = "reset: drag to draw a seed"
}

// toggleMode switches between triangle and segment seeds. The seed mode is
// fixed per session, so this starts a new one on the same surface.
func (m *Model) toggleMode() {
	next := koch.ModeSegment
	if m.mode == koch.ModeSegment {
		next = koch.ModeTriangle
	}
	vp := m.session.Viewport()
	s, err := koch.New(m.surf, vp.Width, vp.Height,
		koch.WithMode(next),
		koch.WithMaxSegments(m.cfg.MaxSegments),
		koch.WithLogger(m.cfg.Logger),
	)
	if err != nil {
		m.status = "mode error: " + err.Error()
		return
	}
	m.surf.Clear()
	m.session, m.mode, m.drag = s, next, drag{}
	if m.showStats {
		m.refreshStats()
	}
	m.status = fmt.Sprintf("mode: %s  drag to draw a seed", next)
}

// applySeed loads segs as the new seed and reports it in the status line.
func (m *Model) applySeed(segs []geom.Segment, from string) {
	m.drag = drag{}
	if err := m.session.LoadSeed(segs); err != nil {
		m.status = "seed error: " + err.Error()
		return
	}
	if m.showStats {
		m.refreshStats()
	}
	m.status = fmt.Sprintf("%s: %d segments  double click or e to evolve", from, len(segs))
}
