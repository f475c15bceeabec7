package tui

import (
	"fmt"
	"strings"

	"kochview/internal/koch"
	"kochview/internal/viewport"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and the mouse handler.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var l layout
	if m.showSidebar {
		l.sidebarW = sidebarWidth
	}
	l.contentH = max(4, m.height-headerHeight-footerHeight)
	l.contentW = max(10, m.width)
	l.mapW = max(10, l.contentW-l.sidebarW-1)
	l.mapH = l.contentH
	if m.showSidebar {
		l.mapX = l.sidebarW + 1
	}
	l.mapY = headerHeight
	return l
}

// cellToDevice maps a terminal cell inside the map to the device point at
// the middle of its 2x4 micro-pixels.
func cellToDevice(cx, cy int) viewport.DevicePoint {
	return viewport.DevicePoint{X: float64(cx*2 + 1), Y: float64(cy*4 + 2)}
}

// syncSize keeps the braille grid and the session's device in step with the
// map area. A changed size resets the curve, like a resized canvas.
func (m *Model) syncSize() {
	l := m.layout()
	if m.session != nil && l.mapW == m.mapW && l.mapH == m.mapH {
		return
	}
	m.mapW, m.mapH = l.mapW, l.mapH
	dw, dh := m.surf.resize(l.mapW, l.mapH)
	if m.session == nil {
		s, err := koch.New(m.surf, dw, dh,
			koch.WithMode(m.mode),
			koch.WithMaxSegments(m.cfg.MaxSegments),
			koch.WithLogger(m.cfg.Logger),
		)
		if err != nil {
			m.status = "canvas error: " + err.Error()
			return
		}
		m.session = s
		if m.pendingPath != "" {
			m.loadPath(m.pendingPath)
			m.pendingPath = ""
		}
		return
	}
	m.drag = drag{}
	if err := m.session.OnResize(dw, dh); err != nil {
		m.status = "canvas error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("canvas %dx%d: drag to draw a seed", dw, dh)
}

// renderCanvas draws the braille grid plus the zoom rectangle outline
// while one is being dragged.
func (m Model) renderCanvas(w, h int) string {
	lines := m.surf.buf.toLines()
	for len(lines) < h {
		lines = append(lines, "")
	}
	for y := range lines {
		if n := len([]rune(lines[y])); n < w {
			lines[y] += strings.Repeat(" ", w-n)
		}
	}
	if m.zoomDragging() {
		drawRect(lines, m.drag.startCX, m.drag.startCY, m.drag.curCX, m.drag.curCY)
	}
	return strings.Join(lines[:h], "\n")
}

func (m Model) zoomDragging() bool {
	return m.drag.active && m.drag.moved && m.session != nil && m.session.State() == koch.Seeded
}
