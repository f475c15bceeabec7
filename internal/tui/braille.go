package tui

import (
	"math"

	"kochview/internal/koch"
	"kochview/internal/viewport"
)

// brailleBuf is a grid of braille cells, each holding 2x4 micro-pixels.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// clear unsets every micro-pixel.
func (b *brailleBuf) clear() {
	for y := range b.m {
		clear(b.m[y])
	}
}

// microSize returns the grid size in micro-pixels.
func (b *brailleBuf) microSize() (int, int) { return b.w * 2, b.h * 4 }

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

// brailleSurface draws koch segments on a brailleBuf. One device pixel is
// one micro-pixel, so a w x h cell map is a 2w x 4h device.
type brailleSurface struct {
	buf   *brailleBuf
	drawn koch.Handle
}

func newBrailleSurface() *brailleSurface {
	return &brailleSurface{buf: newBrailleBuf(0, 0)}
}

// resize reallocates the grid for a w x h cell map and reports the device
// size.
func (s *brailleSurface) resize(w, h int) (int, int) {
	s.buf = newBrailleBuf(w, h)
	return s.buf.microSize()
}

func (s *brailleSurface) Clear() {
	s.buf.clear()
}

func (s *brailleSurface) DrawSegment(a, b viewport.DevicePoint) koch.Handle {
	s.drawn++
	w, h := s.buf.microSize()
	a, b, ok := clipSegment(a, b, float64(w), float64(h))
	if !ok {
		return s.drawn
	}
	s.buf.drawLineMicro(int(math.Floor(a.X)), int(math.Floor(a.Y)), int(math.Floor(b.X)), int(math.Floor(b.Y)))
	return s.drawn
}

// clipSegment cuts a-b to the device rectangle [0,w]x[0,h] (Liang-Barsky).
// Zoomed-in curves put endpoints far outside the grid; clipping keeps the
// Bresenham walk bounded by the grid size.
func clipSegment(a, b viewport.DevicePoint, w, h float64) (viewport.DevicePoint, viewport.DevicePoint, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := b.X-a.X, b.Y-a.Y
	edges := [4][2]float64{
		{-dx, a.X},
		{dx, w - a.X},
		{-dy, a.Y},
		{dy, h - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		return a, b, false
	}
	na := viewport.DevicePoint{X: a.X + t0*dx, Y: a.Y + t0*dy}
	nb := viewport.DevicePoint{X: a.X + t1*dx, Y: a.Y + t1*dy}
	return na, nb, true
}
