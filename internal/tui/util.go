package tui

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// drawRect outlines the cell rectangle spanned by two corners.
func drawRect(buf []string, x0, y0, x1, y1 int) {
	drawLine(buf, x0, y0, x1, y0)
	drawLine(buf, x1, y0, x1, y1)
	drawLine(buf, x1, y1, x0, y1)
	drawLine(buf, x0, y1, x0, y0)
	for _, c := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		setGlyph(buf, c[0], c[1], '┼')
	}
}

func setGlyph(buf []string, x, y int, g rune) {
	if y < 0 || y >= len(buf) {
		return
	}
	r := []rune(buf[y])
	if x < 0 || x >= len(r) {
		return
	}
	r[x] = g
	buf[y] = string(r)
}

// drawLine draws a line between two cell coordinates using box glyphs.
func drawLine(buf []string, x0, y0, x1, y1 int) {
	if y0 < 0 && y1 < 0 {
		return
	}
	if y0 >= len(buf) && y1 >= len(buf) {
		return
	}
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
		glyph := '•'
		switch {
		case dx > 0 && dy == 0:
			glyph = '─'
		case dx == 0 && dy != 0:
			glyph = '│'
		case (sx > 0) == (sy > 0):
			glyph = '╲'
		default:
			glyph = '╱'
		}
		setGlyph(buf, x0, y0, glyph)
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
