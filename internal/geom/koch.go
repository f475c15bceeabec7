package geom

import "math"

var (
	sin60 = math.Sqrt(3) / 2
	cos60 = 0.5
)

// Rotate60 rotates b counter-clockwise by 60 degrees about origin a.
func Rotate60(a, b Point) Point {
	d := b.Sub(a)
	return Point{
		X: cos60*d.X - sin60*d.Y,
		Y: sin60*d.X + cos60*d.Y,
	}.Add(a)
}

// Trisect returns the trisection points of s nearer P0 and nearer P1.
func Trisect(s Segment) (a, b Point) {
	a = Point{(2*s.P0.X + s.P1.X) / 3, (2*s.P0.Y + s.P1.Y) / 3}
	b = Point{(s.P0.X + 2*s.P1.X) / 3, (s.P0.Y + 2*s.P1.Y) / 3}
	return a, b
}

// Triangle returns the closed equilateral triangle built on p0-p1 with its
// apex on the counter-clockwise side.
func Triangle(p0, p1 Point) []Segment {
	c := Rotate60(p0, p1)
	return []Segment{{p0, c}, {c, p1}, {p1, p0}}
}

// Evolve applies one Koch generation: every segment P0-P1 is replaced by
// P0-A, A-C, C-B, B-P1 where A and B trisect it and C is the apex. The input
// is not modified. Zero length segments yield zero length output.
func Evolve(segs []Segment) []Segment {
	out := make([]Segment, 0, 4*len(segs))
	for _, s := range segs {
		a, b := Trisect(s)
		c := Rotate60(a, b)
		out = append(out,
			Segment{s.P0, a},
			Segment{a, c},
			Segment{c, b},
			Segment{b, s.P1},
		)
	}
	return out
}
