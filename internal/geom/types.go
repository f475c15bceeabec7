package geom

import "math"

// Point is a location in world coordinates. Y grows upward.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Segment is a directed pair of points. The direction decides on which side
// Evolve builds the apex.
type Segment struct {
	P0 Point
	P1 Point
}

// Length returns the euclidean length of s.
func (s Segment) Length() float64 { return Dist(s.P0, s.P1) }

// Dist returns ||a-b||.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// extend grows b to contain p. first reports whether b is still unset.
func (b *BBox) extend(p Point, first bool) {
	if first {
		*b = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
		return
	}
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
}

// Bounds returns the bounding box of every endpoint in segs. ok is false
// when segs is empty.
func Bounds(segs []Segment) (bb BBox, ok bool) {
	for i, s := range segs {
		bb.extend(s.P0, i == 0)
		bb.extend(s.P1, false)
	}
	return bb, len(segs) > 0
}

// MinMaxLength returns the shortest and longest segment lengths in segs.
func MinMaxLength(segs []Segment) (lo, hi float64) {
	for i, s := range segs {
		l := s.Length()
		if i == 0 || l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}
	return lo, hi
}

// Polyline turns consecutive vertices into segments. A closed ring gets an
// extra segment back to its first vertex unless it already ends there.
func Polyline(pts []Point, closed bool) []Segment {
	if len(pts) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(pts))
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, Segment{pts[i], pts[i+1]})
	}
	if closed && pts[0] != pts[len(pts)-1] {
		out = append(out, Segment{pts[len(pts)-1], pts[0]})
	}
	return out
}

// Chains splits segs into runs where each segment starts at the previous
// one's end. Writers use it to emit one line string per run.
func Chains(segs []Segment) [][]Point {
	var out [][]Point
	var cur []Point
	for _, s := range segs {
		if len(cur) > 0 && cur[len(cur)-1] == s.P0 {
			cur = append(cur, s.P1)
			continue
		}
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = []Point{s.P0, s.P1}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
