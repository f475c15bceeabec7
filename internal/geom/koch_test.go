package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func nearPoint(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestRotate60(t *testing.T) {
	got := Rotate60(Point{}, Point{1, 0})
	want := Point{0.5, math.Sqrt(3) / 2}
	if !nearPoint(got, want) {
		t.Fatalf("Rotate60((0,0),(1,0)) = %v, want %v", got, want)
	}
	// rotating about a shifted origin is a translation of the same result
	got = Rotate60(Point{2, 3}, Point{3, 3})
	if !nearPoint(got, want.Add(Point{2, 3})) {
		t.Errorf("Rotate60 about (2,3) = %v", got)
	}
	// six rotations bring the point back
	p := Point{1.5, -0.25}
	for i := 0; i < 6; i++ {
		p = Rotate60(Point{}, p)
	}
	if !nearPoint(p, Point{1.5, -0.25}) {
		t.Errorf("six rotations ended at %v", p)
	}
}

func TestTrisect(t *testing.T) {
	a, b := Trisect(Segment{Point{0, 0}, Point{3, 6}})
	if !nearPoint(a, Point{1, 2}) || !nearPoint(b, Point{2, 4}) {
		t.Errorf("Trisect = %v %v", a, b)
	}
}

func TestEvolveLengthAndCount(t *testing.T) {
	tests := []struct {
		name string
		segs []Segment
	}{
		{"unit", []Segment{{Point{0, 0}, Point{1, 0}}}},
		{"diagonal", []Segment{{Point{-2, 5}, Point{7, -1}}}},
		{"triangle", Triangle(Point{0.1, 0.2}, Point{0.9, 0.2})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Evolve(tt.segs)
			if len(out) != 4*len(tt.segs) {
				t.Fatalf("len = %d, want %d", len(out), 4*len(tt.segs))
			}
			for i, s := range tt.segs {
				want := s.Length() / 3
				for k := 0; k < 4; k++ {
					if got := out[4*i+k].Length(); math.Abs(got-want) > 1e-9*math.Max(1, want) {
						t.Errorf("segment %d/%d length = %g, want %g", i, k, got, want)
					}
				}
				// the replacement path is connected and keeps the endpoints
				if out[4*i].P0 != s.P0 || out[4*i+3].P1 != s.P1 {
					t.Errorf("segment %d endpoints moved", i)
				}
				for k := 0; k < 3; k++ {
					if out[4*i+k].P1 != out[4*i+k+1].P0 {
						t.Errorf("segment %d broken between %d and %d", i, k, k+1)
					}
				}
			}
		})
	}
}

func TestEvolveApexSide(t *testing.T) {
	out := Evolve([]Segment{{Point{0, 0}, Point{3, 0}}})
	apex := out[1].P1
	if !nearPoint(apex, Point{1.5, math.Sqrt(3) / 2}) {
		t.Errorf("apex = %v", apex)
	}
	// reversing the segment puts the apex on the other side
	out = Evolve([]Segment{{Point{3, 0}, Point{0, 0}}})
	if out[1].P1.Y >= 0 {
		t.Errorf("reversed apex = %v, want below the axis", out[1].P1)
	}
}

func TestEvolveDegenerate(t *testing.T) {
	p := Point{0.3, 0.3}
	out := Evolve([]Segment{{p, p}})
	if len(out) != 4 {
		t.Fatalf("len = %d", len(out))
	}
	for _, s := range out {
		if s.P0 != p || s.P1 != p {
			t.Errorf("degenerate segment produced %v", s)
		}
	}
	if got := Evolve(nil); len(got) != 0 {
		t.Errorf("Evolve(nil) = %v", got)
	}
}

func TestEvolveDoesNotMutate(t *testing.T) {
	in := []Segment{{Point{0, 0}, Point{1, 1}}}
	orig := in[0]
	_ = Evolve(in)
	if in[0] != orig {
		t.Errorf("input modified: %v", in[0])
	}
}

func TestTriangle(t *testing.T) {
	tri := Triangle(Point{0, 0}, Point{1, 0})
	if len(tri) != 3 {
		t.Fatalf("len = %d", len(tri))
	}
	for i, s := range tri {
		if !near(s.Length(), 1) {
			t.Errorf("edge %d length = %g", i, s.Length())
		}
	}
	if tri[2].P1 != tri[0].P0 {
		t.Errorf("triangle not closed")
	}
}

func TestBoundsAndLengths(t *testing.T) {
	if _, ok := Bounds(nil); ok {
		t.Errorf("Bounds(nil) reported ok")
	}
	segs := []Segment{{Point{1, 2}, Point{-1, 0}}, {Point{4, -3}, Point{4, -2}}}
	bb, ok := Bounds(segs)
	if !ok || bb != (BBox{MinX: -1, MinY: -3, MaxX: 4, MaxY: 2}) {
		t.Errorf("Bounds = %+v %v", bb, ok)
	}
	lo, hi := MinMaxLength(segs)
	if !near(lo, 1) || !near(hi, math.Sqrt(8)) {
		t.Errorf("MinMaxLength = %g %g", lo, hi)
	}
}

func TestChains(t *testing.T) {
	segs := append(Triangle(Point{0, 0}, Point{1, 0}), Segment{Point{5, 5}, Point{6, 5}})
	ch := Chains(segs)
	if len(ch) != 2 {
		t.Fatalf("chains = %d, want 2", len(ch))
	}
	if len(ch[0]) != 4 || len(ch[1]) != 2 {
		t.Errorf("chain sizes = %d %d", len(ch[0]), len(ch[1]))
	}
	back := Polyline(ch[0], false)
	for i := range back {
		if back[i] != segs[i] {
			t.Errorf("segment %d = %v, want %v", i, back[i], segs[i])
		}
	}
}
