package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseWKT reads a seed polyline from WKT.
// Supported: LINESTRING(x y, ...), MULTILINESTRING((x y, ...), ...), POLYGON((x y, ...), ...)
func ParseWKT(wkt string) ([]Segment, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) []Point {
		var out []Point
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.TrimSpace(tup))
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, Point{x, y})
		}
		return out
	}
	splitRings := func(block string) []string {
		// normalize spaces around ring separators
		norm := strings.ReplaceAll(block, "), (", "),(")
		norm = strings.ReplaceAll(norm, ") , (", "),(")
		return strings.Split(norm, "),(")
	}
	var segs []Segment
	switch {
	case strings.HasPrefix(up, "MULTILINESTRING"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, errors.New("wkt multilinestring: invalid")
		}
		for _, part := range splitRings(s[i+2 : j]) {
			segs = append(segs, Polyline(parseTuples(part), false)...)
		}
	case strings.HasPrefix(up, "LINESTRING"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return nil, errors.New("wkt linestring: invalid")
		}
		segs = Polyline(parseTuples(s[i+1:j]), false)
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, errors.New("wkt polygon: invalid")
		}
		for _, ring := range splitRings(s[i+2 : j]) {
			segs = append(segs, Polyline(parseTuples(ring), true)...)
		}
	case strings.HasPrefix(up, "POINT"), strings.HasPrefix(up, "MULTIPOINT"):
		return nil, errors.New("wkt: points cannot seed a curve")
	default:
		return nil, errors.New("unsupported wkt type")
	}
	if len(segs) == 0 {
		return nil, errors.New("wkt: no segments parsed")
	}
	return segs, nil
}

// FormatWKT writes segs as a MULTILINESTRING, one line string per connected
// run of segments.
func FormatWKT(segs []Segment) string {
	chains := Chains(segs)
	if len(chains) == 0 {
		return "MULTILINESTRING EMPTY"
	}
	var b strings.Builder
	b.WriteString("MULTILINESTRING (")
	for i, ch := range chains {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for k, p := range ch {
			if k > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s %s", fmtFloat(p.X), fmtFloat(p.Y))
		}
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
