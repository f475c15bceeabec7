package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadKML extracts LineString and LinearRing coordinates from a KML file.
func LoadKML(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadKML(f)
}

// ReadKML walks the whole document, so placemarks nested in Document or
// Folder elements are found too. Coordinates are "x,y[,z]"; z is ignored.
func ReadKML(r io.Reader) ([]Segment, error) {
	type kmlLine struct {
		Coordinates string `xml:"coordinates"`
	}
	parse := func(coords string) []Point {
		var pts []Point
		// coordinates hold tuples separated by whitespace
		for _, tuple := range strings.Fields(coords) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			x, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			y, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			pts = append(pts, Point{x, y})
		}
		return pts
	}
	var segs []Segment
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "LineString", "LinearRing":
			var l kmlLine
			if err := dec.DecodeElement(&l, &se); err != nil {
				return nil, err
			}
			segs = append(segs, Polyline(parse(l.Coordinates), se.Name.Local == "LinearRing")...)
		}
	}
	if len(segs) == 0 {
		return nil, errors.New("kml: no line strings found")
	}
	return segs, nil
}
