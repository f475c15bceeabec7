package geom

import (
	"encoding/json"
	"errors"
	"io"
	"os"
)

// LoadGeo reads a GeoJSON file and returns its line work as segments.
func LoadGeo(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON accepts LineString, MultiLineString, Polygon and MultiPolygon
// geometries, bare or wrapped in a Feature or FeatureCollection. Points are
// skipped.
func ParseGeoJSON(data []byte) ([]Segment, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var segs []Segment
	parsePoint := func(v any) (pt Point, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return Point{x, y}, true
			}
		}
		return Point{}, false
	}
	parseLineString := func(v any) (ls []Point, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ls = append(ls, pt)
			}
		}
		return ls, true
	}
	parseRings := func(v any) (rings [][]Point, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if ls, ok := parseLineString(el); ok {
				rings = append(rings, ls)
			}
		}
		return rings, true
	}
	var walkGeom func(g map[string]any)
	walkGeom = func(g map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "LineString":
			if ls, ok := parseLineString(g["coordinates"]); ok {
				segs = append(segs, Polyline(ls, false)...)
			}
		case "MultiLineString":
			if mls, ok := parseRings(g["coordinates"]); ok {
				for _, ls := range mls {
					segs = append(segs, Polyline(ls, false)...)
				}
			}
		case "Polygon":
			if rings, ok := parseRings(g["coordinates"]); ok {
				for _, r := range rings {
					segs = append(segs, Polyline(r, true)...)
				}
			}
		case "MultiPolygon":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if rings, ok := parseRings(el); ok {
						for _, r := range rings {
							segs = append(segs, Polyline(r, true)...)
						}
					}
				}
			}
		case "GeometryCollection":
			if gs, ok := g["geometries"].([]any); ok {
				for _, sub := range gs {
					if sm, ok := sub.(map[string]any); ok {
						walkGeom(sm)
					}
				}
			}
		}
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					if g, ok := fm["geometry"].(map[string]any); ok {
						walkGeom(g)
					}
				}
			}
		}
	case "":
		return nil, errors.New("invalid geojson: missing type")
	default:
		walkGeom(raw)
	}
	if len(segs) == 0 {
		return nil, errors.New("no line geometries found")
	}
	return segs, nil
}

type geoFeature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   geoGeometry    `json:"geometry"`
}

type geoGeometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// WriteGeoJSON writes segs as a single Feature with a MultiLineString
// geometry. props end up in the feature's properties.
func WriteGeoJSON(w io.Writer, segs []Segment, props map[string]any) error {
	chains := Chains(segs)
	coords := make([][][2]float64, 0, len(chains))
	for _, ch := range chains {
		ls := make([][2]float64, len(ch))
		for i, p := range ch {
			ls[i] = [2]float64{p.X, p.Y}
		}
		coords = append(coords, ls)
	}
	if props == nil {
		props = map[string]any{}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(geoFeature{
		Type:       "Feature",
		Properties: props,
		Geometry:   geoGeometry{Type: "MultiLineString", Coordinates: coords},
	})
}
