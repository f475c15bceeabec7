package geom

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseWKT(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"linestring", "LINESTRING (0 0, 1 0, 1 1)", 2},
		{"lower case", "linestring(0 0,1 0)", 1},
		{"multi", "MULTILINESTRING ((0 0, 1 0), (2 2, 3 3, 4 4))", 3},
		{"polygon open ring", "POLYGON ((0 0, 1 0, 0 1))", 3},
		{"polygon closed ring", "POLYGON ((0 0, 1 0, 0 1, 0 0))", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := ParseWKT(tt.in)
			if err != nil {
				t.Fatalf("ParseWKT: %v", err)
			}
			if len(segs) != tt.want {
				t.Errorf("got %d segments, want %d", len(segs), tt.want)
			}
		})
	}
	for _, bad := range []string{"", "POINT (1 2)", "CIRCLE(1)", "LINESTRING (1 2)", "LINESTRING 1 2"} {
		if _, err := ParseWKT(bad); err == nil {
			t.Errorf("ParseWKT(%q) succeeded", bad)
		}
	}
}

func TestFormatWKT(t *testing.T) {
	if got := FormatWKT(nil); got != "MULTILINESTRING EMPTY" {
		t.Errorf("FormatWKT(nil) = %q", got)
	}
	segs := Evolve(Triangle(Point{0, 0}, Point{1, 0}))
	back, err := ParseWKT(FormatWKT(segs))
	if err != nil {
		t.Fatalf("ParseWKT: %v", err)
	}
	if len(back) != len(segs) {
		t.Fatalf("got %d segments, want %d", len(back), len(segs))
	}
	for i := range segs {
		if back[i] != segs[i] {
			t.Errorf("segment %d = %v, want %v", i, back[i], segs[i])
		}
	}
}

func TestGeoJSON(t *testing.T) {
	in := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[9,9]}},
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,0]]}},
		{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[2,0],[1,1],[0,0]]]}}
	]}`
	segs, err := ParseGeoJSON([]byte(in))
	if err != nil {
		t.Fatalf("ParseGeoJSON: %v", err)
	}
	if len(segs) != 4 {
		t.Fatalf("got %d segments, want 4", len(segs))
	}
	if _, err := ParseGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`)); err == nil {
		t.Errorf("point-only geojson accepted")
	}
	if _, err := ParseGeoJSON([]byte(`{}`)); err == nil {
		t.Errorf("untyped geojson accepted")
	}

	var buf bytes.Buffer
	if err := WriteGeoJSON(&buf, segs, map[string]any{"generation": 0}); err != nil {
		t.Fatalf("WriteGeoJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"MultiLineString"`) {
		t.Errorf("output lacks MultiLineString: %s", buf.String())
	}
	back, err := ParseGeoJSON(buf.Bytes())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(back) != len(segs) {
		t.Errorf("reparsed %d segments, want %d", len(back), len(segs))
	}
}

func TestCSV(t *testing.T) {
	segs := Triangle(Point{0, 0}, Point{1, 0})
	var buf bytes.Buffer
	if err := WriteCSV(&buf, segs); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "x0,y0,x1,y1\n") {
		t.Errorf("unexpected header: %q", buf.String())
	}
	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	for i := range segs {
		if back[i] != segs[i] {
			t.Errorf("segment %d = %v, want %v", i, back[i], segs[i])
		}
	}

	// column order is free and bad rows are skipped
	in := "name,Y1,X1,y0,x0\na,1,2,3,4\nb,oops,2,3,4\n"
	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != 1 || got[0] != (Segment{Point{4, 3}, Point{2, 1}}) {
		t.Errorf("got %v", got)
	}
	if _, err := ReadCSV(strings.NewReader("lat,lon\n1,2\n")); err == nil {
		t.Errorf("csv without segment columns accepted")
	}
}

func TestKML(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document><Folder>
<Placemark><Point><coordinates>5,5</coordinates></Point></Placemark>
<Placemark><LineString><coordinates>0,0,0 1,0,0 1,1,0</coordinates></LineString></Placemark>
<Placemark><Polygon><outerBoundaryIs><LinearRing><coordinates>
0,0 2,0 1,1 0,0
</coordinates></LinearRing></outerBoundaryIs></Polygon></Placemark>
</Folder></Document></kml>`
	segs, err := ReadKML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadKML: %v", err)
	}
	if len(segs) != 5 {
		t.Errorf("got %d segments, want 5", len(segs))
	}
	if _, err := ReadKML(strings.NewReader(`<kml><Placemark><Point><coordinates>1,2</coordinates></Point></Placemark></kml>`)); err == nil {
		t.Errorf("point-only kml accepted")
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	if segs, err := LoadGeo(write("a.geojson", `{"type":"LineString","coordinates":[[0,0],[1,1]]}`)); err != nil || len(segs) != 1 {
		t.Errorf("LoadGeo = %v, %v", segs, err)
	}
	if segs, err := LoadCSV(write("a.csv", "x0,y0,x1,y1\n0,0,1,1\n")); err != nil || len(segs) != 1 {
		t.Errorf("LoadCSV = %v, %v", segs, err)
	}
	if segs, err := LoadKML(write("a.kml", `<kml><LineString><coordinates>0,0 1,1</coordinates></LineString></kml>`)); err != nil || len(segs) != 1 {
		t.Errorf("LoadKML = %v, %v", segs, err)
	}
	if _, err := LoadGeo(filepath.Join(dir, "missing.geojson")); err == nil {
		t.Errorf("LoadGeo of a missing file succeeded")
	}
}
