package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

var csvHeader = []string{"x0", "y0", "x1", "y1"}

// LoadCSV reads segments from a CSV file with x0,y0,x1,y1 columns
// (case-insensitive, any order, extra columns ignored).
func LoadCSV(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func ReadCSV(r io.Reader) ([]Segment, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idx := map[string]int{}
	for i, h := range recs[0] {
		lh := strings.ToLower(strings.TrimSpace(h))
		if _, seen := idx[lh]; !seen {
			idx[lh] = i
		}
	}
	cols := make([]int, len(csvHeader))
	for i, name := range csvHeader {
		c, ok := idx[name]
		if !ok {
			return nil, errors.New("csv: x0,y0,x1,y1 columns not found")
		}
		cols[i] = c
	}
	var segs []Segment
	for _, row := range recs[1:] {
		var v [4]float64
		ok := true
		for i, c := range cols {
			if c >= len(row) {
				ok = false
				break
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				ok = false
				break
			}
			v[i] = f
		}
		if !ok {
			continue
		}
		segs = append(segs, Segment{Point{v[0], v[1]}, Point{v[2], v[3]}})
	}
	if len(segs) == 0 {
		return nil, errors.New("csv: no valid segments parsed")
	}
	return segs, nil
}

// WriteCSV writes one row per segment under an x0,y0,x1,y1 header.
func WriteCSV(w io.Writer, segs []Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range segs {
		row := []string{fmtFloat(s.P0.X), fmtFloat(s.P0.Y), fmtFloat(s.P1.X), fmtFloat(s.P1.Y)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
