// Package export writes the current curve of a koch.Session to disk.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kochview/internal/geom"
	"kochview/internal/koch"
)

// Options tune raster output.
type Options struct {
	// PNGScale multiplies the session's device size for .png output.
	PNGScale int
	// LineWidth is the stroke width in output pixels.
	LineWidth float64
}

// Formats lists the file extensions Write understands.
var Formats = []string{".wkt", ".geojson", ".json", ".csv", ".png"}

// Write stores snap at path. The format follows the extension; see Formats.
func Write(path string, snap koch.Snapshot, opts Options) error {
	if len(snap.Segments) == 0 {
		return fmt.Errorf("export %s: nothing drawn", filepath.Base(path))
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return writePNG(path, snap, opts)
	case ".wkt", ".geojson", ".json", ".csv":
	default:
		return fmt.Errorf("export %s: unsupported format %q", filepath.Base(path), ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	switch ext {
	case ".wkt":
		_, err = fmt.Fprintln(w, geom.FormatWKT(snap.Segments))
	case ".geojson", ".json":
		err = geom.WriteGeoJSON(w, snap.Segments, properties(snap))
	case ".csv":
		err = geom.WriteCSV(w, snap.Segments)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// no partial files
		os.Remove(path)
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	return nil
}

func properties(snap koch.Snapshot) map[string]any {
	vp := snap.Viewport
	return map[string]any{
		"mode":       snap.Mode.String(),
		"generation": len(snap.History) - 1,
		"segments":   len(snap.Segments),
		"viewport":   []float64{vp.XLL, vp.YLL, vp.XUR, vp.YUR},
	}
}

func writePNG(path string, snap koch.Snapshot, opts Options) error {
	scale := opts.PNGScale
	if scale <= 0 {
		scale = 1
	}
	lw := opts.LineWidth
	if lw <= 0 {
		lw = 1
	}
	vp, err := snap.Viewport.Scaled(scale)
	if err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	c := NewCanvas(vp.Width, vp.Height, lw)
	defer c.Close()
	koch.Render(c, vp, snap.Segments, nil)
	if err := c.SavePNG(path); err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	return nil
}
