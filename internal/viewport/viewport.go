// Package viewport maps between world coordinates and device pixels.
//
// A Viewport is a world-space rectangle (lower-left XLL,YLL to upper-right
// XUR,YUR) stretched over a Width x Height device surface. Device y grows
// downward, world y grows upward. Values are immutable in practice: every
// policy returns a new Viewport and leaves the receiver alone, so a caller
// only adopts the result once it is known to be valid.
package viewport

import (
	"fmt"
	"math"

	"kochview/internal/geom"
)

// DevicePoint is a position on the render surface in pixels.
type DevicePoint struct {
	X float64
	Y float64
}

// DeviceRect is a drag rectangle given by two opposite corners.
type DeviceRect struct {
	P0 DevicePoint
	P1 DevicePoint
}

type Viewport struct {
	XLL, YLL float64
	XUR, YUR float64
	Width    int
	Height   int
}

// ConfigError reports a viewport or device size that cannot be mapped.
type ConfigError struct {
	Op     string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("viewport %s: %s", e.Op, e.Detail)
}

// New returns the reset viewport for a width x height device: the lower-left
// corner is the world origin and the shorter device side spans one world unit.
func New(width, height int) (Viewport, error) {
	if width <= 0 || height <= 0 {
		return Viewport{}, &ConfigError{Op: "reset", Detail: fmt.Sprintf("device size %dx%d", width, height)}
	}
	scale := float64(min(width, height))
	v := Viewport{
		XUR:    float64(width) / scale,
		YUR:    float64(height) / scale,
		Width:  width,
		Height: height,
	}
	return v, nil
}

// Validate rejects rectangles that would divide by zero or carry NaN/Inf
// into the mapping.
func (v Viewport) Validate() error {
	for _, f := range []float64{v.XLL, v.YLL, v.XUR, v.YUR} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &ConfigError{Op: "validate", Detail: "non-finite bounds"}
		}
	}
	switch {
	case v.Width <= 0 || v.Height <= 0:
		return &ConfigError{Op: "validate", Detail: fmt.Sprintf("device size %dx%d", v.Width, v.Height)}
	case !(v.XUR > v.XLL):
		return &ConfigError{Op: "validate", Detail: fmt.Sprintf("empty x range [%g, %g]", v.XLL, v.XUR)}
	case !(v.YUR > v.YLL):
		return &ConfigError{Op: "validate", Detail: fmt.Sprintf("empty y range [%g, %g]", v.YLL, v.YUR)}
	}
	return nil
}

func (v Viewport) ToWorld(p DevicePoint) geom.Point {
	return geom.Point{
		X: p.X/float64(v.Width)*(v.XUR-v.XLL) + v.XLL,
		Y: v.YUR - p.Y/float64(v.Height)*(v.YUR-v.YLL),
	}
}

func (v Viewport) ToDevice(p geom.Point) DevicePoint {
	return DevicePoint{
		X: (p.X - v.XLL) / (v.XUR - v.XLL) * float64(v.Width),
		Y: (v.YUR - p.Y) / (v.YUR - v.YLL) * float64(v.Height),
	}
}

// PixelSize is the world length of the diagonal of one device pixel.
func (v Viewport) PixelSize() float64 {
	return geom.Dist(v.ToWorld(DevicePoint{0, 0}), v.ToWorld(DevicePoint{1, 1}))
}

// Center returns the world point in the middle of the rectangle.
func (v Viewport) Center() geom.Point {
	return geom.Point{X: (v.XLL + v.XUR) / 2, Y: (v.YLL + v.YUR) / 2}
}

// ZoomIn maps the drag rectangle to world space and anchors a new window at
// its lower-left corner. The larger of the two implied scales wins, so the
// result keeps the device aspect ratio even when the drag does not.
func (v Viewport) ZoomIn(r DeviceRect) (Viewport, error) {
	if err := v.Validate(); err != nil {
		return v, err
	}
	w0 := v.ToWorld(r.P0)
	w1 := v.ToWorld(r.P1)
	return v.window(w0, w1, "zoom in")
}

// Fit frames b the way ZoomIn frames a drag rectangle, after growing b by
// margin times its span on every side. A zero-size box is framed around its
// center using the current window span.
func (v Viewport) Fit(b geom.BBox, margin float64) (Viewport, error) {
	if err := v.Validate(); err != nil {
		return v, err
	}
	w, h := b.Width(), b.Height()
	if w == 0 && h == 0 {
		w, h = v.XUR-v.XLL, v.YUR-v.YLL
		b = geom.BBox{MinX: b.MinX - w/2, MinY: b.MinY - h/2, MaxX: b.MaxX + w/2, MaxY: b.MaxY + h/2}
		w, h = b.Width(), b.Height()
	}
	mx, my := w*margin, h*margin
	lo := geom.Point{X: b.MinX - mx, Y: b.MinY - my}
	hi := geom.Point{X: b.MaxX + mx, Y: b.MaxY + my}
	n, err := v.window(lo, hi, "fit")
	if err != nil {
		return v, err
	}
	// center the box along the axis that did not set the scale
	c := geom.Point{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2}
	d := c.Sub(n.Center())
	n.XLL, n.XUR = n.XLL+d.X, n.XUR+d.X
	n.YLL, n.YUR = n.YLL+d.Y, n.YUR+d.Y
	return n, nil
}

func (v Viewport) window(w0, w1 geom.Point, op string) (Viewport, error) {
	n := v
	n.XLL, n.YLL = math.Min(w0.X, w1.X), math.Min(w0.Y, w1.Y)
	scale := math.Max(math.Abs(w0.X-w1.X)/float64(v.Width), math.Abs(w0.Y-w1.Y)/float64(v.Height))
	n.XUR = n.XLL + scale*float64(v.Width)
	n.YUR = n.YLL + scale*float64(v.Height)
	if err := n.Validate(); err != nil {
		return v, &ConfigError{Op: op, Detail: err.(*ConfigError).Detail}
	}
	return n, nil
}

// ZoomOut doubles both spans around the current center.
func (v Viewport) ZoomOut() (Viewport, error) {
	if err := v.Validate(); err != nil {
		return v, err
	}
	dx := (v.XUR - v.XLL) / 2
	dy := (v.YUR - v.YLL) / 2
	n := v
	n.XLL, n.XUR = v.XLL-dx, v.XUR+dx
	n.YLL, n.YUR = v.YLL-dy, v.YUR+dy
	if err := n.Validate(); err != nil {
		return v, &ConfigError{Op: "zoom out", Detail: err.(*ConfigError).Detail}
	}
	return n, nil
}

// Resize keeps the world rectangle and changes the device it maps onto.
func (v Viewport) Resize(width, height int) (Viewport, error) {
	n := v
	n.Width, n.Height = width, height
	if err := n.Validate(); err != nil {
		return v, err
	}
	return n, nil
}

// MaxScaledSide bounds each side of a Scaled device.
const MaxScaledSide = 1 << 14

// Scaled multiplies the device size by k; the world rectangle is unchanged,
// so a curve drawn through the result looks the same at k times the pixels.
func (v Viewport) Scaled(k int) (Viewport, error) {
	if k < 1 || v.Width > MaxScaledSide/k || v.Height > MaxScaledSide/k {
		return v, &ConfigError{Op: "scale", Detail: fmt.Sprintf("%dx%d times %d exceeds %d pixels a side", v.Width, v.Height, k, MaxScaledSide)}
	}
	return v.Resize(v.Width*k, v.Height*k)
}
