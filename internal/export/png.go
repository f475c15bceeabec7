package export

import (
	"github.com/gogpu/gg"

	"kochview/internal/koch"
	"kochview/internal/viewport"
)

var (
	paper = gg.Hex("#FFE4C4")
	ink   = gg.Hex("#1F2937")
)

// Canvas is a koch.Surface backed by a software gg context. Segments are
// collected into one path and stroked when the image is read.
type Canvas struct {
	dc      *gg.Context
	pending int
	drawn   koch.Handle
	err     error
}

// NewCanvas returns a width x height canvas cleared to the paper color.
func NewCanvas(width, height int, lineWidth float64) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(ink.Color())
	dc.SetLineWidth(lineWidth)
	dc.SetLineCap(gg.LineCapRound)
	c := &Canvas{dc: dc}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	c.dc.ClearPath()
	c.dc.ClearWithColor(paper)
	c.pending = 0
}

func (c *Canvas) DrawSegment(a, b viewport.DevicePoint) koch.Handle {
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.pending++
	c.drawn++
	return c.drawn
}

func (c *Canvas) flush() error {
	if c.pending > 0 {
		c.pending = 0
		if err := c.dc.Stroke(); err != nil && c.err == nil {
			c.err = err
		}
	}
	return c.err
}

// SavePNG strokes pending segments and writes the image to path.
func (c *Canvas) SavePNG(path string) error {
	if err := c.flush(); err != nil {
		return err
	}
	return c.dc.SavePNG(path)
}

func (c *Canvas) Close() error { return c.dc.Close() }
