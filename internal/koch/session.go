// Package koch drives an interactive Koch curve: it owns the segment set and
// the viewport, turns UI gestures into seeds, zooms and generations, and
// redraws the result on a Surface.
//
// A Session moves between two states:
//
//	Empty  --OnSeedGesture-->   Seeded
//	Empty  --LoadSeed-->        Seeded
//	Seeded --OnEvolveTrigger--> Seeded  (segment set replaced unless sub-pixel)
//	Seeded --OnZoomInGesture--> Seeded
//	Seeded --OnZoomOutTrigger-> Seeded
//	any    --OnResize/OnReset-> Empty   (viewport reset, segments cleared)
//
// Every operation validates its input before touching any state, so a
// failed call leaves the Session exactly as it was.
package koch

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"kochview/internal/geom"
	"kochview/internal/viewport"
)

// ErrNotSeeded is returned by zoom requests before a seed exists.
var ErrNotSeeded = errors.New("koch: no seed drawn")

type State int

const (
	Empty State = iota
	Seeded
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Seeded:
		return "seeded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Mode selects how a drag becomes a seed.
type Mode int

const (
	// ModeTriangle seeds a closed equilateral triangle on the drag, which
	// evolves into the Koch snowflake.
	ModeTriangle Mode = iota
	// ModeSegment seeds the dragged segment alone, which evolves into a
	// single Koch edge.
	ModeSegment
)

func (m Mode) String() string {
	switch m {
	case ModeTriangle:
		return "triangle"
	case ModeSegment:
		return "segment"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "triangle", "snowflake":
		return ModeTriangle, nil
	case "segment", "edge":
		return ModeSegment, nil
	}
	return 0, fmt.Errorf("koch: unknown seed mode %q", s)
}

// Seed builds the seed segment set for a drag from p0 to p1.
func (m Mode) Seed(p0, p1 geom.Point) []geom.Segment {
	if m == ModeSegment {
		return []geom.Segment{{P0: p0, P1: p1}}
	}
	return geom.Triangle(p0, p1)
}

// Generation describes one accepted segment set. Index 0 is the seed.
type Generation struct {
	Index     int
	Segments  int
	MinLength float64
	MaxLength float64
	PixelSize float64
}

type Option func(*Session)

// WithMode picks the seed construction. The default is ModeTriangle.
func WithMode(m Mode) Option {
	return func(s *Session) { s.mode = m }
}

// WithMaxSegments discards any generation larger than n segments, on top of
// the resolution limit. n <= 0 disables the ceiling.
func WithMaxSegments(n int) Option {
	return func(s *Session) { s.maxSegments = n }
}

// Session is safe for concurrent use; each operation runs evolve-then-render
// under one lock, so no reader sees a half-replaced segment set.
type Session struct {
	mu          sync.Mutex
	surface     Surface
	log         *slog.Logger
	mode        Mode
	maxSegments int

	state   State
	vp      viewport.Viewport
	segs    []geom.Segment
	handles []Handle
	history []Generation
}

// New returns an Empty session whose viewport is reset to a width x height
// device.
func New(surface Surface, width, height int, opts ...Option) (*Session, error) {
	vp, err := viewport.New(width, height)
	if err != nil {
		return nil, err
	}
	s := &Session{
		surface: surface,
		log:     newNopLogger(),
		vp:      vp,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Preview draws the seed a drag from p0 to p1 would produce without
// committing it. It only has an effect while Empty; the segment set, Len and
// Snapshot stay empty until OnSeedGesture.
func (s *Session) Preview(p0, p1 viewport.DevicePoint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Empty {
		return false
	}
	seed := s.mode.Seed(s.vp.ToWorld(p0), s.vp.ToWorld(p1))
	s.handles = Render(s.surface, s.vp, seed, s.handles[:0])
	return true
}

// OnSeedGesture commits the seed for a drag from p0 to p1 and moves the
// session to Seeded. It reports false when a seed already exists.
func (s *Session) OnSeedGesture(p0, p1 viewport.DevicePoint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Empty {
		return false, nil
	}
	if err := s.vp.Validate(); err != nil {
		return false, err
	}
	w0, w1 := s.vp.ToWorld(p0), s.vp.ToWorld(p1)
	s.log.Debug("seed gesture", "mode", s.mode, "p0", p0, "p1", p1, "w0", w0, "w1", w1)
	s.seed(s.mode.Seed(w0, w1))
	return true, nil
}

// LoadSeed replaces whatever is drawn with segs given in world coordinates
// and frames them in the viewport.
func (s *Session) LoadSeed(segs []geom.Segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bb, ok := geom.Bounds(segs)
	if !ok {
		return errors.New("koch: empty seed")
	}
	vp, err := s.vp.Fit(bb, 0.1)
	if err != nil {
		return err
	}
	s.vp = vp
	s.log.Info("seed loaded", "segments", len(segs), "xll", vp.XLL, "yll", vp.YLL, "xur", vp.XUR, "yur", vp.YUR)
	s.seed(append([]geom.Segment(nil), segs...))
	return nil
}

func (s *Session) seed(segs []geom.Segment) {
	s.state = Seeded
	s.segs = segs
	s.history = []Generation{s.describe(0, segs)}
	s.log.Info("seeded", "mode", s.mode, "segments", len(segs))
	s.render()
}

// OnEvolveTrigger runs one generation. The result is discarded, and false
// returned, when every new segment is shorter than one device pixel under
// the current viewport or when it exceeds the segment ceiling.
func (s *Session) OnEvolveTrigger() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Seeded {
		return false, nil
	}
	if err := s.vp.Validate(); err != nil {
		return false, err
	}
	next := geom.Evolve(s.segs)
	px := s.vp.PixelSize()
	lo, hi := geom.MinMaxLength(next)
	s.log.Debug("evolve candidate", "segments", len(next), "pixel_size", px, "min_length", lo, "max_length", hi)
	if !(hi >= px) {
		s.log.Debug("segments finer than device resolution", "generation", len(s.history))
		return false, nil
	}
	if s.maxSegments > 0 && len(next) > s.maxSegments {
		s.log.Debug("segment ceiling reached", "segments", len(next), "max", s.maxSegments)
		return false, nil
	}
	s.segs = next
	g := Generation{Index: len(s.history), Segments: len(next), MinLength: lo, MaxLength: hi, PixelSize: px}
	s.history = append(s.history, g)
	s.log.Info("generation", "index", g.Index, "segments", g.Segments)
	s.render()
	return true, nil
}

// OnResize resets the viewport for a new device size and clears the curve.
func (s *Session) OnResize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vp, err := viewport.New(width, height)
	if err != nil {
		return err
	}
	s.reset(vp)
	return nil
}

// OnReset is OnResize with the current device size.
func (s *Session) OnReset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vp, err := viewport.New(s.vp.Width, s.vp.Height)
	if err != nil {
		return err
	}
	s.reset(vp)
	return nil
}

func (s *Session) reset(vp viewport.Viewport) {
	s.vp = vp
	s.state = Empty
	s.segs = nil
	s.history = nil
	s.surface.Clear()
	s.handles = s.handles[:0]
	s.log.Info("reset", "width", vp.Width, "height", vp.Height, "xur", vp.XUR, "yur", vp.YUR)
}

// OnZoomInGesture frames the dragged device rectangle.
func (s *Session) OnZoomInGesture(r viewport.DeviceRect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Seeded {
		return ErrNotSeeded
	}
	vp, err := s.vp.ZoomIn(r)
	if err != nil {
		return err
	}
	s.zoom("zoom in", vp)
	return nil
}

// OnZoomOutTrigger doubles the viewport around its center.
func (s *Session) OnZoomOutTrigger() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Seeded {
		return ErrNotSeeded
	}
	vp, err := s.vp.ZoomOut()
	if err != nil {
		return err
	}
	s.zoom("zoom out", vp)
	return nil
}

func (s *Session) zoom(op string, vp viewport.Viewport) {
	s.vp = vp
	s.log.Info(op, "xll", vp.XLL, "yll", vp.YLL, "xur", vp.XUR, "yur", vp.YUR, "pixel_size", vp.PixelSize())
	s.render()
}

// render clears the surface and draws the current segment set.
func (s *Session) render() {
	s.handles = Render(s.surface, s.vp, s.segs, s.handles[:0])
}

// Render clears surf and draws segs mapped through vp, appending the
// handles to dst.
func Render(surf Surface, vp viewport.Viewport, segs []geom.Segment, dst []Handle) []Handle {
	surf.Clear()
	for _, seg := range segs {
		a := vp.ToDevice(seg.P0)
		b := vp.ToDevice(seg.P1)
		dst = append(dst, surf.DrawSegment(a, b))
	}
	return dst
}

func (s *Session) describe(index int, segs []geom.Segment) Generation {
	lo, hi := geom.MinMaxLength(segs)
	return Generation{Index: index, Segments: len(segs), MinLength: lo, MaxLength: hi, PixelSize: s.vp.PixelSize()}
}

// Snapshot is a consistent copy of a Session's state.
type Snapshot struct {
	State    State
	Mode     Mode
	Viewport viewport.Viewport
	Segments []geom.Segment
	History  []Generation
}

// Snapshot copies the session state for readers on other goroutines.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:    s.state,
		Mode:     s.mode,
		Viewport: s.vp,
		Segments: append([]geom.Segment(nil), s.segs...),
		History:  append([]Generation(nil), s.history...),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) Viewport() viewport.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp
}

// Len returns the number of segments currently drawn.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.segs)
}

// Generation returns the index of the current generation, or -1 while Empty.
func (s *Session) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) - 1
}

// Handles returns the handles of the segments currently on the surface.
func (s *Session) Handles() []Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Handle(nil), s.handles...)
}
