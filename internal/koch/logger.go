package koch

import (
	"context"
	"log/slog"
)

// nopHandler discards every record. Enabled returns false so callers skip
// building attributes entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// WithLogger sets the logger a Session reports to. By default a Session is
// silent; nil restores that.
//
// Levels:
//   - [slog.LevelDebug]: per-event geometry (gesture points, pixel size,
//     candidate segment lengths)
//   - [slog.LevelInfo]: generation and segment count milestones, resets,
//     zoom changes
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l == nil {
			l = newNopLogger()
		}
		s.log = l
	}
}
