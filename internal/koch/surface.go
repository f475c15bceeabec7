package koch

import "kochview/internal/viewport"

// Handle identifies one primitive drawn on a Surface.
type Handle int

// Surface is what a Session draws on. Clear removes every primitive drawn
// so far; DrawSegment draws one line in device coordinates.
type Surface interface {
	Clear()
	DrawSegment(a, b viewport.DevicePoint) Handle
}
