package window

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/heliscene/internal/engine/input"
)

// PumpEvents waits up to timeout for platform events and forwards key
// transitions to the bridge. Mouse motion is forwarded only while the
// mouse is grabbed; Space toggles the grab.
// It returns true when the user asked to quit (window close or Escape).
func (w *Window) PumpEvents(b *input.Bridge, timeout time.Duration) bool {
	event := sdl.WaitEventTimeout(int(timeout / time.Millisecond))
	for ; event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.log.Debug("close requested")
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				w.log.Debug("close requested")
				return true
			}

		case *sdl.KeyboardEvent:
			key := input.Key(e.Keysym.Scancode)
			pressed := e.Type == sdl.KEYDOWN
			b.RecordKey(key, pressed)
			if !pressed || e.Repeat != 0 {
				continue
			}
			switch key {
			case input.KeyEscape:
				w.log.Debug("escape pressed")
				return true
			case input.KeySpace:
				w.SetGrabMouse(!w.grabbed)
			}

		case *sdl.MouseMotionEvent:
			if w.grabbed {
				b.AccumulateMouse(float32(e.XRel), float32(e.YRel))
			}
		}
	}
	return false
}

// SetGrabMouse switches relative mouse mode on or off.
func (w *Window) SetGrabMouse(grab bool) {
	sdl.SetRelativeMouseMode(grab)
	w.grabbed = grab
	w.log.Debug("mouse grab", zap.Bool("grab", grab))
}
