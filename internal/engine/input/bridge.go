// Package input shares keyboard and mouse state between the event thread
// and the render thread.
package input

import (
	"maps"
	"sync"
)

// Key identifies a physical key. Values match SDL scancodes (USB HID usage IDs).
type Key uint32

// Keys used by the application.
const (
	KeyA      Key = 4
	KeyD      Key = 7
	KeyE      Key = 8
	KeyQ      Key = 20
	KeyS      Key = 22
	KeyW      Key = 26
	KeyEscape Key = 41
	KeySpace  Key = 44
	KeyF12    Key = 69
	KeyRight  Key = 79
	KeyLeft   Key = 80
	KeyDown   Key = 81
	KeyUp     Key = 82
)

// Snapshot is the input state handed to the render loop once per frame.
type Snapshot struct {
	Keys    map[Key]struct{}
	MouseDX float32
	MouseDY float32
}

// Pressed reports whether k was held when the snapshot was taken.
func (s Snapshot) Pressed(k Key) bool {
	_, ok := s.Keys[k]
	return ok
}

// Bridge holds the pressed-key set and the accumulated mouse motion.
// Each field has its own lock; a sample is not atomic across both.
type Bridge struct {
	keysMu sync.Mutex
	keys   map[Key]struct{}

	mouseMu sync.Mutex
	mouseDX float32
	mouseDY float32
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{
		keys: make(map[Key]struct{}, 10),
	}
}

// RecordKey applies a press or release transition.
func (b *Bridge) RecordKey(k Key, pressed bool) {
	b.keysMu.Lock()
	defer b.keysMu.Unlock()

	if pressed {
		b.keys[k] = struct{}{}
	} else {
		delete(b.keys, k)
	}
}

// AccumulateMouse adds one raw relative motion event.
func (b *Bridge) AccumulateMouse(dx, dy float32) {
	b.mouseMu.Lock()
	b.mouseDX += dx
	b.mouseDY += dy
	b.mouseMu.Unlock()
}

// Sample returns a copy of the pressed keys and the mouse motion since the
// previous sample, then zeroes the motion. Keys stay pressed until released.
func (b *Bridge) Sample() Snapshot {
	var s Snapshot

	b.keysMu.Lock()
	s.Keys = maps.Clone(b.keys)
	b.keysMu.Unlock()

	b.mouseMu.Lock()
	s.MouseDX, s.MouseDY = b.mouseDX, b.mouseDY
	b.mouseDX, b.mouseDY = 0, 0
	b.mouseMu.Unlock()

	return s
}
