// Package input implements the keyboard and mouse HAL behind INT 16h
// and INT 33h: a fixed-size circular keyboard buffer with per-scancode
// key-down tracking, an extended-key latch for CRT-style character
// reads, and clamped mouse position/button state.
package input

/*
 * civrecomp - keyboard and mouse input HAL
 *
 * Part of the Civilization static-recompilation execution core.
 */

// bufSize is the number of keyboard ring buffer slots. One slot always
// stays empty so that a full buffer can be told from an empty one, so
// at most bufSize-1 events are queued at a time.
const bufSize = 32

// Keyboard is a circular buffer of packed (scancode<<8 | ascii)
// entries plus a 256-entry per-scancode key-down table.
type Keyboard struct {
	buf  [bufSize]uint16
	head int
	tail int

	keyState [256]uint8

	// pendingExtended holds the scancode to return on the second half
	// of an extended-key read (spec §4.4): when the packed value is
	// nonzero but its ASCII byte is zero, getch-style readers return
	// 0 on the first call and the scancode on the next.
	pendingExtended uint8
	hasPending      bool
}

// NewKeyboard returns an empty keyboard with no keys pressed.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Push appends a (scancode, ascii) event to the buffer and marks the
// scancode pressed, or silently drops the event if the buffer is
// full. The buffer is FIFO; on overflow the tail is never overwritten.
func (k *Keyboard) Push(scancode, ascii uint8) {
	next := (k.tail + 1) % bufSize
	if next == k.head {
		return // full: drop
	}
	k.buf[k.tail] = uint16(scancode)<<8 | uint16(ascii)
	k.tail = next
	k.keyState[scancode] = 1
}

// Available reports whether at least one event is queued.
func (k *Keyboard) Available() bool {
	return k.head != k.tail
}

// Peek returns the head entry without consuming it. The second
// return value is false if the buffer is empty.
func (k *Keyboard) Peek() (uint16, bool) {
	if !k.Available() {
		return 0, false
	}
	return k.buf[k.head], true
}

// Read pops the head entry and clears the per-scancode pressed bit
// for that entry's scancode. If the buffer is empty it returns 0, per
// the spec-conformant behavior for an undefined call.
func (k *Keyboard) Read() uint16 {
	if !k.Available() {
		return 0
	}
	v := k.buf[k.head]
	k.head = (k.head + 1) % bufSize
	k.keyState[uint8(v>>8)] = 0
	return v
}

// Pressed reports whether scancode is currently held down.
func (k *Keyboard) Pressed(scancode uint8) bool {
	return k.keyState[scancode] != 0
}

// ReadChar implements the CRT-style extended-key character read
// protocol used by the DOS character-input services (spec §4.4):
// when a packed entry's ASCII byte is zero but the packed value is
// nonzero (an extended scan — arrows, function keys), the first call
// returns 0 and the scancode is latched for the following call, which
// returns it. Plain ASCII entries are returned immediately with no
// latch. ReadChar blocks the caller's notion of "no key" the same way
// Read does: callers loop on Available/poll themselves.
func (k *Keyboard) ReadChar() uint8 {
	if k.hasPending {
		k.hasPending = false
		return k.pendingExtended
	}
	v := k.Read()
	ascii := uint8(v)
	scancode := uint8(v >> 8)
	if ascii == 0 && v != 0 {
		k.pendingExtended = scancode
		k.hasPending = true
		return 0
	}
	return ascii
}

// Mouse holds position, buttons, visibility, and the clamp window
// applied on every position update.
type Mouse struct {
	X, Y       int16
	Buttons    uint16 // bit0=left, bit1=right, bit2=middle
	Visible    bool
	MinX, MaxX int16
	MinY, MaxY int16
}

// NewMouse returns a mouse clamped to the default 320x200 mode-13h
// window (0..319, 0..199), hidden, centered at the origin.
func NewMouse() *Mouse {
	return &Mouse{MinX: 0, MaxX: 319, MinY: 0, MaxY: 199}
}

// Update assigns x/y/buttons and clamps the position against the
// current range.
func (ms *Mouse) Update(x, y int, buttons uint16) {
	ms.X = clamp16(x, ms.MinX, ms.MaxX)
	ms.Y = clamp16(y, ms.MinY, ms.MaxY)
	ms.Buttons = buttons
}

// SetRangeX sets the horizontal clamp window and re-clamps X.
func (ms *Mouse) SetRangeX(min, max int16) {
	ms.MinX, ms.MaxX = min, max
	ms.X = clamp16(int(ms.X), min, max)
}

// SetRangeY sets the vertical clamp window and re-clamps Y.
func (ms *Mouse) SetRangeY(min, max int16) {
	ms.MinY, ms.MaxY = min, max
	ms.Y = clamp16(int(ms.Y), min, max)
}

func clamp16(v int, lo, hi int16) int16 {
	if v < int(lo) {
		return lo
	}
	if v > int(hi) {
		return hi
	}
	return int16(v)
}
