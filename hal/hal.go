package hal

import (
	"errors"
	"image"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Framebuffer is an RGBA pixel buffer plus a "present" hook.
//
// Resize reallocates the buffer; images returned by earlier Image calls are
// no longer shown.
type Framebuffer interface {
	Width() int
	Height() int
	Image() *image.RGBA
	Resize(w, h int)
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier for keys without a rune.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event. Text input arrives as Press events with Rune
// set and Code KeyUnknown.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer and the size it should have.
type Display interface {
	Framebuffer() Framebuffer
	// Size is the logical drawing size chosen by the host. The framebuffer
	// follows it on the next rendered frame.
	Size() (w, h int)
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time is the host's monotonic clock.
type Time interface {
	Now() time.Duration
}

// App is what a host runner drives. Step runs once per refresh and ends the
// runner when it returns an error. Close, if set, runs once when the runner
// returns for any reason. Either may be nil.
type App struct {
	Step  func() error
	Close func()
}

// HAL provides the only contact point between the application and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
