package render

import (
	"errors"
	"image/color"
	"math"

	"tinygo.org/x/drivers"
)

// DisplayViewport renders into a tinygo display driver, such as an
// embedded LCD or an in-memory panel. Call Display to flush the driver
// after rendering.
type DisplayViewport struct {
	d  drivers.Displayer
	bg Color
}

// NewDisplayViewport wraps d with the given background color.
func NewDisplayViewport(d drivers.Displayer, bg Color) *DisplayViewport {
	if d == nil {
		panic("render: nil display")
	}
	return &DisplayViewport{d: d, bg: bg}
}

// Size implements Viewport.
func (v *DisplayViewport) Size() (int, int) {
	w, h := v.d.Size()
	return int(w), int(h)
}

// Background implements Viewport.
func (v *DisplayViewport) Background() Color {
	return v.bg
}

// SetPixel implements Viewport. Coordinates the driver cannot address are
// dropped.
func (v *DisplayViewport) SetPixel(x, y int, c Color) {
	if x < math.MinInt16 || x > math.MaxInt16 || y < math.MinInt16 || y > math.MaxInt16 {
		return
	}
	v.d.SetPixel(int16(x), int16(y), c)
}

// Clear fills the display with the background color.
func (v *DisplayViewport) Clear() {
	w, h := v.d.Size()
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			v.d.SetPixel(x, y, v.bg)
		}
	}
}

// Display flushes the driver.
func (v *DisplayViewport) Display() error {
	return v.d.Display()
}

// ErrDisplayTooLarge is returned when a framebuffer cannot be addressed
// with the int16 coordinates of a display driver.
var ErrDisplayTooLarge = errors.New("framebuffer too large for a display driver")

// Displayer exposes the framebuffer as a tinygo display driver, so that
// driver-level libraries can draw into it.
func (fb *Framebuffer) Displayer() (drivers.Displayer, error) {
	if fb.Width > math.MaxInt16 || fb.Height > math.MaxInt16 {
		return nil, ErrDisplayTooLarge
	}
	return &fbDisplay{fb: fb}, nil
}

type fbDisplay struct {
	fb *Framebuffer
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width), int16(d.fb.Height)
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.SetPixel(int(x), int(y), c)
}

func (d *fbDisplay) Display() error { return nil }
