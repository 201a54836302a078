// Package render turns a wire3d scene into pixels: the Model2Camera,
// Project and Rasterize stages, the framebuffer they draw into, and the
// presenters that put a framebuffer on screen or on disk.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Viewport is a rectangular pixel target with (0, 0) at the upper-left
// corner. The rasterizer only ever writes through this interface.
type Viewport interface {
	Size() (width, height int)
	SetPixel(x, y int, c Color)
	Background() Color
}

// Framebuffer is a 2D array of pixels. It is its own default Viewport,
// and hands out sub-viewports over rectangles of its storage.
type Framebuffer struct {
	Width  int     // Width in pixels
	Height int     // Height in pixels
	Pixels []Color // Row-major pixel data

	bg Color
}

// NewFramebuffer creates a framebuffer cleared to black.
func NewFramebuffer(width, height int) *Framebuffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("render: negative framebuffer size %dx%d", width, height))
	}
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
	fb.Clear(ColorBlack)
	return fb
}

// Size implements Viewport.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Background implements Viewport. It is the color of the last Clear.
func (fb *Framebuffer) Background() Color {
	return fb.bg
}

// Clear fills the framebuffer with a solid color and makes it the background.
func (fb *Framebuffer) Clear(c Color) {
	fb.bg = c
	if len(fb.Pixels) == 0 {
		return
	}
	// Copy-doubling fill
	fb.Pixels[0] = c
	for i := 1; i < len(fb.Pixels); i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Writes outside the framebuffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawRectOutline draws a rectangle outline.
func (fb *Framebuffer) DrawRectOutline(x, y, w, h int, c Color) {
	// Top and bottom
	for px := x; px < x+w; px++ {
		fb.SetPixel(px, y, c)
		fb.SetPixel(px, y+h-1, c)
	}
	// Left and right
	for py := y; py < y+h; py++ {
		fb.SetPixel(x, py, c)
		fb.SetPixel(x+w-1, py, c)
	}
}

// SubViewport is a rectangle of a Framebuffer addressed in its own
// coordinates. Writes are offset into the parent; only the parent's bounds
// are enforced, so an unclipped line may spill into neighbouring pixels.
type SubViewport struct {
	fb   *Framebuffer
	x, y int
	w, h int
	bg   Color
}

// Viewport returns a sub-viewport whose upper-left corner is at (x, y).
// Its background starts as the framebuffer's background.
func (fb *Framebuffer) Viewport(x, y, w, h int) *SubViewport {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("render: negative viewport size %dx%d", w, h))
	}
	return &SubViewport{fb: fb, x: x, y: y, w: w, h: h, bg: fb.bg}
}

// Size implements Viewport.
func (vp *SubViewport) Size() (int, int) {
	return vp.w, vp.h
}

// Background implements Viewport.
func (vp *SubViewport) Background() Color {
	return vp.bg
}

// SetPixel implements Viewport.
func (vp *SubViewport) SetPixel(x, y int, c Color) {
	vp.fb.SetPixel(vp.x+x, vp.y+y, c)
}

// Clear fills the sub-viewport's rectangle and makes c its background.
func (vp *SubViewport) Clear(c Color) {
	vp.bg = c
	for y := 0; y < vp.h; y++ {
		for x := 0; x < vp.w; x++ {
			vp.SetPixel(x, y, c)
		}
	}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// ScaledImage returns the framebuffer enlarged by an integer factor with
// nearest-neighbour sampling, so every pixel stays a crisp square.
// A scale below 2 returns the unscaled image.
func (fb *Framebuffer) ScaledImage(scale int) *image.RGBA {
	src := fb.ToImage()
	if scale < 2 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// SavePNG saves the framebuffer as a PNG file, enlarged by scale.
func (fb *Framebuffer) SavePNG(path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, fb.ScaledImage(scale)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
