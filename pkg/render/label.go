package render

import (
	"errors"
	"math"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

var labelFont = &freemono.Regular9pt7b

// ErrLabelOrigin is returned when a label origin lies outside the int16
// coordinates of a display driver.
var ErrLabelOrigin = errors.New("label origin out of display range")

// DrawLabel writes text into the framebuffer with its baseline at y,
// starting at x. Glyph pixels outside the framebuffer are dropped.
func DrawLabel(fb *Framebuffer, x, y int, text string, c Color) error {
	if x < math.MinInt16 || x > math.MaxInt16 || y < math.MinInt16 || y > math.MaxInt16 {
		return ErrLabelOrigin
	}
	d, err := fb.Displayer()
	if err != nil {
		return err
	}
	tinyfont.WriteLine(d, labelFont, int16(x), int16(y), text, c)
	return nil
}

// LabelWidth returns the width in pixels DrawLabel uses for text.
func LabelWidth(text string) int {
	_, outbox := tinyfont.LineWidth(labelFont, text)
	return int(outbox)
}

// LabelHeight returns the line advance of the label font.
func LabelHeight() int {
	return int(labelFont.GetYAdvance())
}
