package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// WriteANSI prints the framebuffer to w as rows of half-block characters,
// two framebuffer rows per text line, using the colors profile supports.
// Pass termenv.EnvColorProfile() to match the current terminal.
func WriteANSI(w io.Writer, fb *Framebuffer, profile termenv.Profile) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < fb.Height; y += 2 {
		for x := 0; x < fb.Width; x++ {
			top := fb.GetPixel(x, y)
			cell := profile.String("▀").Foreground(profile.Color(hex(top)))
			if y+1 < fb.Height {
				cell = cell.Background(profile.Color(hex(fb.GetPixel(x, y+1))))
			}
			if _, err := bw.WriteString(cell.String()); err != nil {
				return fmt.Errorf("write ansi: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write ansi: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ansi: %w", err)
	}
	return nil
}

func hex(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
