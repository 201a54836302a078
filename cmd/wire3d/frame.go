package main

import (
	"github.com/taigrr/wire3d/pkg/render"
	"github.com/taigrr/wire3d/pkg/scene"
)

// frame renders s into a new framebuffer. With compare set the clipped
// render is on the left and the unclipped one on the right, each inside a
// one pixel border; unclipped lines may spill over the border.
func frame(s *scene.Scene, opts options) (*render.Framebuffer, error) {
	w, h := opts.width, opts.height
	if !opts.compare {
		fb := render.NewFramebuffer(w, h)
		fb.Clear(opts.bg)
		render.Render(s, fb, opts.cfg)
		return fb, stamp(fb, s.Name, opts)
	}

	fb := render.NewFramebuffer(2*w+4, h+2)
	fb.Clear(opts.bg)

	unclipped := opts.cfg
	unclipped.Clip = false
	render.RenderViewport(s, fb.Viewport(w+3, 1, w, h), unclipped)

	left := fb.Viewport(1, 1, w, h)
	left.Clear(opts.bg)
	clipped := opts.cfg
	clipped.Clip = true
	render.RenderViewport(s, left, clipped)

	fb.DrawRectOutline(0, 0, w+2, h+2, render.ColorGray)
	fb.DrawRectOutline(w+2, 0, w+2, h+2, render.ColorGray)
	return fb, stamp(fb, s.Name, opts)
}

// stamp writes the scene name into the top-left corner when labels are on.
func stamp(fb *render.Framebuffer, name string, opts options) error {
	if !opts.label || name == "" {
		return nil
	}
	return render.DrawLabel(fb, 2, render.LabelHeight(), name, render.ColorYellow)
}
