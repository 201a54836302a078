package render

import (
	"math"

	"github.com/taigrr/wire3d/pkg/scene"
)

// unclippedReach bounds how far outside the viewport an unclipped
// primitive is still walked pixel by pixel.
const unclippedReach = 1 << 15

// Rasterize writes every primitive of a projected model into vp.
// Primitives that reference missing or non-finite vertices are logged and
// skipped.
func Rasterize(m *scene.Model, vp Viewport, cfg Config) {
	if m == nil || vp == nil {
		panic("render: Rasterize needs a model and a viewport")
	}
	rasterize(m, vp, cfg, newPipelineLogger(cfg, false))
}

// RastLine rasterizes one line segment of a projected model into vp.
func RastLine(m *scene.Model, ls scene.LineSegment, vp Viewport, cfg Config) {
	newRaster(m, vp, cfg, newPipelineLogger(cfg, false)).line(ls)
}

// RastPoint rasterizes one point of a projected model into vp.
func RastPoint(m *scene.Model, pt scene.Point, vp Viewport, cfg Config) {
	newRaster(m, vp, cfg, newPipelineLogger(cfg, false)).point(pt)
}

func rasterize(m *scene.Model, vp Viewport, cfg Config, log pipelineLogger) {
	r := newRaster(m, vp, cfg, log)
	for p := range m.Primitives() {
		log.primitive("3. Rasterize", m, p)

		switch p := p.(type) {
		case scene.LineSegment:
			r.line(p)
		case scene.Point:
			r.point(p)
		default:
			log.warn("unknown primitive", "model", m.Name, "primitive", p.String())
		}
	}
}

// raster holds the per-model state shared by the line and point rasterizers.
type raster struct {
	m    *scene.Model
	vp   Viewport
	cfg  Config
	log  pipelineLogger
	w, h int
	bg   FloatColor
}

func newRaster(m *scene.Model, vp Viewport, cfg Config, log pipelineLogger) *raster {
	w, h := vp.Size()
	return &raster{
		m:   m,
		vp:  vp,
		cfg: cfg,
		log: log,
		w:   w,
		h:   h,
		bg:  ToFloat(vp.Background()),
	}
}

// vertex returns vertex i and its color, or false if the primitive using it
// cannot be drawn.
func (r *raster) vertex(p scene.Primitive, i int) (scene.Vertex, FloatColor, bool) {
	v, ok := r.m.Vertex(i)
	if !ok {
		r.log.warn("skipping primitive: index out of range",
			"model", r.m.Name, "primitive", p.String(), "vIndex", i, "vertices", r.m.VertexCount())
		return v, FloatColor{}, false
	}
	if !v.IsFinite() {
		r.log.warn("skipping primitive: non-finite vertex",
			"model", r.m.Name, "primitive", p.String(), "vIndex", i, "vertex", v.String())
		return v, FloatColor{}, false
	}
	c, ok := r.m.Color(i)
	if !ok {
		c = r.cfg.color()
	}
	return v, ToFloat(c), true
}

// toPixel maps a normalized coordinate in [-1, 1] to pixel-plane space.
func toPixel(n float64, size int) float64 {
	return 0.5 + float64(size)/2.001*(n+1)
}

// round rounds half up, so .5 always moves toward +Inf.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// span clamps the inclusive major-axis range [lo, hi] to the pixel-plane
// coordinates 1..size that map into the viewport, widened when unclipped.
func (r *raster) span(lo, hi float64, size int) (int, int, bool) {
	minC, maxC := 1.0, float64(size)
	if !r.cfg.Clip {
		minC -= unclippedReach
		maxC += unclippedReach
	}
	lo = math.Max(lo, minC)
	hi = math.Min(hi, maxC)
	if lo > hi {
		return 0, 0, false
	}
	return int(lo), int(hi), true
}

// coord converts a minor-axis pixel-plane coordinate to an int that cannot
// overflow.
func coord(v float64) int {
	const limit = 1 << 30
	return int(math.Max(-limit, math.Min(limit, v)))
}

// plot writes one pixel in viewport coordinates. A weight below 1 blends
// c with the viewport background; a weight of 0 writes nothing.
func (r *raster) plot(xvp, yvp int, xpp, ypp float64, c FloatColor, weight float64) {
	if weight <= 0 {
		return
	}
	inside := xvp >= 0 && xvp < r.w && yvp >= 0 && yvp < r.h
	if r.cfg.Clip && !inside {
		r.log.pixel(true, xpp, ypp, xvp, yvp, Color{})
		return
	}
	if weight < 1 {
		if r.cfg.Gamma > 0 {
			weight = math.Pow(weight, 1/r.cfg.Gamma)
		}
		c = blend(c, r.bg, weight)
	}
	out := FromFloat(c)
	r.log.pixel(false, xpp, ypp, xvp, yvp, out)
	r.vp.SetPixel(xvp, yvp, out)
}

// line walks the major axis of the segment one pixel at a time from the
// lower endpoint to the higher one, both included.
func (r *raster) line(ls scene.LineSegment) {
	v0, c0, ok0 := r.vertex(ls, ls.V[0])
	v1, c1, ok1 := r.vertex(ls, ls.V[1])
	if !ok0 || !ok1 {
		return
	}

	x0, y0 := toPixel(v0.X, r.w), toPixel(v0.Y, r.h)
	x1, y1 := toPixel(v1.X, r.w), toPixel(v1.Y, r.h)
	if r.log.pixels() {
		r.log.message("line", "x0_pp", x0, "y0_pp", y0, "x1_pp", x1, "y1_pp", y1)
	}
	x0, y0, x1, y1 = round(x0), round(y0), round(x1), round(y1)

	if x0 == x1 && y0 == y1 {
		r.plot(coord(x0)-1, r.h-coord(y0), x0, y0, c0, 1)
		return
	}

	if math.Abs(y1-y0) > math.Abs(x1-x0) {
		if y1 < y0 {
			x0, y0, c0, x1, y1, c1 = x1, y1, c1, x0, y0, c0
		}
		r.stepY(x0, y0, c0, x1, y1, c1)
		return
	}
	if x1 < x0 {
		x0, y0, c0, x1, y1, c1 = x1, y1, c1, x0, y0, c0
	}
	r.stepX(x0, y0, c0, x1, y1, c1)
}

func (r *raster) stepX(x0, y0 float64, c0 FloatColor, x1, y1 float64, c1 FloatColor) {
	slope := (y1 - y0) / (x1 - x0)
	lo, hi, ok := r.span(x0, x1, r.w)
	if !ok {
		return
	}
	for x := lo; x <= hi; x++ {
		t := (float64(x) - x0) / (x1 - x0)
		y := y0 + slope*(float64(x)-x0)
		c := c0.lerp(c1, t)

		if !r.cfg.AntiAlias {
			r.plot(x-1, r.h-coord(round(y)), float64(x), y, c, 1)
			continue
		}
		yf := math.Floor(y)
		frac := y - yf
		r.plot(x-1, r.h-coord(yf), float64(x), y, c, 1-frac)
		r.plot(x-1, r.h-coord(yf)-1, float64(x), y, c, frac)
	}
}

func (r *raster) stepY(x0, y0 float64, c0 FloatColor, x1, y1 float64, c1 FloatColor) {
	slope := (x1 - x0) / (y1 - y0)
	lo, hi, ok := r.span(y0, y1, r.h)
	if !ok {
		return
	}
	for y := lo; y <= hi; y++ {
		t := (float64(y) - y0) / (y1 - y0)
		x := x0 + slope*(float64(y)-y0)
		c := c0.lerp(c1, t)

		if !r.cfg.AntiAlias {
			r.plot(coord(round(x))-1, r.h-y, x, float64(y), c, 1)
			continue
		}
		xf := math.Floor(x)
		frac := x - xf
		r.plot(coord(xf)-1, r.h-y, x, float64(y), c, 1-frac)
		r.plot(coord(xf), r.h-y, x, float64(y), c, frac)
	}
}

// point fills the (2r+1) x (2r+1) block centred on the projected vertex,
// limited to the same range span allows a line.
func (r *raster) point(pt scene.Point) {
	v, c, ok := r.vertex(pt, pt.V)
	if !ok {
		return
	}

	xpp, ypp := toPixel(v.X, r.w), toPixel(v.Y, r.h)
	if r.log.pixels() {
		r.log.message("point", "x_pp", xpp, "y_pp", ypp, "radius", pt.Radius)
	}
	x, y := float64(coord(round(xpp))), float64(coord(round(ypp)))
	rad := float64(pt.Radius)

	x0, x1, okX := r.span(x-rad, x+rad, r.w)
	y0, y1, okY := r.span(y-rad, y+rad, r.h)
	if !okX || !okY {
		return
	}
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			r.plot(px-1, r.h-py, xpp, ypp, c, 1)
		}
	}
}
