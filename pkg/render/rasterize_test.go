package render

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/taigrr/wire3d/pkg/scene"
)

// litPixels returns the coordinates of every pixel that differs from the
// background.
func litPixels(fb *Framebuffer) map[[2]int]Color {
	lit := make(map[[2]int]Color)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if c := fb.GetPixel(x, y); c != fb.Background() {
				lit[[2]int{x, y}] = c
			}
		}
	}
	return lit
}

func lineModel(x0, y0, x1, y1 float64) *scene.Model {
	m := scene.NewModel("line")
	m.AddVertex(scene.V(x0, y0, 0), scene.V(x1, y1, 0))
	m.AddPrimitive(scene.NewLineSegment(0, 1))
	return m
}

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return cfg
}

func TestRastLineHorizontal(t *testing.T) {
	fb := NewFramebuffer(100, 100)
	Rasterize(lineModel(-1, 0, 1, 0), fb, quietConfig())

	lit := litPixels(fb)
	if len(lit) != 100 {
		t.Fatalf("lit %d pixels, want 100", len(lit))
	}
	for x := 0; x < 100; x++ {
		if c, ok := lit[[2]int{x, 50}]; !ok || c != ColorWhite {
			t.Errorf("pixel (%d, 50) = %v, %v; want white", x, c, ok)
		}
	}
}

func TestRastLineEndpointSymmetry(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
	}{
		{"shallow", -0.9, -0.3, 0.8, 0.2},
		{"steep", 0.1, -0.9, -0.2, 0.7},
		{"diagonal", -0.5, -0.5, 0.5, 0.5},
		{"vertical", 0.3, -1, 0.3, 1},
		{"partly outside", -1.5, -0.2, 0.4, 1.7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, aa := range []bool{false, true} {
				cfg := quietConfig()
				cfg.AntiAlias = aa

				a := NewFramebuffer(64, 48)
				Rasterize(lineModel(tc.x0, tc.y0, tc.x1, tc.y1), a, cfg)
				b := NewFramebuffer(64, 48)
				Rasterize(lineModel(tc.x1, tc.y1, tc.x0, tc.y0), b, cfg)

				for i := range a.Pixels {
					if a.Pixels[i] != b.Pixels[i] {
						t.Fatalf("aa=%v: pixel %d differs: %v vs %v", aa, i, a.Pixels[i], b.Pixels[i])
					}
				}
			}
		})
	}
}

func TestRastLineDegenerate(t *testing.T) {
	fb := NewFramebuffer(50, 50)
	Rasterize(lineModel(0.2, 0.2, 0.2001, 0.2001), fb, quietConfig())

	lit := litPixels(fb)
	if len(lit) != 1 {
		t.Fatalf("degenerate line lit %d pixels, want 1", len(lit))
	}
	// x_pp = 0.5 + 50/2.001*1.2 = 30.48 -> 30, y likewise
	if _, ok := lit[[2]int{29, 20}]; !ok {
		t.Errorf("degenerate line pixel not at (29, 20): %v", lit)
	}
}

func TestRastLineContiguous(t *testing.T) {
	fb := NewFramebuffer(80, 80)
	Rasterize(lineModel(-0.8, -0.6, 0.3, 0.9), fb, quietConfig())

	// Steep line: exactly one pixel per row between the endpoints.
	rows := make(map[int]int)
	for p := range litPixels(fb) {
		rows[p[1]]++
	}
	minY, maxY := math.MaxInt, math.MinInt
	for y, n := range rows {
		if n != 1 {
			t.Errorf("row %d has %d pixels, want 1", y, n)
		}
		minY, maxY = min(minY, y), max(maxY, y)
	}
	if len(rows) != maxY-minY+1 {
		t.Errorf("rows %d..%d are not contiguous: %d rows lit", minY, maxY, len(rows))
	}
}

func TestRastLineClipping(t *testing.T) {
	// Line extends far past both viewport edges.
	m := lineModel(-3, 0, 3, 0)

	fb := NewFramebuffer(40, 40)
	Rasterize(m, fb, quietConfig())
	if n := len(litPixels(fb)); n != 40 {
		t.Errorf("clipped line lit %d pixels, want 40", n)
	}

	// Unclipped into a sub-viewport: the line spills into the rest of the
	// framebuffer, which still guards its own memory.
	fb = NewFramebuffer(60, 40)
	vp := fb.Viewport(10, 0, 40, 40)
	cfg := quietConfig()
	cfg.Clip = false
	Rasterize(m, vp, cfg)
	if n := len(litPixels(fb)); n != 60 {
		t.Errorf("unclipped line lit %d framebuffer pixels, want 60", n)
	}
}

func TestRastLineColorInterpolation(t *testing.T) {
	m := lineModel(-1, 0, 1, 0)
	m.AddColor(ColorRed, ColorBlue)

	fb := NewFramebuffer(100, 100)
	Rasterize(m, fb, quietConfig())

	if c := fb.GetPixel(0, 50); c != ColorRed {
		t.Errorf("first pixel = %v, want red", c)
	}
	if c := fb.GetPixel(99, 50); c != ColorBlue {
		t.Errorf("last pixel = %v, want blue", c)
	}
	mid := fb.GetPixel(50, 50)
	if mid.R < 100 || mid.R > 155 || mid.B < 100 || mid.B > 155 {
		t.Errorf("middle pixel = %v, want an even red/blue mix", mid)
	}
}

func TestRastLineConfigColor(t *testing.T) {
	cfg := quietConfig()
	cfg.Color = ColorGreen
	fb := NewFramebuffer(20, 20)
	Rasterize(lineModel(-1, 0, 1, 0), fb, cfg)

	for _, c := range litPixels(fb) {
		if c != ColorGreen {
			t.Fatalf("pixel = %v, want green", c)
		}
	}
}

func TestRastLineAntiAlias(t *testing.T) {
	cfg := quietConfig()
	cfg.AntiAlias = true
	fb := NewFramebuffer(100, 100)
	Rasterize(lineModel(-1, -1, 1, 0.37), fb, cfg)

	var partial int
	for _, c := range litPixels(fb) {
		if c.R != c.G || c.G != c.B {
			t.Fatalf("white on black blended to non-gray %v", c)
		}
		if c.R > 0 && c.R < 255 {
			partial++
		}
	}
	if partial == 0 {
		t.Error("anti-aliased line has no partially covered pixels")
	}

	// Gamma encoding brightens partial coverage.
	cfg.Gamma = DefaultGamma
	g := NewFramebuffer(100, 100)
	Rasterize(lineModel(-1, -1, 1, 0.37), g, cfg)
	for i := range fb.Pixels {
		if g.Pixels[i].R < fb.Pixels[i].R {
			t.Fatalf("gamma-encoded pixel %d darker: %v < %v", i, g.Pixels[i], fb.Pixels[i])
		}
	}
}

func TestRastPointClipBoundary(t *testing.T) {
	const w, h = 100, 100

	tests := []struct {
		name   string
		x      float64
		want   int // expected viewport x, or -1 if clipped
		pixels int
	}{
		{"left edge", -1, 0, 1},
		{"right edge", 1, w - 1, 1},
		{"left of viewport", -1.02, -1, 0},
		{"right of viewport", 1.02, -1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := scene.NewModel("pt")
			m.AddVertex(scene.V(tc.x, 0, 0))
			m.AddPrimitive(scene.NewPoint(0))

			fb := NewFramebuffer(w, h)
			Rasterize(m, fb, quietConfig())

			lit := litPixels(fb)
			if len(lit) != tc.pixels {
				t.Fatalf("lit %d pixels, want %d", len(lit), tc.pixels)
			}
			if tc.want >= 0 {
				if _, ok := lit[[2]int{tc.want, 50}]; !ok {
					t.Errorf("pixel (%d, 50) not lit: %v", tc.want, lit)
				}
			}
		})
	}
}

func TestRastPointRadius(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		radius int
		want   int
	}{
		{"single", 0, 0, 0, 1},
		{"radius 2", 0, 0, 2, 25},
		{"corner clipped", -1, -1, 1, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := scene.NewModel("pt")
			m.AddVertex(scene.V(tc.x, tc.y, 0))
			m.AddPrimitive(scene.NewPointRadius(0, tc.radius))

			fb := NewFramebuffer(30, 30)
			Rasterize(m, fb, quietConfig())
			if n := len(litPixels(fb)); n != tc.want {
				t.Errorf("lit %d pixels, want %d", n, tc.want)
			}
		})
	}
}

func TestRastPointLargeRadiusClipped(t *testing.T) {
	m := scene.NewModel("pt")
	m.AddVertex(scene.V(0, 0, 0))
	m.AddPrimitive(scene.NewPointRadius(0, 1<<30))

	fb := NewFramebuffer(10, 10)
	start := time.Now()
	Rasterize(m, fb, quietConfig())
	if d := time.Since(start); d > time.Second {
		t.Errorf("rasterizing took %v", d)
	}
	if n := len(litPixels(fb)); n != 100 {
		t.Errorf("lit %d pixels, want 100", n)
	}
}

func TestRasterizeIdempotent(t *testing.T) {
	m := scene.NewModel("mixed")
	m.AddVertex(scene.V(-0.7, 0.1, 0), scene.V(0.6, -0.4, 0), scene.V(0.2, 0.8, 0))
	m.AddPrimitive(scene.NewLineSegment(0, 1), scene.NewLineSegment(1, 2), scene.NewPointRadius(2, 1))

	for _, aa := range []bool{false, true} {
		cfg := quietConfig()
		cfg.AntiAlias = aa

		once := NewFramebuffer(64, 64)
		Rasterize(m, once, cfg)
		twice := NewFramebuffer(64, 64)
		Rasterize(m, twice, cfg)
		Rasterize(m, twice, cfg)

		for i := range once.Pixels {
			if once.Pixels[i] != twice.Pixels[i] {
				t.Fatalf("aa=%v: pixel %d changed on second pass", aa, i)
			}
		}
	}
}

func TestRasterizeSkipsBadPrimitives(t *testing.T) {
	var logs bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	m := scene.NewModel("bad")
	m.AddVertex(scene.V(-1, 0, 0), scene.V(1, 0, 0), scene.V(math.Inf(1), 0, 0))
	m.AddPrimitive(
		scene.NewLineSegment(0, 5),
		scene.NewPoint(7),
		scene.NewLineSegment(0, 2),
		scene.NewLineSegment(0, 1),
	)

	fb := NewFramebuffer(100, 100)
	Rasterize(m, fb, cfg)

	if n := len(litPixels(fb)); n != 100 {
		t.Errorf("lit %d pixels, want only the valid line's 100", n)
	}
	out := logs.String()
	if strings.Count(out, "index out of range") != 2 {
		t.Errorf("expected two out-of-range warnings, got:\n%s", out)
	}
	if !strings.Contains(out, "non-finite vertex") {
		t.Errorf("expected a non-finite warning, got:\n%s", out)
	}
}

func TestRastDebugTracesPixels(t *testing.T) {
	var logs bytes.Buffer
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.RastDebug = true
	cfg.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := scene.NewModel("pt")
	m.AddVertex(scene.V(-1, 0, 0))
	m.AddPrimitive(scene.NewPointRadius(0, 1))
	Rasterize(m, NewFramebuffer(10, 10), cfg)

	out := logs.String()
	if got := strings.Count(out, "msg=pixel"); got != 9 {
		t.Errorf("traced %d pixels, want 9", got)
	}
	if got := strings.Count(out, "clipped=true"); got != 3 {
		t.Errorf("traced %d clipped pixels, want 3", got)
	}
}

func BenchmarkRastLine(b *testing.B) {
	fb := NewFramebuffer(320, 240)
	m := lineModel(-1, -0.9, 1, 0.8)
	cfg := quietConfig()

	for b.Loop() {
		Rasterize(m, fb, cfg)
	}
}

func BenchmarkRastLineAntiAlias(b *testing.B) {
	fb := NewFramebuffer(320, 240)
	m := lineModel(-1, -0.9, 1, 0.8)
	cfg := quietConfig()
	cfg.AntiAlias = true
	cfg.Gamma = DefaultGamma

	for b.Loop() {
		Rasterize(m, fb, cfg)
	}
}
