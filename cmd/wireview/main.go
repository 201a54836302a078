// wireview - Desktop Wireframe Viewer
// Shows a wire3d scene description in a window.
//
// Controls:
//
//	Arrows  - Slide the scene
//	W/S     - Dolly in/out
//	C       - Toggle clipping
//	A       - Toggle anti-aliasing
//	R       - Reset view
//	Esc     - Quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/wire3d/pkg/math3d"
	"github.com/taigrr/wire3d/pkg/render"
	"github.com/taigrr/wire3d/pkg/scene"
	"github.com/taigrr/wire3d/pkg/scenefile"
)

var (
	width     = flag.Int("w", 320, "Framebuffer width in pixels")
	height    = flag.Int("h", 240, "Framebuffer height in pixels")
	zoom      = flag.Int("zoom", 2, "Window pixels per framebuffer pixel")
	noClip    = flag.Bool("noclip", false, "Disable clipping to the viewport")
	antiAlias = flag.Bool("aa", false, "Anti-alias lines")
	gamma     = flag.Float64("gamma", render.DefaultGamma, "Gamma for anti-aliased edges (0 = linear)")
	debug     = flag.Bool("debug", false, "Log the pipeline trace for the first frame")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wireview - Desktop Wireframe Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wireview [options] [scene.toml|scene.yaml]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	if *width <= 0 || *height <= 0 || *zoom <= 0 {
		return fmt.Errorf("invalid window size %dx%d at zoom %d", *width, *height, *zoom)
	}
	if *debug {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		slog.SetDefault(slog.New(h))
	}

	var (
		s   *scene.Scene
		err error
	)
	if path == "" {
		s, err = scenefile.Demo()
	} else {
		s, err = scenefile.Load(path)
	}
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	cfg := render.DefaultConfig()
	cfg.Clip = !*noClip
	cfg.AntiAlias = *antiAlias
	cfg.Gamma = *gamma
	cfg.Debug = *debug

	g := newViewer(s, cfg, *width, *height)
	title := "wireview"
	if s.Name != "" {
		title += " - " + s.Name
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(*width**zoom, *height**zoom)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

// viewer is an ebiten Game that re-renders the scene every frame into a
// software framebuffer and copies it to the window.
type viewer struct {
	view   *scene.Scene
	rig    *scene.Position
	offset math3d.Vec3
	cfg    render.Config

	fb    *render.Framebuffer
	pix   []byte
	fbImg *ebiten.Image
}

const (
	slideStep = 0.05
	dollyStep = 0.1
)

func newViewer(s *scene.Scene, cfg render.Config, w, h int) *viewer {
	rig := scene.NewGroup("view", s.Positions...)
	return &viewer{
		view: &scene.Scene{
			Name:      s.Name,
			Camera:    s.Camera,
			Positions: []*scene.Position{rig},
			Debug:     s.Debug,
		},
		rig:   rig,
		cfg:   cfg,
		fb:    render.NewFramebuffer(w, h),
		pix:   make([]byte, 4*w*h),
		fbImg: ebiten.NewImage(w, h),
	}
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.cfg.Clip = !v.cfg.Clip
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		v.cfg.AntiAlias = !v.cfg.AntiAlias
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.offset = math3d.Zero3()
	}

	var d math3d.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		d.X -= slideStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		d.X += slideStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		d.Y += slideStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		d.Y -= slideStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		d.Z += dollyStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		d.Z -= dollyStep
	}
	v.offset = v.offset.Add(d)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.rig.Translation = v.offset
	v.fb.Clear(render.ColorBlack)
	render.Render(v.view, v.fb, v.cfg)
	// Config and scene level tracing stop after the first frame.
	v.cfg.Debug = false
	v.view.Debug = false

	for i, c := range v.fb.Pixels {
		j := 4 * i
		v.pix[j+0] = c.R
		v.pix[j+1] = c.G
		v.pix[j+2] = c.B
		v.pix[j+3] = 0xFF
	}
	v.fbImg.WritePixels(v.pix)
	screen.DrawImage(v.fbImg, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.fb.Width, v.fb.Height
}
