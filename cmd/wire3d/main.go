// wire3d - Software Wireframe Renderer
// Render TOML/YAML scene descriptions to PNG, to ANSI text, or live in the
// terminal.
//
// Controls (-tui):
//
//	Arrows      - Slide the scene left/right/up/down
//	W/S or +/-  - Dolly in/out
//	C           - Toggle clipping
//	A           - Toggle anti-aliasing
//	L           - Toggle the scene label
//	R           - Reset view
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/taigrr/wire3d/pkg/render"
	"github.com/taigrr/wire3d/pkg/scene"
	"github.com/taigrr/wire3d/pkg/scenefile"
)

var (
	outPath   = flag.String("o", "", "Write a PNG to this path")
	width     = flag.Int("w", 120, "Viewport width in pixels")
	height    = flag.Int("h", 80, "Viewport height in pixels")
	scale     = flag.Int("scale", 1, "Integer upscaling for PNG output")
	ansiOut   = flag.Bool("ansi", false, "Print the frame as ANSI half blocks (default when -o is not given)")
	tui       = flag.Bool("tui", false, "Interactive terminal viewer")
	watch     = flag.Bool("watch", false, "Re-render whenever the scene file changes")
	debug     = flag.Bool("debug", false, "Log the pipeline trace to stderr")
	rastDebug = flag.Bool("rastdebug", false, "With -debug, also log every pixel")
	noClip    = flag.Bool("noclip", false, "Disable clipping to the viewport")
	antiAlias = flag.Bool("aa", false, "Anti-alias lines")
	gamma     = flag.Float64("gamma", 0, "Gamma for anti-aliased edges (0 = linear)")
	compare   = flag.Bool("compare", false, "Show clipped and unclipped renders side by side")
	label     = flag.Bool("label", false, "Stamp the scene name into the frame")
	fgColor   = flag.String("fg", "#ffffff", "Line color for models without vertex colors")
	bgColor   = flag.String("bg", "0,0,0", "Background color (R,G,B)")
	targetFPS = flag.Int("fps", 30, "Target FPS for -tui")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wire3d - Software Wireframe Renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wire3d [options] [scene.toml|scene.yaml]\n\n")
		fmt.Fprintf(os.Stderr, "Without a scene file the built-in demo scene is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nModel builders: %v\n", scenefile.Builders())
		fmt.Fprintf(os.Stderr, "\nControls (-tui):\n")
		fmt.Fprintf(os.Stderr, "  Arrows      - Slide the scene\n")
		fmt.Fprintf(os.Stderr, "  W/S or +/-  - Dolly in/out\n")
		fmt.Fprintf(os.Stderr, "  C           - Toggle clipping\n")
		fmt.Fprintf(os.Stderr, "  A           - Toggle anti-aliasing\n")
		fmt.Fprintf(os.Stderr, "  L           - Toggle label\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options is everything a frame depends on besides the scene.
type options struct {
	cfg     render.Config
	bg      render.Color
	width   int
	height  int
	compare bool
	label   bool
}

func run(scenePath string) error {
	if *debug {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		slog.SetDefault(slog.New(h))
	}
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("viewport size must be positive, got %dx%d", *width, *height)
	}
	if *scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", *scale)
	}
	if *watch && scenePath == "" {
		return fmt.Errorf("-watch needs a scene file")
	}

	opts, err := parseOptions()
	if err != nil {
		return err
	}

	s, err := loadScene(scenePath)
	if err != nil {
		return err
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	switch {
	case *tui:
		return runTUI(ctx, s, scenePath, opts)
	case *watch:
		if err := output(s, opts); err != nil {
			return err
		}
		return watchScene(ctx, scenePath, func(s *scene.Scene) error {
			return output(s, opts)
		})
	default:
		return output(s, opts)
	}
}

func parseOptions() (options, error) {
	var bgR, bgG, bgB uint8
	if _, err := fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB); err != nil {
		return options{}, fmt.Errorf("parse -bg %q: %w", *bgColor, err)
	}
	fg, err := colorful.Hex(*fgColor)
	if err != nil {
		return options{}, fmt.Errorf("parse -fg: %w", err)
	}
	r, g, b := fg.RGB255()

	cfg := render.DefaultConfig()
	cfg.Clip = !*noClip
	cfg.AntiAlias = *antiAlias
	cfg.Gamma = *gamma
	cfg.Color = render.RGB(r, g, b)
	cfg.Debug = *debug
	cfg.RastDebug = *rastDebug

	return options{
		cfg:     cfg,
		bg:      render.RGB(bgR, bgG, bgB),
		width:   *width,
		height:  *height,
		compare: *compare,
		label:   *label,
	}, nil
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scenefile.Demo()
	}
	s, err := scenefile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return s, nil
}

// output renders one frame and writes it as PNG and/or ANSI text.
func output(s *scene.Scene, opts options) error {
	fb, err := frame(s, opts)
	if err != nil {
		return err
	}

	if *outPath != "" {
		if err := fb.SavePNG(*outPath, *scale); err != nil {
			return err
		}
		slog.Info("wrote frame", "path", *outPath, "width", fb.Width*(*scale), "height", fb.Height*(*scale))
	}
	if *ansiOut || *outPath == "" {
		return render.WriteANSI(os.Stdout, fb, termenv.EnvColorProfile())
	}
	return nil
}
