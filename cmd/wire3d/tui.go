package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/wire3d/pkg/math3d"
	"github.com/taigrr/wire3d/pkg/scene"
)

// springAxis eases one coordinate of the view offset toward its target.
type springAxis struct {
	Value    float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

func newSpringAxis(fps int, target float64) springAxis {
	return springAxis{
		Value:  target,
		Target: target,
		// Frequency 6.0 = brisk, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

func (a *springAxis) Update() {
	a.Value, a.velocity = a.spring.Update(a.Value, a.velocity, a.Target)
}

// viewRig moves the whole scene relative to the fixed camera.
type viewRig struct {
	X, Y, Z springAxis
}

const (
	slideStep = 0.25
	dollyStep = 0.5
	maxDolly  = 40.0
)

func newViewRig(fps int) *viewRig {
	return &viewRig{
		X: newSpringAxis(fps, 0),
		Y: newSpringAxis(fps, 0),
		Z: newSpringAxis(fps, 0),
	}
}

func (r *viewRig) Update() {
	r.X.Update()
	r.Y.Update()
	r.Z.Update()
}

func (r *viewRig) Slide(dx, dy float64) {
	r.X.Target += dx
	r.Y.Target += dy
}

// Dolly moves the scene along the view axis; positive is toward the camera.
func (r *viewRig) Dolly(dz float64) {
	r.Z.Target = math.Max(-maxDolly, math.Min(maxDolly, r.Z.Target+dz))
}

func (r *viewRig) Reset() {
	r.X.Target, r.Y.Target, r.Z.Target = 0, 0, 0
}

func (r *viewRig) Offset() math3d.Vec3 {
	return math3d.V3(r.X.Value, r.Y.Value, r.Z.Value)
}

// rigged wraps the top-level positions of s in one group the rig can move.
func rigged(s *scene.Scene) (*scene.Scene, *scene.Position) {
	rig := scene.NewGroup("view", s.Positions...)
	return &scene.Scene{
		Name:      s.Name,
		Camera:    s.Camera,
		Positions: []*scene.Position{rig},
		Debug:     s.Debug,
	}, rig
}

type displayScreen interface {
	uv.Screen
	Display() error
}

func runTUI(ctx context.Context, s *scene.Scene, scenePath string, opts options) error {
	fps := max(*targetFPS, 1)

	// Create terminal
	term := uv.DefaultTerminal()
	scr, ok := any(term).(displayScreen)
	if !ok {
		return errors.New("terminal cannot display cells")
	}

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloads := make(chan *scene.Scene, 1)
	if *watch && scenePath != "" {
		go func() {
			err := watchScene(ctx, scenePath, func(s *scene.Scene) error {
				select {
				case reloads <- s:
				case <-ctx.Done():
				}
				return nil
			})
			if err != nil {
				slog.Error("watch scene", "err", err)
			}
		}()
	}

	view, rig := rigged(s)
	rigState := newViewRig(fps)
	events := term.Events()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case s := <-reloads:
			view, rig = rigged(s)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					return nil
				case ev.MatchString("left"):
					rigState.Slide(-slideStep, 0)
				case ev.MatchString("right"):
					rigState.Slide(slideStep, 0)
				case ev.MatchString("up"):
					rigState.Slide(0, slideStep)
				case ev.MatchString("down"):
					rigState.Slide(0, -slideStep)
				case ev.MatchString("w", "+", "="):
					rigState.Dolly(dollyStep)
				case ev.MatchString("s", "-", "_"):
					rigState.Dolly(-dollyStep)
				case ev.MatchString("c"):
					opts.cfg.Clip = !opts.cfg.Clip
				case ev.MatchString("a"):
					opts.cfg.AntiAlias = !opts.cfg.AntiAlias
				case ev.MatchString("l"):
					opts.label = !opts.label
				case ev.MatchString("r"):
					rigState.Reset()
				}
			}

		case <-ticker.C:
			rigState.Update()
			rig.Translation = rigState.Offset()

			fb, err := frame(view, terminalOptions(opts, width, height))
			if err != nil {
				return err
			}
			fb.Draw(scr, uv.Rect(0, 0, width, height))
			if err := scr.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// terminalOptions sizes the frame to fill a width x height cell terminal,
// two pixel rows per cell.
func terminalOptions(opts options, width, height int) options {
	opts.width, opts.height = max(width, 1), max(2*height, 1)
	if opts.compare {
		opts.width = max((width-4)/2, 1)
		opts.height = max(2*height-2, 1)
	}
	return opts
}
