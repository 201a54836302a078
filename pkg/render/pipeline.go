package render

import (
	"github.com/taigrr/wire3d/pkg/math3d"
	"github.com/taigrr/wire3d/pkg/scene"
)

// Render draws the scene into the framebuffer's default viewport.
// It does not clear the framebuffer first.
func Render(s *scene.Scene, fb *Framebuffer, cfg Config) {
	if fb == nil {
		panic("render: nil framebuffer")
	}
	RenderViewport(s, fb, cfg)
}

// RenderViewport draws the scene into vp.
//
// The Position tree is walked pre-order. An invisible Position is skipped
// together with everything below it. An invisible Model, or a Position
// without one, is not drawn but its children are.
func RenderViewport(s *scene.Scene, vp Viewport, cfg Config) {
	if s == nil {
		panic("render: nil scene")
	}
	if vp == nil {
		panic("render: nil viewport")
	}

	log := newPipelineLogger(cfg, s.Debug)
	cam := s.Camera
	if cam == nil {
		cam = scene.NewCamera()
	}
	if err := cam.Validate(); err != nil {
		log.warn("not rendering scene", "scene", s.Name, "err", err)
		return
	}

	log.message("== Begin Rendering of Scene ==", "scene", s.Name, "camera", cam.String())
	r := &renderer{cam: cam, vp: vp, cfg: cfg}
	for _, pos := range s.Positions {
		r.position(pos, math3d.Zero3(), log)
	}
	log.message("== End Rendering of Scene ==", "scene", s.Name)
}

type renderer struct {
	cam *scene.Camera
	vp  Viewport
	cfg Config
}

func (r *renderer) position(pos *scene.Position, parent math3d.Vec3, log pipelineLogger) {
	if !pos.Visible {
		log.message("==== Hidden Position ====", "position", pos.Name)
		return
	}
	log = log.with(pos.Debug)
	t := parent.Add(pos.Translation)

	log.message("==== Render Position ====", "position", pos.Name, "translation", t.String())
	switch m := pos.Model; {
	case m == nil:
		log.message("====== Empty Position ======", "position", pos.Name)
	case !m.Visible:
		log.message("====== Hidden Model ======", "model", m.Name)
	default:
		r.model(pos, t, log)
	}

	for _, child := range pos.Children() {
		r.position(child, t, log)
	}
	log.message("==== End Position ====", "position", pos.Name)
}

func (r *renderer) model(pos *scene.Position, t math3d.Vec3, log pipelineLogger) {
	m := pos.Model
	log.message("====== Render Model ======", "model", m.Name)

	if err := scene.Check(m); err != nil {
		log.warn("model check", "position", pos.Name, "model", m.Name, "err", err)
	}
	log.vertices("0. Model", m)

	camModel := Model2Camera(pos, t)
	log.vertices("1. Camera", camModel)

	projected := Project(camModel, r.cam)
	log.vertices("2. Projected", projected)
	log.primitives("2. Projected", projected)

	rasterize(projected, r.vp, r.cfg, log)
	log.message("====== End Model ======", "model", m.Name)
}
