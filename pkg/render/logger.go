package render

import (
	"context"
	"log/slog"

	"github.com/taigrr/wire3d/pkg/scene"
)

// pipelineLogger traces the pipeline stages. Tracing is on for a whole
// scene (Config.Debug or Scene.Debug) or for one Position subtree
// (Position.Debug); warnings are always emitted.
type pipelineLogger struct {
	log  *slog.Logger
	on   bool
	rast bool
}

func newPipelineLogger(cfg Config, debug bool) pipelineLogger {
	return pipelineLogger{
		log:  cfg.logger(),
		on:   debug || cfg.Debug,
		rast: cfg.RastDebug,
	}
}

// with returns a logger that is also on if debug is set.
func (l pipelineLogger) with(debug bool) pipelineLogger {
	l.on = l.on || debug
	return l
}

func (l pipelineLogger) tracing() bool {
	return l.on && l.log.Enabled(context.Background(), slog.LevelDebug)
}

func (l pipelineLogger) pixels() bool {
	return l.rast && l.tracing()
}

func (l pipelineLogger) message(msg string, args ...any) {
	if l.on {
		l.log.Debug(msg, args...)
	}
}

func (l pipelineLogger) warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}

func (l pipelineLogger) vertices(stage string, m *scene.Model) {
	if !l.tracing() {
		return
	}
	for i, v := range m.Vertices() {
		l.log.Debug(stage, "model", m.Name, "vIndex", i, "vertex", v.String())
	}
}

func (l pipelineLogger) primitives(stage string, m *scene.Model) {
	if !l.tracing() {
		return
	}
	if m.PrimitiveCount() == 0 {
		l.log.Debug(stage, "model", m.Name, "primitives", "[]")
		return
	}
	for p := range m.Primitives() {
		l.log.Debug(stage, "model", m.Name, "primitive", p.String())
	}
}

func (l pipelineLogger) primitive(stage string, m *scene.Model, p scene.Primitive) {
	if !l.tracing() {
		return
	}
	l.log.Debug(stage, "model", m.Name, "primitive", p.String())
	for _, i := range p.Indices() {
		if v, ok := m.Vertex(i); ok {
			l.log.Debug(stage, "vIndex", i, "vertex", v.String())
		}
	}
}

func (l pipelineLogger) pixel(clipped bool, xpp, ypp float64, xvp, yvp int, c Color) {
	if !l.pixels() {
		return
	}
	l.log.Debug("pixel",
		"x_pp", xpp, "y_pp", ypp,
		"x_vp", xvp, "y_vp", yvp,
		"clipped", clipped,
		"color", c,
	)
}
