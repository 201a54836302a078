package render

import (
	"github.com/taigrr/wire3d/pkg/math3d"
	"github.com/taigrr/wire3d/pkg/scene"
)

// Model2Camera moves the model of pos from its local coordinates into
// camera coordinates by adding the accumulated translation t to every
// vertex. It returns a new model named "<position>::<model>" with the same
// primitives and colors; pos.Model is not modified.
func Model2Camera(pos *scene.Position, t math3d.Vec3) *scene.Model {
	if pos == nil || pos.Model == nil {
		panic("render: Model2Camera needs a position with a model")
	}
	m := pos.Model

	vertices := make([]scene.Vertex, 0, m.VertexCount())
	for _, v := range m.Vertices() {
		vertices = append(vertices, scene.VertexFrom(v.Vec3().Add(t)))
	}
	return m.Derive(pos.Name+"::"+m.Name, vertices)
}
