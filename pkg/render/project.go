package render

import "github.com/taigrr/wire3d/pkg/scene"

// Project maps camera-space vertices onto the camera's view rectangle and
// normalizes that rectangle to [-1, 1] x [-1, 1]. The z coordinate is
// carried through unchanged.
//
// A perspective camera projects through the origin onto the plane
// z = -Near; an orthographic camera projects straight down the z-axis.
// A perspective vertex with z == 0 has no image and becomes non-finite;
// the rasterizer skips primitives that use it.
func Project(m *scene.Model, cam *scene.Camera) *scene.Model {
	if m == nil || cam == nil {
		panic("render: Project needs a model and a camera")
	}

	sx := 2 / (cam.Right - cam.Left)
	sy := 2 / (cam.Top - cam.Bottom)

	vertices := make([]scene.Vertex, 0, m.VertexCount())
	for _, v := range m.Vertices() {
		xp, yp := v.X, v.Y
		if cam.Perspective {
			xp = cam.Near * v.X / -v.Z
			yp = cam.Near * v.Y / -v.Z
		}
		vertices = append(vertices, scene.V(
			sx*(xp-cam.Left)-1,
			sy*(yp-cam.Bottom)-1,
			v.Z,
		))
	}
	return m.Derive(m.Name, vertices)
}
