// Package scene holds the data structures the wire3d pipeline renders:
// vertices, primitives, models, the Position tree, the camera and the scene root.
package scene

import (
	"fmt"

	"github.com/taigrr/wire3d/pkg/math3d"
)

// Vertex is a point in a model's local coordinate system.
// Vertices are values; copying one never aliases another model's data.
type Vertex struct {
	X, Y, Z float64
}

// V creates a new Vertex.
func V(x, y, z float64) Vertex {
	return Vertex{x, y, z}
}

// VertexFrom converts a vector to a vertex.
func VertexFrom(v math3d.Vec3) Vertex {
	return Vertex{v.X, v.Y, v.Z}
}

// Vec3 returns the vertex coordinates as a vector.
func (v Vertex) Vec3() math3d.Vec3 {
	return math3d.V3(v.X, v.Y, v.Z)
}

// IsFinite reports whether no coordinate is NaN or infinite.
func (v Vertex) IsFinite() bool {
	return v.Vec3().IsFinite()
}

func (v Vertex) String() string {
	return fmt.Sprintf("(x,y,z) = (% .5f  % .5f  % .5f)", v.X, v.Y, v.Z)
}
