package models

import (
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/wire3d/pkg/scene"
)

// Square creates a square in the xy-plane with corners (±r, ±r, 0).
func Square(r float64) *scene.Model {
	if r <= 0 {
		panic(fmt.Sprintf("models: square size must be positive, got %v", r))
	}
	m := scene.NewModel(fmt.Sprintf("Square(%.2f)", r))
	m.AddVertex(
		scene.V(-r, -r, 0),
		scene.V(-r, r, 0),
		scene.V(r, r, 0),
		scene.V(r, -r, 0),
	)
	m.AddPrimitive(
		scene.NewLineSegment(0, 1),
		scene.NewLineSegment(1, 2),
		scene.NewLineSegment(2, 3),
		scene.NewLineSegment(3, 0),
	)
	return m
}

// Axes2D creates an x-axis from xMin to xMax and a y-axis from yMin to yMax
// in the plane z, each with evenly spaced tick marks at both ends and
// xMarks (yMarks) intervals between them.
func Axes2D(xMin, xMax, yMin, yMax float64, xMarks, yMarks int, z float64) *scene.Model {
	m := scene.NewModel(fmt.Sprintf("Axes 2D(%.2f,%.2f,%.2f,%.2f)", xMin, xMax, yMin, yMax))

	m.AddVertex(scene.V(xMin, 0, z), scene.V(xMax, 0, z))
	m.AddVertex(scene.V(0, yMin, z), scene.V(0, yMax, z))
	m.AddPrimitive(scene.NewLineSegment(0, 1), scene.NewLineSegment(2, 3))

	index := 4
	tick := (yMax - yMin) / 50
	for i := 0; xMarks > 0 && i <= xMarks; i++ {
		x := xMin + float64(i)*(xMax-xMin)/float64(xMarks)
		m.AddVertex(scene.V(x, tick/2, z), scene.V(x, -tick/2, z))
		m.AddPrimitive(scene.NewLineSegment(index, index+1))
		index += 2
	}

	tick = (xMax - xMin) / 50
	for i := 0; yMarks > 0 && i <= yMarks; i++ {
		y := yMin + float64(i)*(yMax-yMin)/float64(yMarks)
		m.AddVertex(scene.V(tick/2, y, z), scene.V(-tick/2, y, z))
		m.AddPrimitive(scene.NewLineSegment(index, index+1))
		index += 2
	}
	return m
}

// Axes3D creates x, y and z axes with the given endpoints, colored red,
// green and blue.
func Axes3D(xMin, xMax, yMin, yMax, zMin, zMax float64) *scene.Model {
	m := scene.NewModel(fmt.Sprintf("Axes 3D(%.2f,%.2f,%.2f,%.2f,%.2f,%.2f)", xMin, xMax, yMin, yMax, zMin, zMax))
	m.AddVertex(
		scene.V(xMin, 0, 0), scene.V(xMax, 0, 0),
		scene.V(0, yMin, 0), scene.V(0, yMax, 0),
		scene.V(0, 0, zMin), scene.V(0, 0, zMax),
	)
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	m.AddColor(red, red, green, green, blue, blue)
	m.AddPrimitive(
		scene.NewLineSegment(0, 1),
		scene.NewLineSegment(2, 3),
		scene.NewLineSegment(4, 5),
	)
	return m
}

// cubeEdges joins the 8 corners of a box: back face, front face, then the
// edges connecting them.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Cube creates an axis-aligned wireframe cube centered at the origin.
func Cube(size float64) *scene.Model {
	if size <= 0 {
		panic(fmt.Sprintf("models: cube size must be positive, got %v", size))
	}
	half := size / 2
	m := scene.NewModel(fmt.Sprintf("Cube(%.2f)", size))
	m.AddVertex(
		scene.V(-half, -half, -half), // 0: bottom-left-back
		scene.V(half, -half, -half),  // 1: bottom-right-back
		scene.V(half, half, -half),   // 2: top-right-back
		scene.V(-half, half, -half),  // 3: top-left-back
		scene.V(-half, -half, half),  // 4: bottom-left-front
		scene.V(half, -half, half),   // 5: bottom-right-front
		scene.V(half, half, half),    // 6: top-right-front
		scene.V(-half, half, half),   // 7: top-left-front
	)
	for _, e := range cubeEdges {
		m.AddPrimitive(scene.NewLineSegment(e[0], e[1]))
	}
	return m
}

// ViewFrustum outlines the view volume of cam between its near plane and
// the plane z = -far. A perspective camera gives a truncated pyramid, an
// orthographic one a box.
func ViewFrustum(cam *scene.Camera, far float64) *scene.Model {
	if err := cam.Validate(); err != nil {
		panic("models: " + err.Error())
	}
	near := cam.Near
	if !(far > near) {
		panic(fmt.Sprintf("models: far (%v) must exceed near (%v)", far, near))
	}

	s := 1.0
	if cam.Perspective {
		s = far / near
	}
	m := scene.NewModel("View Frustum Model")
	m.AddVertex(
		scene.V(cam.Left, cam.Top, -near),
		scene.V(cam.Right, cam.Top, -near),
		scene.V(cam.Right, cam.Bottom, -near),
		scene.V(cam.Left, cam.Bottom, -near),
		scene.V(cam.Left*s, cam.Top*s, -far),
		scene.V(cam.Right*s, cam.Top*s, -far),
		scene.V(cam.Right*s, cam.Bottom*s, -far),
		scene.V(cam.Left*s, cam.Bottom*s, -far),
	)
	for _, e := range cubeEdges {
		m.AddPrimitive(scene.NewLineSegment(e[0], e[1]))
	}
	return m
}

// Grid creates a square grid of lines on the xz-plane at height y, size
// wide with lines every step units.
func Grid(size, step, y float64) *scene.Model {
	if size <= 0 || step <= 0 {
		panic(fmt.Sprintf("models: grid size and step must be positive, got %v, %v", size, step))
	}
	m := scene.NewModel(fmt.Sprintf("Grid(%.2f,%.2f)", size, step))
	half := size / 2
	n := int(math.Floor(size/step + 1e-9))
	for i := 0; i <= n; i++ {
		c := -half + float64(i)*step
		k := m.VertexCount()
		m.AddVertex(
			scene.V(c, y, -half), scene.V(c, y, half),
			scene.V(-half, y, c), scene.V(half, y, c),
		)
		m.AddPrimitive(scene.NewLineSegment(k, k+1), scene.NewLineSegment(k+2, k+3))
	}
	return m
}

// ConeSector creates part of a right circular cone with base radius r in
// the xz-plane and apex at (0, h, 0). The surface is cut off at y = top and
// spans the longitudes theta1 to theta2 radians, counterclockwise. It has
// n circles of latitude (n >= 2) and k lines of longitude (k >= 4), plus a
// fan of spokes from the base center.
func ConeSector(r, h, top, theta1, theta2 float64, n, k int) *scene.Model {
	if n < 2 {
		panic(fmt.Sprintf("models: cone sector needs at least 2 latitudes, got %d", n))
	}
	if k < 4 {
		panic(fmt.Sprintf("models: cone sector needs at least 4 longitudes, got %d", k))
	}
	if !(h >= top) {
		panic(fmt.Sprintf("models: cone height (%v) must be at least its top (%v)", h, top))
	}

	theta1 = wrapAngle(theta1)
	theta2 = wrapAngle(theta2)
	if theta2 <= theta1 {
		theta2 += 2 * math.Pi
	}
	dh := top / float64(n-1)
	dTheta := (theta2 - theta1) / float64(k-1)

	m := scene.NewModel(fmt.Sprintf("Cone Sector(%.2f,%.2f,%.2f,%.2f,%.2f,%d,%d)", r, h, top, theta1, theta2, n, k))
	// Vertex (i, j) is latitude i on longitude j.
	index := func(i, j int) int { return j*n + i }
	for j := range k {
		s, c := math.Sincos(theta1 + float64(j)*dTheta)
		for i := range n {
			slant := r * (1 - float64(i)*dh/h)
			m.AddVertex(scene.V(slant*c, float64(i)*dh, slant*s))
		}
	}
	center := m.VertexCount()
	m.AddVertex(scene.V(0, 0, 0))

	for i := range n {
		for j := range k - 1 {
			m.AddPrimitive(scene.NewLineSegment(index(i, j), index(i, j+1)))
		}
	}
	for j := range k {
		m.AddPrimitive(scene.NewLineSegment(center, index(0, j)))
		for i := range n - 1 {
			m.AddPrimitive(scene.NewLineSegment(index(i, j), index(i+1, j)))
		}
	}
	return m
}

// wrapAngle maps a to [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
