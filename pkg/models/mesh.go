// Package models builds wireframe models for wire3d: geometric builders,
// turtle-graphics curves and loaders for glTF and Wavefront OBJ files.
package models

import (
	"errors"
	"image/color"

	"github.com/taigrr/wire3d/pkg/math3d"
	"github.com/taigrr/wire3d/pkg/scene"
)

// ErrNoGeometry is returned by the loaders when a file holds no line,
// point or face data that can be drawn as a wireframe.
var ErrNoGeometry = errors.New("no wireframe geometry")

// mesh collects loaded geometry into a wireframe model. Triangle and polygon
// faces become their outline edges, and an edge shared by two faces is
// emitted once regardless of direction.
type mesh struct {
	name     string
	vertices []scene.Vertex
	colors   []color.RGBA
	prims    []scene.Primitive
	edges    map[[2]int]bool
	points   map[int]bool
	colored  bool // Every vertex added so far has a color
}

func newMesh(name string) *mesh {
	return &mesh{
		name:    name,
		edges:   make(map[[2]int]bool),
		points:  make(map[int]bool),
		colored: true,
	}
}

// addVertex appends a vertex and returns its index.
func (m *mesh) addVertex(v math3d.Vec3) int {
	m.vertices = append(m.vertices, scene.VertexFrom(v))
	return len(m.vertices) - 1
}

// setColors records per-vertex colors for the vertices starting at base.
// Geometry without colors anywhere disables colors for the whole model.
func (m *mesh) setColors(base int, cs []color.RGBA) {
	if len(cs) == 0 || !m.colored {
		m.colored = false
		return
	}
	for len(m.colors) < base {
		m.colors = append(m.colors, color.RGBA{255, 255, 255, 255})
	}
	m.colors = append(m.colors[:base], cs...)
}

func (m *mesh) addEdge(i, j int) {
	if i == j {
		return
	}
	key := [2]int{min(i, j), max(i, j)}
	if m.edges[key] {
		return
	}
	m.edges[key] = true
	m.prims = append(m.prims, scene.NewLineSegment(i, j))
}

// addFace adds the closed outline of a polygon.
func (m *mesh) addFace(idx ...int) {
	for k := range idx {
		m.addEdge(idx[k], idx[(k+1)%len(idx)])
	}
}

// addPolyline adds an open chain of edges.
func (m *mesh) addPolyline(idx ...int) {
	for k := 1; k < len(idx); k++ {
		m.addEdge(idx[k-1], idx[k])
	}
}

func (m *mesh) addPoint(i int) {
	if m.points[i] {
		return
	}
	m.points[i] = true
	m.prims = append(m.prims, scene.NewPoint(i))
}

func (m *mesh) model() (*scene.Model, error) {
	if len(m.prims) == 0 {
		return nil, ErrNoGeometry
	}
	out := scene.NewModelFrom(m.name, m.vertices, m.prims)
	if m.colored && len(m.colors) == len(m.vertices) {
		out.AddColor(m.colors...)
	}
	return out, nil
}

// Center returns the center of the model's bounding box.
func Center(m *scene.Model) math3d.Vec3 {
	lo, hi := m.Bounds()
	return lo.Add(hi).Scale(0.5)
}

// Size returns the dimensions of the model's bounding box.
func Size(m *scene.Model) math3d.Vec3 {
	lo, hi := m.Bounds()
	return hi.Sub(lo)
}

// Normalize returns a copy of m centered on the origin and scaled so its
// largest dimension is size. A model with no extent is only centered.
func Normalize(m *scene.Model, size float64) *scene.Model {
	center := Center(m)
	scale := 1.0
	if maxDim := Size(m).MaxComponent(); maxDim > 0 {
		scale = size / maxDim
	}

	vertices := make([]scene.Vertex, 0, m.VertexCount())
	for _, v := range m.Vertices() {
		vertices = append(vertices, scene.VertexFrom(v.Vec3().Sub(center).Scale(scale)))
	}
	return m.Derive(m.Name, vertices)
}
