package scene

import (
	"fmt"
	"image/color"
	"iter"
	"slices"
	"strings"

	"github.com/taigrr/wire3d/pkg/math3d"
)

// Model is a wireframe geometric object: an ordered list of vertices, an
// ordered list of primitives indexing into them, and optional per-vertex colors.
//
// Both lists are append-only. Pipeline stages never modify a Model they are
// given; they build new ones with the same primitive structure.
type Model struct {
	Name    string
	Visible bool

	vertices   []Vertex
	primitives []Primitive
	colors     []color.RGBA
}

// NewModel creates an empty, visible model.
func NewModel(name string) *Model {
	return &Model{
		Name:       name,
		Visible:    true,
		vertices:   make([]Vertex, 0),
		primitives: make([]Primitive, 0),
	}
}

// NewModelFrom creates a visible model holding copies of the given lists.
func NewModelFrom(name string, vertices []Vertex, primitives []Primitive) *Model {
	m := NewModel(name)
	m.vertices = append(m.vertices, vertices...)
	m.primitives = append(m.primitives, primitives...)
	return m
}

// AddVertex appends vertices; each gets the next free index.
func (m *Model) AddVertex(vs ...Vertex) {
	m.vertices = append(m.vertices, vs...)
}

// AddPrimitive appends primitives.
func (m *Model) AddPrimitive(ps ...Primitive) {
	for _, p := range ps {
		if p == nil {
			panic("scene: nil primitive added to model " + m.Name)
		}
	}
	m.primitives = append(m.primitives, ps...)
}

// AddColor appends per-vertex colors. Colors are used only when there is
// exactly one per vertex.
func (m *Model) AddColor(cs ...color.RGBA) {
	m.colors = append(m.colors, cs...)
}

// VertexCount returns the number of vertices.
func (m *Model) VertexCount() int {
	return len(m.vertices)
}

// PrimitiveCount returns the number of primitives.
func (m *Model) PrimitiveCount() int {
	return len(m.primitives)
}

// Vertex returns vertex i and whether i is a valid index.
func (m *Model) Vertex(i int) (Vertex, bool) {
	if i < 0 || i >= len(m.vertices) {
		return Vertex{}, false
	}
	return m.vertices[i], true
}

// Primitive returns primitive i. It panics if i is out of range.
func (m *Model) Primitive(i int) Primitive {
	return m.primitives[i]
}

// Vertices iterates over (index, vertex) pairs.
func (m *Model) Vertices() iter.Seq2[int, Vertex] {
	return slices.All(m.vertices)
}

// Primitives iterates over the primitives in order.
func (m *Model) Primitives() iter.Seq[Primitive] {
	return slices.Values(m.primitives)
}

// HasColors reports whether every vertex has a color.
func (m *Model) HasColors() bool {
	return len(m.colors) > 0 && len(m.colors) == len(m.vertices)
}

// Color returns the color of vertex i, if the model carries per-vertex colors.
func (m *Model) Color(i int) (color.RGBA, bool) {
	if !m.HasColors() || i < 0 || i >= len(m.colors) {
		return color.RGBA{}, false
	}
	return m.colors[i], true
}

// Derive returns a new model with the given name and vertices that shares
// nothing mutable with m but keeps its primitives, colors and visibility.
func (m *Model) Derive(name string, vertices []Vertex) *Model {
	return &Model{
		Name:       name,
		Visible:    m.Visible,
		vertices:   vertices,
		primitives: slices.Clone(m.primitives),
		colors:     slices.Clone(m.colors),
	}
}

// Bounds returns the axis-aligned bounding box of the vertices.
// An empty model has zero bounds.
func (m *Model) Bounds() (lo, hi math3d.Vec3) {
	if len(m.vertices) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}

	lo = m.vertices[0].Vec3()
	hi = lo
	for _, v := range m.vertices[1:] {
		lo = lo.Min(v.Vec3())
		hi = hi.Max(v.Vec3())
	}
	return lo, hi
}

func (m *Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Model: %s\n", m.Name)
	fmt.Fprintf(&b, "This Model's visibility is: %t\n", m.Visible)
	fmt.Fprintf(&b, "Model has %d vertices.\n", len(m.vertices))
	fmt.Fprintf(&b, "Model has %d primitives.\n", len(m.primitives))
	for i, v := range m.vertices {
		fmt.Fprintf(&b, "%d: %s\n", i, v)
	}
	for i, p := range m.primitives {
		fmt.Fprintf(&b, "%d: %s\n", i, p)
	}
	return b.String()
}
