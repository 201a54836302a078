package scene

import "fmt"

// Primitive is a geometric primitive that refers to vertices of its owning
// Model by index. The set of primitive kinds is closed: LineSegment and Point.
type Primitive interface {
	// Indices returns a copy of the vertex indices this primitive uses.
	Indices() []int
	String() string

	primitive()
}

// LineSegment connects two vertices of a model.
type LineSegment struct {
	V [2]int // Indices into the model's vertex list
}

// NewLineSegment creates a line segment between vertices i0 and i1.
// Negative indices are a programming error and panic.
func NewLineSegment(i0, i1 int) LineSegment {
	if i0 < 0 || i1 < 0 {
		panic(fmt.Sprintf("scene: negative line segment index (%d, %d)", i0, i1))
	}
	return LineSegment{V: [2]int{i0, i1}}
}

// LineSegmentFromIndices builds a line segment from a two-element index list.
func LineSegmentFromIndices(indices []int) LineSegment {
	if len(indices) != 2 {
		panic(fmt.Sprintf("scene: line segment needs exactly 2 indices, got %d", len(indices)))
	}
	return NewLineSegment(indices[0], indices[1])
}

// Indices implements Primitive.
func (l LineSegment) Indices() []int {
	return []int{l.V[0], l.V[1]}
}

func (l LineSegment) String() string {
	return fmt.Sprintf("LineSegment: ([%d, %d])", l.V[0], l.V[1])
}

func (LineSegment) primitive() {}

// Point is a single vertex drawn as a square block of pixels.
type Point struct {
	V      int // Index into the model's vertex list
	Radius int // Block half-size in pixels; 0 draws one pixel
}

// NewPoint creates a one pixel point at vertex i.
func NewPoint(i int) Point {
	return NewPointRadius(i, 0)
}

// NewPointRadius creates a point at vertex i drawn with the given pixel radius.
func NewPointRadius(i, radius int) Point {
	if i < 0 {
		panic(fmt.Sprintf("scene: negative point index %d", i))
	}
	if radius < 0 {
		panic(fmt.Sprintf("scene: negative point radius %d", radius))
	}
	return Point{V: i, Radius: radius}
}

// Indices implements Primitive.
func (p Point) Indices() []int {
	return []int{p.V}
}

func (p Point) String() string {
	return fmt.Sprintf("Point: ([%d], radius=%d)", p.V, p.Radius)
}

func (Point) primitive() {}
