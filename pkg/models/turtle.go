package models

import (
	"fmt"
	"math"

	"github.com/taigrr/wire3d/pkg/scene"
)

// Turtle draws line segments into a model in a fixed z-plane.
// A heading of 0 points along +y; positive turns are clockwise.
type Turtle struct {
	model *scene.Model

	homeX, homeY, z float64

	x, y    float64
	heading float64 // Degrees
	step    float64
	penDown bool
}

// NewTurtle creates a turtle that draws into m, starting at (x, y) in the
// plane z with its pen down.
func NewTurtle(m *scene.Model, x, y, z float64) *Turtle {
	if m == nil {
		panic("models: turtle needs a model")
	}
	return &Turtle{
		model:   m,
		homeX:   x,
		homeY:   y,
		z:       z,
		x:       x,
		y:       y,
		step:    1,
		penDown: true,
	}
}

// Model returns the model the turtle draws into.
func (t *Turtle) Model() *scene.Model { return t.model }

// Pos returns the current position.
func (t *Turtle) Pos() (x, y float64) { return t.x, t.y }

// Heading returns the current heading in degrees.
func (t *Turtle) Heading() float64 { return t.heading }

// SetHeading sets the heading in degrees.
func (t *Turtle) SetHeading(deg float64) { t.heading = deg }

// PenDown reports whether moving forward draws.
func (t *Turtle) PenDown() bool { return t.penDown }

// PutPenDown makes Forward draw.
func (t *Turtle) PutPenDown() { t.penDown = true }

// PutPenUp makes Forward move without drawing.
func (t *Turtle) PutPenUp() { t.penDown = false }

// Turn rotates the heading; positive degrees turn clockwise.
func (t *Turtle) Turn(deg float64) {
	t.heading = math.Mod(t.heading+deg, 360)
}

// Right turns 90 degrees clockwise.
func (t *Turtle) Right() { t.Turn(90) }

// Left turns 90 degrees counterclockwise.
func (t *Turtle) Left() { t.Turn(-90) }

// TurnToFace points the turtle at (x, y).
func (t *Turtle) TurnToFace(x, y float64) {
	dx, dy := x-t.x, y-t.y
	switch {
	case dx == 0 && dy == 0:
	case dx == 0 && dy > 0:
		t.heading = 0
	case dx == 0:
		t.heading = 180
	default:
		// Heading is measured clockwise from +y.
		t.heading = 90 - math.Atan2(dy, dx)*180/math.Pi
	}
}

// Home returns to the starting position with heading 0.
func (t *Turtle) Home() {
	t.x, t.y = t.homeX, t.homeY
	t.heading = 0
}

// MoveTo jumps to (x, y) without drawing.
func (t *Turtle) MoveTo(x, y float64) {
	t.x, t.y = x, y
}

// Forward walks distance steps along the heading, adding a line segment
// if the pen is down.
func (t *Turtle) Forward(distance float64) {
	x0, y0 := t.x, t.y
	t.Move(distance)
	if !t.penDown {
		return
	}
	i := t.model.VertexCount()
	t.model.AddVertex(scene.V(x0, y0, t.z), scene.V(t.x, t.y, t.z))
	t.model.AddPrimitive(scene.NewLineSegment(i, i+1))
}

// Backward walks distance steps against the heading.
func (t *Turtle) Backward(distance float64) { t.Forward(-distance) }

// Move walks distance steps along the heading without drawing.
func (t *Turtle) Move(distance float64) {
	rad := t.heading * math.Pi / 180
	t.x += t.step * distance * math.Sin(rad)
	t.y += t.step * distance * math.Cos(rad)
}

// Resize scales the step size by s.
func (t *Turtle) Resize(s float64) { t.step *= s }

func (t *Turtle) String() string {
	return fmt.Sprintf("Turtle: %s\nz-plane: %v\norigin: (%v, %v)\n%s", t.model.Name, t.z, t.x, t.y, t.model)
}

// Sierpinski draws a Sierpinski triangle of n levels with the given side
// length.
func Sierpinski(n int, length float64) *scene.Model {
	m := scene.NewModel(fmt.Sprintf("Sierpinski(%d)", n))
	t := NewTurtle(m, 0, 0, 0)
	t.sierpinski(n, length)
	return m
}

func (t *Turtle) sierpinski(level int, length float64) {
	for range 3 {
		if level <= 0 {
			t.Forward(length)
		} else {
			t.Resize(0.5)
			t.sierpinski(level-1, length)
			t.Resize(2)
			t.Move(length)
		}
		t.Turn(120)
	}
}

// Hilbert draws a closed Hilbert curve of n levels from segments of length
// length/2^n.
func Hilbert(n int, length float64) *scene.Model {
	m := scene.NewModel(fmt.Sprintf("Hilbert(%d)", n))
	t := NewTurtle(m, 0, 0, 0)
	t.hilbert(n, 90, length/math.Pow(2, float64(n)))
	return m
}

func (t *Turtle) hilbert(n int, angle, length float64) {
	for range 2 {
		t.hilbertQuadrant(n, angle, length)
		t.Forward(length)
		t.hilbertQuadrant(n, angle, length)
		t.Turn(-angle)
		t.Forward(length)
		t.Turn(-angle)
	}
}

func (t *Turtle) hilbertQuadrant(n int, angle, length float64) {
	if n <= 0 {
		return
	}
	t.Turn(angle)
	t.hilbertQuadrant(n-1, -angle, length)
	t.Forward(length)
	t.Turn(-angle)
	t.hilbertQuadrant(n-1, angle, length)
	t.Forward(length)
	t.hilbertQuadrant(n-1, angle, length)
	t.Turn(-angle)
	t.Forward(length)
	t.hilbertQuadrant(n-1, -angle, length)
	t.Turn(angle)
}

// Spiral draws n shrinking segments, turning 121 degrees after each.
func Spiral(n int) *scene.Model {
	m := scene.NewModel(fmt.Sprintf("Spiral(%d)", n))
	t := NewTurtle(m, 0, 0, 0)
	for i := range n {
		t.Forward(1 - float64(i)/float64(n))
		t.Turn(121)
	}
	return m
}

// Polygasket draws an n-gon gasket of the given levels: each level replaces
// the polygon with sides half-size copies placed around its corners.
func Polygasket(sides, levels int) *scene.Model {
	m := scene.NewModel(fmt.Sprintf("Polygasket(%d,%d)", sides, levels))
	t := NewTurtle(m, 0, 0, 0)
	t.polygasket(sides, levels)
	return m
}

// Pentagasket is Polygasket with five sides.
func Pentagasket(levels int) *scene.Model {
	m := Polygasket(5, levels)
	m.Name = fmt.Sprintf("Pentagasket(%d)", levels)
	return m
}

func (t *Turtle) polygasket(sides, level int) {
	turn := 360 / float64(sides)
	for range sides {
		if level <= 0 {
			t.Forward(1)
		} else {
			t.Resize(0.5)
			t.polygasket(sides, level-1)
			t.Resize(2)
			t.Move(1)
		}
		t.Turn(turn)
	}
}

// SierpinskiCurve draws the Sierpinski arrowhead curve of n levels
// spanning length.
func SierpinskiCurve(n int, length float64) *scene.Model {
	m := scene.NewModel(fmt.Sprintf("SierpinskiCurve(%d)", n))
	t := NewTurtle(m, 0, 0, 0)
	t.arrowhead(n, length, 60)
	return m
}

func (t *Turtle) arrowhead(n int, length, angle float64) {
	if n <= 0 {
		t.Forward(length)
		return
	}
	t.Turn(angle)
	t.arrowhead(n-1, length/2, -angle)
	t.Turn(-angle)
	t.arrowhead(n-1, length/2, angle)
	t.Turn(-angle)
	t.arrowhead(n-1, length/2, -angle)
	t.Turn(angle)
}

// Ninja draws n hooked blades radiating from the origin.
func Ninja(n int) *scene.Model {
	m := scene.NewModel(fmt.Sprintf("Ninja(%d)", n))
	t := NewTurtle(m, 0, 0, 0)
	for range n {
		t.Forward(1)
		t.Turn(30)
		t.Forward(0.2)
		t.Turn(-60)
		t.Forward(0.5)
		t.Turn(30)

		t.PutPenUp()
		t.MoveTo(t.homeX, t.homeY)
		t.PutPenDown()

		t.Turn(360 / float64(n))
	}
	return m
}
