package scene

import (
	"fmt"
	"strings"

	"github.com/taigrr/wire3d/pkg/math3d"
)

// Position places a Model in its parent's coordinate system and groups nested
// Positions, forming the scene tree. The renderer walks the tree pre-order and
// sums translations from the root down to each node.
//
// The Model is shared, not copied; a nil Model makes the node a pure group.
type Position struct {
	Name        string
	Model       *Model
	Translation math3d.Vec3
	Visible     bool
	Debug       bool // Trace the pipeline for this subtree

	children []*Position
}

// NewPosition creates a visible Position named after its model.
func NewPosition(m *Model) *Position {
	name := ""
	if m != nil {
		name = m.Name
	}
	return NewNamedPosition(name, m)
}

// NewNamedPosition creates a visible Position with an explicit name.
func NewNamedPosition(name string, m *Model) *Position {
	return &Position{
		Name:    name,
		Model:   m,
		Visible: true,
	}
}

// NewGroup creates a visible Position without a model.
func NewGroup(name string, children ...*Position) *Position {
	p := NewNamedPosition(name, nil)
	p.AddChild(children...)
	return p
}

// Translate sets the translation vector and returns p for chaining.
func (p *Position) Translate(dx, dy, dz float64) *Position {
	p.Translation = math3d.V3(dx, dy, dz)
	return p
}

// AddChild appends nested positions.
func (p *Position) AddChild(children ...*Position) {
	for _, c := range children {
		if c == nil {
			panic("scene: nil child added to position " + p.Name)
		}
	}
	p.children = append(p.children, children...)
}

// Children returns the nested positions. The returned slice must not be modified.
func (p *Position) Children() []*Position {
	return p.children
}

// Child returns the first direct child with the given name, or nil.
func (p *Position) Child(name string) *Position {
	for _, c := range p.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits p and its descendants pre-order, passing the accumulated
// translation of each node. Returning false from fn prunes that subtree.
func (p *Position) Walk(fn func(pos *Position, offset math3d.Vec3) bool) {
	p.walk(math3d.Zero3(), fn)
}

func (p *Position) walk(parent math3d.Vec3, fn func(*Position, math3d.Vec3) bool) {
	offset := parent.Add(p.Translation)
	if !fn(p, offset) {
		return
	}
	for _, c := range p.children {
		c.walk(offset, fn)
	}
}

func (p *Position) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Position: %s\n", p.Name)
	fmt.Fprintf(&b, "This Position's visibility is: %t\n", p.Visible)
	fmt.Fprintf(&b, "This Position's translation is %s\n", p.Translation)
	fmt.Fprintf(&b, "This Position has %d nested positions\n", len(p.children))
	if p.Model == nil {
		b.WriteString("This Position's Model is nil\n")
	} else {
		b.WriteString("This Position's Model is\n")
		b.WriteString(p.Model.String())
	}
	return b.String()
}
