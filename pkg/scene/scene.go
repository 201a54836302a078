package scene

import (
	"fmt"
	"strings"

	"github.com/taigrr/wire3d/pkg/math3d"
)

// Scene is the root of rendering: a camera and an ordered list of
// top-level Positions.
type Scene struct {
	Name      string
	Camera    *Camera
	Positions []*Position
	Debug     bool // Trace the whole pipeline
}

// New creates an empty scene with a default perspective camera.
func New(name string) *Scene {
	return &Scene{
		Name:   name,
		Camera: NewCamera(),
	}
}

// AddPosition appends top-level positions.
func (s *Scene) AddPosition(ps ...*Position) {
	for _, p := range ps {
		if p == nil {
			panic("scene: nil position added to scene " + s.Name)
		}
	}
	s.Positions = append(s.Positions, ps...)
}

// Position returns the first top-level position with the given name, or nil.
func (s *Scene) Position(name string) *Position {
	for _, p := range s.Positions {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Models returns every distinct model referenced anywhere in the tree, in
// pre-order of first reference.
func (s *Scene) Models() []*Model {
	seen := make(map[*Model]bool)
	var out []*Model
	for _, root := range s.Positions {
		root.Walk(func(p *Position, _ math3d.Vec3) bool {
			if p.Model != nil && !seen[p.Model] {
				seen[p.Model] = true
				out = append(out, p.Model)
			}
			return true
		})
	}
	return out
}

func (s *Scene) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scene: %s\n", s.Name)
	if s.Camera != nil {
		b.WriteString(s.Camera.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "This Scene has %d positions\n", len(s.Positions))
	for i, p := range s.Positions {
		fmt.Fprintf(&b, "Position %d: %s\n", i, p.Name)
	}
	return b.String()
}
