package scene

import (
	"errors"
	"fmt"
)

// Structural problems reported by Check and CheckPrimitives.
var (
	ErrNoVertices       = errors.New("model has primitives but no vertices")
	ErrNoPrimitives     = errors.New("model has vertices but no primitives")
	ErrIndexOutOfRange  = errors.New("primitive index out of range")
	ErrNonFiniteVertex  = errors.New("vertex coordinate is NaN or infinite")
	ErrPointRadiusRange = errors.New("point radius is negative")
)

// Check looks for obvious problems with a model that is about to be
// rendered. It returns nil if none are found; otherwise the findings joined
// with errors.Join. A non-nil result is a warning: the model can still be
// rendered, but some of it may be skipped or look wrong.
func Check(m *Model) error {
	var errs []error

	if len(m.vertices) == 0 && len(m.primitives) != 0 {
		errs = append(errs, fmt.Errorf("%s: %w", m.Name, ErrNoVertices))
	}
	if len(m.vertices) != 0 && len(m.primitives) == 0 {
		errs = append(errs, fmt.Errorf("%s: %w", m.Name, ErrNoPrimitives))
	}
	for i, v := range m.vertices {
		if !v.IsFinite() {
			errs = append(errs, fmt.Errorf("%s: vertex %d %s: %w", m.Name, i, v, ErrNonFiniteVertex))
		}
	}
	if err := CheckPrimitives(m); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// CheckPrimitives verifies that every index of every primitive refers to a
// vertex in the model's own vertex list.
func CheckPrimitives(m *Model) error {
	n := len(m.vertices)
	var errs []error

	for i, p := range m.primitives {
		for _, idx := range p.Indices() {
			if idx < 0 || idx >= n {
				errs = append(errs, fmt.Errorf("%s: primitive %d %s: index %d with %d vertices: %w",
					m.Name, i, p, idx, n, ErrIndexOutOfRange))
			}
		}
		if pt, ok := p.(Point); ok && pt.Radius < 0 {
			errs = append(errs, fmt.Errorf("%s: primitive %d %s: %w", m.Name, i, p, ErrPointRadiusRange))
		}
	}

	return errors.Join(errs...)
}
