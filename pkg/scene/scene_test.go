package scene

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/wire3d/pkg/math3d"
)

func square() *Model {
	m := NewModel("square")
	m.AddVertex(V(-1, -1, 0), V(-1, 1, 0), V(1, 1, 0), V(1, -1, 0))
	m.AddPrimitive(
		NewLineSegment(0, 1),
		NewLineSegment(1, 2),
		NewLineSegment(2, 3),
		NewLineSegment(3, 0),
	)
	return m
}

func TestModelAppendAssignsIndices(t *testing.T) {
	m := NewModel("m")
	assert.True(t, m.Visible)
	assert.Equal(t, 0, m.VertexCount())

	m.AddVertex(V(1, 2, 3))
	m.AddVertex(V(4, 5, 6), V(7, 8, 9))
	require.Equal(t, 3, m.VertexCount())

	v, ok := m.Vertex(1)
	require.True(t, ok)
	assert.Equal(t, V(4, 5, 6), v)

	_, ok = m.Vertex(3)
	assert.False(t, ok)
	_, ok = m.Vertex(-1)
	assert.False(t, ok)

	var idx []int
	for i := range m.Vertices() {
		idx = append(idx, i)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
}

func TestNewModelFromCopies(t *testing.T) {
	vs := []Vertex{V(0, 0, 0), V(1, 0, 0)}
	ps := []Primitive{NewLineSegment(0, 1)}
	m := NewModelFrom("line", vs, ps)

	vs[0] = V(9, 9, 9)
	v, _ := m.Vertex(0)
	assert.Equal(t, V(0, 0, 0), v, "model must not alias the caller's slice")
	assert.Equal(t, 1, m.PrimitiveCount())
}

func TestModelColors(t *testing.T) {
	m := NewModel("c")
	m.AddVertex(V(0, 0, 0), V(1, 0, 0))
	m.AddColor(color.RGBA{255, 0, 0, 255})
	assert.False(t, m.HasColors(), "one color for two vertices is not per-vertex")

	m.AddColor(color.RGBA{0, 0, 255, 255})
	require.True(t, m.HasColors())
	c, ok := m.Color(1)
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, c)
}

func TestModelDeriveIsIndependent(t *testing.T) {
	m := square()
	d := m.Derive("moved", []Vertex{V(0, 0, 0), V(0, 1, 0), V(1, 1, 0), V(1, 0, 0)})

	d.AddPrimitive(NewPoint(0))
	assert.Equal(t, 4, m.PrimitiveCount())
	assert.Equal(t, 5, d.PrimitiveCount())
	assert.Equal(t, "moved", d.Name)
}

func TestModelBounds(t *testing.T) {
	lo, hi := NewModel("empty").Bounds()
	assert.Equal(t, math3d.Zero3(), lo)
	assert.Equal(t, math3d.Zero3(), hi)

	m := NewModel("b")
	m.AddVertex(V(-1, 2, 0), V(3, -4, 5))
	lo, hi = m.Bounds()
	assert.Equal(t, math3d.V3(-1, -4, 0), lo)
	assert.Equal(t, math3d.V3(3, 2, 5), hi)
}

func TestPrimitiveConstructors(t *testing.T) {
	ls := NewLineSegment(2, 7)
	assert.Equal(t, []int{2, 7}, ls.Indices())

	pt := NewPointRadius(4, 3)
	assert.Equal(t, []int{4}, pt.Indices())
	assert.Equal(t, 3, pt.Radius)

	assert.Panics(t, func() { NewLineSegment(-1, 0) })
	assert.Panics(t, func() { NewPointRadius(0, -1) })
	assert.Panics(t, func() { LineSegmentFromIndices([]int{1, 2, 3}) })
	assert.Equal(t, NewLineSegment(1, 2), LineSegmentFromIndices([]int{1, 2}))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		model func() *Model
		want  []error
	}{
		{"valid", square, nil},
		{"empty", func() *Model { return NewModel("e") }, nil},
		{"no primitives", func() *Model {
			m := NewModel("v")
			m.AddVertex(V(0, 0, 0))
			return m
		}, []error{ErrNoPrimitives}},
		{"no vertices", func() *Model {
			m := NewModel("p")
			m.AddPrimitive(NewPoint(0))
			return m
		}, []error{ErrNoVertices, ErrIndexOutOfRange}},
		{"bad index", func() *Model {
			m := square()
			m.AddPrimitive(NewLineSegment(3, 4))
			return m
		}, []error{ErrIndexOutOfRange}},
		{"nan vertex", func() *Model {
			m := NewModel("n")
			m.AddVertex(V(math.NaN(), 0, 0))
			m.AddPrimitive(NewPoint(0))
			return m
		}, []error{ErrNonFiniteVertex}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.model())
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, w := range tc.want {
				assert.True(t, errors.Is(err, w), "expected %v in %v", w, err)
			}
		})
	}
}

func TestCheckPrimitivesReportsEveryBadIndex(t *testing.T) {
	m := NewModel("two bad")
	m.AddVertex(V(0, 0, 0))
	m.AddPrimitive(NewLineSegment(0, 1), NewLineSegment(2, 0))

	err := CheckPrimitives(m)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, joined.Unwrap(), 2)
}

func TestPointCloud(t *testing.T) {
	m := NewModel("m")
	m.AddVertex(V(0, 0, 0), V(1, 0, 0), V(2, 0, 0), V(3, 0, 0))
	m.AddPrimitive(NewLineSegment(0, 2), NewLineSegment(2, 3), NewLineSegment(3, 9))

	pc := PointCloud(m, 2)
	assert.Equal(t, "PointCloud: m", pc.Name)
	assert.Equal(t, 4, pc.VertexCount())
	require.Equal(t, 3, pc.PrimitiveCount())

	var got []int
	for p := range pc.Primitives() {
		pt, ok := p.(Point)
		require.True(t, ok)
		assert.Equal(t, 2, pt.Radius)
		got = append(got, pt.V)
	}
	assert.Equal(t, []int{0, 2, 3}, got)
	assert.Equal(t, 3, m.PrimitiveCount(), "source model is unchanged")
}

func TestPositionTranslateAndChildren(t *testing.T) {
	root := NewPosition(square()).Translate(1, 2, 3)
	assert.Equal(t, "square", root.Name)
	assert.True(t, root.Visible)
	assert.Equal(t, math3d.V3(1, 2, 3), root.Translation)

	child := NewNamedPosition("child", nil).Translate(0, 0, -1)
	root.AddChild(child)
	assert.Same(t, child, root.Child("child"))
	assert.Nil(t, root.Child("missing"))
	assert.Panics(t, func() { root.AddChild(nil) })
}

func TestPositionWalkAccumulatesTranslation(t *testing.T) {
	leaf := NewNamedPosition("leaf", nil).Translate(0, 0, 1)
	hidden := NewNamedPosition("hidden", nil).Translate(5, 5, 5)
	hidden.AddChild(NewNamedPosition("under-hidden", nil))
	mid := NewNamedPosition("mid", nil).Translate(0, 2, 0)
	mid.AddChild(leaf)
	root := NewGroup("root", mid, hidden).Translate(1, 0, 0)

	offsets := map[string]math3d.Vec3{}
	var order []string
	root.Walk(func(p *Position, off math3d.Vec3) bool {
		order = append(order, p.Name)
		offsets[p.Name] = off
		return p.Name != "hidden"
	})

	assert.Equal(t, []string{"root", "mid", "leaf", "hidden"}, order)
	assert.Equal(t, math3d.V3(1, 0, 0), offsets["root"])
	assert.Equal(t, math3d.V3(1, 2, 0), offsets["mid"])
	assert.Equal(t, math3d.V3(1, 2, 1), offsets["leaf"])
}

func TestCamera(t *testing.T) {
	c := NewCamera()
	assert.True(t, c.Perspective)
	assert.Equal(t, DefaultNear, c.Near)
	assert.NoError(t, c.Validate())

	c.ProjOrtho(-2, 2, -1, 1)
	assert.False(t, c.Perspective)
	assert.Equal(t, -2.0, c.Left)
	assert.Equal(t, 1.0, c.Top)
	assert.Equal(t, DefaultNear, c.Near)

	assert.Panics(t, func() { c.ProjPerspective(-1, 1, -1, 1, 0) })
	assert.Panics(t, func() { c.ProjOrtho(1, -1, -1, 1) })

	bad := &Camera{Left: 1, Right: 1, Bottom: -1, Top: 1}
	assert.Error(t, bad.Validate())

	o := NewOrthoCamera()
	assert.False(t, o.Perspective)
	assert.Contains(t, o.String(), "orthographic")
}

func TestSceneModelsDeduplicates(t *testing.T) {
	shared := square()
	other := NewModel("other")

	s := New("s")
	a := NewPosition(shared)
	a.AddChild(NewPosition(shared), NewPosition(other))
	s.AddPosition(a, NewPosition(shared))

	models := s.Models()
	require.Len(t, models, 2)
	assert.Same(t, shared, models[0])
	assert.Same(t, other, models[1])
	assert.Same(t, a, s.Position("square"))
}
