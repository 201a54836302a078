package scenefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/wire3d/pkg/math3d"
	"github.com/taigrr/wire3d/pkg/scene"
)

const sampleTOML = `
name = "demo"
debug = true

[camera]
perspective = false
left = -2
right = 2

[models.box]
builder = "cube"
args = [1]

[[positions]]
name = "left"
translate = [-1, 0, -3]
model = { use = "box" }

[[positions]]
name = "right"
translate = [1, 0, -3]
visible = false
model = { use = "box" }

  [[positions.children]]
  name = "axes"
  debug = true
  model = { builder = "axes3d", color = "#ff0000" }
`

func TestDecodeTOML(t *testing.T) {
	s, err := Decode(strings.NewReader(sampleTOML), TOML)
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	assert.True(t, s.Debug)
	assert.False(t, s.Camera.Perspective)
	assert.Equal(t, -2.0, s.Camera.Left)
	assert.Equal(t, 2.0, s.Camera.Right)
	assert.Equal(t, scene.DefaultBottom, s.Camera.Bottom)
	assert.Equal(t, scene.DefaultNear, s.Camera.Near)

	require.Len(t, s.Positions, 2)
	left, right := s.Positions[0], s.Positions[1]
	assert.Same(t, left.Model, right.Model, "models table entries are shared")
	assert.Equal(t, math3d.V3(-1, 0, -3), left.Translation)
	assert.True(t, left.Visible)
	assert.False(t, right.Visible)

	axes := right.Child("axes")
	require.NotNil(t, axes)
	assert.True(t, axes.Debug)
	require.True(t, axes.Model.HasColors())
	c, _ := axes.Model.Color(3)
	assert.Equal(t, uint8(255), c.R)
	assert.Zero(t, c.G)

	assert.Len(t, s.Models(), 2)
}

const sampleYAML = `
name: yaml demo
camera:
  near: 2
  top: 0.5
  bottom: -0.5
positions:
  - name: root
    children:
      - name: curve
        translate: [0, 0, -4]
        model:
          builder: hilbert
          args: [2, 2]
          normalize: 1
      - name: dots
        model:
          builder: square
          point_cloud: 2
          visible: false
`

func TestDecodeYAML(t *testing.T) {
	s, err := Decode(strings.NewReader(sampleYAML), YAML)
	require.NoError(t, err)

	assert.Equal(t, "yaml demo", s.Name)
	assert.True(t, s.Camera.Perspective)
	assert.Equal(t, 2.0, s.Camera.Near)
	assert.Equal(t, 0.5, s.Camera.Top)

	root := s.Position("root")
	require.NotNil(t, root)
	assert.Nil(t, root.Model, "a position without a model is a group")
	require.Len(t, root.Children(), 2)

	curve := root.Child("curve")
	lo, hi := curve.Model.Bounds()
	assert.InDelta(t, 1, hi.Sub(lo).MaxComponent(), 1e-9)
	assert.Equal(t, 64, curve.Model.PrimitiveCount())

	dots := root.Child("dots").Model
	assert.False(t, dots.Visible)
	require.Equal(t, 4, dots.PrimitiveCount())
	assert.Equal(t, scene.NewPointRadius(0, 2), dots.Primitive(0))
}

func TestDecodeCameraZeroBounds(t *testing.T) {
	const screen = `
[camera]
perspective = false
left = 0.0
right = 4.0
bottom = 0.0
top = 4.0
`
	s, err := Decode(strings.NewReader(screen), TOML)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Camera.Left)
	assert.Equal(t, 4.0, s.Camera.Right)
	assert.Equal(t, 0.0, s.Camera.Bottom)
	assert.Equal(t, 4.0, s.Camera.Top)

	s, err = Decode(strings.NewReader("camera: {right: 3}"), YAML)
	require.NoError(t, err)
	assert.Equal(t, scene.DefaultLeft, s.Camera.Left)
	assert.Equal(t, 3.0, s.Camera.Right)

	_, err = Decode(strings.NewReader("[camera]\nnear = 0.0\n"), TOML)
	assert.Error(t, err, "explicit zero near plane is invalid for a perspective camera")
}

func TestDecodeEmpty(t *testing.T) {
	for _, format := range []Format{TOML, YAML} {
		t.Run(format.String(), func(t *testing.T) {
			s, err := Decode(strings.NewReader(""), format)
			require.NoError(t, err)
			assert.Empty(t, s.Positions)
			assert.Equal(t, scene.NewCamera(), s.Camera)
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("name = \"x\"\nbogus = 1\n"), TOML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("name: x\nbogus: 1\n"), YAML)
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		unknown bool
	}{
		{"unknown builder", `positions: [{model: {builder: teapot}}]`, true},
		{"unknown models entry", `positions: [{model: {use: nothing}}]`, true},
		{"unknown file type", `positions: [{model: {file: model.stl}}]`, true},
		{"two sources", `positions: [{model: {builder: cube, use: box}}]`, false},
		{"no source", `positions: [{model: {args: [1]}}]`, false},
		{"self reference", "models: {a: {use: a}}\npositions: [{model: {use: a}}]", false},
		{"too many args", `positions: [{model: {builder: square, args: [1, 2]}}]`, false},
		{"non-positive size", `positions: [{model: {builder: cube, args: [0]}}]`, false},
		{"fractional count", `positions: [{model: {builder: spiral, args: [1.5]}}]`, false},
		{"too many levels", `positions: [{model: {builder: sierpinski, args: [11]}}]`, false},
		{"huge gasket", `positions: [{model: {builder: polygasket, args: [20, 6]}}]`, false},
		{"two-sided gasket", `positions: [{model: {builder: polygasket, args: [2, 1]}}]`, false},
		{"cone top above apex", `positions: [{model: {builder: conesector, args: [1, 1, 2]}}]`, false},
		{"cone too few longitudes", `positions: [{model: {builder: conesector, args: [1, 1, 1, 0, 3, 4, 3]}}]`, false},
		{"far inside near", "camera: {near: 5}\npositions: [{model: {builder: frustum, args: [4]}}]", false},
		{"bad color", `positions: [{model: {builder: cube, color: "#zz0000"}}]`, false},
		{"bad camera", `camera: {left: 2, right: 1}`, false},
		{"missing file", `positions: [{model: {file: missing.obj}}]`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.src), YAML)
			require.Error(t, err)
			assert.Equal(t, tc.unknown, errors.Is(err, ErrUnknownModel), err)
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"scene.toml", TOML, false},
		{"scene.YAML", YAML, false},
		{"dir/scene.yml", YAML, false},
		{"scene.json", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FormatOf(tc.path)
			if tc.err {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadResolvesFilesOnce(t *testing.T) {
	dir := t.TempDir()
	obj := "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(obj), 0o644))
	desc := `
[[positions]]
name = "a"
model = { file = "tri.obj" }

[[positions]]
name = "b"
model = { file = "tri.obj", normalize = 2 }

[[positions]]
name = "c"
model = { file = "tri.obj" }
`
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(desc), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s.Positions, 3)

	a, b, c := s.Positions[0].Model, s.Positions[1].Model, s.Positions[2].Model
	assert.Equal(t, "tri", a.Name)
	assert.Same(t, a, c)
	assert.NotSame(t, a, b)
	assert.Equal(t, 3, a.PrimitiveCount())

	v, _ := a.Vertex(1)
	assert.Equal(t, scene.V(1, 0, 0), v, "normalizing b leaves the shared model alone")

	_, err = Load(filepath.Join(dir, "scene.ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestBuilders(t *testing.T) {
	names := Builders()
	assert.IsIncreasing(t, names)
	for _, want := range []string{"square", "cube", "grid", "axes2d", "axes3d", "frustum", "sierpinski", "hilbert", "spiral",
		"sierpinskicurve", "polygasket", "pentagasket", "ninja", "conesector"} {
		assert.Contains(t, names, want)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			m, err := builders[name](scene.NewCamera(), nil)
			require.NoError(t, err)
			assert.NoError(t, scene.Check(m))
		})
	}
}

func TestDemo(t *testing.T) {
	s, err := Demo()
	require.NoError(t, err)
	world := s.Position("world")
	require.NotNil(t, world)
	assert.Len(t, world.Children(), 7)

	right := world.Child("right cube").Model
	assert.Same(t, right, s.Models()[3], "uncolored use shares the models entry")
	assert.NotSame(t, right, world.Child("left cube").Model)
	for _, m := range s.Models() {
		assert.NoError(t, scene.Check(m), m.Name)
	}
}
