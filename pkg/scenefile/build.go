package scenefile

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/wire3d/pkg/models"
	"github.com/taigrr/wire3d/pkg/scene"
)

// Decode parses a scene description and builds it. Model files are
// resolved against the working directory.
func Decode(r io.Reader, format Format) (*scene.Scene, error) {
	f, err := Parse(r, format)
	if err != nil {
		return nil, err
	}
	return f.Build("")
}

// Load reads the description at path and builds it. Model files are
// resolved against the directory holding path.
func Load(path string) (*scene.Scene, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	s, err := f.Build(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	return s, nil
}

// builder turns one File into a Scene. Every model is built once per
// description, so positions that use the same file or models entry share
// one *scene.Model.
type builder struct {
	file  *File
	dir   string
	cam   *scene.Camera
	files map[string]*scene.Model
	named map[string]*scene.Model
	using map[string]bool
}

// Build creates the scene the description names. Relative model file paths
// are resolved against dir.
func (f *File) Build(dir string) (*scene.Scene, error) {
	cam, err := f.Camera.build()
	if err != nil {
		return nil, err
	}

	s := scene.New(f.Name)
	s.Camera = cam
	s.Debug = f.Debug

	b := &builder{
		file:  f,
		dir:   dir,
		cam:   cam,
		files: make(map[string]*scene.Model),
		named: make(map[string]*scene.Model),
		using: make(map[string]bool),
	}
	for i := range f.Positions {
		p, err := b.position(&f.Positions[i])
		if err != nil {
			return nil, err
		}
		s.AddPosition(p)
	}
	return s, nil
}

func (c *Camera) build() (*scene.Camera, error) {
	cam := scene.NewCamera()
	if c == nil {
		return cam, nil
	}

	left, right := orDefault(c.Left, scene.DefaultLeft), orDefault(c.Right, scene.DefaultRight)
	bottom, top := orDefault(c.Bottom, scene.DefaultBottom), orDefault(c.Top, scene.DefaultTop)
	cam.Perspective = c.Perspective == nil || *c.Perspective
	cam.Near = orDefault(c.Near, scene.DefaultNear)
	cam.Left, cam.Right, cam.Bottom, cam.Top = left, right, bottom, top
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	return cam, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (b *builder) position(p *Position) (*scene.Position, error) {
	var m *scene.Model
	if p.Model != nil {
		var err error
		m, err = b.model(p.Model)
		if err != nil {
			return nil, fmt.Errorf("position %q: %w", p.Name, err)
		}
	}

	name := p.Name
	if name == "" && m != nil {
		name = m.Name
	}
	pos := scene.NewNamedPosition(name, m)
	pos.Translate(p.Translate[0], p.Translate[1], p.Translate[2])
	pos.Visible = p.Visible == nil || *p.Visible
	pos.Debug = p.Debug

	for i := range p.Children {
		c, err := b.position(&p.Children[i])
		if err != nil {
			return nil, fmt.Errorf("position %q: %w", p.Name, err)
		}
		pos.AddChild(c)
	}
	return pos, nil
}

func (b *builder) model(def *Model) (*scene.Model, error) {
	set := 0
	for _, s := range []string{def.Builder, def.File, def.Use} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("model needs exactly one of builder, file or use")
	}

	switch {
	case def.Use != "":
		m, err := b.use(def.Use)
		if err != nil {
			return nil, err
		}
		return finish(m, def)
	case def.File != "":
		m, err := b.load(def.File)
		if err != nil {
			return nil, err
		}
		return finish(m, def)
	default:
		build, ok := builders[strings.ToLower(def.Builder)]
		if !ok {
			return nil, fmt.Errorf("%w: builder %q", ErrUnknownModel, def.Builder)
		}
		m, err := build(b.cam, def.Args)
		if err != nil {
			return nil, fmt.Errorf("builder %s: %w", def.Builder, err)
		}
		return finish(m, def)
	}
}

// use returns the models table entry name, building it on first use.
func (b *builder) use(name string) (*scene.Model, error) {
	if m, ok := b.named[name]; ok {
		return m, nil
	}
	def, ok := b.file.Models[name]
	if !ok {
		return nil, fmt.Errorf("%w: models table has no %q", ErrUnknownModel, name)
	}
	if b.using[name] {
		return nil, fmt.Errorf("models entry %q uses itself", name)
	}
	b.using[name] = true
	defer delete(b.using, name)

	m, err := b.model(&def)
	if err != nil {
		return nil, fmt.Errorf("models entry %q: %w", name, err)
	}
	b.named[name] = m
	return m, nil
}

func (b *builder) load(file string) (*scene.Model, error) {
	path := file
	if b.dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(b.dir, path)
	}
	if m, ok := b.files[path]; ok {
		return m, nil
	}

	var (
		m   *scene.Model
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		m, err = models.LoadGLTF(path)
	case ".obj":
		m, err = models.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("%w: file %q (use .obj, .gltf or .glb)", ErrUnknownModel, file)
	}
	if err != nil {
		return nil, err
	}
	b.files[path] = m
	return m, nil
}

// finish applies the optional post-processing of def. A loaded model is
// never modified in place; each step derives a new one.
func finish(m *scene.Model, def *Model) (*scene.Model, error) {
	if def.Normalize < 0 {
		return nil, fmt.Errorf("normalize size must be positive, got %v", def.Normalize)
	}
	if def.Normalize > 0 {
		m = models.Normalize(m, def.Normalize)
	}
	if def.Color != "" {
		c, err := colorful.Hex(def.Color)
		if err != nil {
			return nil, fmt.Errorf("model color: %w", err)
		}
		m = paint(m, c)
	}
	if def.PointCloud != nil && *def.PointCloud >= 0 {
		m = scene.PointCloud(m, *def.PointCloud)
	}
	if def.Visible != nil {
		m = m.Derive(m.Name, vertices(m))
		m.Visible = *def.Visible
	}
	return m, nil
}

// paint returns a copy of m with every vertex colored c.
func paint(m *scene.Model, c colorful.Color) *scene.Model {
	r, g, b := c.RGB255()
	out := scene.NewModelFrom(m.Name, vertices(m), slices.Collect(m.Primitives()))
	out.Visible = m.Visible
	for range out.VertexCount() {
		out.AddColor(color.RGBA{r, g, b, 255})
	}
	return out
}

func vertices(m *scene.Model) []scene.Vertex {
	out := make([]scene.Vertex, 0, m.VertexCount())
	for _, v := range m.Vertices() {
		out = append(out, v)
	}
	return out
}
