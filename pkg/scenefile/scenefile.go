// Package scenefile reads scene descriptions written in TOML or YAML and
// builds them into a scene.Scene ready for rendering.
//
// A description names a camera, a tree of positions and the model at each
// position. Models come from a builder (square, cube, axes2d, ...), from a
// glTF/GLB or OBJ file, or from a named entry of the top-level models table
// so that several positions can share one model.
package scenefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownModel is returned for a model naming no known builder,
	// file format or models table entry.
	ErrUnknownModel = errors.New("unknown model")

	// ErrUnknownFormat is returned for a description file whose extension
	// is neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown scene file format")
)

// Format is the encoding of a scene description.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// File is the decoded form of a scene description.
type File struct {
	Name      string           `toml:"name" yaml:"name"`
	Debug     bool             `toml:"debug" yaml:"debug"`
	Camera    *Camera          `toml:"camera" yaml:"camera"`
	Models    map[string]Model `toml:"models" yaml:"models"`
	Positions []Position       `toml:"positions" yaml:"positions"`
}

// Camera describes the view volume. Omitted bounds take the scene package
// defaults; Perspective defaults to true.
type Camera struct {
	Perspective *bool    `toml:"perspective" yaml:"perspective"`
	Near        *float64 `toml:"near" yaml:"near"`
	Left        *float64 `toml:"left" yaml:"left"`
	Right       *float64 `toml:"right" yaml:"right"`
	Bottom      *float64 `toml:"bottom" yaml:"bottom"`
	Top         *float64 `toml:"top" yaml:"top"`
}

// Position is one node of the scene tree.
type Position struct {
	Name      string     `toml:"name" yaml:"name"`
	Translate [3]float64 `toml:"translate" yaml:"translate"`
	Visible   *bool      `toml:"visible" yaml:"visible"`
	Debug     bool       `toml:"debug" yaml:"debug"`
	Model     *Model     `toml:"model" yaml:"model"`
	Children  []Position `toml:"children" yaml:"children"`
}

// Model says where a position's model comes from. Exactly one of Builder,
// File or Use is set.
type Model struct {
	Builder string    `toml:"builder" yaml:"builder"`
	Args    []float64 `toml:"args" yaml:"args"`
	File    string    `toml:"file" yaml:"file"`
	Use     string    `toml:"use" yaml:"use"`

	// Normalize rescales the model so its largest dimension is this size.
	Normalize float64 `toml:"normalize" yaml:"normalize"`
	// PointCloud draws the model's referenced vertices as points of this
	// pixel radius instead of its primitives. Negative disables it.
	PointCloud *int `toml:"point_cloud" yaml:"point_cloud"`
	// Color paints every vertex, as "#rrggbb".
	Color   string `toml:"color" yaml:"color"`
	Visible *bool  `toml:"visible" yaml:"visible"`
}

type decoder interface {
	Decode(v any) error
}

type decoderFunc func(r io.Reader) decoder

var decoders = map[Format]decoderFunc{
	TOML: func(r io.Reader) decoder {
		return toml.NewDecoder(r).DisallowUnknownFields()
	},
	YAML: func(r io.Reader) decoder {
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		return d
	},
}

// Parse decodes a scene description. Unknown fields are errors.
func Parse(r io.Reader, format Format) (*File, error) {
	newDecoder, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	var f File
	if err := newDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode %v: %w", format, err)
	}
	return &f, nil
}

// Open reads and parses the description at path.
func Open(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer fp.Close()
	return Parse(bufio.NewReader(fp), format)
}
