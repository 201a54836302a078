package models

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/wire3d/pkg/math3d"
	"github.com/taigrr/wire3d/pkg/scene"
)

// LoadOBJ loads a Wavefront OBJ file as a wireframe model.
func LoadOBJ(path string) (*scene.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := ReadOBJ(f, name)
	if err != nil {
		return nil, fmt.Errorf("load obj %s: %w", path, err)
	}
	return m, nil
}

// ReadOBJ parses OBJ geometry. It understands vertices ("v x y z", with
// optional "r g b" colors in [0, 1]), polylines ("l"), points ("p") and
// faces ("f", drawn as their outlines). Indices are 1-based; negative
// indices count back from the last vertex. Other statements are ignored.
func ReadOBJ(r io.Reader, name string) (*scene.Model, error) {
	out := newMesh(name)
	var colors []color.RGBA
	colored := true

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, c, hasColor, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			out.addVertex(v)
			colors = append(colors, c)
			colored = colored && hasColor
		case "l", "p", "f":
			idx, err := parseIndices(fields[1:], len(out.vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			switch fields[0] {
			case "l":
				out.addPolyline(idx...)
			case "p":
				for _, i := range idx {
					out.addPoint(i)
				}
			case "f":
				if len(idx) < 3 {
					return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
				}
				out.addFace(idx...)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if colored {
		out.setColors(0, colors)
	} else {
		out.setColors(0, nil)
	}
	return out.model()
}

func parseVertex(fields []string) (math3d.Vec3, color.RGBA, bool, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, color.RGBA{}, false, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var xyz [6]float64
	n := min(len(fields), 6)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, color.RGBA{}, false, fmt.Errorf("parse vertex: %w", err)
		}
		xyz[i] = f
	}

	v := math3d.V3(xyz[0], xyz[1], xyz[2])
	if n < 6 {
		return v, color.RGBA{}, false, nil
	}
	c := color.RGBA{
		unit(float32(xyz[3])),
		unit(float32(xyz[4])),
		unit(float32(xyz[5])),
		255,
	}
	return v, c, true, nil
}

// parseIndices resolves "i", "i/t", "i/t/n" and "i//n" references to
// 0-based vertex indices.
func parseIndices(fields []string, nVertices int) ([]int, error) {
	idx := make([]int, 0, len(fields))
	for _, f := range fields {
		ref, _, _ := strings.Cut(f, "/")
		i, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("parse index %q: %w", f, err)
		}
		switch {
		case i > 0:
			i--
		case i < 0:
			i += nVertices
		default:
			return nil, fmt.Errorf("index 0 is not valid")
		}
		if i < 0 || i >= nVertices {
			return nil, fmt.Errorf("index %s out of range for %d vertices", ref, nVertices)
		}
		idx = append(idx, i)
	}
	return idx, nil
}
