package models

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/wire3d/pkg/math3d"
	"github.com/taigrr/wire3d/pkg/scene"
)

const attrColor = "COLOR_0"

// LoadGLTF loads a glTF or GLB file as a wireframe model. Line, line strip,
// line loop and point primitives are kept as they are; triangle primitives
// become their edges.
func LoadGLTF(path string) (*scene.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := FromDocument(doc, name)
	if err != nil {
		return nil, fmt.Errorf("load gltf %s: %w", path, err)
	}
	return m, nil
}

// FromDocument converts every mesh of a decoded glTF document into a single
// wireframe model. Node transforms are not applied.
func FromDocument(doc *gltf.Document, name string) (*scene.Model, error) {
	out := newMesh(name)
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			if err := addPrimitive(doc, prim, out); err != nil {
				return nil, fmt.Errorf("process mesh %q primitive %d: %w", m.Name, i, err)
			}
		}
	}
	return out.model()
}

// addPrimitive appends the vertices of one glTF primitive and the edges or
// points its mode describes.
func addPrimitive(doc *gltf.Document, prim *gltf.Primitive, out *mesh) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	base := len(out.vertices)
	for _, p := range positions {
		out.addVertex(p)
	}

	var colors []color.RGBA
	if colIdx, ok := prim.Attributes[attrColor]; ok {
		colors, err = readColorAccessor(doc, colIdx)
		if err != nil {
			return fmt.Errorf("read colors: %w", err)
		}
		if len(colors) != len(positions) {
			colors = nil
		}
	}
	out.setColors(base, colors)

	var indices []int
	if prim.Indices != nil {
		indices, err = readIndices(doc, *prim.Indices)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(positions) {
			return fmt.Errorf("index %d at %d out of range for %d vertices", idx, i, len(positions))
		}
		indices[i] = base + idx
	}

	switch prim.Mode {
	case gltf.PrimitivePoints:
		for _, i := range indices {
			out.addPoint(i)
		}
	case gltf.PrimitiveLines:
		for i := 0; i+1 < len(indices); i += 2 {
			out.addEdge(indices[i], indices[i+1])
		}
	case gltf.PrimitiveLineStrip:
		out.addPolyline(indices...)
	case gltf.PrimitiveLineLoop:
		if len(indices) > 1 {
			out.addFace(indices...)
		}
	case gltf.PrimitiveTriangles:
		for i := 0; i+2 < len(indices); i += 3 {
			out.addFace(indices[i], indices[i+1], indices[i+2])
		}
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(indices); i++ {
			out.addFace(indices[i], indices[i+1], indices[i+2])
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(indices); i++ {
			out.addFace(indices[0], indices[i], indices[i+1])
		}
	default:
		return fmt.Errorf("unsupported primitive mode %v", prim.Mode)
	}
	return nil
}

// readVec3Accessor reads float VEC3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	floats, err := readFloats(doc, accessor, 3)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result, nil
}

// readColorAccessor reads float VEC3 or VEC4 colors. Other encodings are
// ignored.
func readColorAccessor(doc *gltf.Document, accessorIdx int) ([]color.RGBA, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, nil
	}
	var n int
	switch accessor.Type {
	case gltf.AccessorVec3:
		n = 3
	case gltf.AccessorVec4:
		n = 4
	default:
		return nil, nil
	}

	floats, err := readFloats(doc, accessor, n)
	if err != nil {
		return nil, err
	}
	result := make([]color.RGBA, len(floats))
	for i, f := range floats {
		result[i] = color.RGBA{unit(f[0]), unit(f[1]), unit(f[2]), 255}
	}
	return result, nil
}

func unit(f float32) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, float64(f))) * 255))
}

// readIndices reads index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}
	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		b := data[start+i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

func accessorAt(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

// readFloats reads n float32 components per element.
func readFloats(doc *gltf.Document, accessor *gltf.Accessor, n int) ([][4]float32, error) {
	data, start, stride, err := accessorBytes(doc, accessor, n*4)
	if err != nil {
		return nil, err
	}
	result := make([][4]float32, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[offset+j*4:])
			result[i][j] = math.Float32frombits(bits)
		}
	}
	return result, nil
}

// accessorBytes locates an accessor's elements in its buffer and checks
// that all of them are in bounds.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	data = doc.Buffers[bufferView.Buffer].Data
	if data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start = bufferView.ByteOffset + accessor.ByteOffset
	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if accessor.Count > 0 {
		end := start + (accessor.Count-1)*stride + elemSize
		if start < 0 || end > len(data) {
			return nil, 0, 0, fmt.Errorf("accessor reads bytes %d..%d of a %d byte buffer", start, end, len(data))
		}
	}
	return data, start, stride, nil
}
