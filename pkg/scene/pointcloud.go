package scene

import "slices"

// PointCloud converts a model into one made only of Points: one point of the
// given pixel radius for every vertex referenced by m's primitives, in
// vertex order. Unreferenced and out-of-range indices produce no point.
// The vertex list (and colors) are copied, so the result is independent of m.
func PointCloud(m *Model, radius int) *Model {
	used := make([]bool, len(m.vertices))
	for _, p := range m.primitives {
		for _, i := range p.Indices() {
			if i >= 0 && i < len(used) {
				used[i] = true
			}
		}
	}

	pc := NewModelFrom("PointCloud: "+m.Name, m.vertices, nil)
	pc.Visible = m.Visible
	pc.colors = slices.Clone(m.colors)
	for i, ok := range used {
		if ok {
			pc.AddPrimitive(NewPointRadius(i, radius))
		}
	}
	return pc
}
