package cityjson

import "fmt"

// TransformPoints reconstructs real-world coordinates for a sequence of
// vertex indices. A nested list of rings is flattened one level before
// indexing, so a polygon with holes resolves to the points of all its
// rings in order; callers that need a single ring must pre-select it.
// The result always holds exactly one point per input index, in input
// order. An out-of-range index is an error, not a skipped point.
func (d *Document) TransformPoints(seq []any) ([][3]float64, error) {
	indices, err := flattenIndices(seq)
	if err != nil {
		return nil, err
	}

	points := make([][3]float64, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(d.Vertices) {
			return nil, fmt.Errorf("vertex index %d out of range (table has %d vertices)", idx, len(d.Vertices))
		}
		v := d.Vertices[idx]
		if len(v) < 3 {
			return nil, fmt.Errorf("vertex %d has %d coordinates, want 3", idx, len(v))
		}
		points = append(points, d.Transform.Apply(v))
	}
	return points, nil
}

// flattenIndices coerces a decoded boundary sequence into vertex indices,
// flattening one level of ring nesting.
func flattenIndices(seq []any) ([]int, error) {
	out := make([]int, 0, len(seq))
	for _, el := range seq {
		switch v := el.(type) {
		case float64:
			out = append(out, int(v))
		case []any:
			for _, inner := range v {
				f, ok := inner.(float64)
				if !ok {
					return nil, fmt.Errorf("ring element %T is not a vertex index", inner)
				}
				out = append(out, int(f))
			}
		default:
			return nil, fmt.Errorf("boundary element %T is neither a vertex index nor a ring", el)
		}
	}
	return out, nil
}
