package footprint

import (
	"errors"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// repairedArea resolves a self-intersecting ring the way a zero-width
// buffer does: every crossing point becomes a node, the ring is split
// into simple loops at those nodes and the absolute loop areas are
// summed. A bowtie quadrilateral therefore yields the area of its two
// triangles instead of the near-zero raw shoelace value.
func repairedArea(points []orb.Point) (float64, error) {
	noded := insertCrossings(points)
	loops := splitLoops(noded)

	var total float64
	for _, loop := range loops {
		if len(loop) < 3 {
			continue
		}
		total += math.Abs(planar.Area(closedRing(loop)))
	}
	if total <= 0 {
		return 0, errors.New("ring could not be repaired to a valid polygon")
	}
	return total, nil
}

// selfIntersects reports whether any two non-adjacent edges of the open
// ring properly cross. Footprint rings are small, so the quadratic scan
// is fine.
func selfIntersects(points []orb.Point) bool {
	n := len(points)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if adjacentEdges(i, j, n) {
				continue
			}
			a, b := points[i], points[(i+1)%n]
			c, d := points[j], points[(j+1)%n]
			if _, ok := segmentCrossing(a, b, c, d); ok {
				return true
			}
		}
	}
	return false
}

func adjacentEdges(i, j, n int) bool {
	return i == j || (i+1)%n == j || (j+1)%n == i
}

// insertCrossings rewrites the ring as a node chain where every crossing
// point appears on both edges involved, ordered along each edge.
func insertCrossings(points []orb.Point) []orb.Point {
	n := len(points)
	var noded []orb.Point

	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		noded = append(noded, a)

		type hit struct {
			t float64
			p orb.Point
		}
		var hits []hit
		for j := 0; j < n; j++ {
			if adjacentEdges(i, j, n) {
				continue
			}
			c, d := points[j], points[(j+1)%n]
			if p, ok := segmentCrossing(a, b, c, d); ok {
				hits = append(hits, hit{edgeParam(a, b, p), p})
			}
		}
		sort.Slice(hits, func(x, y int) bool { return hits[x].t < hits[y].t })
		for _, h := range hits {
			noded = append(noded, h.p)
		}
	}
	return noded
}

// splitLoops walks the node chain and cuts out a loop every time a node
// repeats, leaving the outer walk to continue past the cut.
func splitLoops(points []orb.Point) [][]orb.Point {
	var loops [][]orb.Point
	var walk []orb.Point

	for _, p := range points {
		seen := -1
		for k, q := range walk {
			if pointsClose(p, q) {
				seen = k
				break
			}
		}
		if seen >= 0 {
			loop := make([]orb.Point, len(walk)-seen)
			copy(loop, walk[seen:])
			loops = append(loops, loop)
			walk = walk[:seen+1]
			continue
		}
		walk = append(walk, p)
	}
	if len(walk) >= 3 {
		loops = append(loops, walk)
	}
	return loops
}

// segmentCrossing returns the proper crossing point of segments ab and
// cd. Shared endpoints and collinear overlaps do not count as crossings.
func segmentCrossing(a, b, c, d orb.Point) (orb.Point, bool) {
	r := orb.Point{b[0] - a[0], b[1] - a[1]}
	s := orb.Point{d[0] - c[0], d[1] - c[1]}

	denom := cross(r, s)
	if math.Abs(denom) < 1e-12 {
		return orb.Point{}, false
	}

	ac := orb.Point{c[0] - a[0], c[1] - a[1]}
	t := cross(ac, s) / denom
	u := cross(ac, r) / denom

	const eps = 1e-12
	if t <= eps || t >= 1-eps || u <= eps || u >= 1-eps {
		return orb.Point{}, false
	}
	return orb.Point{a[0] + t*r[0], a[1] + t*r[1]}, true
}

func cross(a, b orb.Point) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// edgeParam is the position of p along the edge ab, used only to order
// crossing points on the same edge.
func edgeParam(a, b, p orb.Point) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	if math.Abs(dx) >= math.Abs(dy) {
		if dx == 0 {
			return 0
		}
		return (p[0] - a[0]) / dx
	}
	return (p[1] - a[1]) / dy
}
