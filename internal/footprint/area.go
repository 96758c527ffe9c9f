package footprint

import (
	"errors"
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"renodat/internal/cityjson"
)

// closeTolerance bounds the coordinate distance under which two ring
// points count as the same point.
const closeTolerance = 1e-9

// RingPoints resolves one boundary set to its planar outer ring: nested
// single-surface wrappers are peeled off, the vertex indices are
// reconstructed through the document transform, the vertical axis is
// dropped and a redundant closing point is removed. The second return is
// false when the shape cannot be resolved to at least a triangle.
func RingPoints(doc *cityjson.Document, boundarySet any) ([]orb.Point, bool) {
	ring, ok := peelRing(boundarySet)
	if !ok {
		return nil, false
	}
	// need at least 3 distinct points plus the closing one
	if len(ring) < 4 {
		return nil, false
	}

	coords, err := doc.TransformPoints(ring)
	if err != nil {
		log.Printf("Failed to resolve footprint ring: %v", err)
		return nil, false
	}

	points := make([]orb.Point, len(coords))
	for i, c := range coords {
		points[i] = orb.Point{c[0], c[1]}
	}
	if pointsClose(points[0], points[len(points)-1]) {
		points = points[:len(points)-1]
	}
	if len(points) < 3 {
		return nil, false
	}
	return points, true
}

// Area computes the planar footprint area in square meters of one
// boundary set. Self-intersecting rings go through an explicit repair
// pass; anything that still cannot be resolved yields (0, false) so a
// single bad surface never stops the batch.
func Area(doc *cityjson.Document, boundarySet any) (float64, bool) {
	points, ok := RingPoints(doc, boundarySet)
	if !ok {
		return 0, false
	}

	area, err := ringArea(points)
	if errors.Is(err, errSelfIntersecting) {
		area, err = repairedArea(points)
	}
	if err != nil {
		log.Printf("Failed to calculate footprint area: %v", err)
		return 0, false
	}
	if math.IsNaN(area) || math.IsInf(area, 0) {
		return 0, false
	}
	return area, true
}

var errSelfIntersecting = errors.New("ring is self-intersecting")

// ringArea computes the absolute shoelace area of an open ring, refusing
// rings whose edges cross.
func ringArea(points []orb.Point) (float64, error) {
	if selfIntersects(points) {
		return 0, errSelfIntersecting
	}
	return math.Abs(planar.Area(closedRing(points))), nil
}

// closedRing appends the closing point expected by orb.
func closedRing(points []orb.Point) orb.Ring {
	ring := make(orb.Ring, len(points), len(points)+1)
	copy(ring, points)
	return append(ring, points[0])
}

// peelRing unwraps nested single-element wrapping layers until it reaches
// a flat sequence of vertex indices. Real inputs vary between a bare
// ring, a ring wrapped in a surface list and a polygon-with-holes list,
// so the depth cannot be hardcoded.
func peelRing(b any) ([]any, bool) {
	for {
		seq, ok := b.([]any)
		if !ok || len(seq) == 0 {
			return nil, false
		}
		if _, nested := seq[0].([]any); !nested {
			return seq, true
		}
		b = seq[0]
	}
}

func pointsClose(a, b orb.Point) bool {
	return math.Abs(a[0]-b[0]) < closeTolerance && math.Abs(a[1]-b[1]) < closeTolerance
}
