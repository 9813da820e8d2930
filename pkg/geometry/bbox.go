// Package geometry reduces user-supplied search areas to the bounding boxes
// sent to the catalog.
//
// Only polygons are accepted. Every geometry of a request is checked before
// any box is returned, so a bad geometry never results in a partial search.
package geometry

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// ErrGeometry is wrapped by every GeometryError.
var ErrGeometry = errors.New("invalid geometry")

// GeometryError reports a search area that cannot be turned into a bbox.
type GeometryError struct {
	Index  int    // position of the geometry in the input, -1 when unknown
	Type   string // GeoJSON type of the offending geometry
	Reason string
}

func (e *GeometryError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s (%s)", ErrGeometry, e.Reason, e.Type)
	}
	return fmt.Sprintf("%s: geometry %d: %s (%s)", ErrGeometry, e.Index, e.Reason, e.Type)
}

func (e *GeometryError) Unwrap() error { return ErrGeometry }

// BBox returns [minx, miny, maxx, maxy] over every ring vertex of a polygon.
func BBox(g orb.Geometry) ([4]float64, error) {
	poly, ok := g.(orb.Polygon)
	if !ok {
		return [4]float64{}, &GeometryError{Index: -1, Type: typeName(g), Reason: "only polygons are allowed"}
	}

	var (
		bound orb.Bound
		seen  bool
	)
	for _, ring := range poly {
		if len(ring) == 0 {
			continue
		}
		if !seen {
			bound = ring.Bound()
			seen = true
			continue
		}
		bound = bound.Union(ring.Bound())
	}
	if !seen {
		return [4]float64{}, &GeometryError{Index: -1, Type: "Polygon", Reason: "polygon has no vertices"}
	}

	return [4]float64{bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y()}, nil
}

// BBoxes extracts the box of every geometry, in input order. The first
// geometry that fails is reported with its index.
func BBoxes(geoms []orb.Geometry) ([][4]float64, error) {
	out := make([][4]float64, 0, len(geoms))
	for i, g := range geoms {
		box, err := BBox(g)
		if err != nil {
			var gerr *GeometryError
			if errors.As(err, &gerr) {
				gerr.Index = i
			}
			return nil, err
		}
		out = append(out, box)
	}
	return out, nil
}

func typeName(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
