package geometry

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrInvalidGeoJSON is returned when a search area document cannot be decoded.
var ErrInvalidGeoJSON = errors.New("invalid GeoJSON")

// ReadAreas decodes a GeoJSON FeatureCollection, Feature or bare geometry and
// returns its geometries in document order. Features without a geometry yield
// a nil entry, which BBoxes rejects.
func ReadAreas(data []byte) ([]orb.Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGeoJSON, err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidGeoJSON, err)
		}
		out := make([]orb.Geometry, 0, len(fc.Features))
		for _, f := range fc.Features {
			out = append(out, f.Geometry)
		}
		return out, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidGeoJSON, err)
		}
		return []orb.Geometry{f.Geometry}, nil
	case "":
		return nil, fmt.Errorf("%w: missing type member", ErrInvalidGeoJSON)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidGeoJSON, err)
		}
		return []orb.Geometry{g.Geometry()}, nil
	}
}
