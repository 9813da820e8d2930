package client

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/robert-malhotra/cbers4asat/pkg/stac"
)

const (
	featureCollectionType = "FeatureCollection"
	featureType           = "Feature"
)

// FeatureCollection is an ordered GeoJSON FeatureCollection of scenes.
type FeatureCollection struct {
	Type     string       `json:"type"`
	Features []*stac.Item `json:"features"`
}

// NewFeatureCollection returns a collection holding the given features.
func NewFeatureCollection(features ...*stac.Item) *FeatureCollection {
	fc := &FeatureCollection{Type: featureCollectionType, Features: []*stac.Item{}}
	fc.Features = append(fc.Features, features...)
	return fc
}

// Len returns the number of features, tolerating a nil receiver.
func (fc *FeatureCollection) Len() int {
	if fc == nil {
		return 0
	}
	return len(fc.Features)
}

// MarshalJSON always writes "features" as an array.
func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	type alias FeatureCollection
	out := alias(fc)
	if out.Type == "" {
		out.Type = featureCollectionType
	}
	if out.Features == nil {
		out.Features = []*stac.Item{}
	}
	return json.Marshal(out)
}

// DecodeFeatureCollection reads a GeoJSON FeatureCollection. Anything else,
// including a valid GeoJSON document of another type, is ErrInvalidResponse.
func DecodeFeatureCollection(r io.Reader) (*FeatureCollection, error) {
	var page struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.NewDecoder(r).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if page.Type != featureCollectionType {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrInvalidResponse, featureCollectionType, page.Type)
	}

	fc := NewFeatureCollection()
	for i, raw := range page.Features {
		item, err := decodeFeature(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d: %w", ErrInvalidResponse, i, err)
		}
		fc.Features = append(fc.Features, item)
	}
	return fc, nil
}

func decodeFeature(data []byte) (*stac.Item, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if head.Type != featureType {
		return nil, fmt.Errorf("expected %s, got %q", featureType, head.Type)
	}

	var item stac.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
