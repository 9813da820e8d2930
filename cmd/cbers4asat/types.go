package main

import (
	"encoding/json"
	"maps"

	"github.com/robert-malhotra/cbers4asat/pkg/stac"
)

// sceneSummary is the --format json view of one scene.
type sceneSummary struct {
	ID         string          `json:"id"`
	Collection string          `json:"collection,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
	Bbox       []float64       `json:"bbox,omitempty"`
	Properties map[string]any  `json:"properties"`
	Links      []*stac.Link    `json:"links"`
}

func newSceneSummary(item *stac.Item) (*sceneSummary, error) {
	geometry, err := json.Marshal(item.Geometry)
	if err != nil {
		return nil, err
	}

	props := maps.Clone(item.Properties)
	if props == nil {
		props = map[string]any{}
	}
	links := item.Links
	if links == nil {
		links = []*stac.Link{}
	}

	return &sceneSummary{
		ID:         item.Id,
		Collection: item.Collection,
		Geometry:   geometry,
		Bbox:       item.Bbox,
		Properties: props,
		Links:      links,
	}, nil
}
