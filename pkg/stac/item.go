package stac

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const featureType = "Feature"

// Item is one scene: a STAC Item, which is a GeoJSON Feature.
type Item struct {
	Type       string            `json:"type"`
	Version    string            `json:"stac_version,omitempty"`
	Extensions []string          `json:"stac_extensions,omitempty"`
	Id         string            `json:"id"`
	Geometry   any               `json:"geometry"`
	Bbox       []float64         `json:"bbox,omitempty"`
	Properties map[string]any    `json:"properties"`
	Links      []*Link           `json:"links,omitempty"`
	Assets     map[string]*Asset `json:"assets,omitempty"`
	Collection string            `json:"collection,omitempty"`

	// AdditionalFields holds foreign members, such as catalog specific
	// top-level fields.
	AdditionalFields map[string]any `json:"-"`

	// numericID records a GeoJSON id sent as a number, so it is written
	// back as one.
	numericID bool
}

var knownItemFields = map[string]bool{
	"type": true, "stac_version": true, "stac_extensions": true,
	"id": true, "geometry": true, "bbox": true, "properties": true,
	"links": true, "assets": true, "collection": true,
}

// UnmarshalJSON captures foreign members and accepts string or number ids.
func (item *Item) UnmarshalJSON(data []byte) error {
	type itemAlias Item
	*item = Item{}
	aux := struct {
		*itemAlias
		ID json.RawMessage `json:"id"`
	}{itemAlias: (*itemAlias)(item)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id := bytes.TrimSpace(aux.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
	case id[0] == '"':
		if err := json.Unmarshal(id, &item.Id); err != nil {
			return fmt.Errorf("id: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("id must be a string or a number, got %s", id)
		}
		item.Id = n.String()
		item.numericID = true
	}

	extra, err := foreignMembers(data, knownItemFields)
	if err != nil {
		return err
	}
	item.AdditionalFields = extra
	return nil
}

// MarshalJSON writes the item as a Feature, foreign members included.
func (item Item) MarshalJSON() ([]byte, error) {
	type itemAlias Item
	aux := itemAlias(item)
	if aux.Type == "" {
		aux.Type = featureType
	}

	data, err := json.Marshal(aux)
	if err != nil {
		return nil, err
	}

	var override map[string]json.RawMessage
	if item.numericID {
		override = map[string]json.RawMessage{"id": json.RawMessage(item.Id)}
	}
	return withMembers(data, item.AdditionalFields, override)
}
