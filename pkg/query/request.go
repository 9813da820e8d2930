// Package query builds the JSON body posted to the catalog search endpoint.
//
// The body follows the STAC "query" extension as served by INPE:
//
//	{
//	  "bbox": [-63.93, -9.00, -63.44, -8.73],
//	  "datetime": "2024-12-18T00:00:00/2025-01-18T23:59:00",
//	  "limit": 25,
//	  "query": {"cloud_cover": {"lte": 100}},
//	  "collections": ["CBERS4A_WPM_L4_DN"]
//	}
package query

// SearchRequest is the immutable wire shape of one area search.
type SearchRequest struct {
	BBox        [4]float64 `json:"bbox"`
	Datetime    string     `json:"datetime"`
	Limit       uint16     `json:"limit"`
	Query       Query      `json:"query"`
	Collections []string   `json:"collections"`
}

// Query holds the property filters of a search.
type Query struct {
	CloudCover Lte `json:"cloud_cover"`
	Path       *Eq `json:"path,omitempty"`
	Row        *Eq `json:"row,omitempty"`
}

// Lte is a less-than-or-equal property filter.
type Lte struct {
	Lte uint8 `json:"lte"`
}

// Eq is an equality property filter.
type Eq struct {
	Eq int `json:"eq"`
}
