package aggregate

import (
	"fmt"

	"github.com/robert-malhotra/cbers4asat/pkg/client"
)

// Slots holds one result per request so that requests may complete in any
// order while the merged output keeps request order.
//
// Each index must be written by at most one goroutine. Merge must only be
// called after every writer has finished.
type Slots struct {
	results []*client.FeatureCollection
}

// NewSlots returns n empty slots.
func NewSlots(n int) *Slots {
	return &Slots{results: make([]*client.FeatureCollection, n)}
}

// Set stores the result of request i.
func (s *Slots) Set(i int, fc *client.FeatureCollection) {
	if i < 0 || i >= len(s.results) {
		panic(fmt.Sprintf("aggregate: slot %d out of range [0,%d)", i, len(s.results)))
	}
	s.results[i] = fc
}

// Len returns the number of slots.
func (s *Slots) Len() int { return len(s.results) }

// Merge concatenates the slots in index order. Empty slots contribute nothing.
func (s *Slots) Merge() *client.FeatureCollection {
	var agg Aggregator
	for _, fc := range s.results {
		agg.AppendCollection(fc)
	}
	return agg.Result()
}
