// Package aggregate merges scenes from several requests into one ordered
// FeatureCollection.
package aggregate

import (
	"github.com/robert-malhotra/cbers4asat/pkg/client"
	"github.com/robert-malhotra/cbers4asat/pkg/stac"
)

// Aggregator accumulates features in the order they are appended. Features
// are never deduplicated. It is not safe for concurrent use; see Slots.
type Aggregator struct {
	features []*stac.Item
}

// Append adds features at the end of the result.
func (a *Aggregator) Append(features ...*stac.Item) {
	a.features = append(a.features, features...)
}

// AppendCollection adds every feature of fc. A nil fc adds nothing.
func (a *Aggregator) AppendCollection(fc *client.FeatureCollection) {
	if fc == nil {
		return
	}
	a.Append(fc.Features...)
}

// Len returns the number of features collected so far.
func (a *Aggregator) Len() int { return len(a.features) }

// Result returns the merged collection. The features slice is never nil.
func (a *Aggregator) Result() *client.FeatureCollection {
	return client.NewFeatureCollection(a.features...)
}
