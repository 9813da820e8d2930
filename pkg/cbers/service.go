// Package cbers ties the catalog client, the query builder and the
// collection resolver together into the two lookups the command line
// exposes: scenes intersecting an area and a scene by identifier.
package cbers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/cbers4asat/pkg/aggregate"
	"github.com/robert-malhotra/cbers4asat/pkg/client"
	"github.com/robert-malhotra/cbers4asat/pkg/geometry"
	"github.com/robert-malhotra/cbers4asat/pkg/query"
	"github.com/robert-malhotra/cbers4asat/pkg/stac"
)

// Searcher is the subset of *client.Client used by Service.
type Searcher interface {
	SearchByArea(ctx context.Context, req query.SearchRequest) (*client.FeatureCollection, error)
	FetchByID(ctx context.Context, collectionID, itemID string) (*stac.Item, error)
}

// Resolver is the subset of *catalog.Resolver used by Service.
type Resolver interface {
	Collections(ctx context.Context) ([]string, error)
	Candidates(ctx context.Context, sceneID string) ([]string, error)
}

// Options are the optional area-search parameters. Nil fields take the
// query package defaults.
type Options struct {
	Collections []string
	Start       *time.Time
	End         *time.Time
	CloudCover  *uint8
	Limit       *uint16
	Path        *int
	Row         *int

	// Clock overrides the builder clock used for default dates.
	Clock func() time.Time
}

// Service runs area and id lookups against one catalog.
type Service struct {
	searcher Searcher
	resolver Resolver
	logger   zerolog.Logger

	// Concurrency bounds in-flight requests. Values below 1 mean 1.
	Concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithConcurrency sets the number of requests allowed in flight.
func WithConcurrency(n int) Option {
	return func(s *Service) { s.Concurrency = n }
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New returns a Service issuing requests through searcher and resolving
// scene ids through resolver.
func New(searcher Searcher, resolver Resolver, opts ...Option) *Service {
	s := &Service{
		searcher:    searcher,
		resolver:    resolver,
		logger:      zerolog.Nop(),
		Concurrency: 1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) limit() int {
	if s.Concurrency < 1 {
		return 1
	}
	return s.Concurrency
}

// builder returns a query builder for bbox carrying opts.
func (o Options) builder(bbox [4]float64) *query.Builder {
	b := query.New(bbox)
	if o.Clock != nil {
		b.Clock = o.Clock
	}
	if len(o.Collections) > 0 {
		b.WithCollections(o.Collections)
	}
	if o.Start != nil {
		b.WithStartDate(*o.Start)
	}
	if o.End != nil {
		b.WithEndDate(*o.End)
	}
	if o.CloudCover != nil {
		b.WithCloudCover(*o.CloudCover)
	}
	if o.Limit != nil {
		b.WithLimit(*o.Limit)
	}
	if o.Path != nil && o.Row != nil {
		b.WithPathRow(*o.Path, *o.Row)
	}
	return b
}

// SearchArea searches every area and merges the results in area order.
//
// Every bounding box is computed before the first request, so an invalid
// geometry fails with a *geometry.GeometryError and nothing is sent. Any
// request failure aborts the search and no partial result is returned.
func (s *Service) SearchArea(ctx context.Context, areas []orb.Geometry, opts Options) (*client.FeatureCollection, error) {
	bboxes, err := geometry.BBoxes(areas)
	if err != nil {
		return nil, err
	}

	requests := make([]query.SearchRequest, len(bboxes))
	for i, bbox := range bboxes {
		requests[i] = opts.builder(bbox).Build()
	}

	slots := aggregate.NewSlots(len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit())

	for i, req := range requests {
		g.Go(func() error {
			fc, err := s.searcher.SearchByArea(gctx, req)
			if err != nil {
				return fmt.Errorf("area %d: %w", i, err)
			}
			s.logger.Debug().Int("area", i).Int("features", fc.Len()).Msg("area searched")
			slots.Set(i, fc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots.Merge(), nil
}

// SearchID looks a scene up in every candidate collection and merges the
// hits, L2 before L4. Collections that do not hold the scene are skipped;
// any other failure aborts the lookup.
func (s *Service) SearchID(ctx context.Context, sceneID string) (*client.FeatureCollection, error) {
	candidates, err := s.resolver.Candidates(ctx, sceneID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.logger.Info().Str("scene", sceneID).Msg("no collection matches scene id")
	}

	slots := aggregate.NewSlots(len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit())

	for i, collection := range candidates {
		g.Go(func() error {
			item, err := s.searcher.FetchByID(gctx, collection, sceneID)
			switch {
			case errors.Is(err, client.ErrNotFound):
				s.logger.Debug().Str("collection", collection).Str("scene", sceneID).Msg("scene not in collection")
				return nil
			case err != nil:
				return fmt.Errorf("collection %s: %w", collection, err)
			}
			slots.Set(i, client.NewFeatureCollection(item))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots.Merge(), nil
}

// Collections lists the catalog collection names.
func (s *Service) Collections(ctx context.Context) ([]string, error) {
	return s.resolver.Collections(ctx)
}
