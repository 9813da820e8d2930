package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// ErrCatalogUnavailable is returned when the collection list cannot be fetched.
var ErrCatalogUnavailable = errors.New("collection catalog unavailable")

// Processing levels probed for a scene, in probing order.
var probeLevels = []string{"L2", "L4"}

const probeKind = "DN"

// Lister returns the names of every collection the catalog publishes.
type Lister interface {
	CollectionNames(ctx context.Context) ([]string, error)
}

// Resolver maps scene identifiers to candidate collection names. The
// collection list is fetched at most once per endpoint and kept in memory
// for the resolver's lifetime.
type Resolver struct {
	lister   Lister
	endpoint string
	logger   zerolog.Logger

	mu    sync.Mutex
	cache *lru.Cache[string, []string]
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used to report skipped catalog entries.
func WithLogger(l zerolog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver returns a resolver reading names from lister. endpoint keys the
// cache and should identify where lister reads from.
func NewResolver(lister Lister, endpoint string, opts ...ResolverOption) *Resolver {
	c, _ := lru.New[string, []string](8)
	r := &Resolver{
		lister:   lister,
		endpoint: endpoint,
		logger:   zerolog.Nop(),
		cache:    c,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Collections returns the catalog collection names, fetching them on first use.
func (r *Resolver) Collections(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if names, ok := r.cache.Get(r.endpoint); ok {
		return append([]string(nil), names...), nil
	}

	names, err := r.lister.CollectionNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	r.cache.Add(r.endpoint, names)
	return append([]string(nil), names...), nil
}

// Candidates returns the collections to probe for sceneID, L2 before L4.
//
// The first catalog entry whose satellite and sensor are substrings of the
// scene's satellite and sensor tokens decides the sensor. The satellite is
// taken from the scene id. An id with no matching entry yields an empty
// slice.
func (r *Resolver) Candidates(ctx context.Context, sceneID string) ([]string, error) {
	scene, err := ParseSceneID(sceneID)
	if err != nil {
		return nil, err
	}

	names, err := r.Collections(ctx)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		key, err := ParseCollectionKey(name)
		if err != nil {
			r.logger.Warn().Err(err).Str("collection", name).Msg("skipping catalog entry")
			continue
		}
		if !scene.Matches(key) {
			continue
		}

		out := make([]string, 0, len(probeLevels))
		for _, level := range probeLevels {
			out = append(out, CollectionKey{
				Satellite: scene.Satellite,
				Sensor:    key.Sensor,
				Level:     level,
				Kind:      probeKind,
			}.Name())
		}
		r.logger.Debug().Str("scene", sceneID).Str("matched", name).Strs("candidates", out).Msg("resolved scene")
		return out, nil
	}

	r.logger.Debug().Str("scene", sceneID).Msg("no catalog collection matches scene")
	return []string{}, nil
}
