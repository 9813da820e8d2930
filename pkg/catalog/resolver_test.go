package catalog

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	names []string
	err   error
	calls int
}

func (f *fakeLister) CollectionNames(context.Context) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

func TestResolver_Candidates(t *testing.T) {
	lister := &fakeLister{names: []string{
		"AMAZONIA1_WFI_L2_DN",
		"CBERS4A_MUX_L2_DN",
		"CBERS4A_WPM_L2_DN",
		"CBERS4A_WPM_L4_DN",
	}}
	r := NewResolver(lister, "test")

	got, err := r.Candidates(context.Background(), "CBERS4A_WPM22912420250110")
	require.NoError(t, err)
	assert.Equal(t, []string{"CBERS4A_WPM_L2_DN", "CBERS4A_WPM_L4_DN"}, got)
}

func TestResolver_CandidatesUseSceneSatellite(t *testing.T) {
	lister := &fakeLister{names: []string{"CBERS4_WPM_L4_DN"}}
	r := NewResolver(lister, "test")

	got, err := r.Candidates(context.Background(), "CBERS4A_WPM22912420250110")
	require.NoError(t, err)
	assert.Equal(t, []string{"CBERS4A_WPM_L2_DN", "CBERS4A_WPM_L4_DN"}, got)
}

func TestResolver_NoMatch(t *testing.T) {
	lister := &fakeLister{names: []string{"AMAZONIA1_WFI_L2_DN"}}
	r := NewResolver(lister, "test")

	got, err := r.Candidates(context.Background(), "CBERS4A_WPM22912420250110")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolver_SkipsMalformedEntries(t *testing.T) {
	var buf bytes.Buffer
	lister := &fakeLister{names: []string{"GARBAGE", "CBERS4A_WPM", "CBERS4A_WPM_L4_DN"}}
	r := NewResolver(lister, "test", WithLogger(zerolog.New(&buf)))

	got, err := r.Candidates(context.Background(), "CBERS4A_WPM22912420250110")
	require.NoError(t, err)
	assert.Equal(t, []string{"CBERS4A_WPM_L2_DN", "CBERS4A_WPM_L4_DN"}, got)
	assert.Contains(t, buf.String(), "GARBAGE")
	assert.Contains(t, buf.String(), "skipping catalog entry")
}

func TestResolver_MalformedSceneID(t *testing.T) {
	lister := &fakeLister{names: []string{"CBERS4A_WPM_L4_DN"}}
	r := NewResolver(lister, "test")

	_, err := r.Candidates(context.Background(), "CBERS4A")
	assert.ErrorIs(t, err, ErrMalformedSceneID)
	assert.Zero(t, lister.calls)
}

func TestResolver_CatalogUnavailable(t *testing.T) {
	upstream := errors.New("connection refused")
	lister := &fakeLister{err: upstream}
	r := NewResolver(lister, "test")

	_, err := r.Candidates(context.Background(), "CBERS4A_WPM22912420250110")
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorIs(t, err, upstream)
}

func TestResolver_CachesCatalog(t *testing.T) {
	lister := &fakeLister{names: []string{"CBERS4A_WPM_L4_DN"}}
	r := NewResolver(lister, "test")

	for range 3 {
		_, err := r.Candidates(context.Background(), "CBERS4A_WPM22912420250110")
		require.NoError(t, err)
	}
	names, err := r.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CBERS4A_WPM_L4_DN"}, names)
	assert.Equal(t, 1, lister.calls)

	// callers get a copy
	names[0] = "changed"
	again, err := r.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CBERS4A_WPM_L4_DN", again[0])
}

func TestResolver_FailureIsNotCached(t *testing.T) {
	lister := &fakeLister{err: errors.New("boom")}
	r := NewResolver(lister, "test")

	_, err := r.Collections(context.Background())
	require.Error(t, err)

	lister.err = nil
	lister.names = []string{"CBERS4A_WPM_L4_DN"}
	names, err := r.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CBERS4A_WPM_L4_DN"}, names)
	assert.Equal(t, 2, lister.calls)
}
