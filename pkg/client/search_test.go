package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/cbers4asat/pkg/query"
)

const testDataDir = "testdata"

// loadTestData loads a JSON file from the testdata directory
func loadTestData(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(testDataDir, filename))
	require.NoError(t, err, "Failed to read test data file")
	return data
}

func testRequest() query.SearchRequest {
	return query.New([4]float64{-63.939, -9.004, -63.448, -8.733}).
		WithCollections([]string{"CBERS4A_WPM_L4_DN"}).
		WithCloudCover(30).
		Build()
}

func TestClient_SearchByArea(t *testing.T) {
	searchData := loadTestData(t, "search.json")

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/lgi-stac/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, []any{"CBERS4A_WPM_L4_DN"}, payload["collections"])
		assert.Equal(t, float64(25), payload["limit"])
		assert.Equal(t, map[string]any{"cloud_cover": map[string]any{"lte": float64(30)}}, payload["query"])
		assert.Len(t, payload["bbox"], 4)

		w.Header().Set("Content-Type", "application/geo+json")
		w.Write(searchData)
	}))
	defer server.Close()

	cli, err := NewClient(server.URL + "/lgi-stac")
	require.NoError(t, err)

	fc, err := cli.SearchByArea(context.Background(), testRequest())
	require.NoError(t, err)
	require.Equal(t, 3, fc.Len())
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Equal(t, "CBERS4A_WPM22912420250110", fc.Features[0].Id)
	assert.Equal(t, "CBERS4A_WFI21412420250112", fc.Features[1].Id)
	assert.Equal(t, "AMAZONIA1_WFI03701620250114", fc.Features[2].Id)
	assert.Equal(t, "CBERS4A_WPM_L4_DN", fc.Features[0].Collection)
	assert.Equal(t, "WPM", fc.Features[0].Properties["sensor"])
	assert.Equal(t, 1, hits)
}

func TestClient_SearchByArea_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"title":"Internal Server Error"}`, wantErr: ErrServer},
		{name: "bad gateway", status: http.StatusBadGateway, body: "upstream down", wantErr: ErrServer},
		{name: "client error", status: http.StatusBadRequest, body: `{"code":400,"description":"bad bbox"}`, wantErr: ErrClient},
		{name: "unauthorized", status: http.StatusUnauthorized, body: "", wantErr: ErrClient},
		{name: "not json", status: http.StatusOK, body: "<html></html>", wantErr: ErrInvalidResponse},
		{name: "not a feature collection", status: http.StatusOK, body: `{"type":"Feature","properties":{}}`, wantErr: ErrInvalidResponse},
		{name: "bad feature", status: http.StatusOK, body: `{"type":"FeatureCollection","features":[{"type":"Point"}]}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			cli, err := NewClient(server.URL)
			require.NoError(t, err)

			fc, err := cli.SearchByArea(context.Background(), testRequest())
			require.Error(t, err)
			assert.Nil(t, fc)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestClient_SearchByArea_APIErrorDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"code":503,"description":"maintenance"}`))
	}))
	defer server.Close()

	cli, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = cli.SearchByArea(context.Background(), testRequest())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, http.MethodPost, apiErr.Method)
	assert.Equal(t, "maintenance", apiErr.Detail)
	assert.True(t, apiErr.Temporary())
	assert.Contains(t, err.Error(), "status 503")
}

func TestClient_SearchByArea_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer server.Close()

	cli, err := NewClient(server.URL)
	require.NoError(t, err)

	fc, err := cli.SearchByArea(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, fc.Len())

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}
