package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// catalogMetadata is the shape served by the collection metadata endpoint.
// Only the first provider is read.
type catalogMetadata struct {
	Providers []struct {
		Collections []struct {
			Title string `json:"title"`
		} `json:"collections"`
	} `json:"providers"`
}

// CollectionNames returns the titles of every collection published by the
// first catalog provider, in catalog order.
func (c *Client) CollectionNames(ctx context.Context) ([]string, error) {
	u := c.catalogURL.String()

	resp, err := c.doRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var meta catalogMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrInvalidResponse, u, err)
	}
	if len(meta.Providers) == 0 {
		return nil, fmt.Errorf("%w: %s lists no providers", ErrInvalidResponse, u)
	}

	names := make([]string, 0, len(meta.Providers[0].Collections))
	for _, col := range meta.Providers[0].Collections {
		if col.Title == "" {
			continue
		}
		names = append(names, col.Title)
	}
	return names, nil
}
