package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/robert-malhotra/cbers4asat/pkg/stac"
)

// FetchByID fetches a single scene from a collection.
//
// A 404, or a 2xx body that is not one GeoJSON Feature, wraps ErrNotFound so
// callers probing several collections can move on. Every other failure is
// classified as in SearchByArea.
func (c *Client) FetchByID(ctx context.Context, collectionID, itemID string) (*stac.Item, error) {
	if collectionID == "" {
		return nil, fmt.Errorf("collection ID cannot be empty")
	}
	if itemID == "" {
		return nil, fmt.Errorf("item ID cannot be empty")
	}

	u := c.baseURL.JoinPath("collections", collectionID, "items", itemID)

	resp, err := c.doRequest(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, itemID, collectionID)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrTransport, u, err)
	}
	item, err := decodeFeature(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s in %s: %w", ErrNotFound, itemID, collectionID, err)
	}
	return item, nil
}
