package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/robert-malhotra/cbers4asat/pkg/query"
)

// SearchByArea posts one search request and returns the matching scenes in
// response order.
//
// Transport failures wrap ErrTransport, 5xx responses ErrServer, 4xx
// responses ErrClient and undecodable bodies ErrInvalidResponse. All of them
// are final; nothing is retried.
func (c *Client) SearchByArea(ctx context.Context, req query.SearchRequest) (*FeatureCollection, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error encoding search request: %w", err)
	}

	u := c.baseURL.JoinPath("search")

	resp, err := c.doRequest(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	fc, err := DecodeFeatureCollection(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error decoding response from %s: %w", u, err)
	}
	return fc, nil
}
