package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"daytrack/model"
)

// FetchResources retrieves the resource catalog. A nil client falls back to
// http.DefaultClient. Any non-2xx status or malformed JSON body is an error;
// a well-formed body that is not an array yields an empty catalog.
func FetchResources(ctx context.Context, client *http.Client, url string) ([]model.Resource, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch resources: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var items []model.Resource
	if err := json.Unmarshal(body, &items); err != nil {
		// The payload may be valid JSON that simply is not an array
		// (an object, a string). That is not a transport failure.
		if json.Valid(body) {
			return []model.Resource{}, nil
		}
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	if items == nil {
		items = []model.Resource{}
	}
	return items, nil
}
