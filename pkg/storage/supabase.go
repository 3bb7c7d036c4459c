package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// client uploads files to a Supabase Storage bucket and returns their public
// URLs. The bucket is expected to allow public reads.
type client struct {
	baseURL string
	key     string
	bucket  string
	hc      *http.Client
}

func NewClient(baseURL, key, bucket string) (*client, error) {
	if baseURL == "" || key == "" {
		return nil, fmt.Errorf("supabase url or key is empty")
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		bucket:  bucket,
		hc:      &http.Client{},
	}, nil
}

// Upload stores the bytes at the given object path. An already existing
// object is overwritten in place.
func (c *client) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	resp, err := c.send(ctx, http.MethodPost, path, data, contentType)
	if err != nil {
		return "", err
	}

	// Supabase rejects uploads to existing paths; retry as an update.
	if resp.StatusCode == http.StatusConflict {
		resp.Body.Close()
		if resp, err = c.send(ctx, http.MethodPut, path, data, contentType); err != nil {
			return "", err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path), nil
}

func (c *client) send(ctx context.Context, method, path string, data []byte, contentType string) (*http.Response, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing HTTP request: %w", err)
	}

	return resp, nil
}
