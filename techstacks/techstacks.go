// Package techstacks is a minimal client for the TechStacks news API. It
// authenticates with the site's identity cookie and exposes the two
// endpoints the publish pipeline needs.
package techstacks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://techstacks.io"

	identityCookie = ".AspNetCore.Identity.Application"
	requestTimeout = 30 * time.Second
)

type Client struct {
	baseURL  string
	identity string
	http     *http.Client
}

// NewClient returns a client for the API at baseURL. identity is the value
// of the site's identity cookie for the posting user.
func NewClient(baseURL, identity string) *Client {
	return &Client{
		baseURL:  baseURL,
		identity: identity,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: identityCookie, Value: c.identity})

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: %d: %s", path, resp.StatusCode, string(text))
	}
	return nil
}

// ImportNewsPost submits a post document for import.
func (c *Client) ImportNewsPost(ctx context.Context, doc any) error {
	return c.post(ctx, "/api/ImportNewsPost", doc)
}

// SyncStats asks the site to refresh its post statistics.
func (c *Client) SyncStats(ctx context.Context) error {
	return c.post(ctx, "/api/SyncStats", nil)
}
