package dispatch

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
)

// Client posts submission payloads to the remote email-dispatch service.
// Exactly one POST per submission: no retries, and no timeout beyond the
// transport default (the in-flight flag upstream is the only indicator).
type Client struct {
	http *resty.Client
	url  string
}

// New creates a dispatch client for the given endpoint URL. When mock is
// set, the underlying transport is registered with httpmock so tests can
// intercept the call.
func New(url string, mock bool) *Client {
	cl := resty.New()
	cl.SetHeader("Content-Type", "application/json")
	cl.SetHeader("Accept", "application/json")

	if mock {
		httpmock.ActivateNonDefault(cl.GetClient())
	}

	return &Client{http: cl, url: url}
}

// Dispatch performs the single POST. Any 2xx is success; the response body
// is not otherwise inspected. Non-2xx and transport errors are returned
// uniformly as failures.
func (c *Client) Dispatch(ctx context.Context, payload any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("dispatch request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("dispatch rejected: status %d", resp.StatusCode())
	}
	return nil
}

// URL returns the configured endpoint (used by tests and diagnostics)
func (c *Client) URL() string {
	return c.url
}
