package shortcut

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tilt-dev/exterminator/internals/domain"
)

// NewClient creates a new Shortcut client.
func NewClient(apiToken string) *Client {
	return &Client{
		APIToken: apiToken,
		Endpoint: DefaultAPIEndpoint,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithEndpoint returns a new client with a custom endpoint (for testing).
func (c *Client) WithEndpoint(endpoint string) *Client {
	return &Client{
		APIToken:   c.APIToken,
		Endpoint:   strings.TrimSuffix(endpoint, "/"),
		HTTPClient: c.HTTPClient,
	}
}

// WithHTTPClient returns a new client with a custom HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		APIToken:   c.APIToken,
		Endpoint:   c.Endpoint,
		HTTPClient: httpClient,
	}
}

func (c *Client) buildURL(path string, params url.Values) string {
	u := c.Endpoint + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// doRequest performs one authenticated request. There are no retries: a
// failed call is reported to the caller as-is.
func (c *Client) doRequest(ctx context.Context, method, urlStr string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Shortcut-Token", c.APIToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: shortcut %s %s: %v", domain.ErrTransport, method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: shortcut %s %s: read response: %v", domain.ErrTransport, method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := domain.ErrTransport
		if resp.StatusCode == http.StatusNotFound {
			kind = domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: shortcut %s %s: status %d: %s",
			kind, method, req.URL.Path, resp.StatusCode, errorMessage(respBody))
	}

	return respBody, nil
}

func errorMessage(body []byte) string {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Error != "" {
			return apiErr.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}

// StoriesByExternalLink returns the stories that carry link among their
// external links. Shortcut matches loosely, so callers should still compare
// the links themselves.
func (c *Client) StoriesByExternalLink(ctx context.Context, link string) ([]StorySlim, error) {
	urlStr := c.buildURL("/external-link/stories", url.Values{"external_link": {link}})
	respBody, err := c.doRequest(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to look up stories by external link: %w", err)
	}

	var stories []StorySlim
	if err := json.Unmarshal(respBody, &stories); err != nil {
		return nil, fmt.Errorf("%w: failed to parse external link response: %v", domain.ErrTransport, err)
	}
	return stories, nil
}

// CreateStory creates a new story.
func (c *Client) CreateStory(ctx context.Context, params CreateStoryParams) (*Story, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("story name is required")
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, c.buildURL("/stories", nil), params)
	if err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	var story Story
	if err := json.Unmarshal(respBody, &story); err != nil {
		return nil, fmt.Errorf("%w: failed to parse create response: %v", domain.ErrTransport, err)
	}
	if story.ID == 0 || story.AppURL == "" {
		return nil, fmt.Errorf("%w: create response is missing id or app_url", domain.ErrTransport)
	}
	return &story, nil
}
