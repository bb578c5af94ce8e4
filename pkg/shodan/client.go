// Package shodan provides a client for the Shodan host search API.
package shodan

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/sells-group/osint-cli/internal/contract"
	"github.com/sells-group/osint-cli/internal/model"
	"github.com/sells-group/osint-cli/internal/osinterr"
)

const (
	defaultBaseURL = "https://api.shodan.io"
	// ServiceName labels Shodan in errors and reports.
	ServiceName = "Shodan"
)

var searchContract = contract.MustCompile("shodan host search", `{
	"type": "object",
	"required": ["matches"],
	"properties": {
		"matches": {"type": "array", "items": {"type": "object"}},
		"total": {"type": "integer"}
	}
}`)

// Client searches Shodan's index of internet-connected devices.
type Client interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}

// SearchResult is a parsed /shodan/host/search response.
type SearchResult struct {
	Total   int
	Matches []model.Record
	// Raw is the complete response body, including facets and any fields
	// not modelled above.
	Raw model.Record
}

// MarshalJSON renders the full response body.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Raw)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Shodan API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{
		"key":   {c.apiKey},
		"query": {query},
	}
	reqURL := c.baseURL + "/shodan/host/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "shodan: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// *url.Error embeds the request URL, which carries the API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, eris.Wrap(err, "shodan: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, osinterr.NewServiceError(ServiceName, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "shodan: read response")
	}
	if err := searchContract.Validate(body); err != nil {
		return nil, err
	}

	var parsed struct {
		Total   int            `json:"total"`
		Matches []model.Record `json:"matches"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "shodan: unmarshal response")
	}
	var raw model.Record
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, eris.Wrap(err, "shodan: unmarshal response")
	}

	return &SearchResult{Total: parsed.Total, Matches: parsed.Matches, Raw: raw}, nil
}
