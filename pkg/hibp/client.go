// Package hibp provides a client for the HaveIBeenPwned v3 breached-account API.
package hibp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/sells-group/osint-cli/internal/contract"
	"github.com/sells-group/osint-cli/internal/model"
	"github.com/sells-group/osint-cli/internal/osinterr"
)

const (
	defaultBaseURL   = "https://haveibeenpwned.com/api/v3"
	defaultUserAgent = "OSINT-Automation-Script"
	// ServiceName labels HaveIBeenPwned in errors and reports.
	ServiceName = "HaveIBeenPwned"
	// NoBreachesMessage is what a 404 from the breached-account endpoint means.
	NoBreachesMessage = "No breaches found for this email."
)

var breachesContract = contract.MustCompile("hibp breached account", `{
	"type": "array",
	"items": {"type": "object"}
}`)

// Client looks up breaches for an email address.
type Client interface {
	BreachedAccount(ctx context.Context, email string) (*Result, error)
}

// Result is either an ordered list of breach records or the
// "no breaches found" outcome.
type Result struct {
	Breaches   []model.Record
	noBreaches bool
}

// NoBreaches returns the sentinel result for an account with no breaches.
func NoBreaches() *Result {
	return &Result{noBreaches: true}
}

// NoBreaches reports whether the service said the account is clean.
func (r *Result) NoBreaches() bool {
	return r.noBreaches
}

// MarshalJSON renders the breach list, or the no-breaches message.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.noBreaches {
		return json.Marshal(NoBreachesMessage)
	}
	if r.Breaches == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Breaches)
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

// WithUserAgent overrides the user-agent header HIBP requires.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		if ua != "" {
			c.userAgent = ua
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
	apiKey    string
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a HaveIBeenPwned API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:    apiKey,
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) BreachedAccount(ctx context.Context, email string) (*Result, error) {
	reqURL := c.baseURL + "/breachedaccount/" + url.PathEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "hibp: create request")
	}
	req.Header.Set("hibp-api-key", c.apiKey)
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "hibp: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return NoBreaches(), nil
	default:
		return nil, osinterr.NewServiceError(ServiceName, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "hibp: read response")
	}
	if err := breachesContract.Validate(body); err != nil {
		return nil, err
	}

	var breaches []model.Record
	if err := json.Unmarshal(body, &breaches); err != nil {
		return nil, eris.Wrap(err, "hibp: unmarshal response")
	}

	return &Result{Breaches: breaches}, nil
}
