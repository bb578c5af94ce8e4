package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/osint-cli/internal/contract"
	"github.com/sells-group/osint-cli/internal/model"
	"github.com/sells-group/osint-cli/internal/osinterr"
)

// searchContract is the shape of a Nominatim search response: an array of
// places, each carrying lat/lon as decimal strings.
var searchContract = contract.MustCompile("nominatim search", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["lat", "lon"],
		"properties": {
			"lat": {"type": "string", "minLength": 1},
			"lon": {"type": "string", "minLength": 1}
		}
	}
}`)

// Option configures the Nominatim provider.
type Option func(*Nominatim)

// WithBaseURL overrides the search endpoint. Empty values are ignored.
func WithBaseURL(u string) Option {
	return func(n *Nominatim) {
		if u != "" {
			n.baseURL = u
		}
	}
}

// WithUserAgent overrides the User-Agent header. Empty values are ignored.
func WithUserAgent(ua string) Option {
	return func(n *Nominatim) {
		if ua != "" {
			n.userAgent = ua
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(n *Nominatim) {
		n.client = hc
	}
}

// Nominatim geocodes postcodes with OpenStreetMap's search API.
type Nominatim struct {
	client    HTTPClient
	baseURL   string
	userAgent string
}

// NewNominatim creates a Nominatim provider. The default client has no
// timeout beyond the transport's own.
func NewNominatim(opts ...Option) *Nominatim {
	n := &Nominatim{
		client:    &http.Client{},
		baseURL:   DefaultNominatimURL,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the first match for postcode. A non-200 status or an
// empty result set is reported as osinterr.ErrLocationNotFound.
func (n *Nominatim) Geocode(ctx context.Context, postcode string) (*model.Coordinates, error) {
	reqURL, err := url.Parse(n.baseURL)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: parse base url")
	}
	q := reqURL.Query()
	q.Set("postalcode", postcode)
	q.Set("format", "json")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: create request")
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		zap.L().Debug("nominatim returned non-200",
			zap.String("postcode", postcode),
			zap.Int("status", resp.StatusCode),
		)
		return nil, osinterr.LocationNotFound(postcode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read response")
	}
	if err := searchContract.Validate(body); err != nil {
		return nil, err
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, eris.Wrap(err, "geocode: unmarshal response")
	}
	if len(places) == 0 {
		return nil, osinterr.LocationNotFound(postcode)
	}

	first := places[0]
	if _, err := strconv.ParseFloat(first.Lat, 64); err != nil {
		return nil, eris.Errorf("geocode: nominatim returned invalid latitude %q", first.Lat)
	}
	if _, err := strconv.ParseFloat(first.Lon, 64); err != nil {
		return nil, eris.Errorf("geocode: nominatim returned invalid longitude %q", first.Lon)
	}

	zap.L().Debug("nominatim match",
		zap.String("postcode", postcode),
		zap.Int("matches", len(places)),
		zap.String("lat", first.Lat),
		zap.String("lon", first.Lon),
	)

	return &model.Coordinates{Latitude: first.Lat, Longitude: first.Lon}, nil
}
