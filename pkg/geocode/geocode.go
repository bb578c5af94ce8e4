// Package geocode resolves postcodes to coordinates via Nominatim (default) or Google.
package geocode

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"

	"github.com/sells-group/osint-cli/internal/model"
)

const (
	// DefaultNominatimURL is the public Nominatim search endpoint.
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	// DefaultUserAgent identifies this client, as the Nominatim usage policy requires.
	DefaultUserAgent = "OSINT-Automation-Script (osint-cli)"
)

// Geocoder resolves a postcode to the coordinates of its first match.
type Geocoder interface {
	Geocode(ctx context.Context, postcode string) (*model.Coordinates, error)
}

// HTTPClient is the subset of *http.Client the Nominatim provider needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ProviderType names a geocoding backend.
type ProviderType string

const (
	// ProviderNominatim is OpenStreetMap's Nominatim search API.
	ProviderNominatim ProviderType = "nominatim"
	// ProviderGoogle is the Google Maps Geocoding API.
	ProviderGoogle ProviderType = "google"
)

// Config selects and configures a provider.
type Config struct {
	Type         ProviderType
	BaseURL      string
	UserAgent    string
	GoogleAPIKey string
	HTTPClient   *http.Client
}

// NewProvider builds the Geocoder named by cfg.Type.
func NewProvider(cfg Config) (Geocoder, error) {
	switch cfg.Type {
	case ProviderNominatim, "":
		opts := []Option{WithBaseURL(cfg.BaseURL), WithUserAgent(cfg.UserAgent)}
		if cfg.HTTPClient != nil {
			opts = append(opts, WithHTTPClient(cfg.HTTPClient))
		}
		return NewNominatim(opts...), nil
	case ProviderGoogle:
		g, err := newGoogleFromKey(cfg.GoogleAPIKey, cfg.HTTPClient)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, eris.Errorf("geocode: unsupported provider %q", cfg.Type)
	}
}
