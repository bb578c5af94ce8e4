package geocode

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/sells-group/osint-cli/internal/model"
	"github.com/sells-group/osint-cli/internal/osinterr"
)

// GoogleAPIClient is the part of *maps.Client the Google provider calls.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Google geocodes postcodes with the Google Maps Geocoding API.
type Google struct {
	client GoogleAPIClient
}

// NewGoogle wraps an existing Google Maps client.
func NewGoogle(client GoogleAPIClient) *Google {
	return &Google{client: client}
}

func newGoogleFromKey(apiKey string, hc *http.Client) (*Google, error) {
	if apiKey == "" {
		return nil, eris.New("geocode: google provider requires an api key")
	}
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if hc != nil {
		opts = append(opts, maps.WithHTTPClient(hc))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: create google client")
	}
	return NewGoogle(client), nil
}

// Geocode filters on the postal-code component and returns the first result.
func (g *Google) Geocode(ctx context.Context, postcode string) (*model.Coordinates, error) {
	req := &maps.GeocodingRequest{
		Components: map[maps.Component]string{maps.ComponentPostalCode: postcode},
	}

	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return nil, osinterr.LocationNotFound(postcode)
		}
		return nil, eris.Wrap(err, "geocode: google request")
	}
	if len(results) == 0 {
		return nil, osinterr.LocationNotFound(postcode)
	}

	loc := results[0].Geometry.Location
	zap.L().Debug("google match",
		zap.String("postcode", postcode),
		zap.Int("matches", len(results)),
		zap.Float64("lat", loc.Lat),
		zap.Float64("lng", loc.Lng),
	)

	return &model.Coordinates{
		Latitude:  strconv.FormatFloat(loc.Lat, 'f', -1, 64),
		Longitude: strconv.FormatFloat(loc.Lng, 'f', -1, 64),
	}, nil
}
