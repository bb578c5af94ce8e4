package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/osint-cli/internal/model"
	"github.com/sells-group/osint-cli/internal/report"
	"github.com/sells-group/osint-cli/pkg/hibp"
	"github.com/sells-group/osint-cli/pkg/shodan"
)

// --- Geocoder Mock ---

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, postcode string) (*model.Coordinates, error) {
	args := m.Called(ctx, postcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coordinates), args.Error(1)
}

// --- Launcher Mock ---

type mockLauncher struct {
	mock.Mock
}

func (m *mockLauncher) Open(ctx context.Context, lat, lon string) error {
	args := m.Called(ctx, lat, lon)
	return args.Error(0)
}

// --- Shodan Mock ---

type mockShodanClient struct {
	mock.Mock
}

func (m *mockShodanClient) Search(ctx context.Context, query string) (*shodan.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shodan.SearchResult), args.Error(1)
}

// --- HIBP Mock ---

type mockHIBPClient struct {
	mock.Mock
}

func (m *mockHIBPClient) BreachedAccount(ctx context.Context, email string) (*hibp.Result, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hibp.Result), args.Error(1)
}

// --- Report Writer Mock ---

type mockReportWriter struct {
	mock.Mock
}

func (m *mockReportWriter) Write(in report.Input) (string, error) {
	args := m.Called(in)
	return args.String(0), args.Error(1)
}
