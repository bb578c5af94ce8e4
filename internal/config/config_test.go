package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "nominatim", cfg.Geocode.Provider)
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.Geocode.BaseURL)
	assert.NotEmpty(t, cfg.Geocode.UserAgent)
	assert.Equal(t, "https://api.shodan.io", cfg.Shodan.BaseURL)
	assert.Equal(t, "https://haveibeenpwned.com/api/v3", cfg.HIBP.BaseURL)
	assert.Equal(t, "OSINT-Automation-Script", cfg.HIBP.UserAgent)
	assert.True(t, cfg.Map.Enabled)
	assert.Equal(t, "google-earth-pro", cfg.Map.BinPath)
	assert.Equal(t, "OSINT_Reports", cfg.Report.Dir)
	assert.Equal(t, time.Duration(0), cfg.HTTP.Timeout())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: json
map:
  enabled: false
report:
  dir: out
http:
  timeout_secs: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Map.Enabled)
	assert.Equal(t, "out", cfg.Report.Dir)
	assert.Equal(t, 20*time.Second, cfg.HTTP.Timeout())
	// Defaults still apply for unset values
	assert.Equal(t, "https://api.shodan.io", cfg.Shodan.BaseURL)
}

func TestLoadExplicitPath(t *testing.T) {
	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "osint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  dir: elsewhere\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.Report.Dir)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	chdirTemp(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
geocode:
  provider: google
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("OSINT_GEOCODE_PROVIDER", "nominatim")
	t.Setenv("OSINT_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "nominatim", cfg.Geocode.Provider)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("OSINT_MAP_BIN_PATH", "/opt/google/earth/pro/googleearth")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/opt/google/earth/pro/googleearth", cfg.Map.BinPath)
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Geocode.Provider = "nominatim"
	cfg.Geocode.BaseURL = "https://nominatim.openstreetmap.org/search"
	cfg.Shodan.BaseURL = "https://api.shodan.io"
	cfg.HIBP.BaseURL = "https://haveibeenpwned.com/api/v3"
	cfg.Map.Enabled = true
	cfg.Map.BinPath = "google-earth-pro"
	cfg.Report.Dir = "OSINT_Reports"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Geocode.Provider = "bing" },
			wantErr: "geocode.provider must be nominatim or google",
		},
		{
			name:    "google without key",
			mutate:  func(c *Config) { c.Geocode.Provider = "google" },
			wantErr: "geocode.google_api_key is required",
		},
		{
			name: "google with key",
			mutate: func(c *Config) {
				c.Geocode.Provider = "google"
				c.Geocode.GoogleAPIKey = "AIza-test"
			},
		},
		{
			name:    "map enabled without binary",
			mutate:  func(c *Config) { c.Map.BinPath = "" },
			wantErr: "map.bin_path is required",
		},
		{
			name: "map disabled without binary",
			mutate: func(c *Config) {
				c.Map.Enabled = false
				c.Map.BinPath = ""
			},
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.HTTP.TimeoutSecs = -1 },
			wantErr: "http.timeout_secs must be >= 0",
		},
		{
			name: "missing endpoints",
			mutate: func(c *Config) {
				c.Shodan.BaseURL = ""
				c.HIBP.BaseURL = ""
				c.Report.Dir = ""
			},
			wantErr: "shodan.base_url is required; hibp.base_url is required; report.dir is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
