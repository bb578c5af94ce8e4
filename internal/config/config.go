package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Shodan  ShodanConfig  `yaml:"shodan" mapstructure:"shodan"`
	HIBP    HIBPConfig    `yaml:"hibp" mapstructure:"hibp"`
	Map     MapConfig     `yaml:"map" mapstructure:"map"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// GeocodeConfig selects and configures the postcode geocoder.
type GeocodeConfig struct {
	Provider     string `yaml:"provider" mapstructure:"provider"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	GoogleAPIKey string `yaml:"google_api_key" mapstructure:"google_api_key"`
}

// ShodanConfig holds Shodan API settings. The key itself comes from --shodan_key.
type ShodanConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// HIBPConfig holds HaveIBeenPwned API settings. The key itself comes from --hibp_key.
type HIBPConfig struct {
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// MapConfig configures the desktop map application.
type MapConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	BinPath string `yaml:"bin_path" mapstructure:"bin_path"`
}

// ReportConfig configures where reports are written.
type ReportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// HTTPConfig configures the shared HTTP client. A zero timeout leaves the
// transport defaults in place.
type HTTPConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the configured client timeout.
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSecs) * time.Second
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. An empty path looks
// for config.yaml in the working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("OSINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("geocode.provider", "nominatim")
	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("geocode.user_agent", "OSINT-Automation-Script (osint-cli)")
	v.SetDefault("geocode.google_api_key", "")
	v.SetDefault("shodan.base_url", "https://api.shodan.io")
	v.SetDefault("hibp.base_url", "https://haveibeenpwned.com/api/v3")
	v.SetDefault("hibp.user_agent", "OSINT-Automation-Script")
	v.SetDefault("map.enabled", true)
	v.SetDefault("map.bin_path", "google-earth-pro")
	v.SetDefault("report.dir", "OSINT_Reports")
	v.SetDefault("http.timeout_secs", 0)

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	var problems []string

	switch c.Geocode.Provider {
	case "nominatim":
		if c.Geocode.BaseURL == "" {
			problems = append(problems, "geocode.base_url is required for nominatim")
		}
	case "google":
		if c.Geocode.GoogleAPIKey == "" {
			problems = append(problems, "geocode.google_api_key is required for google")
		}
	default:
		problems = append(problems, "geocode.provider must be nominatim or google")
	}
	if c.Shodan.BaseURL == "" {
		problems = append(problems, "shodan.base_url is required")
	}
	if c.HIBP.BaseURL == "" {
		problems = append(problems, "hibp.base_url is required")
	}
	if c.Map.Enabled && c.Map.BinPath == "" {
		problems = append(problems, "map.bin_path is required when map.enabled is set")
	}
	if c.Report.Dir == "" {
		problems = append(problems, "report.dir is required")
	}
	if c.HTTP.TimeoutSecs < 0 {
		problems = append(problems, "http.timeout_secs must be >= 0")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
