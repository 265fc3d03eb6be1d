package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const VERSION = "1.2"

type Config struct {
	Assets      AssetsConfig
	Tracking    TrackingConfig
	LogLevel    string
	Environment string
	Version     string
}

// AssetsConfig locates the public storage serving uploaded images, files,
// logos, and bundled icons.
type AssetsConfig struct {
	BaseURL string
}

// TrackingConfig holds the click/open tracking endpoint and the default UTM
// parameters stamped on outbound links.
type TrackingConfig struct {
	Endpoint    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
}

// LoadOptions configures how Load reads its sources.
type LoadOptions struct {
	EnvFile string
}

// Load loads the configuration with default options.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads configuration from the environment, optionally
// seeded from an env file.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("ASSETS_BASE_URL", "")
	v.SetDefault("TRACKING_ENDPOINT", "")
	v.SetDefault("TRACKING_UTM_SOURCE", "")
	v.SetDefault("TRACKING_UTM_MEDIUM", "email")
	v.SetDefault("TRACKING_UTM_CAMPAIGN", "")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}
		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if the env file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		Assets: AssetsConfig{
			BaseURL: v.GetString("ASSETS_BASE_URL"),
		},
		Tracking: TrackingConfig{
			Endpoint:    v.GetString("TRACKING_ENDPOINT"),
			UTMSource:   v.GetString("TRACKING_UTM_SOURCE"),
			UTMMedium:   v.GetString("TRACKING_UTM_MEDIUM"),
			UTMCampaign: v.GetString("TRACKING_UTM_CAMPAIGN"),
		},
		LogLevel:    v.GetString("LOG_LEVEL"),
		Environment: v.GetString("ENVIRONMENT"),
		Version:     v.GetString("VERSION"),
	}

	if cfg.Assets.BaseURL != "" {
		if _, err := url.Parse(cfg.Assets.BaseURL); err != nil {
			return nil, fmt.Errorf("invalid ASSETS_BASE_URL: %w", err)
		}
	}
	if cfg.Tracking.Endpoint != "" {
		parsed, err := url.Parse(cfg.Tracking.Endpoint)
		if err != nil || parsed.Scheme == "" {
			return nil, fmt.Errorf("invalid TRACKING_ENDPOINT: %q", cfg.Tracking.Endpoint)
		}
	}

	return cfg, nil
}

// IsDevelopment returns true when running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
