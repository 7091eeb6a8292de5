package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jfmyers9/crates/pkg/discogs"
)

// DefaultUserAgent identifies crates to Discogs when none is configured.
const DefaultUserAgent = "crates/1.0 +https://github.com/jfmyers9/crates"

// Config holds application configuration
type Config struct {
	// User-Agent sent with every Discogs request
	UserAgent string

	// Discogs API endpoint
	// Default: "https://api.discogs.com"
	BaseURL string

	// Advisory requests per minute, also used as the fetch concurrency cap
	RateLimit int

	// Output format template for single records
	// Default: "" (table output)
	OutputFormat string

	// Log level: debug, info, warn, error
	LogLevel string

	// Path to the crate database
	CrateDB string

	// Discogs API credentials
	Discogs DiscogsConfig
}

// DiscogsConfig holds Discogs credentials. Token takes precedence over
// Key/Secret.
type DiscogsConfig struct {
	Key    string
	Secret string
	Token  string
}

// Load reads configuration from file and environment. An empty path
// searches the config directory and the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Config file locations (in order of precedence)
		v.AddConfigPath(getConfigDir())
		v.AddConfigPath(".")
	}

	setDefaults(v)

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	// Read from environment variables, e.g. CRATES_DISCOGS_TOKEN
	v.SetEnvPrefix("CRATES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		UserAgent:    v.GetString("user_agent"),
		BaseURL:      v.GetString("base_url"),
		RateLimit:    v.GetInt("rate_limit"),
		OutputFormat: v.GetString("output_format"),
		LogLevel:     v.GetString("log_level"),
		CrateDB:      v.GetString("crate_db"),
		Discogs: DiscogsConfig{
			Key:    v.GetString("discogs.key"),
			Secret: v.GetString("discogs.secret"),
			Token:  v.GetString("discogs.token"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("base_url", discogs.DefaultBaseURL)
	v.SetDefault("rate_limit", discogs.DefaultRateLimit)
	v.SetDefault("output_format", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("crate_db", filepath.Join(getConfigDir(), "crate.db"))
}

// isNotFound reports whether err means no config file exists. An explicit
// path that is missing surfaces as a plain fs error rather than
// ConfigFileNotFoundError.
func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required")
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative: %d", c.RateLimit)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	if c.Discogs.Token == "" {
		auth := discogs.KeySecretAuth{Key: c.Discogs.Key, Secret: c.Discogs.Secret}
		if err := auth.Validate(); err != nil {
			return fmt.Errorf("invalid discogs credentials: %w", err)
		}
	}

	return nil
}

// HasCredentials reports whether any Discogs credential is configured
func (c *Config) HasCredentials() bool {
	return c.Discogs.Token != "" || c.Discogs.Key != "" || c.Discogs.Secret != ""
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "crates")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(getConfigDir(), "config.yaml"))
}

// SaveTo writes configuration to path
func (c *Config) SaveTo(path string) error {
	v := viper.New()

	v.Set("user_agent", c.UserAgent)
	v.Set("base_url", c.BaseURL)
	v.Set("rate_limit", c.RateLimit)
	v.Set("output_format", c.OutputFormat)
	v.Set("log_level", c.LogLevel)
	v.Set("crate_db", c.CrateDB)
	v.Set("discogs.key", c.Discogs.Key)
	v.Set("discogs.secret", c.Discogs.Secret)
	v.Set("discogs.token", c.Discogs.Token)

	// Credentials live in this file
	if err := v.WriteConfigAs(path); err != nil {
		return err
	}
	return os.Chmod(path, 0600)
}
