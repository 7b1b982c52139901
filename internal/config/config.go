// Package config loads backend credentials from an optional YAML file and
// environment variables. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RMM holds credentials for the RMM platform (OAuth password grant).
type RMM struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	SecretKey string `yaml:"secret_key"`
}

// SOC holds credentials for the incident feed.
type SOC struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
}

// AV holds credentials for the antivirus platform.
type AV struct {
	APIURL string `yaml:"api_url"`
	Secret string `yaml:"secret"`
}

// EDR holds credentials for the EDR platform (OAuth client credentials).
type EDR struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// Config is the full application configuration. RMM credentials are
// required; the remaining backends are optional and the UI reports them as
// not configured when absent.
type Config struct {
	RMM RMM `yaml:"rmm"`
	SOC SOC `yaml:"soc"`
	AV  AV  `yaml:"av"`
	EDR EDR `yaml:"edr"`

	DebugLog     string `yaml:"debug_log,omitempty"`
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".kyber", "config")
}

// Load reads the optional config file and applies environment overrides.
// It fails only when the required RMM credentials are missing.
func Load() (*Config, error) {
	return load(Path())
}

func load(path string) (*Config, error) {
	var cfg Config
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	var missing []string
	if cfg.RMM.APIURL == "" {
		missing = append(missing, "RMM_API_URL")
	}
	if cfg.RMM.APIKey == "" {
		missing = append(missing, "RMM_API_KEY")
	}
	if cfg.RMM.SecretKey == "" {
		missing = append(missing, "RMM_SECRET_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %v", missing)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.RMM.APIURL, "RMM_API_URL")
	setFromEnv(&cfg.RMM.APIKey, "RMM_API_KEY")
	setFromEnv(&cfg.RMM.SecretKey, "RMM_SECRET_KEY")
	setFromEnv(&cfg.SOC.APIURL, "SOC_API_URL")
	setFromEnv(&cfg.SOC.APIKey, "SOC_API_KEY")
	setFromEnv(&cfg.AV.APIURL, "AV_API_URL")
	setFromEnv(&cfg.AV.Secret, "AV_SECRET")
	setFromEnv(&cfg.EDR.ClientID, "EDR_CLIENT_ID")
	setFromEnv(&cfg.EDR.ClientSecret, "EDR_CLIENT_SECRET")
	setFromEnv(&cfg.DebugLog, "KYBER_DEBUG_LOG")
	setFromEnv(&cfg.OTLPEndpoint, "KYBER_OTLP_ENDPOINT")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// HasSOC reports whether the incident feed is configured.
func (c *Config) HasSOC() bool { return c.SOC.APIURL != "" && c.SOC.APIKey != "" }

// HasAV reports whether the antivirus platform is configured.
func (c *Config) HasAV() bool { return c.AV.APIURL != "" && c.AV.Secret != "" }

// HasEDR reports whether the EDR platform is configured.
func (c *Config) HasEDR() bool { return c.EDR.ClientID != "" && c.EDR.ClientSecret != "" }
