package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Conventional environment variables honoured in addition to PORTFOLIO_*.
const (
	ResendAPIKeyEnv    = "RESEND_API_KEY"
	MeasurementIDEnv   = "GA_MEASUREMENT_ID"
	DefaultConfigFile  = ".portfolio.yml"
	envPrefix          = "PORTFOLIO_"
	envNestingSplitter = "__"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PORTFOLIO_*). Nested keys use a double
// underscore, e.g. PORTFOLIO_MAIL__API_KEY -> mail.api_key.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Mail.APIKey == "" {
		cfg.Mail.APIKey = os.Getenv(ResendAPIKeyEnv)
	}
	if cfg.Analytics.MeasurementID == "" {
		cfg.Analytics.MeasurementID = os.Getenv(MeasurementIDEnv)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ToLower(strings.ReplaceAll(s, envNestingSplitter, "."))
}

// Save writes the configuration to the given YAML file path.
// The mail API key is never written to disk.
func (c *Config) Save(path string) error {
	out := *c
	out.Mail.APIKey = ""
	data, err := yamlv3.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validMailProviders is the set of recognized mail provider values.
var validMailProviders = map[MailProvider]bool{
	MailResend: true,
	MailLog:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if c.ContactEndpoint != "" {
		u, err := url.Parse(c.ContactEndpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("contact_endpoint must be an absolute http(s) URL, got %q", c.ContactEndpoint)
		}
	}

	if c.Mail.Provider == "" {
		return fmt.Errorf("mail.provider is required")
	}
	if !validMailProviders[c.Mail.Provider] {
		return fmt.Errorf("invalid mail.provider %q: must be one of resend, log", c.Mail.Provider)
	}
	if c.Mail.Provider == MailResend && c.Mail.Endpoint == "" {
		return fmt.Errorf("mail.endpoint is required for resend")
	}
	if c.Mail.Timeout < 0 {
		return fmt.Errorf("mail.timeout must be non-negative")
	}

	if c.Analytics.Enabled && c.Analytics.MeasurementID == "" && !c.Dev {
		return fmt.Errorf("analytics.measurement_id is required when analytics is enabled")
	}

	if c.UI.ScrollOffset < 0 {
		return fmt.Errorf("ui.scroll_offset must be non-negative")
	}
	if c.UI.SplashDuration < 0 || c.UI.SuccessWindow < 0 || c.UI.SubmitTimeout < 0 {
		return fmt.Errorf("ui durations must be non-negative")
	}
	for _, d := range c.UI.RetryDelays {
		if d < 0 {
			return fmt.Errorf("ui.retry_delays must be non-negative")
		}
	}

	for _, pattern := range c.Assets.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid assets.include pattern %q", pattern)
		}
	}

	return nil
}
