package config

import "time"

// MailProvider identifies a transactional email backend.
type MailProvider string

const (
	MailResend MailProvider = "resend"
	// MailLog writes messages to the log instead of sending them.
	MailLog MailProvider = "log"
)

// Config is the top-level portfolio configuration, corresponding to .portfolio.yml.
type Config struct {
	Port        int      `yaml:"port" koanf:"port"`
	Dev         bool     `yaml:"dev" koanf:"dev"`
	ContentFile string   `yaml:"content_file" koanf:"content_file"`
	AllowOrigin []string `yaml:"allow_origins" koanf:"allow_origins"`

	// ContactEndpoint, when set, is a remote contact API that the HTML form
	// forwards submissions to instead of sending mail itself.
	ContactEndpoint string `yaml:"contact_endpoint,omitempty" koanf:"contact_endpoint"`

	Mail      MailConfig      `yaml:"mail" koanf:"mail"`
	Analytics AnalyticsConfig `yaml:"analytics" koanf:"analytics"`
	UI        UIConfig        `yaml:"ui" koanf:"ui"`
	Assets    AssetsConfig    `yaml:"assets" koanf:"assets"`
}

// MailConfig holds settings for the contact form email delivery.
type MailConfig struct {
	Provider MailProvider  `yaml:"provider" koanf:"provider"`
	APIKey   string        `yaml:"api_key,omitempty" koanf:"api_key"`
	Endpoint string        `yaml:"endpoint" koanf:"endpoint"`
	From     string        `yaml:"from" koanf:"from"`
	To       string        `yaml:"to" koanf:"to"`
	Timeout  time.Duration `yaml:"timeout" koanf:"timeout"`
}

// Configured reports whether mail delivery can be attempted.
func (m MailConfig) Configured() bool {
	if m.Provider == MailLog {
		return true
	}
	return m.APIKey != ""
}

// AnalyticsConfig toggles page analytics.
type AnalyticsConfig struct {
	Enabled       bool   `yaml:"enabled" koanf:"enabled"`
	MeasurementID string `yaml:"measurement_id,omitempty" koanf:"measurement_id"`
}

// UIConfig carries page behaviour and presentation settings.
type UIConfig struct {
	SplashDuration time.Duration   `yaml:"splash_duration" koanf:"splash_duration"`
	ScrollOffset   float64         `yaml:"scroll_offset" koanf:"scroll_offset"`
	RetryDelays    []time.Duration `yaml:"retry_delays" koanf:"retry_delays"`
	SuccessWindow  time.Duration   `yaml:"success_window" koanf:"success_window"`
	SubmitTimeout  time.Duration   `yaml:"submit_timeout" koanf:"submit_timeout"`
	Animation      AnimationConfig `yaml:"animation" koanf:"animation"`
}

// AnimationConfig is passed through to templates; it has no behavioural effect.
type AnimationConfig struct {
	Duration time.Duration `yaml:"duration" koanf:"duration"`
	Stagger  time.Duration `yaml:"stagger" koanf:"stagger"`
	Easing   string        `yaml:"easing" koanf:"easing"`
}

// AssetsConfig controls which files are served from the public directory.
type AssetsConfig struct {
	Dir        string   `yaml:"dir" koanf:"dir"`
	Include    []string `yaml:"include" koanf:"include"`
	ResumeFile string   `yaml:"resume_file" koanf:"resume_file"`
}
