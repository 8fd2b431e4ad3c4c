package config

import "time"

// DefaultPort is the listen port when none is configured.
const DefaultPort = 8080

// DefaultAssetIncludes are glob patterns served from the public directory by default.
var DefaultAssetIncludes = []string{
	"images/**/*.{jpg,jpeg,png,webp,svg}",
	"documents/**/*.pdf",
	"favicon.ico",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:        DefaultPort,
		AllowOrigin: []string{"http://localhost:*", "http://127.0.0.1:*"},
		Mail: MailConfig{
			Provider: MailResend,
			Endpoint: "https://api.resend.com/emails",
			From:     "Portfolio Contact <contact@localhost>",
			Timeout:  10 * time.Second,
		},
		UI: UIConfig{
			SplashDuration: 500 * time.Millisecond,
			ScrollOffset:   100,
			RetryDelays:    []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second},
			SuccessWindow:  5 * time.Second,
			SubmitTimeout:  15 * time.Second,
			Animation: AnimationConfig{
				Duration: 600 * time.Millisecond,
				Stagger:  100 * time.Millisecond,
				Easing:   "ease-out",
			},
		},
		Assets: AssetsConfig{
			Dir:        "public",
			Include:    DefaultAssetIncludes,
			ResumeFile: "documents/resume.pdf",
		},
	}
}
