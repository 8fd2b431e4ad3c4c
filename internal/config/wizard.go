package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome! Let's configure your portfolio server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return errors.New("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Content file.
	contentPrompt := promptui.Prompt{
		Label:   "Content file (leave blank for built-in sample content)",
		Default: "",
	}
	if cfg.ContentFile, err = contentPrompt.Run(); err != nil {
		return nil, fmt.Errorf("content file: %w", err)
	}

	// 3. Mail provider.
	providerPrompt := promptui.Select{
		Label: "Contact form delivery",
		Items: []string{
			"resend: send through the Resend email API",
			"log:    write messages to the server log",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mail provider: %w", err)
	}
	cfg.Mail.Provider = []MailProvider{MailResend, MailLog}[providerIdx]

	// 4. Recipient.
	toPrompt := promptui.Prompt{
		Label: "Deliver contact messages to (email)",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			_, err := mail.ParseAddress(s)
			return err
		},
	}
	if cfg.Mail.To, err = toPrompt.Run(); err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}

	// 5. Extra CORS origins.
	originsPrompt := promptui.Prompt{
		Label:   "Extra allowed origins (comma-separated, leave blank for localhost only)",
		Default: "",
	}
	originsStr, err := originsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("allowed origins: %w", err)
	}
	cfg.AllowOrigin = append(cfg.AllowOrigin, splitAndTrim(originsStr)...)

	if cfg.Mail.Provider == MailResend && os.Getenv(ResendAPIKeyEnv) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running portfolio serve.\n", ResendAPIKeyEnv)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty tokens.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
