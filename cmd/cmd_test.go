package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kundanpawar/portfolio/internal/config"
	"github.com/kundanpawar/portfolio/internal/contact"
	"github.com/kundanpawar/portfolio/internal/content"
)

func TestPrintSummary(t *testing.T) {
	store, err := content.Default()
	require.NoError(t, err)
	cfg := config.DefaultConfig()

	var buf bytes.Buffer
	printSummary(&buf, cfg, store)
	out := buf.String()
	assert.Contains(t, out, "Content:     (built-in)")
	assert.Contains(t, out, store.Personal().Name)
	assert.Contains(t, out, "Mail:        resend (not configured)")
	assert.Contains(t, out, "Port:        8080")
}

func TestComposerFallsBackToContactEmail(t *testing.T) {
	store, err := content.Default()
	require.NoError(t, err)

	c := composer(config.MailConfig{From: "a@b.io", To: "inbox@b.io"}, store)
	assert.Equal(t, "inbox@b.io", c.To)

	c = composer(config.MailConfig{From: "a@b.io"}, store)
	assert.Equal(t, store.Contact().Email, c.To)
}

func TestNewDeliveryWithoutKey(t *testing.T) {
	store, err := content.Default()
	require.NoError(t, err)
	cfg := config.DefaultConfig()
	cfg.Mail.APIKey = ""

	d, err := newDelivery(cfg, store, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, d.Configured())

	cfg.Mail.Provider = config.MailLog
	d, err = newDelivery(cfg, store, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, d.Configured())
}

func TestFormSubmitter(t *testing.T) {
	store, err := content.Default()
	require.NoError(t, err)
	cfg := config.DefaultConfig()
	d, err := newDelivery(cfg, store, zap.NewNop())
	require.NoError(t, err)

	assert.Same(t, d, formSubmitter(cfg, d))

	cfg.ContactEndpoint = "https://api.example.com/api/contact"
	_, remote := formSubmitter(cfg, d).(*contact.HTTPSubmitter)
	assert.True(t, remote)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9191\nmail:\n  provider: log\n"), 0o644))

	old := cfgFile
	t.Cleanup(func() { cfgFile = old })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"check", "--config", path})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Port:        9191")
	assert.Contains(t, buf.String(), "Mail:        log (configured)")
}
