package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kundanpawar/portfolio/internal/analytics"
	"github.com/kundanpawar/portfolio/internal/api"
	"github.com/kundanpawar/portfolio/internal/config"
	"github.com/kundanpawar/portfolio/internal/contact"
	"github.com/kundanpawar/portfolio/internal/content"
	"github.com/kundanpawar/portfolio/internal/mail"
	"github.com/kundanpawar/portfolio/internal/server"
	"github.com/kundanpawar/portfolio/internal/site"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort int
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	Long: `Starts the portfolio server: the page and its section fragments, the
contact endpoint, the analytics beacon and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if cmd.Flags().Changed("dev") {
			cfg.Dev = serveDev
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := newLogger(cfg.Dev)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		store, err := content.Load(cfg.ContentFile)
		if err != nil {
			return err
		}

		events := analytics.New(cfg.Analytics, cfg.Dev, logger)
		defer events.Close()

		delivery, err := newDelivery(cfg, store, logger)
		if err != nil {
			return err
		}

		h, err := site.New(cfg, store, events, formSubmitter(cfg, delivery), logger)
		if err != nil {
			return fmt.Errorf("creating site: %w", err)
		}

		srv := server.New(server.Config{
			Port:         cfg.Port,
			AllowOrigins: cfg.AllowOrigin,
			Dev:          cfg.Dev,
		}, logger, events, h)
		api.RegisterRoutes(srv.Router(), delivery, events, logger)
		site.RegisterRoutes(srv.Router(), h)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
			}
		}()

		logger.Info("portfolio starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Port),
			zap.String("owner", store.Personal().Name),
			zap.Bool("mail", delivery.Configured()),
			zap.Bool("dev", cfg.Dev),
		)
		return srv.Start()
	},
}

// newDelivery builds the contact delivery. A missing API key is not fatal:
// the page still renders and the contact endpoint answers 503.
func newDelivery(cfg *config.Config, store *content.Store, logger *zap.Logger) (*api.Delivery, error) {
	sender, err := mail.New(cfg.Mail, logger)
	switch {
	case errors.Is(err, mail.ErrNotConfigured):
		logger.Warn("email delivery not configured; contact form submissions will fail",
			zap.String("provider", string(cfg.Mail.Provider)))
		sender = nil
	case err != nil:
		return nil, fmt.Errorf("creating mail sender: %w", err)
	}
	return api.NewDelivery(sender, composer(cfg.Mail, store), logger), nil
}

// formSubmitter picks where HTML form submissions go: a remote contact API
// when one is configured, in-process delivery otherwise.
func formSubmitter(cfg *config.Config, delivery *api.Delivery) contact.Submitter {
	if cfg.ContactEndpoint != "" {
		return contact.NewHTTPSubmitter(cfg.ContactEndpoint)
	}
	return delivery
}

// composer addresses contact emails to the configured inbox, falling back
// to the owner's published address.
func composer(mc config.MailConfig, store *content.Store) mail.Composer {
	to := mc.To
	if to == "" {
		to = store.Contact().Email
	}
	if to == "" {
		to = store.Personal().Email
	}
	return mail.Composer{From: mc.From, To: to}
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", config.DefaultPort, "port to listen on")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "development mode: verbose logs, error details, analytics off")
	rootCmd.AddCommand(serveCmd)
}
