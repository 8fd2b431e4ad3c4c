package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kundanpawar/portfolio/internal/config"
	"github.com/kundanpawar/portfolio/internal/content"
	"github.com/kundanpawar/portfolio/internal/filter"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and content files",
	Long:  `Loads the config and the portfolio content, reports any validation error, and prints a summary of what would be served.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := content.Load(cfg.ContentFile)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), cfg, store)
		return nil
	},
}

func printSummary(w io.Writer, cfg *config.Config, store *content.Store) {
	source := cfg.ContentFile
	if source == "" {
		source = "(built-in)"
	}
	p := store.Personal()
	fmt.Fprintf(w, "Content:     %s\n", source)
	fmt.Fprintf(w, "Owner:       %s, %s\n", p.Name, p.Title)
	fmt.Fprintf(w, "Experience:  %d roles\n", len(store.Experience()))
	fmt.Fprintf(w, "Projects:    %d (%d featured)\n", len(store.Projects()), len(store.FeaturedProjects()))
	fmt.Fprintf(w, "  categories: %v\n", filter.Categories(store.Projects()))
	fmt.Fprintf(w, "Skills:      %d\n", len(store.Skills()))
	fmt.Fprintf(w, "  categories: %v\n", filter.Categories(store.Skills()))

	mailStatus := "not configured"
	if cfg.Mail.Configured() {
		mailStatus = "configured"
	}
	fmt.Fprintf(w, "Mail:        %s (%s)\n", cfg.Mail.Provider, mailStatus)
	fmt.Fprintf(w, "Analytics:   enabled=%t\n", cfg.Analytics.Enabled && !cfg.Dev)
	fmt.Fprintf(w, "Port:        %d\n", cfg.Port)
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
