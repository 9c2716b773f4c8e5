// Command orchestrator is the terminal client for the Media Orchestrator
// content-generation service.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MyroslavG/orchestrator/cmd/orchestrator/config"
	"github.com/MyroslavG/orchestrator/cmd/orchestrator/ui"
	"github.com/MyroslavG/orchestrator/internal/api"
	"github.com/MyroslavG/orchestrator/internal/logging"
)

var version = "0.1.0"

var (
	// Global flags
	apiURL  string
	theme   string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "orchestrator",
	Short: "Media Orchestrator - AI social media content client",
	Long: `orchestrator is a terminal client for the Media Orchestrator service.

Pick a content template, generate single posts or schedule recurring
campaigns, and inspect the results from a dashboard. All content generation
(AI image/caption synthesis) and scheduling run server-side; this client
presents forms, validates input, and keeps its view state in sync.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orchestrator %s\n", version)
	},
}

func runInteractive() error {
	cfg, err := config.Load()
	if err != nil {
		// Degraded but usable: defaults plus whatever loaded.
		fmt.Fprintf(os.Stderr, "warning: config load: %v\n", err)
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if theme != "" {
		cfg.Theme = theme
	}

	// The TUI owns the terminal; logs go to a file.
	logger = logging.Nop()
	if logDir, err := config.LogDir(); err == nil {
		if fileLogger, err := logging.New(logDir, verbose); err == nil {
			logger = fileLogger
		}
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting orchestrator",
		zap.String("version", version),
		zap.String("api_url", cfg.APIURL),
	)

	client := api.New(cfg.APIURL, logger)
	app := ui.NewApp(client, ui.NewStyles(ui.ThemeByName(cfg.Theme)))

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("ui terminated", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides config and ORCHESTRATOR_API_URL)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "color theme: light, dark or auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
