// Command dashboard serves and prints Cardano treasury dashboard views.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"treasury-dashboard/internal/config"
	"treasury-dashboard/internal/dashboard"
	"treasury-dashboard/internal/format"
	"treasury-dashboard/internal/indexer"
	"treasury-dashboard/internal/normalization"
	"treasury-dashboard/internal/observability"
	"treasury-dashboard/internal/view"
)

var (
	// Global flags
	verbose bool
	envFile string
	apiURL  string
	asJSON  bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Cardano treasury dashboard",
	Long: `dashboard reads the treasury indexing API and renders its data as
dashboard views: landing stats, projects and milestones, transactions,
events and treasury addresses.

Run "dashboard serve" for the JSON view server, or use the subcommands to
print a view in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if apiURL != "" {
			cfg.PublicAPIURL = apiURL
		}

		zcfg := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid DASHBOARD_LOG_LEVEL: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file read before the environment")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Indexing API base URL (default: PUBLIC_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print views as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(addressesCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds an indexer client for baseURL from the loaded config.
func newClient(baseURL string) *indexer.Client {
	return indexer.NewClient(baseURL,
		indexer.WithTimeout(cfg.Timeout),
		indexer.WithMaxRetries(cfg.Retries),
		indexer.WithLogger(logger.Named("indexer")),
	)
}

// newService wires the client, normalizer and view builder.
func newService(client *indexer.Client) (*dashboard.Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	f := format.New(format.Options{
		Locale:   cfg.Locale,
		Location: loc,
		Now:      time.Now,
	})
	normalizer := normalization.NewNormalizer(observability.RecordAnomaly)
	return dashboard.NewService(client, normalizer, view.NewBuilder(f), logger.Named("dashboard")), nil
}
