// Package cli provides the cobra command tree. Services are injected by
// the entrypoint before Execute runs; commands fail with a clear error
// when a required service is missing.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/specforge/internal/adapters/driving/web"
	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
	"github.com/custodia-labs/specforge/internal/core/ports/driving"
	"github.com/custodia-labs/specforge/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services.
var (
	learnerService driving.LearnerService
	webServer      *web.Server
	serverPort     int
	configStore    driven.ConfigStore
	appSettings    domain.Settings
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "specforge",
	Short: "Turn project descriptions into Google Docs specifications",
	Long: `SpecForge turns free-text project descriptions into structured
implementation specifications published as Google Docs.

Run 'specforge serve' and open the web UI, or use 'specforge learn' to
index reference documents from the command line.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Config holds the services the commands depend on.
type Config struct {
	Learner     driving.LearnerService
	Server      *web.Server
	Port        int
	ConfigStore driven.ConfigStore
	Settings    domain.Settings
}

// SetConfig injects the wired services. Called by the entrypoint before
// Execute.
func SetConfig(config Config) {
	learnerService = config.Learner
	webServer = config.Server
	serverPort = config.Port
	configStore = config.ConfigStore
	appSettings = config.Settings
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
