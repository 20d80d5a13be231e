// Package cli implements the mashruteh command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root.
var (
	searchService   driving.SearchService
	chatService     driving.ChatService
	analysisService driving.AnalysisService
	speechService   driving.SpeechService
	settingsService driving.SettingsService
)

// Services bundles the driving ports the commands use.
type Services struct {
	Search   driving.SearchService
	Chat     driving.ChatService
	Analysis driving.AnalysisService
	Speech   driving.SpeechService
	Settings driving.SettingsService
}

// SetServices injects the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	chatService = s.Chat
	analysisService = s.Analysis
	speechService = s.Speech
	settingsService = s.Settings
}

// Options are the global flags that shape service construction.
type Options struct {
	// DataDir holds the config file, prompts and the durable store.
	DataDir string

	// ContentPath overrides the bundled dataset with a YAML file.
	ContentPath string

	// Ephemeral keeps every store in memory.
	Ephemeral bool
}

// Bootstrap builds the services for opts. The returned cleanup releases
// stores and clients and may be nil.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func() error, error)

var (
	bootstrap Bootstrap
	cleanup   func() error
	rootOpts  Options
	verbose   bool
)

// SetBootstrap registers the service factory run before each command.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// annotationNoServices marks commands that never need services.
const annotationNoServices = "mashruteh/no-services"

var rootCmd = &cobra.Command{
	Use:   "mashruteh",
	Short: "Explore the 1906 Persian constitution from the terminal",
	Long: `Mashruteh is a terminal companion for the Persian Constitutional
Revolution: the constitution and its supplement, historical documents,
Mossadegh's actions, legal analyses and an AI assistant grounded on them.

Run without arguments to see the available commands, or 'mashruteh tui'
for the interactive interface.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&rootOpts.DataDir, "data-dir", "", "data directory (default ~/.mashruteh)")
	flags.StringVar(&rootOpts.ContentPath, "content", "", "load content from a YAML file instead of the bundled dataset")
	flags.BoolVar(&rootOpts.Ephemeral, "ephemeral", false, "keep chats, analyses and settings in memory only")
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}

	logger.Section("Bootstrap")
	logger.Debug("data dir %q, content %q, ephemeral %v", rootOpts.DataDir, rootOpts.ContentPath, rootOpts.Ephemeral)

	svcs, done, err := bootstrap(cmd.Context(), rootOpts)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(svcs)
	cleanup = done
	return nil
}

// Execute runs the root command and releases resources afterwards.
func Execute() error {
	err := rootCmd.Execute()
	if cleanup != nil {
		if cerr := cleanup(); cerr != nil {
			logger.Warn("cleanup failed: %v", cerr)
		}
		cleanup = nil
	}
	logger.Sync()
	return err
}
