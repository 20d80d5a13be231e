package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	Long: `Open the full-screen terminal UI.

Search every collection as you type, read a record with its analysis,
talk to the assistant and pick up saved chats. The menu's Help entry
lists every key.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts maps the injected services onto the TUI ports.
func tuiPorts() *tui.Ports {
	ports := tui.NewPorts(searchService, chatService)
	ports.Analysis = analysisService
	ports.Settings = settingsService
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return err
	}

	// Report panics as errors so the stack reaches the verbose log.
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("tui: panic stack:\n%s", debug.Stack())
			err = fmt.Errorf("tui crashed: %v", r)
		}
	}()

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
