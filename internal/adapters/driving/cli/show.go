package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// wrapWidth is the glamour word wrap column.
const wrapWidth = 100

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show [type] [id]",
	Short: "Show a record",
	Long: `Renders one record as Markdown. The type is one of law, doc, action,
analysis or comprehensive; search results print the exact command.`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print Markdown without rendering")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	record, err := searchService.Lookup(domain.ResultType(args[0]), args[1])
	if err != nil {
		return fmt.Errorf("failed to load record: %w", err)
	}

	md := recordMarkdown(record)
	if showRaw {
		cmd.Println(md)
		return nil
	}

	out, err := renderMarkdown(md)
	if err != nil {
		return fmt.Errorf("failed to render record: %w", err)
	}
	cmd.Print(out)
	return nil
}

func recordMarkdown(r domain.Record) string {
	return fmt.Sprintf("# %s\n\n_%s_\n\n%s", r.Title, r.SourceLabel, r.Body)
}

// renderMarkdown renders md with a style suited to stdout.
func renderMarkdown(md string) (string, error) {
	style := "notty"
	if term.IsTerminal(int(os.Stdout.Fd())) {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
