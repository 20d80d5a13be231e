package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

var (
	analyzeTitle      string
	analyzeContent    string
	analyzeCachedOnly bool
	analyzeJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [type] [id]",
	Short: "Explain a record with the AI assistant",
	Long: `Produces a structured analysis of a record: modern wording, an example,
historical context, the views for and against, the prevailing view and the
legal truth. Analyses are cached by title and reused.

Either name a record by type and id, or pass --title and --text.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "title of free text to analyse")
	analyzeCmd.Flags().StringVar(&analyzeContent, "text", "", "free text to analyse")
	analyzeCmd.Flags().BoolVar(&analyzeCachedOnly, "cached-only", false, "only print a cached analysis")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	title, content, err := analysisSubject(args)
	if err != nil {
		return err
	}

	var analysis domain.ArticleAnalysis
	if analyzeCachedOnly {
		cached, ok := analysisService.Cached(cmd.Context(), title)
		if !ok {
			return fmt.Errorf("no cached analysis for %q: %w", title, domain.ErrNotFound)
		}
		analysis = cached
	} else {
		analysis, err = analysisService.Analyze(cmd.Context(), title, content)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
	}

	if analyzeJSON {
		return printJSON(cmd, analysis)
	}

	printAnalysis(cmd, title, analysis)
	return nil
}

// analysisSubject resolves the title and text to analyse.
func analysisSubject(args []string) (title, content string, err error) {
	switch len(args) {
	case 2:
		if searchService == nil {
			return "", "", errors.New("search service not configured")
		}
		record, err := searchService.Lookup(domain.ResultType(args[0]), args[1])
		if err != nil {
			return "", "", fmt.Errorf("failed to load record: %w", err)
		}
		return record.Title, record.Body, nil
	case 0:
		if analyzeTitle == "" {
			return "", "", fmt.Errorf("%w: --title is required without a record", domain.ErrInvalidInput)
		}
		return analyzeTitle, analyzeContent, nil
	default:
		return "", "", fmt.Errorf("%w: expected a type and an id", domain.ErrInvalidInput)
	}
}

func printAnalysis(cmd *cobra.Command, title string, a domain.ArticleAnalysis) {
	cmd.Println(title)
	cmd.Println()

	sections := []struct{ label, text string }{
		{"Modern text", a.ModernText},
		{"Example", a.Example},
		{"Historical context", a.HistoricalContext},
		{"Proponents", a.ProponentView},
		{"Opponents", a.OpponentView},
		{"Prevailing view", a.PrevailingView},
		{"Legal truth", a.LegalTruth},
	}
	for _, s := range sections {
		cmd.Printf("[%s]\n  %s\n\n", s.label, s.text)
	}
}
