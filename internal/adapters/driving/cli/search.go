package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// snippetRunes bounds the snippet printed under each result.
const snippetRunes = 160

var (
	searchTypes  string
	searchLimit  int
	searchOffset int
	searchJSON   bool
)

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the constitution and its companion records",
	Long: `Searches the constitution, historical documents, Mossadegh's actions,
legal analyses and comprehensive analyses for the exact query text.

Matching is case-sensitive. Results are listed in collection order.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchTypes, "type", "t", "", "restrict to collections: law,doc,action,analysis,comprehensive")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results (0 = all)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	types, err := domain.ParseResultTypes(searchTypes)
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Types:  types,
		Limit:  searchLimit,
		Offset: searchOffset,
	}

	results := searchService.Search(query, opts)

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, query, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, query string, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] Title (Label)
		cmd.Printf("  [%d] %s (%s)\n", i+1, results[i].Title, results[i].SourceLabel)
		if snippet := renderSnippet(results[i].Content, query); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Printf("      → mashruteh show %s %s\n", results[i].Type, results[i].ID)
		cmd.Println()
	}

	return nil
}

// renderSnippet shortens text and emphasises occurrences of query.
func renderSnippet(text, query string) string {
	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > snippetRunes {
		text = string(runes[:snippetRunes]) + "…"
	}

	var b strings.Builder
	for _, seg := range searchService.Highlight(text, query) {
		if seg.Match {
			b.WriteString(matchStyle.Render(seg.Text))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}
