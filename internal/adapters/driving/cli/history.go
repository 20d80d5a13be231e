package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved chats",
	Long:  `List, show and delete chats saved by the assistant.`,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved chats, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a saved chat",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved chat",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	chats := chatService.History(cmd.Context())

	if historyJSON {
		return printJSON(cmd, chats)
	}

	printHistory(cmd, chats)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	chat, ok := findChat(chatService.History(cmd.Context()), args[0])
	if !ok {
		return fmt.Errorf("chat %s: %w", args[0], domain.ErrNotFound)
	}

	if historyJSON {
		return printJSON(cmd, chat)
	}

	cmd.Print(domain.RenderTranscript(chat.Title, chat.Messages))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if _, ok := findChat(chatService.History(cmd.Context()), args[0]); !ok {
		return fmt.Errorf("chat %s: %w", args[0], domain.ErrNotFound)
	}

	chatService.Delete(cmd.Context(), args[0])
	cmd.Printf("Deleted chat %s\n", args[0])
	return nil
}

func printHistory(cmd *cobra.Command, chats []domain.SavedChat) {
	if len(chats) == 0 {
		cmd.Println("No saved chats.")
		return
	}

	for _, c := range chats {
		cmd.Printf("  %s  %s  %s (%d messages)\n", c.ID, c.Date, c.Title, len(c.Messages))
	}
}

func findChat(chats []domain.SavedChat, id string) (domain.SavedChat, bool) {
	for _, c := range chats {
		if c.ID == id {
			return c, true
		}
	}
	return domain.SavedChat{}, false
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
