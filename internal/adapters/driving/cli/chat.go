package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

var chatJSON bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the constitutional assistant",
	Long: `Starts an interactive chat session. Every answer is saved to the chat
history as soon as it arrives.

Commands:
  /new           Start a new session
  /history       List saved chats
  /load <id>     Continue a saved chat
  /delete <id>   Delete a saved chat
  /export [file] Write the session transcript to a file
  /quit          Leave the chat`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

var chatAskCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question in a new session",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChatAsk,
}

func init() {
	chatAskCmd.Flags().BoolVar(&chatJSON, "json", false, "output the answer as JSON")
	chatCmd.AddCommand(chatAskCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	in := cmd.InOrStdin()
	interactive := isTerminal(in)

	printTranscript(cmd, chatService.Transcript())

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			cmd.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := runChatCommand(cmd, line)
			if err != nil {
				cmd.PrintErrf("Error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		msg, err := chatService.Send(cmd.Context(), line)
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			continue
		}
		printMessage(cmd, msg)
	}

	return scanner.Err()
}

// runChatCommand handles one slash command. It reports whether to quit.
func runChatCommand(cmd *cobra.Command, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	ctx := cmd.Context()

	switch name {
	case "/quit", "/exit":
		return true, nil

	case "/new":
		id := chatService.NewSession()
		cmd.Printf("New session %s\n\n", id)
		printTranscript(cmd, chatService.Transcript())

	case "/history":
		printHistory(cmd, chatService.History(ctx))

	case "/load":
		if arg == "" {
			return false, errors.New("usage: /load <id>")
		}
		if err := chatService.Load(ctx, arg); err != nil {
			return false, err
		}
		printTranscript(cmd, chatService.Transcript())

	case "/delete":
		if arg == "" {
			return false, errors.New("usage: /delete <id>")
		}
		chatService.Delete(ctx, arg)
		cmd.Printf("Deleted %s\n", arg)

	case "/export":
		path := arg
		if path == "" {
			path = "chat-" + chatService.SessionID() + ".txt"
		}
		_, text := chatService.Snapshot()
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			return false, fmt.Errorf("failed to export chat: %w", err)
		}
		cmd.Printf("Exported to %s\n", path)

	default:
		return false, fmt.Errorf("unknown command %s", name)
	}

	return false, nil
}

func runChatAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	sessionID := chatService.NewSession()
	msg, err := chatService.Send(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	if chatJSON {
		out := struct {
			SessionID   string   `json:"sessionId"`
			Answer      string   `json:"answer"`
			Suggestions []string `json:"relatedQuestions,omitempty"`
		}{sessionID, msg.Text, msg.Suggestions}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printMessage(cmd, msg)
	return nil
}

func printTranscript(cmd *cobra.Command, messages []domain.ChatMessage) {
	for _, m := range messages {
		printMessage(cmd, m)
	}
}

func printMessage(cmd *cobra.Command, m domain.ChatMessage) {
	if m.Role == domain.RoleUser {
		cmd.Printf("You: %s\n", m.Text)
		return
	}
	cmd.Printf("AI: %s\n", m.Text)
	if len(m.Suggestions) > 0 {
		cmd.Println("Related questions:")
		for _, s := range m.Suggestions {
			cmd.Printf("  - %s\n", s)
		}
	}
	cmd.Println()
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
