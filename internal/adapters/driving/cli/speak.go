package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var speakOutput string

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Narrate text to an audio file",
	Long: `Synthesises speech for the text with the configured voice, tone and
speed, and writes the raw audio to a file. Requires the Gemini provider.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpeak,
}

func init() {
	speakCmd.Flags().StringVarP(&speakOutput, "output", "o", "speech.pcm", "output file")
	rootCmd.AddCommand(speakCmd)
}

func runSpeak(cmd *cobra.Command, args []string) error {
	if speechService == nil {
		return errors.New("speech service not configured")
	}

	audio, err := speechService.Speak(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("speech failed: %w", err)
	}

	if err := os.WriteFile(speakOutput, audio, 0o600); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}

	cmd.Printf("Wrote %d bytes to %s\n", len(audio), speakOutput)
	return nil
}
