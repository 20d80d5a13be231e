package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

var errNoSettings = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show or change the theme, narration voice, AI provider, chat and
storage settings. Without a subcommand the current settings are shown.`,
	RunE: runSettingsShow,
}

func init() {
	settingsCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current settings",
			Args:  cobra.NoArgs,
			RunE:  runSettingsShow,
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one setting",
			Long: `Change one setting by key:

  mashruteh settings set audio.speed 1.5
  mashruteh settings set theme.preset ocean

'mashruteh settings keys' lists every key.`,
			Args: cobra.ExactArgs(2),
			RunE: runSettingsSet,
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List the setting keys",
			Args:  cobra.NoArgs,
			RunE:  runSettingsKeys,
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the defaults",
			Args:  cobra.NoArgs,
			RunE:  runSettingsReset,
		},
		&cobra.Command{
			Use:   "wizard",
			Short: "Choose a theme, voice and AI provider interactively",
			Args:  cobra.NoArgs,
			RunE:  runSettingsWizard,
		},
		&cobra.Command{
			Use:   "llm",
			Short: "Choose the AI provider interactively",
			Args:  cobra.NoArgs,
			RunE:  runSettingsLLM,
		},
	)
	rootCmd.AddCommand(settingsCmd)
}

type field struct{ label, value string }

type section struct {
	name   string
	fields []field
}

// describe lays the settings out for display. Secrets are masked.
func describe(s *domain.AppSettings) []section {
	theme := []field{{"Mode", string(s.Theme.Mode)}, {"Preset", string(s.Theme.Preset)}}
	if s.Theme.Accent != "" {
		theme = append(theme, field{"Accent", s.Theme.Accent})
	}

	llm := []field{
		{"Provider", s.LLM.Provider.Description()},
		{"Model", s.LLM.Model},
	}
	if s.LLM.Provider.IsLocal() {
		llm = append(llm, field{"Base URL", s.LLM.BaseURL})
	}
	if s.LLM.Provider.RequiresAPIKey() {
		key := "(not set)"
		if s.LLM.APIKey != "" {
			key = maskAPIKey(s.LLM.APIKey)
		}
		llm = append(llm, field{"API Key", key})
	}
	status := "not configured"
	if s.LLM.IsConfigured() {
		status = "configured"
	}
	llm = append(llm, field{"Status", status})

	return []section{
		{"Theme", theme},
		{"Display", []field{
			{"Font size", string(s.Display.FontSize)},
			{"Font family", string(s.Display.FontFamily)},
			{"Splash", yesNo(s.Display.ShowSplash)},
		}},
		{"Audio", []field{
			{"Voice", fmt.Sprintf("%s (%s)", s.Audio.Voice(), s.Audio.Gender)},
			{"Tone", string(s.Audio.Tone)},
			{"Speed", strconv.FormatFloat(s.Audio.Speed, 'g', 2, 64)},
		}},
		{"LLM", llm},
		{"Speech", []field{
			{"Model", s.Speech.Model},
			{"Narrate answers", yesNo(s.Speech.Narrate)},
		}},
		{"Chat", []field{
			{"History window", strconv.Itoa(s.Chat.HistoryWindow)},
			{"Date layout", s.Chat.DateLayout},
		}},
		{"Storage", []field{{"Backend", string(s.Storage.Backend)}}},
	}
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	for _, sec := range describe(settings) {
		cmd.Printf("[%s]\n", sec.name)
		for _, f := range sec.fields {
			cmd.Printf("  %s: %s\n", f.label, f.value)
		}
		cmd.Println()
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'mashruteh settings wizard' to fix it.")
		return nil
	}
	cmd.Println("Configuration is valid.")
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	if strings.HasSuffix(key, "api_key") {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	cmd.Println(strings.Join(settingsService.Keys(), "\n"))
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("resetting settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

// prompter asks numbered and free-text questions on the command's stdio.
type prompter struct {
	cmd *cobra.Command
	in  *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{cmd: cmd, in: bufio.NewReader(cmd.InOrStdin())}
}

func (p *prompter) heading(title string) {
	p.cmd.Println(title)
	p.cmd.Println(strings.Repeat("-", len(title)))
}

// choose lists options and returns the picked index. Anything but a valid
// number picks the first option.
func (p *prompter) choose(options []string) int {
	for i, o := range options {
		p.cmd.Printf("  %d. %s\n", i+1, o)
	}
	p.cmd.Print("\nEnter choice [1]: ")
	return parseChoice(p.line(), len(options), 1) - 1
}

func (p *prompter) ask(label, fallback string) string {
	p.cmd.Printf("%s [%s]: ", label, fallback)
	if v := p.line(); v != "" {
		return v
	}
	return fallback
}

// secret reads without echo when stdin is a terminal.
func (p *prompter) secret(label string) string {
	p.cmd.Print(label + ": ")
	defer p.cmd.Println()
	return readPassword(p.cmd.InOrStdin(), p.in)
}

func (p *prompter) line() string { return readLine(p.in) }

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	p := newPrompter(cmd)

	cmd.Println("Mashruteh Settings Wizard")
	cmd.Println()

	p.heading("Step 1: Theme")
	presets := domain.AllThemePresets()
	names := make([]string, len(presets))
	for i, preset := range presets {
		names[i] = string(preset)
	}
	preset := presets[p.choose(names)]
	if err := settingsService.SetPreset(preset); err != nil {
		return fmt.Errorf("setting theme: %w", err)
	}
	cmd.Printf("Theme: %s\n\n", preset)

	p.heading("Step 2: Narration voice")
	genders := []domain.VoiceGender{domain.VoiceFemale, domain.VoiceMale}
	gender := genders[p.choose([]string{string(genders[0]), string(genders[1])})]
	if err := settingsService.Set("audio.gender", string(gender)); err != nil {
		return fmt.Errorf("setting voice: %w", err)
	}
	cmd.Printf("Voice: %s\n\n", gender)

	p.heading("Step 3: AI provider")
	cmd.Println("Chat answers and analyses need a language model.")
	if err := chooseProvider(p); err != nil {
		return err
	}

	cmd.Println("Configuration Complete!")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		return nil
	}
	cmd.Println("All settings are valid and saved.")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	return chooseProvider(newPrompter(cmd))
}

// chooseProvider saves the picked provider, model and key, then probes it.
func chooseProvider(p *prompter) error {
	providers := domain.AllLLMProviders()
	labels := make([]string, len(providers))
	for i, prov := range providers {
		labels[i] = prov.Description()
	}
	provider := providers[p.choose(labels)]
	model := p.ask("Model", domain.DefaultLLMModels()[provider])

	var apiKey string
	if provider.RequiresAPIKey() {
		if apiKey = p.secret("API key"); apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("saving provider: %w", err)
	}

	p.cmd.Print("Checking provider... ")
	if err := settingsService.ProbeLLM(p.cmd.Context()); err != nil {
		p.cmd.Println("FAILED")
		return fmt.Errorf("checking provider: %w", err)
	}
	p.cmd.Println("OK")
	p.cmd.Printf("Using %s (%s)\n\n", provider.Description(), model)
	return nil
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

// parseChoice returns the 1-based choice in input, or fallback when it is
// not a number between 1 and n.
func parseChoice(input string, n, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 1 || v > n {
		return fallback
	}
	return v
}

func readPassword(in io.Reader, r *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if b, err := term.ReadPassword(int(f.Fd())); err == nil {
			return string(b)
		}
	}
	return readLine(r)
}

// maskAPIKey keeps the first and last four characters of long keys.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
