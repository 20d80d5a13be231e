// Package settings is the settings screen: quick pickers for the theme,
// narration voice and AI provider, plus a raw editor for every key.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
)

// ErrNoSettingsService is reported when the screen has no service.
var ErrNoSettingsService = errors.New("settings service not available")

// Section is the page of the screen being shown.
type Section int

// Pages of the settings screen.
const (
	SectionOverview Section = iota
	SectionTheme
	SectionVoice
	SectionLLM
	SectionAll
)

//nolint:gosec // key name, not a credential
const apiKeySetting = "llm.api_key"

var (
	pages   = []Section{SectionTheme, SectionVoice, SectionLLM, SectionAll}
	genders = []domain.VoiceGender{domain.VoiceFemale, domain.VoiceMale}
)

// readers render each setting key for the raw editor.
var readers = map[string]func(*domain.AppSettings) string{
	"theme.mode":          func(s *domain.AppSettings) string { return string(s.Theme.Mode) },
	"theme.preset":        func(s *domain.AppSettings) string { return string(s.Theme.Preset) },
	"theme.accent":        func(s *domain.AppSettings) string { return s.Theme.Accent },
	"display.font_size":   func(s *domain.AppSettings) string { return s.Display.FontSize },
	"display.font_family": func(s *domain.AppSettings) string { return s.Display.FontFamily },
	"display.show_splash": func(s *domain.AppSettings) string { return strconv.FormatBool(s.Display.ShowSplash) },
	"audio.gender":        func(s *domain.AppSettings) string { return string(s.Audio.Gender) },
	"audio.tone":          func(s *domain.AppSettings) string { return string(s.Audio.Tone) },
	"audio.speed":         func(s *domain.AppSettings) string { return strconv.FormatFloat(s.Audio.Speed, 'g', -1, 64) },
	"audio.voice_name":    func(s *domain.AppSettings) string { return s.Audio.VoiceName },
	"llm.provider":        func(s *domain.AppSettings) string { return string(s.LLM.Provider) },
	"llm.model":           func(s *domain.AppSettings) string { return s.LLM.Model },
	"llm.base_url":        func(s *domain.AppSettings) string { return s.LLM.BaseURL },
	apiKeySetting: func(s *domain.AppSettings) string {
		if s.LLM.APIKey == "" {
			return ""
		}
		return "********"
	},
	"speech.narrate":      func(s *domain.AppSettings) string { return strconv.FormatBool(s.Speech.Narrate) },
	"speech.model":        func(s *domain.AppSettings) string { return s.Speech.Model },
	"chat.history_window": func(s *domain.AppSettings) string { return strconv.Itoa(s.Chat.HistoryWindow) },
	"chat.greeting":       func(s *domain.AppSettings) string { return s.Chat.Greeting },
	"chat.date_layout":    func(s *domain.AppSettings) string { return s.Chat.DateLayout },
	"storage.backend":     func(s *domain.AppSettings) string { return string(s.Storage.Backend) },
}

// choice is one line of a picker.
type choice struct {
	label   string
	note    string
	current bool
}

// View is the settings screen. Only one text field is active at a time:
// the API key on the provider page or the value on the raw page.
type View struct {
	styles *styles.Styles
	svc    driving.SettingsService

	settings *domain.AppSettings
	err      error

	section  Section
	selected int
	// focusedField is 1 while a text field has focus.
	focusedField int

	apiKeyInput textinput.Model
	valueInput  textinput.Model

	width, height int
	ready         bool
}

// NewView returns the screen on its overview page.
func NewView(s *styles.Styles, svc driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	apiKey := textinput.New()
	apiKey.Placeholder = "Enter API key"
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 256

	value := textinput.New()
	value.CharLimit = 512

	return &View{styles: s, svc: svc, apiKeyInput: apiKey, valueInput: value}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd { return v.load() }

func (v *View) load() tea.Cmd {
	svc := v.svc
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		s, err := svc.Get()
		return messages.SettingsLoaded{Settings: s, Err: err}
	}
}

// save runs fn against the service off the update loop.
func (v *View) save(fn func(driving.SettingsService) error) tea.Cmd {
	svc := v.svc
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: fn(svc)}
	}
}

// Update implements the screen's message loop.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		v.leaveInput()
		if v.section != SectionAll {
			v.open(SectionOverview)
		}
		return v, v.load()
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()

	if k == "esc" {
		switch {
		case v.focusedField == 1:
			v.leaveInput()
		case v.section == SectionOverview:
			return func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		default:
			v.open(SectionOverview)
		}
		return nil
	}

	if v.focusedField == 1 {
		return v.handleInput(msg)
	}

	switch k {
	case "up", "k":
		v.selected = max(v.selected-1, 0)
		return nil
	case "down", "j":
		v.selected = min(v.selected+1, max(v.count()-1, 0))
		return nil
	case "r":
		if v.section == SectionOverview {
			return v.save(func(svc driving.SettingsService) error { return svc.Reset() })
		}
	case "tab":
		if v.section == SectionLLM && domain.AllLLMProviders()[v.selected].RequiresAPIKey() {
			v.focusedField = 1
			return v.apiKeyInput.Focus()
		}
	case "enter":
		return v.choose()
	}
	return nil
}

// handleInput feeds keys to whichever field has focus.
func (v *View) handleInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	if v.section == SectionLLM {
		switch msg.String() {
		case "tab", "shift+tab":
			v.leaveInput()
			return nil
		case "enter":
			return v.useProvider(domain.AllLLMProviders()[v.selected], v.apiKeyInput.Value())
		}
		v.apiKeyInput, cmd = v.apiKeyInput.Update(msg)
		return cmd
	}

	if msg.String() == "enter" {
		key, value := v.keys()[v.selected], v.valueInput.Value()
		return v.save(func(svc driving.SettingsService) error { return svc.Set(key, value) })
	}
	v.valueInput, cmd = v.valueInput.Update(msg)
	return cmd
}

// choose acts on the selected line of the current page.
func (v *View) choose() tea.Cmd {
	i := v.selected

	switch v.section {
	case SectionOverview:
		v.open(pages[i])
	case SectionTheme:
		preset := domain.AllThemePresets()[i]
		return v.save(func(svc driving.SettingsService) error { return svc.SetPreset(preset) })
	case SectionVoice:
		gender := string(genders[i])
		return v.save(func(svc driving.SettingsService) error { return svc.Set("audio.gender", gender) })
	case SectionLLM:
		provider := domain.AllLLMProviders()[i]
		if provider.RequiresAPIKey() {
			v.focusedField = 1
			return v.apiKeyInput.Focus()
		}
		return v.useProvider(provider, "")
	case SectionAll:
		keys := v.keys()
		if i >= len(keys) {
			return nil
		}
		v.valueInput.EchoMode = textinput.EchoNormal
		v.valueInput.SetValue(v.value(keys[i]))
		if keys[i] == apiKeySetting {
			v.valueInput.EchoMode = textinput.EchoPassword
			v.valueInput.SetValue("")
		}
		v.valueInput.CursorEnd()
		v.focusedField = 1
		return v.valueInput.Focus()
	}
	return nil
}

func (v *View) useProvider(provider domain.AIProvider, apiKey string) tea.Cmd {
	model := domain.DefaultLLMModels()[provider]
	return v.save(func(svc driving.SettingsService) error {
		return svc.SetLLMProvider(provider, model, apiKey)
	})
}

// open switches page and puts the cursor on the saved value.
func (v *View) open(sec Section) {
	v.section = sec
	v.selected = 0
	for i, c := range v.choices() {
		if c.current {
			v.selected = i
			break
		}
	}
}

func (v *View) leaveInput() {
	v.focusedField = 0
	v.apiKeyInput.Reset()
	v.apiKeyInput.Blur()
	v.valueInput.Reset()
	v.valueInput.Blur()
}

func (v *View) keys() []string {
	if v.svc == nil {
		return nil
	}
	return v.svc.Keys()
}

// value renders the saved value of key. Secrets are masked.
func (v *View) value(key string) string {
	read, ok := readers[key]
	if !ok || v.settings == nil {
		return ""
	}
	return read(v.settings)
}

// count is the number of selectable lines on the current page.
func (v *View) count() int {
	if v.section == SectionAll {
		return len(v.keys())
	}
	return len(v.choices())
}

// choices lists the lines of the overview and picker pages.
func (v *View) choices() []choice {
	s := v.settings
	if s == nil {
		return nil
	}

	var out []choice
	switch v.section {
	case SectionOverview:
		theme := string(s.Theme.Preset)
		if s.Theme.Mode == domain.ThemeModeCustom && s.Theme.Accent != "" {
			theme = "custom " + s.Theme.Accent
		}
		provider := "Not Set"
		if s.LLM.Provider != "" {
			provider = fmt.Sprintf("%s (%s)", s.LLM.Provider.Description(), s.LLM.Model)
		}
		status := v.styles.Warning.Render("[needs API key]")
		if s.LLM.IsConfigured() {
			status = v.styles.Success.Render("[configured]")
		}
		out = []choice{
			{label: "Theme: " + theme},
			{label: fmt.Sprintf("Voice: %s (%s)", s.Audio.Gender, s.Audio.Voice())},
			{label: "LLM Provider: " + provider + " " + status},
			{label: "All settings"},
		}
	case SectionTheme:
		for _, p := range domain.AllThemePresets() {
			out = append(out, choice{label: string(p), current: p == s.Theme.Preset})
		}
	case SectionVoice:
		for _, g := range genders {
			out = append(out, choice{label: string(g), current: g == s.Audio.Gender})
		}
	case SectionLLM:
		models := domain.DefaultLLMModels()
		for _, p := range domain.AllLLMProviders() {
			out = append(out, choice{label: p.Description(), note: "Model: " + models[p], current: p == s.LLM.Provider})
		}
	}
	return out
}

// View renders the current page.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings") + "\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: "+v.err.Error()) + "\n\n")
	}
	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		v.writeChoices(&b)
		b.WriteString("\n" + v.validity() + "\n")
	case SectionTheme:
		v.writePicker(&b, "Select Theme Preset")
	case SectionVoice:
		v.writePicker(&b, "Select Narration Voice")
	case SectionLLM:
		v.writePicker(&b, "Select LLM Provider")
		if domain.AllLLMProviders()[v.selected].RequiresAPIKey() {
			b.WriteString("\n" + v.styles.Normal.Render("API Key:") + "\n" + v.apiKeyInput.View() + "\n")
		}
	case SectionAll:
		v.writeAll(&b)
	}

	b.WriteString("\n" + v.styles.Help.Render(v.hints()))
	return b.String()
}

func (v *View) validity() string {
	if v.svc == nil {
		return ""
	}
	if err := v.svc.Validate(); err != nil {
		return v.styles.Warning.Render("Warning: " + err.Error())
	}
	return v.styles.Success.Render("Configuration is valid")
}

func (v *View) writeLine(b *strings.Builder, i int, text string) {
	if i == v.selected && v.focusedField == 0 {
		b.WriteString(v.styles.Selected.Render("> "+text) + "\n")
		return
	}
	b.WriteString(v.styles.Normal.Render("  "+text) + "\n")
}

func (v *View) writeChoices(b *strings.Builder) {
	for i, c := range v.choices() {
		label := c.label
		if c.current {
			label += v.styles.Success.Render(" (current)")
		}
		v.writeLine(b, i, label)
		if c.note != "" {
			b.WriteString(v.styles.Muted.Render("    "+c.note) + "\n")
		}
	}
}

func (v *View) writePicker(b *strings.Builder, title string) {
	b.WriteString(v.styles.Subtitle.Render(title) + "\n\n")
	v.writeChoices(b)
}

func (v *View) writeAll(b *strings.Builder) {
	b.WriteString(v.styles.Subtitle.Render("All Settings") + "\n\n")

	keys := v.keys()
	rows := max(v.height-8, 1)
	start := max(v.selected-rows+1, 0)
	for i := start; i < min(start+rows, len(keys)); i++ {
		v.writeLine(b, i, fmt.Sprintf("%-22s %s", keys[i], v.value(keys[i])))
	}

	if v.focusedField == 1 && v.selected < len(keys) {
		b.WriteString("\n" + v.styles.Normal.Render(keys[v.selected]+":") + "\n" + v.valueInput.View() + "\n")
	}
}

func (v *View) hints() string {
	switch {
	case v.focusedField == 1 && v.section == SectionLLM:
		return "[tab] back to list  [enter] save  [esc] cancel"
	case v.focusedField == 1:
		return "[enter] save  [esc] cancel"
	case v.section == SectionOverview:
		return "[j/k] navigate  [enter] edit  [r] reset defaults  [esc] back"
	case v.section == SectionLLM:
		return "[j/k] navigate  [tab] API key  [enter] select  [esc] back"
	case v.section == SectionAll:
		return "[j/k] navigate  [enter] edit value  [esc] back"
	}
	return "[j/k] navigate  [enter] select  [esc] back"
}

// SetDimensions records the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width, v.height = width, height
	v.ready = true
}

// Section returns the current page.
func (v *View) Section() Section { return v.section }

// Selected returns the cursor on the current page.
func (v *View) Selected() int { return v.selected }

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings { return v.settings }

// Err returns the last error.
func (v *View) Err() error { return v.err }

// Reset returns to the overview and drops any edit or error.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.err = nil
	v.leaveInput()
}
