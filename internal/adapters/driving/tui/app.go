package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/views/record"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

const windowTitle = "mashruteh - قانون اساسی مشروطه"

// App is the root model. It owns one model per screen and routes each
// message either to the screen that asked for it or to the active one.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap
	help   help.Model

	menuView     *menu.View
	searchView   *search.View
	recordView   *record.View
	chatView     *chat.View
	historyView  *history.View
	settingsView *settings.View

	current messages.ViewType
	err     error

	width, height int
	ready         bool
}

var _ tea.Model = (*App)(nil)

// NewApp builds every screen over ports and starts on the menu.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := themedStyles(ports)
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.Styles.FullKey = s.Subtitle
	h.Styles.FullDesc = s.Normal
	h.Styles.FullSeparator = s.Muted

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keys:         km,
		help:         h,
		menuView:     menu.NewView(s),
		searchView:   search.NewView(s, km, ports.Search),
		recordView:   record.NewView(s, ports.Search, ports.Analysis),
		chatView:     chat.NewView(s, km, ports.Chat),
		historyView:  history.NewView(s, ports.Chat),
		settingsView: settings.NewView(s, ports.Settings),
		current:      messages.ViewMenu,
	}, nil
}

// themedStyles applies the saved theme. Any failure leaves the default.
func themedStyles(ports *Ports) *styles.Styles {
	if ports.Settings == nil {
		return styles.DefaultStyles()
	}
	cfg, err := ports.Settings.Get()
	if err != nil {
		logger.Warn("tui: loading theme: %v", err)
		return styles.DefaultStyles()
	}
	return styles.NewStyles(styles.ThemeFor(cfg.Theme))
}

// WithContext sets the context the program runs under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tea.SetWindowTitle(windowTitle))
}

// owner names the screen a message belongs to regardless of which one
// is showing. Replies may settle after the user has moved on.
func owner(msg tea.Msg) (messages.ViewType, bool) {
	switch msg.(type) {
	case messages.SearchCompleted:
		return messages.ViewSearch, true
	case messages.RecordLoaded, messages.AnalysisLoaded:
		return messages.ViewRecord, true
	case messages.ChatReplied:
		return messages.ViewChat, true
	case messages.HistoryLoaded, messages.ChatDeleted:
		return messages.ViewHistory, true
	case messages.SettingsLoaded, messages.SettingsSaved:
		return messages.ViewSettings, true
	}
	return 0, false
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if view, ok := owner(msg); ok {
		return a, a.route(view, msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.current == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.current = messages.ViewMenu
			}
			return a, nil
		}

	case messages.ResultSelected:
		a.current = messages.ViewRecord
		return a, a.recordView.SetResult(msg.Result)

	case messages.ChatOpened:
		cmd := a.route(messages.ViewChat, msg)
		if msg.Err != nil {
			a.err = msg.Err
			a.route(messages.ViewHistory, messages.ErrorOccurred{Err: msg.Err})
			return a, cmd
		}
		a.current = messages.ViewChat
		return a, cmd

	case messages.ViewChanged:
		a.current = msg.View
		return a, a.enter(msg.View)

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.current == messages.ViewMenu || a.current == messages.ViewSettings {
			return a, nil
		}

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.route(a.current, msg)
}

// enter prepares a screen as it becomes active.
func (a *App) enter(view messages.ViewType) tea.Cmd {
	switch view {
	case messages.ViewSearch:
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewChat:
		return a.chatView.Init()
	case messages.ViewHistory:
		return a.historyView.Refresh()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	}
	return nil
}

// route hands msg to one screen.
func (a *App) route(view messages.ViewType, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch view {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewRecord:
		a.recordView, cmd = a.recordView.Update(msg)
	case messages.ViewChat:
		if r, ok := msg.(messages.ChatReplied); ok && r.Err != nil {
			logger.Debug("tui: chat turn failed: %v", r.Err)
		}
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.current {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewRecord:
		return a.recordView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.helpView()
	}
	return a.menuView.View()
}

// helpView lists the shared bindings plus the keys the menu and record
// screens handle themselves.
func (a *App) helpView() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("Menu: j/k move, 1-6 or enter open, q quit"))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("Record: j/k or pgup/pgdn scroll, a analyse"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts a full-screen program over the app.
func (a *App) Run() error {
	_, err := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx)).Run()
	return err
}

// CurrentView returns the active screen.
func (a *App) CurrentView() messages.ViewType { return a.current }

// Err returns the last reported error.
func (a *App) Err() error { return a.err }

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool { return a.ready }

// Query returns the search input.
func (a *App) Query() string { return a.searchView.Query() }

// Results returns the current search hits.
func (a *App) Results() []domain.SearchResult { return a.searchView.Results() }

// SetDimensions resizes every screen.
func (a *App) SetDimensions(width, height int) {
	a.width, a.height = width, height
	a.ready = true
	a.help.Width = width

	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.recordView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
