// Package search is the live search screen.
package search

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
)

// ErrNoSearchService is reported when a query arrives without a service.
var ErrNoSearchService = errors.New("search service is required")

// filters is the tab order of the collection filter. The empty type
// searches everything.
var filters = []domain.ResultType{
	"",
	domain.ResultTypeLaw,
	domain.ResultTypeDoc,
	domain.ResultTypeAction,
	domain.ResultTypeAnalysis,
	domain.ResultTypeComprehensive,
}

// chrome is the number of lines taken by everything but the list.
const chrome = 10

// View keeps the input focused and searches again on every edit or
// filter change. Results for anything but the current query and filter
// are dropped.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	input  *input.TextInput
	list   *list.ResultList
	bar    *status.Bar
	svc    driving.SearchService

	filter int
	shown  string
	err    error

	width, height int
	ready         bool
}

// NewView returns an empty search screen. s and km may be nil.
func NewView(s *styles.Styles, km *keymap.KeyMap, svc driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	results := list.NewResultList(s)
	if svc != nil {
		results.SetHighlighter(svc.Highlight)
	}

	return &View{
		styles: s,
		keys:   km,
		input:  input.NewSearchInput(s),
		list:   results,
		bar:    status.NewBar(s, km),
		svc:    svc,
		width:  80,
		height: 24,
	}
}

// Init starts the cursor blinking.
func (v *View) Init() tea.Cmd { return v.input.Init() }

// Update implements the screen's message loop.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	case messages.SearchCompleted:
		v.show(msg)
		return v, nil
	case messages.ErrorOccurred:
		v.err = msg.Err
		v.bar.ShowError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Back):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case key.Matches(msg, v.keys.Up):
		v.list.MoveUp()
		return nil
	case key.Matches(msg, v.keys.Down):
		v.list.MoveDown()
		return nil
	case key.Matches(msg, v.keys.Filter):
		v.filter = (v.filter + 1) % len(filters)
		if v.input.Value() == "" {
			return nil
		}
		return v.search(v.input.Value())
	case key.Matches(msg, v.keys.Select):
		hit := v.list.SelectedResult()
		if hit == nil {
			return nil
		}
		selected := *hit
		return func() tea.Msg { return messages.ResultSelected{Result: selected} }
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if after := v.input.Value(); after != before {
		return tea.Batch(v.search(after), cmd)
	}
	return cmd
}

// Filter returns the collection results are limited to, or "" for all.
func (v *View) Filter() domain.ResultType { return filters[v.filter] }

func (v *View) search(query string) tea.Cmd {
	filter := v.Filter()
	return func() tea.Msg {
		if v.svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		var opts domain.SearchOptions
		if filter != "" {
			opts.Types = []domain.ResultType{filter}
		}
		return messages.SearchCompleted{
			Query:   query,
			Filter:  filter,
			Results: v.svc.Search(query, opts),
		}
	}
}

func (v *View) show(msg messages.SearchCompleted) {
	if msg.Query != v.input.Value() || msg.Filter != v.Filter() {
		return
	}
	v.err = nil
	v.shown = msg.Query
	v.list.SetQuery(msg.Query)
	v.list.SetResults(msg.Results)
	v.bar.ShowResults(len(msg.Results))
}

// View renders the title, input, results and status bar.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	title := v.styles.Title.Render("Search")
	if f := v.Filter(); f != "" {
		title += "  " + v.styles.Muted.Render("in "+string(f))
	}

	parts := []string{title, "", v.input.View(), ""}
	if v.err != nil {
		parts = append(parts, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	if v.shown == "" {
		parts = append(parts, v.styles.Muted.Render("Type to search every collection. Tab narrows to one."))
	} else {
		parts = append(parts, v.list.View())
	}
	parts = append(parts, "", v.bar.View())

	return strings.Join(parts, "\n")
}

// SetDimensions resizes the input, list and bar.
func (v *View) SetDimensions(width, height int) {
	v.width, v.height = width, height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-chrome)
	v.bar.SetWidth(width)
}

// Width returns the screen width.
func (v *View) Width() int { return v.width }

// Height returns the screen height.
func (v *View) Height() int { return v.height }

// Ready reports whether the terminal size is known.
func (v *View) Ready() bool { return v.ready }

// Query returns the input text.
func (v *View) Query() string { return v.input.Value() }

// SetQuery replaces the input text without searching.
func (v *View) SetQuery(query string) { v.input.SetValue(query) }

// Results returns the listed hits.
func (v *View) Results() []domain.SearchResult { return v.list.Results() }

// SelectedIndex returns the list cursor.
func (v *View) SelectedIndex() int { return v.list.Selected() }

// SelectedResult returns the hit under the cursor.
func (v *View) SelectedResult() *domain.SearchResult { return v.list.SelectedResult() }

// Err returns the last error.
func (v *View) Err() error { return v.err }

// Reset clears the query, results and filter.
func (v *View) Reset() {
	v.input.Focus()
	v.input.Reset()
	v.filter = 0
	v.shown = ""
	v.err = nil
	v.list.SetQuery("")
	v.list.SetResults(nil)
	v.bar.Clear()
}
