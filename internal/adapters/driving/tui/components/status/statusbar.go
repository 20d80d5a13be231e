// Package status provides the one-line status bar shown under views.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
)

// State is what the left side of the bar reports.
type State int

const (
	// StateIdle shows "Ready".
	StateIdle State = iota
	// StateResults shows a result count.
	StateResults
	// StateBusy shows a progress label.
	StateBusy
	// StateError shows an error message.
	StateError
)

// Bar shows view state on the left and key hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	state  State
	text   string
	count  int
	hints  []key.Binding
	width  int
}

// NewBar creates an idle status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, width: 80}
}

// ShowResults reports n search results.
func (b *Bar) ShowResults(n int) {
	b.state, b.text, b.count = StateResults, "", n
}

// ShowBusy reports work in progress, such as a pending reply.
func (b *Bar) ShowBusy(label string) {
	b.state, b.text = StateBusy, label
}

// ShowError reports err until the next state change.
func (b *Bar) ShowError(err error) {
	b.state, b.text = StateError, ""
	if err != nil {
		b.text = err.Error()
	}
}

// Clear returns the bar to idle.
func (b *Bar) Clear() {
	b.state, b.text, b.count = StateIdle, "", 0
}

// SetHints replaces the key hints. Nil restores the defaults.
func (b *Bar) SetHints(bindings []key.Binding) {
	b.hints = bindings
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// State returns the current state.
func (b *Bar) State() State { return b.state }

// Text returns the busy label or error message.
func (b *Bar) Text() string { return b.text }

// Count returns the reported result count.
func (b *Bar) Count() int { return b.count }

// Width returns the rendered width.
func (b *Bar) Width() int { return b.width }

// View renders the bar padded to its width.
func (b *Bar) View() string {
	left, right := b.left(), b.right()
	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) left() string {
	switch b.state {
	case StateBusy:
		return b.styles.Warning.Render(b.text + "...")
	case StateError:
		if b.text == "" {
			return b.styles.Error.Render("Error")
		}
		return b.styles.Error.Render("Error: " + b.text)
	case StateResults:
		if b.count == 0 {
			return b.styles.Muted.Render("No matches")
		}
		return b.styles.Normal.Render(fmt.Sprintf("%d results", b.count))
	default:
		return b.styles.Muted.Render("Ready")
	}
}

func (b *Bar) right() string {
	bindings := b.hints
	if len(bindings) == 0 {
		bindings = b.keymap.ShortHelp()
		if b.state == StateResults && b.count > 0 {
			bindings = b.keymap.ResultsHelp()
		}
	}

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return b.styles.Muted.Render(strings.Join(parts, "  "))
}
