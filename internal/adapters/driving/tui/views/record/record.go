// Package record shows one record with its analysis.
package record

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

var (
	// ErrNoSearchService is reported when records cannot be looked up.
	ErrNoSearchService = errors.New("search service not available")

	// ErrNoAnalysisService is reported when analysis is unavailable.
	ErrNoAnalysisService = errors.New("analysis service not available")
)

// chrome is the rows taken by the header and footer.
const chrome = 8

var keys = struct {
	up, down, pageUp, pageDown, top, bottom, analyse, back key.Binding
}{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	pageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	pageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
	top:      key.NewBinding(key.WithKeys("home", "g")),
	bottom:   key.NewBinding(key.WithKeys("end", "G")),
	analyse:  key.NewBinding(key.WithKeys("a")),
	back:     key.NewBinding(key.WithKeys("esc")),
}

// View scrolls through a record's body followed by its analysis once
// one is requested with "a".
type View struct {
	styles   *styles.Styles
	search   driving.SearchService
	analyser driving.AnalysisService

	result   *domain.SearchResult
	record   *domain.Record
	analysis *domain.ArticleAnalysis

	// lines is the rendered content wrapped to the viewport width.
	lines []string
	vp    viewport.Model

	// md is rebuilt when the wrap width changes.
	md      *glamour.TermRenderer
	mdWidth int

	width, height int
	ready         bool

	err       error
	loading   bool
	analysing bool
}

// NewView returns an empty record view.
func NewView(s *styles.Styles, search driving.SearchService, analyser driving.AnalysisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{styles: s, search: search, analyser: analyser, vp: viewport.New(0, 0)}
	v.SetDimensions(80, 24)
	v.ready = false
	return v
}

// SetResult clears the view and looks up the record behind result.
func (v *View) SetResult(result domain.SearchResult) tea.Cmd {
	*v = View{
		styles:   v.styles,
		search:   v.search,
		analyser: v.analyser,
		vp:       v.vp,
		md:       v.md,
		mdWidth:  v.mdWidth,
		width:    v.width,
		height:   v.height,
		ready:    v.ready,
		result:   &result,
		loading:  true,
	}
	v.refresh()

	search := v.search
	return func() tea.Msg {
		if search == nil {
			return messages.RecordLoaded{Err: ErrNoSearchService}
		}
		record, err := search.Lookup(result.Type, result.ID)
		return messages.RecordLoaded{Record: record, Err: err}
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd { return nil }

// analyse serves a cached analysis when there is one.
func (v *View) analyse() tea.Cmd {
	svc := v.analyser
	title, body := v.record.Title, v.record.Body
	return func() tea.Msg {
		if svc == nil {
			return messages.AnalysisLoaded{Title: title, Err: ErrNoAnalysisService}
		}
		ctx := context.Background()
		if cached, ok := svc.Cached(ctx, title); ok {
			return messages.AnalysisLoaded{Title: title, Analysis: cached}
		}
		a, err := svc.Analyze(ctx, title, body)
		return messages.AnalysisLoaded{Title: title, Analysis: a, Err: err}
	}
}

// Update implements the view's message loop.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	case messages.RecordLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			record := msg.Record
			v.record = &record
			v.refresh()
		}
	case messages.AnalysisLoaded:
		// A slow answer for a record that is no longer open.
		if v.record == nil || msg.Title != v.record.Title {
			return v, nil
		}
		v.analysing = false
		v.err = msg.Err
		if msg.Err == nil {
			a := msg.Analysis
			v.analysis = &a
			v.refresh()
		}
	case messages.ErrorOccurred:
		v.err = msg.Err
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	page := v.visibleLines()

	switch {
	case key.Matches(msg, keys.up):
		v.vp.SetYOffset(v.vp.YOffset - 1)
	case key.Matches(msg, keys.down):
		v.vp.SetYOffset(v.vp.YOffset + 1)
	case key.Matches(msg, keys.pageUp):
		v.vp.SetYOffset(v.vp.YOffset - page)
	case key.Matches(msg, keys.pageDown):
		v.vp.SetYOffset(v.vp.YOffset + page)
	case key.Matches(msg, keys.top):
		v.vp.GotoTop()
	case key.Matches(msg, keys.bottom):
		v.vp.GotoBottom()
	case key.Matches(msg, keys.analyse):
		if v.record == nil || v.analysing || v.analysis != nil {
			return nil
		}
		v.analysing = true
		v.err = nil
		return v.analyse()
	case key.Matches(msg, keys.back):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewSearch} }
	}
	return nil
}

// content is the record as Markdown: the body, then each analysis
// section once loaded.
func (v *View) content() string {
	if v.record == nil {
		return ""
	}
	if v.analysis == nil {
		return v.record.Body
	}

	a := v.analysis
	parts := []string{v.record.Body, "## Analysis"}
	for _, s := range [][2]string{
		{"Modern text", a.ModernText},
		{"Example", a.Example},
		{"Historical context", a.HistoricalContext},
		{"Proponents", a.ProponentView},
		{"Opponents", a.OpponentView},
		{"Prevailing view", a.PrevailingView},
		{"Legal truth", a.LegalTruth},
	} {
		parts = append(parts, "### "+s[0]+"\n\n"+s[1])
	}
	return strings.Join(parts, "\n\n")
}

// render turns Markdown into terminal rows no wider than width. Plain
// wrapping is used when glamour fails.
func (v *View) render(md string, width int) []string {
	if md == "" {
		return nil
	}
	if v.md == nil || v.mdWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(v.styles.MarkdownStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logger.Debug("record: markdown renderer: %v", err)
			return wrap(md, width)
		}
		v.md, v.mdWidth = r, width
	}

	out, err := v.md.Render(md)
	if err != nil {
		logger.Debug("record: rendering markdown: %v", err)
		return wrap(md, width)
	}
	// Words longer than the width are not broken by the word wrapper.
	out = ansi.Hardwrap(strings.TrimRight(out, "\n"), width, false)
	return strings.Split(out, "\n")
}

// wrap breaks text into rows of at most width runes.
func wrap(text string, width int) []string {
	if text == "" {
		return nil
	}
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		r := []rune(line)
		for len(r) > width {
			rows = append(rows, string(r[:width]))
			r = r[width:]
		}
		rows = append(rows, string(r))
	}
	return rows
}

// refresh rewraps the content into the viewport, keeping the offset
// where it still fits.
func (v *View) refresh() {
	offset := v.vp.YOffset
	v.lines = v.render(v.content(), max(v.width-4, 20))
	v.vp.SetContent(strings.Join(v.lines, "\n"))
	v.vp.SetYOffset(offset)
}

func (v *View) visibleLines() int { return v.vp.Height }

// View renders the header, the visible rows and the footer.
func (v *View) View() string {
	var b strings.Builder

	title, label := "Record", ""
	switch {
	case v.record != nil:
		title, label = v.record.Title, v.record.SourceLabel
	case v.result != nil:
		title, label = v.result.Title, v.result.SourceLabel
	}
	b.WriteString(v.styles.Title.Render(title) + "\n")
	if label != "" {
		b.WriteString(v.styles.Subtitle.Render(label) + "\n")
	}
	b.WriteString(strings.Repeat("─", min(v.width-4, 60)) + "\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading record...") + "\n\n")
	case len(v.lines) == 0:
		if v.err != nil {
			b.WriteString(v.styles.Error.Render("Error: "+v.err.Error()) + "\n\n")
		} else {
			b.WriteString(v.styles.Muted.Render("(No content)") + "\n\n")
		}
	default:
		if v.err != nil {
			b.WriteString(v.styles.Error.Render("Error: "+v.err.Error()) + "\n\n")
		}
		b.WriteString(v.vp.View() + "\n")
		if total := len(v.lines); total > v.vp.Height {
			last := min(v.vp.YOffset+v.vp.Height, total)
			b.WriteString("\n" + v.styles.Muted.Render(fmt.Sprintf("  [%.0f%%] Line %d-%d of %d",
				v.vp.ScrollPercent()*100, v.vp.YOffset+1, last, total)))
		}
		if v.analysing {
			b.WriteString("\n" + v.styles.Warning.Render("Analysing..."))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [a] analyse  [esc] back"))
	return b.String()
}

// SetDimensions resizes the viewport and rewraps the content.
func (v *View) SetDimensions(width, height int) {
	v.width, v.height = width, height
	v.ready = true
	v.vp.Width = max(width-4, 20)
	v.vp.Height = max(height-chrome, 1)
	v.refresh()
}

// Record returns the loaded record, if any.
func (v *View) Record() *domain.Record { return v.record }

// Analysis returns the loaded analysis, if any.
func (v *View) Analysis() *domain.ArticleAnalysis { return v.analysis }

// Analysing reports whether an analysis is in flight.
func (v *View) Analysing() bool { return v.analysing }

// ScrollOffset returns the first visible row.
func (v *View) ScrollOffset() int { return v.vp.YOffset }

// Err returns the last error.
func (v *View) Err() error { return v.err }
