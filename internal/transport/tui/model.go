// Package tui is a terminal search widget over the documentation index.
//
// The model owns the search box and the result list. Searches run in a
// search.Session; the session's listener feeds events back into the
// bubbletea loop as EventMsg values (see cmd/docdex-tui).
package tui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/docdex/internal/domain/doctree"
	"github.com/kailas-cloud/docdex/internal/domain/search/kind"
	"github.com/kailas-cloud/docdex/internal/domain/search/query"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/docdex/internal/usecase/search"
)

// defaultListHeight is used until the first WindowSizeMsg arrives.
const defaultListHeight = 10

// Input receives the search box text on every change.
type Input interface {
	Input(text string)
}

// EventMsg delivers a search session event to the model.
type EventMsg struct {
	Event searchuc.Event
}

// IndexLoadedMsg reports that the index snapshot was installed.
type IndexLoadedMsg struct {
	Stats doctree.Stats
}

// LoadFailedMsg reports that the index could not be loaded.
type LoadFailedMsg struct {
	Err error
}

// Model is the bubbletea model of the search widget.
type Model struct {
	input  textinput.Model
	search Input
	keys   KeyMap
	styles styles

	state   searchuc.State
	query   query.Query
	results []result.Result
	total   int
	cursor  int
	offset  int

	loaded   bool
	stats    doctree.Stats
	waiting  bool
	loadErr  error
	errMsg   string
	selected string

	width  int
	height int
}

// NewModel creates the widget. Every change of the search box text is
// forwarded to search.
func NewModel(search Input) Model {
	input := textinput.New()
	input.Prompt = "search: "
	input.Placeholder = "type, #method, .class_method, Type::"
	input.CharLimit = query.MaxLength
	input.Focus()

	return Model{
		input:  input,
		search: search,
		keys:   DefaultKeyMap,
		styles: newStyles(DefaultTheme),
		state:  searchuc.StateIdle,
	}
}

// Selected returns the href of the result chosen with enter, or "".
func (m Model) Selected() string {
	return m.selected
}

// Results returns the currently displayed results.
func (m Model) Results() []result.Result {
	return m.results
}

// Cursor returns the index of the highlighted result.
func (m Model) Cursor() int {
	return m.cursor
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		m.scrollToCursor()
		return m, nil

	case EventMsg:
		m.applyEvent(msg.Event)
		return m, nil

	case IndexLoadedMsg:
		m.loaded = true
		m.stats = msg.Stats
		return m, nil

	case LoadFailedMsg:
		m.loadErr = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.clearResults()
		m.search.Input("")
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scrollToCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
			m.scrollToCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if len(m.results) == 0 {
			return m, nil
		}
		m.selected = m.results[m.cursor].Href
		return m, tea.Quit
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.search.Input(after)
	}
	return m, cmd
}

func (m *Model) applyEvent(e searchuc.Event) {
	// Events for text the user has already replaced are stale.
	if e.Text != m.input.Value() {
		return
	}
	m.state = e.State
	m.waiting = false
	m.errMsg = ""

	switch e.State {
	case searchuc.StateIdle:
		if e.Err != nil {
			m.waiting = true
		}
	case searchuc.StateDone:
		switch {
		case e.Err != nil:
			m.errMsg = e.Err.Error()
		case e.Text == "":
			m.clearResults()
		case !e.Unchanged:
			m.query = e.Outcome.Query
			m.results = e.Outcome.Page.Items
			m.total = e.Outcome.Page.Total
			m.cursor = 0
			m.offset = 0
		}
	}
}

func (m *Model) clearResults() {
	m.query = query.Query{}
	m.results = nil
	m.total = 0
	m.cursor = 0
	m.offset = 0
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return defaultListHeight
	}
	// Search box, status line and one summary line per row.
	return max((m.height-2)/2, 1)
}

func (m *Model) scrollToCursor() {
	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteByte('\n')

	end := min(m.offset+m.listHeight(), len(m.results))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderResult(&m.results[i], i == m.cursor))
	}
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.loadErr != nil:
		return m.styles.err.Render("index unavailable: " + m.loadErr.Error())
	case m.errMsg != "":
		return m.styles.err.Render(m.errMsg)
	case m.waiting:
		return m.styles.faint.Render("loading index…")
	case m.state == searchuc.StateDebouncing || m.state == searchuc.StateSearching:
		return m.styles.faint.Render("searching…")
	case m.input.Value() == "":
		if m.loaded {
			return m.styles.faint.Render(fmt.Sprintf("%d types, %d methods, %d constants",
				m.stats.Types, m.stats.Methods+m.stats.Macros+m.stats.Constructors, m.stats.Constants))
		}
		return ""
	case len(m.results) == 0:
		return m.styles.faint.Render("no results")
	case m.total > len(m.results):
		return m.styles.faint.Render(fmt.Sprintf("%d of %d results", len(m.results), m.total))
	default:
		return m.styles.faint.Render(fmt.Sprintf("%d results", len(m.results)))
	}
}

func (m Model) renderResult(r *result.Result, selected bool) string {
	title := r.Name
	if r.Kind == kind.Type {
		title = r.FullName
	}

	var line strings.Builder
	if selected {
		line.WriteString(m.styles.prefix.Render("> "))
	} else {
		line.WriteString("  ")
	}
	if prefix := r.Kind.Prefix(); prefix != "" {
		line.WriteString(m.styles.prefix.Render(prefix))
	}
	line.WriteString(m.mark(title, m.styles.normal))
	if r.ArgsString != "" {
		line.WriteString(m.mark(r.ArgsString, m.styles.faint))
	}
	if r.Type != "" {
		line.WriteString("  ")
		line.WriteString(m.mark(r.Type, m.styles.typeLine))
	}
	if r.Value != "" {
		line.WriteString(m.styles.faint.Render(" = " + r.Value))
	}

	first := line.String()
	if selected {
		first = m.styles.selected.Render(first)
	}

	rows := []string{first, "    " + m.renderSummary(r.Summary)}
	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if m.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(m.width).Render(out)
	}
	return out + "\n"
}

// mark renders text in base with query terms highlighted.
func (m Model) mark(text string, base lipgloss.Style) string {
	var b strings.Builder
	rest := m.query.HighlightFunc(text, func(s string) string {
		return "\x00" + s + "\x00"
	})
	for i, part := range strings.Split(rest, "\x00") {
		if part == "" {
			continue
		}
		if i%2 == 1 {
			b.WriteString(m.styles.mark.Render(part))
		} else {
			b.WriteString(base.Render(part))
		}
	}
	return b.String()
}

// renderSummary turns a sanitized summary into styled plain text.
// <code> spans get the code color and are not highlighted.
func (m Model) renderSummary(summary string) string {
	clean := query.SanitizeSummary(summary)
	clean = strings.ReplaceAll(clean, "\n", " ")

	var b strings.Builder
	for {
		start := strings.Index(clean, "<code")
		if start < 0 {
			break
		}
		b.WriteString(m.mark(html.UnescapeString(clean[:start]), m.styles.faint))
		clean = clean[start:]

		open := strings.IndexByte(clean, '>')
		end := strings.Index(clean, "</code>")
		if open < 0 || end < open {
			break
		}
		b.WriteString(m.styles.code.Render(html.UnescapeString(clean[open+1 : end])))
		clean = clean[end+len("</code>"):]
	}
	if clean != "" {
		b.WriteString(m.mark(html.UnescapeString(clean), m.styles.faint))
	}
	return b.String()
}
