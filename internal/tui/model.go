// Package tui is the terminal presentation surface. bubbletea's Update loop
// is the presentation goroutine: intents go out to the coordinator and
// completed actions come back as messages through Program.Send.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/quotedesk/internal/coordinator"
	"github.com/rpggio/quotedesk/internal/domain/quote"
)

// Intents receives user requests. It is implemented by the coordinator.
type Intents interface {
	OnRefreshRequested()
	OnAddRequested(in quote.Input)
	OnUpdateRequested(id int64, in quote.Input)
	OnDeleteRequested(id int64)
}

type focusArea int

const (
	focusList focusArea = iota
	focusText
	focusAuthor
	focusTags

	focusCount
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// applyMsg carries a completion posted by a worker.
type applyMsg struct {
	fn func()
}

type startupMsg struct{}

// Model is the bubbletea model. It also implements coordinator.Renderer;
// render callbacks only run inside Update.
type Model struct {
	intents Intents
	keys    keyMap
	help    help.Model
	styles  styles
	spinner spinner.Model
	text    textarea.Model
	author  textinput.Model
	tags    textinput.Model

	quotes        []quote.Quote
	cursor        int
	selectedID    int64
	focus         focusArea
	pendingDelete int64
	busy          map[coordinator.Action]bool
	spinning      bool
	status        string
	statusKind    statusKind
	width         int
}

var _ coordinator.Renderer = (*Model)(nil)

// New creates a model. Bind must be called before the program starts.
func New() *Model {
	text := textarea.New()
	text.Placeholder = "Quote text"
	text.ShowLineNumbers = false
	text.CharLimit = 2000
	text.SetHeight(3)
	text.SetWidth(60)

	author := textinput.New()
	author.Placeholder = "Author"
	author.CharLimit = 200
	author.Width = 40

	tags := textinput.New()
	tags.Placeholder = "comma, separated, tags"
	tags.CharLimit = 500
	tags.Width = 40

	st := defaultStyles()
	return &Model{
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  st,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(st.info)),
		text:    text,
		author:  author,
		tags:    tags,
		cursor:  -1,
		busy:    make(map[coordinator.Action]bool),
		status:  "press r to refresh, tab to edit",
	}
}

// Bind sets the receiver of user intents.
func (m *Model) Bind(intents Intents) {
	m.intents = intents
}

// Init triggers the start-up refresh.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return startupMsg{} }
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case applyMsg:
		msg.fn()
		return m, m.startSpinner()

	case startupMsg:
		m.intents.OnRefreshRequested()
		return m, m.startSpinner()

	case spinner.TickMsg:
		if !m.isBusy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if w := msg.Width - 6; w > 20 {
			m.text.SetWidth(w)
			m.author.Width = w
			m.tags.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.startSpinner())
	}

	return m, m.updateInput(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if m.pendingDelete != 0 {
		m.confirmDelete(key.Matches(msg, m.keys.Confirm))
		return nil
	}
	if m.focus != focusList && isTextKey(msg) {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.NextFocus):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Clear):
		m.RenderFormCleared()
		m.setStatus(statusInfo, "form cleared")
		return m.setFocus(focusList)
	case key.Matches(msg, m.keys.Refresh):
		m.intents.OnRefreshRequested()
	case key.Matches(msg, m.keys.Add):
		m.intents.OnAddRequested(m.formInput())
	case key.Matches(msg, m.keys.Update):
		m.intents.OnUpdateRequested(m.selectedID, m.formInput())
	case key.Matches(msg, m.keys.Delete):
		if m.selectedID == 0 {
			// Let the coordinator report the missing selection.
			m.intents.OnDeleteRequested(0)
			return nil
		}
		m.pendingDelete = m.selectedID
		m.setStatus(statusInfo, fmt.Sprintf("delete quote %d? (y/n)", m.selectedID))
	case m.focus == focusList && key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case m.focus == focusList && key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	default:
		return m.updateInput(msg)
	}
	return nil
}

func (m *Model) confirmDelete(confirmed bool) {
	id := m.pendingDelete
	m.pendingDelete = 0
	if !confirmed {
		m.setStatus(statusInfo, "delete cancelled")
		return
	}
	m.intents.OnDeleteRequested(id)
}

func (m *Model) moveSelection(delta int) {
	if len(m.quotes) == 0 {
		return
	}
	next := m.cursor + delta
	if m.cursor < 0 {
		next = 0
	}
	next = max(0, min(next, len(m.quotes)-1))
	m.selectIndex(next)
}

func (m *Model) selectIndex(i int) {
	q := m.quotes[i]
	m.cursor = i
	m.selectedID = q.ID
	m.text.SetValue(q.Text)
	m.author.SetValue(q.Author)
	m.tags.SetValue(quote.FormatTags(q.Tags))
	m.setStatus(statusInfo, fmt.Sprintf("editing ID %d", q.ID))
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.text.Blur()
	m.author.Blur()
	m.tags.Blur()
	switch f {
	case focusText:
		return m.text.Focus()
	case focusAuthor:
		return m.author.Focus()
	case focusTags:
		return m.tags.Focus()
	}
	return nil
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusText:
		m.text, cmd = m.text.Update(msg)
	case focusAuthor:
		m.author, cmd = m.author.Update(msg)
	case focusTags:
		m.tags, cmd = m.tags.Update(msg)
	}
	return cmd
}

func (m *Model) formInput() quote.Input {
	return quote.Input{
		Text:   m.text.Value(),
		Author: m.author.Value(),
		Tags:   quote.ParseTags(m.tags.Value()),
	}
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.isBusy() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) isBusy() bool {
	for _, busy := range m.busy {
		if busy {
			return true
		}
	}
	return false
}

func (m *Model) busyActions() []string {
	var names []string
	for action, busy := range m.busy {
		if busy {
			names = append(names, action.String())
		}
	}
	sort.Strings(names)
	return names
}

func (m *Model) setStatus(kind statusKind, msg string) {
	m.statusKind = kind
	m.status = msg
}

// RenderList replaces the list and clears the selection.
func (m *Model) RenderList(quotes []quote.Quote) {
	m.quotes = quotes
	m.cursor = -1
	m.selectedID = 0
}

// RenderError shows msg as an error.
func (m *Model) RenderError(msg string) {
	m.setStatus(statusError, msg)
}

// RenderFormCleared empties the edit form and drops the selection.
func (m *Model) RenderFormCleared() {
	m.text.Reset()
	m.author.Reset()
	m.tags.Reset()
	m.cursor = -1
	m.selectedID = 0
}

// RenderNotice shows msg as a confirmation.
func (m *Model) RenderNotice(msg string) {
	m.setStatus(statusSuccess, msg)
}

// SetBusy toggles the busy indicator for action.
func (m *Model) SetBusy(action coordinator.Action, busy bool) {
	m.busy[action] = busy
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("quotedesk"))
	b.WriteString("\n\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(m.formView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) listView() string {
	if len(m.quotes) == 0 {
		return m.styles.muted.Render("no quotes. press r to refresh.") + "\n"
	}
	limit := 72
	if m.width > 12 {
		limit = m.width - 4
	}
	var b strings.Builder
	for i, q := range m.quotes {
		line := fmt.Sprintf("%4d  %s", q.ID, rowSummary(q))
		line = truncate(line, limit)
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render("›" + line))
		} else {
			b.WriteString(m.styles.row.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) formView() string {
	label := func(f focusArea, name string) string {
		if m.focus == f {
			return m.styles.focusLabel.Render(name)
		}
		return m.styles.label.Render(name)
	}
	rows := []string{
		label(focusText, "Text") + "\n" + m.text.View(),
		label(focusAuthor, "Author") + m.author.View(),
		label(focusTags, "Tags") + m.tags.View(),
	}
	return m.styles.form.Render(strings.Join(rows, "\n"))
}

func (m *Model) statusView() string {
	var parts []string
	if m.isBusy() {
		parts = append(parts, m.spinner.View()+m.styles.info.Render(strings.Join(m.busyActions(), ", ")+"…"))
	}
	if m.status != "" {
		switch m.statusKind {
		case statusError:
			parts = append(parts, m.styles.failure.Render(m.status))
		case statusSuccess:
			parts = append(parts, m.styles.success.Render(m.status))
		default:
			parts = append(parts, m.styles.info.Render(m.status))
		}
	}
	return strings.Join(parts, "  ")
}

func rowSummary(q quote.Quote) string {
	text := strings.Join(strings.Fields(q.Text), " ")
	s := text
	if q.Author != "" {
		s += " - " + q.Author
	}
	if len(q.Tags) > 0 {
		s += " [" + quote.FormatTags(q.Tags) + "]"
	}
	return s
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 1 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// isTextKey reports whether msg would type into a focused input.
func isTextKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
}
