package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/quotedesk/internal/coordinator"
	"github.com/rpggio/quotedesk/internal/domain/quote"
)

type intentCall struct {
	name string
	id   int64
	in   quote.Input
}

type recordingIntents struct {
	calls []intentCall
}

func (r *recordingIntents) OnRefreshRequested() {
	r.calls = append(r.calls, intentCall{name: "refresh"})
}

func (r *recordingIntents) OnAddRequested(in quote.Input) {
	r.calls = append(r.calls, intentCall{name: "add", in: in})
}

func (r *recordingIntents) OnUpdateRequested(id int64, in quote.Input) {
	r.calls = append(r.calls, intentCall{name: "update", id: id, in: in})
}

func (r *recordingIntents) OnDeleteRequested(id int64) {
	r.calls = append(r.calls, intentCall{name: "delete", id: id})
}

func newTestModel() (*Model, *recordingIntents) {
	m := New()
	intents := &recordingIntents{}
	m.Bind(intents)
	return m, intents
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		press(m, string(r))
	}
}

var sample = []quote.Quote{
	{ID: 1, Text: "Be yourself.", Author: "Oscar Wilde", Tags: []string{"life"}},
	{ID: 2, Text: "Stay hungry.", Author: "Steve Jobs", Tags: []string{}},
}

func TestInit_RequestsRefresh(t *testing.T) {
	m, intents := newTestModel()

	cmd := m.Init()
	require.NotNil(t, cmd)
	m.Update(cmd())

	require.Len(t, intents.calls, 1)
	assert.Equal(t, "refresh", intents.calls[0].name)
}

func TestRenderList_ClearsSelection(t *testing.T) {
	m, _ := newTestModel()
	m.RenderList(sample)
	press(m, "down")
	require.Equal(t, int64(1), m.selectedID)

	m.RenderList(sample)

	assert.Zero(t, m.selectedID)
	assert.Equal(t, -1, m.cursor)
	assert.Contains(t, m.View(), "Be yourself.")
}

func TestSelection_PopulatesForm(t *testing.T) {
	m, _ := newTestModel()
	m.RenderList(sample)

	press(m, "down")
	assert.Equal(t, "Be yourself.", m.text.Value())
	assert.Equal(t, "Oscar Wilde", m.author.Value())
	assert.Equal(t, "life", m.tags.Value())
	assert.Equal(t, "editing ID 1", m.status)

	press(m, "down", "down")
	assert.Equal(t, int64(2), m.selectedID)
	assert.Equal(t, "", m.tags.Value())

	press(m, "up")
	assert.Equal(t, int64(1), m.selectedID)
}

func TestSelection_EmptyList(t *testing.T) {
	m, _ := newTestModel()
	press(m, "down")
	assert.Zero(t, m.selectedID)
	assert.Contains(t, m.View(), "no quotes")
}

func TestAdd_SendsFormInput(t *testing.T) {
	m, intents := newTestModel()

	press(m, "tab")
	typeText(m, "Simplicity is prerequisite")
	press(m, "tab")
	typeText(m, "Dijkstra")
	press(m, "tab")
	typeText(m, " cs, , design ")
	press(m, "ctrl+n")

	require.Len(t, intents.calls, 1)
	call := intents.calls[0]
	assert.Equal(t, "add", call.name)
	assert.Equal(t, "Simplicity is prerequisite", call.in.Text)
	assert.Equal(t, "Dijkstra", call.in.Author)
	assert.Equal(t, []string{"cs", "design"}, call.in.Tags)
}

func TestFormFocus_LettersAreTyped(t *testing.T) {
	m, intents := newTestModel()

	press(m, "tab")
	typeText(m, "rqad")

	assert.Empty(t, intents.calls)
	assert.Equal(t, "rqad", m.text.Value())
}

func TestUpdate_UsesSelection(t *testing.T) {
	m, intents := newTestModel()
	m.RenderList(sample)
	press(m, "down", "u")

	require.Len(t, intents.calls, 1)
	assert.Equal(t, "update", intents.calls[0].name)
	assert.Equal(t, int64(1), intents.calls[0].id)
	assert.Equal(t, "Be yourself.", intents.calls[0].in.Text)
}

func TestUpdate_WithoutSelectionStillReachesIntents(t *testing.T) {
	m, intents := newTestModel()
	press(m, "u")

	require.Len(t, intents.calls, 1)
	assert.Zero(t, intents.calls[0].id)
}

func TestDelete_AsksForConfirmation(t *testing.T) {
	m, intents := newTestModel()
	m.RenderList(sample)
	press(m, "down", "down", "d")

	assert.Empty(t, intents.calls)
	assert.Equal(t, "delete quote 2? (y/n)", m.status)

	press(m, "y")
	require.Len(t, intents.calls, 1)
	assert.Equal(t, intentCall{name: "delete", id: 2}, intents.calls[0])
}

func TestDelete_Cancelled(t *testing.T) {
	m, intents := newTestModel()
	m.RenderList(sample)
	press(m, "down", "d", "n")

	assert.Empty(t, intents.calls)
	assert.Equal(t, "delete cancelled", m.status)
	assert.Equal(t, int64(1), m.selectedID)
}

func TestDelete_WithoutSelection(t *testing.T) {
	m, intents := newTestModel()
	press(m, "d")

	require.Len(t, intents.calls, 1)
	assert.Equal(t, intentCall{name: "delete", id: 0}, intents.calls[0])
}

func TestEsc_ClearsForm(t *testing.T) {
	m, _ := newTestModel()
	m.RenderList(sample)
	press(m, "down", "tab", "esc")

	assert.Empty(t, m.text.Value())
	assert.Empty(t, m.author.Value())
	assert.Zero(t, m.selectedID)
	assert.Equal(t, focusList, m.focus)
}

func TestFocus_Cycles(t *testing.T) {
	m, _ := newTestModel()

	press(m, "tab", "tab", "tab")
	assert.Equal(t, focusTags, m.focus)
	press(m, "tab")
	assert.Equal(t, focusList, m.focus)
	press(m, "shift+tab")
	assert.Equal(t, focusTags, m.focus)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel()

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	cmd = press(m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelp_Toggles(t *testing.T) {
	m, _ := newTestModel()
	press(m, "?")
	assert.True(t, m.help.ShowAll)
	press(m, "?")
	assert.False(t, m.help.ShowAll)
}

func TestRenderCallbacks_StatusLine(t *testing.T) {
	m, _ := newTestModel()

	m.RenderError("add failed: quote not found")
	assert.Equal(t, statusError, m.statusKind)
	assert.Contains(t, m.View(), "add failed: quote not found")

	m.RenderNotice("added quote 3")
	assert.Equal(t, statusSuccess, m.statusKind)
	assert.Contains(t, m.View(), "added quote 3")
}

func TestBusy_StartsSpinnerOnce(t *testing.T) {
	m, _ := newTestModel()

	_, cmd := m.Update(applyMsg{fn: func() { m.SetBusy(coordinator.ActionRefresh, true) }})
	require.NotNil(t, cmd)
	assert.True(t, m.spinning)
	assert.Contains(t, m.View(), "refresh")

	_, cmd = m.Update(applyMsg{fn: func() { m.SetBusy(coordinator.ActionAdd, true) }})
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"add", "refresh"}, m.busyActions())

	m.SetBusy(coordinator.ActionRefresh, false)
	m.SetBusy(coordinator.ActionAdd, false)
	assert.False(t, m.isBusy())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}

// memoryRemote is a Remote backed by a slice.
type memoryRemote struct {
	quotes []quote.Quote
}

func (r *memoryRemote) ListQuotes(context.Context) ([]quote.Quote, error) {
	return append([]quote.Quote{}, r.quotes...), nil
}

func (r *memoryRemote) CreateQuote(_ context.Context, in quote.Input) (*quote.Quote, error) {
	q := quote.Quote{ID: int64(len(r.quotes) + 1), Text: in.Text, Author: in.Author, Tags: in.Tags}
	r.quotes = append(r.quotes, q)
	return &q, nil
}

func (r *memoryRemote) UpdateQuote(context.Context, int64, quote.Input) (*quote.Quote, error) {
	return nil, nil
}

func (r *memoryRemote) DeleteQuote(context.Context, int64) error {
	return nil
}

func TestModel_WithCoordinator(t *testing.T) {
	posted := make(chan func(), 8)
	poster := coordinator.PosterFunc(func(fn func()) { posted <- fn })

	m := New()
	exec := coordinator.NewExecutor(context.Background(), poster, nil)
	m.Bind(coordinator.New(&memoryRemote{}, m, exec))
	defer exec.Wait()

	next := func() {
		t.Helper()
		select {
		case fn := <-posted:
			m.Update(applyMsg{fn: fn})
		case <-time.After(2 * time.Second):
			t.Fatal("no completion posted")
		}
	}

	press(m, "tab")
	typeText(m, "Hello")
	press(m, "ctrl+n")
	assert.Contains(t, m.busyActions(), "add")

	next()
	assert.Equal(t, "added quote 1", m.status)
	assert.Empty(t, m.text.Value())

	next()
	require.Len(t, m.quotes, 1)
	assert.Equal(t, "Hello", m.quotes[0].Text)
	assert.Equal(t, "loaded 1 quotes", m.status)
	assert.False(t, m.isBusy())

	press(m, "esc")
	press(m, "a")
	assert.Equal(t, "add: text must not be empty", m.status)
	assert.Equal(t, statusError, m.statusKind)
}
