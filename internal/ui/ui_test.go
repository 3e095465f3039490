package ui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wurdlurnur/internal/config"
	"wurdlurnur/internal/model"
	"wurdlurnur/internal/progress"
	"wurdlurnur/internal/session"
	"wurdlurnur/internal/text"
)

type memStore struct{ saves int }

func (s *memStore) Load() (*progress.Table, error) { return nil, nil }
func (s *memStore) Save(*progress.Table) error     { s.saves++; return nil }

type fakeMedia struct {
	sounds     []string
	pronounced []string
}

func (f *fakeMedia) Pronounce(word string) error {
	f.pronounced = append(f.pronounced, word)
	return nil
}
func (f *fakeMedia) PlaySound(name string)  { f.sounds = append(f.sounds, name) }
func (f *fakeMedia) OpenImage(string) error { return nil }

func testTable(t *testing.T) *progress.Table {
	t.Helper()
	tbl, err := progress.NewTable(
		[]string{"Word", "Part of Speech", "Context", "Definition", "Word Declensions", "Lurnt",
			"Session #1 - 01.01.2024 10:00", "Session #2 - 02.01.2024 10:00",
			"Session #3 - 03.01.2024 10:00", "Session #4 - 04.01.2024 10:00"},
		[][]string{
			{"demur", "v.", "She demurred at first.|Do not demur.", "[formal] raise objections", "demurred", "", "pass", "pass", "pass", "pass"},
			{"abjure", "v.", "He abjured his faith.", "renounce", "abjured", "", "fail", "fail", "", ""},
			{"zealot", "n.", "A zealot spoke.", "fanatic", "", "", "", "", "", ""},
		})
	require.NoError(t, err)
	return tbl
}

func newTestModel(t *testing.T, preselect int) (UiModel, *memStore, *fakeMedia) {
	t.Helper()
	tbl := testTable(t)
	st := &memStore{}
	fm := &fakeMedia{}
	m, err := InitialModel(Params{
		Table:     tbl,
		Store:     st,
		Pool:      tbl.Unlearned(),
		Strategy:  session.Chronological,
		Slider:    config.Slider{Min: 1, Max: 3, Start: 3},
		Preselect: preselect,
		Media:     fm,
		Logger:    log.New(io.Discard),
	})
	require.NoError(t, err)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(UiModel), st, fm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m UiModel, msg tea.Msg) (UiModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(UiModel), cmd
}

func TestSliderStartsSession(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	assert.Nil(t, m.Session())
	assert.Contains(t, m.View(), "How many words")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.sliderValue)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.sliderValue)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Session())
	assert.Equal(t, 2, m.Session().Len())
	assert.Equal(t, "demur", m.Session().Current().Word)
}

func TestPreselectOutOfBounds(t *testing.T) {
	tbl := testTable(t)
	_, err := InitialModel(Params{
		Table:     tbl,
		Store:     &memStore{},
		Pool:      tbl.Unlearned(),
		Preselect: 9,
		Logger:    log.New(io.Discard),
	})
	assert.ErrorIs(t, err, session.ErrInvalidBounds)
}

func TestResultKeys(t *testing.T) {
	m, _, _ := newTestModel(t, 3)
	c := m.Session().Current()

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, model.Fail, c.Result)
	m, _ = press(t, m, runes("1"))
	assert.Equal(t, model.Pass, c.Result)
	assert.True(t, c.Learned)
	m, _ = press(t, m, runes("2"))
	assert.Equal(t, model.Skip, c.Result)
	_, _ = press(t, m, runes("3"))
	assert.Equal(t, model.Fail, c.Result)
	assert.Equal(t, session.Tally{Fail: 1}, m.Session().Tally())
}

func TestNavigateQueuesModals(t *testing.T) {
	m, st, _ := newTestModel(t, 3)
	m, _ = press(t, m, runes("1"))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.Session().Position())
	assert.Equal(t, 1, st.saves)
	require.Len(t, m.modals, 2)
	assert.Equal(t, modalLearned, m.modals[0].kind)
	assert.Equal(t, modalUpdating, m.modals[1].kind)
	assert.Contains(t, m.View(), "Lürnt")
	assert.NotContains(t, m.View(), "Updating database")

	// a stale deadline is ignored
	m, _ = press(t, m, modalExpiredMsg{id: m.modals[1].id})
	assert.Len(t, m.modals, 2)

	m, _ = press(t, m, modalExpiredMsg{id: m.modals[0].id})
	require.Len(t, m.modals, 1)
	assert.Equal(t, modalUpdating, m.modals[0].kind)
	assert.Contains(t, m.View(), "Updating database")

	// any key dismisses early and does nothing else
	m, _ = press(t, m, runes("3"))
	assert.Empty(t, m.modals)
	assert.Equal(t, model.Unset, m.Session().Current().Result)
}

func TestNavigateAtEdgeDoesNothing(t *testing.T) {
	m, st, _ := newTestModel(t, 3)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd)
	assert.Empty(t, m.modals)
	assert.Zero(t, st.saves)
	assert.Equal(t, model.Unset, m.Session().Current().Result)
}

func TestQuitFlushes(t *testing.T) {
	m, st, _ := newTestModel(t, 3)
	m, _ = press(t, m, runes("3"))
	m, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.Flushed())
	assert.Equal(t, 1, st.saves)
	assert.Equal(t, "fail", m.Session().Table().Get(0, m.Session().Column))
}

func TestQuitDuringModalStillFlushes(t *testing.T) {
	m, st, _ := newTestModel(t, 3)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotEmpty(t, m.modals)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.Flushed())
	assert.Equal(t, 2, st.saves)
}

func TestToggles(t *testing.T) {
	m, _, _ := newTestModel(t, 3)
	c := m.Session().Current()

	m, _ = press(t, m, runes("d"))
	assert.True(t, c.ShowDefinition)
	assert.True(t, c.ShowImage)
	assert.Contains(t, m.View(), "raise objections")

	m, _ = press(t, m, runes("c"))
	assert.False(t, c.ShowContext)
	_, _ = press(t, m, runes("i"))
	assert.False(t, c.ShowImage)
}

func TestStatsOverlay(t *testing.T) {
	m, _, _ := newTestModel(t, 3)
	m, _ = press(t, m, runes("s"))
	require.True(t, m.showStats)
	view := m.View()
	assert.Contains(t, view, "Words in database")
	assert.Contains(t, view, "abjure (2)")

	m, _ = press(t, m, runes("1"))
	assert.False(t, m.showStats)
	assert.Equal(t, model.Unset, m.Session().Current().Result)
}

func TestPronounceUsesMedia(t *testing.T) {
	m, _, fm := newTestModel(t, 3)
	_, cmd := press(t, m, runes("p"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, []string{"demur"}, fm.pronounced)
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(120, 40)
	assert.Equal(t, maxCardWidth, l.CardWidth)
	assert.Equal(t, l.CardWidth-frameInset, l.TextWidth)
	assert.Equal(t, NewLayout(120, 40), l)

	small := NewLayout(10, 5)
	assert.Equal(t, minCardWidth, small.CardWidth)
	assert.GreaterOrEqual(t, small.ContextHeight, 2)
}

func TestRendererCaches(t *testing.T) {
	r := NewRenderer()
	ts := TextStyle{Size: text.SizeMedium, Style: text.Highlight, Color: model.PartOfSpeech{}.Color}
	first := r.Render("demur", ts)
	second := r.Render("demur", ts)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, r.Len())

	r.Render("demur", TextStyle{Size: text.SizeMedium})
	assert.Equal(t, 2, r.Len())
}

func TestRendererLinesKeepsRows(t *testing.T) {
	r := NewRenderer()
	out := r.Lines([]text.Line{
		{Index: 0, Spans: []text.Span{{Text: "1. first", Style: text.Plain}}},
		{Index: 1, Spans: []text.Span{{Text: "2. second", Style: text.Plain}}},
	}, text.SizeMedium, "")
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "second")
}
