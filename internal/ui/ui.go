package ui

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"wurdlurnur/internal/config"
	"wurdlurnur/internal/media"
	"wurdlurnur/internal/model"
	"wurdlurnur/internal/progress"
	"wurdlurnur/internal/session"
	"wurdlurnur/internal/text/stats"
)

// Media plays sounds and opens pictures for the card screen.
type Media interface {
	Pronounce(word string) error
	PlaySound(name string)
	OpenImage(path string) error
}

type Params struct {
	Table    *progress.Table
	Store    progress.Store
	Pool     []int
	Strategy session.Strategy
	Slider   config.Slider
	// Preselect starts straight on the card screen with that many words.
	Preselect int
	Session   session.Options
	Media     Media
	Logger    *log.Logger
	Rand      *rand.Rand
}

type screen int

const (
	screenSlider screen = iota
	screenCard
)

const (
	historyShown  = 10
	mostFailedTop = 5
)

type UiModel struct {
	screen        screen
	width, height int
	layout        Layout
	renderer      *Renderer
	keys          keyMap
	help          help.Model
	spinner       spinner.Model
	bar           bar.Model

	params      Params
	sliderValue int
	sess        *session.Session

	modals      []modal
	nextModalID int

	showStats  bool
	mostFailed []stats.WordCount
	passRate   float64

	status     string
	copiedWord string

	logger  *log.Logger
	flushed bool
	err     error
}

type mediaErrMsg struct{ err error }

// InitialModel builds the program model. With Params.Preselect set the
// session starts right away and selection errors are returned here.
func InitialModel(p Params) (UiModel, error) {
	if p.Logger == nil {
		p.Logger = log.Default()
	}
	if p.Session.Logger == nil {
		p.Session.Logger = p.Logger
	}
	m := UiModel{
		screen:      screenSlider,
		layout:      NewLayout(80, 24),
		renderer:    NewRenderer(),
		keys:        defaultKeyMap(),
		help:        help.New(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:         bar.New(bar.WithDefaultGradient(), bar.WithoutPercentage()),
		params:      p,
		sliderValue: p.Slider.Start,
		logger:      p.Logger,
	}
	if p.Preselect > 0 {
		if err := m.startSession(p.Preselect); err != nil {
			return m, err
		}
	}
	return m, nil
}

func (m UiModel) Init() tea.Cmd {
	if m.screen == screenCard {
		return m.play(media.SoundNewSession)
	}
	return nil
}

// Session is nil until the slider screen is left.
func (m UiModel) Session() *session.Session { return m.sess }

// Flushed reports whether the current card was written on the way out.
func (m UiModel) Flushed() bool { return m.flushed }

// Err is the error that stopped the program, if any.
func (m UiModel) Err() error { return m.err }

// Flush writes the current card and saves the table.
func (m UiModel) Flush() error {
	if m.sess == nil {
		return nil
	}
	return m.sess.Flush()
}

func (m *UiModel) startSession(n int) error {
	rows, err := session.Select(m.params.Table, m.params.Pool, n, m.params.Strategy, m.params.Rand)
	if err != nil {
		return err
	}
	s, err := session.New(m.params.Table, m.params.Store, rows, m.params.Session)
	if err != nil {
		return err
	}
	m.sess = s
	m.screen = screenCard
	m.logger.Info("session started", "session", s.Index, "words", s.Len(), "strategy", m.params.Strategy)
	return nil
}

func (m UiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = NewLayout(msg.Width, msg.Height)
		m.bar.Width = m.layout.SliderWidth
		m.help.Width = m.layout.CardWidth
		return m, nil
	case modalExpiredMsg:
		if md, ok := m.activeModal(); ok && md.id == msg.id {
			return m.popModal()
		}
		return m, nil
	case spinner.TickMsg:
		if md, ok := m.activeModal(); ok && md.kind == modalUpdating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case mediaErrMsg:
		m.status = msg.err.Error()
		m.logger.Warn("media", "err", msg.err)
		return m, nil
	case tea.KeyMsg:
		if m.screen == screenSlider {
			return m.updateSlider(msg)
		}
		return m.updateCard(msg)
	}
	return m, nil
}

func (m UiModel) updateSlider(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.params.Slider
	step := max((s.Max-s.Min)/10, 1)
	switch msg.String() {
	case "ctrl+c", "q", "w", "esc":
		return m, tea.Quit
	case "left", "h":
		m.sliderValue = max(m.sliderValue-1, s.Min)
	case "right", "l":
		m.sliderValue = min(m.sliderValue+1, s.Max)
	case "down", "j":
		m.sliderValue = max(m.sliderValue-step, s.Min)
	case "up", "k":
		m.sliderValue = min(m.sliderValue+step, s.Max)
	case "home":
		m.sliderValue = s.Min
	case "end":
		m.sliderValue = s.Max
	case "enter", " ":
		if err := m.startSession(m.sliderValue); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.play(media.SoundNewSession)
	}
	return m, nil
}

func (m UiModel) updateCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}
	if _, ok := m.activeModal(); ok {
		return m.popModal()
	}
	if m.showStats {
		m.showStats = false
		return m, nil
	}
	m.status = ""

	c := m.sess.Current()
	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m.setResult(c.NextToggle())
	case key.Matches(msg, m.keys.Pass):
		return m.setResult(model.Pass)
	case key.Matches(msg, m.keys.Skip):
		return m.setResult(model.Skip)
	case key.Matches(msg, m.keys.Fail):
		return m.setResult(model.Fail)
	case key.Matches(msg, m.keys.Context):
		c.ToggleContext()
		return m, m.play(media.SoundAppear)
	case key.Matches(msg, m.keys.Definition):
		c.ToggleDefinitionAndImage()
		return m, m.play(media.SoundAppear)
	case key.Matches(msg, m.keys.Image):
		c.ToggleImage()
		return m, m.play(media.SoundAppear)
	case key.Matches(msg, m.keys.Pronounce):
		return m, m.pronounce(c.Word)
	case key.Matches(msg, m.keys.Stats):
		m.openStats()
		return m, m.play(media.SoundPopup)
	case key.Matches(msg, m.keys.Prev):
		return m.navigate(session.Left)
	case key.Matches(msg, m.keys.Next):
		return m.navigate(session.Right)
	case key.Matches(msg, m.keys.Copy):
		if err := clipboard.WriteAll(c.DisplayWord()); err != nil {
			m.logger.Warn("copying word", "word", c.Word, "err", err)
			m.status = "could not copy to clipboard"
			return m, nil
		}
		m.copiedWord = c.DisplayWord()
		m.status = fmt.Sprintf("copied %q to clipboard", m.copiedWord)
	case key.Matches(msg, m.keys.Open):
		if c.Image == "" {
			m.status = "no image for this word"
			return m, nil
		}
		return m, m.openImage(c.Image)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m UiModel) setResult(r model.Result) (tea.Model, tea.Cmd) {
	if err := m.sess.SetResult(r); err != nil {
		m.logger.Error("setting result", "result", r, "err", err)
		return m, nil
	}
	return m, m.play(media.SoundToggle)
}

func (m UiModel) navigate(dir session.Direction) (tea.Model, tea.Cmd) {
	if !m.sess.CanMove(dir) {
		return m, nil
	}
	d, err := m.sess.Navigate(dir)
	if err != nil {
		m.logger.Error("saving progress", "word", d.Card.Word, "err", err)
		m.status = "could not save progress, see log"
		return m, nil
	}
	m.logger.Debug("card left", "word", d.Card.Word, "result", d.Card.Result, "autoskip", d.AutoSkipped)

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if d.LearnedPopup {
		m, cmd = m.pushModal(modal{kind: modalLearned, word: d.Card.DisplayWord(), ttl: learnedDuration})
		cmds = append(cmds, cmd)
	}
	m, cmd = m.pushModal(modal{kind: modalUpdating, ttl: updatingDuration})
	cmds = append(cmds, cmd)
	cmds = append(cmds, m.play(media.SoundCardFlip))
	return m, tea.Batch(cmds...)
}

func (m UiModel) quit() (tea.Model, tea.Cmd) {
	if err := m.Flush(); err != nil {
		m.logger.Error("saving progress on quit", "err", err)
		m.err = err
	} else {
		m.flushed = true
	}
	return m, tea.Sequence(m.play(media.SoundQuit), tea.Quit)
}

func (m *UiModel) openStats() {
	table := m.sess.Table()
	records := make([]model.WordRecord, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		records = append(records, table.Record(i))
	}
	m.mostFailed = stats.MostFailed(records, mostFailedTop)
	m.passRate = stats.PassRate(records)
	m.showStats = true
}

func (m UiModel) play(name string) tea.Cmd {
	md := m.params.Media
	if md == nil {
		return nil
	}
	return func() tea.Msg {
		md.PlaySound(name)
		return nil
	}
}

func (m UiModel) pronounce(word string) tea.Cmd {
	md := m.params.Media
	if md == nil {
		return nil
	}
	return func() tea.Msg {
		if err := md.Pronounce(word); err != nil {
			if errors.Is(err, media.ErrNotFound) {
				return mediaErrMsg{fmt.Errorf("no pronunciation for %q", word)}
			}
			return mediaErrMsg{err}
		}
		return nil
	}
}

func (m UiModel) openImage(path string) tea.Cmd {
	md := m.params.Media
	if md == nil {
		return nil
	}
	return func() tea.Msg {
		if err := md.OpenImage(path); err != nil {
			return mediaErrMsg{err}
		}
		return nil
	}
}
