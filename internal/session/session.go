// Package session runs one review pass over a selected set of cards and
// writes every finalized result back to the word table.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"wurdlurnur/internal/card"
	"wurdlurnur/internal/model"
	"wurdlurnur/internal/progress"
)

var (
	ErrInvalidBounds    = errors.New("session: invalid number of words")
	ErrInvalidDirection = errors.New("session: invalid direction")
)

type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// Tally counts the results registered in the session. Learned counts the
// passes that completed a word.
type Tally struct {
	Pass    int
	Fail    int
	Skip    int
	Learned int
}

// Registered is the number of cards holding a result.
func (t Tally) Registered() int {
	return t.Pass + t.Fail + t.Skip
}

// ImageFinder locates the picture of a word.
type ImageFinder interface {
	Image(word string) (string, bool)
}

type Options struct {
	// Now is the session clock; time.Now when nil.
	Now    func() time.Time
	Card   card.Options
	Images ImageFinder
	Logger *log.Logger
}

type Session struct {
	Index   int
	Created time.Time
	// Column is the table column holding this session's results.
	Column string

	cards   []*card.Card
	current int
	tally   Tally
	table   *progress.Table
	store   progress.Store
}

// Departure describes what happened to the card that was left.
type Departure struct {
	Card         *card.Card
	Moved        bool
	AutoSkipped  bool
	LearnedPopup bool
}

// Summary is what the stats overlay shows.
type Summary struct {
	TotalInTable int
	SessionCards int
	Tally
}

// New creates session k+1 over the given table rows, in order, and adds its
// empty result column to the table.
func New(table *progress.Table, store progress.Store, rows []int, opts Options) (*Session, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no words selected", ErrInvalidBounds)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	created := now().Truncate(time.Minute)
	index := table.NextSessionIndex()
	s := &Session{
		Index:   index,
		Created: created,
		Column:  progress.SessionColumnName(index, created),
		table:   table,
		store:   store,
	}
	for _, row := range rows {
		if row < 0 || row >= table.Len() {
			return nil, fmt.Errorf("%w: row %d outside table", ErrInvalidBounds, row)
		}
		rec := table.Record(row)
		cardOpts := opts.Card
		if opts.Images != nil {
			if path, ok := opts.Images.Image(rec.Word); ok {
				cardOpts.Image = path
			}
		}
		c, known := card.New(rec, cardOpts)
		if !known {
			logger.Warn("unknown part of speech", "word", rec.Word, "pos", rec.PartOfSpeech)
		}
		s.cards = append(s.cards, c)
	}
	table.AddColumn(s.Column)
	return s, nil
}

func (s *Session) Len() int { return len(s.cards) }

func (s *Session) Position() int { return s.current }

func (s *Session) Current() *card.Card { return s.cards[s.current] }

func (s *Session) Cards() []*card.Card { return s.cards }

func (s *Session) Tally() Tally { return s.tally }

func (s *Session) Table() *progress.Table { return s.table }

func (s *Session) Summary() Summary {
	return Summary{
		TotalInTable: s.table.Len(),
		SessionCards: len(s.cards),
		Tally:        s.tally,
	}
}

// CanMove reports whether there is a card in direction dir.
func (s *Session) CanMove(dir Direction) bool {
	next := s.current + int(dir)
	return (dir == Left || dir == Right) && next >= 0 && next < len(s.cards)
}

// SetResult registers r on the current card. Choosing the result the card
// already holds does nothing.
func (s *Session) SetResult(r model.Result) error {
	if !r.IsValid() || r == model.Unset {
		return fmt.Errorf("%w: %v", model.ErrInvalidResult, r)
	}
	c := s.Current()
	if c.Result == r {
		return nil
	}
	s.retally(c, r)
	return c.SetResult(r)
}

// Toggle moves the current card to its next result in the toggle cycle.
func (s *Session) Toggle() error {
	return s.SetResult(s.Current().NextToggle())
}

// Navigate leaves the current card for its neighbour in direction dir. The
// card left behind is finalized first: a card without a result becomes a
// skip, and its row is written and the table saved before moving. Moving
// past either end does nothing.
func (s *Session) Navigate(dir Direction) (Departure, error) {
	if dir != Left && dir != Right {
		return Departure{}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	if !s.CanMove(dir) {
		return Departure{Card: s.Current()}, nil
	}
	d, err := s.finalize()
	if err != nil {
		return d, err
	}
	s.current += int(dir)
	d.Moved = true
	return d, nil
}

// Flush writes the current card's row and saves the table.
func (s *Session) Flush() error {
	return s.persist(s.Current())
}

func (s *Session) finalize() (Departure, error) {
	c := s.Current()
	d := Departure{Card: c}
	if c.Learned && !c.PopupShown {
		c.PopupShown = true
		d.LearnedPopup = true
	}
	if c.Result == model.Unset {
		s.retally(c, model.Skip)
		if err := c.SetResult(model.Skip); err != nil {
			return d, err
		}
		d.AutoSkipped = true
	}
	return d, s.persist(c)
}

// retally moves one count from the card's current result to to.
func (s *Session) retally(c *card.Card, to model.Result) {
	switch c.Result {
	case model.Skip:
		s.tally.Skip--
	case model.Pass:
		s.tally.Pass--
		if c.Learned {
			s.tally.Learned--
		}
	case model.Fail:
		s.tally.Fail--
	}

	switch to {
	case model.Skip:
		s.tally.Skip++
	case model.Pass:
		s.tally.Pass++
		if c.CompletesLearning() {
			s.tally.Learned++
		}
	case model.Fail:
		s.tally.Fail++
	}
}

func (s *Session) persist(c *card.Card) error {
	learned := ""
	if c.Learned {
		learned = progress.LearnedSentinel
	}
	if err := s.table.Set(c.Word, progress.ColLearned, learned); err != nil {
		return err
	}
	if err := s.table.Set(c.Word, s.Column, c.Result.Cell()); err != nil {
		return err
	}
	if err := s.store.Save(s.table); err != nil {
		return fmt.Errorf("session: saving table: %w", err)
	}
	return nil
}
