// Package card holds the per-word review state shown during a session.
package card

import (
	"fmt"
	"sort"
	"strings"

	"wurdlurnur/internal/model"
	"wurdlurnur/internal/text"
)

const (
	DefaultMaxContextChars    = 140
	DefaultMaxDefinitionChars = 300

	// LearnedAfterPasses is the number of earlier passes after which one
	// more pass marks a word learned.
	LearnedAfterPasses = 4

	spellingSeparator = " - "
)

type Options struct {
	MaxContextChars    int
	MaxDefinitionChars int
	// Image is the path of the word's picture, empty when there is none.
	Image string
}

type Card struct {
	Word         string
	Variants     []string
	PartOfSpeech model.PartOfSpeech
	Context      string
	Definition   string
	History      []model.HistoryEntry
	PassCount    int
	Image        string

	Result     model.Result
	Learned    bool
	PopupShown bool

	ShowContext    bool
	ShowDefinition bool
	ShowImage      bool
}

// New builds a card from a table record. Unknown parts of speech fall back
// to "unspecified"; knownPOS reports whether the abbreviation was recognised.
func New(rec model.WordRecord, opts Options) (c *Card, knownPOS bool) {
	if opts.MaxContextChars <= 0 {
		opts.MaxContextChars = DefaultMaxContextChars
	}
	if opts.MaxDefinitionChars <= 0 {
		opts.MaxDefinitionChars = DefaultMaxDefinitionChars
	}
	pos, knownPOS := model.LookupPartOfSpeech(rec.PartOfSpeech)

	c = &Card{
		Word:         rec.Word,
		Variants:     Variants(rec.Word, rec.Declensions),
		PartOfSpeech: pos,
		Context:      text.Truncate(rec.Context, opts.MaxContextChars),
		Definition:   text.Truncate(rec.Definition, opts.MaxDefinitionChars),
		History:      append([]model.HistoryEntry(nil), rec.History...),
		Image:        opts.Image,
		ShowContext:  true,
	}
	for _, h := range c.History {
		if h.Result == model.Pass {
			c.PassCount++
		}
	}
	return c, knownPOS
}

// Variants lists every form of word to highlight in a context: each
// spelling of a " - " separated word and each declension, all with their
// capitalized forms. The result is ordered longest first.
func Variants(word string, declensions []string) []string {
	var variants []string
	add := func(w string) {
		w = strings.TrimSpace(w)
		if w == "" {
			return
		}
		for _, v := range []string{w, text.Capitalize(w)} {
			if !text.Contains(variants, v) {
				variants = append(variants, v)
			}
		}
	}
	for _, spelling := range strings.Split(word, spellingSeparator) {
		add(spelling)
	}
	for _, d := range declensions {
		add(d)
	}
	sort.SliceStable(variants, func(i, j int) bool {
		return len([]rune(variants[i])) > len([]rune(variants[j]))
	})
	return variants
}

// DisplayWord shows alternative spellings as "a/b".
func (c *Card) DisplayWord() string {
	return strings.ReplaceAll(c.Word, spellingSeparator, "/")
}

// NextToggle is the result the toggle key moves to:
// Unset/Skip -> Fail -> Pass -> Skip.
func (c *Card) NextToggle() model.Result {
	switch c.Result {
	case model.Fail:
		return model.Pass
	case model.Pass:
		return model.Skip
	default:
		return model.Fail
	}
}

// SetResult records r. A pass with LearnedAfterPasses earlier passes marks
// the card learned; learned is never cleared afterwards.
func (c *Card) SetResult(r model.Result) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: %d", model.ErrInvalidResult, int(r))
	}
	c.Result = r
	if r == model.Pass && c.PassCount == LearnedAfterPasses {
		c.Learned = true
	}
	return nil
}

// CompletesLearning reports whether a pass on this card would make it learned.
func (c *Card) CompletesLearning() bool {
	return c.PassCount == LearnedAfterPasses
}

func (c *Card) ToggleContext() {
	c.ShowContext = !c.ShowContext
}

func (c *Card) ToggleDefinition() {
	c.ShowDefinition = !c.ShowDefinition
}

// ToggleDefinitionAndImage flips the definition and makes the image follow it.
func (c *Card) ToggleDefinitionAndImage() {
	c.ShowDefinition = !c.ShowDefinition
	c.ShowImage = c.ShowDefinition
}

func (c *Card) ToggleImage() {
	c.ShowImage = !c.ShowImage
}

// RecentHistory returns the last n history entries and whether older
// entries were left out.
func (c *Card) RecentHistory(n int) ([]model.HistoryEntry, bool) {
	if len(c.History) > n {
		return c.History[len(c.History)-n:], true
	}
	return c.History, false
}
