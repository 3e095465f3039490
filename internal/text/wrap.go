package text

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Size is a nominal font size. Terminals render a single size, so sizes
// only select styles there; Metrics implementations may still scale by it.
type Size int

const (
	SizeTiny   Size = 12
	SizeSmall  Size = 14
	SizeMedium Size = 20
	SizeLarge  Size = 28
	SizeGiant  Size = 36
	SizeTitle  Size = 90

	// superscriptShrink is how much smaller a domain tag is than its line.
	superscriptShrink Size = 5
)

// Superscript returns the size used for domain tags on a line of size s.
func (s Size) Superscript() Size {
	return s - superscriptShrink
}

// Metrics measures the rendered width of text.
type Metrics interface {
	Width(s string, size Size) int
}

// CellMetrics measures terminal cells; size has no effect.
type CellMetrics struct{}

func (CellMetrics) Width(s string, _ Size) int {
	return lipgloss.Width(s)
}

// Wrapper breaks text into lines no wider than MaxWidth.
//
// The per-line character budget is estimated once from the average glyph
// width of the whole text, then each line is shortened to the last space
// inside that budget. This is an approximation and assumes glyph widths
// are roughly even; it is not kerning-aware.
type Wrapper struct {
	Metrics  Metrics
	Size     Size
	MaxWidth int
}

// Budget is the estimated number of characters of text that fit on a line.
func (w Wrapper) Budget(text string) int {
	n := utf8.RuneCountInString(text)
	full := w.Metrics.Width(text, w.Size)
	if n == 0 || full <= 0 {
		return n
	}
	return n * w.MaxWidth / full
}

// Lines yields the wrapped lines of text. Lines keep their trailing space,
// so concatenating them gives back text. An empty text yields nothing.
func (w Wrapper) Lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		w.wrap(text, false, func(line []rune, _ int) int {
			if !yield(string(line)) {
				return -1
			}
			return len(line)
		})
	}
}

// wrap walks text one line at a time. emit gets the candidate line and
// its index and reports how many runes it used; the rest is carried to the
// next line. A negative return stops the walk. wrap returns the line count.
func (w Wrapper) wrap(text string, definition bool, emit func(line []rune, index int) int) int {
	rest := []rune(text)
	budget := w.Budget(text)
	index := 0
	for len(rest) > 0 {
		limit := budget
		if definition {
			limit += w.superscriptAllowance(rest, limit)
		}
		n := cut(rest, limit)
		used := emit(rest[:n], index)
		if used < 0 {
			return index
		}
		if used == 0 || used > n {
			used = n
		}
		rest = rest[used:]
		index++
	}
	return index
}

// cut returns the length of the next line of r under a budget of limit
// characters. The line ends on a space unless it is the last one. A word
// longer than the budget is kept whole.
func cut(r []rune, limit int) int {
	if limit < 1 {
		limit = 1
	}
	if len(r) <= limit {
		return len(r)
	}
	n := limit
	for n > 0 && r[n-1] != ' ' {
		n--
	}
	if n > 0 {
		return n
	}
	n = limit
	for n < len(r) && r[n-1] != ' ' {
		n++
	}
	return n
}

// superscriptAllowance widens the budget by the characters a domain tag in
// the candidate line frees up by being drawn at the superscript size. With
// metrics that ignore size the allowance is zero.
func (w Wrapper) superscriptAllowance(r []rune, limit int) int {
	if limit > len(r) {
		limit = len(r)
	}
	if limit <= 0 || w.MaxWidth <= 0 {
		return 0
	}
	window := string(r[:limit])
	open := strings.IndexRune(window, '[')
	end := strings.IndexRune(window, ']')
	if open == -1 || end == -1 || end < open {
		return 0
	}
	tag := window[open : end+1]
	freed := w.Metrics.Width(tag, w.Size) - w.Metrics.Width(tag, w.Size.Superscript())
	if freed <= 0 {
		return 0
	}
	return freed * limit / w.MaxWidth
}
