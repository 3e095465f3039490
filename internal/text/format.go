package text

import (
	"strings"
	"unicode/utf8"
)

type Style int

const (
	Plain Style = iota
	Highlight
	Superscript
)

// Span is a run of text drawn in one style.
type Span struct {
	Text  string
	Style Style
}

// Line is one laid-out line. Index counts lines from the top of the
// paragraph and fixes the vertical position.
type Line struct {
	Index int
	Spans []Span
}

func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// ContextSeparator splits two context examples.
const ContextSeparator = "|"

// HighlightVariants splits line into plain runs and highlighted variants.
// At each step the leftmost occurring variant is taken; when several start
// at the same place the longest wins, so an inflected form is never
// shadowed by its stem.
func HighlightVariants(line string, variants []string) []Span {
	var spans []Span
	for len(line) > 0 {
		cutoff := len(line)
		match := ""
		for _, v := range variants {
			if v == "" {
				continue
			}
			i := strings.Index(line, v)
			if i == -1 {
				continue
			}
			if i < cutoff || (i == cutoff && len(v) > len(match)) {
				cutoff, match = i, v
			}
		}
		if cutoff > 0 {
			spans = append(spans, Span{Text: line[:cutoff], Style: Plain})
			line = line[cutoff:]
		}
		if match != "" {
			spans = append(spans, Span{Text: match, Style: Highlight})
			line = line[len(match):]
		}
	}
	return spans
}

// Plain lays out text with no formatting.
func (w Wrapper) Plain(text string) []Line {
	var lines []Line
	w.wrap(text, false, func(line []rune, index int) int {
		lines = append(lines, Line{Index: index, Spans: plainSpans(string(line))})
		return len(line)
	})
	return lines
}

// Context lays out a context text with the card's variants highlighted.
// Two examples separated by "|" are numbered and the second starts on the
// line after the first ends.
func (w Wrapper) Context(text string, variants []string) []Line {
	first, second, split := strings.Cut(text, ContextSeparator)
	if !split {
		return w.highlighted(text, variants, 0)
	}
	lines := w.highlighted("1. "+strings.TrimSpace(first), variants, 0)
	return append(lines, w.highlighted("2. "+strings.TrimSpace(second), variants, len(lines))...)
}

func (w Wrapper) highlighted(text string, variants []string, start int) []Line {
	var lines []Line
	w.wrap(text, false, func(line []rune, index int) int {
		lines = append(lines, Line{
			Index: start + index,
			Spans: HighlightVariants(strings.TrimRight(string(line), " "), variants),
		})
		return len(line)
	})
	return lines
}

// Definition lays out a definition whose domain tags ("[archaic]") are
// drawn as superscript. A tag is only recognised at the start of a line;
// text before a tag is flushed on its own line first, and a second tag on
// the same line is pushed to the next one.
//
// A line starting with "[" and no "]" is drawn plain: the wrapper does not
// guarantee that a tag never straddles a line break.
func (w Wrapper) Definition(text string) []Line {
	var lines []Line
	w.wrap(text, true, func(line []rune, index int) int {
		spans, used := definitionSpans(string(line))
		lines = append(lines, Line{Index: index, Spans: spans})
		return used
	})
	return lines
}

func definitionSpans(line string) ([]Span, int) {
	open := strings.IndexRune(line, '[')
	switch {
	case open == 0:
		end := strings.IndexRune(line, ']')
		if end == -1 {
			return plainSpans(line), utf8.RuneCountInString(line)
		}
		if next := strings.IndexRune(line[end+1:], '['); next != -1 {
			line = line[:end+1+next]
		}
		spans := []Span{{Text: line[:end+1], Style: Superscript}}
		if rest := strings.TrimRight(line[end+1:], " "); rest != "" {
			spans = append(spans, Span{Text: rest, Style: Plain})
		}
		return spans, utf8.RuneCountInString(line)
	case open > 0:
		line = line[:open]
	}
	return plainSpans(line), utf8.RuneCountInString(line)
}

func plainSpans(line string) []Span {
	line = strings.TrimRight(line, " ")
	if line == "" {
		return nil
	}
	return []Span{{Text: line, Style: Plain}}
}
