package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wurdlurnur/internal/text"
)

var (
	textColor        = lipgloss.Color("#FAFAFA")
	superscriptColor = lipgloss.Color("#A0785A")
	dimColor         = lipgloss.Color("244")
	passColor        = lipgloss.Color("#00992B")
	failColor        = lipgloss.Color("#E03C31")
	skipColor        = lipgloss.Color("#8A8A8A")
	accentColor      = lipgloss.Color("#F07833")
)

// TextStyle is everything that decides how a piece of text looks.
type TextStyle struct {
	Size  text.Size
	Style text.Style
	Color lipgloss.Color
}

func (ts TextStyle) lipStyle() lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(textColor)
	if ts.Color != "" {
		s = s.Foreground(ts.Color)
	}
	switch ts.Style {
	case text.Highlight:
		s = s.Bold(true)
	case text.Superscript:
		s = s.Faint(true).Italic(true).Foreground(superscriptColor)
	}
	if ts.Size >= text.SizeGiant {
		s = s.Bold(true)
	}
	return s
}

type renderKey struct {
	text  string
	style TextStyle
}

// Renderer memoizes styled strings.
type Renderer struct {
	cache map[renderKey]string
}

func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[renderKey]string)}
}

func (r *Renderer) Render(s string, ts TextStyle) string {
	k := renderKey{text: s, style: ts}
	if out, ok := r.cache[k]; ok {
		return out
	}
	out := ts.lipStyle().Render(s)
	r.cache[k] = out
	return out
}

// Len is the number of cached entries.
func (r *Renderer) Len() int { return len(r.cache) }

// Lines draws laid-out lines, placing each one on the row its index names.
// Highlighted spans take color.
func (r *Renderer) Lines(lines []text.Line, size text.Size, color lipgloss.Color) string {
	if len(lines) == 0 {
		return ""
	}
	last := 0
	for _, ln := range lines {
		last = max(last, ln.Index)
	}
	rows := make([]string, last+1)
	for _, ln := range lines {
		if ln.Index < 0 {
			continue
		}
		var sb strings.Builder
		for _, sp := range ln.Spans {
			ts := TextStyle{Size: size, Style: sp.Style}
			switch sp.Style {
			case text.Highlight:
				ts.Color = color
			case text.Superscript:
				ts.Size = size.Superscript()
			}
			sb.WriteString(r.Render(sp.Text, ts))
		}
		rows[ln.Index] = sb.String()
	}
	return strings.Join(rows, "\n")
}
