package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"wurdlurnur/internal/card"
	"wurdlurnur/internal/model"
	"wurdlurnur/internal/session"
	"wurdlurnur/internal/text"
)

func (m UiModel) View() string {
	if m.screen == screenSlider {
		return m.renderSlider()
	}
	if md, ok := m.activeModal(); ok {
		return m.renderWithDialog(m.renderModal(md))
	}
	if m.showStats {
		return m.renderWithDialog(m.renderStats())
	}
	return m.renderCard()
}

func (m UiModel) renderSlider() string {
	s := m.params.Slider
	percent := 1.0
	if s.Max > s.Min {
		percent = float64(m.sliderValue-s.Min) / float64(s.Max-s.Min)
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Würd Lürnür")
	prompt := lipgloss.NewStyle().Foreground(textColor).Render("How many words this session?")
	value := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d", m.sliderValue))
	bounds := lipgloss.NewStyle().Foreground(dimColor).
		Render(fmt.Sprintf("%d%s%d", s.Min, strings.Repeat(" ", max(m.layout.SliderWidth-lenDigits(s.Min)-lenDigits(s.Max), 1)), s.Max))
	hint := lipgloss.NewStyle().Foreground(dimColor).Render("←/→ adjust • enter start • q quit")

	body := lipgloss.JoinVertical(lipgloss.Center, title, "", prompt, "", m.bar.ViewAs(percent), bounds, value, "", hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func lenDigits(n int) int {
	return len(strconv.Itoa(n))
}

func (m UiModel) renderCard() string {
	c := m.sess.Current()
	l := m.layout

	var content strings.Builder
	content.WriteString(m.renderHeader() + "\n")
	content.WriteString(m.renderWord(c) + "\n")

	if c.ShowContext {
		w := text.Wrapper{Metrics: text.CellMetrics{}, Size: text.SizeMedium, MaxWidth: l.TextWidth}
		body := m.renderer.Lines(w.Context(c.Context, c.Variants), text.SizeMedium, c.PartOfSpeech.Color)
		content.WriteString(frame("Context", body, l.CardWidth, l.ContextHeight) + "\n")
	}
	if c.ShowDefinition {
		w := text.Wrapper{Metrics: text.CellMetrics{}, Size: text.SizeSmall, MaxWidth: l.TextWidth}
		body := m.renderer.Lines(w.Definition(c.Definition), text.SizeSmall, c.PartOfSpeech.Color)
		content.WriteString(frame("Definition", body, l.CardWidth, l.DefinitionHeight) + "\n")
	}
	if c.ShowImage {
		content.WriteString(m.renderImage(c) + "\n")
	}

	content.WriteString(m.renderHistory(c) + "\n")
	content.WriteString(m.renderRegister(c) + "\n")
	content.WriteString(m.renderNav() + "\n")

	statusStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Height(1).
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("234")).
		Width(l.CardWidth)
	content.WriteString(statusStyle.Render(m.status) + "\n")
	content.WriteString(m.help.View(m.keys))

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content.String())
}

func (m UiModel) renderHeader() string {
	t := m.sess.Tally()
	left := fmt.Sprintf("Session #%d • card %d/%d", m.sess.Index, m.sess.Position()+1, m.sess.Len())
	right := strings.Join([]string{
		lipgloss.NewStyle().Foreground(passColor).Render(fmt.Sprintf("✓ %d", t.Pass)),
		lipgloss.NewStyle().Foreground(skipColor).Render(fmt.Sprintf("– %d", t.Skip)),
		lipgloss.NewStyle().Foreground(failColor).Render(fmt.Sprintf("✗ %d", t.Fail)),
		lipgloss.NewStyle().Foreground(accentColor).Render(fmt.Sprintf("★ %d", t.Learned)),
	}, "  ")
	gap := max(m.layout.CardWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.NewStyle().Foreground(dimColor).Render(left) + strings.Repeat(" ", gap) + right
}

func (m UiModel) renderWord(c *card.Card) string {
	word := m.renderer.Render(c.DisplayWord(), TextStyle{Size: text.SizeTitle, Color: c.PartOfSpeech.Color})
	pos := lipgloss.NewStyle().Italic(true).Foreground(c.PartOfSpeech.Color).Render(c.PartOfSpeech.Name)
	border := lipgloss.Color("63")
	if c.Learned {
		border = accentColor
	}
	return lipgloss.NewStyle().
		Width(m.layout.CardWidth-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, word, pos))
}

func frame(title, body string, width, height int) string {
	head := lipgloss.NewStyle().Foreground(dimColor).Render(title)
	return lipgloss.NewStyle().
		Width(width-2).
		MaxHeight(height+3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("244")).
		Padding(0, 1).
		Render(head + "\n" + body)
}

func (m UiModel) renderImage(c *card.Card) string {
	body := lipgloss.NewStyle().Foreground(dimColor).Render("no image for this word")
	if c.Image != "" {
		body = c.Image + lipgloss.NewStyle().Foreground(dimColor).Render("  (o to open)")
	}
	return frame("Image", body, m.layout.CardWidth, 1)
}

func (m UiModel) renderHistory(c *card.Card) string {
	recent, elided := c.RecentHistory(historyShown)
	if len(recent) == 0 {
		return lipgloss.NewStyle().Foreground(dimColor).Render("no history yet")
	}
	var parts []string
	if elided {
		parts = append(parts, lipgloss.NewStyle().Foreground(dimColor).Render("…"))
	}
	for _, h := range recent {
		mark, color := "✓", passColor
		if h.Result == model.Fail {
			mark, color = "✗", failColor
		}
		date := h.Timestamp
		if len(date) >= 5 {
			date = date[:5]
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(color).Render(mark)+
			lipgloss.NewStyle().Foreground(dimColor).Render(date))
	}
	return wordwrap.String(strings.Join(parts, " "), m.layout.CardWidth)
}

func (m UiModel) renderRegister(c *card.Card) string {
	options := []struct {
		result model.Result
		label  string
		color  lipgloss.Color
	}{
		{model.Pass, "PASS", passColor},
		{model.Skip, "SKIP", skipColor},
		{model.Fail, "FAIL", failColor},
	}
	var buttons []string
	for _, o := range options {
		style := lipgloss.NewStyle().Padding(0, 2).Margin(0, 1)
		if c.Result == o.result {
			style = style.Bold(true).Foreground(lipgloss.Color("15")).Background(o.color)
		} else {
			style = style.Foreground(o.color).Background(lipgloss.Color("236"))
		}
		buttons = append(buttons, style.Render(o.label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
	return lipgloss.PlaceHorizontal(m.layout.CardWidth, lipgloss.Center, row)
}

func (m UiModel) renderNav() string {
	hint := func(label string, enabled bool) string {
		style := lipgloss.NewStyle().Foreground(textColor)
		if !enabled {
			style = style.Foreground(lipgloss.Color("238"))
		}
		return style.Render(label)
	}
	prev := hint("‹ prev", m.sess.CanMove(session.Left))
	next := hint("next ›", m.sess.CanMove(session.Right))
	gap := max(m.layout.CardWidth-lipgloss.Width(prev)-lipgloss.Width(next), 1)
	return prev + strings.Repeat(" ", gap) + next
}

func (m UiModel) renderModal(md modal) string {
	var body string
	switch md.kind {
	case modalUpdating:
		body = m.spinner.View() + " Updating database..."
	case modalLearned:
		body = lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("★ Lürnt! ★"),
			"",
			fmt.Sprintf("%q is now learned.", md.word))
	}
	return dialogStyle().Render(body)
}

func (m UiModel) renderStats() string {
	sum := m.sess.Summary()
	width := m.layout.OverlayWidth - 6
	label := lipgloss.NewStyle().Foreground(dimColor)

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Stats"),
		"",
		label.Render("Words in database:  ") + fmt.Sprintf("%d", sum.TotalInTable),
		label.Render("Cards this session: ") + fmt.Sprintf("%d", sum.SessionCards),
		label.Render("Passed:             ") + fmt.Sprintf("%d", sum.Pass),
		label.Render("Failed:             ") + fmt.Sprintf("%d", sum.Fail),
		label.Render("Skipped:            ") + fmt.Sprintf("%d", sum.Skip),
		label.Render("Lürnt:              ") + fmt.Sprintf("%d", sum.Learned),
		label.Render("Past pass rate:     ") + fmt.Sprintf("%.0f%%", m.passRate*100),
	}
	if len(m.mostFailed) > 0 {
		var words []string
		for _, wc := range m.mostFailed {
			words = append(words, fmt.Sprintf("%s (%d)", wc.Word, wc.Count))
		}
		lines = append(lines, "", wordwrap.String(label.Render("Most failed: ")+strings.Join(words, ", "), width))
	}
	lines = append(lines, "", label.Render(wordwrap.String("Press any key to return to the card.", width)))
	return dialogStyle().Width(m.layout.OverlayWidth).Align(lipgloss.Left).Render(strings.Join(lines, "\n"))
}

func dialogStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2).
		Align(lipgloss.Center).
		Background(lipgloss.Color("235"))
}

func (m UiModel) renderWithDialog(dialog string) string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		dialog,
	)
}
