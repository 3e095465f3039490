package text

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrapper(max int) Wrapper {
	return Wrapper{Metrics: CellMetrics{}, Size: SizeMedium, MaxWidth: max}
}

func TestLinesFittingTextIsOneLine(t *testing.T) {
	for _, s := range []string{"hello world", "x", "She demurred at first."} {
		got := slices.Collect(wrapper(40).Lines(s))
		assert.Equal(t, []string{s}, got)
	}
}

func TestLinesEmptyText(t *testing.T) {
	assert.Empty(t, slices.Collect(wrapper(40).Lines("")))
	assert.Empty(t, wrapper(40).Context("", []string{"x"}))
	assert.Empty(t, wrapper(40).Definition(""))
}

func TestLinesBreakOnSpaces(t *testing.T) {
	w := wrapper(10)
	got := slices.Collect(w.Lines("the quick brown fox jumps"))
	assert.Equal(t, []string{"the quick ", "brown fox ", "jumps"}, got)

	for _, line := range w.Plain("the quick brown fox jumps") {
		assert.LessOrEqual(t, CellMetrics{}.Width(line.Text(), SizeMedium), 10)
	}
}

func TestLinesNeverSplitAWord(t *testing.T) {
	got := slices.Collect(wrapper(4).Lines("extraordinary"))
	assert.Equal(t, []string{"extraordinary"}, got)

	got = slices.Collect(wrapper(4).Lines("a extraordinary b"))
	assert.Equal(t, []string{"a ", "extraordinary ", "b"}, got)

	got = slices.Collect(wrapper(0).Lines("ab cd"))
	assert.Equal(t, []string{"ab ", "cd"}, got)
}

func TestLinesStopsEarly(t *testing.T) {
	var got []string
	for line := range wrapper(4).Lines("aa bb cc dd") {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"aa ", "bb "}, got)
}

func TestHighlightPrefersLongestVariant(t *testing.T) {
	want := []Span{
		{Text: "She ", Style: Plain},
		{Text: "demurred", Style: Highlight},
		{Text: " politely", Style: Plain},
	}
	assert.Equal(t, want, HighlightVariants("She demurred politely", []string{"demurred", "demur"}))
	assert.Equal(t, want, HighlightVariants("She demurred politely", []string{"demur", "demurred"}))
}

func TestHighlightRepeatsAndSkipsEmptyVariants(t *testing.T) {
	got := HighlightVariants("Demur, then demur.", []string{"", "demur", "Demur"})
	assert.Equal(t, []Span{
		{Text: "Demur", Style: Highlight},
		{Text: ", then ", Style: Plain},
		{Text: "demur", Style: Highlight},
		{Text: ".", Style: Plain},
	}, got)

	got = HighlightVariants("nothing here", []string{"demur"})
	assert.Equal(t, []Span{{Text: "nothing here", Style: Plain}}, got)
}

func TestContextTwoExamples(t *testing.T) {
	lines := wrapper(80).Context("She demurred.|They demur.", []string{"demurred", "demur"})
	require.Len(t, lines, 2)
	assert.Equal(t, 0, lines[0].Index)
	assert.Equal(t, "1. She demurred.", lines[0].Text())
	assert.Equal(t, 1, lines[1].Index)
	assert.Equal(t, "2. They demur.", lines[1].Text())
	assert.Equal(t, Span{Text: "demur", Style: Highlight}, lines[1].Spans[1])
}

func TestContextSecondExampleFollowsFirst(t *testing.T) {
	lines := wrapper(12).Context("aaaa bbbb cccc dddd|eeee", nil)
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, "2. eeee", last.Text())
	assert.Equal(t, len(lines)-1, last.Index)
	assert.Greater(t, last.Index, 1)
}

func TestDefinitionSuperscript(t *testing.T) {
	lines := wrapper(80).Definition("[archaic] to object")
	require.Len(t, lines, 1)
	assert.Equal(t, []Span{
		{Text: "[archaic]", Style: Superscript},
		{Text: " to object", Style: Plain},
	}, lines[0].Spans)
}

func TestDefinitionOneTagPerLine(t *testing.T) {
	lines := wrapper(80).Definition("[law] a claim [archaic] a demur")
	require.Len(t, lines, 2)
	assert.Equal(t, []Span{{Text: "[law]", Style: Superscript}, {Text: " a claim", Style: Plain}}, lines[0].Spans)
	assert.Equal(t, []Span{{Text: "[archaic]", Style: Superscript}, {Text: " a demur", Style: Plain}}, lines[1].Spans)
	assert.Equal(t, 1, lines[1].Index)
}

func TestDefinitionTextBeforeTag(t *testing.T) {
	lines := wrapper(80).Definition("to object [formal] strongly")
	require.Len(t, lines, 2)
	assert.Equal(t, []Span{{Text: "to object", Style: Plain}}, lines[0].Spans)
	assert.Equal(t, Span{Text: "[formal]", Style: Superscript}, lines[1].Spans[0])
}

func TestDefinitionUnterminatedTagIsPlain(t *testing.T) {
	lines := wrapper(80).Definition("[archaic to object")
	require.Len(t, lines, 1)
	assert.Equal(t, []Span{{Text: "[archaic to object", Style: Plain}}, lines[0].Spans)
}

// scaledMetrics draws every rune size/10 cells wide.
type scaledMetrics struct{}

func (scaledMetrics) Width(s string, size Size) int {
	return len([]rune(s)) * int(size) / 10
}

func TestSuperscriptAllowance(t *testing.T) {
	w := Wrapper{Metrics: scaledMetrics{}, Size: SizeMedium, MaxWidth: 22}
	// "[archaic]" is 18 cells at size 20 and 13 at size 15: 5 cells, 2 characters
	assert.Equal(t, 2, w.superscriptAllowance([]rune("[archaic] x"), 11))
	assert.Equal(t, 0, w.superscriptAllowance([]rune("[archaic] x"), 5))
	assert.Equal(t, 0, w.superscriptAllowance([]rune("x] [y"), 5))

	assert.Zero(t, wrapper(22).superscriptAllowance([]rune("[archaic] x"), 11))
}

func TestDefinitionLinesFitWidth(t *testing.T) {
	for _, width := range []int{12, 20, 31, 45} {
		w := wrapper(width)
		lines := w.Definition("[archaic obsolete] to raise many objections to a plan [law] to put in a demurrer")
		require.NotEmpty(t, lines)
		for _, line := range lines {
			assert.LessOrEqual(t, CellMetrics{}.Width(line.Text(), w.Size), width, "width=%d line=%q", width, line.Text())
		}
		for i, line := range lines {
			assert.Equal(t, i, line.Index)
		}
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "Würd...", Truncate("Würd Lürnür", 7))
	assert.Len(t, []rune(Truncate("abcdefghijklmnop", 10)), 10)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Demur", Capitalize("demur"))
	assert.Equal(t, "Nato", Capitalize("NATO"))
	assert.Equal(t, "Über", Capitalize("über"))
	assert.Equal(t, "", Capitalize(""))
}
