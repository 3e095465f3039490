package ui

// Layout holds every frame size of the screen. It only depends on the
// window size and is rebuilt when that changes.
type Layout struct {
	Width  int
	Height int

	CardWidth int
	// TextWidth is the wrap width inside the context and definition frames.
	TextWidth        int
	ContextHeight    int
	DefinitionHeight int

	SliderWidth  int
	OverlayWidth int
}

const (
	minCardWidth = 24
	maxCardWidth = 100
	// border plus horizontal padding of a text frame
	frameInset = 4
	// rows taken by the header, word box, history, register, hints and help
	fixedRows = 16
)

func NewLayout(width, height int) Layout {
	l := Layout{Width: width, Height: height}
	l.CardWidth = clamp(width-4, minCardWidth, maxCardWidth)
	l.TextWidth = l.CardWidth - frameInset

	free := max(height-fixedRows, 4)
	l.ContextHeight = max(free/2, 2)
	l.DefinitionHeight = max(free-l.ContextHeight, 2)

	l.SliderWidth = clamp(width/2, 10, 60)
	l.OverlayWidth = clamp(width*2/3, minCardWidth, 60)
	return l
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
