package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle     key.Binding
	Pass       key.Binding
	Skip       key.Binding
	Fail       key.Binding
	Context    key.Binding
	Definition key.Binding
	Image      key.Binding
	Pronounce  key.Binding
	Stats      key.Binding
	Prev       key.Binding
	Next       key.Binding
	Copy       key.Binding
	Open       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle result")),
		Pass:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "pass")),
		Skip:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "skip")),
		Fail:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "fail")),
		Context:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "context")),
		Definition: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "definition")),
		Image:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "image")),
		Pronounce:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pronounce")),
		Stats:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		Prev:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
		Next:       key.NewBinding(key.WithKeys("right", "l", "enter"), key.WithHelp("→/enter", "next")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy word")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open image")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "w", "ctrl+c"), key.WithHelp("q", "save & quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Prev, k.Next, k.Context, k.Definition, k.Stats, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Pass, k.Skip, k.Fail},
		{k.Prev, k.Next, k.Stats},
		{k.Context, k.Definition, k.Image, k.Pronounce},
		{k.Copy, k.Open, k.Help, k.Quit},
	}
}
