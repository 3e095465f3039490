package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wurdlurnur/internal/media"
)

const (
	updatingDuration = 500 * time.Millisecond
	learnedDuration  = 2 * time.Second
)

type modalKind int

const (
	modalUpdating modalKind = iota
	modalLearned
)

// modal is a timed popup. It closes at its deadline or on any key that is
// not a quit key.
type modal struct {
	id   int
	kind modalKind
	word string
	ttl  time.Duration
}

type modalExpiredMsg struct{ id int }

func (m UiModel) activeModal() (modal, bool) {
	if len(m.modals) == 0 {
		return modal{}, false
	}
	return m.modals[0], true
}

func (m UiModel) pushModal(md modal) (UiModel, tea.Cmd) {
	m.nextModalID++
	md.id = m.nextModalID
	m.modals = append(m.modals, md)
	if len(m.modals) == 1 {
		return m, m.startModal()
	}
	return m, nil
}

func (m UiModel) popModal() (UiModel, tea.Cmd) {
	if len(m.modals) == 0 {
		return m, nil
	}
	m.modals = m.modals[1:]
	if len(m.modals) > 0 {
		return m, m.startModal()
	}
	return m, nil
}

func (m UiModel) startModal() tea.Cmd {
	md := m.modals[0]
	expire := tea.Tick(md.ttl, func(time.Time) tea.Msg { return modalExpiredMsg{id: md.id} })
	switch md.kind {
	case modalUpdating:
		return tea.Batch(expire, m.spinner.Tick)
	case modalLearned:
		return tea.Batch(expire, m.play(media.SoundLearned))
	}
	return expire
}
