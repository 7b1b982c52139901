package ui

import tea "github.com/charmbracelet/bubbletea"

// Modal is a single stacked overlay. At most one modal is ever active;
// while one is open it receives every input event exclusively. A modal owns
// its own edit buffers, so dismissing it is automatically a no-op on the
// underlying state.
type Modal interface {
	Update(msg tea.Msg) (Modal, tea.Cmd)
	View() string
}

// openModal activates a modal. Opening a second modal while one is active
// is rejected; the caller's request is simply ignored.
func (m *AppModel) openModal(modal Modal) bool {
	if m.modal != nil {
		return false
	}
	m.modal = modal
	return true
}

func dismissModal() tea.Msg { return dismissModalMsg{} }
