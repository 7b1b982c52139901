package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModal guards destructive actions (device reboot, AV scan). Enter
// or y confirms and dispatches; Esc or n cancels without side effects.
type ConfirmModal struct {
	title   string
	body    string
	confirm func() tea.Msg
}

// NewConfirmModal builds a confirmation prompt.
func NewConfirmModal(title, body string, confirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{title: title, body: body, confirm: confirm}
}

// Update implements Modal.
func (m *ConfirmModal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "y":
			confirm := m.confirm
			return m, func() tea.Msg { return confirm() }
		case "esc", "n":
			return m, dismissModal
		}
	}
	return m, nil
}

// View implements Modal.
func (m *ConfirmModal) View() string {
	var b strings.Builder
	b.WriteString(ModalStyles.Title.Render(m.title) + "\n\n")
	b.WriteString(ModalStyles.Label.Render(m.body) + "\n\n")
	b.WriteString(ModalStyles.Help.Render("Enter/y: confirm  Esc/n: cancel"))
	return ModalStyles.Box.Render(b.String())
}
