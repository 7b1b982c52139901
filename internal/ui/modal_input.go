package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModal is a one- or two-field text prompt used for site settings,
// site variables, and device UDF edits. It snapshots nothing: the fields it
// shows are copies, and only the submit message carries them back.
type InputModal struct {
	title      string
	labels     []string
	inputs     []textinput.Model
	focus      int
	err        string
	submit     func(values []string) tea.Msg
	allowEmpty bool
}

// NewInputModal builds a prompt with one input per label, pre-filled with
// the corresponding initial value.
func NewInputModal(title string, labels, initial []string, submit func(values []string) tea.Msg) *InputModal {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.Width = 48
		if i < len(initial) {
			ti.SetValue(initial[i])
			ti.CursorEnd()
		}
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return &InputModal{title: title, labels: labels, inputs: inputs, submit: submit}
}

// AllowEmpty permits submitting with a blank first field (e.g. clearing a
// description).
func (m *InputModal) AllowEmpty() *InputModal {
	m.allowEmpty = true
	return m
}

// Init implements no-op initialization; the cursor blink command comes from
// the caller that opened the modal.
func (m *InputModal) Init() tea.Cmd { return textinput.Blink }

// Update implements Modal.
func (m *InputModal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, dismissModal
		case "tab", "shift+tab":
			if len(m.inputs) > 1 {
				m.inputs[m.focus].Blur()
				if msg.String() == "tab" {
					m.focus = (m.focus + 1) % len(m.inputs)
				} else {
					m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
				}
				m.inputs[m.focus].Focus()
			}
			return m, nil
		case "enter":
			values := make([]string, len(m.inputs))
			for i := range m.inputs {
				values[i] = m.inputs[i].Value()
			}
			if !m.allowEmpty && strings.TrimSpace(values[0]) == "" {
				m.err = "value required"
				return m, nil
			}
			submit := m.submit
			return m, func() tea.Msg { return submit(values) }
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements Modal.
func (m *InputModal) View() string {
	var b strings.Builder
	b.WriteString(ModalStyles.Title.Render(m.title) + "\n\n")
	for i := range m.inputs {
		label := m.labels[i]
		if i == m.focus {
			b.WriteString(ModalStyles.Focused.Render(label) + "\n")
		} else {
			b.WriteString(ModalStyles.Label.Render(label) + "\n")
		}
		b.WriteString(m.inputs[i].View() + "\n")
	}
	if m.err != "" {
		b.WriteString("\n" + ModalStyles.Error.Render(m.err))
	}
	b.WriteString("\n" + ModalStyles.Help.Render("Enter: save  Tab: next field  Esc: cancel"))
	return ModalStyles.Box.Render(b.String())
}
