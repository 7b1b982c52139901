package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kyber/internal/rmm"
	"kyber/internal/ui/state"
	"kyber/internal/ui/textutil"
)

// searchSelectedMsg asks the state machine to open the chosen device.
type searchSelectedMsg struct {
	device rmm.Device
}

// SearchModal is the global device search: a debounced search-as-you-type
// query against the RMM account device index. The modal owns the input
// buffer and result cursor; the state machine owns dispatching, so the
// debounce decision runs in the app's tick handler against this modal's
// exported state.
type SearchModal struct {
	input          textinput.Model
	results        state.List[rmm.Device]
	lastKeystroke  time.Time
	lastDispatched string
	searching      bool
	err            string
}

// NewSearchModal opens an empty search prompt.
func NewSearchModal(now time.Time) *SearchModal {
	ti := textinput.New()
	ti.Placeholder = "hostname"
	ti.Width = 48
	ti.Focus()
	return &SearchModal{
		input:         ti,
		results:       state.NewList[rmm.Device](),
		lastKeystroke: now,
	}
}

// Query returns the current buffer.
func (m *SearchModal) Query() string { return m.input.Value() }

// DebounceReady applies the debounce rule at a tick instant. When it fires,
// the last-dispatched buffer advances immediately so subsequent ticks stay
// quiet while the request is in flight.
func (m *SearchModal) DebounceReady(now time.Time) (string, bool) {
	buffer := m.input.Value()
	if !state.ShouldDispatch(buffer, m.lastDispatched, now.Sub(m.lastKeystroke)) {
		return "", false
	}
	m.lastDispatched = buffer
	m.searching = true
	m.err = ""
	return buffer, true
}

// SetResults installs a completed search. The state machine has already
// checked the correlation ordinal, so a stale result never reaches here.
func (m *SearchModal) SetResults(devices []rmm.Device) {
	m.searching = false
	m.err = ""
	m.results.Replace(devices)
}

// SetError surfaces a failed search inside the modal.
func (m *SearchModal) SetError(msg string) {
	m.searching = false
	m.err = msg
}

// Update implements Modal.
func (m *SearchModal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, dismissModal
		case "up":
			m.results.Prev()
			return m, nil
		case "down":
			m.results.Next()
			return m, nil
		case "enter":
			if device, ok := m.results.Selected(); ok {
				return m, func() tea.Msg { return searchSelectedMsg{device: device} }
			}
			return m, nil
		}
		m.lastKeystroke = timeNow()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements Modal.
func (m *SearchModal) View() string {
	var b strings.Builder
	b.WriteString(ModalStyles.Title.Render("Device search") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	switch {
	case m.err != "":
		b.WriteString(ModalStyles.Error.Render(m.err) + "\n")
	case m.searching:
		b.WriteString(Styles.Muted.Render("searching…") + "\n")
	case m.results.Len() == 0:
		b.WriteString(Styles.Empty.Render("no results") + "\n")
	default:
		for i, d := range m.results.Items {
			line := fmt.Sprintf("%-28s %-20s %s",
				textutil.Truncate(d.Hostname, 28),
				textutil.Truncate(d.SiteName, 20),
				onlineLabel(d.Online))
			if i == m.results.Cursor {
				b.WriteString(Styles.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString(Styles.Normal.Render("  "+line) + "\n")
			}
		}
	}

	b.WriteString("\n" + ModalStyles.Help.Render("type to search  ↑/↓: select  Enter: open  Esc: close"))
	return ModalStyles.Box.Render(b.String())
}

func onlineLabel(online bool) string {
	if online {
		return Styles.OK.Render("online")
	}
	return Styles.Muted.Render("offline")
}
