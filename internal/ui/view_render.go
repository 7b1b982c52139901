package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m *AppModel) renderCurrentView() string {
	switch m.CurrentView() {
	case ViewActivityDetail:
		return m.renderActivityDetail()
	case ViewDeviceDetail:
		return m.renderDeviceDetail()
	case ViewSiteDetail:
		return m.renderSiteDetail()
	default:
		return m.renderSiteList()
	}
}

// renderModal centers the active modal in the window. The underlying view
// stays in the model untouched; it reappears as-is when the modal closes.
func (m *AppModel) renderModal() string {
	if m.width == 0 || m.height == 0 {
		return m.modal.View()
	}
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		m.modal.View())
}

// statusLine renders the top-level status area, empty when nothing failed.
func (m *AppModel) statusLine() string {
	if m.status == "" {
		return ""
	}
	return Styles.Error.Render(m.status) + "\n"
}

func (m *AppModel) helpLine() string {
	if m.showHelp {
		m.help.ShowAll = true
	} else {
		m.help.ShowAll = false
	}
	return m.help.View(m.keys)
}

// tabBar renders a tab strip with the active tab highlighted.
func tabBar(names []string, active int) string {
	parts := make([]string, len(names))
	for i, name := range names {
		if i == active {
			parts[i] = Styles.TabActive.Render(name)
		} else {
			parts[i] = Styles.TabIdle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(parts)...)
}

func joinWithGap(parts []string) []string {
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}

func onOff(v bool) string {
	if v {
		return Styles.OK.Render("on")
	}
	return Styles.Muted.Render("off")
}
