package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kyber/internal/ui/textutil"
)

const (
	siteColName      = 34
	siteColDevices   = 14
	siteColIncidents = 18
)

func (m *AppModel) renderSiteList() string {
	var b strings.Builder

	title := "Sites"
	if m.sitesTotal > sitesPerPage {
		pages := (m.sitesTotal + sitesPerPage - 1) / sitesPerPage
		title = fmt.Sprintf("Sites  (page %d/%d)", m.sitesPage+1, pages)
	}
	b.WriteString(Styles.Title.Render(title) + "\n\n")
	b.WriteString(m.statusLine())

	// The incident columns come from a separate feed; when it fails the
	// rows keep rendering without stats and the failure is noted here.
	if errMsg := m.slots.Err(slotIncidents); errMsg != "" {
		b.WriteString(Styles.Warning.Render("incidents unavailable: "+errMsg) + "\n")
	}

	switch {
	case m.sites.Loading:
		b.WriteString(m.spin.View() + " loading sites…\n")
	case m.sites.Err != "":
		b.WriteString(Styles.Error.Render("failed to load sites: "+m.sites.Err) + "\n")
	case m.sites.Len() == 0:
		b.WriteString(Styles.Empty.Render("no sites") + "\n")
	default:
		b.WriteString(Styles.Header.Render(
			textutil.PadRightVisual("Name", siteColName) +
				textutil.PadRightVisual("Devices", siteColDevices) +
				textutil.PadRightVisual("Incidents", siteColIncidents) +
				"UID") + "\n")
		for i, site := range m.sites.Items {
			vars := m.siteVars[site.UID]
			name := textutil.PadRightVisual(site.Name, siteColName)
			if color := SiteColorName(vars); color != "" {
				name = lipgloss.NewStyle().Foreground(siteColor(color)).Render(name)
			}

			devices := ""
			if ds := site.DevicesStatus; ds != nil {
				devices = fmt.Sprintf("%d/%d up", ds.NumberOfOnlineDevices, ds.NumberOfDevices)
			}

			stats := StatsFor(site, vars, m.incidentStats)
			incidents := ""
			if stats.Active > 0 || stats.Resolved > 0 {
				incidents = fmt.Sprintf("%d active, %d resolved", stats.Active, stats.Resolved)
			}

			row := name +
				textutil.PadRightVisual(devices, siteColDevices) +
				textutil.PadRightVisual(incidents, siteColIncidents) +
				Styles.Muted.Render(textutil.Truncate(site.UID, 12))
			if i == m.sites.Cursor {
				b.WriteString(Styles.Selected.Render("> ") + row + "\n")
			} else {
				b.WriteString("  " + row + "\n")
			}
		}
	}

	b.WriteString("\n" + m.helpLine())
	return b.String()
}
