package ui

import (
	"fmt"
	"strings"

	"kyber/internal/rmm"
	"kyber/internal/timefmt"
	"kyber/internal/ui/textutil"
)

const (
	devColHostname = 26
	devColStatus   = 10
	devColOS       = 24
	devColSeen     = 20

	alertColPriority = 12
	alertColTime     = 20

	varColName = 28
)

func (m *AppModel) renderSiteDetail() string {
	sd := m.siteDetail
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Site: "+sd.site.Name) + "\n")
	b.WriteString(tabBar(siteTabNames, int(sd.tab)) + "\n\n")
	b.WriteString(m.statusLine())

	switch sd.tab {
	case SiteTabDevices:
		m.renderDeviceRows(&b, sd)
	case SiteTabAlerts:
		renderAlertRows(&b, m.spin.View(), sd.alerts.Loading, sd.alerts.Err, sd.alerts.Items, sd.alerts.Cursor)
	case SiteTabVariables:
		m.renderVariableRows(&b, sd)
	case SiteTabSettings:
		renderSettingsRows(&b, sd)
	}

	b.WriteString("\n" + m.helpLine())
	return b.String()
}

func (m *AppModel) renderDeviceRows(b *strings.Builder, sd *siteDetailState) {
	switch {
	case sd.devices.Loading:
		b.WriteString(m.spin.View() + " loading devices…\n")
		return
	case sd.devices.Err != "":
		b.WriteString(Styles.Error.Render("failed to load devices: "+sd.devices.Err) + "\n")
		return
	case sd.devices.Len() == 0:
		b.WriteString(Styles.Empty.Render("no devices") + "\n")
		return
	}

	b.WriteString(Styles.Header.Render(
		textutil.PadRightVisual("Hostname", devColHostname)+
			textutil.PadRightVisual("Status", devColStatus)+
			textutil.PadRightVisual("OS", devColOS)+
			textutil.PadRightVisual("Last seen", devColSeen)) + "\n")
	for i, d := range sd.devices.Items {
		status := Styles.Muted.Render(textutil.PadRightVisual("offline", devColStatus))
		if d.Online {
			status = Styles.OK.Render(textutil.PadRightVisual("online", devColStatus))
		}
		row := textutil.PadRightVisual(d.Hostname, devColHostname) +
			status +
			textutil.PadRightVisual(d.OperatingSystem, devColOS) +
			textutil.PadRightVisual(timefmt.Format(d.LastSeen), devColSeen)
		if i == sd.devices.Cursor {
			b.WriteString(Styles.Selected.Render("> ") + row + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}
	if sd.devicesTotal > devicesPerPage {
		pages := (sd.devicesTotal + devicesPerPage - 1) / devicesPerPage
		b.WriteString(Styles.Muted.Render(
			fmt.Sprintf("page %d/%d  (n/p to page)", sd.devicesPage+1, pages)) + "\n")
	}
}

func renderAlertRows(b *strings.Builder, spinner string, loading bool, errMsg string, alerts []rmm.Alert, cursor int) {
	switch {
	case loading:
		b.WriteString(spinner + " loading alerts…\n")
		return
	case errMsg != "":
		b.WriteString(Styles.Error.Render("failed to load alerts: "+errMsg) + "\n")
		return
	case len(alerts) == 0:
		b.WriteString(Styles.Empty.Render("no open alerts") + "\n")
		return
	}

	b.WriteString(Styles.Header.Render(
		textutil.PadRightVisual("Priority", alertColPriority)+
			textutil.PadRightVisual("Raised", alertColTime)+
			"Message") + "\n")
	for i, a := range alerts {
		priority := textutil.PadRightVisual(a.Priority, alertColPriority)
		switch strings.ToLower(a.Priority) {
		case "critical", "high":
			priority = Styles.Error.Render(priority)
		case "moderate", "medium":
			priority = Styles.Warning.Render(priority)
		}
		row := priority +
			textutil.PadRightVisual(timefmt.Format(a.Timestamp), alertColTime) +
			textutil.Truncate(a.Message, 60)
		if i == cursor {
			b.WriteString(Styles.Selected.Render("> ") + row + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}
}

func (m *AppModel) renderVariableRows(b *strings.Builder, sd *siteDetailState) {
	switch {
	case sd.vars.Loading:
		b.WriteString(m.spin.View() + " loading variables…\n")
		return
	case sd.vars.Err != "":
		b.WriteString(Styles.Error.Render("failed to load variables: "+sd.vars.Err) + "\n")
		return
	case sd.vars.Len() == 0:
		b.WriteString(Styles.Empty.Render("no variables  (c to create)") + "\n")
		return
	}

	b.WriteString(Styles.Header.Render(
		textutil.PadRightVisual("Name", varColName)+"Value") + "\n")
	for i, v := range sd.vars.Items {
		value := v.Value
		if v.Masked {
			value = "••••••"
		}
		row := textutil.PadRightVisual(v.Name, varColName) + textutil.Truncate(value, 48)
		if i == sd.vars.Cursor {
			b.WriteString(Styles.Selected.Render("> ") + row + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}
	b.WriteString(Styles.Hint.Render("c: create  e: edit") + "\n")
}

func renderSettingsRows(b *strings.Builder, sd *siteDetailState) {
	rows := []struct {
		label string
		value string
	}{
		{"Name", sd.site.Name},
		{"Description", sd.site.Description},
		{"Notes", textutil.Truncate(sd.site.Notes, 60)},
		{"On-demand", onOff(sd.site.OnDemand)},
		{"Splashtop auto-install", onOff(sd.site.SplashtopAutoInstall)},
	}
	for i, row := range rows {
		line := textutil.PadRightVisual(row.label, 24) + row.value
		if i == sd.settingsCursor {
			b.WriteString(Styles.Selected.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(Styles.Hint.Render("enter/space: edit or toggle") + "\n")
}
