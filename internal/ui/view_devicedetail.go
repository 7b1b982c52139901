package ui

import (
	"fmt"
	"strings"

	"kyber/internal/jsonutil"
	"kyber/internal/timefmt"
	"kyber/internal/ui/textutil"
)

const overviewLabelWidth = 18

func (m *AppModel) renderDeviceDetail() string {
	dd := m.deviceDetail
	var b strings.Builder

	title := "Device: " + dd.device.Hostname
	if dd.device.SiteName != "" {
		title += "  (" + dd.device.SiteName + ")"
	}
	b.WriteString(Styles.Title.Render(title) + "\n")
	b.WriteString(tabBar(deviceTabNames, int(dd.tab)) + "\n\n")
	b.WriteString(m.statusLine())

	switch dd.tab {
	case DeviceTabOverview:
		m.renderDeviceOverview(&b, dd)
	case DeviceTabAlerts:
		renderAlertRows(&b, m.spin.View(), dd.alerts.Loading, dd.alerts.Err, dd.alerts.Items, dd.alerts.Cursor)
	case DeviceTabSoftware:
		m.renderDeviceSoftware(&b, dd)
	case DeviceTabSecurity:
		m.renderSecurityPane(&b, dd)
	case DeviceTabActivity:
		m.renderDeviceActivity(&b, dd)
	}

	b.WriteString("\n" + m.helpLine())
	return b.String()
}

func (m *AppModel) renderDeviceOverview(b *strings.Builder, dd *deviceDetailState) {
	d := dd.device
	fact := func(label, value string) {
		if value == "" {
			value = Styles.Muted.Render("—")
		}
		b.WriteString(textutil.PadRightVisual(label, overviewLabelWidth) + value + "\n")
	}

	status := Styles.Muted.Render("offline")
	if d.Online {
		status = Styles.OK.Render("online")
	}
	fact("Status", status)
	fact("OS", d.OperatingSystem)
	fact("Internal IP", d.IntIPAddress)
	fact("External IP", d.ExtIPAddress)
	fact("Last user", d.LastLoggedInUser)
	fact("Domain", d.Domain)
	fact("Last seen", timefmt.Format(d.LastSeen))
	fact("Last reboot", timefmt.Format(d.LastReboot))
	if d.RebootRequired {
		fact("Reboot", Styles.Warning.Render("required"))
	}
	if av := d.Antivirus; av != nil {
		fact("Antivirus", strings.TrimSpace(av.Product+" "+av.Status))
	}

	keys := m.udfKeys()
	if len(keys) == 0 {
		return
	}
	b.WriteString("\n" + Styles.Header.Render("User-defined fields") + "\n")
	for i, name := range keys {
		row := textutil.PadRightVisual(name, overviewLabelWidth) +
			textutil.Truncate(jsonutil.ToString(d.UDF[name]), 56)
		if i == dd.udfCursor {
			b.WriteString(Styles.Selected.Render("> ") + row + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}
	b.WriteString(Styles.Hint.Render("e: edit field") + "\n")
}

func (m *AppModel) renderDeviceSoftware(b *strings.Builder, dd *deviceDetailState) {
	switch {
	case dd.software.Loading:
		b.WriteString(m.spin.View() + " loading software…\n")
		return
	case dd.software.Err != "":
		b.WriteString(Styles.Error.Render("failed to load software: "+dd.software.Err) + "\n")
		return
	}

	if dd.softwareFiltering {
		b.WriteString("filter: " + dd.softwareFilter + Styles.Selected.Render("▌") + "\n")
	} else if dd.softwareFilter != "" {
		b.WriteString(Styles.Muted.Render("filter: "+dd.softwareFilter) + "\n")
	}

	items := dd.filteredSoftware()
	if len(items) == 0 {
		b.WriteString(Styles.Empty.Render("no software") + "\n")
		return
	}
	b.WriteString(Styles.Header.Render(
		textutil.PadRightVisual("Name", 44)+"Version") + "\n")
	for i, item := range items {
		row := textutil.PadRightVisual(item.Name, 44) + item.Version
		if i == dd.software.Cursor && !dd.softwareFiltering {
			b.WriteString(Styles.Selected.Render("> ") + row + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}
	b.WriteString(Styles.Hint.Render(fmt.Sprintf("%d packages  /: filter", len(items))) + "\n")
}

// renderSecurityPane shows all three security backends side by side in one
// column flow. Each section degrades independently: a backend that failed or
// was never configured reports so in its own section note without hiding
// the others.
func (m *AppModel) renderSecurityPane(b *strings.Builder, dd *deviceDetailState) {
	sec := dd.security
	uid := dd.device.UID

	b.WriteString(Styles.Header.Render("Antivirus") + "\n")
	switch {
	case m.slots.Loading(slotAV(uid)):
		b.WriteString("  " + m.spin.View() + " loading…\n")
	case m.slots.Err(slotAV(uid)) != "":
		b.WriteString(Styles.Error.Render("  "+m.slots.Err(slotAV(uid))) + "\n")
	case len(sec.avAgents) == 0:
		b.WriteString(Styles.Empty.Render("  no agent matched") + "\n")
	}
	for _, a := range sec.avAgents {
		b.WriteString("  " + a.Hostname + "  " + Styles.Muted.Render(a.Version) + "\n")
		line := "    status: " + a.Status
		if a.Isolated != nil && *a.Isolated {
			line += "  " + Styles.Error.Render("ISOLATED")
		}
		if a.AVEnabled != nil && !*a.AVEnabled {
			line += "  " + Styles.Warning.Render("av disabled")
		}
		b.WriteString(line + "\n")
		if a.Heartbeat != "" {
			b.WriteString("    heartbeat: " + timefmt.Format(a.Heartbeat) + "\n")
		}
	}
	if errMsg := m.slots.Err(slotAVAlerts(uid)); errMsg != "" {
		b.WriteString(Styles.Error.Render("    alerts: "+errMsg) + "\n")
	}
	for _, alert := range sec.avAlerts {
		severity := alert.Severity
		switch strings.ToLower(severity) {
		case "high", "critical":
			severity = Styles.Error.Render(severity)
		case "medium":
			severity = Styles.Warning.Render(severity)
		}
		b.WriteString("    " + severity + "  " +
			textutil.Truncate(alert.Name, 48) + "  " +
			Styles.Muted.Render(timefmt.Format(alert.CreatedOn)) + "\n")
	}

	b.WriteString("\n" + Styles.Header.Render("EDR") + "\n")
	switch {
	case m.slots.Loading(slotEDR(uid)):
		b.WriteString("  " + m.spin.View() + " loading…\n")
	case m.slots.Err(slotEDR(uid)) != "":
		b.WriteString(Styles.Error.Render("  "+m.slots.Err(slotEDR(uid))) + "\n")
	case len(sec.edrEndpoints) == 0:
		b.WriteString(Styles.Empty.Render("  no endpoint matched") + "\n")
	}
	for _, e := range sec.edrEndpoints {
		health := ""
		if e.Health != nil {
			health = e.Health.Overall
		}
		switch strings.ToLower(health) {
		case "good":
			health = Styles.OK.Render(health)
		case "suspicious":
			health = Styles.Warning.Render(health)
		case "bad":
			health = Styles.Error.Render(health)
		}
		b.WriteString("  " + e.Hostname + "  " + health + "\n")
		if e.TamperProtection != nil {
			b.WriteString("    tamper protection: " + onOff(e.TamperProtection.Enabled) + "\n")
		}
		if e.LastSeenAt != "" {
			b.WriteString("    last seen: " + timefmt.Format(e.LastSeenAt) + "\n")
		}
	}

	b.WriteString("\n" + Styles.Header.Render("SOC") + "\n")
	switch {
	case m.slots.Loading(slotSOC(uid)):
		b.WriteString("  " + m.spin.View() + " loading…\n")
	case m.slots.Err(slotSOC(uid)) != "":
		b.WriteString(Styles.Error.Render("  "+m.slots.Err(slotSOC(uid))) + "\n")
	case len(sec.socAgents) == 0:
		b.WriteString(Styles.Empty.Render("  no agent matched") + "\n")
	}
	for _, a := range sec.socAgents {
		b.WriteString("  " + a.Hostname + "  " + Styles.Muted.Render(a.Platform+" "+a.Version) + "\n")
	}

	b.WriteString("\n" + Styles.Hint.Render("S: av scan  r: refresh") + "\n")
}

func (m *AppModel) renderDeviceActivity(b *strings.Builder, dd *deviceDetailState) {
	switch {
	case dd.activity.Loading:
		b.WriteString(m.spin.View() + " loading activity…\n")
		return
	case dd.activity.Err != "":
		b.WriteString(Styles.Error.Render("failed to load activity: "+dd.activity.Err) + "\n")
		return
	case dd.activity.Len() == 0:
		b.WriteString(Styles.Empty.Render("no recent activity") + "\n")
		return
	}

	b.WriteString(Styles.Header.Render(
		textutil.PadRightVisual("When", 20)+
			textutil.PadRightVisual("Action", 24)+
			"Details") + "\n")
	for i, a := range dd.activity.Items {
		action := a.Action
		if action == "" {
			action = a.Category
		}
		row := textutil.PadRightVisual(timefmt.Format(a.Date), 20) +
			textutil.PadRightVisual(action, 24) +
			textutil.Truncate(a.Details, 44)
		if i == dd.activity.Cursor {
			b.WriteString(Styles.Selected.Render("> ") + row + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}
	b.WriteString(Styles.Hint.Render("enter: open entry") + "\n")
}
