package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"kyber/internal/jsonutil"
	"kyber/internal/rmm"
	"kyber/internal/ui/state"
)

// openDeviceDetail pushes the detail screen for the device selected in the
// site detail devices tab.
func (m *AppModel) openDeviceDetail() tea.Cmd {
	device, ok := m.siteDetail.devices.Selected()
	if !ok {
		return nil
	}
	return m.showDevice(device)
}

// showDevice enters DeviceDetail for a device from any origin (site detail
// row or global search) and dispatches the overview-adjacent alert fetch.
func (m *AppModel) showDevice(device rmm.Device) tea.Cmd {
	dd := &deviceDetailState{device: device}
	dd.alerts.Cursor = -1
	dd.software.Cursor = -1
	dd.activity.Cursor = -1
	m.deviceDetail = dd

	dd.alerts.Loading = true
	corr := m.slots.Next(slotDeviceAlerts(device.UID))
	return m.fetchDeviceAlertsCmd(corr, device.UID)
}

func (m *AppModel) handleDeviceDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dd := m.deviceDetail
	k := m.keys

	// The software tab's local filter captures plain keystrokes while
	// active; it is not a modal, just an inline input on that pane.
	if dd.tab == DeviceTabSoftware && dd.softwareFiltering {
		switch msg.String() {
		case "esc", "enter":
			dd.softwareFiltering = false
		case "backspace":
			if n := len(dd.softwareFilter); n > 0 {
				dd.softwareFilter = dd.softwareFilter[:n-1]
			}
			dd.clampSoftwareCursor()
		default:
			if msg.Type == tea.KeyRunes {
				dd.softwareFilter += string(msg.Runes)
				dd.clampSoftwareCursor()
			}
		}
		return m, nil
	}

	switch {
	case keyMatches(msg, k.Back):
		m.navigateBack()
		return m, nil
	case keyMatches(msg, k.NextTab):
		dd.tab = DeviceTab((int(dd.tab) + 1) % len(deviceTabNames))
		return m, m.refreshDeviceTab()
	case keyMatches(msg, k.PrevTab):
		dd.tab = DeviceTab((int(dd.tab) + len(deviceTabNames) - 1) % len(deviceTabNames))
		return m, m.refreshDeviceTab()
	case keyMatches(msg, k.Reload):
		return m, m.refreshDeviceTab()
	case keyMatches(msg, k.Reboot):
		deviceUID := dd.device.UID
		m.openModal(NewConfirmModal("Reboot device",
			fmt.Sprintf("Reboot %s now?", dd.device.Hostname),
			func() tea.Msg { return rebootConfirmedMsg{deviceUID: deviceUID} }))
		return m, nil
	case keyMatches(msg, k.Scan):
		return m, m.openScanConfirm()
	case keyMatches(msg, k.RunJob):
		if m.openModal(NewWizardModal(dd.device.UID, dd.device.Hostname)) {
			corr := m.slots.Next(slotComponents)
			return m, m.fetchComponentsCmd(corr)
		}
		return m, nil
	}

	switch dd.tab {
	case DeviceTabOverview:
		keys := m.udfKeys()
		switch {
		case keyMatches(msg, k.Up):
			if dd.udfCursor > 0 {
				dd.udfCursor--
			}
		case keyMatches(msg, k.Down):
			if dd.udfCursor < len(keys)-1 {
				dd.udfCursor++
			}
		case keyMatches(msg, k.Edit):
			m.openUDFModal(keys)
		}
	case DeviceTabAlerts:
		switch {
		case keyMatches(msg, k.Up):
			dd.alerts.Prev()
		case keyMatches(msg, k.Down):
			dd.alerts.Next()
		}
	case DeviceTabSoftware:
		switch {
		case keyMatches(msg, k.Up):
			dd.softwarePrev()
		case keyMatches(msg, k.Down):
			dd.softwareNext()
		case keyMatches(msg, k.Search):
			dd.softwareFiltering = true
			dd.softwareFilter = ""
			dd.clampSoftwareCursor()
		}
	case DeviceTabActivity:
		switch {
		case keyMatches(msg, k.Up):
			dd.activity.Prev()
		case keyMatches(msg, k.Down):
			dd.activity.Next()
		case keyMatches(msg, k.Select):
			return m, m.openActivityDetail()
		}
	}
	return m, nil
}

// refreshDeviceTab dispatches the fetches backing the active device tab.
// The security tab fans out to all three security backends concurrently,
// each on its own slot.
func (m *AppModel) refreshDeviceTab() tea.Cmd {
	dd := m.deviceDetail
	device := dd.device
	switch dd.tab {
	case DeviceTabAlerts:
		dd.alerts.Loading = true
		return m.fetchDeviceAlertsCmd(m.slots.Next(slotDeviceAlerts(device.UID)), device.UID)
	case DeviceTabSoftware:
		dd.software.Loading = true
		return m.fetchSoftwareCmd(m.slots.Next(slotSoftware(device.UID)), device.UID)
	case DeviceTabSecurity:
		return tea.Batch(
			m.fetchAVAgentsCmd(m.slots.Next(slotAV(device.UID)), device.UID, device.Hostname),
			m.fetchEDREndpointsCmd(m.slots.Next(slotEDR(device.UID)), device.UID, device.Hostname),
			m.fetchSOCAgentsCmd(m.slots.Next(slotSOC(device.UID)), device.UID, device.Hostname),
		)
	case DeviceTabActivity:
		dd.activity.Loading = true
		return m.fetchActivityCmd(m.slots.Next(slotActivity(device.UID)), device)
	}
	return nil
}

// udfKeys returns the device's user-defined field names in stable order.
func (m *AppModel) udfKeys() []string {
	dd := m.deviceDetail
	keys := make([]string, 0, len(dd.device.UDF))
	for k := range dd.device.UDF {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return udfSlot(keys[i]) < udfSlot(keys[j])
	})
	return keys
}

// udfSlot extracts the 1-based slot number from a "udfN" field name.
func udfSlot(name string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(name, "udf"))
	if err != nil {
		return 0
	}
	return n
}

func (m *AppModel) openUDFModal(keys []string) {
	dd := m.deviceDetail
	if dd.udfCursor < 0 || dd.udfCursor >= len(keys) {
		return
	}
	name := keys[dd.udfCursor]
	slot := udfSlot(name)
	if slot == 0 {
		return
	}
	deviceUID := dd.device.UID
	current := jsonutil.ToString(dd.device.UDF[name])
	modal := NewInputModal("Edit "+name, []string{name}, []string{current},
		func(values []string) tea.Msg {
			return udfSubmittedMsg{deviceUID: deviceUID, slot: slot, value: values[0]}
		})
	m.openModal(modal.AllowEmpty())
}

// openScanConfirm asks before triggering an AV scan. The scan is addressed
// to the platform's agent id, which only exists once the security tab has
// matched one.
func (m *AppModel) openScanConfirm() tea.Cmd {
	dd := m.deviceDetail
	if len(dd.security.avAgents) == 0 {
		m.status = "no antivirus agent matched for " + dd.device.Hostname + " (open the Security tab first)"
		return nil
	}
	agent := dd.security.avAgents[0]
	m.openModal(NewConfirmModal("Run AV scan",
		fmt.Sprintf("Scan %s now?", dd.device.Hostname),
		func() tea.Msg { return scanConfirmedMsg{agentID: agent.ID} }))
	return nil
}

// filteredSoftware applies the software tab's local case-insensitive
// filter. Filtering is a projection; the fetched list stays intact.
func (dd *deviceDetailState) filteredSoftware() []rmm.SoftwareItem {
	if dd.softwareFilter == "" {
		return dd.software.Items
	}
	needle := strings.ToLower(dd.softwareFilter)
	out := make([]rmm.SoftwareItem, 0, len(dd.software.Items))
	for _, item := range dd.software.Items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}

// The software cursor indexes the filtered projection, not the fetched
// list: movement wraps within the visible rows and the cursor is clamped
// whenever the filter changes underneath it.
func (dd *deviceDetailState) softwareNext() {
	if n := len(dd.filteredSoftware()); n > 0 {
		dd.software.Cursor = (dd.software.Cursor + 1) % n
	}
}

func (dd *deviceDetailState) softwarePrev() {
	n := len(dd.filteredSoftware())
	if n == 0 {
		return
	}
	if dd.software.Cursor <= 0 {
		dd.software.Cursor = n - 1
		return
	}
	dd.software.Cursor--
}

func (dd *deviceDetailState) clampSoftwareCursor() {
	n := len(dd.filteredSoftware())
	switch {
	case n == 0:
		dd.software.Cursor = state.NoSelection
	case dd.software.Cursor >= n:
		dd.software.Cursor = n - 1
	}
}

// openActivityDetail pushes the activity screen for the selected entry and
// fetches the job result when the entry references a job.
func (m *AppModel) openActivityDetail() tea.Cmd {
	dd := m.deviceDetail
	log, ok := dd.activity.Selected()
	if !ok {
		return nil
	}
	m.activityDetail = &activityDetailState{log: log, deviceUID: dd.device.UID}
	if log.JobUID == "" {
		return nil
	}
	corr := m.slots.Next(slotJobResult(log.JobUID))
	return m.fetchJobResultCmd(corr, log.JobUID, dd.device.UID)
}

func (m *AppModel) handleActivityDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ad := m.activityDetail
	k := m.keys
	switch {
	case keyMatches(msg, k.Back):
		m.navigateBack()
	case keyMatches(msg, k.Reload):
		if ad.log.JobUID != "" {
			corr := m.slots.Next(slotJobResult(ad.log.JobUID))
			return m, m.fetchJobResultCmd(corr, ad.log.JobUID, ad.deviceUID)
		}
	case keyMatches(msg, k.StdOut):
		if ad.log.JobUID != "" {
			ad.showStderr = false
			corr := m.slots.Next(slotJobOutput(ad.log.JobUID))
			return m, m.fetchJobOutputCmd(corr, ad.log.JobUID, ad.deviceUID, false)
		}
	case keyMatches(msg, k.StdErr):
		if ad.log.JobUID != "" {
			ad.showStderr = true
			corr := m.slots.Next(slotJobOutput(ad.log.JobUID))
			return m, m.fetchJobOutputCmd(corr, ad.log.JobUID, ad.deviceUID, true)
		}
	}
	return m, nil
}
