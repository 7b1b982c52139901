package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"kyber/internal/rmm"
)

// Site settings rows, in render order.
const (
	settingsRowName = iota
	settingsRowDescription
	settingsRowNotes
	settingsRowOnDemand
	settingsRowSplashtop
	settingsRowCount
)

func (m *AppModel) reloadSites() tea.Cmd {
	m.sites.Loading = true
	m.sites.Err = ""
	corr := m.slots.Next(slotSites)
	return m.fetchSitesCmd(corr, m.sitesPage)
}

func (m *AppModel) reloadIncidents() tea.Cmd {
	corr := m.slots.Next(slotIncidents)
	return m.fetchIncidentsCmd(corr)
}

func (m *AppModel) handleSiteListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case keyMatches(msg, k.Quit):
		return m, tea.Quit
	case keyMatches(msg, k.Up):
		m.sites.Prev()
	case keyMatches(msg, k.Down):
		m.sites.Next()
	case keyMatches(msg, k.Select):
		return m, m.openSiteDetail()
	case keyMatches(msg, k.Reload):
		m.status = ""
		return m, tea.Batch(m.reloadSites(), m.reloadIncidents())
	case keyMatches(msg, k.Search):
		m.openModal(NewSearchModal(timeNow()))
	case keyMatches(msg, k.NextPage):
		if (m.sitesPage+1)*sitesPerPage < m.sitesTotal {
			m.sitesPage++
			return m, m.reloadSites()
		}
	case keyMatches(msg, k.PrevPage):
		if m.sitesPage > 0 {
			m.sitesPage--
			return m, m.reloadSites()
		}
	case keyMatches(msg, k.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// openSiteDetail pushes the detail screen for the selected site and
// dispatches its sub-resource fetches, each on its own slot.
func (m *AppModel) openSiteDetail() tea.Cmd {
	site, ok := m.sites.Selected()
	if !ok {
		return nil
	}
	sd := &siteDetailState{site: site}
	sd.devices.Cursor = -1
	sd.alerts.Cursor = -1
	sd.vars.Cursor = -1
	m.siteDetail = sd

	sd.devices.Loading = true
	return tea.Batch(
		m.fetchDevicesCmd(m.slots.Next(slotDevices(site.UID)), site.UID, 0),
		m.fetchSiteAlertsCmd(m.slots.Next(slotSiteAlerts(site.UID)), site.UID),
		m.fetchSiteVarsCmd(m.slots.Next(slotSiteVars(site.UID)), site.UID),
	)
}

func (m *AppModel) handleSiteDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sd := m.siteDetail
	k := m.keys

	switch {
	case keyMatches(msg, k.Back):
		m.navigateBack()
		return m, nil
	case keyMatches(msg, k.NextTab):
		sd.tab = SiteTab((int(sd.tab) + 1) % len(siteTabNames))
		return m, m.refreshSiteTab()
	case keyMatches(msg, k.PrevTab):
		sd.tab = SiteTab((int(sd.tab) + len(siteTabNames) - 1) % len(siteTabNames))
		return m, m.refreshSiteTab()
	case keyMatches(msg, k.Reload):
		// Reload also refetches the site record itself, so settings
		// changed outside this session catch up.
		corr := m.slots.Next(slotSiteGet(sd.site.UID))
		return m, tea.Batch(m.refreshSiteTab(), m.fetchSiteCmd(corr, sd.site.UID))
	case keyMatches(msg, k.Search):
		m.openModal(NewSearchModal(timeNow()))
		return m, nil
	}

	switch sd.tab {
	case SiteTabDevices:
		switch {
		case keyMatches(msg, k.Up):
			sd.devices.Prev()
		case keyMatches(msg, k.Down):
			sd.devices.Next()
		case keyMatches(msg, k.Select):
			return m, m.openDeviceDetail()
		case keyMatches(msg, k.NextPage):
			if (sd.devicesPage+1)*devicesPerPage < sd.devicesTotal {
				sd.devicesPage++
				sd.devices.Loading = true
				corr := m.slots.Next(slotDevices(sd.site.UID))
				return m, m.fetchDevicesCmd(corr, sd.site.UID, sd.devicesPage)
			}
		case keyMatches(msg, k.PrevPage):
			if sd.devicesPage > 0 {
				sd.devicesPage--
				sd.devices.Loading = true
				corr := m.slots.Next(slotDevices(sd.site.UID))
				return m, m.fetchDevicesCmd(corr, sd.site.UID, sd.devicesPage)
			}
		}
	case SiteTabAlerts:
		switch {
		case keyMatches(msg, k.Up):
			sd.alerts.Prev()
		case keyMatches(msg, k.Down):
			sd.alerts.Next()
		}
	case SiteTabVariables:
		switch {
		case keyMatches(msg, k.Up):
			sd.vars.Prev()
		case keyMatches(msg, k.Down):
			sd.vars.Next()
		case keyMatches(msg, k.Create):
			m.openVariableModal(nil)
		case keyMatches(msg, k.Edit):
			if v, ok := sd.vars.Selected(); ok {
				m.openVariableModal(&v)
			}
		}
	case SiteTabSettings:
		switch {
		case keyMatches(msg, k.Up):
			if sd.settingsCursor > 0 {
				sd.settingsCursor--
			}
		case keyMatches(msg, k.Down):
			if sd.settingsCursor < settingsRowCount-1 {
				sd.settingsCursor++
			}
		case keyMatches(msg, k.Toggle), keyMatches(msg, k.Edit):
			return m, m.activateSettingsRow()
		}
	}
	return m, nil
}

// refreshSiteTab re-dispatches the fetch backing the active site tab.
func (m *AppModel) refreshSiteTab() tea.Cmd {
	sd := m.siteDetail
	switch sd.tab {
	case SiteTabDevices:
		sd.devices.Loading = true
		corr := m.slots.Next(slotDevices(sd.site.UID))
		return m.fetchDevicesCmd(corr, sd.site.UID, sd.devicesPage)
	case SiteTabAlerts:
		sd.alerts.Loading = true
		corr := m.slots.Next(slotSiteAlerts(sd.site.UID))
		return m.fetchSiteAlertsCmd(corr, sd.site.UID)
	case SiteTabVariables:
		sd.vars.Loading = true
		corr := m.slots.Next(slotSiteVars(sd.site.UID))
		return m.fetchSiteVarsCmd(corr, sd.site.UID)
	}
	return nil
}

// activateSettingsRow either opens a text edit modal (name, description,
// notes) or flips a toggle optimistically (on-demand, splashtop).
func (m *AppModel) activateSettingsRow() tea.Cmd {
	sd := m.siteDetail
	site := sd.site
	switch sd.settingsCursor {
	case settingsRowName:
		m.openSiteFieldModal("Name", "name", site.Name)
	case settingsRowDescription:
		m.openSiteFieldModal("Description", "description", site.Description)
	case settingsRowNotes:
		m.openSiteFieldModal("Notes", "notes", site.Notes)
	case settingsRowOnDemand:
		return m.toggleSiteSetting("onDemand")
	case settingsRowSplashtop:
		return m.toggleSiteSetting("splashtopAutoInstall")
	}
	return nil
}

func (m *AppModel) openSiteFieldModal(title, field, current string) {
	siteUID := m.siteDetail.site.UID
	modal := NewInputModal("Edit "+title, []string{title}, []string{current},
		func(values []string) tea.Msg {
			return siteFieldEditedMsg{siteUID: siteUID, field: field, value: values[0]}
		})
	if field != "name" {
		modal.AllowEmpty()
	}
	m.openModal(modal)
}

func (m *AppModel) openVariableModal(existing *rmm.SiteVariable) {
	siteUID := m.siteDetail.site.UID
	if existing == nil {
		m.openModal(NewInputModal("Create variable",
			[]string{"Name", "Value"}, nil,
			func(values []string) tea.Msg {
				return variableSubmittedMsg{siteUID: siteUID, create: true, name: values[0], value: values[1]}
			}))
		return
	}
	id := existing.ID
	m.openModal(NewInputModal("Edit variable",
		[]string{"Name", "Value"}, []string{existing.Name, existing.Value},
		func(values []string) tea.Msg {
			return variableSubmittedMsg{siteUID: siteUID, variableID: id, name: values[0], value: values[1]}
		}))
}

// toggleSiteSetting applies an optimistic edit: the flipped value lands in
// the model before the write is dispatched, and the pre-edit snapshot is
// parked for rollback. A second toggle while one write is outstanding is
// refused so snapshot and wire state cannot diverge.
func (m *AppModel) toggleSiteSetting(field string) tea.Cmd {
	sd := m.siteDetail
	key := slotSiteUpdate(sd.site.UID)
	if _, outstanding := m.pendingEdits[key]; outstanding {
		return nil
	}

	snapshot := sd.site
	switch field {
	case "onDemand":
		sd.site.OnDemand = !sd.site.OnDemand
	case "splashtopAutoInstall":
		sd.site.SplashtopAutoInstall = !sd.site.SplashtopAutoInstall
	default:
		return nil
	}
	corr := m.slots.Next(key)
	m.pendingEdits[key] = pendingEdit{snapshot: snapshot, ordinal: corr.Ordinal}
	m.applySiteEverywhere(sd.site)
	return m.updateSiteCmd(corr, sd.site.UID, updateRequestFrom(sd.site))
}

// applySiteEverywhere writes one site's current value into every place it
// appears: the sites list and the open detail.
func (m *AppModel) applySiteEverywhere(site rmm.Site) {
	for i, s := range m.sites.Items {
		if s.UID == site.UID {
			m.sites.Set(i, site)
			break
		}
	}
	if m.siteDetail != nil && m.siteDetail.site.UID == site.UID {
		m.siteDetail.site = site
	}
}

func updateRequestFrom(site rmm.Site) rmm.UpdateSiteRequest {
	return rmm.UpdateSiteRequest{
		Name:                 site.Name,
		Description:          site.Description,
		Notes:                site.Notes,
		OnDemand:             site.OnDemand,
		SplashtopAutoInstall: site.SplashtopAutoInstall,
	}
}
