package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"kyber/internal/logging"
	"kyber/internal/rmm"
)

// applyCompletion folds one background completion into the model. It runs
// for every message regardless of the active view: background refreshes
// land even when the user has navigated away. A completion whose ordinal is
// no longer the slot's newest is dropped here, silently, with no other
// effect. The second return value reports whether the message was a
// completion at all.
func (m *AppModel) applyCompletion(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case sitesLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(slotSites, msg.err.Error())
			m.sites.Fail(msg.err.Error())
			return nil, true
		}
		m.sitesPage = msg.page
		m.sitesTotal = msg.resp.PageDetails.TotalCount
		m.sites.Replace(msg.resp.Sites)

		// List replacement discards per-site enrichment; re-request it for
		// the fresh page, plus one incidents refresh for the stat columns.
		m.siteVars = make(map[string][]rmm.SiteVariable)
		cmds := make([]tea.Cmd, 0, len(msg.resp.Sites)+1)
		for _, site := range msg.resp.Sites {
			corr := m.slots.Next(slotSiteVars(site.UID))
			cmds = append(cmds, m.fetchSiteVarsCmd(corr, site.UID))
		}
		cmds = append(cmds, m.reloadIncidents())
		return tea.Batch(cmds...), true

	case siteVarsLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			if m.siteDetail != nil && m.siteDetail.site.UID == msg.siteUID {
				m.siteDetail.vars.Fail(msg.err.Error())
			}
			logging.Error("ui.site_vars", msg.err)
			return nil, true
		}
		m.siteVars[msg.siteUID] = msg.vars
		if m.siteDetail != nil && m.siteDetail.site.UID == msg.siteUID {
			m.siteDetail.vars.Replace(msg.vars)
		}
		return nil, true

	case incidentsLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(slotIncidents, msg.err.Error())
			return nil, true
		}
		m.incidentStats = BuildIncidentStats(msg.incidents)
		return nil, true

	case devicesLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		sd := m.siteDetail
		if sd == nil || sd.site.UID != msg.siteUID {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			sd.devices.Fail(msg.err.Error())
			return nil, true
		}
		sd.devicesPage = msg.page
		sd.devicesTotal = msg.resp.PageDetails.TotalCount
		sd.devices.Replace(msg.resp.Devices)
		return nil, true

	case siteAlertsLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		sd := m.siteDetail
		if sd == nil || sd.site.UID != msg.siteUID {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			sd.alerts.Fail(msg.err.Error())
			return nil, true
		}
		sd.alerts.Replace(msg.alerts)
		return nil, true

	case searchResultsMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		search, open := m.modal.(*SearchModal)
		if !open {
			// Search results belong to the modal; if it closed, the
			// completion has nowhere to land.
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(slotSearch, msg.err.Error())
			search.SetError(msg.err.Error())
			return nil, true
		}
		search.SetResults(msg.devices)
		return nil, true

	case siteRefreshedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			logging.Error("ui.site_refresh", msg.err)
			return nil, true
		}
		// An outstanding optimistic write owns the site until it resolves;
		// a background refresh must not clobber the unconfirmed value.
		if _, outstanding := m.pendingEdits[slotSiteUpdate(msg.siteUID)]; outstanding {
			return nil, true
		}
		if msg.site != nil {
			m.applySiteEverywhere(*msg.site)
		}
		return nil, true

	case siteUpdatedMsg:
		return m.applySiteUpdated(msg), true

	case variableSavedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			m.status = "variable save failed: " + msg.err.Error()
			return nil, true
		}
		m.status = ""
		// Variables are replaced wholesale, so refresh the site's list
		// rather than splicing the echo into it.
		corr := m.slots.Next(slotSiteVars(msg.siteUID))
		return m.fetchSiteVarsCmd(corr, msg.siteUID), true

	case udfSavedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			m.status = "UDF save failed: " + msg.err.Error()
			return nil, true
		}
		m.status = ""
		dd := m.deviceDetail
		if dd != nil && dd.device.UID == msg.deviceUID {
			if dd.device.UDF == nil {
				dd.device.UDF = make(map[string]any)
			}
			dd.device.UDF[udfName(msg.slot)] = msg.value
		}
		return nil, true

	case deviceAlertsLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		dd := m.deviceDetail
		if dd == nil || dd.device.UID != msg.deviceUID {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			dd.alerts.Fail(msg.err.Error())
			return nil, true
		}
		dd.alerts.Replace(msg.alerts)
		return nil, true

	case softwareLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		dd := m.deviceDetail
		if dd == nil || dd.device.UID != msg.deviceUID {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			dd.software.Fail(msg.err.Error())
			return nil, true
		}
		dd.software.Replace(msg.software)
		return nil, true

	case activityLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		dd := m.deviceDetail
		if dd == nil || dd.device.UID != msg.deviceUID {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			dd.activity.Fail(msg.err.Error())
			return nil, true
		}
		dd.activity.Replace(msg.resp.Activities)
		return nil, true

	case avAgentsLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			return nil, true
		}
		dd := m.deviceDetail
		if dd == nil || dd.device.UID != msg.deviceUID {
			return nil, true
		}
		dd.security.avAgents = msg.agents
		if len(msg.agents) == 0 {
			return nil, true
		}
		// Alerts hang off the matched agent, so they can only be requested
		// once one is known.
		corr := m.slots.Next(slotAVAlerts(msg.deviceUID))
		return m.fetchAVAlertsCmd(corr, msg.deviceUID, msg.agents[0].ID), true

	case avAlertsLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			return nil, true
		}
		if dd := m.deviceDetail; dd != nil && dd.device.UID == msg.deviceUID {
			dd.security.avAlerts = msg.alerts
		}
		return nil, true

	case edrEndpointsLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			return nil, true
		}
		if dd := m.deviceDetail; dd != nil && dd.device.UID == msg.deviceUID {
			dd.security.edrEndpoints = msg.endpoints
		}
		return nil, true

	case socAgentsLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			return nil, true
		}
		if dd := m.deviceDetail; dd != nil && dd.device.UID == msg.deviceUID {
			dd.security.socAgents = msg.agents
		}
		return nil, true

	case componentsLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		wizard, open := m.modal.(*WizardModal)
		if !open {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(slotComponents, msg.err.Error())
			wizard.SetLoadError(msg.err.Error())
			return nil, true
		}
		wizard.SetComponents(msg.components)
		return nil, true

	case jobLaunchedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
		}
		if wizard, open := m.modal.(*WizardModal); open {
			wizard.SetLaunchResult(msg.jobUID, msg.err)
		} else if msg.err != nil {
			m.status = "job launch failed: " + msg.err.Error()
		}
		return nil, true

	case jobResultLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		ad := m.activityDetail
		if ad == nil || ad.log.JobUID != msg.jobUID {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			return nil, true
		}
		ad.result = msg.result
		return nil, true

	case jobOutputLoadedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		ad := m.activityDetail
		if ad == nil || ad.log.JobUID != msg.jobUID {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			return nil, true
		}
		text := joinJobOutput(msg.output)
		if msg.stderr {
			ad.stderr = text
		} else {
			ad.stdout = text
		}
		return nil, true

	case rebootRequestedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			m.status = "reboot failed: " + msg.err.Error()
			return nil, true
		}
		m.status = "reboot requested"
		return nil, true

	case scanRequestedMsg:
		if !m.slots.Accept(msg.corr) {
			return nil, true
		}
		if msg.err != nil {
			m.slots.Fail(msg.corr.Key, msg.err.Error())
			m.status = "scan failed: " + msg.err.Error()
			return nil, true
		}
		m.status = "scan requested"
		return nil, true
	}
	return nil, false
}

// applySiteUpdated finishes a site write. Success with a pending optimistic
// edit just discards the snapshot: the value on screen is already the value
// the user chose, and re-applying the server echo would be a no-op at best.
// Failure rolls the snapshot back into every place the site appears and
// surfaces the error in the top-level status area.
func (m *AppModel) applySiteUpdated(msg siteUpdatedMsg) tea.Cmd {
	if !m.slots.Accept(msg.corr) {
		return nil
	}
	key := slotSiteUpdate(msg.siteUID)
	// Accept guarantees this is the slot's newest dispatch, so any parked
	// snapshot is either this write's own or one a newer write superseded.
	// Both are spent: a superseded write can never complete, and rolling
	// back to its snapshot would revert the edit that replaced it.
	entry, pending := m.pendingEdits[key]
	delete(m.pendingEdits, key)
	optimistic := pending && entry.ordinal == msg.corr.Ordinal

	if msg.err != nil {
		m.slots.Fail(key, msg.err.Error())
		if optimistic {
			m.applySiteEverywhere(entry.snapshot)
		}
		m.status = "site update failed: " + msg.err.Error()
		return nil
	}

	m.status = ""
	if !optimistic && msg.site != nil {
		m.applySiteEverywhere(*msg.site)
	}
	return nil
}

// applyModalRequest turns a modal submission into the corresponding write
// dispatch. The modal closes here; the write's outcome arrives later as a
// completion.
func (m *AppModel) applyModalRequest(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case searchSelectedMsg:
		m.modal = nil
		return m.showDevice(msg.device), true

	case siteFieldEditedMsg:
		m.modal = nil
		site, ok := m.findSite(msg.siteUID)
		if !ok {
			return nil, true
		}
		switch msg.field {
		case "name":
			site.Name = msg.value
		case "description":
			site.Description = msg.value
		case "notes":
			site.Notes = msg.value
		}
		corr := m.slots.Next(slotSiteUpdate(msg.siteUID))
		return m.updateSiteCmd(corr, msg.siteUID, updateRequestFrom(site)), true

	case variableSubmittedMsg:
		m.modal = nil
		corr := m.slots.Next(slotVarSave(msg.siteUID))
		if msg.create {
			return m.createVariableCmd(corr, msg.siteUID, rmm.CreateVariableRequest{
				Name:  msg.name,
				Value: msg.value,
			}), true
		}
		return m.updateVariableCmd(corr, msg.siteUID, msg.variableID, rmm.UpdateVariableRequest{
			Name:  msg.name,
			Value: msg.value,
		}), true

	case udfSubmittedMsg:
		m.modal = nil
		corr := m.slots.Next(slotUDFSave(msg.deviceUID))
		return m.setUDFCmd(corr, msg.deviceUID, msg.slot, msg.value), true

	case rebootConfirmedMsg:
		m.modal = nil
		corr := m.slots.Next(slotReboot(msg.deviceUID))
		return m.rebootDeviceCmd(corr, msg.deviceUID), true

	case scanConfirmedMsg:
		m.modal = nil
		corr := m.slots.Next(slotScan(msg.agentID))
		return m.scanAgentCmd(corr, msg.agentID), true

	case runWizardJobMsg:
		// The wizard stays open; its result step consumes the completion.
		corr := m.slots.Next(slotJobRun(msg.deviceUID))
		return m.runQuickJobCmd(corr, msg.deviceUID, msg.request), true
	}
	return nil, false
}

// findSite locates a site by uid, preferring the open detail copy since it
// may carry fresher edits than the list page.
func (m *AppModel) findSite(siteUID string) (rmm.Site, bool) {
	if m.siteDetail != nil && m.siteDetail.site.UID == siteUID {
		return m.siteDetail.site, true
	}
	for _, s := range m.sites.Items {
		if s.UID == siteUID {
			return s, true
		}
	}
	return rmm.Site{}, false
}

func udfName(slot int) string {
	return fmt.Sprintf("udf%d", slot)
}

// joinJobOutput flattens per-component captured output into one block, with
// a component header when more than one contributed.
func joinJobOutput(output []rmm.JobStdOutput) string {
	if len(output) == 1 && output[0].ComponentName == "" {
		return output[0].StdData
	}
	var b strings.Builder
	for i, out := range output {
		if i > 0 {
			b.WriteString("\n")
		}
		if out.ComponentName != "" {
			b.WriteString("[" + out.ComponentName + "]\n")
		}
		b.WriteString(out.StdData)
	}
	return b.String()
}
