package ui

import (
	"context"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kyber/internal/rmm"
	"kyber/internal/ui/state"
)

// tickInterval drives the debounce engine and spinner refresh.
const tickInterval = 250 * time.Millisecond

// sitesPerPage is the server-side page size for the site list.
const sitesPerPage = 50

// devicesPerPage is the server-side page size for a site's device list.
const devicesPerPage = 50

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Commands are the task dispatcher: each runs in its own goroutine under the
// Bubble Tea runtime, holds only the client handle it captured, and posts
// exactly one completion message. No retries, no shared state.

func (m *AppModel) fetchSitesCmd(corr state.Correlation, page int) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		resp, err := client.GetSites(context.Background(), page, sitesPerPage, "")
		if err == nil {
			sort.SliceStable(resp.Sites, func(i, j int) bool {
				return strings.ToLower(resp.Sites[i].Name) < strings.ToLower(resp.Sites[j].Name)
			})
		}
		return sitesLoadedMsg{corr: corr, page: page, resp: resp, err: err}
	}
}

func (m *AppModel) fetchSiteCmd(corr state.Correlation, siteUID string) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		site, err := client.GetSite(context.Background(), siteUID)
		return siteRefreshedMsg{corr: corr, siteUID: siteUID, site: site, err: err}
	}
}

func (m *AppModel) fetchSiteVarsCmd(corr state.Correlation, siteUID string) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		vars, err := client.GetSiteVariables(context.Background(), siteUID)
		return siteVarsLoadedMsg{corr: corr, siteUID: siteUID, vars: vars, err: err}
	}
}

func (m *AppModel) fetchIncidentsCmd(corr state.Correlation) tea.Cmd {
	client := m.backends.SOC
	return func() tea.Msg {
		if client == nil {
			return incidentsLoadedMsg{corr: corr, err: errNotConfigured("incident feed")}
		}
		incidents, err := client.GetIncidents(context.Background())
		return incidentsLoadedMsg{corr: corr, incidents: incidents, err: err}
	}
}

func (m *AppModel) fetchDevicesCmd(corr state.Correlation, siteUID string, page int) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		resp, err := client.GetDevices(context.Background(), siteUID, page, devicesPerPage)
		return devicesLoadedMsg{corr: corr, siteUID: siteUID, page: page, resp: resp, err: err}
	}
}

func (m *AppModel) fetchSiteAlertsCmd(corr state.Correlation, siteUID string) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		resp, err := client.GetSiteOpenAlerts(context.Background(), siteUID, 0, 50)
		if err != nil {
			return siteAlertsLoadedMsg{corr: corr, siteUID: siteUID, err: err}
		}
		return siteAlertsLoadedMsg{corr: corr, siteUID: siteUID, alerts: resp.Alerts}
	}
}

func (m *AppModel) searchDevicesCmd(corr state.Correlation, query string) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		resp, err := client.SearchDevices(context.Background(), query)
		if err != nil {
			return searchResultsMsg{corr: corr, query: query, err: err}
		}
		return searchResultsMsg{corr: corr, query: query, devices: resp.Devices}
	}
}

func (m *AppModel) updateSiteCmd(corr state.Correlation, siteUID string, req rmm.UpdateSiteRequest) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		site, err := client.UpdateSite(context.Background(), siteUID, req)
		return siteUpdatedMsg{corr: corr, siteUID: siteUID, site: site, err: err}
	}
}

func (m *AppModel) createVariableCmd(corr state.Correlation, siteUID string, req rmm.CreateVariableRequest) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		v, err := client.CreateSiteVariable(context.Background(), siteUID, req)
		return variableSavedMsg{corr: corr, siteUID: siteUID, variable: v, created: true, err: err}
	}
}

func (m *AppModel) updateVariableCmd(corr state.Correlation, siteUID string, variableID int, req rmm.UpdateVariableRequest) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		v, err := client.UpdateSiteVariable(context.Background(), siteUID, variableID, req)
		return variableSavedMsg{corr: corr, siteUID: siteUID, variable: v, err: err}
	}
}

func (m *AppModel) setUDFCmd(corr state.Correlation, deviceUID string, slot int, value string) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		err := client.SetDeviceUDF(context.Background(), deviceUID, slot, value)
		return udfSavedMsg{corr: corr, deviceUID: deviceUID, slot: slot, value: value, err: err}
	}
}

func (m *AppModel) fetchDeviceAlertsCmd(corr state.Correlation, deviceUID string) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		alerts, err := client.GetDeviceOpenAlerts(context.Background(), deviceUID)
		return deviceAlertsLoadedMsg{corr: corr, deviceUID: deviceUID, alerts: alerts, err: err}
	}
}

func (m *AppModel) fetchSoftwareCmd(corr state.Correlation, deviceUID string) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		software, err := client.GetDeviceSoftware(context.Background(), deviceUID)
		if err == nil {
			sort.SliceStable(software, func(i, j int) bool {
				return strings.ToLower(software[i].Name) < strings.ToLower(software[j].Name)
			})
		}
		return softwareLoadedMsg{corr: corr, deviceUID: deviceUID, software: software, err: err}
	}
}

func (m *AppModel) fetchActivityCmd(corr state.Correlation, device rmm.Device) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		resp, err := client.GetActivityLogs(context.Background(), rmm.ActivityQuery{
			Size:    100,
			Order:   "desc",
			SiteIDs: []int{device.SiteID},
		})
		if err != nil {
			return activityLoadedMsg{corr: corr, deviceUID: device.UID, err: err}
		}
		// The feed is site-scoped; narrow it to this device here so the
		// reducer applies a ready-to-render payload.
		filtered := resp.Activities[:0:0]
		for _, a := range resp.Activities {
			if a.DeviceUID == "" || a.DeviceUID == device.UID {
				filtered = append(filtered, a)
			}
		}
		resp.Activities = filtered
		return activityLoadedMsg{corr: corr, deviceUID: device.UID, resp: resp}
	}
}

func (m *AppModel) fetchAVAgentsCmd(corr state.Correlation, deviceUID, hostname string) tea.Cmd {
	client := m.backends.AV
	return func() tea.Msg {
		if client == nil {
			return avAgentsLoadedMsg{corr: corr, deviceUID: deviceUID, err: errNotConfigured("antivirus platform")}
		}
		agents, err := client.GetAgentDetails(context.Background(), hostname)
		return avAgentsLoadedMsg{corr: corr, deviceUID: deviceUID, agents: agents, err: err}
	}
}

func (m *AppModel) fetchAVAlertsCmd(corr state.Correlation, deviceUID, agentID string) tea.Cmd {
	client := m.backends.AV
	return func() tea.Msg {
		if client == nil {
			return avAlertsLoadedMsg{corr: corr, deviceUID: deviceUID, err: errNotConfigured("antivirus platform")}
		}
		alerts, err := client.GetAgentAlerts(context.Background(), agentID)
		return avAlertsLoadedMsg{corr: corr, deviceUID: deviceUID, alerts: alerts, err: err}
	}
}

func (m *AppModel) fetchEDREndpointsCmd(corr state.Correlation, deviceUID, hostname string) tea.Cmd {
	client := m.backends.EDR
	return func() tea.Msg {
		if client == nil || !client.Ready() {
			return edrEndpointsLoadedMsg{corr: corr, deviceUID: deviceUID, err: errNotConfigured("EDR platform")}
		}
		endpoints, err := client.GetEndpoints(context.Background(), hostname)
		return edrEndpointsLoadedMsg{corr: corr, deviceUID: deviceUID, endpoints: endpoints, err: err}
	}
}

func (m *AppModel) fetchSOCAgentsCmd(corr state.Correlation, deviceUID, hostname string) tea.Cmd {
	client := m.backends.SOC
	return func() tea.Msg {
		if client == nil {
			return socAgentsLoadedMsg{corr: corr, deviceUID: deviceUID, err: errNotConfigured("incident feed")}
		}
		agents, err := client.GetAgents(context.Background(), hostname)
		return socAgentsLoadedMsg{corr: corr, deviceUID: deviceUID, agents: agents, err: err}
	}
}

func (m *AppModel) fetchComponentsCmd(corr state.Correlation) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		resp, err := client.GetComponents(context.Background(), 0)
		if err != nil {
			return componentsLoadedMsg{corr: corr, err: err}
		}
		sort.SliceStable(resp.Components, func(i, j int) bool {
			return strings.ToLower(resp.Components[i].Name) < strings.ToLower(resp.Components[j].Name)
		})
		return componentsLoadedMsg{corr: corr, components: resp.Components}
	}
}

func (m *AppModel) runQuickJobCmd(corr state.Correlation, deviceUID string, req rmm.QuickJobRequest) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		resp, err := client.RunQuickJob(context.Background(), deviceUID, req)
		if err != nil {
			return jobLaunchedMsg{corr: corr, deviceUID: deviceUID, err: err}
		}
		return jobLaunchedMsg{corr: corr, deviceUID: deviceUID, jobUID: resp.ID()}
	}
}

func (m *AppModel) fetchJobResultCmd(corr state.Correlation, jobUID, deviceUID string) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		result, err := client.GetJobResult(context.Background(), jobUID, deviceUID)
		return jobResultLoadedMsg{corr: corr, jobUID: jobUID, result: result, err: err}
	}
}

func (m *AppModel) fetchJobOutputCmd(corr state.Correlation, jobUID, deviceUID string, stderr bool) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		var output []rmm.JobStdOutput
		var err error
		if stderr {
			output, err = client.GetJobStdErr(context.Background(), jobUID, deviceUID)
		} else {
			output, err = client.GetJobStdOut(context.Background(), jobUID, deviceUID)
		}
		return jobOutputLoadedMsg{corr: corr, jobUID: jobUID, stderr: stderr, output: output, err: err}
	}
}

func (m *AppModel) rebootDeviceCmd(corr state.Correlation, deviceUID string) tea.Cmd {
	client := m.backends.RMM
	return func() tea.Msg {
		err := client.RebootDevice(context.Background(), deviceUID)
		return rebootRequestedMsg{corr: corr, deviceUID: deviceUID, err: err}
	}
}

func (m *AppModel) scanAgentCmd(corr state.Correlation, agentID string) tea.Cmd {
	client := m.backends.AV
	return func() tea.Msg {
		if client == nil {
			return scanRequestedMsg{corr: corr, agentID: agentID, err: errNotConfigured("antivirus platform")}
		}
		err := client.ScanAgent(context.Background(), agentID)
		return scanRequestedMsg{corr: corr, agentID: agentID, err: err}
	}
}
