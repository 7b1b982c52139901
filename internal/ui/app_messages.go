package ui

import (
	"time"

	"kyber/internal/av"
	"kyber/internal/edr"
	"kyber/internal/rmm"
	"kyber/internal/soc"
	"kyber/internal/ui/state"
)

// tickMsg is the 250ms heartbeat. It is the only clock the debounce engine
// sees and is always rescheduled.
type tickMsg time.Time

// dismissModalMsg closes the active modal without applying anything.
type dismissModalMsg struct{}

// Completion messages. Every dispatched command produces exactly one of
// these, success or failure, tagged with the correlation it answers. The
// state machine drops any completion whose ordinal is stale.

type sitesLoadedMsg struct {
	corr state.Correlation
	page int
	resp *rmm.SitesResponse
	err  error
}

type siteVarsLoadedMsg struct {
	corr    state.Correlation
	siteUID string
	vars    []rmm.SiteVariable
	err     error
}

type incidentsLoadedMsg struct {
	corr      state.Correlation
	incidents []soc.Incident
	err       error
}

type devicesLoadedMsg struct {
	corr    state.Correlation
	siteUID string
	page    int
	resp    *rmm.DevicesResponse
	err     error
}

type siteAlertsLoadedMsg struct {
	corr    state.Correlation
	siteUID string
	alerts  []rmm.Alert
	err     error
}

type searchResultsMsg struct {
	corr    state.Correlation
	query   string
	devices []rmm.Device
	err     error
}

type siteRefreshedMsg struct {
	corr    state.Correlation
	siteUID string
	site    *rmm.Site
	err     error
}

type siteUpdatedMsg struct {
	corr    state.Correlation
	siteUID string
	site    *rmm.Site
	err     error
}

type variableSavedMsg struct {
	corr     state.Correlation
	siteUID  string
	variable *rmm.SiteVariable
	created  bool
	err      error
}

type udfSavedMsg struct {
	corr      state.Correlation
	deviceUID string
	slot      int
	value     string
	err       error
}

type deviceAlertsLoadedMsg struct {
	corr      state.Correlation
	deviceUID string
	alerts    []rmm.Alert
	err       error
}

type softwareLoadedMsg struct {
	corr      state.Correlation
	deviceUID string
	software  []rmm.SoftwareItem
	err       error
}

type activityLoadedMsg struct {
	corr      state.Correlation
	deviceUID string
	resp      *rmm.ActivityLogsResponse
	err       error
}

type avAgentsLoadedMsg struct {
	corr      state.Correlation
	deviceUID string
	agents    []av.AgentDetail
	err       error
}

type avAlertsLoadedMsg struct {
	corr      state.Correlation
	deviceUID string
	alerts    []av.Alert
	err       error
}

type edrEndpointsLoadedMsg struct {
	corr      state.Correlation
	deviceUID string
	endpoints []edr.Endpoint
	err       error
}

type socAgentsLoadedMsg struct {
	corr      state.Correlation
	deviceUID string
	agents    []soc.Agent
	err       error
}

type componentsLoadedMsg struct {
	corr       state.Correlation
	components []rmm.Component
	err        error
}

type jobLaunchedMsg struct {
	corr      state.Correlation
	deviceUID string
	jobUID    string
	err       error
}

type jobResultLoadedMsg struct {
	corr   state.Correlation
	jobUID string
	result *rmm.JobResult
	err    error
}

type jobOutputLoadedMsg struct {
	corr   state.Correlation
	jobUID string
	stderr bool
	output []rmm.JobStdOutput
	err    error
}

// Modal requests. Modals never touch application state; submitting one
// produces a request message the state machine turns into a dispatch.

type siteFieldEditedMsg struct {
	siteUID string
	field   string
	value   string
}

type variableSubmittedMsg struct {
	siteUID    string
	variableID int
	create     bool
	name       string
	value      string
}

type udfSubmittedMsg struct {
	deviceUID string
	slot      int
	value     string
}

type rebootConfirmedMsg struct {
	deviceUID string
}

type scanConfirmedMsg struct {
	agentID string
}

type rebootRequestedMsg struct {
	corr      state.Correlation
	deviceUID string
	err       error
}

type scanRequestedMsg struct {
	corr    state.Correlation
	agentID string
	err     error
}
