package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyber/internal/rmm"
	"kyber/internal/ui/state"
)

func newTestModel() *AppModel {
	return NewAppModel(Backends{RMM: &rmm.Client{}})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// deliver runs one message through Update and, when the returned command is
// a plain message constructor (modal submits, dismiss), feeds that message
// back in the way the runtime would.
func deliver(t *testing.T, m *AppModel, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return
	}
	if next := cmd(); next != nil {
		switch next.(type) {
		case dismissModalMsg, searchSelectedMsg, siteFieldEditedMsg,
			variableSubmittedMsg, udfSubmittedMsg,
			rebootConfirmedMsg, scanConfirmedMsg:
			m.Update(next)
		}
	}
}

func loadSites(m *AppModel, sites ...rmm.Site) {
	m.reloadSites()
	m.Update(sitesLoadedMsg{
		corr: state.Correlation{Key: slotSites, Ordinal: 1},
		resp: &rmm.SitesResponse{
			PageDetails: rmm.PageDetails{TotalCount: len(sites)},
			Sites:       sites,
		},
	})
}

func TestSiteListNavigationWraps(t *testing.T) {
	m := newTestModel()
	loadSites(m,
		rmm.Site{UID: "a", Name: "Alpha"},
		rmm.Site{UID: "m", Name: "Mid"},
		rmm.Site{UID: "z", Name: "Zeta"},
	)
	require.Equal(t, 0, m.sites.Cursor)

	m.Update(keyRune('k'))
	assert.Equal(t, 2, m.sites.Cursor, "up from the top wraps to the bottom")

	m.Update(keyRune('j'))
	assert.Equal(t, 0, m.sites.Cursor, "down from the bottom wraps to the top")

	m.Update(keyRune('j'))
	m.Update(keyRune('j'))
	assert.Equal(t, 2, m.sites.Cursor)
}

func TestStaleSitesCompletionIsDropped(t *testing.T) {
	m := newTestModel()
	m.reloadSites()
	m.reloadSites()

	m.Update(sitesLoadedMsg{
		corr: state.Correlation{Key: slotSites, Ordinal: 1},
		resp: &rmm.SitesResponse{Sites: []rmm.Site{{UID: "stale", Name: "Stale"}}},
	})
	assert.Equal(t, 0, m.sites.Len(), "completion from the first dispatch must not land")
	assert.True(t, m.slots.Loading(slotSites), "second dispatch is still outstanding")

	m.Update(sitesLoadedMsg{
		corr: state.Correlation{Key: slotSites, Ordinal: 2},
		resp: &rmm.SitesResponse{Sites: []rmm.Site{{UID: "fresh", Name: "Fresh"}}},
	})
	require.Equal(t, 1, m.sites.Len())
	assert.Equal(t, "fresh", m.sites.Items[0].UID)
}

func TestStaleErrorCompletionHasNoEffect(t *testing.T) {
	m := newTestModel()
	m.reloadSites()
	m.Update(sitesLoadedMsg{
		corr: state.Correlation{Key: slotSites, Ordinal: 1},
		resp: &rmm.SitesResponse{Sites: []rmm.Site{{UID: "a", Name: "Alpha"}}},
	})

	m.reloadSites()
	m.Update(sitesLoadedMsg{
		corr: state.Correlation{Key: slotSites, Ordinal: 1},
		err:  errors.New("boom"),
	})
	assert.Empty(t, m.sites.Err, "stale failure must not surface")
	assert.Equal(t, 1, m.sites.Len())
}

func openDetailForSite(t *testing.T, m *AppModel, site rmm.Site) {
	t.Helper()
	loadSites(m, site)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.siteDetail)
	require.Equal(t, ViewSiteDetail, m.CurrentView())
}

func TestOptimisticToggleRollsBackOnFailure(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme", OnDemand: false})

	cmd := m.toggleSiteSetting("onDemand")
	require.NotNil(t, cmd)
	assert.True(t, m.siteDetail.site.OnDemand, "flip lands before the write completes")
	assert.True(t, m.sites.Items[0].OnDemand, "list copy flips too")

	key := slotSiteUpdate("s1")
	m.Update(siteUpdatedMsg{
		corr:    state.Correlation{Key: key, Ordinal: 1},
		siteUID: "s1",
		err:     errors.New("503 from backend"),
	})

	assert.False(t, m.siteDetail.site.OnDemand, "rollback to the snapshot")
	assert.False(t, m.sites.Items[0].OnDemand)
	assert.Contains(t, m.status, "503")
	assert.Empty(t, m.pendingEdits)
}

func TestOptimisticToggleRetainedOnSuccess(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme"})

	require.NotNil(t, m.toggleSiteSetting("onDemand"))
	key := slotSiteUpdate("s1")

	// The server echo intentionally disagrees; the optimistic value wins.
	echo := rmm.Site{UID: "s1", Name: "Acme", OnDemand: false}
	m.Update(siteUpdatedMsg{
		corr:    state.Correlation{Key: key, Ordinal: 1},
		siteUID: "s1",
		site:    &echo,
	})

	assert.True(t, m.siteDetail.site.OnDemand)
	assert.Empty(t, m.pendingEdits)
	assert.Empty(t, m.status)
}

func TestSecondToggleRefusedWhileWriteOutstanding(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme"})

	require.NotNil(t, m.toggleSiteSetting("onDemand"))
	assert.Nil(t, m.toggleSiteSetting("onDemand"), "second write must wait")
	assert.True(t, m.siteDetail.site.OnDemand, "refused toggle does not flip again")
}

func TestTextEditSuccessAppliesServerEcho(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme"})

	deliver(t, m, siteFieldEditedMsg{siteUID: "s1", field: "name", value: "Acme Renamed"})

	echo := rmm.Site{UID: "s1", Name: "Acme Renamed (server)"}
	m.Update(siteUpdatedMsg{
		corr:    state.Correlation{Key: slotSiteUpdate("s1"), Ordinal: 1},
		siteUID: "s1",
		site:    &echo,
	})
	assert.Equal(t, "Acme Renamed (server)", m.siteDetail.site.Name)
	assert.Equal(t, "Acme Renamed (server)", m.sites.Items[0].Name)
}

func TestSupersededToggleSnapshotIsDiscarded(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme", OnDemand: false})

	require.NotNil(t, m.toggleSiteSetting("onDemand"))
	// A rename dispatched on the same write slot supersedes the toggle.
	deliver(t, m, siteFieldEditedMsg{siteUID: "s1", field: "name", value: "Acme 2"})

	key := slotSiteUpdate("s1")
	m.Update(siteUpdatedMsg{
		corr:    state.Correlation{Key: key, Ordinal: 1},
		siteUID: "s1",
		err:     errors.New("timeout"),
	})
	assert.True(t, m.siteDetail.site.OnDemand, "stale completion must not roll back")
	assert.Empty(t, m.status)

	// The rename failing must not revert the unrelated toggle either.
	m.Update(siteUpdatedMsg{
		corr:    state.Correlation{Key: key, Ordinal: 2},
		siteUID: "s1",
		err:     errors.New("503 from backend"),
	})
	assert.True(t, m.siteDetail.site.OnDemand)
	assert.True(t, m.sites.Items[0].OnDemand)
	assert.Empty(t, m.pendingEdits)
	assert.Contains(t, m.status, "503")
}

func TestTextEditAfterToggleStillAppliesServerEcho(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme"})

	require.NotNil(t, m.toggleSiteSetting("onDemand"))
	deliver(t, m, siteFieldEditedMsg{siteUID: "s1", field: "name", value: "Acme 2"})

	echo := rmm.Site{UID: "s1", Name: "Acme 2 (server)", OnDemand: true}
	m.Update(siteUpdatedMsg{
		corr:    state.Correlation{Key: slotSiteUpdate("s1"), Ordinal: 2},
		siteUID: "s1",
		site:    &echo,
	})
	assert.Equal(t, "Acme 2 (server)", m.siteDetail.site.Name, "leftover toggle snapshot must not eat the echo")
	assert.Empty(t, m.pendingEdits)
}

func TestSingleModalAndEscPopsOneLayer(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme"})

	require.True(t, m.openModal(NewSearchModal(time.Now())))
	assert.False(t, m.openModal(NewConfirmModal("x", "y", nil)), "one modal at a time")
	_, isSearch := m.modal.(*SearchModal)
	assert.True(t, isSearch, "rejected open leaves the first modal untouched")

	deliver(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.modal, "esc closes the modal layer")
	assert.Equal(t, ViewSiteDetail, m.CurrentView(), "underlying screen survives")

	deliver(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewSiteList, m.CurrentView(), "next esc pops the detail")
}

func TestDebounceDispatchesThroughTicks(t *testing.T) {
	base := time.Now()
	now := base
	orig := timeNow
	timeNow = func() time.Time { return now }
	defer func() { timeNow = orig }()

	m := newTestModel()
	m.Update(keyRune('/'))
	search, ok := m.modal.(*SearchModal)
	require.True(t, ok)

	type_ := func(r rune, at time.Duration) {
		now = base.Add(at)
		m.Update(keyRune(r))
	}
	type_('s', 0)
	type_('r', 100*time.Millisecond)
	type_('v', 150*time.Millisecond)

	// Quiet period not yet elapsed: ticks stay silent.
	now = base.Add(400 * time.Millisecond)
	assert.Nil(t, m.handleTick())

	now = base.Add(700 * time.Millisecond)
	cmd := m.handleTick()
	require.NotNil(t, cmd, "500ms of quiet fires exactly one dispatch")
	assert.Equal(t, "srv", search.lastDispatched)

	// Buffer unchanged: later ticks dispatch nothing.
	now = base.Add(2 * time.Second)
	assert.Nil(t, m.handleTick())
}

func TestSearchBelowMinLengthNeverDispatches(t *testing.T) {
	base := time.Now()
	now := base
	orig := timeNow
	timeNow = func() time.Time { return now }
	defer func() { timeNow = orig }()

	m := newTestModel()
	m.Update(keyRune('/'))
	m.Update(keyRune('s'))

	now = base.Add(5 * time.Second)
	assert.Nil(t, m.handleTick())
}

func TestSearchResultsLandOnlyInOpenModal(t *testing.T) {
	m := newTestModel()
	m.Update(keyRune('/'))
	corr := m.slots.Next(slotSearch)

	// Modal closed before the completion arrives.
	m.Update(dismissModalMsg{})
	m.Update(searchResultsMsg{corr: corr, query: "srv", devices: []rmm.Device{{UID: "d1"}}})
	assert.Nil(t, m.modal)
}

func TestSearchSelectOpensDeviceFromAnywhere(t *testing.T) {
	m := newTestModel()
	m.Update(keyRune('/'))
	require.NotNil(t, m.modal)

	deliver(t, m, searchSelectedMsg{device: rmm.Device{UID: "d1", Hostname: "srv01"}})
	assert.Nil(t, m.modal)
	require.NotNil(t, m.deviceDetail)
	assert.Equal(t, ViewDeviceDetail, m.CurrentView())
	assert.Equal(t, "srv01", m.deviceDetail.device.Hostname)
}

func TestVariableSaveSuccessRefetchesSiteVars(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme"})

	m.Update(variableSubmittedMsg{siteUID: "s1", create: true, name: "tuiColor", value: "red"})
	corr := state.Correlation{Key: slotVarSave("s1"), Ordinal: 1}

	_, cmd := m.Update(variableSavedMsg{corr: corr, siteUID: "s1", created: true})
	assert.NotNil(t, cmd, "success triggers a variables refetch")
	assert.True(t, m.slots.Loading(slotSiteVars("s1")))
}

func TestUDFSaveSuccessUpdatesDeviceInPlace(t *testing.T) {
	m := newTestModel()
	m.deviceDetail = &deviceDetailState{device: rmm.Device{
		UID: "d1",
		UDF: map[string]any{"udf1": "old"},
	}}

	m.Update(udfSubmittedMsg{deviceUID: "d1", slot: 1, value: "new"})
	m.Update(udfSavedMsg{
		corr:      state.Correlation{Key: slotUDFSave("d1"), Ordinal: 1},
		deviceUID: "d1",
		slot:      1,
		value:     "new",
	})
	assert.Equal(t, "new", m.deviceDetail.device.UDF["udf1"])
}

func TestCompletionForClosedDetailIsIgnored(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme"})
	corr := m.slots.Next(slotDevices("s1"))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, m.siteDetail)

	// Must not panic, must not resurrect the detail.
	m.Update(devicesLoadedMsg{
		corr:    corr,
		siteUID: "s1",
		resp:    &rmm.DevicesResponse{Devices: []rmm.Device{{UID: "d1"}}},
	})
	assert.Nil(t, m.siteDetail)
}

func TestJobResultFailureRendersInline(t *testing.T) {
	m := newTestModel()
	m.activityDetail = &activityDetailState{
		log:       rmm.ActivityLog{JobUID: "job-1"},
		deviceUID: "d1",
	}
	corr := m.slots.Next(slotJobResult("job-1"))
	m.Update(jobResultLoadedMsg{corr: corr, jobUID: "job-1", err: errors.New("503 from backend")})

	view := m.View()
	assert.Contains(t, view, "503 from backend")
	assert.NotContains(t, view, "loading result")
}

func TestSecurityBackendFailureRendersNote(t *testing.T) {
	m := newTestModel()
	m.deviceDetail = &deviceDetailState{
		device: rmm.Device{UID: "d1", Hostname: "srv01"},
		tab:    DeviceTabSecurity,
	}
	corr := m.slots.Next(slotAV("d1"))
	m.Update(avAgentsLoadedMsg{corr: corr, deviceUID: "d1", err: errNotConfigured("antivirus platform")})

	view := m.View()
	assert.Contains(t, view, "antivirus platform not configured")
	assert.Contains(t, view, "EDR", "one backend failing must not hide the others")
	assert.Contains(t, view, "SOC")
}

func TestIncidentFeedFailureNotedOnSiteList(t *testing.T) {
	m := newTestModel()
	loadSites(m, rmm.Site{UID: "s1", Name: "Acme"})

	corr := m.slots.Next(slotIncidents)
	m.Update(incidentsLoadedMsg{corr: corr, err: errors.New("401 key rejected")})

	view := m.View()
	assert.Contains(t, view, "incidents unavailable")
	assert.Contains(t, view, "Acme", "feed failure must not blank the site rows")
}

func TestSoftwareCursorTracksFilteredRows(t *testing.T) {
	m := newTestModel()
	m.deviceDetail = &deviceDetailState{device: rmm.Device{UID: "d1"}, tab: DeviceTabSoftware}
	m.deviceDetail.software.Replace([]rmm.SoftwareItem{
		{Name: "7-Zip"}, {Name: "Chrome"}, {Name: "Chromium"}, {Name: "Firefox"},
	})

	// Type a filter and leave filter mode; the filter text persists.
	m.Update(keyRune('/'))
	for _, r := range "chr" {
		m.Update(keyRune(r))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.deviceDetail.filteredSoftware(), 2)

	m.Update(keyRune('j'))
	assert.Equal(t, 1, m.deviceDetail.software.Cursor)
	m.Update(keyRune('j'))
	assert.Equal(t, 0, m.deviceDetail.software.Cursor, "wraps within the filtered rows")
	m.Update(keyRune('k'))
	assert.Equal(t, 1, m.deviceDetail.software.Cursor)

	// Narrowing the filter below the cursor clamps it.
	m.Update(keyRune('/'))
	for _, r := range "chrome" {
		m.Update(keyRune(r))
	}
	require.Len(t, m.deviceDetail.filteredSoftware(), 1)
	assert.Equal(t, 0, m.deviceDetail.software.Cursor)
}

func TestSiteDetailReloadRefreshesSiteRecord(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme"})

	m.Update(keyRune('r'))
	assert.True(t, m.slots.Loading(slotSiteGet("s1")))

	fresh := rmm.Site{UID: "s1", Name: "Acme", Notes: "edited in the web console"}
	m.Update(siteRefreshedMsg{
		corr:    state.Correlation{Key: slotSiteGet("s1"), Ordinal: 1},
		siteUID: "s1",
		site:    &fresh,
	})
	assert.Equal(t, "edited in the web console", m.siteDetail.site.Notes)
	assert.Equal(t, "edited in the web console", m.sites.Items[0].Notes)
}

func TestSiteRefreshDefersToOutstandingWrite(t *testing.T) {
	m := newTestModel()
	openDetailForSite(t, m, rmm.Site{UID: "s1", Name: "Acme"})
	require.NotNil(t, m.toggleSiteSetting("onDemand"))

	corr := m.slots.Next(slotSiteGet("s1"))
	stale := rmm.Site{UID: "s1", Name: "Acme", OnDemand: false}
	m.Update(siteRefreshedMsg{corr: corr, siteUID: "s1", site: &stale})
	assert.True(t, m.siteDetail.site.OnDemand, "refresh must not clobber an unconfirmed edit")
}

func TestViewDerivedFromDetailPointers(t *testing.T) {
	m := newTestModel()
	assert.Equal(t, ViewSiteList, m.CurrentView())

	m.siteDetail = &siteDetailState{}
	assert.Equal(t, ViewSiteDetail, m.CurrentView())

	m.deviceDetail = &deviceDetailState{}
	assert.Equal(t, ViewDeviceDetail, m.CurrentView())

	m.activityDetail = &activityDetailState{}
	assert.Equal(t, ViewActivityDetail, m.CurrentView())

	m.navigateBack()
	assert.Equal(t, ViewDeviceDetail, m.CurrentView())
	m.navigateBack()
	assert.Equal(t, ViewSiteDetail, m.CurrentView())
	m.navigateBack()
	assert.Equal(t, ViewSiteList, m.CurrentView())
}
