package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"kyber/internal/av"
	"kyber/internal/edr"
	"kyber/internal/rmm"
	"kyber/internal/soc"
	"kyber/internal/ui/state"
)

// Backends bundles the backend clients the dispatcher draws on. RMM is
// required; the others may be nil, in which case their slots report "not
// configured" instead of fetching.
type Backends struct {
	RMM *rmm.Client
	SOC *soc.Client
	AV  *av.Client
	EDR *edr.Client
}

func errNotConfigured(name string) error {
	return fmt.Errorf("%s not configured", name)
}

// pendingEdit parks the pre-edit snapshot of an optimistic write together
// with the dispatch ordinal whose completion must resolve it. A completion
// carrying a different ordinal belongs to a different write.
type pendingEdit struct {
	snapshot rmm.Site
	ordinal  uint64
}

// siteDetailState is the SiteDetail screen: one site and its tabbed panes.
type siteDetailState struct {
	site           rmm.Site
	tab            SiteTab
	devices        state.List[rmm.Device]
	devicesPage    int
	devicesTotal   int
	alerts         state.List[rmm.Alert]
	vars           state.List[rmm.SiteVariable]
	settingsCursor int
}

// securityPane aggregates the three security backends for one device, each
// with its own slot so one failure never blanks the others.
type securityPane struct {
	avAgents     []av.AgentDetail
	avAlerts     []av.Alert
	edrEndpoints []edr.Endpoint
	socAgents    []soc.Agent
}

// deviceDetailState is the DeviceDetail screen.
type deviceDetailState struct {
	device            rmm.Device
	tab               DeviceTab
	udfCursor         int
	alerts            state.List[rmm.Alert]
	software          state.List[rmm.SoftwareItem]
	softwareFilter    string
	softwareFiltering bool
	activity          state.List[rmm.ActivityLog]
	security          securityPane
}

// activityDetailState is the ActivityDetail screen: one job's outcome plus
// on-demand captured output.
type activityDetailState struct {
	log        rmm.ActivityLog
	deviceUID  string
	result     *rmm.JobResult
	stdout     string
	stderr     string
	showStderr bool
}

// AppModel is the application state machine. It is the single writer of
// every field here; Update processes one message to completion before the
// next is considered, so no locks are needed anywhere in this package.
type AppModel struct {
	backends Backends
	keys     KeyMap
	help     help.Model
	showHelp bool
	spin     spinner.Model

	slots *state.SlotTable

	width  int
	height int

	// Top-level status area: the latest write failure, cleared on the next
	// successful write or reload.
	status string

	sites      state.List[rmm.Site]
	sitesPage  int
	sitesTotal int

	// Per-site enrichment, replaced wholesale per site on each variables
	// fetch. Keyed by site uid.
	siteVars map[string][]rmm.SiteVariable

	// Incident aggregates keyed by the reconciliation key. Written only by
	// the incidents completion handler.
	incidentStats map[string]IncidentStats

	// Optimistic edits awaiting write completion, keyed by write slot.
	pendingEdits map[string]pendingEdit

	siteDetail     *siteDetailState
	deviceDetail   *deviceDetailState
	activityDetail *activityDetailState

	modal Modal
}

// NewAppModel creates the root model.
func NewAppModel(backends Backends) *AppModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &AppModel{
		backends:      backends,
		keys:          DefaultKeyMap,
		help:          help.New(),
		spin:          sp,
		slots:         state.NewSlotTable(),
		sites:         state.NewList[rmm.Site](),
		siteVars:      make(map[string][]rmm.SiteVariable),
		incidentStats: make(map[string]IncidentStats),
		pendingEdits:  make(map[string]pendingEdit),
	}
}

// CurrentView returns the active screen, derived from which detail states
// are alive so navigation can never desynchronize from the data it shows.
func (m *AppModel) CurrentView() ViewState {
	switch {
	case m.activityDetail != nil:
		return ViewActivityDetail
	case m.deviceDetail != nil:
		return ViewDeviceDetail
	case m.siteDetail != nil:
		return ViewSiteDetail
	default:
		return ViewSiteList
	}
}

// Init implements tea.Model.
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.reloadSites(),
		m.reloadIncidents(),
		m.spin.Tick,
		tickCmd(),
	)
}

// Update implements tea.Model. This is the single consumer of the event
// channel: every mutation of UI-visible state happens here, in arrival
// order, one message at a time.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.handleTick(), tickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case dismissModalMsg:
		m.modal = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if cmd, handled := m.applyCompletion(msg); handled {
		return m, cmd
	}
	if cmd, handled := m.applyModalRequest(msg); handled {
		return m, cmd
	}

	// Anything else (cursor blink and friends) belongs to the modal's
	// text inputs.
	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes one key event. An active modal receives every key
// exclusively; Esc inside it closes exactly that one layer.
func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	switch m.CurrentView() {
	case ViewSiteList:
		return m.handleSiteListKeys(msg)
	case ViewSiteDetail:
		return m.handleSiteDetailKeys(msg)
	case ViewDeviceDetail:
		return m.handleDeviceDetailKeys(msg)
	case ViewActivityDetail:
		return m.handleActivityDetailKeys(msg)
	}
	return m, nil
}

// handleTick evaluates the debounce engine. Ticks are also what keeps the
// search modal's spinner honest; everything else ignores them.
func (m *AppModel) handleTick() tea.Cmd {
	search, ok := m.modal.(*SearchModal)
	if !ok {
		return nil
	}
	query, ready := search.DebounceReady(timeNow())
	if !ready {
		return nil
	}
	corr := m.slots.Next(slotSearch)
	return m.searchDevicesCmd(corr, query)
}

// navigateBack pops exactly one level. A modal, when open, is always the
// innermost layer and has already consumed the key before this runs.
func (m *AppModel) navigateBack() {
	switch {
	case m.activityDetail != nil:
		m.activityDetail = nil
	case m.deviceDetail != nil:
		m.deviceDetail = nil
	case m.siteDetail != nil:
		m.siteDetail = nil
	}
}

// View implements tea.Model.
func (m *AppModel) View() string {
	if m.modal != nil {
		return m.renderModal()
	}
	return m.renderCurrentView()
}
