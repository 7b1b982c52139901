package ui

// ViewState is the active top-level screen. Exactly one is active; the
// deeper screens keep their parents' state alive so back navigation pops
// one level without refetching.
type ViewState int

const (
	ViewSiteList ViewState = iota
	ViewSiteDetail
	ViewDeviceDetail
	ViewActivityDetail
)

func (v ViewState) String() string {
	switch v {
	case ViewSiteList:
		return "SiteList"
	case ViewSiteDetail:
		return "SiteDetail"
	case ViewDeviceDetail:
		return "DeviceDetail"
	case ViewActivityDetail:
		return "ActivityDetail"
	default:
		return "Unknown"
	}
}

// SiteTab is the active pane inside the site detail screen.
type SiteTab int

const (
	SiteTabDevices SiteTab = iota
	SiteTabAlerts
	SiteTabVariables
	SiteTabSettings
)

var siteTabNames = []string{"Devices", "Alerts", "Variables", "Settings"}

// DeviceTab is the active pane inside the device detail screen.
type DeviceTab int

const (
	DeviceTabOverview DeviceTab = iota
	DeviceTabAlerts
	DeviceTabSoftware
	DeviceTabSecurity
	DeviceTabActivity
)

var deviceTabNames = []string{"Overview", "Alerts", "Software", "Security", "Activity"}
