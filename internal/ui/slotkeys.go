package ui

import "time"

// timeNow is stubbed in tests that drive the debounce engine.
var timeNow = time.Now

// Slot keys. Each names one independently tracked unit of fetched or
// written state with its own ordinal, loading flag, and last error.
const (
	slotSites      = "sites"
	slotIncidents  = "incidents"
	slotSearch     = "device-search"
	slotComponents = "components"
)

func slotSiteVars(siteUID string) string { return "site-vars:" + siteUID }
func slotSiteGet(siteUID string) string { return "site-get:" + siteUID }
func slotDevices(siteUID string) string { return "devices:" + siteUID }
func slotSiteAlerts(siteUID string) string { return "site-alerts:" + siteUID }
func slotSiteUpdate(siteUID string) string { return "site-update:" + siteUID }
func slotVarSave(siteUID string) string { return "var-save:" + siteUID }
func slotUDFSave(deviceUID string) string { return "udf-save:" + deviceUID }
func slotDeviceAlerts(deviceUID string) string { return "device-alerts:" + deviceUID }
func slotSoftware(deviceUID string) string { return "software:" + deviceUID }
func slotActivity(deviceUID string) string { return "activity:" + deviceUID }
func slotAV(deviceUID string) string { return "security-av:" + deviceUID }
func slotAVAlerts(deviceUID string) string { return "security-av-alerts:" + deviceUID }
func slotEDR(deviceUID string) string { return "security-edr:" + deviceUID }
func slotSOC(deviceUID string) string { return "security-soc:" + deviceUID }
func slotJobRun(deviceUID string) string { return "job-run:" + deviceUID }
func slotJobResult(jobUID string) string { return "job-result:" + jobUID }
func slotJobOutput(jobUID string) string { return "job-output:" + jobUID }
func slotReboot(deviceUID string) string { return "reboot:" + deviceUID }
func slotScan(agentID string) string { return "scan:" + agentID }
