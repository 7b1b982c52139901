package rmm

// PageDetails carries server-side pagination metadata.
type PageDetails struct {
	Count       int    `json:"count"`
	TotalCount  int    `json:"totalCount"`
	PrevPageURL string `json:"prevPageUrl,omitempty"`
	NextPageURL string `json:"nextPageUrl,omitempty"`
}

// DevicesStatus summarizes device counts for a site.
type DevicesStatus struct {
	NumberOfDevices        int `json:"numberOfDevices"`
	NumberOfOnlineDevices  int `json:"numberOfOnlineDevices"`
	NumberOfOfflineDevices int `json:"numberOfOfflineDevices"`
}

// Site is a managed customer site.
type Site struct {
	ID                   int            `json:"id"`
	UID                  string         `json:"uid"`
	AccountUID           string         `json:"accountUid,omitempty"`
	Name                 string         `json:"name"`
	Description          string         `json:"description,omitempty"`
	Notes                string         `json:"notes,omitempty"`
	OnDemand             bool           `json:"onDemand"`
	SplashtopAutoInstall bool           `json:"splashtopAutoInstall"`
	DevicesStatus        *DevicesStatus `json:"devicesStatus,omitempty"`
	PortalURL            string         `json:"portalUrl,omitempty"`
}

// SitesResponse is one page of sites.
type SitesResponse struct {
	PageDetails PageDetails `json:"pageDetails"`
	Sites       []Site      `json:"sites"`
}

// UpdateSiteRequest is the writable subset of Site.
type UpdateSiteRequest struct {
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Notes                string `json:"notes,omitempty"`
	OnDemand             bool   `json:"onDemand"`
	SplashtopAutoInstall bool   `json:"splashtopAutoInstall"`
}

// SiteVariable is a key-value annotation attached to a site. The UI gives
// two names special meaning: "tuiColor" tints the site row and "tuiMdrId"
// overrides the incident-feed lookup key.
type SiteVariable struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Masked bool   `json:"masked"`
}

// SiteVariablesResponse is one page of site variables.
type SiteVariablesResponse struct {
	PageDetails PageDetails    `json:"pageDetails"`
	Variables   []SiteVariable `json:"variables"`
}

// CreateVariableRequest creates a new site variable.
type CreateVariableRequest struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Masked bool   `json:"masked"`
}

// UpdateVariableRequest updates an existing site variable.
type UpdateVariableRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Antivirus is the AV summary the RMM holds for a device.
type Antivirus struct {
	Product string `json:"antivirusProduct,omitempty"`
	Status  string `json:"antivirusStatus,omitempty"`
}

// DeviceType categorizes a device.
type DeviceType struct {
	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Device is a managed endpoint. Timestamp fields arrive as either epoch
// millis or ISO strings depending on the backend version, so they decode
// into any and render through timefmt.
type Device struct {
	ID               int            `json:"id"`
	UID              string         `json:"uid"`
	SiteID           int            `json:"siteId"`
	SiteUID          string         `json:"siteUid"`
	SiteName         string         `json:"siteName,omitempty"`
	Hostname         string         `json:"hostname"`
	Description      string         `json:"description,omitempty"`
	Online           bool           `json:"online"`
	LastSeen         any            `json:"lastSeen,omitempty"`
	LastReboot       any            `json:"lastReboot,omitempty"`
	OperatingSystem  string         `json:"operatingSystem,omitempty"`
	IntIPAddress     string         `json:"intIpAddress,omitempty"`
	ExtIPAddress     string         `json:"extIpAddress,omitempty"`
	LastLoggedInUser string         `json:"lastLoggedInUser,omitempty"`
	Domain           string         `json:"domain,omitempty"`
	RebootRequired   bool           `json:"rebootRequired"`
	Antivirus        *Antivirus     `json:"antivirus,omitempty"`
	DeviceType       *DeviceType    `json:"deviceType,omitempty"`
	UDF              map[string]any `json:"udf,omitempty"`
	PortalURL        string         `json:"portalUrl,omitempty"`
	WebRemoteURL     string         `json:"webRemoteUrl,omitempty"`
}

// DevicesResponse is one page of devices.
type DevicesResponse struct {
	PageDetails PageDetails `json:"pageDetails"`
	Devices     []Device    `json:"devices"`
}

// Alert is an open monitor alert on a site or device.
type Alert struct {
	UID       string `json:"alertUid"`
	Priority  string `json:"priority,omitempty"`
	Message   string `json:"alertMessage,omitempty"`
	Timestamp any    `json:"timestamp,omitempty"`
	Muted     bool   `json:"muted"`
}

// OpenAlertsResponse is one page of open alerts.
type OpenAlertsResponse struct {
	PageDetails PageDetails `json:"pageDetails"`
	Alerts      []Alert     `json:"alerts"`
}

// SoftwareItem is one installed package from the device audit.
type SoftwareItem struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// SoftwareResponse is the device software inventory.
type SoftwareResponse struct {
	PageDetails PageDetails    `json:"pageDetails"`
	Software    []SoftwareItem `json:"software"`
}

// ActivityLog is one entry from the account activity feed.
type ActivityLog struct {
	ID        string `json:"id,omitempty"`
	Entity    string `json:"entity,omitempty"`
	Category  string `json:"category,omitempty"`
	Action    string `json:"action,omitempty"`
	Date      any    `json:"date,omitempty"`
	Hostname  string `json:"hostname,omitempty"`
	Details   string `json:"details,omitempty"`
	JobUID    string `json:"jobUid,omitempty"`
	DeviceUID string `json:"deviceUid,omitempty"`
	HasStdOut bool   `json:"hasStdOut"`
	HasStdErr bool   `json:"hasStdErr"`
}

// ActivityLogsResponse is one page of activity entries.
type ActivityLogsResponse struct {
	PageDetails *PageDetails  `json:"pageDetails,omitempty"`
	Activities  []ActivityLog `json:"activities"`
}

// ComponentVariable describes one input a component expects.
type ComponentVariable struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Default string `json:"default,omitempty"`
}

// Component is a runnable automation script.
type Component struct {
	UID         string              `json:"uid"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Variables   []ComponentVariable `json:"variables,omitempty"`
}

// ComponentsResponse is one page of components.
type ComponentsResponse struct {
	PageDetails PageDetails `json:"pageDetails"`
	Components  []Component `json:"components"`
}

// JobVariable is one name/value input passed to a quick job.
type JobVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// JobComponent selects the component a quick job runs.
type JobComponent struct {
	ComponentUID string        `json:"componentUid"`
	Variables    []JobVariable `json:"variables,omitempty"`
}

// QuickJobRequest launches a component on a device.
type QuickJobRequest struct {
	JobName      string       `json:"jobName"`
	JobComponent JobComponent `json:"jobComponent"`
}

// QuickJobResponse acknowledges a launched job.
type QuickJobResponse struct {
	JobUID string `json:"jobUid,omitempty"`
	Job    *struct {
		UID string `json:"uid"`
	} `json:"job,omitempty"`
}

// UID returns the job identifier regardless of response shape.
func (r QuickJobResponse) ID() string {
	if r.JobUID != "" {
		return r.JobUID
	}
	if r.Job != nil {
		return r.Job.UID
	}
	return ""
}

// ComponentResult is one component's outcome within a job.
type ComponentResult struct {
	ComponentUID     string `json:"componentUid,omitempty"`
	ComponentName    string `json:"componentName,omitempty"`
	ComponentStatus  string `json:"componentStatus,omitempty"`
	NumberOfWarnings int    `json:"numberOfWarnings,omitempty"`
	HasStdOut        bool   `json:"hasStdOut"`
	HasStdErr        bool   `json:"hasStdErr"`
}

// JobResult is the outcome of a job on one device.
type JobResult struct {
	JobUID              string            `json:"jobUid,omitempty"`
	DeviceUID           string            `json:"deviceUid,omitempty"`
	RanOn               any               `json:"ranOn,omitempty"`
	JobDeploymentStatus string            `json:"jobDeploymentStatus,omitempty"`
	ComponentResults    []ComponentResult `json:"componentResults,omitempty"`
}

// JobStdOutput is one component's captured stdout or stderr.
type JobStdOutput struct {
	ComponentUID  string `json:"componentUid,omitempty"`
	ComponentName string `json:"componentName,omitempty"`
	StdData       string `json:"stdData,omitempty"`
}
