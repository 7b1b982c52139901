package ui

import (
	"strings"

	"kyber/internal/rmm"
	"kyber/internal/soc"
)

// OverrideKeyVariable is the site variable that, when present, replaces the
// lowercased site name as the incident-feed lookup key.
const OverrideKeyVariable = "tuiMdrId"

// ColorVariable is the site variable that tints the site's list row.
const ColorVariable = "tuiColor"

// IncidentStats aggregates incident counts for one lookup key.
type IncidentStats struct {
	Active   int
	Resolved int
}

// BuildIncidentStats folds the incident feed into per-account aggregates
// keyed by lowercased account name. An incident whose status is "resolved"
// counts as resolved; every other status counts as active.
func BuildIncidentStats(incidents []soc.Incident) map[string]IncidentStats {
	stats := make(map[string]IncidentStats, len(incidents))
	for _, inc := range incidents {
		key := strings.ToLower(inc.AccountName)
		s := stats[key]
		if strings.EqualFold(inc.Status, "resolved") {
			s.Resolved++
		} else {
			s.Active++
		}
		stats[key] = s
	}
	return stats
}

// SiteLookupKey computes the best-effort key joining a site to the incident
// feed: the override variable's value when attached, else the display name
// lowercased with no other normalization. Two sites can legitimately resolve
// to the same key; both then receive the same aggregate.
func SiteLookupKey(site rmm.Site, vars []rmm.SiteVariable) string {
	for _, v := range vars {
		if v.Name == OverrideKeyVariable && v.Value != "" {
			return v.Value
		}
	}
	return strings.ToLower(site.Name)
}

// StatsFor looks up a site's aggregate. A missing key means zero counts,
// not an error.
func StatsFor(site rmm.Site, vars []rmm.SiteVariable, stats map[string]IncidentStats) IncidentStats {
	return stats[SiteLookupKey(site, vars)]
}

// SiteColorName returns the value of the color variable, empty when unset.
func SiteColorName(vars []rmm.SiteVariable) string {
	for _, v := range vars {
		if v.Name == ColorVariable {
			return v.Value
		}
	}
	return ""
}
