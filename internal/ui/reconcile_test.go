package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kyber/internal/rmm"
	"kyber/internal/soc"
)

func TestBuildIncidentStatsSplitsResolvedFromActive(t *testing.T) {
	stats := BuildIncidentStats([]soc.Incident{
		{AccountName: "Acme Corp", Status: "open"},
		{AccountName: "Acme Corp", Status: "investigating"},
		{AccountName: "Acme Corp", Status: "Resolved"},
		{AccountName: "Globex", Status: "resolved"},
	})

	assert.Equal(t, IncidentStats{Active: 2, Resolved: 1}, stats["acme corp"])
	assert.Equal(t, IncidentStats{Resolved: 1}, stats["globex"])
}

func TestSiteLookupKeyLowercasesName(t *testing.T) {
	site := rmm.Site{Name: "Acme Corp"}
	assert.Equal(t, "acme corp", SiteLookupKey(site, nil))
}

func TestSiteLookupKeyOverrideWins(t *testing.T) {
	site := rmm.Site{Name: "Acme Corp"}
	vars := []rmm.SiteVariable{
		{Name: "tuiColor", Value: "red"},
		{Name: OverrideKeyVariable, Value: "42"},
	}
	assert.Equal(t, "42", SiteLookupKey(site, vars))
}

func TestSiteLookupKeyEmptyOverrideIgnored(t *testing.T) {
	site := rmm.Site{Name: "Acme Corp"}
	vars := []rmm.SiteVariable{{Name: OverrideKeyVariable, Value: ""}}
	assert.Equal(t, "acme corp", SiteLookupKey(site, vars))
}

func TestStatsForMatchesFeedAccountByName(t *testing.T) {
	stats := BuildIncidentStats([]soc.Incident{
		{AccountName: "Acme Corp", Status: "open"},
	})

	matched := StatsFor(rmm.Site{Name: "ACME CORP"}, nil, stats)
	assert.Equal(t, IncidentStats{Active: 1}, matched)

	unmatched := StatsFor(rmm.Site{Name: "Acme Corporation"}, nil, stats)
	assert.Equal(t, IncidentStats{}, unmatched, "near-miss names stay unmatched")
}

// Two sites resolving to the same key both receive the same aggregate; the
// join is best-effort and ambiguity is surfaced, not resolved.
func TestStatsForSharedKey(t *testing.T) {
	stats := BuildIncidentStats([]soc.Incident{
		{AccountName: "acme", Status: "open"},
	})
	vars := []rmm.SiteVariable{{Name: OverrideKeyVariable, Value: "acme"}}

	a := StatsFor(rmm.Site{Name: "Acme HQ"}, vars, stats)
	b := StatsFor(rmm.Site{Name: "Acme Branch"}, vars, stats)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, a.Active)
}

func TestSiteColorName(t *testing.T) {
	vars := []rmm.SiteVariable{
		{Name: "other", Value: "x"},
		{Name: ColorVariable, Value: "magenta"},
	}
	assert.Equal(t, "magenta", SiteColorName(vars))
	assert.Equal(t, "", SiteColorName(nil))
}
