package rmm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"kyber/internal/jsonutil"
)

// GetSites fetches one page of sites, optionally filtered by name.
func (c *Client) GetSites(ctx context.Context, page, max int, siteName string) (*SitesResponse, error) {
	q := url.Values{
		"page": {strconv.Itoa(page)},
		"max":  {strconv.Itoa(max)},
	}
	if siteName != "" {
		q.Set("siteName", siteName)
	}
	body, err := c.get(ctx, "get_sites", "/api/v2/account/sites", q)
	if err != nil {
		return nil, err
	}
	var out SitesResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode sites"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSite fetches a single site by uid.
func (c *Client) GetSite(ctx context.Context, siteUID string) (*Site, error) {
	body, err := c.get(ctx, "get_site", "/api/v2/site/"+siteUID, nil)
	if err != nil {
		return nil, err
	}
	var out Site
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode site"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSite writes the site settings and returns the updated site.
func (c *Client) UpdateSite(ctx context.Context, siteUID string, req UpdateSiteRequest) (*Site, error) {
	body, err := c.post(ctx, "update_site", "/api/v2/site/"+siteUID, req)
	if err != nil {
		return nil, err
	}
	var out Site
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode updated site"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSiteOpenAlerts fetches one page of a site's open alerts.
func (c *Client) GetSiteOpenAlerts(ctx context.Context, siteUID string, page, max int) (*OpenAlertsResponse, error) {
	q := url.Values{
		"page": {strconv.Itoa(page)},
		"max":  {strconv.Itoa(max)},
	}
	body, err := c.get(ctx, "get_site_open_alerts",
		fmt.Sprintf("/api/v2/site/%s/alerts/open", siteUID), q)
	if err != nil {
		return nil, err
	}
	var out OpenAlertsResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode site alerts"); err != nil {
		return nil, err
	}
	return &out, nil
}
