package rmm

import (
	"context"
	"net/url"
	"strconv"

	"kyber/internal/jsonutil"
)

// ActivityQuery narrows the account activity feed. Zero values are omitted
// from the request.
type ActivityQuery struct {
	Page       string
	Size       int
	Order      string
	From       string
	Until      string
	Entities   []string
	Categories []string
	Actions    []string
	SiteIDs    []int
}

// GetActivityLogs fetches one page of the account activity feed.
func (c *Client) GetActivityLogs(ctx context.Context, query ActivityQuery) (*ActivityLogsResponse, error) {
	size := query.Size
	if size <= 0 {
		size = 50
	}
	q := url.Values{"size": {strconv.Itoa(size)}}
	if query.Page != "" {
		q.Set("page", query.Page)
	}
	if query.Order != "" {
		q.Set("order", query.Order)
	}
	if query.From != "" {
		q.Set("from", query.From)
	}
	if query.Until != "" {
		q.Set("until", query.Until)
	}
	for _, v := range query.Entities {
		q.Add("entities", v)
	}
	for _, v := range query.Categories {
		q.Add("categories", v)
	}
	for _, v := range query.Actions {
		q.Add("actions", v)
	}
	for _, id := range query.SiteIDs {
		q.Add("siteIds", strconv.Itoa(id))
	}

	body, err := c.get(ctx, "get_activity_logs", "/api/v2/activity-logs", q)
	if err != nil {
		return nil, err
	}
	var out ActivityLogsResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode activity logs"); err != nil {
		return nil, err
	}
	return &out, nil
}
