// Package soc is the client for the SOC incident feed: account-wide
// incidents and per-hostname agent lookups. Authentication is a static
// bearer key.
package soc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kyber/internal/apierr"
	"kyber/internal/jsonutil"
	"kyber/internal/logging"
	"kyber/internal/telemetry"
)

const backend = "soc"

// Incident is one open or resolved incident on a customer account.
type Incident struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Status      string  `json:"status"`
	AccountID   int     `json:"accountId"`
	AccountName string  `json:"accountName"`
	CreatedAt   string  `json:"createdAt"`
	ResolvedAt  *string `json:"resolvedAt,omitempty"`
}

// IncidentsResponse is the incident feed page envelope.
type IncidentsResponse struct {
	TotalCount int        `json:"totalCount"`
	DataCount  int        `json:"dataCount"`
	Data       []Incident `json:"data"`
}

// Agent is one monitored endpoint known to the SOC.
type Agent struct {
	ID        string `json:"id"`
	Hostname  string `json:"hostname"`
	AccountID int    `json:"accountId"`
	Platform  string `json:"platform,omitempty"`
	Version   string `json:"version,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// AgentsResponse is the agents page envelope.
type AgentsResponse struct {
	TotalCount int     `json:"totalCount"`
	DataCount  int     `json:"dataCount"`
	Data       []Agent `json:"data"`
}

// Client talks to the SOC REST API.
type Client struct {
	httpc   *http.Client
	baseURL string
	apiKey  string
}

// New creates a client. baseURL may or may not carry the /v3 suffix; it is
// normalized away so paths can always include it.
func New(baseURL, apiKey string) *Client {
	trimmed := strings.TrimRight(baseURL, "/")
	trimmed = strings.TrimSuffix(trimmed, "/v3")
	return &Client{
		httpc:   &http.Client{Timeout: 10 * time.Second},
		baseURL: trimmed,
		apiKey:  apiKey,
	}
}

// GetIncidents fetches the newest incidents across all accounts.
func (c *Client) GetIncidents(ctx context.Context) ([]Incident, error) {
	q := url.Values{"pageSize": {"100"}}
	body, err := c.get(ctx, "get_incidents", "/v3/incidents", q)
	if err != nil {
		return nil, err
	}
	var out IncidentsResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode incidents"); err != nil {
		return nil, apierr.Decodef(backend, "get_incidents", err)
	}
	return out.Data, nil
}

// GetAgents looks up SOC agents by exact hostname.
func (c *Client) GetAgents(ctx context.Context, hostname string) ([]Agent, error) {
	q := url.Values{"hostname": {hostname}}
	body, err := c.get(ctx, "get_agents", "/v3/agents", q)
	if err != nil {
		return nil, err
	}
	var out AgentsResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode agents"); err != nil {
		return nil, apierr.Decodef(backend, "get_agents", err)
	}
	return out.Data, nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	ctx, span := telemetry.StartRequest(ctx, backend, op)
	defer span.End()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apierr.Transportf(backend, op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	logging.Event("soc.request", map[string]string{"op": op, "url": u})

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apierr.Transportf(backend, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Transportf(backend, op, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apierr.Authf(backend, op,
			fmt.Errorf("status %d - %s", resp.StatusCode, strings.TrimSpace(string(body))))
	case resp.StatusCode >= 400:
		return nil, apierr.Serverf(backend, op, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
