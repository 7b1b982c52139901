// Package av is the client for the first endpoint-security platform. Agent
// lookups use a loopback-style JSON filter in the query string and a static
// secret in the Authorization header.
package av

import (
	"bytes"
	"context"
	"encoding/json"
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

const backend = "av"

// AgentDetail is the platform's record for one protected endpoint. Only the
// fields the dashboard renders are decoded; the payload carries many more.
type AgentDetail struct {
	ID              string `json:"id"`
	Hostname        string `json:"hostname"`
	Name            string `json:"name,omitempty"`
	Version         string `json:"version,omitempty"`
	Status          string `json:"status,omitempty"`
	OS              string `json:"os,omitempty"`
	IP              string `json:"ip,omitempty"`
	Heartbeat       string `json:"heartbeat,omitempty"`
	Active          *bool  `json:"active,omitempty"`
	Authorized      *bool  `json:"authorized,omitempty"`
	Isolated        *bool  `json:"isolated,omitempty"`
	AVEnabled       *bool  `json:"dattoAvEnabled,omitempty"`
	EDRLicensed     *bool  `json:"hasEdrLicense,omitempty"`
	AVLicensed      *bool  `json:"hasAvLicense,omitempty"`
	OrganizationName string `json:"organizationName,omitempty"`
	DeviceGroupName  string `json:"deviceGroupName,omitempty"`
	AlertCount       string `json:"alertCount,omitempty"`
}

// Alert is one detection raised by the platform.
type Alert struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Severity    string `json:"severity,omitempty"`
	Description string `json:"description,omitempty"`
	Hostname    string `json:"hostname,omitempty"`
	CreatedOn   string `json:"createdOn,omitempty"`
	MitreTactic string `json:"mitreTactic,omitempty"`
}

// Client talks to the endpoint-security REST API.
type Client struct {
	httpc   *http.Client
	baseURL string
	secret  string
}

// New creates a client.
func New(baseURL, secret string) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
	}
}

// GetAgentDetails fetches agents matching a hostname. The platform stores
// hostnames lowercased, so the filter value is folded before the request.
func (c *Client) GetAgentDetails(ctx context.Context, hostname string) ([]AgentDetail, error) {
	const op = "get_agent_details"
	filter := map[string]any{
		"where": map[string]string{"hostname": strings.ToLower(hostname)},
	}
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, apierr.Decodef(backend, op, fmt.Errorf("marshal filter: %w", err))
	}
	q := url.Values{"filter": {string(filterJSON)}}

	body, err := c.do(ctx, op, http.MethodGet, "/api/AgentDetails", q, nil)
	if err != nil {
		return nil, err
	}
	var out []AgentDetail
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode agent details"); err != nil {
		return nil, apierr.Decodef(backend, op, err)
	}
	return out, nil
}

// GetAgentAlerts fetches the five newest alerts for an agent.
func (c *Client) GetAgentAlerts(ctx context.Context, agentID string) ([]Alert, error) {
	const op = "get_agent_alerts"
	filter := map[string]any{
		"where": map[string]string{"agentId": agentID},
		"order": "createdOn DESC",
		"limit": 5,
	}
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, apierr.Decodef(backend, op, fmt.Errorf("marshal filter: %w", err))
	}
	q := url.Values{"filter": {string(filterJSON)}}

	body, err := c.do(ctx, op, http.MethodGet, "/api/Alerts", q, nil)
	if err != nil {
		return nil, err
	}
	var out []Alert
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode agent alerts"); err != nil {
		return nil, apierr.Decodef(backend, op, err)
	}
	return out, nil
}

// ScanAgent triggers an on-demand scan of one agent.
func (c *Client) ScanAgent(ctx context.Context, agentID string) error {
	_, err := c.do(ctx, "scan_agent", http.MethodPost, "/api/Agents/scan", nil,
		map[string]string{"id": agentID})
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload any) ([]byte, error) {
	ctx, span := telemetry.StartRequest(ctx, backend, op)
	defer span.End()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, apierr.Decodef(backend, op, fmt.Errorf("marshal request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, apierr.Transportf(backend, op, err)
	}
	req.Header.Set("Authorization", c.secret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Event("av.request", map[string]string{"op": op, "method": method, "url": u})

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
