// Package edr is the client for the second endpoint-security platform. It
// authenticates with an OAuth client-credentials grant, discovers its tenant
// and regional API host through a whoami call, and can then query endpoint
// health by hostname.
package edr

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

const backend = "edr"

const (
	defaultIDBaseURL  = "https://id.secplatform.example"
	defaultAPIBaseURL = "https://api.central.secplatform.example"
)

// Endpoint is one protected machine in the tenant.
type Endpoint struct {
	ID       string `json:"id"`
	Hostname string `json:"hostname"`
	Type     string `json:"type,omitempty"`
	Health   *struct {
		Overall string `json:"overall,omitempty"`
	} `json:"health,omitempty"`
	OS *struct {
		Name string `json:"name,omitempty"`
	} `json:"os,omitempty"`
	LastSeenAt       string `json:"lastSeenAt,omitempty"`
	TamperProtection *struct {
		Enabled bool `json:"enabled"`
	} `json:"tamperProtection,omitempty"`
}

// EndpointsResponse is the endpoints page envelope.
type EndpointsResponse struct {
	Items []Endpoint `json:"items"`
}

// WhoAmI identifies the authenticated tenant and its regional API host.
type WhoAmI struct {
	ID       string `json:"id"`
	IDType   string `json:"idType"`
	APIHosts struct {
		Global     string `json:"global"`
		DataRegion string `json:"dataRegion"`
	} `json:"apiHosts"`
}

// Client talks to the EDR platform. Authenticate and WhoAmI must both
// succeed before endpoint queries; the UI performs them once during setup
// and treats a failure as the backend being unavailable.
type Client struct {
	httpc        *http.Client
	idBaseURL    string
	apiBaseURL   string
	clientID     string
	clientSecret string

	accessToken string
	tenantID    string
	regionURL   string
}

// New creates a client against the production hosts.
func New(clientID, clientSecret string) *Client {
	return NewWithHosts(clientID, clientSecret, defaultIDBaseURL, defaultAPIBaseURL)
}

// NewWithHosts creates a client against explicit identity and API hosts.
func NewWithHosts(clientID, clientSecret, idBaseURL, apiBaseURL string) *Client {
	return &Client{
		httpc:        &http.Client{Timeout: 10 * time.Second},
		idBaseURL:    strings.TrimRight(idBaseURL, "/"),
		apiBaseURL:   strings.TrimRight(apiBaseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Authenticate exchanges the client credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context) error {
	const op = "authenticate"
	ctx, span := telemetry.StartRequest(ctx, backend, op)
	defer span.End()

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"scope":         {"token"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.idBaseURL+"/api/v2/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return apierr.Transportf(backend, op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apierr.Transportf(backend, op, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return apierr.Authf(backend, op,
			fmt.Errorf("status %d - %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := jsonutil.UnmarshalWithContext(body, &token, "decode token"); err != nil {
		return apierr.Decodef(backend, op, err)
	}
	c.accessToken = token.AccessToken
	return nil
}

// FetchWhoAmI resolves the tenant id and regional data host. It must run
// after Authenticate and before any endpoint query.
func (c *Client) FetchWhoAmI(ctx context.Context) (*WhoAmI, error) {
	const op = "whoami"
	body, err := c.get(ctx, op, c.apiBaseURL+"/whoami/v1", nil, nil)
	if err != nil {
		return nil, err
	}
	var out WhoAmI
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode whoami"); err != nil {
		return nil, apierr.Decodef(backend, op, err)
	}
	c.tenantID = out.ID
	c.regionURL = strings.TrimRight(out.APIHosts.DataRegion, "/")
	if c.regionURL == "" {
		c.regionURL = strings.TrimRight(out.APIHosts.Global, "/")
	}
	return &out, nil
}

// Ready reports whether the client has a token and a resolved tenant.
func (c *Client) Ready() bool {
	return c.accessToken != "" && c.tenantID != "" && c.regionURL != ""
}

// GetEndpoints queries endpoints whose hostname contains the fragment.
func (c *Client) GetEndpoints(ctx context.Context, hostnameContains string) ([]Endpoint, error) {
	const op = "get_endpoints"
	if !c.Ready() {
		return nil, apierr.Authf(backend, op, nil)
	}
	q := url.Values{"hostnameContains": {hostnameContains}}
	headers := map[string]string{"X-Tenant-ID": c.tenantID}
	body, err := c.get(ctx, op, c.regionURL+"/endpoint/v1/endpoints", q, headers)
	if err != nil {
		return nil, err
	}
	var out EndpointsResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode endpoints"); err != nil {
		return nil, apierr.Decodef(backend, op, err)
	}
	return out.Items, nil
}

func (c *Client) get(ctx context.Context, op, rawURL string, query url.Values, headers map[string]string) ([]byte, error) {
	if c.accessToken == "" {
		return nil, apierr.Authf(backend, op, nil)
	}

	ctx, span := telemetry.StartRequest(ctx, backend, op)
	defer span.End()

	u := rawURL
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apierr.Transportf(backend, op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logging.Event("edr.request", map[string]string{"op": op, "url": u})

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
