// Package rmm is the client for the RMM platform: sites, devices, site
// variables, alerts, activity logs, and component jobs. Authentication uses
// an OAuth password grant; the token is acquired once before the event loop
// starts and the client is immutable afterwards, so concurrent background
// tasks can share it safely.
package rmm

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
	"kyber/internal/logging"
	"kyber/internal/telemetry"
)

const backend = "rmm"

// Client talks to the RMM REST API.
type Client struct {
	httpc       *http.Client
	baseURL     string
	apiKey      string
	secretKey   string
	accessToken string
}

// New creates an unauthenticated client. Call Authenticate before use.
func New(baseURL, apiKey, secretKey string) *Client {
	return &Client{
		httpc:     &http.Client{Timeout: 10 * time.Second},
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		secretKey: secretKey,
	}
}

// Authenticate exchanges the API key pair for a bearer token using the
// platform's password grant. The token endpoint itself expects basic auth
// with the fixed public client credentials.
func (c *Client) Authenticate(ctx context.Context) error {
	const op = "authenticate"
	ctx, span := telemetry.StartRequest(ctx, backend, op)
	defer span.End()

	form := url.Values{
		"grant_type": {"password"},
		"username":   {c.apiKey},
		"password":   {c.secretKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return apierr.Transportf(backend, op, err)
	}
	req.SetBasicAuth("public-client", "public")
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
	if err := json.Unmarshal(body, &token); err != nil {
		return apierr.Decodef(backend, op, err)
	}
	c.accessToken = token.AccessToken
	return nil
}

// do executes an authenticated request and returns the response body.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload any) ([]byte, error) {
	if c.accessToken == "" {
		return nil, apierr.Authf(backend, op, nil)
	}

	ctx, span := telemetry.StartRequest(ctx, backend, op)
	defer span.End()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, apierr.Decodef(backend, op, fmt.Errorf("marshal request: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, apierr.Transportf(backend, op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	logging.Event("rmm.request", map[string]string{"op": op, "method": method, "url": u})

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apierr.Transportf(backend, op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Transportf(backend, op, err)
	}

	logging.Event("rmm.response", map[string]any{"op": op, "status": resp.StatusCode})

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apierr.Authf(backend, op,
			fmt.Errorf("status %d - %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	case resp.StatusCode >= 400:
		return nil, apierr.Serverf(backend, op, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, op, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, op, path string, payload any) ([]byte, error) {
	return c.do(ctx, op, http.MethodPost, path, nil, payload)
}

func (c *Client) put(ctx context.Context, op, path string, payload any) ([]byte, error) {
	return c.do(ctx, op, http.MethodPut, path, nil, payload)
}
