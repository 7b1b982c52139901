package soc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyber/internal/apierr"
)

func TestNewNormalizesVersionSuffix(t *testing.T) {
	for _, base := range []string{
		"https://soc.example",
		"https://soc.example/",
		"https://soc.example/v3",
		"https://soc.example/v3/",
	} {
		c := New(base, "k")
		assert.Equal(t, "https://soc.example", c.baseURL, "base %q", base)
	}
}

func TestGetIncidents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/incidents", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "Bearer feed-key", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(IncidentsResponse{
			TotalCount: 2,
			Data: []Incident{
				{ID: 1, Title: "Suspicious login", Status: "open", AccountName: "Acme Corp"},
				{ID: 2, Title: "Malware removed", Status: "resolved", AccountName: "Acme Corp"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "feed-key")
	incidents, err := c.GetIncidents(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	assert.Equal(t, "Acme Corp", incidents[0].AccountName)
	assert.Equal(t, "resolved", incidents[1].Status)
}

func TestGetAgentsFiltersByHostname(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/agents", r.URL.Path)
		assert.Equal(t, "SRV01", r.URL.Query().Get("hostname"))
		json.NewEncoder(w).Encode(AgentsResponse{
			DataCount: 1,
			Data:      []Agent{{ID: "a1", Hostname: "SRV01", Platform: "windows"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "feed-key")
	agents, err := c.GetAgents(context.Background(), "SRV01")
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "a1", agents[0].ID)
}

func TestRejectedKeyIsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-key")
	_, err := c.GetIncidents(context.Background())
	require.Error(t, err)

	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierr.Auth, apiErr.Kind)
}
