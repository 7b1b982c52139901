package av

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAgentDetailsLowercasesHostnameFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/AgentDetails", r.URL.Path)
		assert.Equal(t, "av-secret", r.Header.Get("Authorization"))

		var filter struct {
			Where map[string]string `json:"where"`
		}
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("filter")), &filter))
		assert.Equal(t, "srv01", filter.Where["hostname"])

		json.NewEncoder(w).Encode([]AgentDetail{
			{ID: "agent-1", Hostname: "srv01", Status: "protected"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "av-secret")
	agents, err := c.GetAgentDetails(context.Background(), "SRV01")
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "agent-1", agents[0].ID)
}

func TestGetAgentAlertsOrdersAndLimits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Alerts", r.URL.Path)

		var filter struct {
			Where map[string]string `json:"where"`
			Order string            `json:"order"`
			Limit int               `json:"limit"`
		}
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("filter")), &filter))
		assert.Equal(t, "agent-1", filter.Where["agentId"])
		assert.Equal(t, "createdOn DESC", filter.Order)
		assert.Equal(t, 5, filter.Limit)

		json.NewEncoder(w).Encode([]Alert{{ID: "al-1", Severity: "high"}})
	}))
	defer srv.Close()

	c := New(srv.URL, "av-secret")
	alerts, err := c.GetAgentAlerts(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "high", alerts[0].Severity)
}

func TestScanAgentPostsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Agents/scan", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, map[string]string{"id": "agent-1"}, payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "av-secret")
	require.NoError(t, c.ScanAgent(context.Background(), "agent-1"))
}
