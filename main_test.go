package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Truss/internal/calc/material"
	"Truss/internal/config"
	"Truss/internal/metrics"
	"Truss/internal/repo"
	"Truss/internal/truss"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testServer(t *testing.T) *httptest.Server {
	cfg := config.Config{
		TokenKey:     "test-key",
		RateLimit:    1000,
		RateBurst:    1000,
		Material:     material.Steel(),
		MaxCondition: truss.DefaultMaxCondition,
	}
	srv := httptest.NewServer(NewHandler(cfg, repo.NewMemory(), metrics.New("test"), zaptest.NewLogger(t)))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_AnonymousBridge(t *testing.T) {
	srv := testServer(t)

	resp := post(t, srv.URL+"/api/tools/bridge/calc", "", map[string]any{"panel_count": 3, "area_m2": 0.01})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Empty(t, resp.Header.Get("X-Analysis-ID"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_RegisterRunAndHistory(t *testing.T) {
	srv := testServer(t)

	resp := post(t, srv.URL+"/api/register", "", map[string]string{
		"login": "anna", "email": "anna@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))

	resp = post(t, srv.URL+"/api/tools/bridge/calc", session.Token, map[string]any{"panel_count": 4, "area_m2": 0.01, "live_load_kn": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-Analysis-ID"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/user/analyses/1", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	got, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer got.Body.Close()
	require.Equal(t, http.StatusOK, got.StatusCode)
	var a repo.Analysis
	require.NoError(t, json.NewDecoder(got.Body).Decode(&a))
	assert.Equal(t, "bridge", a.Kind)
}

func TestServer_SecureRoutesNeedToken(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/user/analyses")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	r := post(t, srv.URL+"/api/user/premium/batch/bridge", "", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
}

func TestServer_SingularIs422(t *testing.T) {
	srv := testServer(t)
	resp := post(t, srv.URL+"/api/tools/bridge/calc", "", map[string]any{
		"panel_count": 3, "area_m2": 0.01, "fixed_dofs": []int{0},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	srv := testServer(t)
	post(t, srv.URL+"/api/tools/loads/calc", "", map[string]any{"dead_kn": 10, "live_kn": 5})

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `test_http_requests_total{method="POST",route="/api/tools/loads/calc",status="200"} 1`)
}
