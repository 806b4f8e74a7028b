package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/narrative"
	"github.com/rshade/esgready/internal/server"
)

const evaluateBody = `{
  "records": [
    {"date": "2024-01-01", "facility": "Plant A", "energy_kwh": 1000, "renewable_kwh": 200, "fuel_liters": 50}
  ],
  "year": 2024
}`

func newServer(t *testing.T) http.Handler {
	t.Helper()
	srv := server.New(engine.New(audit.FixedAlignment{}), narrative.NewService(nil, 0), zerolog.Nop())
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHealthz(t *testing.T) {
	rec, out := do(t, newServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestEvaluate(t *testing.T) {
	rec, out := do(t, newServer(t), http.MethodPost, "/v1/evaluate", evaluateBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	auditDoc, ok := out["audit"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 92.0, auditDoc["total_score"], 1e-9)

	kpis, ok := out["kpis"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 771.5, kpis["Total CO₂ (kg)"], 1e-9)
	assert.NotContains(t, out, "scope3")
}

func TestEvaluate_WithSpend(t *testing.T) {
	body := `{"records": [{"date": "2024-01-01", "facility": "A", "energy_kwh": 1000, "renewable_kwh": 500, "fuel_liters": 10}],
	          "spend": [{"category": "logistics", "annual_spend_eur": 1000}]}`
	rec, out := do(t, newServer(t), http.MethodPost, "/v1/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	s3, ok := out["scope3"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 180.0, s3["total_co2_kg"], 1e-9)
}

func TestEvaluate_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "malformed", body: `{"records": [`, want: "malformed JSON"},
		{name: "empty records", body: `{"records": []}`, want: "records must be"},
		{name: "missing column", body: `{"records": [{"energy_kwh": 1}]}`, want: "required column missing"},
		{name: "non-numeric", body: `{"records": [{"energy_kwh": "x", "renewable_kwh": 1, "fuel_liters": 1}]}`, want: "non-numeric"},
	}
	h := newServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, h, http.MethodPost, "/v1/evaluate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, out["error"], tt.want)
		})
	}
}

func TestCompare(t *testing.T) {
	body := `{"current": {"Total CO₂ (kg)": 700}, "previous": {"Total CO₂ (kg)": 771.5}}`
	rec, out := do(t, newServer(t), http.MethodPost, "/v1/compare", body)
	require.Equal(t, http.StatusOK, rec.Code)

	changes, ok := out["changes"].([]any)
	require.True(t, ok)
	require.Len(t, changes, 1)
	first, ok := changes[0].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, -71.5, first["change"], 1e-9)
	assert.Equal(t, "Reduction driven by efficiency measures", first["explanation"])
}

func TestMaturity(t *testing.T) {
	h := newServer(t)
	rec, out := do(t, h, http.MethodPost, "/v1/maturity", `{"audit_score": 72, "scope3_present": false, "year": 2025}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Managed", out["maturity_label"])
	assert.InDelta(t, 2025.0, out["year"], 1e-9)

	rec, _ = do(t, h, http.MethodPost, "/v1/maturity", `{"audit_score": 150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFrameworks(t *testing.T) {
	rec, out := do(t, newServer(t), http.MethodGet, "/v1/frameworks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, out, "mappings")
	assert.Contains(t, out, "coverage")
	assert.InDelta(t, 0.6042, out["coverage_ratio"], 1e-9)
}

func TestNarrative_Fallback(t *testing.T) {
	rec, out := do(t, newServer(t), http.MethodPost, "/v1/narrative", evaluateBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	n, ok := out["narrative"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, narrative.SourceDeterministic, n["source"])
	assert.Contains(t, n["text"], "## Governance")
}

func TestUnknownRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v2/nothing", nil)
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	srv := server.New(engine.New(audit.FixedAlignment{}), nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, getErr := http.Get("http://" + addr + "/healthz")
		if getErr != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not shut down")
	}
}
