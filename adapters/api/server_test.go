package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterstats "golehmer/adapters/stats"
	"golehmer/app"
	"golehmer/domain/lehmer"
	"golehmer/internal/testkit"
	"golehmer/ports"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runs := app.NewRunService(testkit.NewInMemoryRunLedger(), adapterstats.NewQualityBattery(), nil)
	srv := httptest.NewServer(NewServer(runs, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func createRun(t *testing.T, srv *httptest.Server, body string) ports.RunRecord {
	t.Helper()
	resp, err := http.Post(srv.URL+"/runs", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var record ports.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	return record
}

func TestCreateDrawReplayRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	record := createRun(t, srv, `{"seed": 123456789, "stream_count": 2}`)
	assert.Equal(t, lehmer.DefaultModulus, record.Modulus)
	assert.Equal(t, 2, record.StreamCount)

	// Draw ten values.
	resp, err := http.Post(srv.URL+"/runs/"+record.ID.String()+"/draw?n=10", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var draw drawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&draw))
	require.Len(t, draw.Values, 10)

	// The same configuration reproduces the same values.
	ref := lehmer.MustNew(lehmer.Config{Seed: 123456789, StreamCount: 2})
	assert.Equal(t, ref.Draw(10), draw.Values)

	// Replay confirms the recorded tuple.
	replayResp, err := http.Get(srv.URL + "/runs/" + record.ID.String() + "/replay")
	require.NoError(t, err)
	defer replayResp.Body.Close()
	assert.Equal(t, http.StatusOK, replayResp.StatusCode)
}

func TestCreateRunValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "zero seed", body: `{"seed": 0}`},
		{name: "schrage violation", body: `{"seed": 1, "modulus": 13, "multiplier": 5}`},
		{name: "unknown policy", body: `{"seed": 1, "policy": "shuffled"}`},
		{name: "malformed body", body: `{"seed": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/runs", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestDrawNormalized(t *testing.T) {
	srv := newTestServer(t)
	record := createRun(t, srv, `{"seed": 1}`)

	resp, err := http.Post(srv.URL+"/runs/"+record.ID.String()+"/draw?n=5&normalized=true", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var draw drawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&draw))
	require.Len(t, draw.Normalized, 5)
	for _, v := range draw.Normalized {
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSelectStreamWraps(t *testing.T) {
	srv := newTestServer(t)
	record := createRun(t, srv, `{"seed": 123456789, "stream_count": 3}`)

	body := bytes.NewReader([]byte(`{"index": 7}`))
	resp, err := http.Post(srv.URL+"/runs/"+record.ID.String()+"/select", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sel map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sel))
	assert.Equal(t, 1, sel["stream_index"]) // 7 mod 3
}

func TestGetRunNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/runs/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	badID, err := http.Get(srv.URL + "/runs/not-a-uuid")
	require.NoError(t, err)
	defer badID.Body.Close()
	assert.Equal(t, http.StatusBadRequest, badID.StatusCode)
}

func TestReportEndpoints(t *testing.T) {
	srv := newTestServer(t)
	record := createRun(t, srv, `{"seed": 1}`)

	resp, err := http.Get(fmt.Sprintf("%s/runs/%s/report?samples=5000", srv.URL, record.ID))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report ports.QualityReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 5000, report.Samples)
	assert.True(t, report.Uniform)

	htmlResp, err := http.Get(fmt.Sprintf("%s/runs/%s/report.html?samples=5000", srv.URL, record.ID))
	require.NoError(t, err)
	defer htmlResp.Body.Close()
	require.Equal(t, http.StatusOK, htmlResp.StatusCode)
	assert.Contains(t, htmlResp.Header.Get("Content-Type"), "text/html")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
