package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/migrate"
	"github.com/reoring/draftkit/validate"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.EnableCORS = true
	ts := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListDrafts(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/drafts")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out DraftsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Drafts, 3)
	assert.Equal(t, draft.Draft07, out.Drafts[0].Draft)
	assert.Equal(t, "xeipuuv/gojsonschema", out.Drafts[0].Engine)
	assert.True(t, out.Drafts[2].Features.PrefixItems)
	assert.Equal(t, draft.Draft202012, out.Latest)
}

func TestDetect(t *testing.T) {
	ts := newTestServer(t)
	resp, body := post(t, ts, "/api/v1/detect", `{"schema": {"definitions": {}}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out DetectResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, draft.Draft07, out.Draft)
	assert.Equal(t, "Draft 07", out.DisplayName)
	assert.True(t, out.Compatible)
}

func TestDetect_BadRequests(t *testing.T) {
	ts := newTestServer(t)
	for _, body := range []string{`{`, `{}`, `not json`} {
		resp, b := post(t, ts, "/api/v1/detect", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		var e ErrorResponse
		require.NoError(t, json.Unmarshal(b, &e))
		assert.NotEmpty(t, e.Error)
	}
}

func TestMigrate(t *testing.T) {
	ts := newTestServer(t)
	resp, body := post(t, ts, "/api/v1/migrate",
		`{"schema": {"type": "array", "items": [{"type": "string"}], "additionalItems": false}, "fromDraft": "draft7"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out migrate.Report
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, draft.Draft07, out.Summary.SourceDraft)
	assert.True(t, out.Completeness.Success)
	migrated := out.Migrated.(map[string]any)
	assert.Equal(t, false, migrated["items"])
	assert.Len(t, migrated["prefixItems"], 1)
	assert.NotEmpty(t, out.Diff)
}

func TestMigrate_UnknownDraft(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := post(t, ts, "/api/v1/migrate", `{"schema": {}, "fromDraft": "draft-04"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummary(t *testing.T) {
	ts := newTestServer(t)
	resp, body := post(t, ts, "/api/v1/summary", `{"schema": {"$recursiveRef": "#"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out migrate.Summary
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, draft.Draft201909, out.SourceDraft)
	assert.Contains(t, out.Changes, `Convert "$recursiveRef" → "$dynamicRef"`)
}

func TestValidate(t *testing.T) {
	ts := newTestServer(t)
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	resp, body := post(t, ts, "/api/v1/validate", `{"schema": `+schema+`, "data": {"name": "John"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ok ValidateResponse
	require.NoError(t, json.Unmarshal(body, &ok))
	assert.True(t, ok.Valid)
	assert.Equal(t, draft.Draft202012, ok.Draft)
	assert.Contains(t, string(body), `"errors":[]`)

	resp, body = post(t, ts, "/api/v1/validate", `{"schema": `+schema+`, "data": {}, "draft": "draft-07"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bad ValidateResponse
	require.NoError(t, json.Unmarshal(body, &bad))
	assert.False(t, bad.Valid)
	assert.Equal(t, draft.Draft07, bad.Draft)
	require.NotEmpty(t, bad.Errors)
	assert.Equal(t, "/", bad.Errors[0].Path)
}

func TestCheck(t *testing.T) {
	ts := newTestServer(t)
	_, body := post(t, ts, "/api/v1/check", `{"schema": {"type": "string"}}`)
	var ok CheckResponse
	require.NoError(t, json.Unmarshal(body, &ok))
	assert.True(t, ok.Valid)

	_, body = post(t, ts, "/api/v1/check", `{"schema": {"type": 12}, "draft": "2019-09"}`)
	var bad CheckResponse
	require.NoError(t, json.Unmarshal(body, &bad))
	assert.False(t, bad.Valid)
	assert.NotEmpty(t, bad.Error)
}

func TestTypeSchema(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/types/validate-request")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sch map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sch))
	assert.Equal(t, draft.Draft202012, draft.Detect(sch))
	props := sch["properties"].(map[string]any)
	assert.Contains(t, props, "schema")
	assert.Contains(t, props, "draft")

	resp2, err := http.Get(ts.URL + "/api/v1/types/nope")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestTypeSchema_DescribesRequests(t *testing.T) {
	for _, name := range TypeNames() {
		sch, err := TypeSchema(name)
		require.NoError(t, err, name)
		b, err := json.Marshal(sch)
		require.NoError(t, err)
		var doc any
		require.NoError(t, json.Unmarshal(b, &doc))
		assert.NoError(t, validate.CheckSchema(doc, draft.Draft202012), name)
	}

	sch, err := TypeSchema("detect-request")
	require.NoError(t, err)
	b, _ := json.Marshal(sch)
	var doc any
	require.NoError(t, json.Unmarshal(b, &doc))
	res := validate.Validate(doc, map[string]any{"schema": true}, "", validate.DefaultOptions())
	assert.True(t, res.Valid, res.Errors)
	res = validate.Validate(doc, map[string]any{}, "", validate.DefaultOptions())
	assert.False(t, res.Valid)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/validate", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts, "/api/v1/detect", `{"schema": true}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), `draftkit_detections_total{draft="2020-12"} 1`)
	assert.Contains(t, string(b), `draftkit_http_requests_total{route="/api/v1/detect",status="200"} 1`)
}

func TestBodyLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 16
	ts := httptest.NewServer(New(cfg).Handler())
	defer ts.Close()
	resp, err := http.Post(ts.URL+"/api/v1/detect", "application/json", bytes.NewReader([]byte(`{"schema": {"type": "string", "minLength": 1}}`)))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
