package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeforge-labs/pipeforge/internal/state"
	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Addr:    ":0",
		Compile: descriptor.Config{ProjectName: "testproj"},
	})
}

func setupTestServerWithStore(t *testing.T) *Server {
	t.Helper()

	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())

	return New(Config{
		Addr:    ":0",
		Store:   store,
		Compile: descriptor.Config{ProjectName: "testproj"},
	})
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "error responses must be JSON envelopes")
	return env.Error.Message
}

func TestCompileEndpoint(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/compile",
		`{"sql": "SELECT id, name FROM users WHERE created_at > '2026-01-01';"}`)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var desc descriptor.Descriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
	assert.Equal(t, []string{"id", "name"}, desc.Columns)
	assert.Equal(t, "users", desc.Source.Table)
	assert.Equal(t, descriptor.DefaultSourceType, desc.Source.Type)
	assert.Equal(t, descriptor.DefaultSinkType, desc.Sink.Type)
	assert.Equal(t, "created_at", desc.TimestampColumn)
}

func TestCompileEndpointParseError(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/compile", `{"sql": "SELECT FROM"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec))
}

func TestCompileEndpointMalformedJSON(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/compile", `{"sql": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "invalid request body")
}

func TestCompileEndpointMissingSQL(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/compile", `{"sql": "  "}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "sql is required", decodeError(t, rec))
}

func TestCompileEndpointConfigOverlay(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/compile", `{
		"sql": "SELECT id FROM orders",
		"config": {"source_type": "postgres", "batch_size": 500}
	}`)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var desc descriptor.Descriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
	assert.Equal(t, "postgres", desc.Source.Type)
	assert.Equal(t, 500, desc.Config.BatchSize)
	// Base config fields not named in the request survive the overlay.
	assert.Equal(t, "testproj", desc.Config.ProjectName)
}

func TestCompileEndpointBadConfig(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/compile", `{
		"sql": "SELECT id FROM orders",
		"config": {"sink": "not a map"}
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec))
}

func TestCompileEndpointRecordsHistory(t *testing.T) {
	s := setupTestServerWithStore(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/compile", `{
		"sql": "SELECT id FROM events",
		"pipeline": "events"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	rec = doRequest(t, s, http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Generations []*state.Generation `json:"generations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Generations, 1)
	assert.Equal(t, "events", resp.Generations[0].Pipeline)
	assert.Equal(t, state.GenerationStatusSuccess, resp.Generations[0].Status)
	assert.Contains(t, resp.Generations[0].DescriptorJSON, `"events"`)

	// Filter that matches nothing.
	rec = doRequest(t, s, http.MethodGet, "/api/v1/history?pipeline=other", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Generations)
}

func TestCompileEndpointWithoutPipelineSkipsHistory(t *testing.T) {
	s := setupTestServerWithStore(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/compile", `{"sql": "SELECT id FROM events"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Generations []*state.Generation `json:"generations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Generations)
}

func TestTokensEndpoint(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/tokens", `{"sql": "SELECT id FROM users"}`)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var resp struct {
		Tokens []tokenInfo `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tokens, 4)
	assert.Equal(t, tokenInfo{Kind: "SELECT", Literal: "SELECT", Line: 1, Col: 1}, resp.Tokens[0])
	assert.Equal(t, "IDENT", resp.Tokens[1].Kind)
	assert.Equal(t, "id", resp.Tokens[1].Literal)
	for _, tok := range resp.Tokens {
		assert.NotEqual(t, "EOF", tok.Kind)
	}
}

func TestTokensEndpointLexError(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/tokens", `{"sql": "SELECT 'abc"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec))
}

func TestHistoryEndpointInvalidLimit(t *testing.T) {
	s := setupTestServerWithStore(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/history?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryEndpointWithoutStore(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestSetCompileConfig(t *testing.T) {
	s := setupTestServer(t)

	s.SetCompileConfig(descriptor.Config{SourceType: "mysql"})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/compile", `{"sql": "SELECT id FROM users"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var desc descriptor.Descriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
	assert.Equal(t, "mysql", desc.Source.Type)
}
