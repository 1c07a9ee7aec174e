package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheet-gateway-backend/internal/common/config"
	"sheet-gateway-backend/internal/platform/lock"
	"sheet-gateway-backend/internal/platform/store"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Origin = "*"
	cfg.Server.AdminToken = "secret"
	cfg.Tables.Batch = "Feuille 1"
	cfg.Tables.Activity = "Feuille 2"
	cfg.Tables.Devices = "Feuille 3"
	cfg.Tables.Keys = "Feuille 4"
	cfg.Tables.UserKeys = "Feuille 5"
	return cfg
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", "secret")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func alwaysReady(context.Context) error { return nil }

func TestRouter_Probes(t *testing.T) {
	router := newRouter(testConfig(), store.NewMemoryStore(), lock.NewLocalLocker(time.Second), alwaysReady)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/live", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/ready", "").Code)

	rr := serve(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sheet_gateway_lock_wait_seconds")

	rr = serve(router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"NOT_FOUND"`)
}

func TestRouter_NotReady(t *testing.T) {
	down := func(context.Context) error { return errors.New("redis unavailable") }
	router := newRouter(testConfig(), store.NewMemoryStore(), lock.NewLocalLocker(time.Second), down)

	rr := serve(router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRouter_EndToEnd(t *testing.T) {
	mem := store.NewMemoryStore()
	router := newRouter(testConfig(), mem, lock.NewLocalLocker(time.Second), alwaysReady)

	rr := serve(router, http.MethodPost, "/api/v1/write", `{"values": [["alice", "dev-1", "100", "fixed", "s1"]]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = serve(router, http.MethodPost, "/api/v1/keys", `{"key": "K", "limit": 1}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = serve(router, http.MethodPost, "/api/v1/keys/validate", `{"key": "K", "user": "alice"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"valid": true}`, rr.Body.String())

	rr = serve(router, http.MethodGet, "/api/v1/read?table=Feuille%205&range=A:E", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[["User","Keys","Counter","Status","Message"],["alice","K","1","Active"]]`, rr.Body.String())

	rr = serve(router, http.MethodGet, "/api/v1/read?range=A1:E1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[["alice","dev-1","100","fixed","s1"]]`, rr.Body.String())
}
