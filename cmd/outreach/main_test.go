package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach/internal/config"
	applog "outreach/internal/log"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:               "8081",
		RateLimitPerMinute: 60,
		DataBackend:        "memory",
		DataDir:            t.TempDir(),
		CallerName:         "Mankwe",
		CallerMarket:       "Randburg plumbers",
	}
}

func TestNewAppServesDashboard(t *testing.T) {
	logger := applog.New(applog.Config{Output: &bytes.Buffer{}})

	srv, svc, err := newApp(context.Background(), testConfig(t), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
		_ = svc.Close()
	})

	assert.Equal(t, ":8081", srv.Addr)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewAppRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataBackend = "postgres"

	_, _, err := newApp(context.Background(), cfg, applog.New(applog.Config{Output: &bytes.Buffer{}}))
	assert.ErrorContains(t, err, "backend config")
}

func TestNewAppSQLiteReady(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataBackend = "sqlite"
	cfg.SQLiteDBPath = t.TempDir() + "/outreach.db"

	srv, svc, err := newApp(context.Background(), cfg, applog.New(applog.Config{Output: &bytes.Buffer{}}))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
		_ = svc.Close()
	})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}
