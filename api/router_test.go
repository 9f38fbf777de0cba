package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/character"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/database"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "characters.db"), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, character.Migrate(db.Gorm))

	m, err := metrics.New(nil)
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.Middleware())
	SetupRoutes(r, Deps{DB: db, Metrics: m, Log: logger.Discard()})
	return r
}

func TestRoutesAreRegistered(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/characters", strings.NewReader(`{"character":"学"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	for _, path := range []string{
		"/api/characters",
		"/api/characters/1",
		"/api/characters/random",
		"/api/characters/export",
		"/api/stats",
		"/api/records/recent",
		"/api/mistakes",
		"/healthz",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hanzi_http_requests_total{method="GET",route="/api/stats",status="200"} 1`)
}
