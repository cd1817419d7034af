package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"etl-dashboard/pkg/router"
)

func respond(body string) router.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func do(t *testing.T, r *router.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ExactMatch(t *testing.T) {
	r := router.New()
	r.GET("/api/v1/runs", respond("list"))

	rec := do(t, r, http.MethodGet, "/api/v1/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "list", rec.Body.String())
}

func TestRouter_WildcardSegment(t *testing.T) {
	r := router.New()
	r.GET("/api/v1/runs/*/logs", respond("logs"))
	r.GET("/api/v1/runs/*", respond("run"))

	rec := do(t, r, http.MethodGet, "/api/v1/runs/abc-123/logs")
	require.Equal(t, "logs", rec.Body.String())

	rec = do(t, r, http.MethodGet, "/api/v1/runs/abc-123")
	require.Equal(t, "run", rec.Body.String())
}

func TestRouter_RegistrationOrderWins(t *testing.T) {
	r := router.New()
	r.GET("/api/v1/runs/*/logs", respond("logs"))
	r.GET("/api/v1/runs/*", respond("run"))

	// The generic route must not shadow the specific one registered first.
	rec := do(t, r, http.MethodGet, "/api/v1/runs/id/logs")
	require.Equal(t, "logs", rec.Body.String())
}

func TestRouter_TrailingWildcard(t *testing.T) {
	r := router.New()
	r.GET("/swagger/*", respond("swagger"))

	for _, path := range []string{"/swagger/index.html", "/swagger/doc.json", "/swagger/a/b/c"} {
		rec := do(t, r, http.MethodGet, path)
		require.Equal(t, "swagger", rec.Body.String(), "path %s", path)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := router.New()
	r.POST("/api/v1/runs", respond("created"))

	rec := do(t, r, http.MethodDelete, "/api/v1/runs")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_NotFound(t *testing.T) {
	r := router.New()
	r.GET("/api/v1/runs", respond("list"))

	rec := do(t, r, http.MethodGet, "/api/v1/jobs")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// A wildcard must not match a shorter path.
	r.GET("/api/v1/runs/*/logs", respond("logs"))
	rec = do(t, r, http.MethodGet, "/api/v1/runs")
	require.Equal(t, http.StatusOK, rec.Code)
}
