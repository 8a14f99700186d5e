package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecodrive/internal/handler"
	"github.com/pkordes/ecodrive/internal/middleware"
)

const webOrigin = "http://localhost:5173"

// okHandler answers every request with 200 and no body.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// apiRouter is the real route table with no services behind it. Requests
// that are rejected by middleware or body decoding never reach a service.
func apiRouter() http.Handler {
	return handler.NewServer(nil, nil, nil, nil, nil, slog.New(slog.DiscardHandler)).Routes()
}

func preflight(path, method string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", webOrigin)
	req.Header.Set("Access-Control-Request-Method", method)
	// Browsers send Access-Control-Request-Headers in lowercase; rs/cors
	// compares against its lowercased allow list.
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	return req
}

// ---- simple requests ----

func TestCORSHandler_AllowedOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{webOrigin})(okHandler)

	for _, path := range []string{"/dashboard", "/trips?page=2", "/export?format=csv"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Origin", webOrigin)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, webOrigin, rec.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id", path)
	}
}

func TestCORSHandler_UnknownOriginGetsNoHeader(t *testing.T) {
	h := middleware.NewCORSHandler([]string{webOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	// The response itself is served; the browser blocks it for lack of the header.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

// ---- preflights through the API router ----

func TestCORSHandler_PreflightForWriteRoutes(t *testing.T) {
	h := middleware.NewCORSHandler([]string{webOrigin})(apiRouter())

	tests := []struct {
		path   string
		method string
	}{
		{"/drivers", http.MethodPut},
		{"/drivers/2", http.MethodDelete},
		{"/settings", http.MethodPut},
		{"/trips", http.MethodPost},
		{"/trips/t1", http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, preflight(tt.path, tt.method))

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, webOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.method, rec.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
		})
	}
}

func TestCORSHandler_PreflightRejectsPatch(t *testing.T) {
	h := middleware.NewCORSHandler([]string{webOrigin})(apiRouter())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, preflight("/settings", http.MethodPatch))

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}
