package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/chat"
	"github.com/margdarshak/margdarshak-go/internal/logger"
	"github.com/margdarshak/margdarshak-go/internal/metrics"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kb := &catalog.KnowledgeBase{
		Greetings: []catalog.CannedReply{
			{Keyword: "hello", Reply: "Hello! How can I help you today?"},
		},
		Scholarships: []catalog.Scholarship{{Name: "INSPIRE"}},
	}
	log := logger.NewWithWriter("error", io.Discard)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	resolver := chat.NewResolver(chat.ResolverOptions{
		KnowledgeBase:    kb,
		Registry:         chat.NewRegistry(),
		History:          chat.NewHistory(10),
		Metrics:          m,
		Logger:           log,
		SearchTimeout:    time.Second,
		TranslateTimeout: time.Second,
	})

	router := gin.New()
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	setupRoutes(router, resolver, kb, catalog.NewCatalog(nil), m, registry, log)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/chat", `{"message":"hello","language":"en"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello! How can I help you today?", resp["response"])
	assert.Equal(t, "en", resp["language"])
}

func TestChatEndpointNormalizesLanguage(t *testing.T) {
	router := newTestRouter(t)

	for _, lang := range []string{"", "auto", "xx"} {
		w := doRequest(router, http.MethodPost, "/api/chat", `{"message":"hello","language":"`+lang+`"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "en", resp["language"], "language %q should normalize to en", lang)
	}
}

func TestChatEndpointRejectsNonJSON(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/chat", "message=hello")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Request must be JSON"}`, w.Body.String())
}

func TestChatEndpointRejectsBlankMessage(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/chat", `{"message":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestLanguagesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/languages", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Languages map[string]string `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "English", resp.Languages["en"])
	assert.Equal(t, "Hindi", resp.Languages["hi"])
	assert.Len(t, resp.Languages, 10)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	_, err := time.Parse(time.RFC3339, resp["timestamp"])
	assert.NoError(t, err, "timestamp should be RFC3339")
}

func TestReadyEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ready"`)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Generate one chat request so a counter exists
	doRequest(router, http.MethodPost, "/api/chat", `{"message":"hello"}`)

	w := doRequest(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "margdarshak_chat_requests_total")
}

func TestSecurityHeaders(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
