package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sha1n/mcp-widget-catalog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMetricsPath = "/metrics"

var (
	basicSettings = config.AuthSettings{
		Type:  config.AuthTypeBasic,
		Basic: config.BasicAuthSettings{Username: "admin", Password: "secret"},
	}
	apiKeySettings = config.AuthSettings{
		Type:    config.AuthTypeAPIKey,
		APIKeys: []string{"key-one", "key-two"},
	}
)

type authRequest struct {
	path     string
	user     string
	password string
	apiKey   string
}

func (r authRequest) build() *http.Request {
	path := r.path
	if path == "" {
		path = "/sse"
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if r.user != "" || r.password != "" {
		req.SetBasicAuth(r.user, r.password)
	}
	if r.apiKey != "" {
		req.Header.Set("X-API-Key", r.apiKey)
	}
	return req
}

func serve(t *testing.T, settings config.AuthSettings, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	middleware, err := NewMiddleware(settings, testMetricsPath)
	require.NoError(t, err)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_Requests(t *testing.T) {
	tests := []struct {
		name     string
		settings config.AuthSettings
		req      authRequest
		expected int
	}{
		{"none", config.AuthSettings{Type: config.AuthTypeNone}, authRequest{}, http.StatusOK},
		{"empty type", config.AuthSettings{}, authRequest{}, http.StatusOK},

		{"basic valid", basicSettings, authRequest{user: "admin", password: "secret"}, http.StatusOK},
		{"basic wrong password", basicSettings, authRequest{user: "admin", password: "nope"}, http.StatusUnauthorized},
		{"basic wrong user", basicSettings, authRequest{user: "root", password: "secret"}, http.StatusUnauthorized},
		{"basic no credentials", basicSettings, authRequest{}, http.StatusUnauthorized},
		{"basic health", basicSettings, authRequest{path: "/health"}, http.StatusOK},
		{"basic metrics", basicSettings, authRequest{path: testMetricsPath}, http.StatusOK},
		{"basic metrics subpath", basicSettings, authRequest{path: testMetricsPath + "/x"}, http.StatusUnauthorized},

		{"apikey first key", apiKeySettings, authRequest{apiKey: "key-one"}, http.StatusOK},
		{"apikey second key", apiKeySettings, authRequest{apiKey: "key-two"}, http.StatusOK},
		{"apikey wrong key", apiKeySettings, authRequest{apiKey: "key-three"}, http.StatusUnauthorized},
		{"apikey missing", apiKeySettings, authRequest{}, http.StatusUnauthorized},
		{"apikey health", apiKeySettings, authRequest{path: "/health"}, http.StatusOK},
		{"apikey metrics", apiKeySettings, authRequest{path: testMetricsPath}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.settings, tt.req.build())
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestMiddleware_BasicChallengeHeader(t *testing.T) {
	rec := serve(t, basicSettings, authRequest{}.build())

	assert.Equal(t, `Basic realm="Restricted"`, rec.Header().Get("WWW-Authenticate"))
}

func TestMiddleware_PublicPathsOnlyWhenGiven(t *testing.T) {
	middleware, err := NewMiddleware(apiKeySettings)
	require.NoError(t, err)
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, testMetricsPath, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "metrics needs auth unless registered as public")
}

func TestNewMiddleware_InvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings config.AuthSettings
	}{
		{"basic without username", config.AuthSettings{Type: config.AuthTypeBasic, Basic: config.BasicAuthSettings{Password: "secret"}}},
		{"basic without password", config.AuthSettings{Type: config.AuthTypeBasic, Basic: config.BasicAuthSettings{Username: "admin"}}},
		{"apikey without keys", config.AuthSettings{Type: config.AuthTypeAPIKey}},
		{"unknown type", config.AuthSettings{Type: "oauth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMiddleware(tt.settings)
			assert.Error(t, err)
		})
	}
}

func TestIsExcludedPath(t *testing.T) {
	extra := map[string]bool{testMetricsPath: true}

	tests := []struct {
		path     string
		expected bool
	}{
		{"/health", true},
		{testMetricsPath, true},
		{"/sse", false},
		{"/health/", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isExcludedPath(tt.path, extra))
		})
	}

	assert.False(t, isExcludedPath(testMetricsPath, nil), "metrics path needs registration")
}
