package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common/config"
)

func authTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", TokenAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/generate", BackendKeyCheck(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func TestTokenAuthOpenWithoutToken(t *testing.T) {
	prev := config.AccessToken
	config.AccessToken = ""
	defer func() { config.AccessToken = prev }()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	authTestEngine().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when no token is configured", w.Code)
	}
}

func TestTokenAuthRejectsBadToken(t *testing.T) {
	prev := config.AccessToken
	config.AccessToken = "secret"
	defer func() { config.AccessToken = prev }()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"correct token", "Bearer secret", http.StatusOK},
		{"bare token", "secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			authTestEngine().ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestBackendKeyCheck(t *testing.T) {
	prev := config.GeminiAPIKey
	defer func() { config.GeminiAPIKey = prev }()

	config.GeminiAPIKey = ""
	w := httptest.NewRecorder()
	authTestEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generate", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without a backend key", w.Code)
	}

	config.GeminiAPIKey = "key"
	w = httptest.NewRecorder()
	authTestEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generate", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with a backend key", w.Code)
	}
}
