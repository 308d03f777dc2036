package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAdminKeyMiddleware(t *testing.T) {
	cases := []struct {
		name       string
		configured string
		sent       string
		want       int
	}{
		{"disabled", "", "anything", http.StatusForbidden},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"wrong key", "secret", "guess", http.StatusUnauthorized},
		{"correct key", "secret", "secret", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := makeTestRouter(AdminKeyMiddleware(tc.configured))
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			if tc.sent != "" {
				req.Header.Set("X-Admin-Key", tc.sent)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	router := makeTestRouter(CORSMiddleware([]string{"http://localhost:3000"}))

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.OPTIONS("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	req, _ = http.NewRequest(http.MethodOptions, "/test", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestErrorReportingMiddleware_RepanicsIntoRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery(), ErrorReportingMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	assert.NotPanics(t, func() { r.ServeHTTP(w, req) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	router := makeTestRouter(CORSMiddleware([]string{"*"}))

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	router = makeTestRouter(CORSMiddleware([]string{"*", "http://localhost:3000"}))
	req, _ = http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
