package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubVerifier map[string]string

func (v stubVerifier) Verify(token string) (string, error) {
	if subject, ok := v[token]; ok {
		return subject, nil
	}
	return "", errors.New("invalid")
}

func newGateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), AuthJWT(stubVerifier{"good": "a@b.com"}, "/login", "/items/:id/public"))
	echo := func(c *gin.Context) { c.String(http.StatusOK, "subject=%s", Subject(c)) }
	r.POST("/login", echo)
	r.GET("/items/:id/public", echo)
	r.GET("/items/:id", echo)
	return r
}

func serve(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if path == "/login" {
		req.Method = http.MethodPost
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_AllowList(t *testing.T) {
	r := newGateRouter()

	rec := serve(r, "/login", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "subject=", rec.Body.String())

	rec = serve(r, "/items/7/public", "")
	assert.Equal(t, http.StatusOK, rec.Code, "allow-list matches route patterns")
}

func TestAuthJWT_Protected(t *testing.T) {
	r := newGateRouter()

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, "/items/7", tt.header)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusUnauthorized {
				assert.Equal(t, UnauthorizedMessage, rec.Body.String())
			} else {
				assert.Equal(t, "subject=a@b.com", rec.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newGateRouter()

	rec := serve(r, "/login", "")
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(RequestIDHeader))
}
