package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (auth.Claims, error) {
	sub, ok := s[token]
	if !ok {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	var claims auth.Claims
	claims.Subject = sub
	return claims, nil
}

func ownerRouter(mode string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identify(stubVerifier{"good": "user-1"}))
	router.GET("/api/users/:id/resume", RequireOwner(mode), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"caller": UserIDFromContext(c)})
	})
	return router
}

func TestRequireOwnerOpenModeAllowsAnonymous(t *testing.T) {
	router := ownerRouter(config.AuthModeOpen)

	req := httptest.NewRequest(http.MethodGet, "/api/users/user-2/resume", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestIdentifyLeavesInvalidTokensAnonymous(t *testing.T) {
	router := ownerRouter(config.AuthModeOpen)

	for _, header := range []string{"Bearer stale", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/api/users/user-2/resume", nil)
		req.Header.Set("Authorization", header)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d", header, resp.Code)
		}
		if body := resp.Body.String(); body != `{"caller":""}` {
			t.Fatalf("%q: expected anonymous caller, got %s", header, body)
		}
	}
}

func TestRequireOwnerTokenMode(t *testing.T) {
	router := ownerRouter(config.AuthModeToken)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "missing token", path: "/api/users/user-1/resume", want: http.StatusUnauthorized},
		{name: "bad scheme", path: "/api/users/user-1/resume", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "unknown token", path: "/api/users/user-1/resume", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "other user", path: "/api/users/user-2/resume", header: "Bearer good", want: http.StatusForbidden},
		{name: "owner", path: "/api/users/user-1/resume", header: "Bearer good", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestStubVerifierRejectsUnknown(t *testing.T) {
	if _, err := (stubVerifier{}).Verify("x"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
