package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/users"
)

func devConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		BcryptCost:      4,
	}
}

func TestBuildDevUsesMemoryRepositories(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	if app.DB != nil {
		t.Fatalf("expected no database in dev without DATABASE_URL")
	}
	if _, ok := app.UsersRepo.(*users.MemoryRepo); !ok {
		t.Fatalf("expected memory users repo, got %T", app.UsersRepo)
	}
	if _, ok := app.ResumeRepo.(*resume.MemoryRepo); !ok {
		t.Fatalf("expected memory resume repo, got %T", app.ResumeRepo)
	}
	if app.Config.AuthMode != config.AuthModeOpen || app.Config.ObjectStoreType != "local" {
		t.Fatalf("unexpected defaults: %+v", app.Config)
	}
}

func TestBuildRejectsIncompleteProductionConfig(t *testing.T) {
	cfg := devConfig(t)
	cfg.Env = "production"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}

	cfg = devConfig(t)
	cfg.ObjectStoreType = "s3"
	if _, err := Build(cfg); err == nil || !strings.Contains(err.Error(), "S3_BUCKET") {
		t.Fatalf("expected S3_BUCKET error, got %v", err)
	}
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("health: %d %s", resp.Code, resp.Body.String())
	}
	var health struct {
		OK       bool   `json:"ok"`
		Database string `json:"database"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if !health.OK || health.Database != "memory" {
		t.Fatalf("unexpected health %+v", health)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("metrics: %d", resp.Code)
	}
	for _, name := range []string{"resume_saved_total", "users_signup_total", "http_request_duration_ms_bucket"} {
		if !strings.Contains(resp.Body.String(), name) {
			t.Fatalf("metrics missing %s", name)
		}
	}
}

func TestRouterFallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if resp.Code != http.StatusNotFound || !strings.Contains(resp.Body.String(), "not_found") {
		t.Fatalf("expected not_found, got %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/api/users/signup", nil))
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/users/abc/resume", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
