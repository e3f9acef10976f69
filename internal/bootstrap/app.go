package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/render"
	"resume-builder/internal/resume"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	Store         object.ObjectStore
	Tokens        *auth.Issuer
	Catalog       *render.Catalog
	UsersRepo     users.Repo
	ResumeRepo    resume.Repo
	UsersService  *users.Service
	ResumeService *resume.Service
	HealthService *health.Service
	UsersHandler  *users.Handler
	ResumeHandler *resume.Handler
	RenderHandler *render.Handler
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.AuthMode) == "" {
		cfg.AuthMode = config.AuthModeOpen
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 10
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewIssuer(cfg.JWTSecret, cfg.Env, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	catalog, err := render.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Store:   store,
		Tokens:  tokens,
		Catalog: catalog,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		Tokens:        app.Tokens,
		Health:        app.HealthService,
		UsersHandler:  app.UsersHandler,
		ResumeHandler: app.ResumeHandler,
		RenderHandler: app.RenderHandler,
		Limiter:       middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	var userRepo users.Repo
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
	}

	hasher, err := users.NewPasswordHasher(app.Config.BcryptCost)
	if err != nil {
		return err
	}
	userSvc := users.NewService(userRepo, hasher, app.Tokens)

	var resumeRepo resume.Repo
	if app.DB != nil {
		resumeRepo = &resume.PGRepo{DB: app.DB}
	} else {
		resumeRepo = resume.NewMemoryRepo(accountsAdapter{svc: userSvc})
	}
	resumeSvc := resume.NewService(resumeRepo, resume.ObjectAssets{Store: app.Store})

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}

	app.UsersRepo = userRepo
	app.ResumeRepo = resumeRepo
	app.UsersService = userSvc
	app.ResumeService = resumeSvc
	app.HealthService = health.NewService(pinger, app.Config.ObjectStoreType)
	app.UsersHandler = users.NewHandler(userSvc)
	app.ResumeHandler = resume.NewHandler(resumeSvc, app.Config.MaxUploadBytes)
	app.RenderHandler = render.NewHandler(app.Catalog, resumeSvc, app.Config.PublicBaseURL)

	if app.UsersHandler == nil || app.ResumeHandler == nil || app.RenderHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}

// accountsAdapter exposes user accounts as resume identities.
type accountsAdapter struct {
	svc *users.Service
}

func (a accountsAdapter) Identity(ctx context.Context, userID string) (resume.Identity, error) {
	account, err := a.svc.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return resume.Identity{}, resume.ErrNotFound
		}
		return resume.Identity{}, err
	}
	return resume.Identity{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
	}, nil
}
