package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/analyses"
	googleauth "github.com/Shiki0138/ai-subsidy-system-sub004/internal/auth"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/companies"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/documents"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/llm"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/llm/openai"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/programs"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/config"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/metrics"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/server/middleware"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/server/respond"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/storage/db"
	localstore "github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/storage/object/local"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/usage"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
	)

	// Dependencies
	store := localstore.New(cfg.LocalStoreDir)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else if err := db.RunMigrations(context.Background(), conn); err != nil {
			log.Printf("failed to run migrations, falling back to memory: %v", err)
		} else {
			sqlDB = conn
		}
	}

	var programRepo programs.Repo
	var companyRepo companies.Repo
	var analysisRepo analyses.Repo
	var documentRepo documents.Repo
	var usageStore usage.Store
	if sqlDB != nil {
		programRepo = &programs.PGRepo{DB: sqlDB}
		companyRepo = &companies.PGRepo{DB: sqlDB}
		analysisRepo = &analyses.PGRepo{DB: sqlDB}
		documentRepo = &documents.PGRepo{DB: sqlDB}
		usageStore = &usage.PGStore{DB: sqlDB}
	} else {
		programRepo = programs.NewSeededMemoryRepo()
		companyRepo = companies.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		documentRepo = documents.NewMemoryRepo()
		usageStore = usage.NewMemoryStore()
	}

	usageSvc := usage.NewService(usageStore)
	programSvc := &programs.Service{Repo: programRepo}
	companySvc := companies.NewService(companyRepo)
	documentSvc := documents.NewService(documentRepo, store)
	analysisSvc := analyses.NewService(analysisRepo, programRepo, companyRepo, usageSvc, newLLMClient(cfg))
	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	googleAuthSvc.RegisterRoutes(api)
	registerMeRoutes(api)
	programs.NewHandler(programSvc).RegisterRoutes(api)
	companies.NewHandler(companySvc).RegisterRoutes(api)
	documents.NewHandler(documentSvc).RegisterRoutes(api)
	usage.NewHandler(usageSvc).RegisterRoutes(api)

	// Analysis creation fans out to the LLM provider; keep a request
	// rate cap in front of the per-plan quota.
	analysisGroup := api.Group("")
	analysisGroup.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYZE": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/analyze") {
				return "ANALYZE"
			}
			return ""
		},
	}))
	analyses.NewHandler(analysisSvc).RegisterRoutes(analysisGroup)

	return r
}

func newLLMClient(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("LLM disabled: %v", err)
			return nil
		}
		return client
	case "", "none":
		return nil
	default:
		log.Printf("unknown LLM provider %q, drafting disabled", cfg.LLMProvider)
		return nil
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
