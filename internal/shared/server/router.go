package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"buildtrack-backend/internal/analysis"
	"buildtrack-backend/internal/projects"
	"buildtrack-backend/internal/shared/config"
	"buildtrack-backend/internal/shared/metrics"
	"buildtrack-backend/internal/shared/server/middleware"
	"buildtrack-backend/internal/shared/server/respond"
	"buildtrack-backend/internal/shared/storage/db"
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
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var repo projects.Repo
	if sqlDB != nil {
		repo = &projects.PGRepo{DB: sqlDB}
	} else {
		repo = projects.NewMemoryRepo()
	}

	var predictor analysis.DelayPredictor
	if cfg.PredictorURL != "" {
		predictor = analysis.NewPredictorClient(cfg.PredictorURL)
	}
	engine := analysis.NewService(predictor, cfg.AnalysisVersion)

	projectSvc := projects.NewService(repo)
	projectHandler := projects.NewHandler(projectSvc)
	analysisSvc := analysis.NewSubmitService(repo, engine)
	analysisHandler := analysis.NewHandler(analysisSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	projectHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)

	return r
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
