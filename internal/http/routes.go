package http

import (
	"devboard/internal/config"
	"devboard/internal/http/handlers"
	"devboard/internal/http/middleware"
	"devboard/internal/repository"
	"devboard/internal/secrets"
	"devboard/internal/summarize"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cipher *secrets.Cipher, cfg *config.Config, version string) {
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	summarizer := summarize.New(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.OpenAIModel)

	h := handlers.New(users, tasks, cipher, summarizer)
	healthHandler := handlers.NewHealthHandler(db, cipher, version)

	// Health checks (no auth, no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Account endpoints, rate limited per client IP
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	r.POST("/signup", authRL, h.Signup)
	r.POST("/login", authRL, h.Login)

	// Everything below resolves the bearer token to a user first
	guard := middleware.Auth(users)

	api := r.Group("/api")
	api.Use(guard)
	api.POST("/authorizations", h.SaveAuthorizations)
	api.GET("/authorizations", h.GetAuthorizations)

	r.GET("/tasks", guard, h.ListTasks)
	r.POST("/tasks", guard, h.CreateTask)
	r.PUT("/tasks/:id/complete", guard, h.CompleteTask)

	r.GET("/bitbucket_commits", guard, h.BitbucketCommits)
	r.GET("/jira_issues", guard, h.JiraIssues)
	r.GET("/jira_users", guard, h.JiraUsers)
	r.GET("/jira_statuses", guard, h.JiraStatuses)
	r.GET("/bitbucket_users", guard, h.BitbucketUsers)

	r.POST("/summarize", guard, h.Summarize)
}
