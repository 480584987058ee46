package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/easydev/internal/ratelimit"
	"github.com/ErlanBelekov/easydev/internal/transport/http/handler"
	"github.com/ErlanBelekov/easydev/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type RouterDeps struct {
	Logger         *slog.Logger
	Verifier       middleware.TokenVerifier
	AILimiter      ratelimit.Limiter
	AllowedOrigins []string
	MaxUploadBytes int64
	// HSTS adds Strict-Transport-Security; off for local plain-HTTP runs.
	HSTS           bool

	Auth      *handler.AuthHandler
	Notes     *handler.NoteHandler
	Snippets  *handler.SnippetHandler
	AI        *handler.AIHandler
	Converter *handler.ConverterHandler
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	if deps.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = deps.MaxUploadBytes
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(deps.HSTS))
	r.Use(middleware.CORS(deps.AllowedOrigins))
	r.Use(sloggin.New(deps.Logger))
	r.Use(middleware.Metrics())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	authMW := middleware.Auth(deps.Verifier, deps.Logger)
	api := r.Group("/api")

	// Accounts
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", deps.Auth.Signup)
	authGroup.POST("/signin", deps.Auth.Signin)
	authGroup.GET("/me", authMW, deps.Auth.Me)

	// Protected note routes
	notes := api.Group("/notes", authMW)
	notes.GET("", deps.Notes.List)
	notes.POST("", deps.Notes.Create)
	notes.GET("/:id", deps.Notes.GetByID)
	notes.PUT("/:id", deps.Notes.Update)
	notes.DELETE("/:id", deps.Notes.Delete)
	notes.POST("/:id/save", deps.Notes.SaveDraft)

	// Protected snippet routes
	snippets := api.Group("/snippets", authMW)
	snippets.GET("", deps.Snippets.List)
	snippets.POST("", deps.Snippets.Create)
	snippets.GET("/meta/languages", deps.Snippets.Languages)
	snippets.GET("/meta/tags", deps.Snippets.Tags)
	snippets.GET("/:id", deps.Snippets.GetByID)
	snippets.PUT("/:id", deps.Snippets.Update)
	snippets.DELETE("/:id", deps.Snippets.Delete)

	// Text completion, rate limited per user
	ai := api.Group("/ai", authMW)
	if deps.AILimiter != nil {
		ai.Use(middleware.RateLimit(deps.AILimiter, deps.Logger))
	}
	ai.POST("/process-text", deps.AI.ProcessText)

	// Public
	api.POST("/converter/excel-to-pdf", deps.Converter.ExcelToPDF)

	return r
}
