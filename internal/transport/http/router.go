package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/pdf-transparency/internal/transport/http/handler"
	"github.com/ErlanBelekov/pdf-transparency/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	documentHandler *handler.DocumentHandler,
	qaHandler *handler.QAHandler,
	sessions middleware.SessionValidator,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server running")
	})

	api := r.Group("/api")

	// Public auth routes
	api.POST("/check-duplicate", authHandler.CheckDuplicate)
	api.POST("/register/start", authHandler.RegisterStart)
	api.POST("/register/verify", authHandler.RegisterVerify)
	api.POST("/login/start", authHandler.LoginStart)
	api.POST("/login/verify", authHandler.LoginVerify)
	api.POST("/logout", authHandler.Logout)

	// Routes requiring a valid session cookie
	authed := api.Group("", middleware.Session(sessions))
	authed.GET("/me", authHandler.Me)
	authed.POST("/upload-pdf", documentHandler.Upload)
	authed.GET("/my-pdfs", documentHandler.List)
	authed.POST("/ask", qaHandler.Ask)
	authed.GET("/conversations", qaHandler.History)

	return r
}
