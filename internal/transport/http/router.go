package httptransport

import (
	"log/slog"
	"time"

	"github.com/adilzhanb/taskhub/internal/transport/http/handler"
	"github.com/adilzhanb/taskhub/internal/transport/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, taskHandler *handler.TaskHandler, allowedOrigins []string, hmacKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// Public auth routes
	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected task routes; the caller identity comes only from the token.
	todos := r.Group("/todos", middleware.Auth(hmacKey))
	todos.GET("", taskHandler.List)
	todos.POST("", taskHandler.Create)
	todos.GET("/:id", taskHandler.GetByID)
	todos.PUT("/:id", taskHandler.Update)
	todos.DELETE("/:id", taskHandler.Delete)

	return r
}
