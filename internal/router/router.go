package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-users/internal/handlers/users"
	"go-users/internal/middleware"
	"go-users/internal/stores"
	"go-users/internal/token"
)

// UsersPath is where the user routes are mounted.
const UsersPath = "/api/v1/users"

type Options struct {
	AdminRole   string
	CORSOrigins []string
}

// NewRouter wires middleware and user routes onto a fresh engine.
func NewRouter(
	h *users.UserHandler,
	tokens token.TokenService,
	revoked stores.RevokedTokenStore,
	log *slog.Logger,
	opts Options,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.ErrorHandler(log))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.AuthHeader},
			ExposeHeaders: []string{middleware.AuthHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := middleware.JWTAuthMiddleware(tokens, revoked, log)
	objectID := middleware.ValidateObjectID("id")

	g := r.Group(UsersPath)
	{
		g.POST("/signup", h.Signup)
		g.POST("/login", h.Login)
		g.POST("/logout", h.Logout)

		list := []gin.HandlerFunc{auth, middleware.RequireRole(opts.AdminRole), h.Get}
		g.GET("", list...)
		g.GET("/", list...)
		g.GET("/:id", objectID, auth, h.GetByID)
		g.PUT("/:id", objectID, h.Put)
		g.DELETE("/:id", objectID, auth, h.Delete)
	}

	return r
}
