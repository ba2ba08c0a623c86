package routes

import (
	"github.com/gin-gonic/gin"

	"h2grid/internal/handlers"
	"h2grid/internal/middlewares"
	"h2grid/internal/services"
)

// AccountAuth pairs one account kind's handler with the service its session
// middleware checks against.
type AccountAuth struct {
	Path    string
	Handler *handlers.AuthHandler
	Service *services.AuthService
}

type AuthRoutes struct {
	accounts []AccountAuth
	limiter  *middlewares.RateLimiter
}

func NewAuthRoutes(limiter *middlewares.RateLimiter, accounts ...AccountAuth) *AuthRoutes {
	return &AuthRoutes{accounts: accounts, limiter: limiter}
}

func (r *AuthRoutes) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	for _, a := range r.accounts {
		group := auth.Group("/" + a.Path)

		// Credential endpoints are rate limited per client IP.
		public := group.Group("")
		if r.limiter != nil {
			public.Use(r.limiter.Handler())
		}
		public.POST("/register", a.Handler.Register)
		public.POST("/login", a.Handler.Login)

		group.POST("/logout", a.Handler.Logout)
		group.GET("/exists", middlewares.Session(a.Service), a.Handler.Exists)
	}
}
