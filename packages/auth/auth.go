package auth

import (
	"bab-arcade/packages/auth/handlers"
	"bab-arcade/packages/auth/middleware"
	"bab-arcade/packages/auth/services"
	"bab-arcade/packages/auth/utils"

	"github.com/gin-gonic/gin"
)

type Module struct {
	Handler  *handlers.AuthHandler
	Profiles *services.ProfileService
	issuer   *utils.TokenIssuer
}

func NewModule(profiles *services.ProfileService, issuer *utils.TokenIssuer) *Module {
	return &Module{
		Handler:  handlers.NewAuthHandler(profiles),
		Profiles: profiles,
		issuer:   issuer,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.POST("/refresh", m.Handler.RefreshToken)
		auth.POST("/logout", m.Handler.Logout)
		auth.POST("/logout-all", m.JWTMiddleware(), m.Handler.LogoutAll)
	}

	users := r.Group("/users", m.JWTMiddleware())
	{
		users.GET("/me", m.Handler.Profile)
	}
}

func (m *Module) JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware(m.issuer)
}

func GetProfileID(c *gin.Context) (uint, bool) {
	return middleware.GetProfileID(c)
}

func RequireRole(role string) gin.HandlerFunc {
	return middleware.RequireRole(role)
}

func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return middleware.RequireAnyRole(roles...)
}
