// Package router maps the HTTP surface onto handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/handler"
	"github.com/kimLalilo/boxe-reventin-planning/internal/middleware"
	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
)

// RegisterRoutes registers the routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Login, refresh and
// logout live under /v1/auth without middleware; the profile endpoints
// require a valid access token for any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh token in the body without a JWT; an
	// authenticated call without one revokes every session instead.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleMember, model.RoleCoach, model.RoleAdmin),
	)
	auth.GET("/me", a.Me)
	auth.PUT("/me/password", a.ChangePassword)
	auth.POST("/logout", a.Logout)
}
