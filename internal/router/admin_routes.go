package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/handler"
	"github.com/kimLalilo/boxe-reventin-planning/internal/middleware"
	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
)

// RegisterAdmin registers the management endpoints: membership and the
// weekly class template. Admin role only.
func RegisterAdmin(e *echo.Echo, m *handler.AdminMemberHandler, s *handler.AdminSlotHandler, jwtSecret string) {
	g := e.Group("/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.POST("/members", m.Create)
	g.GET("/members", m.List)
	g.GET("/members/:id", m.Get)
	g.PUT("/members/:id", m.Update)
	g.DELETE("/members/:id", m.Delete)

	g.POST("/slots", s.Create)
	g.GET("/slots", s.List)
	g.GET("/slots/:id", s.Get)
	g.PUT("/slots/:id", s.Update)
	g.DELETE("/slots/:id", s.Delete)
}
