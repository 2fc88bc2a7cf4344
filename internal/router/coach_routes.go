package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/handler"
	"github.com/kimLalilo/boxe-reventin-planning/internal/middleware"
	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
)

// RegisterCoach registers the occupancy views for coaches. Admins see
// them too.
func RegisterCoach(e *echo.Echo, r *handler.RosterHandler, jwtSecret string) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCoach, model.RoleAdmin),
	)
	g.GET("/roster", r.Overview)
	g.GET("/slots/:id/roster", r.SlotRoster)
}
