package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/kimLalilo/boxe-reventin-planning/internal/config"
	"github.com/kimLalilo/boxe-reventin-planning/internal/handler"
	"github.com/kimLalilo/boxe-reventin-planning/internal/middleware"
	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
)

// RegisterMember registers the member-facing endpoints: the weekly
// planning view and the reservation operations. Every role can book;
// coaches and admins train too.
func RegisterMember(e *echo.Echo, p *handler.PlanningHandler, b *handler.BookingHandler,
	jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {

	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleMember, model.RoleCoach, model.RoleAdmin),
	)

	// The planning read is the hot path; it goes through the Redis
	// response cache.
	g.GET("/planning", p.Planning, middleware.NewRedisCache(cacheCfg, rdb))

	g.POST("/slots/:id/reservations", b.Book)
	g.DELETE("/slots/:id/reservations", b.Cancel)
	g.GET("/my-reservations", b.MyReservations)
}
