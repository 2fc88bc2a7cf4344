// Package handler defines the HTTP handlers for the planning API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/booking"
)

// dbTimeout bounds every database round trip issued from a handler.
const dbTimeout = 5 * time.Second

// reqCtx derives a deadline-bound context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// getMemberID extracts the authenticated member's ID from the context,
// where JWTAuth stored the raw sub claim. Numeric claims decode as
// float64, so several representations are accepted.
func getMemberID(c echo.Context) (uint64, error) {
	switch t := c.Get("member_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid member_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// bookingError translates an engine error into the HTTP response the
// API promises: refusals carry a stable reason token alongside the
// human-readable message.
func bookingError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, booking.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, booking.ErrAlreadyReserved):
		status = http.StatusConflict
	case errors.Is(err, booking.ErrOutsideWindow),
		errors.Is(err, booking.ErrHolidayClosure),
		errors.Is(err, booking.ErrQuotaExceeded):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrNotReserved):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, echo.Map{
		"error":  booking.Reason(err),
		"detail": err.Error(),
	})
}
