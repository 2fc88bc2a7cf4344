package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentMemberID returns the authenticated member's ID as a string, or
// "anon" when the request carries no identity. JWTAuth stores the raw
// claim value, which arrives as a string for tokens we issue but may be
// any JSON scalar, hence the fmt fallback.
func currentMemberID(c echo.Context) string {
	v := c.Get("member_id")
	if v == nil {
		return "anon"
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return "anon"
		}
		return s
	}
	return fmt.Sprint(v)
}
