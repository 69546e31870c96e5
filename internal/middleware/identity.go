package middleware

// identity.go defines helper functions shared across middleware files.
// Currently it provides a memberKey extraction function that pulls the
// student_id or subject claim stored in the Echo context by JWTAuth.
// The cache and rate-limit middlewares use it to build per-member keys.
// When no member is authenticated, "guest" is returned.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// memberKey extracts a member identifier from the request context.  It
// returns "guest" when no member is authenticated.
func memberKey(c echo.Context) string {
	if v, ok := c.Get("student_id").(string); ok && v != "" {
		return v
	}
	// numeric subject claims decode as float64
	if v := c.Get("member_id"); v != nil {
		return fmt.Sprintf("%v", v)
	}
	return "guest"
}
