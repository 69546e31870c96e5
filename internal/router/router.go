// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-seat-reservation/internal/handler"
	"github.com/iliyamo/lab-seat-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login, refresh and logout live under /v1/auth and need no session;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is
	// revoked and a new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout takes the refresh token in the body, so no JWT needed.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout-all", a.LogoutAll)
}

// RegisterAPI registers the booking, lab and timetable endpoints.
// Everything requires a valid access token; the roles middleware
// rejects tokens without a known role.  Occupancy reads are cached
// when cacheMW is non-nil, and timetable management is restricted to
// assistants.
func RegisterAPI(e *echo.Echo, jwtSecret string,
	res *handler.ReservationHandler, labs *handler.LabHandler, lec *handler.LectureHandler,
	cacheMW echo.MiddlewareFunc) {

	api := e.Group("/v1")
	api.Use(middleware.JWTAuth(jwtSecret))
	api.Use(middleware.RequireRole("STUDENT", "ASSISTANT"))

	// Booking and the member's own reservations.
	api.POST("/reservations", res.Book)
	api.GET("/reservations/mine", res.Mine)
	api.GET("/reservations/next", res.Next)

	// Lab rooms and occupancy.  The walk-in occupancy queries are the
	// hottest reads, so they go through the Redis response cache.
	api.GET("/labs", labs.List)
	if cacheMW != nil {
		api.GET("/labs/:room_number/occupancy", labs.Occupancy, cacheMW)
		api.GET("/labs/:room_number/approved", labs.Approved, cacheMW)
	} else {
		api.GET("/labs/:room_number/occupancy", labs.Occupancy)
		api.GET("/labs/:room_number/approved", labs.Approved)
	}
	api.GET("/labs/:room_number/lectures", lec.ByLab)

	// Staff-only endpoints.
	staff := e.Group("/v1")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole("ASSISTANT"))
	staff.GET("/reservations/pending", res.Pending)
	staff.POST("/lectures", lec.BulkAdd)
	staff.PUT("/lectures/:code", lec.ReplaceByCode)
	staff.DELETE("/lectures/:code", lec.DeleteByCode)
}
