package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/Quandz11/hotel-booking-sub001/internal/handler"    // import the handlers that implement business logic
	"github.com/Quandz11/hotel-booking-sub001/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotating refresh: exchanges the refresh token for a fresh pair.
	g.POST("/refresh", a.Refresh)
	// Non-rotating variant: issues a new access token only.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh token in the body (revoke that session).
	g.POST("/logout", a.Logout)

	// Profile endpoint for any authenticated role.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("CUSTOMER", "OWNER", "ADMIN"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints.  The
// optional cache middleware is applied here so that hotel listings and
// availability lookups are served from Redis when possible.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	// Browse active hotels, optionally filtered by ?city=.
	g.GET("/hotels", p.ListHotels)
	// Hotel detail together with its sellable room types.
	g.GET("/hotels/:id", p.GetHotel)
	// Reviews left by past guests.
	g.GET("/hotels/:id/reviews", p.ListHotelReviews)
	// Advisory availability and an anonymous price quote:
	// ?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD&guests=N
	g.GET("/room-types/:roomTypeId/availability", p.CheckAvailability)
}
