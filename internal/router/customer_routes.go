package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Quandz11/hotel-booking-sub001/internal/handler"
	"github.com/Quandz11/hotel-booking-sub001/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  Customers create
// bookings, pay for them, review completed stays and manage their own
// reservations.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, p *handler.PaymentHandler, r *handler.ReviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)
	g.POST("/bookings", b.Create)
	g.GET("/my-bookings", b.ListMine)
	g.GET("/bookings/:id", b.Get)
	// Cancellation applies the fee schedule snapshotted on the booking.
	g.POST("/bookings/:id/cancel", b.Cancel)
	// One review per checked-out booking.
	g.POST("/bookings/:id/review", r.Create)

	// Payment initiation returns the signed gateway redirect URL.  The
	// browser return and the server notification are public routes; see
	// RegisterPayment.
	g.POST("/payments/initiate", p.Initiate)
}
