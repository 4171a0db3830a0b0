package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Quandz11/hotel-booking-sub001/internal/handler"
	"github.com/Quandz11/hotel-booking-sub001/internal/middleware"
)

// RegisterOwner registers hotel-management endpoints under /v1/owner.
// All routes require a valid JWT and the OWNER or ADMIN role; ownership
// of the targeted hotel is enforced per request inside the handlers.
func RegisterOwner(e *echo.Echo, h *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER", "ADMIN"),
	)
	// Hotel management.
	g.POST("/hotels", h.CreateHotel)
	g.GET("/hotels", h.ListMyHotels)
	g.PATCH("/hotels/:id", h.UpdateHotel)

	// Room-type management.  Deactivation is a soft delete; bookings
	// already holding a snapshot of the room stay valid.
	g.POST("/hotels/:id/room-types", h.CreateRoomType)
	g.GET("/hotels/:id/room-types", h.ListRoomTypes)
	g.PATCH("/hotels/:id/room-types/:roomTypeId", h.UpdateRoomType)
	g.DELETE("/hotels/:id/room-types/:roomTypeId", h.DeactivateRoomType)

	// Operational booking handling for the front desk.
	g.GET("/hotels/:id/bookings", h.ListHotelBookings)
	g.POST("/hotels/:id/bookings/:bookingId/status", h.TransitionBooking)
}
