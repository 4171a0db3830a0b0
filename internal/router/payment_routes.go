package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Quandz11/hotel-booking-sub001/internal/handler"
)

// RegisterPayment registers the gateway callback endpoints.  Both are
// unauthenticated GETs because they are called by the gateway and the
// customer's browser; authenticity comes from the HMAC signature, not
// from a session.
func RegisterPayment(e *echo.Echo, p *handler.PaymentHandler) {
	// Browser return: verify-and-display only, never mutates a booking.
	e.GET("/v1/payments/:gateway/return", p.Return)
	// Server-to-server notification: the authoritative confirmation
	// path, answered with the gateway's {RspCode, Message} contract.
	e.GET("/v1/payments/:gateway/ipn", p.Notify)
}
