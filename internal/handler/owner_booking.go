package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
	"github.com/Quandz11/hotel-booking-sub001/internal/queue"
	"github.com/Quandz11/hotel-booking-sub001/internal/repository"
	"github.com/Quandz11/hotel-booking-sub001/internal/service"
)

type transitionReq struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ListHotelBookings returns all bookings for one of the caller's
// hotels, operational view for the front desk.
func (h *OwnerHandler) ListHotelBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	list, err := h.Bookings.ListByHotelForOwner(ctx, hotelID, ownerID)
	if err != nil {
		switch err {
		case repository.ErrHotelNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your hotel"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	views := make([]bookingView, 0, len(list))
	for _, b := range list {
		views = append(views, toBookingView(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": views})
}

// TransitionBooking moves a booking to a target status on behalf of
// hotel staff: check-in, check-out, no-show marking, confirmation of
// staff-entered bookings and hotel-side cancellation.  The transition
// table is enforced; staff are not bound by the customer cancellation
// guard.
func (h *OwnerHandler) TransitionBooking(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target := strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.ValidBookingStatus(target) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	hotel, code, msg := h.ownedHotel(ctx, hotelID, ownerID)
	if code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	b, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if b.HotelID != hotelID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}

	if err := service.CheckTransition(b.Status, target); err != nil {
		var ite *service.InvalidTransitionError
		if errors.As(err, &ite) {
			return c.JSON(http.StatusConflict, echo.Map{"error": ite.Error()})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	if target == model.BookingCancelled {
		reason := strings.TrimSpace(req.Notes)
		if reason == "" {
			reason = "cancelled by hotel"
		}
		// Hotel-initiated cancellation refunds a paid guest in full.
		refund := int64(0)
		payStatus := b.PaymentStatus
		if b.PaymentStatus == model.PaymentPaid {
			refund = b.TotalAmount
			payStatus = model.PaymentRefunded
		}
		if err := h.Bookings.Cancel(ctx, b.ID, b.Status, reason, refund, payStatus); err != nil {
			if err == repository.ErrConflict {
				return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed, retry"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
		}
		fresh, err := h.Bookings.GetByID(ctx, b.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
		}
		publishCancelled(ctx, fresh, reason)
		return c.JSON(http.StatusOK, echo.Map{"booking": toBookingView(fresh)})
	}

	if err := h.Bookings.Transition(ctx, b.ID, b.Status, target); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	fresh, err := h.Bookings.GetByID(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if target == model.BookingConfirmed {
		// Staff confirmation notifies the guest the same way a gateway
		// payment does, best effort.
		roomName := ""
		if room, err := h.Rooms.GetByID(ctx, fresh.RoomTypeID); err == nil {
			roomName = room.Name
		}
		evt := newConfirmedEvent(fresh, hotel.Name, roomName, time.Now().UTC())
		_ = queue.PublishBookingConfirmed(ctx, evt)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": toBookingView(fresh)})
}
