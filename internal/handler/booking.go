package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
	"github.com/Quandz11/hotel-booking-sub001/internal/queue"
	"github.com/Quandz11/hotel-booking-sub001/internal/repository"
	"github.com/Quandz11/hotel-booking-sub001/internal/service"
)

// BookingHandler serves the customer-facing booking endpoints.
type BookingHandler struct {
	Users    *repository.UserRepo
	Hotels   *repository.HotelRepo
	Rooms    *repository.RoomTypeRepo
	Bookings *repository.BookingRepo
	Checker  *service.AvailabilityChecker
}

func NewBookingHandler(u *repository.UserRepo, h *repository.HotelRepo, rt *repository.RoomTypeRepo, b *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{
		Users:    u,
		Hotels:   h,
		Rooms:    rt,
		Bookings: b,
		Checker:  &service.AvailabilityChecker{Bookings: b},
	}
}

type createBookingReq struct {
	HotelID         uint64 `json:"hotel_id"`
	RoomTypeID      uint64 `json:"room_type_id"`
	CheckIn         string `json:"check_in"`  // YYYY-MM-DD
	CheckOut        string `json:"check_out"` // YYYY-MM-DD
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email"`
	GuestPhone      string `json:"guest_phone"`
	SpecialRequests string `json:"special_requests"`
	PaymentMethod   string `json:"payment_method"` // VNPAY | MOMO
}

type cancelBookingReq struct {
	Reason string `json:"reason"`
}

// bookingView shapes a booking for JSON responses.  The pricing
// snapshot is returned as stored; timestamps are omitted when unset.
type bookingView struct {
	ID                 uint64     `json:"id"`
	BookingNumber      string     `json:"booking_number"`
	HotelID            uint64     `json:"hotel_id"`
	RoomTypeID         uint64     `json:"room_type_id"`
	CheckIn            string     `json:"check_in"`
	CheckOut           string     `json:"check_out"`
	Nights             int        `json:"nights"`
	Adults             int        `json:"adults"`
	Children           int        `json:"children"`
	GuestName          string     `json:"guest_name"`
	GuestEmail         string     `json:"guest_email"`
	GuestPhone         string     `json:"guest_phone,omitempty"`
	SpecialRequests    string     `json:"special_requests,omitempty"`
	NightlyPrice       int64      `json:"nightly_price"`
	Subtotal           int64      `json:"subtotal"`
	DiscountPercent    float64    `json:"discount_percent"`
	DiscountAmount     int64      `json:"discount_amount"`
	TaxAmount          int64      `json:"tax_amount"`
	TotalAmount        int64      `json:"total_amount"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"payment_status"`
	PaymentMethod      string     `json:"payment_method"`
	PaidAt             *time.Time `json:"paid_at,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CheckedInAt        *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt       *time.Time `json:"checked_out_at,omitempty"`
	CancellationPolicy string     `json:"cancellation_policy"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	RefundAmount       int64      `json:"refund_amount,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toBookingView(b model.Booking) bookingView {
	return bookingView{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		HotelID:            b.HotelID,
		RoomTypeID:         b.RoomTypeID,
		CheckIn:            b.CheckIn.Format(dateLayout),
		CheckOut:           b.CheckOut.Format(dateLayout),
		Nights:             b.Nights,
		Adults:             b.Adults,
		Children:           b.Children,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		GuestPhone:         b.GuestPhone,
		SpecialRequests:    b.SpecialRequests,
		NightlyPrice:       b.NightlyPrice,
		Subtotal:           b.Subtotal,
		DiscountPercent:    b.DiscountPercent,
		DiscountAmount:     b.DiscountAmount,
		TaxAmount:          b.TaxAmount,
		TotalAmount:        b.TotalAmount,
		Currency:           b.Currency,
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		PaymentMethod:      b.PaymentMethod,
		PaidAt:             b.PaidAt,
		ConfirmedAt:        b.ConfirmedAt,
		CheckedInAt:        b.CheckedInAt,
		CheckedOutAt:       b.CheckedOutAt,
		CancellationPolicy: b.CancellationPolicy,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		RefundAmount:       b.RefundAmount,
		CreatedAt:          b.CreatedAt,
	}
}

// Create places a new booking in PENDING/PENDING.  Pricing is quoted
// and frozen here; the caller then has 30 minutes to pay.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	now := time.Now().UTC()
	checkIn, checkOut, err := parseStayDates(req.CheckIn, req.CheckOut, now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.Adults < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "adults must be at least 1"})
	}
	if req.Children < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "children must not be negative"})
	}
	method := strings.ToUpper(strings.TrimSpace(req.PaymentMethod))
	if method != model.MethodVNPay && method != model.MethodMoMo {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method must be VNPAY or MOMO"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	hotel, err := h.Hotels.GetActiveByID(ctx, req.HotelID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load hotel failed"})
	}
	room, err := h.Rooms.GetActiveByID(ctx, req.RoomTypeID)
	if err != nil {
		if err == repository.ErrRoomTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room type failed"})
	}
	if room.HotelID != hotel.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room type does not belong to hotel"})
	}

	avail, err := h.Checker.Check(ctx, &room, checkIn, checkOut, req.Adults+req.Children, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}
	if !avail.Available {
		return c.JSON(http.StatusConflict, echo.Map{"error": avail.Reason})
	}

	quote, err := service.QuoteBooking(&room, checkIn, checkOut, model.TierDiscountPercent(u.MembershipTier))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	guestName := strings.TrimSpace(req.GuestName)
	if guestName == "" {
		guestName = u.FullName
	}
	guestEmail := strings.TrimSpace(req.GuestEmail)
	if guestEmail == "" {
		guestEmail = u.Email
	}
	guestPhone := strings.TrimSpace(req.GuestPhone)
	if guestPhone == "" {
		guestPhone = u.Phone
	}

	b := model.Booking{
		BookingNumber:      model.NewBookingNumber(now),
		UserID:             userID,
		HotelID:            hotel.ID,
		RoomTypeID:         room.ID,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Nights:             quote.Nights,
		Adults:             req.Adults,
		Children:           req.Children,
		GuestName:          guestName,
		GuestEmail:         guestEmail,
		GuestPhone:         guestPhone,
		SpecialRequests:    strings.TrimSpace(req.SpecialRequests),
		NightlyPrice:       quote.NightlyPrice,
		Subtotal:           quote.Subtotal,
		DiscountPercent:    quote.DiscountPercent,
		DiscountAmount:     quote.DiscountAmount,
		TaxAmount:          quote.TaxAmount,
		TotalAmount:        quote.TotalAmount,
		Currency:           quote.Currency,
		Status:             model.BookingPending,
		PaymentStatus:      model.PaymentPending,
		PaymentMethod:      method,
		CancellationPolicy: hotel.CancellationPolicy,
	}
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking":          toBookingView(b),
		"payment_required": true,
		"payment_amount":   b.TotalAmount,
		"payment_deadline": b.CreatedAt.Add(service.PaymentWindow),
	})
}

// ListMine returns the caller's bookings, newest first.  Expired
// pending payments are reconciled on the way out.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	list, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	now := time.Now().UTC()
	views := make([]bookingView, 0, len(list))
	for i := range list {
		b := h.reconcileExpired(ctx, list[i], now)
		views = append(views, toBookingView(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": views})
}

// Get returns one of the caller's bookings.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if b.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}
	b = h.reconcileExpired(ctx, b, time.Now().UTC())
	return c.JSON(http.StatusOK, echo.Map{"booking": toBookingView(b)})
}

// Cancel cancels a confirmed, paid booking ahead of check-in, charging
// the fee schedule of the policy snapshotted at creation.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req cancelBookingReq
	_ = c.Bind(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if b.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}
	now := time.Now().UTC()
	b = h.reconcileExpired(ctx, b, now)
	if !service.CancellableByCustomer(&b, now) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled in its current state"})
	}

	fee := service.EvaluateCancellation(b.CancellationPolicy, b.CheckIn, b.TotalAmount, now)
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "cancelled by customer"
	}
	payStatus := cancelledPaymentStatus(fee)

	if err := h.Bookings.Cancel(ctx, b.ID, b.Status, reason, fee.RefundAmount, payStatus); err != nil {
		if err == repository.ErrConflict {
			// Someone else moved the booking first; re-read and report.
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	b, err = h.Bookings.GetByID(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}

	evt := queue.BookingCancelledEvent{
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		Reason:        b.CancellationReason,
		RefundAmount:  b.RefundAmount,
		Currency:      b.Currency,
		CancelledAt:   now.Format(time.RFC3339),
	}
	_ = queue.PublishBookingCancelled(ctx, evt)

	return c.JSON(http.StatusOK, echo.Map{
		"booking":      toBookingView(b),
		"cancellation": fee,
	})
}

// cancelledPaymentStatus maps the fee outcome onto the payment state of
// a paid booking being cancelled.
func cancelledPaymentStatus(q service.CancellationQuote) string {
	switch {
	case q.FeePercent == 0:
		return model.PaymentRefunded
	case q.FeePercent >= 100:
		return model.PaymentPaid
	default:
		return model.PaymentPartialRefund
	}
}

// reconcileExpired lazily cancels a booking whose payment window has
// run out.  Losing the conditional update just means another request
// reconciled first, so the fresh row wins either way.
func (h *BookingHandler) reconcileExpired(ctx context.Context, b model.Booking, now time.Time) model.Booking {
	if !service.PaymentExpired(&b, now) {
		return b
	}
	err := h.Bookings.Cancel(ctx, b.ID, model.BookingPending, service.PaymentExpiredReason, 0, model.PaymentFailed)
	if err != nil && err != repository.ErrConflict {
		return b
	}
	fresh, err := h.Bookings.GetByID(ctx, b.ID)
	if err != nil {
		return b
	}
	return fresh
}
