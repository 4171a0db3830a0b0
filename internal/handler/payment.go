package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
	"github.com/Quandz11/hotel-booking-sub001/internal/payment"
	"github.com/Quandz11/hotel-booking-sub001/internal/queue"
	"github.com/Quandz11/hotel-booking-sub001/internal/repository"
	"github.com/Quandz11/hotel-booking-sub001/internal/service"
)

// PaymentHandler drives the gateway flow: initiate a redirect, handle
// the browser return and process the server-to-server notification.
// One instance serves every configured gateway; the provider is chosen
// by the booking's payment method.
type PaymentHandler struct {
	Users    *repository.UserRepo
	Hotels   *repository.HotelRepo
	Rooms    *repository.RoomTypeRepo
	Bookings *repository.BookingRepo
	Gateways map[string]*payment.Gateway // keyed by payment method
}

func NewPaymentHandler(u *repository.UserRepo, h *repository.HotelRepo, rt *repository.RoomTypeRepo, b *repository.BookingRepo, gw map[string]*payment.Gateway) *PaymentHandler {
	return &PaymentHandler{Users: u, Hotels: h, Rooms: rt, Bookings: b, Gateways: gw}
}

type initiatePaymentReq struct {
	BookingID uint64 `json:"booking_id"`
	BankCode  string `json:"bank_code"`
	Locale    string `json:"locale"`
}

// Initiate builds the signed redirect URL for a pending booking.  A
// booking whose payment window has lapsed is cancelled here and the
// caller told to start over; a FAILED charge within the window is
// reset so the customer can retry.
func (h *PaymentHandler) Initiate(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req initiatePaymentReq
	if err := c.Bind(&req); err != nil || req.BookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, req.BookingID)
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
	if service.PaymentExpired(&b, now) {
		err := h.Bookings.Cancel(ctx, b.ID, model.BookingPending, service.PaymentExpiredReason, 0, model.PaymentFailed)
		if err != nil && err != repository.ErrConflict {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
		}
		return c.JSON(http.StatusGone, echo.Map{"error": "payment window expired, booking cancelled"})
	}
	if b.Status != model.BookingPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not awaiting payment"})
	}
	switch b.PaymentStatus {
	case model.PaymentPending:
	case model.PaymentFailed:
		// Failed charge within the window: flip back to PENDING for a retry.
		if err := h.Bookings.ResetFailedPayment(ctx, b.ID); err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed, retry"})
		}
	default:
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already paid"})
	}

	gw, ok := h.Gateways[b.PaymentMethod]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported payment method"})
	}
	payURL, expires, err := gw.BuildPaymentURL(payment.Request{
		BookingNumber: b.BookingNumber,
		Amount:        b.TotalAmount,
		OrderInfo:     fmt.Sprintf("Thanh toan don %s", b.BookingNumber),
		ClientIP:      c.RealIP(),
		Locale:        strings.TrimSpace(req.Locale),
		BankCode:      strings.TrimSpace(req.BankCode),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build payment url failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"payment_url": payURL,
		"order_ref":   b.BookingNumber,
		"amount":      b.TotalAmount,
		"currency":    b.Currency,
		"expires_at":  expires,
	})
}

// Return handles the customer's browser coming back from the gateway.
// It only verifies the signature and reports the provisional result;
// the booking is mutated exclusively by the server notification.
func (h *PaymentHandler) Return(c echo.Context) error {
	gw, ok := h.Gateways[gatewayMethod(c)]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown gateway"})
	}
	params := c.QueryParams()
	if err := gw.VerifyCallback(params); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid signature"})
	}
	code := params.Get("vnp_ResponseCode")
	return c.JSON(http.StatusOK, echo.Map{
		"order_ref":     params.Get("vnp_TxnRef"),
		"response_code": code,
		"success":       code == payment.ResponseCodeSuccess,
		"final":         false, // confirmation lands via the server notification
	})
}

// Notify is the server-to-server notification (IPN) endpoint.  The
// gateway retries until it gets RspCode 00, so every branch answers
// with the structured acknowledgment and internal failures ack 99.
func (h *PaymentHandler) Notify(c echo.Context) error {
	gw, ok := h.Gateways[gatewayMethod(c)]
	if !ok {
		return c.JSON(http.StatusOK, payment.Ack{RspCode: payment.RspOrderNotFound, Message: "Unknown gateway"})
	}
	params := c.QueryParams()
	if err := gw.VerifyCallback(params); err != nil {
		return c.JSON(http.StatusOK, payment.Ack{RspCode: payment.RspInvalidSignature, Message: "Invalid signature"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	orderRef := params.Get("vnp_TxnRef")
	amountMinor, err := strconv.ParseInt(params.Get("vnp_Amount"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, payment.Ack{RspCode: payment.RspInvalidAmount, Message: "Invalid amount"})
	}

	b, err := h.Bookings.GetByNumber(ctx, orderRef)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusOK, payment.Ack{RspCode: payment.RspOrderNotFound, Message: "Order not found"})
		}
		return c.JSON(http.StatusOK, payment.Ack{RspCode: payment.RspInternalError, Message: "Internal error"})
	}

	outcome, ack := payment.ResolveNotification(&b, amountMinor, params.Get("vnp_ResponseCode"))
	rawPayload := params.Encode()

	switch outcome {
	case payment.OutcomeMarkPaid:
		if err := h.applyPaid(ctx, &b, params.Get("vnp_TransactionNo"), rawPayload); err != nil {
			if err == repository.ErrConflict {
				// A concurrent notification won the conditional update.
				return c.JSON(http.StatusOK, payment.Ack{RspCode: payment.RspAlreadyConfirmed, Message: "Order already confirmed"})
			}
			log.Printf("payment: confirm booking %s failed: %v", b.BookingNumber, err)
			return c.JSON(http.StatusOK, payment.Ack{RspCode: payment.RspInternalError, Message: "Internal error"})
		}
	case payment.OutcomeMarkFailed:
		if err := h.Bookings.MarkPaymentFailed(ctx, b.ID, rawPayload); err != nil && err != repository.ErrConflict {
			log.Printf("payment: record failure for booking %s failed: %v", b.BookingNumber, err)
			return c.JSON(http.StatusOK, payment.Ack{RspCode: payment.RspInternalError, Message: "Internal error"})
		}
	}
	return c.JSON(http.StatusOK, ack)
}

// applyPaid confirms the booking and credits the customer's lifetime
// spend in one transaction, then publishes the confirmation event.
func (h *PaymentHandler) applyPaid(ctx context.Context, b *model.Booking, txnID, rawPayload string) error {
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := h.Bookings.MarkPaidTx(ctx, tx, b.ID, txnID, rawPayload); err != nil {
		return err
	}
	if err := h.Users.RecordSpendTx(ctx, tx, b.UserID, b.TotalAmount); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	fresh, err := h.Bookings.GetByID(ctx, b.ID)
	if err != nil {
		fresh = *b
	}
	hotelName, roomName := "", ""
	if hotel, err := h.Hotels.GetByID(ctx, b.HotelID); err == nil {
		hotelName = hotel.Name
	}
	if room, err := h.Rooms.GetByID(ctx, b.RoomTypeID); err == nil {
		roomName = room.Name
	}
	evt := newConfirmedEvent(fresh, hotelName, roomName, time.Now().UTC())
	_ = queue.PublishBookingConfirmed(ctx, evt)
	return nil
}

// gatewayMethod maps the :gateway path segment to a payment method key.
func gatewayMethod(c echo.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("gateway")))
}
