package model

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Booking statuses.  PENDING bookings hold inventory for a limited
// window while payment is outstanding; CANCELLED, CHECKED_OUT and
// NO_SHOW are terminal.
const (
	BookingPending    = "PENDING"
	BookingConfirmed  = "CONFIRMED"
	BookingCancelled  = "CANCELLED"
	BookingCheckedIn  = "CHECKED_IN"
	BookingCheckedOut = "CHECKED_OUT"
	BookingNoShow     = "NO_SHOW"
)

// Payment statuses tracked independently of the booking status.
const (
	PaymentPending       = "PENDING"
	PaymentPaid          = "PAID"
	PaymentFailed        = "FAILED"
	PaymentRefunded      = "REFUNDED"
	PaymentPartialRefund = "PARTIAL_REFUND"
)

// Payment methods accepted at booking creation.  CASH is reserved for
// bookings entered by hotel staff; online bookings must choose one of
// the two gateways.
const (
	MethodVNPay = "VNPAY"
	MethodMoMo  = "MOMO"
	MethodCash  = "CASH"
)

// ValidBookingStatus reports whether s is one of the six statuses.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled,
		BookingCheckedIn, BookingCheckedOut, BookingNoShow:
		return true
	}
	return false
}

// Booking is the central entity: one customer, one room type, one date
// range, a pricing snapshot frozen at creation time and a pair of
// status fields driven by the lifecycle rules in internal/service.
//
// The pricing snapshot (NightlyPrice through TotalAmount) is never
// recomputed from current room prices after creation.
//
// Fields:
//  ID                 – primary key identifier.
//  BookingNumber      – human-readable unique reference, also used as
//                       the payment gateway order reference.
//  UserID             – booking customer.
//  HotelID            – denormalised hotel reference for queries.
//  RoomTypeID         – room category booked.
//  CheckIn, CheckOut  – stay boundaries; half-open [CheckIn, CheckOut).
//  Nights             – derived night count.
//  Adults, Children   – guest counts.
//  GuestName/Email/Phone – contact details captured at creation.
//  SpecialRequests    – free-text note to the hotel.
//  NightlyPrice       – average per-night rate from the pricing engine.
//  Subtotal           – pre-discount room total.
//  DiscountPercent    – membership discount percentage applied.
//  DiscountAmount     – discount value in currency units.
//  TaxAmount          – tax on the discounted subtotal.
//  TotalAmount        – final amount owed.
//  Currency           – snapshot of the room currency.
//  Status             – booking lifecycle status.
//  PaymentStatus      – payment lifecycle status.
//  PaymentMethod      – VNPAY, MOMO or CASH.
//  GatewayTxnID       – bank transaction id from the gateway.
//  GatewayResponse    – raw notification payload kept for audit.
//  PaidAt, ConfirmedAt, CheckedInAt, CheckedOutAt – transition stamps.
//  CancellationPolicy – policy tier snapshotted from the hotel.
//  CancellationReason – free text recorded when cancelled.
//  CancelledAt        – cancellation timestamp.
//  RefundAmount       – refund computed by the policy evaluator.
//  CreatedAt          – creation timestamp; drives the payment window.
//  UpdatedAt          – last update timestamp.
type Booking struct {
	ID                 uint64     // bookings.id
	BookingNumber      string     // bookings.booking_number
	UserID             uint64     // bookings.user_id
	HotelID            uint64     // bookings.hotel_id
	RoomTypeID         uint64     // bookings.room_type_id
	CheckIn            time.Time  // bookings.check_in
	CheckOut           time.Time  // bookings.check_out
	Nights             int        // bookings.nights
	Adults             int        // bookings.adults
	Children           int        // bookings.children
	GuestName          string     // bookings.guest_name
	GuestEmail         string     // bookings.guest_email
	GuestPhone         string     // bookings.guest_phone
	SpecialRequests    string     // bookings.special_requests
	NightlyPrice       int64      // bookings.nightly_price
	Subtotal           int64      // bookings.subtotal
	DiscountPercent    float64    // bookings.discount_percent
	DiscountAmount     int64      // bookings.discount_amount
	TaxAmount          int64      // bookings.tax_amount
	TotalAmount        int64      // bookings.total_amount
	Currency           string     // bookings.currency
	Status             string     // bookings.status
	PaymentStatus      string     // bookings.payment_status
	PaymentMethod      string     // bookings.payment_method
	GatewayTxnID       string     // bookings.gateway_txn_id
	GatewayResponse    string     // bookings.gateway_response
	PaidAt             *time.Time // bookings.paid_at (nullable)
	ConfirmedAt        *time.Time // bookings.confirmed_at (nullable)
	CheckedInAt        *time.Time // bookings.checked_in_at (nullable)
	CheckedOutAt       *time.Time // bookings.checked_out_at (nullable)
	CancellationPolicy string     // bookings.cancellation_policy
	CancellationReason string     // bookings.cancellation_reason
	CancelledAt        *time.Time // bookings.cancelled_at (nullable)
	RefundAmount       int64      // bookings.refund_amount
	CreatedAt          time.Time  // bookings.created_at
	UpdatedAt          time.Time  // bookings.updated_at
}

// bookingSeq feeds the zero-padded suffix of booking numbers so that
// two bookings created in the same millisecond still differ.
var bookingSeq uint64

// NewBookingNumber returns a unique human-readable booking reference:
// "HB" + millisecond timestamp + 4-digit sequence.
func NewBookingNumber(now time.Time) string {
	seq := atomic.AddUint64(&bookingSeq, 1) % 10000
	return fmt.Sprintf("HB%d%04d", now.UnixMilli(), seq)
}
