package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// PaymentWindow is how long a booking may stay unpaid before it is
// considered expired.  Expiry is a derived condition evaluated lazily
// when a payment or status operation touches the booking; no timer is
// scheduled.
const PaymentWindow = 30 * time.Minute

// PaymentExpiredReason is the cancellation reason recorded when a
// booking is lazily cancelled because its payment window lapsed.
const PaymentExpiredReason = "payment expired"

// ErrPaymentExpired is returned when an operation touches a booking
// whose payment window has lapsed.  The caller is expected to have
// cancelled the booking (reason PaymentExpiredReason) before surfacing
// this error.
var ErrPaymentExpired = errors.New("payment window expired")

// transitions is the legal status transition table.  Statuses absent
// from the map (CANCELLED, CHECKED_OUT, NO_SHOW) are terminal.
var transitions = map[string][]string{
	model.BookingPending:   {model.BookingConfirmed, model.BookingCancelled},
	model.BookingConfirmed: {model.BookingCheckedIn, model.BookingCancelled, model.BookingNoShow},
	model.BookingCheckedIn: {model.BookingCheckedOut},
}

// InvalidTransitionError names the current and requested status of a
// rejected transition.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// CanTransition reports whether the transition table allows from → to.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns an InvalidTransitionError when from → to is
// not in the table, nil otherwise.
func CheckTransition(from, to string) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// PaymentExpired reports whether a booking's payment window has
// lapsed: payment still pending and the booking older than
// PaymentWindow.
func PaymentExpired(b *model.Booking, now time.Time) bool {
	return b.PaymentStatus == model.PaymentPending &&
		b.Status == model.BookingPending &&
		now.Sub(b.CreatedAt) > PaymentWindow
}

// CancellableByCustomer is the guard applied on top of the transition
// table for customer-initiated cancellations: only a confirmed, paid
// booking whose check-in is still in the future may be cancelled by
// its customer.  Owner and admin cancellations bypass this guard.
func CancellableByCustomer(b *model.Booking, now time.Time) bool {
	return b.Status == model.BookingConfirmed &&
		b.PaymentStatus == model.PaymentPaid &&
		b.CheckIn.After(now)
}
