package service

import (
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// CancellationQuote is the fee breakdown returned to a customer who
// cancels.  Fee plus refund always equals the booking total.
type CancellationQuote struct {
	DaysUntilCheckIn int   `json:"days_until_check_in"`
	FeePercent       int   `json:"fee_percent"`
	CancellationFee  int64 `json:"cancellation_fee"`
	RefundAmount     int64 `json:"refund_amount"`
}

// EvaluateCancellation applies the fee schedule of a policy tier to a
// booking total.  The policy must be the one snapshotted on the
// booking at creation, not the hotel's current policy.  Pure function;
// now is passed in so callers and tests control the clock.
func EvaluateCancellation(policy string, checkIn time.Time, totalAmount int64, now time.Time) CancellationQuote {
	days := daysUntil(checkIn, now)
	pct := feePercent(policy, days)
	// Integer fee rounding keeps fee + refund == total exactly.
	fee := (totalAmount*int64(pct) + 50) / 100
	return CancellationQuote{
		DaysUntilCheckIn: days,
		FeePercent:       pct,
		CancellationFee:  fee,
		RefundAmount:     totalAmount - fee,
	}
}

// daysUntil is ceil((checkIn - now) / 1 day); past check-ins yield
// zero or negative values, which fall into the <1 day fee bucket.
func daysUntil(checkIn, now time.Time) int {
	d := checkIn.Sub(now)
	if d <= 0 {
		return 0
	}
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		n++
	}
	return n
}

// feePercent is the fixed fee schedule.  Unknown tiers fall back to
// STRICT, the safest choice for the hotel.
func feePercent(policy string, days int) int {
	switch policy {
	case model.PolicyFlexible:
		if days < 1 {
			return 100
		}
		return 0
	case model.PolicyModerate:
		switch {
		case days < 1:
			return 100
		case days <= 6:
			return 50
		default:
			return 0
		}
	default: // STRICT
		switch {
		case days < 1:
			return 100
		case days <= 6:
			return 75
		case days <= 13:
			return 50
		default:
			return 25
		}
	}
}
