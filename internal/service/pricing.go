package service

import (
	"errors"
	"math"
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// ErrInvalidDateRange is returned when a stay does not span at least
// one night.  Handlers translate this into a 400 response before any
// availability or persistence work happens.
var ErrInvalidDateRange = errors.New("check-out must be after check-in")

// PriceQuote is the result of pricing a stay for one room type.  All
// amounts are whole currency units rounded with standard rounding.
type PriceQuote struct {
	Nights          int   `json:"nights"`
	TotalPrice      int64 `json:"total_price"`
	AveragePerNight int64 `json:"average_per_night"`
}

// Nights derives the night count of a stay: ceil((out - in) / 1 day).
// Non-positive results mean the range is degenerate.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		n++
	}
	return n
}

// PriceStay computes the room-level price of a stay.  Each calendar
// night in [checkIn, checkOut) is rated individually: Saturday and
// Sunday nights use the weekend price, all others the base price.  A
// positive room discount is applied to the summed total.  The function
// is pure; given the same room and dates it always returns the same
// quote.
func PriceStay(room *model.RoomType, checkIn, checkOut time.Time) (PriceQuote, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return PriceQuote{}, ErrInvalidDateRange
	}
	var sum int64
	for i := 0; i < nights; i++ {
		night := checkIn.AddDate(0, 0, i)
		switch night.Weekday() {
		case time.Saturday, time.Sunday:
			sum += room.WeekendPrice
		default:
			sum += room.BasePrice
		}
	}
	total := sum
	if room.DiscountPercent > 0 {
		total = roundUnit(float64(sum) * (1 - room.DiscountPercent/100))
	}
	return PriceQuote{
		Nights:          nights,
		TotalPrice:      total,
		AveragePerNight: roundUnit(float64(total) / float64(nights)),
	}, nil
}

// roundUnit rounds to the nearest whole currency unit.
func roundUnit(v float64) int64 {
	return int64(math.Round(v))
}
