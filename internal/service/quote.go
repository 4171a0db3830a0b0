package service

import (
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// TaxRate is the flat tax applied to the discounted subtotal of every
// booking.
const TaxRate = 0.10

// BookingQuote is the full pricing snapshot frozen onto a booking at
// creation time: room-level subtotal, membership discount, tax and the
// final total.
type BookingQuote struct {
	Nights          int     `json:"nights"`
	NightlyPrice    int64   `json:"nightly_price"`
	Subtotal        int64   `json:"subtotal"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  int64   `json:"discount_amount"`
	TaxAmount       int64   `json:"tax_amount"`
	TotalAmount     int64   `json:"total_amount"`
	Currency        string  `json:"currency"`
}

// QuoteBooking prices a stay end to end.  The room-level total from
// PriceStay (weekend rates and any room discount already applied)
// becomes the subtotal; the customer's membership discount is taken
// off that, and tax is charged on what remains.  memberDiscountPct is
// the percentage granted by the customer's tier at creation time.
func QuoteBooking(room *model.RoomType, checkIn, checkOut time.Time, memberDiscountPct float64) (BookingQuote, error) {
	pq, err := PriceStay(room, checkIn, checkOut)
	if err != nil {
		return BookingQuote{}, err
	}
	discount := int64(0)
	if memberDiscountPct > 0 {
		discount = roundUnit(float64(pq.TotalPrice) * memberDiscountPct / 100)
	}
	taxable := pq.TotalPrice - discount
	tax := roundUnit(float64(taxable) * TaxRate)
	return BookingQuote{
		Nights:          pq.Nights,
		NightlyPrice:    pq.AveragePerNight,
		Subtotal:        pq.TotalPrice,
		DiscountPercent: memberDiscountPct,
		DiscountAmount:  discount,
		TaxAmount:       tax,
		TotalAmount:     taxable + tax,
		Currency:        room.Currency,
	}, nil
}
