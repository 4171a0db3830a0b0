package handler

import (
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
	"github.com/Quandz11/hotel-booking-sub001/internal/queue"
)

// newConfirmedEvent builds the notification payload for a booking that
// just became confirmed, whether through a gateway payment or a staff
// transition.  The event carries everything the consumer needs so it
// never has to query the primary database.
func newConfirmedEvent(b model.Booking, hotelName, roomName string, at time.Time) queue.BookingConfirmedEvent {
	if b.ConfirmedAt != nil {
		at = *b.ConfirmedAt
	}
	return queue.BookingConfirmedEvent{
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		UserID:        b.UserID,
		HotelID:       b.HotelID,
		HotelName:     hotelName,
		RoomTypeName:  roomName,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		CheckIn:       b.CheckIn.Format(dateLayout),
		CheckOut:      b.CheckOut.Format(dateLayout),
		Nights:        b.Nights,
		TotalAmount:   b.TotalAmount,
		Currency:      b.Currency,
		ConfirmedAt:   at.UTC().Format(time.RFC3339),
	}
}
