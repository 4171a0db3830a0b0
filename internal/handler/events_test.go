package handler

import (
	"testing"
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// Both confirmation paths, gateway payment and staff transition, must
// produce the same notification payload for the consumer.
func TestNewConfirmedEvent(t *testing.T) {
	confirmed := time.Date(2026, 9, 2, 8, 30, 0, 0, time.UTC)
	b := model.Booking{
		ID:            12,
		BookingNumber: "HB12",
		UserID:        3,
		HotelID:       4,
		GuestName:     "Nguyen Van A",
		GuestEmail:    "a@example.com",
		CheckIn:       time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		Nights:        4,
		TotalAmount:   7_682_400,
		Currency:      "VND",
		ConfirmedAt:   &confirmed,
	}

	evt := newConfirmedEvent(b, "Hotel Saigon", "Deluxe", time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC))
	if evt.BookingNumber != "HB12" || evt.HotelName != "Hotel Saigon" || evt.RoomTypeName != "Deluxe" {
		t.Fatalf("unexpected identity fields: %+v", evt)
	}
	if evt.CheckIn != "2026-09-07" || evt.CheckOut != "2026-09-11" {
		t.Fatalf("unexpected stay dates: %s / %s", evt.CheckIn, evt.CheckOut)
	}
	if evt.TotalAmount != 7_682_400 || evt.Currency != "VND" {
		t.Fatalf("unexpected amount fields: %+v", evt)
	}
	// The stored confirmation stamp wins over the fallback clock.
	if evt.ConfirmedAt != confirmed.Format(time.RFC3339) {
		t.Fatalf("expected confirmed_at %s, got %s", confirmed.Format(time.RFC3339), evt.ConfirmedAt)
	}
}

func TestNewConfirmedEventFallbackClock(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	b := model.Booking{
		BookingNumber: "HB13",
		CheckIn:       time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
	}
	evt := newConfirmedEvent(b, "", "", now)
	if evt.ConfirmedAt != now.Format(time.RFC3339) {
		t.Fatalf("expected fallback confirmed_at %s, got %s", now.Format(time.RFC3339), evt.ConfirmedAt)
	}
}
