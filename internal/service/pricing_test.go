package service

import (
	"testing"
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRoom() *model.RoomType {
	return &model.RoomType{
		ID:           1,
		BasePrice:    1_000_000,
		WeekendPrice: 1_500_000,
		Currency:     "VND",
		MaxGuests:    2,
		TotalRooms:   5,
	}
}

func TestPriceStayWeekdayNights(t *testing.T) {
	// Mon 2026-09-07 through Fri 2026-09-11: four weekday nights.
	q, err := PriceStay(testRoom(), day(2026, 9, 7), day(2026, 9, 11))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Nights != 4 {
		t.Fatalf("expected 4 nights, got %d", q.Nights)
	}
	if q.TotalPrice != 4_000_000 {
		t.Fatalf("expected total 4000000, got %d", q.TotalPrice)
	}
	if q.AveragePerNight != 1_000_000 {
		t.Fatalf("expected average 1000000, got %d", q.AveragePerNight)
	}
}

func TestPriceStayWeekendNights(t *testing.T) {
	// Fri 2026-09-11 through Mon 2026-09-14: Fri night at base rate,
	// Sat and Sun nights at the weekend rate.
	q, err := PriceStay(testRoom(), day(2026, 9, 11), day(2026, 9, 14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Nights != 3 {
		t.Fatalf("expected 3 nights, got %d", q.Nights)
	}
	want := int64(1_000_000 + 1_500_000 + 1_500_000)
	if q.TotalPrice != want {
		t.Fatalf("expected total %d, got %d", want, q.TotalPrice)
	}
}

func TestPriceStayRoomDiscount(t *testing.T) {
	room := testRoom()
	room.DiscountPercent = 10
	q, err := PriceStay(room, day(2026, 9, 7), day(2026, 9, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.TotalPrice != 1_800_000 {
		t.Fatalf("expected discounted total 1800000, got %d", q.TotalPrice)
	}
	if q.AveragePerNight != 900_000 {
		t.Fatalf("expected average 900000, got %d", q.AveragePerNight)
	}
}

func TestPriceStayDeterministic(t *testing.T) {
	room := testRoom()
	first, err := PriceStay(room, day(2026, 9, 10), day(2026, 9, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := PriceStay(room, day(2026, 9, 10), day(2026, 9, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("expected identical quote on repeat, got %+v then %+v", first, again)
		}
	}
}

func TestPriceStayRejectsDegenerateRange(t *testing.T) {
	room := testRoom()
	if _, err := PriceStay(room, day(2026, 9, 7), day(2026, 9, 7)); err != ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange for same-day stay, got %v", err)
	}
	if _, err := PriceStay(room, day(2026, 9, 8), day(2026, 9, 7)); err != ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange for inverted range, got %v", err)
	}
}

func TestNightsCeilsPartialDays(t *testing.T) {
	in := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)
	out := time.Date(2026, 9, 9, 12, 0, 0, 0, time.UTC)
	if n := Nights(in, out); n != 2 {
		t.Fatalf("expected 2 nights for a partial-day overhang, got %d", n)
	}
}
