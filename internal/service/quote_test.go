package service

import (
	"testing"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

func TestQuoteBookingGoldMember(t *testing.T) {
	room := &model.RoomType{
		BasePrice:    1_800_000,
		WeekendPrice: 1_800_000,
		Currency:     "VND",
	}
	// Four nights at 1,800,000 with a 3% membership discount and 10% tax.
	q, err := QuoteBooking(room, day(2026, 9, 7), day(2026, 9, 11), model.TierDiscountPercent(model.TierGold))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Subtotal != 7_200_000 {
		t.Fatalf("expected subtotal 7200000, got %d", q.Subtotal)
	}
	if q.DiscountAmount != 216_000 {
		t.Fatalf("expected discount 216000, got %d", q.DiscountAmount)
	}
	if q.TaxAmount != 698_400 {
		t.Fatalf("expected tax 698400, got %d", q.TaxAmount)
	}
	if q.TotalAmount != 7_682_400 {
		t.Fatalf("expected total 7682400, got %d", q.TotalAmount)
	}
	if q.Currency != "VND" {
		t.Fatalf("expected currency VND, got %q", q.Currency)
	}
}

func TestQuoteBookingNoDiscount(t *testing.T) {
	room := &model.RoomType{BasePrice: 500_000, WeekendPrice: 500_000, Currency: "VND"}
	q, err := QuoteBooking(room, day(2026, 9, 7), day(2026, 9, 9), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.DiscountAmount != 0 {
		t.Fatalf("expected zero discount, got %d", q.DiscountAmount)
	}
	// 1,000,000 subtotal + 10% tax.
	if q.TotalAmount != 1_100_000 {
		t.Fatalf("expected total 1100000, got %d", q.TotalAmount)
	}
}

func TestQuoteBookingComponentsSum(t *testing.T) {
	room := &model.RoomType{BasePrice: 777_777, WeekendPrice: 999_999, Currency: "VND"}
	for _, pct := range []float64{0, 1, 3, 5} {
		q, err := QuoteBooking(room, day(2026, 9, 10), day(2026, 9, 15), pct)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := q.Subtotal - q.DiscountAmount + q.TaxAmount; got != q.TotalAmount {
			t.Fatalf("pct=%v: components sum to %d, total is %d", pct, got, q.TotalAmount)
		}
	}
}
