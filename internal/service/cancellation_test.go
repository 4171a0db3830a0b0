package service

import (
	"testing"
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

func TestEvaluateCancellationSchedule(t *testing.T) {
	const total = int64(1_000_000)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		policy  string
		daysOut int
		wantPct int
	}{
		{"flexible same day", model.PolicyFlexible, 0, 100},
		{"flexible one day", model.PolicyFlexible, 1, 0},
		{"flexible far out", model.PolicyFlexible, 30, 0},
		{"moderate same day", model.PolicyModerate, 0, 100},
		{"moderate three days", model.PolicyModerate, 3, 50},
		{"moderate six days", model.PolicyModerate, 6, 50},
		{"moderate seven days", model.PolicyModerate, 7, 0},
		{"strict same day", model.PolicyStrict, 0, 100},
		{"strict three days", model.PolicyStrict, 3, 75},
		{"strict six days", model.PolicyStrict, 6, 75},
		{"strict seven days", model.PolicyStrict, 7, 50},
		{"strict thirteen days", model.PolicyStrict, 13, 50},
		{"strict fourteen days", model.PolicyStrict, 14, 25},
	}
	for _, tc := range cases {
		checkIn := now.AddDate(0, 0, tc.daysOut)
		q := EvaluateCancellation(tc.policy, checkIn, total, now)
		if q.FeePercent != tc.wantPct {
			t.Fatalf("%s: fee percent = %d, want %d", tc.name, q.FeePercent, tc.wantPct)
		}
		if q.CancellationFee+q.RefundAmount != total {
			t.Fatalf("%s: fee %d + refund %d != total %d", tc.name, q.CancellationFee, q.RefundAmount, total)
		}
	}
}

func TestEvaluateCancellationOddTotal(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	checkIn := now.AddDate(0, 0, 3)
	// 75% of 1,000,001 does not divide evenly; the split must still be exact.
	q := EvaluateCancellation(model.PolicyStrict, checkIn, 1_000_001, now)
	if q.CancellationFee+q.RefundAmount != 1_000_001 {
		t.Fatalf("fee %d + refund %d != 1000001", q.CancellationFee, q.RefundAmount)
	}
}

func TestEvaluateCancellationUnknownPolicyFallsBackToStrict(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	checkIn := now.AddDate(0, 0, 3)
	got := EvaluateCancellation("SOMETHING_ELSE", checkIn, 100, now)
	want := EvaluateCancellation(model.PolicyStrict, checkIn, 100, now)
	if got != want {
		t.Fatalf("unknown policy evaluated to %+v, want strict %+v", got, want)
	}
}

func TestDaysUntilCeils(t *testing.T) {
	now := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	// 1 day 6 hours out counts as 2 days.
	if d := daysUntil(checkIn, now); d != 2 {
		t.Fatalf("expected 2 days, got %d", d)
	}
	if d := daysUntil(now.Add(-time.Hour), now); d != 0 {
		t.Fatalf("expected 0 days for past check-in, got %d", d)
	}
}
