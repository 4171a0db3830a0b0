package model

import (
	"regexp"
	"testing"
	"time"
)

func TestNewBookingNumberFormat(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	n := NewBookingNumber(now)
	if ok, _ := regexp.MatchString(`^HB\d{13}\d{4}$`, n); !ok {
		t.Fatalf("booking number %q does not match HB<ms><seq>", n)
	}
}

func TestNewBookingNumberUniqueWithinMillisecond(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		n := NewBookingNumber(now)
		if seen[n] {
			t.Fatalf("duplicate booking number %q", n)
		}
		seen[n] = true
	}
}

func TestTierForSpend(t *testing.T) {
	cases := []struct {
		spend int64
		want  string
	}{
		{0, TierBronze},
		{49_999_999, TierBronze},
		{50_000_000, TierSilver},
		{199_999_999, TierSilver},
		{200_000_000, TierGold},
		{499_999_999, TierGold},
		{500_000_000, TierDiamond},
	}
	for _, tc := range cases {
		if got := TierForSpend(tc.spend); got != tc.want {
			t.Fatalf("TierForSpend(%d) = %s, want %s", tc.spend, got, tc.want)
		}
	}
}

func TestTierDiscountPercent(t *testing.T) {
	cases := []struct {
		tier string
		want float64
	}{
		{TierBronze, 0},
		{TierSilver, 1},
		{TierGold, 3},
		{TierDiamond, 5},
		{"UNKNOWN", 0},
	}
	for _, tc := range cases {
		if got := TierDiscountPercent(tc.tier); got != tc.want {
			t.Fatalf("TierDiscountPercent(%s) = %v, want %v", tc.tier, got, tc.want)
		}
	}
}
