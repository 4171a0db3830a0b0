package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

var allStatuses = []string{
	model.BookingPending,
	model.BookingConfirmed,
	model.BookingCancelled,
	model.BookingCheckedIn,
	model.BookingCheckedOut,
	model.BookingNoShow,
}

func TestTransitionTableClosure(t *testing.T) {
	allowed := map[[2]string]bool{
		{model.BookingPending, model.BookingConfirmed}:    true,
		{model.BookingPending, model.BookingCancelled}:    true,
		{model.BookingConfirmed, model.BookingCheckedIn}:  true,
		{model.BookingConfirmed, model.BookingCancelled}:  true,
		{model.BookingConfirmed, model.BookingNoShow}:     true,
		{model.BookingCheckedIn, model.BookingCheckedOut}: true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]string{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCheckTransitionNamesBothStates(t *testing.T) {
	err := CheckTransition(model.BookingCheckedOut, model.BookingPending)
	if err == nil {
		t.Fatalf("expected error for transition out of a terminal status")
	}
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %T", err)
	}
	if ite.From != model.BookingCheckedOut || ite.To != model.BookingPending {
		t.Fatalf("error carries %s -> %s, want CHECKED_OUT -> PENDING", ite.From, ite.To)
	}
	if err := CheckTransition(model.BookingPending, model.BookingConfirmed); err != nil {
		t.Fatalf("expected legal transition to pass, got %v", err)
	}
}

func TestPaymentExpiredReason(t *testing.T) {
	// The recorded cancellation reason is part of the data contract.
	if PaymentExpiredReason != "payment expired" {
		t.Fatalf("expected reason %q, got %q", "payment expired", PaymentExpiredReason)
	}
}

func TestPaymentExpired(t *testing.T) {
	now := time.Now().UTC()
	fresh := model.Booking{
		Status:        model.BookingPending,
		PaymentStatus: model.PaymentPending,
		CreatedAt:     now.Add(-PaymentWindow),
	}
	if PaymentExpired(&fresh, now) {
		t.Fatalf("booking exactly at the window boundary is not yet expired")
	}
	stale := fresh
	stale.CreatedAt = now.Add(-PaymentWindow - time.Second)
	if !PaymentExpired(&stale, now) {
		t.Fatalf("booking past the window should be expired")
	}
	paid := stale
	paid.PaymentStatus = model.PaymentPaid
	if PaymentExpired(&paid, now) {
		t.Fatalf("paid booking never expires")
	}
	confirmed := stale
	confirmed.Status = model.BookingConfirmed
	if PaymentExpired(&confirmed, now) {
		t.Fatalf("confirmed booking never expires")
	}
}

func TestCancellableByCustomer(t *testing.T) {
	now := time.Now().UTC()
	ok := model.Booking{
		Status:        model.BookingConfirmed,
		PaymentStatus: model.PaymentPaid,
		CheckIn:       now.Add(48 * time.Hour),
	}
	if !CancellableByCustomer(&ok, now) {
		t.Fatalf("confirmed paid booking before check-in should be cancellable")
	}
	unpaid := ok
	unpaid.PaymentStatus = model.PaymentPending
	if CancellableByCustomer(&unpaid, now) {
		t.Fatalf("unpaid booking is not customer-cancellable")
	}
	pending := ok
	pending.Status = model.BookingPending
	if CancellableByCustomer(&pending, now) {
		t.Fatalf("pending booking is not customer-cancellable")
	}
	started := ok
	started.CheckIn = now.Add(-time.Hour)
	if CancellableByCustomer(&started, now) {
		t.Fatalf("booking past check-in is not customer-cancellable")
	}
}
