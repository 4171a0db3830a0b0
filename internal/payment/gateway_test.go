package payment

import (
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

func testGateway() *Gateway {
	g := New(Config{
		Endpoint:     "https://pay.example.com/paymentv2/vpcpay.html",
		MerchantCode: "TESTTMN1",
		HashSecret:   "test-secret",
		ReturnURL:    "https://booking.example.com/v1/payments/vnpay/return",
	})
	g.now = func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	}
	return g
}

func TestBuildPaymentURLSignedAndVerifiable(t *testing.T) {
	g := testGateway()
	payURL, expires, err := g.BuildPaymentURL(Request{
		BookingNumber: "HB17567100000000001",
		Amount:        7_682_400,
		OrderInfo:     "Thanh toan don HB17567100000000001",
		ClientIP:      "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, err := url.Parse(payURL)
	if err != nil {
		t.Fatalf("redirect URL does not parse: %v", err)
	}
	q := u.Query()
	// Amount goes over the wire in minor units.
	if got := q.Get("vnp_Amount"); got != strconv.FormatInt(7_682_400*100, 10) {
		t.Fatalf("expected amount in minor units, got %s", got)
	}
	if got := q.Get("vnp_TxnRef"); got != "HB17567100000000001" {
		t.Fatalf("expected booking number as order ref, got %s", got)
	}
	// Timestamps are rendered in UTC+7.
	if got := q.Get("vnp_CreateDate"); got != "20260901170000" {
		t.Fatalf("expected create date 20260901170000, got %s", got)
	}
	if got := q.Get("vnp_ExpireDate"); got != "20260901173000" {
		t.Fatalf("expected expire date 20260901173000, got %s", got)
	}
	if want := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC); !expires.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, expires)
	}
	// The signature we emit must pass our own verifier.
	if err := g.VerifyCallback(q); err != nil {
		t.Fatalf("round-trip verification failed: %v", err)
	}
}

func TestVerifyCallbackRejectsTampering(t *testing.T) {
	g := testGateway()
	payURL, _, err := g.BuildPaymentURL(Request{
		BookingNumber: "HB1",
		Amount:        100_000,
		OrderInfo:     "order",
		ClientIP:      "127.0.0.1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, _ := url.Parse(payURL)

	tampered := u.Query()
	tampered.Set("vnp_Amount", "1")
	if err := g.VerifyCallback(tampered); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature for tampered amount, got %v", err)
	}

	missing := u.Query()
	missing.Del("vnp_SecureHash")
	if err := g.VerifyCallback(missing); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature for missing signature, got %v", err)
	}

	wrongSecret := New(Config{
		Endpoint:     g.cfg.Endpoint,
		MerchantCode: g.cfg.MerchantCode,
		HashSecret:   "another-secret",
		ReturnURL:    g.cfg.ReturnURL,
	})
	if err := wrongSecret.VerifyCallback(u.Query()); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature under a different secret, got %v", err)
	}
}

func TestResolveNotificationOutcomes(t *testing.T) {
	pending := &model.Booking{
		ID:            7,
		BookingNumber: "HB7",
		TotalAmount:   500_000,
		Status:        model.BookingPending,
		PaymentStatus: model.PaymentPending,
	}

	outcome, ack := ResolveNotification(nil, 50_000_000, "00")
	if outcome != OutcomeNone || ack.RspCode != RspOrderNotFound {
		t.Fatalf("nil booking: got outcome %v ack %s", outcome, ack.RspCode)
	}

	outcome, ack = ResolveNotification(pending, 123, "00")
	if outcome != OutcomeNone || ack.RspCode != RspInvalidAmount {
		t.Fatalf("wrong amount: got outcome %v ack %s", outcome, ack.RspCode)
	}

	outcome, ack = ResolveNotification(pending, 50_000_000, "00")
	if outcome != OutcomeMarkPaid || ack.RspCode != RspSuccess {
		t.Fatalf("success: got outcome %v ack %s", outcome, ack.RspCode)
	}

	outcome, ack = ResolveNotification(pending, 50_000_000, "24")
	if outcome != OutcomeMarkFailed || ack.RspCode != RspSuccess {
		t.Fatalf("failure code: got outcome %v ack %s", outcome, ack.RspCode)
	}
}

// A replayed notification for an already-settled booking must resolve
// to no mutation with an already-confirmed acknowledgment, whatever
// the replay claims.
func TestResolveNotificationIdempotent(t *testing.T) {
	paid := &model.Booking{
		ID:            7,
		BookingNumber: "HB7",
		TotalAmount:   500_000,
		Status:        model.BookingConfirmed,
		PaymentStatus: model.PaymentPaid,
	}
	for _, code := range []string{"00", "24", "99"} {
		outcome, ack := ResolveNotification(paid, 50_000_000, code)
		if outcome != OutcomeNone {
			t.Fatalf("replay with code %s produced outcome %v, want none", code, outcome)
		}
		if ack.RspCode != RspAlreadyConfirmed {
			t.Fatalf("replay with code %s acked %s, want %s", code, ack.RspCode, RspAlreadyConfirmed)
		}
	}

	failed := &model.Booking{TotalAmount: 500_000, Status: model.BookingPending, PaymentStatus: model.PaymentFailed}
	outcome, ack := ResolveNotification(failed, 50_000_000, "00")
	if outcome != OutcomeNone || ack.RspCode != RspAlreadyConfirmed {
		t.Fatalf("settled-failed booking: got outcome %v ack %s", outcome, ack.RspCode)
	}
}

// A booking cancelled while unpaid keeps payment status PENDING.  A
// late success notification for it must not resolve to a confirmation;
// CANCELLED is terminal and has no outgoing transitions.
func TestResolveNotificationNeverRevivesCancelledBooking(t *testing.T) {
	cancelled := &model.Booking{
		ID:            9,
		BookingNumber: "HB9",
		TotalAmount:   500_000,
		Status:        model.BookingCancelled,
		PaymentStatus: model.PaymentPending,
	}
	outcome, ack := ResolveNotification(cancelled, 50_000_000, "00")
	if outcome != OutcomeNone {
		t.Fatalf("cancelled booking resolved to outcome %v, want none", outcome)
	}
	if ack.RspCode != RspAlreadyConfirmed {
		t.Fatalf("cancelled booking acked %s, want %s", ack.RspCode, RspAlreadyConfirmed)
	}

	expired := &model.Booking{
		TotalAmount:   500_000,
		Status:        model.BookingCancelled,
		PaymentStatus: model.PaymentFailed,
	}
	if outcome, _ := ResolveNotification(expired, 50_000_000, "00"); outcome != OutcomeNone {
		t.Fatalf("expiry-cancelled booking resolved to outcome %v, want none", outcome)
	}
}
