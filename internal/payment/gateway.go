// Package payment implements the signed redirect-and-callback contract
// used by the supported payment gateways.  The adapter is constructed
// with explicit credentials so tests can run it with fake secrets; it
// never reads process state at call time.
package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// Acknowledgment codes returned to the gateway from the server
// notification endpoint.  The gateway keeps retrying a notification
// until it receives RspSuccess, so internal failures must never be
// acknowledged as success.
const (
	RspSuccess          = "00"
	RspOrderNotFound    = "01"
	RspAlreadyConfirmed = "02"
	RspInvalidAmount    = "04"
	RspInvalidSignature = "97"
	RspInternalError    = "99"
)

// ResponseCodeSuccess is the gateway's code for a successful charge in
// both the browser return and the server notification.
const ResponseCodeSuccess = "00"

// ExpireAfter is the validity window stamped on outbound payment
// requests.  It matches the booking payment window so a redirect URL
// never outlives the pending hold behind it.
const ExpireAfter = 30 * time.Minute

// ErrInvalidSignature is returned when a callback's signature does not
// match the recomputed HMAC.  No booking action may be taken when this
// is returned.
var ErrInvalidSignature = errors.New("invalid gateway signature")

// gatewayZone is the fixed UTC+7 zone the gateway expects timestamps in.
var gatewayZone = time.FixedZone("ICT", 7*3600)

// Config carries one gateway's credentials and endpoints.  It is
// injected at construction; see cmd/server for wiring.
type Config struct {
	Endpoint     string // payment page base URL
	MerchantCode string // merchant terminal code
	HashSecret   string // shared HMAC-SHA512 secret
	ReturnURL    string // browser return URL registered with the gateway
}

// Gateway builds outbound signed payment requests and validates
// inbound signed callbacks for one configured provider.
type Gateway struct {
	cfg Config
	now func() time.Time
}

// New returns a Gateway for the given credentials.
func New(cfg Config) *Gateway {
	return &Gateway{cfg: cfg, now: time.Now}
}

// Request describes one outbound payment initiation.
type Request struct {
	BookingNumber string // order reference, unique per booking
	Amount        int64  // display amount in whole currency units
	OrderInfo     string // human-readable description
	ClientIP      string // customer IP forwarded to the gateway
	Locale        string // optional; defaults to "vn"
	BankCode      string // optional bank routing hint
}

// BuildPaymentURL constructs the signed redirect URL for a payment
// request and returns it together with the request's expiry time.
// The amount is sent in the gateway's minor unit (display amount
// times 100).
func (g *Gateway) BuildPaymentURL(req Request) (string, time.Time, error) {
	if req.BookingNumber == "" || req.Amount <= 0 {
		return "", time.Time{}, errors.New("payment: booking number and positive amount required")
	}
	now := g.now().In(gatewayZone)
	expires := now.Add(ExpireAfter)
	locale := req.Locale
	if locale == "" {
		locale = "vn"
	}
	params := url.Values{}
	params.Set("vnp_Version", "2.1.0")
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", g.cfg.MerchantCode)
	params.Set("vnp_Amount", strconv.FormatInt(req.Amount*100, 10))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", req.BookingNumber)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_Locale", locale)
	params.Set("vnp_ReturnUrl", g.cfg.ReturnURL)
	params.Set("vnp_IpAddr", req.ClientIP)
	params.Set("vnp_CreateDate", now.Format("20060102150405"))
	params.Set("vnp_ExpireDate", expires.Format("20060102150405"))
	if req.BankCode != "" {
		params.Set("vnp_BankCode", req.BankCode)
	}
	signed := signParams(g.cfg.HashSecret, params)
	return g.cfg.Endpoint + "?" + signed.Encode(), expires.UTC(), nil
}

// VerifyCallback checks the signature of an inbound callback (browser
// return and server notification use the identical scheme).  The
// signature fields are removed, the remainder re-encoded exactly as on
// the outbound path, and the HMAC compared in constant time.
func (g *Gateway) VerifyCallback(params url.Values) error {
	provided := params.Get("vnp_SecureHash")
	if provided == "" {
		return ErrInvalidSignature
	}
	rest := url.Values{}
	for k, vs := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		for _, v := range vs {
			rest.Add(k, v)
		}
	}
	expected := hmacSHA512(g.cfg.HashSecret, encodeSorted(rest))
	if subtle.ConstantTimeCompare([]byte(strings.ToLower(provided)), []byte(expected)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

// signParams appends vnp_SecureHash computed over the sorted,
// URL-encoded parameter set.
func signParams(secret string, params url.Values) url.Values {
	params.Set("vnp_SecureHash", hmacSHA512(secret, encodeSorted(params)))
	return params
}

// encodeSorted renders params as k=v pairs joined by '&' with keys in
// lexicographic order and both keys and values URL-encoded.  This is
// the canonical form both sides sign.
func encodeSorted(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(k)))
	}
	return b.String()
}

func hmacSHA512(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// Ack is the structured acknowledgment returned to the gateway from
// the notification endpoint.
type Ack struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

// Outcome is the booking mutation a verified notification calls for.
type Outcome int

const (
	// OutcomeNone means the notification requires no booking change.
	OutcomeNone Outcome = iota
	// OutcomeMarkPaid confirms the booking and records the payment.
	OutcomeMarkPaid
	// OutcomeMarkFailed records a failed charge; the booking stays
	// PENDING and may be retried within the payment window.
	OutcomeMarkFailed
)

// ResolveNotification decides, for an already signature-verified
// server notification, what should happen to the booking and what to
// acknowledge.  It is the idempotency gate: once the payment status
// has left PENDING, or the booking itself has left PENDING (cancelled
// by expiry or by the hotel), replayed notifications resolve to
// OutcomeNone with an already-confirmed acknowledgment and must cause
// no mutation.  A notification can never move a booking out of a
// terminal status.
func ResolveNotification(b *model.Booking, amountMinor int64, responseCode string) (Outcome, Ack) {
	if b == nil {
		return OutcomeNone, Ack{RspCode: RspOrderNotFound, Message: "Order not found"}
	}
	if amountMinor != b.TotalAmount*100 {
		return OutcomeNone, Ack{RspCode: RspInvalidAmount, Message: "Invalid amount"}
	}
	if b.Status != model.BookingPending || b.PaymentStatus != model.PaymentPending {
		return OutcomeNone, Ack{RspCode: RspAlreadyConfirmed, Message: "Order already confirmed"}
	}
	if responseCode == ResponseCodeSuccess {
		return OutcomeMarkPaid, Ack{RspCode: RspSuccess, Message: "Confirm success"}
	}
	return OutcomeMarkFailed, Ack{RspCode: RspSuccess, Message: "Payment failure recorded"}
}
