// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into guest notifications.
package queue

// BookingConfirmedEvent is published after a booking is confirmed and
// paid.  It carries enough information for the notification consumer
// to address the guest without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID     uint64 `json:"booking_id"`
    BookingNumber string `json:"booking_number"`
    UserID        uint64 `json:"user_id"`
    HotelID       uint64 `json:"hotel_id"`
    HotelName     string `json:"hotel_name"`
    RoomTypeName  string `json:"room_type_name"`
    GuestName     string `json:"guest_name"`
    GuestEmail    string `json:"guest_email"`
    CheckIn       string `json:"check_in"`
    CheckOut      string `json:"check_out"`
    Nights        int    `json:"nights"`
    TotalAmount   int64  `json:"total_amount"`
    Currency      string `json:"currency"`
    ConfirmedAt   string `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is cancelled, so
// the guest can be told the fee breakdown they were charged.
type BookingCancelledEvent struct {
    BookingID     uint64 `json:"booking_id"`
    BookingNumber string `json:"booking_number"`
    GuestName     string `json:"guest_name"`
    GuestEmail    string `json:"guest_email"`
    Reason        string `json:"reason"`
    RefundAmount  int64  `json:"refund_amount"`
    Currency      string `json:"currency"`
    CancelledAt   string `json:"cancelled_at"`
}
