package model

import "time"

// Review is feedback left by a customer for a completed stay.  A
// booking becomes review-eligible when it reaches CHECKED_OUT, and at
// most one review may exist per booking (unique key on booking_id).
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – the completed booking being reviewed.
//  UserID    – reviewing customer.
//  HotelID   – denormalised hotel reference for rating aggregation.
//  Rating    – 1 to 5.
//  Comment   – optional free text.
//  CreatedAt – creation timestamp.
type Review struct {
	ID        uint64    // reviews.id
	BookingID uint64    // reviews.booking_id
	UserID    uint64    // reviews.user_id
	HotelID   uint64    // reviews.hotel_id
	Rating    int       // reviews.rating
	Comment   string    // reviews.comment
	CreatedAt time.Time // reviews.created_at
}
