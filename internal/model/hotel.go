package model

import "time"

// Cancellation policy tiers.  The tier in force when a booking is
// created is snapshotted onto the booking; later changes to the hotel
// never alter the fee math of existing bookings.
const (
	PolicyFlexible = "FLEXIBLE"
	PolicyModerate = "MODERATE"
	PolicyStrict   = "STRICT"
)

// ValidPolicy reports whether s is one of the known policy tiers.
func ValidPolicy(s string) bool {
	return s == PolicyFlexible || s == PolicyModerate || s == PolicyStrict
}

// Hotel is a property managed by an OWNER account.
//
// Fields:
//  ID                 – primary key identifier.
//  OwnerID            – account that manages the hotel.
//  Name               – display name.
//  Address            – street address.
//  City               – city used for browse filtering.
//  CancellationPolicy – FLEXIBLE, MODERATE or STRICT.
//  Rating             – average review rating (recomputed on review save).
//  ReviewCount        – number of reviews behind Rating.
//  IsActive           – soft-delete flag; inactive hotels are hidden
//                       from public browse.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Hotel struct {
	ID                 uint64    // hotels.id
	OwnerID            uint64    // hotels.owner_id
	Name               string    // hotels.name
	Address            string    // hotels.address
	City               string    // hotels.city
	CancellationPolicy string    // hotels.cancellation_policy
	Rating             float64   // hotels.rating
	ReviewCount        uint32    // hotels.review_count
	IsActive           bool      // hotels.is_active
	CreatedAt          time.Time // hotels.created_at
	UpdatedAt          time.Time // hotels.updated_at
}
