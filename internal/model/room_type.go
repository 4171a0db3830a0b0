package model

import "time"

// RoomType is a sellable room category within a hotel, not an
// individual physical room.  Inventory is expressed as TotalRooms
// identical units; availability is always derived by counting
// overlapping bookings, never kept as a mutable counter.
//
// Fields:
//  ID              – primary key identifier.
//  HotelID         – owning hotel.
//  Name            – category name (e.g. "Deluxe Double").
//  BasePrice       – nightly price Monday through Friday, in whole
//                    currency units.
//  WeekendPrice    – nightly price for Saturday and Sunday nights.
//  Currency        – ISO currency code, e.g. "VND".
//  MaxGuests       – maximum guests per unit.
//  TotalRooms      – sellable units of this category (>= 1).
//  DiscountPercent – optional room-level percentage discount.
//  IsActive        – soft-delete flag; deactivated room types stay in
//                    place while bookings still reference them.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type RoomType struct {
	ID              uint64    // room_types.id
	HotelID         uint64    // room_types.hotel_id
	Name            string    // room_types.name
	BasePrice       int64     // room_types.base_price
	WeekendPrice    int64     // room_types.weekend_price
	Currency        string    // room_types.currency
	MaxGuests       int       // room_types.max_guests
	TotalRooms      int       // room_types.total_rooms
	DiscountPercent float64   // room_types.discount_percent
	IsActive        bool      // room_types.is_active
	CreatedAt       time.Time // room_types.created_at
	UpdatedAt       time.Time // room_types.updated_at
}
