package model

import "time"

// Roles assigned to accounts.  CUSTOMER books rooms, OWNER manages
// hotels and the bookings made against them, ADMIN can do both.
const (
	RoleCustomer = "CUSTOMER"
	RoleOwner    = "OWNER"
	RoleAdmin    = "ADMIN"
)

// Membership tiers derived from lifetime spend.  Each tier grants a
// fixed discount percentage applied when a booking is priced.
const (
	TierBronze  = "BRONZE"
	TierSilver  = "SILVER"
	TierGold    = "GOLD"
	TierDiamond = "DIAMOND"
)

// Lifetime spend thresholds (whole currency units) at which a customer
// is promoted to the next tier.
const (
	silverThreshold  = 50_000_000
	goldThreshold    = 200_000_000
	diamondThreshold = 500_000_000
)

// User represents an account on the platform.
//
// Fields:
//  ID             – primary key identifier.
//  Email          – unique login email (stored lowercase).
//  PasswordHash   – bcrypt hash of the password.
//  Role           – CUSTOMER, OWNER or ADMIN.
//  FullName       – display name used on bookings.
//  Phone          – contact phone number.
//  LifetimeSpend  – total of confirmed and paid bookings; drives the
//                   membership tier.
//  MembershipTier – tier derived from LifetimeSpend (see TierForSpend).
//  IsActive       – soft-delete flag.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type User struct {
	ID             uint64    // users.id
	Email          string    // users.email
	PasswordHash   string    // users.password_hash
	Role           string    // users.role
	FullName       string    // users.full_name
	Phone          string    // users.phone
	LifetimeSpend  int64     // users.lifetime_spend
	MembershipTier string    // users.membership_tier
	IsActive       bool      // users.is_active
	CreatedAt      time.Time // users.created_at
	UpdatedAt      time.Time // users.updated_at
}

// TierForSpend maps a lifetime spend total to a membership tier.
func TierForSpend(spend int64) string {
	switch {
	case spend >= diamondThreshold:
		return TierDiamond
	case spend >= goldThreshold:
		return TierGold
	case spend >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// TierDiscountPercent returns the booking-time discount percentage
// granted by a membership tier.  Unknown tiers get no discount.
func TierDiscountPercent(tier string) float64 {
	switch tier {
	case TierDiamond:
		return 5
	case TierGold:
		return 3
	case TierSilver:
		return 1
	default:
		return 0
	}
}
