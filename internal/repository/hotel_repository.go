package repository

import (
	"context"
	"database/sql"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// HotelRepo provides CRUD operations for hotels.  Hotels are never
// hard-deleted; deactivation hides them from public browse while
// existing bookings keep referencing them.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *HotelRepo) DB() *sql.DB { return r.db }

const hotelCols = `id, owner_id, name, address, city, cancellation_policy, rating, review_count, is_active, created_at, updated_at`

func scanHotel(row interface{ Scan(...any) error }) (model.Hotel, error) {
	var h model.Hotel
	err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Address, &h.City,
		&h.CancellationPolicy, &h.Rating, &h.ReviewCount, &h.IsActive,
		&h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// Create inserts a hotel and populates the generated ID and timestamps
// on the provided record.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hotels (owner_id, name, address, city, cancellation_policy) VALUES (?, ?, ?, ?, ?)`,
		h.OwnerID, h.Name, h.Address, h.City, h.CancellationPolicy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = got
	return nil
}

// GetByID returns a hotel regardless of its active flag.  Returns
// ErrHotelNotFound when no row exists.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx,
		`SELECT `+hotelCols+` FROM hotels WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.Hotel{}, ErrHotelNotFound
	}
	return h, err
}

// GetActiveByID returns a hotel only when it is publicly visible.
func (r *HotelRepo) GetActiveByID(ctx context.Context, id uint64) (model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx,
		`SELECT `+hotelCols+` FROM hotels WHERE id = ? AND is_active = 1`, id))
	if err == sql.ErrNoRows {
		return model.Hotel{}, ErrHotelNotFound
	}
	return h, err
}

// ListActive returns publicly visible hotels, optionally filtered by
// city (exact match, case-insensitive via collation).
func (r *HotelRepo) ListActive(ctx context.Context, city string) ([]model.Hotel, error) {
	q := `SELECT ` + hotelCols + ` FROM hotels WHERE is_active = 1`
	args := []any{}
	if city != "" {
		q += ` AND city = ?`
		args = append(args, city)
	}
	q += ` ORDER BY rating DESC, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// ListByOwner returns all hotels managed by an owner, active or not.
func (r *HotelRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+hotelCols+` FROM hotels WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// Update persists the mutable hotel fields.  Ownership must already be
// verified by the caller; the owner_id predicate is a second guard.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hotels SET name = ?, address = ?, city = ?, cancellation_policy = ?, is_active = ? WHERE id = ? AND owner_id = ?`,
		h.Name, h.Address, h.City, h.CancellationPolicy, h.IsActive, h.ID, h.OwnerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHotelNotFound
	}
	return nil
}

// RefreshRatingTx recomputes the hotel's rating aggregate from its
// reviews inside the caller's transaction.  Called explicitly after a
// review is saved; rating is never updated by a persistence hook.
func (r *HotelRepo) RefreshRatingTx(ctx context.Context, tx *sql.Tx, hotelID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE hotels h
		 SET h.rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE hotel_id = h.id), 0),
		     h.review_count = (SELECT COUNT(*) FROM reviews WHERE hotel_id = h.id)
		 WHERE h.id = ?`, hotelID)
	return err
}
