package repository

import (
	"context"
	"database/sql"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// RoomTypeRepo provides CRUD operations for room types.  Price and
// capacity edits go through Update; room types referenced by bookings
// are only ever deactivated, never removed.
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo returns a new RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

const roomCols = `id, hotel_id, name, base_price, weekend_price, currency, max_guests, total_rooms, discount_percent, is_active, created_at, updated_at`

func scanRoomType(row interface{ Scan(...any) error }) (model.RoomType, error) {
	var rt model.RoomType
	err := row.Scan(&rt.ID, &rt.HotelID, &rt.Name, &rt.BasePrice, &rt.WeekendPrice,
		&rt.Currency, &rt.MaxGuests, &rt.TotalRooms, &rt.DiscountPercent,
		&rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt)
	return rt, err
}

// Create inserts a room type and populates its generated ID and
// timestamps.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO room_types (hotel_id, name, base_price, weekend_price, currency, max_guests, total_rooms, discount_percent)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.HotelID, rt.Name, rt.BasePrice, rt.WeekendPrice, rt.Currency,
		rt.MaxGuests, rt.TotalRooms, rt.DiscountPercent)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	got, err := r.GetByID(ctx, rt.ID)
	if err != nil {
		return err
	}
	*rt = got
	return nil
}

// GetByID returns a room type regardless of its active flag.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (model.RoomType, error) {
	rt, err := scanRoomType(r.db.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM room_types WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.RoomType{}, ErrRoomTypeNotFound
	}
	return rt, err
}

// GetActiveByID returns a room type only when it is still bookable.
func (r *RoomTypeRepo) GetActiveByID(ctx context.Context, id uint64) (model.RoomType, error) {
	rt, err := scanRoomType(r.db.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM room_types WHERE id = ? AND is_active = 1`, id))
	if err == sql.ErrNoRows {
		return model.RoomType{}, ErrRoomTypeNotFound
	}
	return rt, err
}

// ListByHotel returns room types of a hotel.  When activeOnly is set,
// deactivated categories are excluded (the public browse view).
func (r *RoomTypeRepo) ListByHotel(ctx context.Context, hotelID uint64, activeOnly bool) ([]model.RoomType, error) {
	q := `SELECT ` + roomCols + ` FROM room_types WHERE hotel_id = ?`
	if activeOnly {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.RoomType, 0)
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rt)
	}
	return items, rows.Err()
}

// Update persists price, capacity, discount and the active flag.
func (r *RoomTypeRepo) Update(ctx context.Context, rt *model.RoomType) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_types SET name = ?, base_price = ?, weekend_price = ?, currency = ?, max_guests = ?, total_rooms = ?, discount_percent = ?, is_active = ?
		 WHERE id = ? AND hotel_id = ?`,
		rt.Name, rt.BasePrice, rt.WeekendPrice, rt.Currency, rt.MaxGuests,
		rt.TotalRooms, rt.DiscountPercent, rt.IsActive, rt.ID, rt.HotelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}

// Deactivate soft-deletes a room type.  Existing bookings keep their
// reference and pricing snapshot.
func (r *RoomTypeRepo) Deactivate(ctx context.Context, id, hotelID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_types SET is_active = 0 WHERE id = ? AND hotel_id = ?`, id, hotelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}
