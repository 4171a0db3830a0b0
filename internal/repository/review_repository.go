package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// ErrReviewExists is returned when a booking already has a review; the
// unique key on booking_id enforces one review per completed stay.
var ErrReviewExists = errors.New("booking already reviewed")

// ReviewRepo persists reviews and keeps the hotel rating aggregate in
// step with them.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// CreateTx inserts a review inside the caller's transaction.  The
// caller is expected to follow up with HotelRepo.RefreshRatingTx in
// the same transaction so the aggregate never drifts from the rows.
func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, rev *model.Review) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO reviews (booking_id, user_id, hotel_id, rating, comment) VALUES (?, ?, ?, ?, ?)`,
		rev.BookingID, rev.UserID, rev.HotelID, rev.Rating, rev.Comment)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrReviewExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return nil
}

// ListByHotel returns a hotel's reviews, newest first.
func (r *ReviewRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, booking_id, user_id, hotel_id, rating, comment, created_at
		 FROM reviews WHERE hotel_id = ? ORDER BY created_at DESC`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.BookingID, &rev.UserID, &rev.HotelID,
			&rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, rev)
	}
	return items, rows.Err()
}
