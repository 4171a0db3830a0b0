package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
)

// BookingRepo provides data access to the bookings table.  Status and
// payment transitions are conditional updates ("set X only while still
// Y"); when the precondition no longer holds the methods return
// ErrConflict and the caller must re-read and re-evaluate instead of
// retrying blindly.  All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingCols = `id, booking_number, user_id, hotel_id, room_type_id,
	check_in, check_out, nights, adults, children,
	guest_name, guest_email, guest_phone, special_requests,
	nightly_price, subtotal, discount_percent, discount_amount, tax_amount, total_amount, currency,
	status, payment_status, payment_method, gateway_txn_id, gateway_response,
	paid_at, confirmed_at, checked_in_at, checked_out_at,
	cancellation_policy, cancellation_reason, cancelled_at, refund_amount,
	created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	var paidAt, confirmedAt, checkedInAt, checkedOutAt, cancelledAt sql.NullTime
	err := row.Scan(&b.ID, &b.BookingNumber, &b.UserID, &b.HotelID, &b.RoomTypeID,
		&b.CheckIn, &b.CheckOut, &b.Nights, &b.Adults, &b.Children,
		&b.GuestName, &b.GuestEmail, &b.GuestPhone, &b.SpecialRequests,
		&b.NightlyPrice, &b.Subtotal, &b.DiscountPercent, &b.DiscountAmount, &b.TaxAmount, &b.TotalAmount, &b.Currency,
		&b.Status, &b.PaymentStatus, &b.PaymentMethod, &b.GatewayTxnID, &b.GatewayResponse,
		&paidAt, &confirmedAt, &checkedInAt, &checkedOutAt,
		&b.CancellationPolicy, &b.CancellationReason, &cancelledAt, &b.RefundAmount,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if paidAt.Valid {
		t := paidAt.Time
		b.PaidAt = &t
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		b.ConfirmedAt = &t
	}
	if checkedInAt.Valid {
		t := checkedInAt.Time
		b.CheckedInAt = &t
	}
	if checkedOutAt.Valid {
		t := checkedOutAt.Time
		b.CheckedOutAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	return b, nil
}

// Create inserts a new booking with its frozen pricing snapshot and
// populates the generated ID and timestamps on the provided record.
// The record must arrive in PENDING/PENDING state.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (
		booking_number, user_id, hotel_id, room_type_id,
		check_in, check_out, nights, adults, children,
		guest_name, guest_email, guest_phone, special_requests,
		nightly_price, subtotal, discount_percent, discount_amount, tax_amount, total_amount, currency,
		status, payment_status, payment_method, cancellation_policy
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		b.BookingNumber, b.UserID, b.HotelID, b.RoomTypeID,
		b.CheckIn.UTC().Format("2006-01-02"), b.CheckOut.UTC().Format("2006-01-02"),
		b.Nights, b.Adults, b.Children,
		b.GuestName, b.GuestEmail, b.GuestPhone, b.SpecialRequests,
		b.NightlyPrice, b.Subtotal, b.DiscountPercent, b.DiscountAmount, b.TaxAmount, b.TotalAmount, b.Currency,
		b.Status, b.PaymentStatus, b.PaymentMethod, b.CancellationPolicy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	got, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = got
	return nil
}

// GetByID returns a booking by primary key.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// GetByNumber returns a booking by its unique booking number.  This is
// the lookup used by payment callbacks, where the booking number is
// the gateway order reference.
func (r *BookingRepo) GetByNumber(ctx context.Context, number string) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE booking_number = ?`, number))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// ListByUser returns a customer's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// ListByHotelForOwner returns all bookings of a hotel after verifying
// that the caller owns it.  Returns ErrHotelNotFound when the hotel
// does not exist and ErrForbidden when it belongs to someone else.
func (r *BookingRepo) ListByHotelForOwner(ctx context.Context, hotelID, ownerID uint64) ([]model.Booking, error) {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM hotels WHERE id = ?`, hotelID).Scan(&actualOwner)
	if err == sql.ErrNoRows {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	if actualOwner != ownerID {
		return nil, ErrForbidden
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE hotel_id = ? ORDER BY created_at DESC`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// ListOverlapping returns bookings for a room type whose stay overlaps
// the half-open range [checkIn, checkOut) and whose status could
// consume inventory.  Freshness of pending holds is decided by the
// availability checker, not here, so the 30-minute window lives in one
// place.
func (r *BookingRepo) ListOverlapping(ctx context.Context, roomTypeID uint64, checkIn, checkOut time.Time) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings
		WHERE room_type_id = ?
		  AND status IN ('PENDING','CONFIRMED','CHECKED_IN')
		  AND check_in < ? AND check_out > ?`
	rows, err := r.db.QueryContext(ctx, q, roomTypeID,
		checkOut.UTC().Format("2006-01-02"), checkIn.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// Transition performs a conditional status update from → to and stamps
// the timestamp that belongs to the target status.  Returns
// ErrConflict when the row's status was no longer `from`.  The caller
// must have validated the transition against the lifecycle table.
func (r *BookingRepo) Transition(ctx context.Context, id uint64, from, to string) error {
	set := `status = ?`
	switch to {
	case model.BookingConfirmed:
		set += `, confirmed_at = UTC_TIMESTAMP()`
	case model.BookingCheckedIn:
		set += `, checked_in_at = UTC_TIMESTAMP()`
	case model.BookingCheckedOut:
		set += `, checked_out_at = UTC_TIMESTAMP()`
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET `+set+` WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// Cancel performs a conditional cancellation: the booking moves to
// CANCELLED only while its status is still `from`, recording reason,
// refund and the resulting payment status in the same statement.
func (r *BookingRepo) Cancel(ctx context.Context, id uint64, from, reason string, refund int64, paymentStatus string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings
		 SET status = 'CANCELLED', cancellation_reason = ?, cancelled_at = UTC_TIMESTAMP(),
		     refund_amount = ?, payment_status = ?
		 WHERE id = ? AND status = ?`,
		reason, refund, paymentStatus, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// MarkPaidTx atomically confirms the booking and records the payment
// inside the caller's transaction: status CONFIRMED, payment PAID,
// both timestamps stamped, gateway transaction id and raw payload kept
// for audit.  The double PENDING predicate is the idempotency guard
// against replayed gateway notifications and keeps a late notification
// from resurrecting a booking that was cancelled while unpaid; either
// way the update affects no rows and surfaces as ErrConflict.
func (r *BookingRepo) MarkPaidTx(ctx context.Context, tx *sql.Tx, id uint64, txnID, rawPayload string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings
		 SET status = 'CONFIRMED', payment_status = 'PAID',
		     paid_at = UTC_TIMESTAMP(), confirmed_at = UTC_TIMESTAMP(),
		     gateway_txn_id = ?, gateway_response = ?
		 WHERE id = ? AND status = 'PENDING' AND payment_status = 'PENDING'`,
		txnID, rawPayload, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// MarkPaymentFailed records a failed charge while leaving the booking
// PENDING, so the customer may retry payment within the hold window.
func (r *BookingRepo) MarkPaymentFailed(ctx context.Context, id uint64, rawPayload string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = 'FAILED', gateway_response = ?
		 WHERE id = ? AND payment_status = 'PENDING'`,
		rawPayload, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// ResetFailedPayment returns a FAILED payment to PENDING ahead of a
// retry.  Only valid while the booking itself is still PENDING.
func (r *BookingRepo) ResetFailedPayment(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = 'PENDING'
		 WHERE id = ? AND status = 'PENDING' AND payment_status = 'FAILED'`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}
