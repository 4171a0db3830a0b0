package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
	"github.com/Quandz11/hotel-booking-sub001/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID. New accounts start at the
// BRONZE tier with zero lifetime spend.
func (r *UserRepo) Create(ctx context.Context, email, password, role, fullName, phone string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, full_name, phone, membership_tier) VALUES (?,?,?,?,?,?)",
		email, hash, role, fullName, phone, model.TierBronze)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,full_name,phone,lifetime_spend,membership_tier,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FullName, &u.Phone,
		&u.LifetimeSpend, &u.MembershipTier, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,full_name,phone,lifetime_spend,membership_tier,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FullName, &u.Phone,
		&u.LifetimeSpend, &u.MembershipTier, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// RecordSpendTx adds amount to the user's lifetime spend and stores the
// tier derived from the new total, inside the caller's transaction.
// This is called explicitly when a booking becomes confirmed and paid;
// there is no implicit save-time hook.
func (r *UserRepo) RecordSpendTx(ctx context.Context, tx *sql.Tx, userID uint64, amount int64) error {
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET lifetime_spend = lifetime_spend + ? WHERE id = ?",
		amount, userID); err != nil {
		return err
	}
	var spend int64
	if err := tx.QueryRowContext(ctx,
		"SELECT lifetime_spend FROM users WHERE id = ?", userID).Scan(&spend); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx,
		"UPDATE users SET membership_tier = ? WHERE id = ?",
		model.TierForSpend(spend), userID)
	return err
}
