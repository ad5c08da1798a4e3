package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomBookingRepository interface {
	Create(ctx context.Context, cb *entity.CustomBooking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomBooking, error)
	FindByCode(ctx context.Context, code string) (*entity.CustomBooking, error)
	SearchByCode(ctx context.Context, fragment string, limit int) ([]*entity.CustomBooking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.CustomBookingStatus, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const customBookingColumns = `id, custom_booking_id, user_id, contact_name, contact_email,
	contact_phone, destination, start_date, end_date, number_of_people, budget,
	require_guide, proposal_type, special_requests, status, created_at, updated_at`

type customBookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCustomBookingRepository(db database.Querier, log *zap.Logger) CustomBookingRepository {
	return &customBookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "custom_booking")),
	}
}

func scanCustomBooking(row rowScanner) (*entity.CustomBooking, error) {
	var cb entity.CustomBooking
	err := row.Scan(
		&cb.ID,
		&cb.CustomBookingID,
		&cb.UserID,
		&cb.ContactName,
		&cb.ContactEmail,
		&cb.ContactPhone,
		&cb.Destination,
		&cb.StartDate,
		&cb.EndDate,
		&cb.NumberOfPeople,
		&cb.Budget,
		&cb.RequireGuide,
		&cb.ProposalType,
		&cb.SpecialRequests,
		&cb.Status,
		&cb.CreatedAt,
		&cb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cb, nil
}

func (r *customBookingRepository) Create(ctx context.Context, cb *entity.CustomBooking) error {
	query := `
		INSERT INTO custom_bookings (` + customBookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		cb.ID,
		cb.CustomBookingID,
		cb.UserID,
		cb.ContactName,
		cb.ContactEmail,
		cb.ContactPhone,
		cb.Destination,
		cb.StartDate,
		cb.EndDate,
		cb.NumberOfPeople,
		cb.Budget,
		cb.RequireGuide,
		cb.ProposalType,
		cb.SpecialRequests,
		cb.Status,
		cb.CreatedAt,
		cb.UpdatedAt,
	)

	if err != nil {
		err = mapWriteError(err)
		if errors.Is(err, ErrDuplicateCode) {
			r.log.Warn("Custom booking id collision", zap.String("custom_booking_id", cb.CustomBookingID))
			return err
		}
		r.log.Error("Failed to create custom booking",
			zap.Error(err),
			zap.String("custom_booking_id", cb.CustomBookingID),
		)
		return fmt.Errorf("create custom booking %s: %w", cb.CustomBookingID, err)
	}

	return nil
}

func (r *customBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomBooking, error) {
	return r.findOne(ctx, `SELECT `+customBookingColumns+` FROM custom_bookings WHERE id = $1`, id, id.String())
}

func (r *customBookingRepository) FindByCode(ctx context.Context, code string) (*entity.CustomBooking, error) {
	return r.findOne(ctx, `SELECT `+customBookingColumns+` FROM custom_bookings WHERE custom_booking_id = $1`, code, code)
}

func (r *customBookingRepository) findOne(ctx context.Context, query string, arg any, key string) (*entity.CustomBooking, error) {
	cb, err := scanCustomBooking(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find custom booking", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("find custom booking %s: %w", key, err)
	}

	return cb, nil
}

func (r *customBookingRepository) SearchByCode(ctx context.Context, fragment string, limit int) ([]*entity.CustomBooking, error) {
	query := `
		SELECT ` + customBookingColumns + `
		FROM custom_bookings
		WHERE custom_booking_id ILIKE $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, likePattern(fragment), limit)
	if err != nil {
		r.log.Error("Failed to search custom bookings", zap.Error(err), zap.String("fragment", fragment))
		return nil, fmt.Errorf("search custom bookings by code: %w", err)
	}
	defer rows.Close()

	var results []*entity.CustomBooking
	for rows.Next() {
		cb, err := scanCustomBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan custom booking row", zap.Error(err))
			return nil, fmt.Errorf("scan custom booking row: %w", err)
		}
		results = append(results, cb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search custom bookings by code: %w", err)
	}

	return results, nil
}

func (r *customBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.CustomBookingStatus, at time.Time) error {
	query := `UPDATE custom_bookings SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to, at)
	if err != nil {
		r.log.Error("Failed to update custom booking status",
			zap.Error(err),
			zap.String("custom_booking_id", id.String()),
		)
		return fmt.Errorf("update custom booking %s status to %s: %w", id.String(), to, err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM custom_bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check custom booking %s: %w", id.String(), err)
		}
		if !exists {
			return fmt.Errorf("custom booking %s: %w", id.String(), ErrNotFound)
		}
		return fmt.Errorf("custom booking %s: %w", id.String(), ErrStaleState)
	}

	return nil
}

func (r *customBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM custom_bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete custom booking",
			zap.Error(err),
			zap.String("custom_booking_id", id.String()),
		)
		return fmt.Errorf("delete custom booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("custom booking %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
