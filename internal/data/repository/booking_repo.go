package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingFilter struct {
	Status        *entity.BookingStatus
	PaymentStatus *entity.PaymentStatus
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	SearchByCode(ctx context.Context, fragment string, limit int) ([]*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Conditional updates: ErrStaleState when the stored value is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, at time.Time) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, from, to entity.PaymentStatus, at time.Time) error

	// Referential guard for custom tour requests
	CountByTourRequestID(ctx context.Context, tourRequestID uuid.UUID) (int64, error)
}

const bookingColumns = `id, booking_number, tracking_id, user_id, customer_name, customer_email,
	customer_phone, package_id, custom_tour_request_id, start_date, end_date,
	number_of_people, price_per_person, total_amount, status, payment_status,
	special_requests, created_at, updated_at`

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.TrackingID,
		&b.UserID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.PackageID,
		&b.CustomTourRequestID,
		&b.StartDate,
		&b.EndDate,
		&b.NumberOfPeople,
		&b.PricePerPerson,
		&b.TotalAmount,
		&b.Status,
		&b.PaymentStatus,
		&b.SpecialRequests,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingNumber,
		booking.TrackingID,
		booking.UserID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.PackageID,
		booking.CustomTourRequestID,
		booking.StartDate,
		booking.EndDate,
		booking.NumberOfPeople,
		booking.PricePerPerson,
		booking.TotalAmount,
		booking.Status,
		booking.PaymentStatus,
		booking.SpecialRequests,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		err = mapWriteError(err)
		if errors.Is(err, ErrDuplicateCode) {
			r.log.Warn("Booking number collision", zap.String("booking_number", booking.BookingNumber))
			return err
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_number", booking.BookingNumber),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingNumber, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id, "booking_id", id.String())
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id, "booking_id", id.String())
}

// FindByCode matches the canonical booking number or the legacy tracking id.
func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_number = $1 OR tracking_id = $1
		ORDER BY created_at
		LIMIT 1
	`
	return r.findOne(ctx, query, code, "code", code)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, arg any, field, value string) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking",
			zap.Error(err),
			zap.String(field, value),
		)
		return nil, fmt.Errorf("find booking by %s %s: %w", field, value, err)
	}

	return booking, nil
}

func (r *bookingRepository) SearchByCode(ctx context.Context, fragment string, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_number ILIKE $1 OR tracking_id ILIKE $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`

	return r.queryMany(ctx, "search bookings by code", query, likePattern(fragment), limit)
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := bookingWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM bookings%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	return r.queryMany(ctx, "list bookings", query, args...)
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := bookingWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func bookingWhere(filter BookingFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		conds = append(conds, fmt.Sprintf("payment_status = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *bookingRepository) queryMany(ctx context.Context, op, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, at time.Time) error {
	query := `UPDATE bookings SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to, at)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), to, err)
	}

	if result.RowsAffected() == 0 {
		return r.missOrStale(ctx, id)
	}

	return nil
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, from, to entity.PaymentStatus, at time.Time) error {
	query := `UPDATE bookings SET payment_status = $3, updated_at = $4 WHERE id = $1 AND payment_status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to, at)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("payment_status", string(to)),
		)
		return fmt.Errorf("update booking %s payment status to %s: %w", id.String(), to, err)
	}

	if result.RowsAffected() == 0 {
		return r.missOrStale(ctx, id)
	}

	return nil
}

// missOrStale tells apart a deleted row from a conditional update that lost a race.
func (r *bookingRepository) missOrStale(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check booking %s: %w", id.String(), err)
	}
	if !exists {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}
	return fmt.Errorf("booking %s: %w", id.String(), ErrStaleState)
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) CountByTourRequestID(ctx context.Context, tourRequestID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE custom_tour_request_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, tourRequestID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by tour request",
			zap.Error(err),
			zap.String("tour_request_id", tourRequestID.String()),
		)
		return 0, fmt.Errorf("count bookings by tour request %s: %w", tourRequestID.String(), err)
	}

	return count, nil
}
