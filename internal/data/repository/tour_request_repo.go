package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TourRequestRepository interface {
	Create(ctx context.Context, req *entity.CustomTourRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomTourRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.CustomTourRequest, error)
	FindByCode(ctx context.Context, code string) (*entity.CustomTourRequest, error)
	SearchByCode(ctx context.Context, fragment string, limit int) ([]*entity.CustomTourRequest, error)
	List(ctx context.Context, status *entity.TourRequestStatus, limit, offset int) ([]*entity.CustomTourRequest, error)
	Count(ctx context.Context, status *entity.TourRequestStatus) (int64, error)

	// Update writes the staff-editable fields; ErrStaleState when the stored
	// status is no longer expectedStatus.
	Update(ctx context.Context, req *entity.CustomTourRequest, expectedStatus entity.TourRequestStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const tourRequestColumns = `id, tracking_number, contact_name, contact_email, contact_phone,
	destination, start_date, end_date, number_of_people, budget, special_requests,
	status, assigned_staff_id, response_notes, estimated_cost, response_date,
	created_at, updated_at`

type tourRequestRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTourRequestRepository(db database.Querier, log *zap.Logger) TourRequestRepository {
	return &tourRequestRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour_request")),
	}
}

func scanTourRequest(row rowScanner) (*entity.CustomTourRequest, error) {
	var t entity.CustomTourRequest
	err := row.Scan(
		&t.ID,
		&t.TrackingNumber,
		&t.ContactName,
		&t.ContactEmail,
		&t.ContactPhone,
		&t.Destination,
		&t.StartDate,
		&t.EndDate,
		&t.NumberOfPeople,
		&t.Budget,
		&t.SpecialRequests,
		&t.Status,
		&t.AssignedStaffID,
		&t.ResponseNotes,
		&t.EstimatedCost,
		&t.ResponseDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tourRequestRepository) Create(ctx context.Context, req *entity.CustomTourRequest) error {
	query := `
		INSERT INTO custom_tour_requests (` + tourRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		req.ID,
		req.TrackingNumber,
		req.ContactName,
		req.ContactEmail,
		req.ContactPhone,
		req.Destination,
		req.StartDate,
		req.EndDate,
		req.NumberOfPeople,
		req.Budget,
		req.SpecialRequests,
		req.Status,
		req.AssignedStaffID,
		req.ResponseNotes,
		req.EstimatedCost,
		req.ResponseDate,
		req.CreatedAt,
		req.UpdatedAt,
	)

	if err != nil {
		err = mapWriteError(err)
		if errors.Is(err, ErrDuplicateCode) {
			r.log.Warn("Tracking number collision", zap.String("tracking_number", req.TrackingNumber))
			return err
		}
		r.log.Error("Failed to create tour request",
			zap.Error(err),
			zap.String("tracking_number", req.TrackingNumber),
		)
		return fmt.Errorf("create tour request %s: %w", req.TrackingNumber, err)
	}

	return nil
}

func (r *tourRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomTourRequest, error) {
	return r.findOne(ctx, `SELECT `+tourRequestColumns+` FROM custom_tour_requests WHERE id = $1`, id, id.String())
}

func (r *tourRequestRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.CustomTourRequest, error) {
	return r.findOne(ctx, `SELECT `+tourRequestColumns+` FROM custom_tour_requests WHERE id = $1 FOR UPDATE`, id, id.String())
}

func (r *tourRequestRepository) FindByCode(ctx context.Context, code string) (*entity.CustomTourRequest, error) {
	return r.findOne(ctx, `SELECT `+tourRequestColumns+` FROM custom_tour_requests WHERE tracking_number = $1`, code, code)
}

func (r *tourRequestRepository) findOne(ctx context.Context, query string, arg any, key string) (*entity.CustomTourRequest, error) {
	req, err := scanTourRequest(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour request", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("find tour request %s: %w", key, err)
	}

	return req, nil
}

func (r *tourRequestRepository) SearchByCode(ctx context.Context, fragment string, limit int) ([]*entity.CustomTourRequest, error) {
	query := `
		SELECT ` + tourRequestColumns + `
		FROM custom_tour_requests
		WHERE tracking_number ILIKE $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`

	return r.queryMany(ctx, "search tour requests by code", query, likePattern(fragment), limit)
}

func (r *tourRequestRepository) List(ctx context.Context, status *entity.TourRequestStatus, limit, offset int) ([]*entity.CustomTourRequest, error) {
	if status != nil {
		query := `SELECT ` + tourRequestColumns + ` FROM custom_tour_requests
			WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		return r.queryMany(ctx, "list tour requests", query, *status, limit, offset)
	}

	query := `SELECT ` + tourRequestColumns + ` FROM custom_tour_requests
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryMany(ctx, "list tour requests", query, limit, offset)
}

func (r *tourRequestRepository) Count(ctx context.Context, status *entity.TourRequestStatus) (int64, error) {
	var count int64
	var err error
	if status != nil {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM custom_tour_requests WHERE status = $1`, *status).Scan(&count)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM custom_tour_requests`).Scan(&count)
	}

	if err != nil {
		r.log.Error("Failed to count tour requests", zap.Error(err))
		return 0, fmt.Errorf("count tour requests: %w", err)
	}

	return count, nil
}

func (r *tourRequestRepository) queryMany(ctx context.Context, op, query string, args ...any) ([]*entity.CustomTourRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var requests []*entity.CustomTourRequest
	for rows.Next() {
		req, err := scanTourRequest(rows)
		if err != nil {
			r.log.Error("Failed to scan tour request row", zap.Error(err))
			return nil, fmt.Errorf("scan tour request row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return requests, nil
}

func (r *tourRequestRepository) Update(ctx context.Context, req *entity.CustomTourRequest, expectedStatus entity.TourRequestStatus) error {
	query := `
		UPDATE custom_tour_requests
		SET status = $3, assigned_staff_id = $4, response_notes = $5,
		    estimated_cost = $6, response_date = $7, updated_at = $8
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query,
		req.ID,
		expectedStatus,
		req.Status,
		req.AssignedStaffID,
		req.ResponseNotes,
		req.EstimatedCost,
		req.ResponseDate,
		req.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update tour request",
			zap.Error(err),
			zap.String("tour_request_id", req.ID.String()),
		)
		return fmt.Errorf("update tour request %s: %w", req.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM custom_tour_requests WHERE id = $1)`, req.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check tour request %s: %w", req.ID.String(), err)
		}
		if !exists {
			return fmt.Errorf("tour request %s: %w", req.ID.String(), ErrNotFound)
		}
		return fmt.Errorf("tour request %s: %w", req.ID.String(), ErrStaleState)
	}

	return nil
}

func (r *tourRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM custom_tour_requests WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete tour request",
			zap.Error(err),
			zap.String("tour_request_id", id.String()),
		)
		return fmt.Errorf("delete tour request %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour request %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Tour request deleted", zap.String("tour_request_id", id.String()))
	return nil
}
