package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PackageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error)
	FindAll(ctx context.Context, offset, limit int, activeOnly bool) ([]*entity.TravelPackage, error)
	CountAll(ctx context.Context, activeOnly bool) (int64, error)
}

const packageColumns = `id, title, destination, duration_days, price, max_group_size,
	is_active, created_at, updated_at`

type packageRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPackageRepository(db database.Querier, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

func scanPackage(row rowScanner) (*entity.TravelPackage, error) {
	var p entity.TravelPackage
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Destination,
		&p.DurationDays,
		&p.Price,
		&p.MaxGroupSize,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM travel_packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package %s: %w", id.String(), err)
	}

	return pkg, nil
}

func (r *packageRepository) FindAll(ctx context.Context, offset, limit int, activeOnly bool) ([]*entity.TravelPackage, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + packageColumns + ` FROM travel_packages`)
	if activeOnly {
		queryBuilder.WriteString(` WHERE is_active = TRUE`)
	}
	queryBuilder.WriteString(` ORDER BY title ASC LIMIT $1 OFFSET $2`)

	rows, err := r.db.Query(ctx, queryBuilder.String(), limit, offset)
	if err != nil {
		r.log.Error("Failed to find all packages",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find packages: %w", err)
	}
	defer rows.Close()

	var packages []*entity.TravelPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			r.log.Error("Failed to scan package row", zap.Error(err))
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate package rows: %w", err)
	}

	return packages, nil
}

func (r *packageRepository) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM travel_packages`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count packages", zap.Error(err))
		return 0, fmt.Errorf("count packages: %w", err)
	}

	return count, nil
}
