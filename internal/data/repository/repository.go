package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	Booking       BookingRepository
	TourRequest   TourRequestRepository
	CustomBooking CustomBookingRepository
	Package       PackageRepository
	User          UserRepository
	Session       SessionRepository

	tx TxRunner
}

// TxFunc receives repositories bound to a single transaction.
type TxFunc func(repo *Repository) error

type TxRunner interface {
	WithTx(ctx context.Context, fn TxFunc) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositories(db, log)
	repo.tx = &pgxTxRunner{db: db, log: log.With(zap.String("repository", "tx"))}
	return repo
}

func newRepositories(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Booking:       NewBookingRepository(q, log),
		TourRequest:   NewTourRequestRepository(q, log),
		CustomBooking: NewCustomBookingRepository(q, log),
		Package:       NewPackageRepository(q, log),
		User:          NewUserRepository(q, log),
		Session:       NewSessionRepository(q, log),
	}
}

// WithTx runs fn inside a transaction. Repositories without a runner (already
// inside a transaction, or assembled by hand in tests) run fn directly.
func (r *Repository) WithTx(ctx context.Context, fn TxFunc) error {
	if r.tx == nil {
		return fn(r)
	}
	return r.tx.WithTx(ctx, fn)
}

type pgxTxRunner struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTxRunner) WithTx(ctx context.Context, fn TxFunc) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newRepositories(tx, t.log)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			t.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return mapWriteError(fmt.Errorf("commit transaction: %w", err))
	}

	return nil
}
