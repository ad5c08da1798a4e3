package usecase

import (
	"context"
	"errors"

	"travel-booking/internal/data/repository"
	"travel-booking/pkg/apperror"

	"go.uber.org/zap"
)

const defaultCodeAttempts = 3

// issueCode generates a tracking code and hands it to insert, regenerating
// whenever the store reports a collision. Any other insert error is returned
// unchanged. Running out of attempts is an internal error.
func issueCode(ctx context.Context, log *zap.Logger, attempts int, generate func() string, insert func(code string) error) (string, error) {
	if attempts < 1 {
		attempts = defaultCodeAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code := generate()
		err := insert(code)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, repository.ErrDuplicateCode) {
			return "", err
		}

		log.Warn("Tracking code collision, regenerating",
			zap.String("code", code),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
		)
	}

	return "", apperror.Internal("could not allocate a unique tracking code", repository.ErrDuplicateCode)
}
