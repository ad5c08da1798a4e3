package usecase

import (
	"context"
	"errors"
	"testing"

	"travel-booking/internal/data/repository"
	"travel-booking/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIssueCode(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("retries collisions only", func(t *testing.T) {
		codes := []string{"A", "B", "C"}
		var tried []string
		generate := func() string { return codes[len(tried)] }
		insert := func(code string) error {
			tried = append(tried, code)
			if code == "C" {
				return nil
			}
			return repository.ErrDuplicateCode
		}

		code, err := issueCode(ctx, log, 3, generate, insert)
		require.NoError(t, err)
		assert.Equal(t, "C", code)
		assert.Equal(t, []string{"A", "B", "C"}, tried)
	})

	t.Run("other errors stop immediately", func(t *testing.T) {
		boom := errors.New("connection reset")
		calls := 0
		_, err := issueCode(ctx, log, 3, func() string { return "A" }, func(string) error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhaustion is internal", func(t *testing.T) {
		calls := 0
		_, err := issueCode(ctx, log, 2, func() string { return "A" }, func(string) error {
			calls++
			return repository.ErrDuplicateCode
		})
		assert.True(t, apperror.IsInternal(err))
		assert.ErrorIs(t, err, repository.ErrDuplicateCode)
		assert.Equal(t, 2, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := issueCode(cancelled, log, 3, func() string { return "A" }, func(string) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}
