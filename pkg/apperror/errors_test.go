package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("update booking: %w", Conflict("invalid status transition"))

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, IsConflict(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.True(t, IsInternal(errors.New("boom")))
}

func TestValidationCitesFirstViolation(t *testing.T) {
	err := Validation([]FieldViolation{
		{Field: "contact_name", Rule: "required", Message: "This field is required"},
		{Field: "number_of_people", Rule: "max", Message: "Maximum value is 50"},
	})

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "validation failed: contact_name: This field is required", err.Error())
	assert.Len(t, err.Fields, 2)
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("create booking", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "create booking: connection reset", err.Error())
}
