package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewValidationError("slotDate", "bad format"))

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "slotDate", appErr.Field)
	assert.Equal(t, "invalid slotDate: bad format", appErr.Message)
	assert.True(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(nil, KindValidation))
}

func TestUnexpectedErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewUnexpectedError("failed to load slots", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load slots: connection reset", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("x", "y")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewConflictError("overlap")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewInvalidTransitionError("Completed", "Pending")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("slot", "1")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
