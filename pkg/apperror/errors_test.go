package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("VAL_001", "Expense amount must be positive", http.StatusBadRequest),
			expected: "[VAL_001] Expense amount must be positive",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidAmount", ErrInvalidAmount(), "VAL_001", 400},
		{"InvalidSplitMethod", ErrInvalidSplitMethod("thirds"), "VAL_002", 400},
		{"NoParticipants", ErrNoParticipants(), "VAL_003", 400},
		{"ExactSumMismatch", ErrExactSumMismatch(20000, 30000), "VAL_004", 400},
		{"PercentageMismatch", ErrPercentageMismatch(9900), "VAL_005", 400},
		{"PrecisionResidue", ErrPrecisionResidue(1), "VAL_006", 400},
		{"MissingShareField", ErrMissingShareField("amount"), "VAL_007", 400},
		{"NegativeShare", ErrNegativeShare(), "VAL_008", 400},
		{"Generic", Validation("bad input"), "VAL_000", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestAuthAndResourceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_001", 401},
		{"EmailExists", ErrEmailExists(), "AUTH_002", 409},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", 401},
		{"InvalidRefreshToken", ErrInvalidRefreshToken(), "AUTH_004", 401},
		{"NotFound", ErrNotFound("User"), "RES_001", 404},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestErrNotFound_Message(t *testing.T) {
	assert.Equal(t, "Expense not found", ErrNotFound("Expense").Message)
}

func TestSystemErrors_WrapCause(t *testing.T) {
	cause := fmt.Errorf("disk full")

	dbErr := ErrDatabaseError(cause)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.True(t, errors.Is(dbErr, cause))

	renderErr := ErrRenderFailure(cause)
	assert.Equal(t, "SYS_002", renderErr.Code)
	assert.True(t, errors.Is(renderErr, cause))
}
