package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Split Validation (VAL) ----

func ErrInvalidAmount() *AppError {
	return New("VAL_001", "Expense amount must be positive", http.StatusBadRequest)
}

func ErrInvalidSplitMethod(method string) *AppError {
	return New("VAL_002", fmt.Sprintf("Invalid split method: %s", method), http.StatusBadRequest)
}

func ErrNoParticipants() *AppError {
	return New("VAL_003", "At least one participant is required", http.StatusBadRequest)
}

func ErrExactSumMismatch(sum, total int64) *AppError {
	return New("VAL_004",
		fmt.Sprintf("The total of exact amounts (%d) must equal the expense amount (%d)", sum, total),
		http.StatusBadRequest)
}

func ErrPercentageMismatch(sumBps int64) *AppError {
	return New("VAL_005",
		fmt.Sprintf("Percentages must add up to 100%%, got %d basis points", sumBps),
		http.StatusBadRequest)
}

// ErrPrecisionResidue flags sums that miss the total by less than one minor
// unit per participant, which almost always means the caller rounded each
// share independently instead of distributing the remainder.
func ErrPrecisionResidue(residue int64) *AppError {
	return New("VAL_006",
		fmt.Sprintf("Shares differ from the total by a rounding residue of %d minor units", residue),
		http.StatusBadRequest)
}

func ErrMissingShareField(field string) *AppError {
	return New("VAL_007", fmt.Sprintf("Every participant must supply %q for this split method", field), http.StatusBadRequest)
}

func ErrNegativeShare() *AppError {
	return New("VAL_008", "Participant amounts and percentages must not be negative", http.StatusBadRequest)
}

// Validation returns a generic VAL_000 validation error with a custom message.
func Validation(message string) *AppError {
	return New("VAL_000", message, http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrInvalidRefreshToken() *AppError {
	return New("AUTH_004", "Invalid or expired refresh token", http.StatusUnauthorized)
}

// ---- Resources (RES) ----

func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrRenderFailure(err error) *AppError {
	return Wrap("SYS_002", "Balance sheet rendering failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
