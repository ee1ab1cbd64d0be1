package ports

import (
	"context"
	"time"

	"splitledger/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT access token operations.
type TokenService interface {
	Generate(userID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// SessionStore persists refresh tokens server-side so they can be revoked
// and rotated. A missing token reports uuid.Nil with no error.
type SessionStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// SheetRenderer produces a downloadable balance sheet document.
// The core treats rendering as a collaborator with no say over the format.
type SheetRenderer interface {
	Render(viewpointName string, rows []BalanceRow) ([]byte, error)
}

// BalanceRow is one counterparty line of a rendered balance sheet.
type BalanceRow struct {
	UserID uuid.UUID
	Name   string
	Net    int64 // minor units; positive = owed to the viewpoint user
}

// --- Service Ports (Business Logic) ---

// AuthService defines authentication business logic.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// RegisterRequest holds input for user registration.
type RegisterRequest struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
}

// ExpenseService defines expense recording and retrieval.
type ExpenseService interface {
	Create(ctx context.Context, req CreateExpenseRequest) (*domain.Expense, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params PageParams) ([]domain.Expense, int64, error)
	ListAll(ctx context.Context, params PageParams) ([]domain.Expense, int64, error)
}

// CreateExpenseRequest holds validated input for expense creation.
type CreateExpenseRequest struct {
	CreatedBy    uuid.UUID
	Description  string
	Amount       int64 // minor units
	SplitMethod  domain.SplitMethod
	Participants []domain.ShareInput
}

// ReportingService defines balance computation and document rendering.
type ReportingService interface {
	GetBalances(ctx context.Context, viewpoint uuid.UUID) (domain.Ledger, error)
	// BalanceSheet renders the viewpoint user's ledger as a downloadable
	// document and returns its bytes.
	BalanceSheet(ctx context.Context, viewpoint uuid.UUID) ([]byte, error)
}

// UserService defines user profile retrieval.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
