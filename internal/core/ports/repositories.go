package ports

import (
	"context"

	"splitledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetNames resolves display names for a set of user IDs.
	GetNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// ExpenseRepository defines persistence operations for expenses.
// Expenses are immutable once written: there is no update or delete method.
// Create runs inside a pgx.Tx so the expense row and its participant shares
// land atomically.
type ExpenseRepository interface {
	Create(ctx context.Context, tx pgx.Tx, expense *domain.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	// ListForUser returns expenses the user created or participates in,
	// newest first. This is the pre-filtered input set for balance
	// aggregation.
	ListForUser(ctx context.Context, userID uuid.UUID, params PageParams) ([]domain.Expense, int64, error)
	// ListAll returns every expense in the system, newest first.
	ListAll(ctx context.Context, params PageParams) ([]domain.Expense, int64, error)
	// ListForBalance returns the full unpaginated snapshot of expenses the
	// user created or participates in, for balance aggregation.
	ListForBalance(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error)
}

// PageParams holds pagination for listing expenses.
type PageParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
