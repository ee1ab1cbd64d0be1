package postgres

import (
	"context"
	"errors"
	"fmt"

	"splitledger/internal/core/domain"
	"splitledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// visibleExpenses restricts a query to expenses the user created or
// participates in. $1 is the user ID in every query that embeds it.
const visibleExpenses = `(e.created_by = $1 OR EXISTS (
		SELECT 1 FROM expense_participants p WHERE p.expense_id = e.id AND p.user_id = $1))`

// ExpenseRepo implements ports.ExpenseRepository.
type ExpenseRepo struct {
	pool Pool
}

// NewExpenseRepo creates a new ExpenseRepo.
func NewExpenseRepo(pool Pool) *ExpenseRepo {
	return &ExpenseRepo{pool: pool}
}

// Create inserts an expense and its participant shares within a database
// transaction. The participant insert preserves input order via the idx
// column so duplicate user IDs stay distinct rows.
func (r *ExpenseRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.Expense) error {
	query := `INSERT INTO expenses (id, description, amount, split_method, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.Description, e.Amount, e.SplitMethod, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	shareQuery := `INSERT INTO expense_participants (expense_id, idx, user_id, amount)
		VALUES ($1, $2, $3, $4)`

	for i, p := range e.Participants {
		if _, err := tx.Exec(ctx, shareQuery, e.ID, i, p.UserID, p.Amount); err != nil {
			return fmt.Errorf("insert expense participant: %w", err)
		}
	}
	return nil
}

// GetByID fetches an expense with its participant shares.
func (r *ExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	query := `SELECT id, description, amount, split_method, created_by, created_at
		FROM expenses WHERE id = $1`

	e := &domain.Expense{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Description, &e.Amount, &e.SplitMethod, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense by id: %w", err)
	}

	expenses := []domain.Expense{*e}
	if err := r.loadParticipants(ctx, expenses); err != nil {
		return nil, err
	}
	return &expenses[0], nil
}

// ListForUser fetches expenses the user created or participates in,
// newest first, with pagination.
func (r *ExpenseRepo) ListForUser(ctx context.Context, userID uuid.UUID, params ports.PageParams) ([]domain.Expense, int64, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM expenses e WHERE %s`, visibleExpenses)

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT id, description, amount, split_method, created_by, created_at
		FROM expenses e WHERE %s ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`, visibleExpenses)

	expenses, err := r.queryExpenses(ctx, dataQuery, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ListAll fetches every expense in the system, newest first, with
// pagination.
func (r *ExpenseRepo) ListAll(ctx context.Context, params ports.PageParams) ([]domain.Expense, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	dataQuery := `SELECT id, description, amount, split_method, created_by, created_at
		FROM expenses ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`

	expenses, err := r.queryExpenses(ctx, dataQuery, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ListForBalance fetches the full unpaginated expense snapshot for balance
// aggregation, oldest first.
func (r *ExpenseRepo) ListForBalance(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error) {
	query := fmt.Sprintf(`SELECT id, description, amount, split_method, created_by, created_at
		FROM expenses e WHERE %s ORDER BY created_at, id`, visibleExpenses)

	return r.queryExpenses(ctx, query, userID)
}

// queryExpenses runs an expense header query and hydrates participant
// shares for the result set.
func (r *ExpenseRepo) queryExpenses(ctx context.Context, query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e := domain.Expense{}
		err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.SplitMethod, &e.CreatedBy, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}

	if err := r.loadParticipants(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// loadParticipants attaches participant shares, in stored order, to each
// expense in the slice.
func (r *ExpenseRepo) loadParticipants(ctx context.Context, expenses []domain.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(expenses))
	byID := make(map[uuid.UUID]*domain.Expense, len(expenses))
	for i := range expenses {
		ids[i] = expenses[i].ID
		byID[expenses[i].ID] = &expenses[i]
	}

	query := `SELECT expense_id, user_id, amount FROM expense_participants
		WHERE expense_id = ANY($1) ORDER BY expense_id, idx`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list expense participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID uuid.UUID
		var share domain.ParticipantShare
		if err := rows.Scan(&expenseID, &share.UserID, &share.Amount); err != nil {
			return fmt.Errorf("scan participant row: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.Participants = append(e.Participants, share)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate participant rows: %w", err)
	}
	return nil
}
