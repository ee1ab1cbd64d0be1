package service

import (
	"context"
	"fmt"
	"time"

	"splitledger/internal/core/domain"
	"splitledger/internal/core/ports"
	"splitledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExpenseServiceImpl implements ports.ExpenseService.
type ExpenseServiceImpl struct {
	expenseRepo ports.ExpenseRepository
	userRepo    ports.UserRepository
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewExpenseService creates a new ExpenseServiceImpl.
func NewExpenseService(
	expenseRepo ports.ExpenseRepository,
	userRepo ports.UserRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		transactor:  transactor,
		log:         log,
	}
}

// Create validates the split, computes per-participant shares, and persists
// the expense with its shares atomically. Validation failures surface before
// anything is written; the stored record is immutable from then on.
func (s *ExpenseServiceImpl) Create(ctx context.Context, req ports.CreateExpenseRequest) (*domain.Expense, error) {
	if req.Description == "" {
		return nil, apperror.Validation("description is required")
	}

	shares, err := domain.ComputeShares(req.Amount, req.SplitMethod, req.Participants)
	if err != nil {
		return nil, err
	}

	if err := s.checkParticipantsExist(ctx, req.Participants); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:           uuid.New(),
		Description:  req.Description,
		Amount:       req.Amount,
		SplitMethod:  req.SplitMethod,
		Participants: shares,
		CreatedBy:    req.CreatedBy,
		CreatedAt:    time.Now().UTC(),
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.expenseRepo.Create(ctx, dbTx, expense); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create expense: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("expense_id", expense.ID.String()).
		Str("created_by", req.CreatedBy.String()).
		Int64("amount", req.Amount).
		Str("split_method", string(req.SplitMethod)).
		Int("participants", len(shares)).
		Msg("expense recorded")

	return expense, nil
}

// ListForUser returns expenses the user created or participates in.
func (s *ExpenseServiceImpl) ListForUser(ctx context.Context, userID uuid.UUID, params ports.PageParams) ([]domain.Expense, int64, error) {
	expenses, total, err := s.expenseRepo.ListForUser(ctx, userID, normalizePage(params))
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list expenses: %w", err))
	}
	return expenses, total, nil
}

// ListAll returns every expense in the system.
func (s *ExpenseServiceImpl) ListAll(ctx context.Context, params ports.PageParams) ([]domain.Expense, int64, error) {
	expenses, total, err := s.expenseRepo.ListAll(ctx, normalizePage(params))
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list all expenses: %w", err))
	}
	return expenses, total, nil
}

// checkParticipantsExist verifies every referenced participant is a known
// user. Duplicate IDs are looked up once; they still produce separate shares.
func (s *ExpenseServiceImpl) checkParticipantsExist(ctx context.Context, inputs []domain.ShareInput) error {
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.UserID]; ok {
			continue
		}
		seen[in.UserID] = struct{}{}
		ids = append(ids, in.UserID)
	}

	names, err := s.userRepo.GetNames(ctx, ids)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("resolve participants: %w", err))
	}
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			return apperror.ErrNotFound("User")
		}
	}
	return nil
}

func normalizePage(params ports.PageParams) ports.PageParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return params
}
