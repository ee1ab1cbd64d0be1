package service

import (
	"context"
	"fmt"

	"splitledger/internal/core/domain"
	"splitledger/internal/core/ports"
	"splitledger/pkg/apperror"

	"github.com/google/uuid"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	expenseRepo ports.ExpenseRepository
	userRepo    ports.UserRepository
	renderer    ports.SheetRenderer
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	expenseRepo ports.ExpenseRepository,
	userRepo ports.UserRepository,
	renderer ports.SheetRenderer,
) ports.ReportingService {
	return &reportingService{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		renderer:    renderer,
	}
}

// GetBalances aggregates the viewpoint user's full expense snapshot into a
// net ledger. The repository supplies the pre-filtered set (created by the
// user or with the user as participant); aggregation itself is pure.
func (s *reportingService) GetBalances(ctx context.Context, viewpoint uuid.UUID) (domain.Ledger, error) {
	expenses, err := s.expenseRepo.ListForBalance(ctx, viewpoint)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load expense snapshot: %w", err))
	}

	return domain.ComputeBalances(viewpoint, expenses), nil
}

// BalanceSheet computes the ledger and renders it as a downloadable
// document with counterparty display names.
func (s *reportingService) BalanceSheet(ctx context.Context, viewpoint uuid.UUID) ([]byte, error) {
	user, err := s.userRepo.GetByID(ctx, viewpoint)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("User")
	}

	ledger, err := s.GetBalances(ctx, viewpoint)
	if err != nil {
		return nil, err
	}

	entries := ledger.Entries()
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}

	names, err := s.userRepo.GetNames(ctx, ids)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve counterparty names: %w", err))
	}

	rows := make([]ports.BalanceRow, len(entries))
	for i, e := range entries {
		name, ok := names[e.UserID]
		if !ok {
			name = e.UserID.String()
		}
		rows[i] = ports.BalanceRow{UserID: e.UserID, Name: name, Net: e.Net}
	}

	sheet, err := s.renderer.Render(user.Name, rows)
	if err != nil {
		return nil, apperror.ErrRenderFailure(err)
	}
	return sheet, nil
}
