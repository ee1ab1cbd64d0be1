package service

import (
	"context"
	"fmt"
	"testing"

	"splitledger/internal/core/domain"
	"splitledger/internal/core/ports"
	"splitledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reportingTestDeps struct {
	svc         ports.ReportingService
	expenseRepo *mocks.MockExpenseRepository
	userRepo    *mocks.MockUserRepository
	renderer    *mocks.MockSheetRenderer
	ctrl        *gomock.Controller
}

func setupReportingService(t *testing.T) *reportingTestDeps {
	ctrl := gomock.NewController(t)
	d := &reportingTestDeps{
		expenseRepo: mocks.NewMockExpenseRepository(ctrl),
		userRepo:    mocks.NewMockUserRepository(ctrl),
		renderer:    mocks.NewMockSheetRenderer(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewReportingService(d.expenseRepo, d.userRepo, d.renderer)
	return d
}

func expenseWith(createdBy uuid.UUID, total int64, shares map[uuid.UUID]int64) domain.Expense {
	participants := make([]domain.ParticipantShare, 0, len(shares))
	for id, amt := range shares {
		a := amt
		participants = append(participants, domain.ParticipantShare{UserID: id, Amount: &a})
	}
	return domain.Expense{
		ID:           uuid.New(),
		Amount:       total,
		SplitMethod:  domain.SplitMethodExact,
		Participants: participants,
		CreatedBy:    createdBy,
	}
}

func TestReportingService_GetBalances(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	v, x, y := uuid.New(), uuid.New(), uuid.New()

	// V paid 90 split 30/30/30 across V, X, Y.
	snapshot := []domain.Expense{
		expenseWith(v, 90, map[uuid.UUID]int64{v: 30, x: 30, y: 30}),
	}

	d.expenseRepo.EXPECT().ListForBalance(ctx, v).Return(snapshot, nil)

	ledger, err := d.svc.GetBalances(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, int64(30), ledger[x])
	assert.Equal(t, int64(30), ledger[y])
}

func TestReportingService_GetBalances_RepoError(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	v := uuid.New()

	d.expenseRepo.EXPECT().ListForBalance(ctx, v).Return(nil, fmt.Errorf("connection lost"))

	_, err := d.svc.GetBalances(ctx, v)
	assertAppError(t, err, "SYS_001")
}

func TestReportingService_BalanceSheet(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	v, x := uuid.New(), uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, v).Return(&domain.User{ID: v, Name: "Ana"}, nil)
	d.expenseRepo.EXPECT().ListForBalance(ctx, v).Return([]domain.Expense{
		expenseWith(v, 100, map[uuid.UUID]int64{v: 50, x: 50}),
	}, nil)
	d.userRepo.EXPECT().GetNames(ctx, []uuid.UUID{x}).Return(map[uuid.UUID]string{x: "Bo"}, nil)
	d.renderer.EXPECT().Render("Ana", gomock.Any()).DoAndReturn(
		func(_ string, rows []ports.BalanceRow) ([]byte, error) {
			require.Len(t, rows, 1)
			assert.Equal(t, x, rows[0].UserID)
			assert.Equal(t, "Bo", rows[0].Name)
			assert.Equal(t, int64(50), rows[0].Net)
			return []byte("%PDF"), nil
		})

	sheet, err := d.svc.BalanceSheet(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), sheet)
}

func TestReportingService_BalanceSheet_UnknownUser(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	v := uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, v).Return(nil, nil)

	_, err := d.svc.BalanceSheet(ctx, v)
	assertAppError(t, err, "RES_001")
}

func TestReportingService_BalanceSheet_RenderFailure(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	v := uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, v).Return(&domain.User{ID: v, Name: "Ana"}, nil)
	d.expenseRepo.EXPECT().ListForBalance(ctx, v).Return(nil, nil)
	d.userRepo.EXPECT().GetNames(ctx, gomock.Any()).Return(map[uuid.UUID]string{}, nil)
	d.renderer.EXPECT().Render("Ana", gomock.Any()).Return(nil, fmt.Errorf("font missing"))

	_, err := d.svc.BalanceSheet(ctx, v)
	assertAppError(t, err, "SYS_002")
}

func TestUserService_GetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(userRepo)

	ctx := context.Background()
	id := uuid.New()

	userRepo.EXPECT().GetByID(ctx, id).Return(&domain.User{ID: id, Name: "Ana"}, nil)

	user, err := svc.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(userRepo)

	ctx := context.Background()
	id := uuid.New()

	userRepo.EXPECT().GetByID(ctx, id).Return(nil, nil)

	_, err := svc.GetProfile(ctx, id)
	assertAppError(t, err, "RES_001")
}
