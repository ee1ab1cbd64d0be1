package postgres

import (
	"context"
	"testing"
	"time"

	"splitledger/internal/core/domain"
	"splitledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func newTestExpense(createdBy uuid.UUID, participants ...uuid.UUID) *domain.Expense {
	now := time.Now().UTC().Truncate(time.Microsecond)
	shares := make([]domain.ParticipantShare, len(participants))
	for i, id := range participants {
		shares[i] = domain.ParticipantShare{UserID: id, Amount: int64Ptr(3000)}
	}
	return &domain.Expense{
		ID:           uuid.New(),
		Description:  "Team dinner",
		Amount:       3000 * int64(len(participants)),
		SplitMethod:  domain.SplitMethodEqual,
		Participants: shares,
		CreatedBy:    createdBy,
		CreatedAt:    now,
	}
}

func expenseColumns() []string {
	return []string{"id", "description", "amount", "split_method", "created_by", "created_at"}
}

func expenseRow(e *domain.Expense) *pgxmock.Rows {
	return pgxmock.NewRows(expenseColumns()).AddRow(
		e.ID, e.Description, e.Amount, e.SplitMethod, e.CreatedBy, e.CreatedAt,
	)
}

func participantRows(e *domain.Expense) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"expense_id", "user_id", "amount"})
	for _, p := range e.Participants {
		rows.AddRow(e.ID, p.UserID, p.Amount)
	}
	return rows
}

func TestExpenseRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewExpenseRepo(mock)
	creator := uuid.New()
	e := newTestExpense(creator, creator, uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO expenses").
		WithArgs(e.ID, e.Description, e.Amount, e.SplitMethod, e.CreatedBy, e.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for i, p := range e.Participants {
		mock.ExpectExec("INSERT INTO expense_participants").
			WithArgs(e.ID, i, p.UserID, p.Amount).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, e)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewExpenseRepo(mock)
	e := newTestExpense(uuid.New(), uuid.New(), uuid.New())

	mock.ExpectQuery("SELECT id, description, amount, split_method, created_by, created_at").
		WithArgs(e.ID).
		WillReturnRows(expenseRow(e))
	mock.ExpectQuery("SELECT expense_id, user_id, amount FROM expense_participants").
		WithArgs([]uuid.UUID{e.ID}).
		WillReturnRows(participantRows(e))

	got, err := repo.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e.Description, got.Description)
	require.Len(t, got.Participants, 2)
	assert.Equal(t, e.Participants[0].UserID, got.Participants[0].UserID)
	assert.Equal(t, int64(3000), *got.Participants[1].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewExpenseRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, description, amount, split_method, created_by, created_at").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_ListForUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewExpenseRepo(mock)
	userID := uuid.New()
	e := newTestExpense(userID, userID, uuid.New())

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT id, description, amount, split_method, created_by, created_at").
		WithArgs(userID, 20, 0).
		WillReturnRows(expenseRow(e))
	mock.ExpectQuery("SELECT expense_id, user_id, amount FROM expense_participants").
		WithArgs([]uuid.UUID{e.ID}).
		WillReturnRows(participantRows(e))

	expenses, total, err := repo.ListForUser(context.Background(), userID, ports.PageParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, expenses, 1)
	assert.Len(t, expenses[0].Participants, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_ListForUser_EmptyPage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewExpenseRepo(mock)
	userID := uuid.New()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery("SELECT id, description, amount, split_method, created_by, created_at").
		WithArgs(userID, 20, 0).
		WillReturnRows(pgxmock.NewRows(expenseColumns()))

	expenses, total, err := repo.ListForUser(context.Background(), userID, ports.PageParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, expenses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_ListAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewExpenseRepo(mock)
	e := newTestExpense(uuid.New(), uuid.New())

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT id, description, amount, split_method, created_by, created_at").
		WithArgs(10, 10).
		WillReturnRows(expenseRow(e))
	mock.ExpectQuery("SELECT expense_id, user_id, amount FROM expense_participants").
		WithArgs([]uuid.UUID{e.ID}).
		WillReturnRows(participantRows(e))

	expenses, total, err := repo.ListAll(context.Background(), ports.PageParams{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, expenses, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_ListForBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewExpenseRepo(mock)
	userID := uuid.New()
	e := newTestExpense(userID, userID, uuid.New(), uuid.New())

	mock.ExpectQuery("SELECT id, description, amount, split_method, created_by, created_at").
		WithArgs(userID).
		WillReturnRows(expenseRow(e))
	mock.ExpectQuery("SELECT expense_id, user_id, amount FROM expense_participants").
		WithArgs([]uuid.UUID{e.ID}).
		WillReturnRows(participantRows(e))

	expenses, err := repo.ListForBalance(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Len(t, expenses[0].Participants, 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}
