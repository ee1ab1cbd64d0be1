package handler

import (
	"math"
	"strconv"

	"splitledger/internal/adapter/http/dto"
	"splitledger/internal/adapter/http/middleware"
	"splitledger/internal/core/domain"
	"splitledger/internal/core/ports"
	"splitledger/pkg/apperror"
	"splitledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExpenseHandler handles expense recording and listing endpoints.
type ExpenseHandler struct {
	expenseSvc ports.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseSvc ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseSvc: expenseSvc}
}

// Create handles POST /api/v1/expenses. The authenticated user is the
// expense creator.
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	participants := make([]domain.ShareInput, len(req.Participants))
	for i, p := range req.Participants {
		pid, err := uuid.Parse(p.UserID)
		if err != nil {
			response.Error(c, apperror.Validation("participant user_id must be a UUID"))
			return
		}
		participants[i] = domain.ShareInput{
			UserID:     pid,
			Amount:     p.Amount,
			PercentBps: p.PercentBps,
		}
	}

	expense, err := h.expenseSvc.Create(c.Request.Context(), ports.CreateExpenseRequest{
		CreatedBy:    userID,
		Description:  req.Description,
		Amount:       req.Amount,
		SplitMethod:  domain.SplitMethod(req.SplitMethod),
		Participants: participants,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewExpenseResponse(expense))
}

// List handles GET /api/v1/expenses. Returns expenses the authenticated
// user created or participates in, newest first.
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	params := pageParams(c)
	expenses, total, err := h.expenseSvc.ListForUser(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, expenseList(expenses, total, params))
}

// ListAll handles GET /api/v1/expenses/all. Returns every expense in the
// system, newest first.
func (h *ExpenseHandler) ListAll(c *gin.Context) {
	if _, ok := authedUser(c); !ok {
		return
	}

	params := pageParams(c)
	expenses, total, err := h.expenseSvc.ListAll(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, expenseList(expenses, total, params))
}

// authedUser extracts the authenticated user ID set by the JWT middleware.
func authedUser(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return uuid.Nil, false
	}
	return v.(uuid.UUID), true
}

func pageParams(c *gin.Context) ports.PageParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return ports.PageParams{Page: page, PageSize: pageSize}
}

func expenseList(expenses []domain.Expense, total int64, params ports.PageParams) dto.ExpenseListResponse {
	items := make([]dto.ExpenseResponse, len(expenses))
	for i := range expenses {
		items[i] = dto.NewExpenseResponse(&expenses[i])
	}
	return dto.ExpenseListResponse{
		Expenses:   items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: int64(math.Ceil(float64(total) / float64(params.PageSize))),
	}
}
