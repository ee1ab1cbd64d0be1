package dto

import (
	"splitledger/internal/core/domain"
)

// RegisterRequest is the request body for user signup.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Mobile   string `json:"mobile" binding:"omitempty,mobile_number"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the opaque refresh token for rotation or logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required,max=128"`
}

// TokenPairResponse is the response body for login and refresh.
type TokenPairResponse struct {
	AccessToken   string `json:"access_token"`
	AccessExpiry  int64  `json:"access_expiry"` // Unix timestamp
	RefreshToken  string `json:"refresh_token"`
	RefreshExpiry int64  `json:"refresh_expiry"` // Unix timestamp
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile,omitempty"`
	CreatedAt string `json:"created_at"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ShareInput is one participant entry of an expense creation request.
// Amount is minor units and required for the exact method; PercentBps is
// basis points (10000 = 100%) and required for the percentage method.
type ShareInput struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	Amount     *int64 `json:"amount,omitempty"`
	PercentBps *int64 `json:"percent_bps,omitempty"`
}

// CreateExpenseRequest is the request body for expense creation.
type CreateExpenseRequest struct {
	Description  string       `json:"description" binding:"required,min=1,max=200"`
	Amount       int64        `json:"amount" binding:"required,gt=0"`
	SplitMethod  string       `json:"split_method" binding:"required,oneof=equal exact percentage"`
	Participants []ShareInput `json:"participants" binding:"required,min=1,dive"`
}

// ParticipantShareResponse is one resolved share of a stored expense.
type ParticipantShareResponse struct {
	UserID string `json:"user_id"`
	Amount *int64 `json:"amount,omitempty"`
}

// ExpenseResponse is the response body for a stored expense.
type ExpenseResponse struct {
	ID           string                     `json:"id"`
	Description  string                     `json:"description"`
	Amount       int64                      `json:"amount"`
	SplitMethod  string                     `json:"split_method"`
	Participants []ParticipantShareResponse `json:"participants"`
	CreatedBy    string                     `json:"created_by"`
	CreatedAt    string                     `json:"created_at"`
}

// NewExpenseResponse maps a domain expense to its response form.
func NewExpenseResponse(e *domain.Expense) ExpenseResponse {
	participants := make([]ParticipantShareResponse, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = ParticipantShareResponse{
			UserID: p.UserID.String(),
			Amount: p.Amount,
		}
	}
	return ExpenseResponse{
		ID:           e.ID.String(),
		Description:  e.Description,
		Amount:       e.Amount,
		SplitMethod:  string(e.SplitMethod),
		Participants: participants,
		CreatedBy:    e.CreatedBy.String(),
		CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ExpenseListResponse wraps a paginated expense list.
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int64             `json:"total_pages"`
}

// BalanceEntryResponse is one counterparty line of the balances response.
// Net is minor units: positive means the counterparty owes the caller,
// negative means the caller owes the counterparty.
type BalanceEntryResponse struct {
	UserID string `json:"user_id"`
	Net    int64  `json:"net"`
}

// BalancesResponse is the response body for the balances endpoint.
type BalancesResponse struct {
	Balances []BalanceEntryResponse `json:"balances"`
}
