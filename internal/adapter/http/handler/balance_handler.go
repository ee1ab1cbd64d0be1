package handler

import (
	"net/http"

	"splitledger/internal/adapter/http/dto"
	"splitledger/internal/core/ports"
	"splitledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// BalanceHandler handles balance and balance sheet endpoints.
type BalanceHandler struct {
	reportingSvc ports.ReportingService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(reportingSvc ports.ReportingService) *BalanceHandler {
	return &BalanceHandler{reportingSvc: reportingSvc}
}

// GetBalances handles GET /api/v1/balances. Returns the authenticated
// user's net position against every counterparty, zero entries included.
func (h *BalanceHandler) GetBalances(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	ledger, err := h.reportingSvc.GetBalances(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	entries := ledger.Entries()
	balances := make([]dto.BalanceEntryResponse, len(entries))
	for i, e := range entries {
		balances[i] = dto.BalanceEntryResponse{
			UserID: e.UserID.String(),
			Net:    e.Net,
		}
	}

	response.OK(c, dto.BalancesResponse{Balances: balances})
}

// DownloadSheet handles GET /api/v1/balances/sheet. Streams the rendered
// balance sheet as a PDF attachment.
func (h *BalanceHandler) DownloadSheet(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	sheet, err := h.reportingSvc.BalanceSheet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="balance-sheet.pdf"`)
	c.Data(http.StatusOK, "application/pdf", sheet)
}
