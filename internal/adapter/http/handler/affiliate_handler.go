package handler

import (
	"fundraiser-backend/internal/adapter/http/dto"
	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/pkg/apperror"
	"fundraiser-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AffiliateHandler handles enrollment, wallet, and withdrawal endpoints.
type AffiliateHandler struct {
	enrollSvc ports.EnrollmentService
	ledgerSvc ports.LedgerService
}

// NewAffiliateHandler creates a new AffiliateHandler.
func NewAffiliateHandler(enrollSvc ports.EnrollmentService, ledgerSvc ports.LedgerService) *AffiliateHandler {
	return &AffiliateHandler{enrollSvc: enrollSvc, ledgerSvc: ledgerSvc}
}

// Enroll handles POST /api/v1/affiliates/enroll.
func (h *AffiliateHandler) Enroll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	result, err := h.enrollSvc.Enroll(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.EnrollResponse{
		AffiliateID:    result.Affiliate.ID.String(),
		ReferralCode:   result.Affiliate.ReferralCode,
		SubaccountCode: result.Affiliate.SubaccountCode,
		WalletID:       result.Wallet.ID.String(),
		Balance:        result.Wallet.Balance,
	})
}

// GetWallet handles GET /api/v1/affiliates/wallet.
func (h *AffiliateHandler) GetWallet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallet, err := h.ledgerSvc.GetWallet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WalletResponse{
		ID:        wallet.ID.String(),
		Balance:   wallet.Balance,
		UpdatedAt: wallet.UpdatedAt,
	})
}

// ListTransactions handles GET /api/v1/affiliates/wallet/transactions.
func (h *AffiliateHandler) ListTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	entries, err := h.ledgerSvc.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(entries))
	for _, t := range entries {
		out = append(out, dto.TransactionResponse{
			ID:          t.ID.String(),
			Amount:      t.Amount,
			Kind:        string(t.Kind),
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}
	response.OK(c, out)
}

// RequestWithdrawal handles POST /api/v1/affiliates/withdrawals.
func (h *AffiliateHandler) RequestWithdrawal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.WithdrawalRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	request, err := h.ledgerSvc.RequestWithdrawal(c.Request.Context(), userID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWithdrawalResponse(*request))
}

// ListWithdrawals handles GET /api/v1/affiliates/withdrawals.
func (h *AffiliateHandler) ListWithdrawals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	requests, err := h.ledgerSvc.ListWithdrawals(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWithdrawalResponses(requests))
}

// ListPendingWithdrawals handles GET /api/v1/admin/withdrawals.
func (h *AffiliateHandler) ListPendingWithdrawals(c *gin.Context) {
	requests, err := h.ledgerSvc.ListPendingWithdrawals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWithdrawalResponses(requests))
}

// ApproveWithdrawal handles POST /api/v1/admin/withdrawals/:id/approve.
func (h *AffiliateHandler) ApproveWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid withdrawal request id"))
		return
	}

	request, err := h.ledgerSvc.Approve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWithdrawalResponse(*request))
}

// RejectWithdrawal handles POST /api/v1/admin/withdrawals/:id/reject.
func (h *AffiliateHandler) RejectWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid withdrawal request id"))
		return
	}

	request, err := h.ledgerSvc.Reject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWithdrawalResponse(*request))
}

func toWithdrawalResponse(w domain.WithdrawalRequest) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:          w.ID.String(),
		Amount:      w.Amount,
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
		ProcessedAt: w.ProcessedAt,
	}
}

func toWithdrawalResponses(requests []domain.WithdrawalRequest) []dto.WithdrawalResponse {
	out := make([]dto.WithdrawalResponse, 0, len(requests))
	for _, w := range requests {
		out = append(out, toWithdrawalResponse(w))
	}
	return out
}
