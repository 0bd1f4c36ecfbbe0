package handler

import (
	"fundraiser-backend/internal/adapter/http/dto"
	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/pkg/apperror"
	"fundraiser-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// BankHandler handles the bank directory and account linking endpoints.
type BankHandler struct {
	syncSvc    ports.BankSyncService
	linkingSvc ports.LinkingService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(syncSvc ports.BankSyncService, linkingSvc ports.LinkingService) *BankHandler {
	return &BankHandler{syncSvc: syncSvc, linkingSvc: linkingSvc}
}

// ListBanks handles GET /api/v1/banks.
func (h *BankHandler) ListBanks(c *gin.Context) {
	banks, err := h.syncSvc.ListBanks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.BankResponse, 0, len(banks))
	for _, b := range banks {
		out = append(out, toBankResponse(b))
	}
	response.OK(c, out)
}

// SyncBanks handles POST /api/v1/admin/banks/sync.
func (h *BankHandler) SyncBanks(c *gin.Context) {
	count, err := h.syncSvc.Sync(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SyncResponse{Synced: count})
}

// LinkAccount handles POST /api/v1/bank-accounts.
func (h *BankHandler) LinkAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.LinkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	account, err := h.linkingSvc.LinkAccount(c.Request.Context(), ports.LinkAccountRequest{
		UserID:        userID,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toLinkedAccountResponse(*account))
}

// ListAccounts handles GET /api/v1/bank-accounts.
func (h *BankHandler) ListAccounts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	accounts, err := h.linkingSvc.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.LinkedAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toLinkedAccountResponse(a))
	}
	response.OK(c, out)
}

func toBankResponse(b domain.Bank) dto.BankResponse {
	return dto.BankResponse{
		ID:       b.ID.String(),
		Name:     b.Name,
		Slug:     b.Slug,
		Code:     b.Code,
		Country:  b.Country,
		Currency: b.Currency,
		Logo:     b.Logo,
	}
}

func toLinkedAccountResponse(a domain.LinkedBankAccount) dto.LinkedAccountResponse {
	return dto.LinkedAccountResponse{
		ID:            a.ID.String(),
		BankID:        a.BankID.String(),
		AccountNumber: a.AccountNumber,
		AccountName:   a.AccountName,
		IsVerified:    a.IsVerified,
		CreatedAt:     a.CreatedAt,
	}
}
