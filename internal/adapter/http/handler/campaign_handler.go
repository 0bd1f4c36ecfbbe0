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

// CampaignHandler handles campaign and donation endpoints.
type CampaignHandler struct {
	campaignSvc ports.CampaignService
	donationSvc ports.DonationService
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaignSvc ports.CampaignService, donationSvc ports.DonationService) *CampaignHandler {
	return &CampaignHandler{campaignSvc: campaignSvc, donationSvc: donationSvc}
}

// Create handles POST /api/v1/campaigns.
func (h *CampaignHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	campaign, err := h.campaignSvc.Create(c.Request.Context(), ports.CreateCampaignRequest{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		EndDate:     req.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCampaignResponse(*campaign))
}

// Get handles GET /api/v1/campaigns/:slug.
func (h *CampaignHandler) Get(c *gin.Context) {
	detail, err := h.campaignSvc.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CampaignDetailResponse{
		CampaignResponse: toCampaignResponse(detail.Campaign),
		TotalRaised:      detail.TotalRaised,
		Progress:         detail.Progress,
	})
}

// List handles GET /api/v1/campaigns.
func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.campaignSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for _, cp := range campaigns {
		out = append(out, toCampaignResponse(cp))
	}
	response.OK(c, out)
}

// Donate handles POST /api/v1/campaigns/:id/donate. Authentication is
// optional; anonymous donors are accepted.
func (h *CampaignHandler) Donate(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign id"))
		return
	}

	var req dto.DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	var donorID *uuid.UUID
	if uid, ok := currentUserID(c); ok {
		donorID = &uid
	}

	donation, err := h.donationSvc.Donate(c.Request.Context(), ports.DonateRequest{
		CampaignID:   campaignID,
		DonorID:      donorID,
		Amount:       req.Amount,
		Comment:      req.Comment,
		IsAnonymous:  req.IsAnonymous,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.DonationResponse{
		ID:           donation.ID.String(),
		CampaignID:   donation.CampaignID.String(),
		Amount:       donation.Amount,
		IsAnonymous:  donation.IsAnonymous,
		ReferralCode: donation.ReferralCode,
		CreatedAt:    donation.CreatedAt,
	})
}

func toCampaignResponse(c domain.Campaign) dto.CampaignResponse {
	return dto.CampaignResponse{
		ID:          c.ID.String(),
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		Goal:        c.Goal,
		EndDate:     c.EndDate,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}
