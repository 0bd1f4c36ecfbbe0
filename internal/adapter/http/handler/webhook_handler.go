package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"fundraiser-backend/internal/adapter/paystack"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Redeliveries of a reference inside this window are acknowledged
// without reprocessing.
const webhookDedupeTTL = 24 * time.Hour

// WebhookHandler ingests payment provider events. Each delivery is
// authenticated by an HMAC-SHA512 signature of the raw body, and the
// provider delivers at least once, so references are deduplicated.
type WebhookHandler struct {
	secretKey   string
	donationSvc ports.DonationService
	events      ports.WebhookEventStore // nil disables deduplication
	log         zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(secretKey string, donationSvc ports.DonationService, events ports.WebhookEventStore, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{secretKey: secretKey, donationSvc: donationSvc, events: events, log: log}
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"` // Minor currency units
		Metadata  struct {
			CampaignID   string  `json:"campaign_id"`
			DonorID      *string `json:"donor_id,omitempty"`
			Comment      *string `json:"comment,omitempty"`
			IsAnonymous  bool    `json:"is_anonymous"`
			ReferralCode *string `json:"referral_code,omitempty"`
		} `json:"metadata"`
	} `json:"data"`
}

// Handle handles POST /api/v1/webhooks/paystack. Unverifiable deliveries
// are rejected; verified but unhandled event types, redelivered
// references, and permanently unprocessable charges are acknowledged so
// the provider stops retrying them.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if !paystack.VerifyWebhookSignature(h.secretKey, body, signature) {
		h.log.Warn().Str("client_ip", c.ClientIP()).Msg("webhook signature verification failed")
		c.Status(http.StatusUnauthorized)
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if event.Event != "charge.success" {
		h.log.Debug().Str("event", event.Event).Msg("ignoring webhook event")
		c.Status(http.StatusOK)
		return
	}

	campaignID, err := uuid.Parse(event.Data.Metadata.CampaignID)
	if err != nil {
		h.log.Warn().Str("campaign_id", event.Data.Metadata.CampaignID).Msg("webhook charge without valid campaign id")
		c.Status(http.StatusOK)
		return
	}

	reference := event.Data.Reference
	if h.events != nil && reference != "" {
		first, err := h.events.MarkProcessed(c.Request.Context(), reference, webhookDedupeTTL)
		if err != nil {
			// Without the dedupe record a replay could double-count.
			h.log.Error().Err(err).Str("reference", reference).Msg("webhook dedupe check failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		if !first {
			h.log.Info().Str("reference", reference).Msg("webhook event already processed")
			c.Status(http.StatusOK)
			return
		}
	}

	var donorID *uuid.UUID
	if event.Data.Metadata.DonorID != nil {
		if id, err := uuid.Parse(*event.Data.Metadata.DonorID); err == nil {
			donorID = &id
		}
	}

	// Amounts arrive in minor units (kobo).
	amount := decimal.NewFromInt(event.Data.Amount).Div(decimal.NewFromInt(100))

	_, err = h.donationSvc.Donate(c.Request.Context(), ports.DonateRequest{
		CampaignID:   campaignID,
		DonorID:      donorID,
		Amount:       amount,
		Comment:      event.Data.Metadata.Comment,
		IsAnonymous:  event.Data.Metadata.IsAnonymous,
		ReferralCode: event.Data.Metadata.ReferralCode,
	})
	if err != nil {
		// A charge the core rejects outright (unknown campaign, closed
		// campaign, bad amount) will never succeed on redelivery; ack it.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus < http.StatusInternalServerError {
			h.log.Warn().Err(err).Str("campaign_id", campaignID.String()).Msg("webhook charge rejected, acknowledged")
			c.Status(http.StatusOK)
			return
		}

		h.log.Error().Err(err).Str("campaign_id", campaignID.String()).Msg("webhook donation failed")
		if h.events != nil && reference != "" {
			if err := h.events.Forget(c.Request.Context(), reference); err != nil {
				h.log.Error().Err(err).Str("reference", reference).Msg("failed to release webhook dedupe record")
			}
		}
		// Non-2xx makes the provider retry the delivery.
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
