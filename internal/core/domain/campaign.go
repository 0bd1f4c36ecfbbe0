package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign is a fundraising campaign owned by a user.
type Campaign struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Goal        decimal.Decimal `json:"goal"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsExpired reports whether the campaign's end date has passed.
func (c *Campaign) IsExpired(now time.Time) bool {
	return c.EndDate != nil && c.EndDate.Before(now)
}

// Donation is a contribution to a campaign. ReferralCode, when present,
// attributes the donation to an affiliate for commission.
type Donation struct {
	ID           uuid.UUID       `json:"id"`
	CampaignID   uuid.UUID       `json:"campaign_id"`
	DonorID      *uuid.UUID      `json:"donor_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Comment      *string         `json:"comment,omitempty"`
	IsAnonymous  bool            `json:"is_anonymous"`
	ReferralCode *string         `json:"referral_code,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds a URL slug of the form "title-words-<id suffix>".
func Slugify(title string, id uuid.UUID) string {
	s := strings.ToLower(title)
	s = slugNonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return fmt.Sprintf("%s-%s", s, id.String()[:8])
}
