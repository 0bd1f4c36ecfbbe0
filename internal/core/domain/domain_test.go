package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewReferralCode_Format(t *testing.T) {
	re := regexp.MustCompile(`^[A-F0-9]{8}$`)
	for i := 0; i < 50; i++ {
		code := NewReferralCode()
		assert.True(t, re.MatchString(code), "unexpected code format: %s", code)
	}
}

func TestNewReferralCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[NewReferralCode()] = true
	}
	// Collisions are possible but 50 identical draws are not.
	assert.Greater(t, len(seen), 1)
}

func TestSlugify(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")

	cases := []struct {
		title string
		want  string
	}{
		{"Clean Water for Makoko", "clean-water-for-makoko-a1b2c3d4"},
		{"  Help!! Now  ", "help-now-a1b2c3d4"},
		{"École für Kids", "cole-f-r-kids-a1b2c3d4"},
		{"---", "-a1b2c3d4"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title, id), "title: %q", tc.title)
	}
}

func TestCampaign_IsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	open := Campaign{EndDate: nil}
	assert.False(t, open.IsExpired(now), "no end date never expires")

	running := Campaign{EndDate: &future}
	assert.False(t, running.IsExpired(now))

	ended := Campaign{EndDate: &past}
	assert.True(t, ended.IsExpired(now))
}

func TestWithdrawalRequest_States(t *testing.T) {
	pending := WithdrawalRequest{Status: WithdrawalStatusPending}
	assert.True(t, pending.CanProcess())
	assert.False(t, pending.IsProcessed())

	processing := WithdrawalRequest{Status: WithdrawalStatusProcessing}
	assert.True(t, processing.CanProcess())
	assert.False(t, processing.IsProcessed())

	approved := WithdrawalRequest{Status: WithdrawalStatusApproved}
	assert.False(t, approved.CanProcess())
	assert.True(t, approved.IsProcessed())

	rejected := WithdrawalRequest{Status: WithdrawalStatusRejected}
	assert.False(t, rejected.CanProcess())
	assert.True(t, rejected.IsProcessed())
}

func TestUser_FullName(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Obi"}
	assert.Equal(t, "Ada Obi", u.FullName())

	noLast := User{FirstName: "Ada"}
	assert.Equal(t, "Ada", noLast.FullName())
}
