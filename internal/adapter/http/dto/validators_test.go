package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := RegisterRequest{
		Email:     "  ada@example.com  ",
		Password:  "  correct-horse  ",
		FirstName: " Ada ",
		LastName:  " Obi ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "ada@example.com", req.Email)
	assert.Equal(t, "correct-horse", req.Password)
	assert.Equal(t, "Ada", req.FirstName)
	assert.Equal(t, "Obi", req.LastName)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := CreateCampaignRequest{
		Title:       "Clean Water",
		Description: "help us <script>alert('x')</script> please",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.Description, "&lt;script&gt;")
	assert.NotContains(t, req.Description, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	comment := "  for my sister  "
	req := DonateRequest{Comment: &comment}
	SanitizeStruct(&req)

	assert.Equal(t, "for my sister", *req.Comment)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	req := DonateRequest{Comment: nil}
	SanitizeStruct(&req)
	assert.Nil(t, req.Comment)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestAccountNumber_Valid(t *testing.T) {
	cases := []string{
		"0123456789",
		"9999999999",
		"0000000000",
	}
	for _, tc := range cases {
		assert.True(t, acctNumberRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestAccountNumber_Invalid(t *testing.T) {
	cases := []string{
		"",
		"012345678",    // 9 digits
		"01234567890",  // 11 digits
		"01234 6789",   // space
		"O123456789",   // letter O
		"0123-456789",  // punctuation
		"٠١٢٣٤٥٦٧٨٩",   // non-ASCII digits
	}
	for _, tc := range cases {
		assert.False(t, acctNumberRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestReferralCode_Valid(t *testing.T) {
	cases := []string{
		"A1B2C3D4",
		"DEADBEEF",
		"00000000",
		"FFFFFFFF",
	}
	for _, tc := range cases {
		assert.True(t, referralCodeRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestReferralCode_Invalid(t *testing.T) {
	cases := []string{
		"",
		"a1b2c3d4",  // lowercase
		"A1B2C3",    // too short
		"A1B2C3D4E", // too long
		"G1B2C3D4",  // G is not hex
		"A1B2 C3D4", // space
	}
	for _, tc := range cases {
		assert.False(t, referralCodeRe.MatchString(tc), "expected invalid: %s", tc)
	}
}
