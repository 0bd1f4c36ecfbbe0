package ports

import "context"

// ProviderBank is one entry of the provider's bank directory.
type ProviderBank struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Code     string `json:"code"`
	LongCode string `json:"longcode"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
	Logo     string `json:"logo"`
}

// ResolvedAccount is the provider's answer to an account lookup.
type ResolvedAccount struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// SubaccountRequest provisions a payout subaccount for an affiliate.
type SubaccountRequest struct {
	BusinessName     string
	SettlementBank   string // Bank routing code
	AccountNumber    string
	PercentageCharge float64
}

// Subaccount is the provisioned payout subaccount reference.
type Subaccount struct {
	SubaccountCode string `json:"subaccount_code"`
}

// ProviderFailure is returned when the payment provider reports
// non-success for a request it understood. The message is preserved for
// diagnostics and surfaced to the caller.
type ProviderFailure struct {
	Message string
}

func (e *ProviderFailure) Error() string {
	return "provider rejected request: " + e.Message
}

// PaymentProvider is the external payment API consumed by this core.
// All calls are synchronous JSON-over-HTTPS with a bounded timeout; they
// are never retried automatically.
type PaymentProvider interface {
	FetchBanks(ctx context.Context) ([]ProviderBank, error)
	ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*ResolvedAccount, error)
	CreateSubaccount(ctx context.Context, req SubaccountRequest) (*Subaccount, error)
}
