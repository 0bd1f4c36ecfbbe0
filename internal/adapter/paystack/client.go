package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fundraiser-backend/internal/core/ports"

	"github.com/rs/zerolog"
)

// Client implements ports.PaymentProvider against the Paystack API.
// Credentials and base URL are injected, never read as ambient state.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a Paystack API client with a bounded timeout.
func NewClient(baseURL, secretKey string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// envelope is Paystack's standard response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// FetchBanks retrieves the full bank directory.
func (c *Client) FetchBanks(ctx context.Context) ([]ports.ProviderBank, error) {
	var banks []ports.ProviderBank
	if err := c.do(ctx, http.MethodGet, "/bank", nil, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

// ResolveAccount verifies an account number against a bank routing code
// and returns the registered holder name.
func (c *Client) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*ports.ResolvedAccount, error) {
	q := url.Values{}
	q.Set("account_number", accountNumber)
	q.Set("bank_code", bankCode)

	var resolved ports.ResolvedAccount
	if err := c.do(ctx, http.MethodGet, "/bank/resolve?"+q.Encode(), nil, &resolved); err != nil {
		return nil, err
	}
	return &resolved, nil
}

// CreateSubaccount provisions a payout subaccount that receives a split
// of transaction proceeds.
func (c *Client) CreateSubaccount(ctx context.Context, req ports.SubaccountRequest) (*ports.Subaccount, error) {
	body := map[string]any{
		"business_name":     req.BusinessName,
		"settlement_bank":   req.SettlementBank,
		"account_number":    req.AccountNumber,
		"percentage_charge": req.PercentageCharge,
	}

	var sub ports.Subaccount
	if err := c.do(ctx, http.MethodPost, "/subaccount", body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// do issues one authenticated request and decodes the envelope.
// A response with status=false becomes a ports.ProviderFailure carrying
// the provider's message; transport and parse failures are returned as-is.
func (c *Client) do(ctx context.Context, method, path string, body any, target any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("method", method).Str("path", path).Msg("paystack request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("paystack %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read paystack response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode paystack response (http %d): %w", resp.StatusCode, err)
	}

	if !env.Status {
		return &ports.ProviderFailure{Message: env.Message}
	}

	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("decode paystack data: %w", err)
		}
	}
	return nil
}
