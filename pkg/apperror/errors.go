package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Generic (VAL / RES) ----

// Validation returns a caller's-fault input error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrForbidden(message string) *AppError {
	return New("RES_002", message, http.StatusForbidden)
}

// ---- Bank account linking (BNK) ----

func ErrBankNotFound(name string) *AppError {
	return New("BNK_001", fmt.Sprintf("bank %q not found", name), http.StatusNotFound)
}

// ErrVerificationFailed carries the provider's rejection message.
func ErrVerificationFailed(providerMsg string) *AppError {
	return New("BNK_002", fmt.Sprintf("account verification failed: %s", providerMsg), http.StatusBadRequest)
}

func ErrDuplicateAccount() *AppError {
	return New("BNK_003", "this bank account is already linked", http.StatusConflict)
}

func ErrAccountLimitExceeded() *AppError {
	return New("BNK_004", "at most 3 accounts may be linked per bank", http.StatusConflict)
}

// ---- Affiliate enrollment (AFF) ----

func ErrAlreadyEnrolled() *AppError {
	return New("AFF_001", "user is already an affiliate", http.StatusConflict)
}

func ErrMissingBankAccount() *AppError {
	return New("AFF_002", "a linked bank account is required before enrolling", http.StatusConflict)
}

// ErrProviderError surfaces a payment-provider failure with its message.
func ErrProviderError(providerMsg string) *AppError {
	return New("AFF_003", fmt.Sprintf("payment provider error: %s", providerMsg), http.StatusBadGateway)
}

func ErrReferralCodeConflict() *AppError {
	return New("AFF_004", "referral code collision, retry enrollment", http.StatusConflict)
}

// ---- Wallet & ledger (WAL / WDR) ----

func ErrNoWallet() *AppError {
	return New("WAL_001", "user has no affiliate wallet", http.StatusForbidden)
}

func ErrInsufficientBalance() *AppError {
	return New("WAL_002", "insufficient wallet balance", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_003", "amount must be greater than zero", http.StatusBadRequest)
}

func ErrInvalidTransition(from string) *AppError {
	return New("WDR_001", fmt.Sprintf("withdrawal request in state %q cannot be processed", from), http.StatusConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "invalid or expired token", http.StatusUnauthorized)
}

func ErrInvalidOTP() *AppError {
	return New("AUTH_003", "invalid or expired verification code", http.StatusBadRequest)
}

func ErrEmailExists() *AppError {
	return New("AUTH_004", "email already registered", http.StatusConflict)
}

func ErrEmailNotVerified() *AppError {
	return New("AUTH_005", "email address is not verified", http.StatusForbidden)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an unexpected error; the cause is logged, never leaked.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
