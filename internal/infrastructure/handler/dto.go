package handler

import "time"

// CreateBankAccountTokenRequest represents the request body for creating a Stripe bank account token
type CreateBankAccountTokenRequest struct {
	PublicToken string `json:"public_token"`
	AccountID   string `json:"account_id"`
}

// CreateBankAccountTokenResponse represents the response for the create token endpoint
type CreateBankAccountTokenResponse struct {
	ExchangeID             string `json:"exchange_id"`
	StripeBankAccountToken string `json:"stripe_bank_account_token"`
}

// ExchangeResponse represents an exchange audit record
type ExchangeResponse struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id,omitempty"`
	Environment string    `json:"environment"`
	AccountID   string    `json:"account_id"`
	Status      string    `json:"status"`
	FailureKind string    `json:"failure_kind,omitempty"`
	FailureCode int       `json:"failure_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HealthResponse reports service liveness and the Plaid environment in use
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
