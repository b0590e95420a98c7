package entity

import (
	"errors"
	"time"
)

// ExchangeStatus is the outcome of a processor token exchange
type ExchangeStatus string

const (
	ExchangeSucceeded ExchangeStatus = "succeeded"
	ExchangeFailed    ExchangeStatus = "failed"
)

// ExchangeRecord is the audit entry for one public token -> Stripe bank account
// token exchange. It never carries any of the tokens involved.
type ExchangeRecord struct {
	ID          string         `json:"id"`
	RequestID   string         `json:"request_id,omitempty"`
	Environment Environment    `json:"environment"`
	AccountID   string         `json:"account_id"`
	Status      ExchangeStatus `json:"status"`
	FailureKind string         `json:"failure_kind,omitempty"`
	FailureCode int            `json:"failure_code,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Validate ensures the record meets all requirements
func (r *ExchangeRecord) Validate() error {
	if r.AccountID == "" {
		return errors.New("account id is required")
	}

	if !r.Environment.Valid() {
		return errors.New("environment must be sandbox, development or production")
	}

	switch r.Status {
	case ExchangeSucceeded:
		if r.FailureKind != "" || r.FailureCode != 0 {
			return errors.New("succeeded exchange must not carry failure details")
		}
	case ExchangeFailed:
		if r.FailureKind == "" {
			return errors.New("failed exchange must carry a failure kind")
		}
	default:
		return errors.New("status must be succeeded or failed")
	}

	return nil
}
