package service

import (
	"context"

	"github.com/damon-houk/plaid-stripe-link/internal/domain/entity"
)

// PlaidAPI defines the interface for interacting with the Plaid API
type PlaidAPI interface {
	// GetStripeBankAccount exchanges a public token and creates a Stripe bank account token for the account
	GetStripeBankAccount(ctx context.Context, publicToken, accountID string) (string, error)

	// Environment reports which Plaid deployment the client targets
	Environment() entity.Environment
}
