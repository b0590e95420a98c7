package repository

import (
	"context"
	"errors"

	"github.com/damon-houk/plaid-stripe-link/internal/domain/entity"
)

// ErrExchangeNotFound is returned when no record exists for the requested ID
var ErrExchangeNotFound = errors.New("exchange record not found")

// ExchangeRecordRepository defines the interface for exchange audit storage
type ExchangeRecordRepository interface {
	// Store saves a record and returns its ID
	Store(ctx context.Context, record *entity.ExchangeRecord) (string, error)

	// FindByID retrieves a record by its unique identifier
	FindByID(ctx context.Context, id string) (*entity.ExchangeRecord, error)
}
