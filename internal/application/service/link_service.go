// Package service holds the application use cases for linking bank accounts
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/damon-houk/plaid-stripe-link/internal/domain/entity"
	"github.com/damon-houk/plaid-stripe-link/internal/domain/repository"
	domainservice "github.com/damon-houk/plaid-stripe-link/internal/domain/service"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/api"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/logger"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/middleware"
)

// ErrInvalidLinkRequest is returned when a link request is missing required input
var ErrInvalidLinkRequest = errors.New("invalid link request")

// LinkResult is the outcome of a successful processor token exchange
type LinkResult struct {
	ExchangeID       string
	BankAccountToken string
}

// LinkService turns Plaid Link public tokens into Stripe bank account tokens
// and keeps an audit trail of every attempt.
type LinkService struct {
	plaid   domainservice.PlaidAPI
	records repository.ExchangeRecordRepository
	logger  logger.Logger
	now     func() time.Time
}

// NewLinkService creates a new link service
func NewLinkService(plaid domainservice.PlaidAPI, records repository.ExchangeRecordRepository, log logger.Logger) *LinkService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &LinkService{
		plaid:   plaid,
		records: records,
		logger:  log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateStripeBankAccountToken exchanges publicToken and creates a Stripe bank
// account token for accountID. Plaid failures are returned wrapped; the
// underlying *api.Error stays reachable with errors.As.
func (s *LinkService) CreateStripeBankAccountToken(ctx context.Context, publicToken, accountID string) (*LinkResult, error) {
	requestID := middleware.GetRequestID(ctx)
	publicToken = strings.TrimSpace(publicToken)
	accountID = strings.TrimSpace(accountID)

	if publicToken == "" {
		return nil, errors.Wrap(ErrInvalidLinkRequest, "public_token is required")
	}
	if accountID == "" {
		return nil, errors.Wrap(ErrInvalidLinkRequest, "account_id is required")
	}

	log := s.logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"account_id": accountID,
	})
	log.Info("Creating Stripe bank account token", nil)

	record := &entity.ExchangeRecord{
		ID:          uuid.New().String(),
		RequestID:   requestID,
		Environment: s.plaid.Environment(),
		AccountID:   accountID,
		CreatedAt:   s.now(),
	}

	token, err := s.plaid.GetStripeBankAccount(ctx, publicToken, accountID)
	if err != nil {
		record.Status = entity.ExchangeFailed
		record.FailureKind, record.FailureCode = classifyFailure(err)
		s.storeRecord(ctx, log, record)

		log.Warn("Plaid exchange failed", map[string]interface{}{
			"failure_kind": record.FailureKind,
			"failure_code": record.FailureCode,
			"error":        err.Error(),
		})
		return nil, errors.Wrap(err, "failed to create Stripe bank account token")
	}

	record.Status = entity.ExchangeSucceeded
	s.storeRecord(ctx, log, record)

	log.Info("Stripe bank account token created", map[string]interface{}{
		"exchange_id": record.ID,
	})

	return &LinkResult{
		ExchangeID:       record.ID,
		BankAccountToken: token,
	}, nil
}

// Environment reports which Plaid deployment exchanges are made against
func (s *LinkService) Environment() entity.Environment {
	return s.plaid.Environment()
}

// GetExchange retrieves the audit record of a previous exchange
func (s *LinkService) GetExchange(ctx context.Context, id string) (*entity.ExchangeRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve exchange")
	}
	return record, nil
}

// storeRecord persists the audit record. A storage failure is logged and never
// replaces the Plaid outcome returned to the caller.
func (s *LinkService) storeRecord(ctx context.Context, log logger.Logger, record *entity.ExchangeRecord) {
	if _, err := s.records.Store(ctx, record); err != nil {
		log.Error("Failed to store exchange record", map[string]interface{}{
			"exchange_id": record.ID,
			"error":       err.Error(),
		})
	}
}

func classifyFailure(err error) (string, int) {
	var plaidErr *api.Error
	if errors.As(err, &plaidErr) {
		return string(plaidErr.Kind), plaidErr.Code()
	}
	return "unknown_error", 0
}
