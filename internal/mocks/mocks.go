// Package mocks provides testify mocks for the domain ports
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/damon-houk/plaid-stripe-link/internal/domain/entity"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/logger"
)

// MockPlaidAPI mocks the PlaidAPI interface
type MockPlaidAPI struct {
	mock.Mock
}

func (m *MockPlaidAPI) GetStripeBankAccount(ctx context.Context, publicToken, accountID string) (string, error) {
	args := m.Called(ctx, publicToken, accountID)
	return args.String(0), args.Error(1)
}

func (m *MockPlaidAPI) Environment() entity.Environment {
	args := m.Called()
	return args.Get(0).(entity.Environment)
}

// MockExchangeRecordRepository mocks the ExchangeRecordRepository interface
type MockExchangeRecordRepository struct {
	mock.Mock
}

func (m *MockExchangeRecordRepository) Store(ctx context.Context, record *entity.ExchangeRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}

func (m *MockExchangeRecordRepository) FindByID(ctx context.Context, id string) (*entity.ExchangeRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRecord), args.Error(1)
}

// MockLogger mocks the logger interface. WithField and WithFields return the mock itself.
type MockLogger struct {
	mock.Mock
}

var _ logger.Logger = (*MockLogger)(nil)

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	return m
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return m
}
