package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Environment
		host     string
	}{
		{"sandbox", "sandbox", Sandbox, "https://sandbox.plaid.com/"},
		{"development", "development", Development, "https://development.plaid.com/"},
		{"production", "production", Production, "https://production.plaid.com/"},
		{"empty defaults to sandbox", "", Sandbox, "https://sandbox.plaid.com/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, err := ParseEnvironment(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, env)
			assert.Equal(t, tc.host, env.Host())
		})
	}

	for _, bad := range []string{"gibberish", "Sandbox", " production", "live"} {
		_, err := ParseEnvironment(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, "", Environment("gibberish").Host())
	assert.Len(t, Environments(), 3)
}

func TestExchangeRecordValidate(t *testing.T) {
	valid := func() *ExchangeRecord {
		return &ExchangeRecord{
			ID:          "id",
			Environment: Sandbox,
			AccountID:   "acc-1",
			Status:      ExchangeSucceeded,
			CreatedAt:   time.Now(),
		}
	}

	assert.NoError(t, valid().Validate())

	r := valid()
	r.AccountID = ""
	assert.EqualError(t, r.Validate(), "account id is required")

	r = valid()
	r.Environment = "staging"
	assert.Error(t, r.Validate())

	r = valid()
	r.Status = "pending"
	assert.EqualError(t, r.Validate(), "status must be succeeded or failed")

	r = valid()
	r.FailureCode = 400
	assert.Error(t, r.Validate())

	r = valid()
	r.Status = ExchangeFailed
	assert.EqualError(t, r.Validate(), "failed exchange must carry a failure kind")

	r.FailureKind = "api_error"
	r.FailureCode = 400
	assert.NoError(t, r.Validate())
}
