package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	transportErr := &Error{Kind: TransportError, Message: "failed to execute request", Err: cause}
	apiErr := &Error{Kind: APIError, Response: &Response{StatusCode: 400, RawBody: "{}"}, Message: "rejected"}

	assert.Equal(t, "failed to execute request: dial tcp: connection refused", transportErr.Error())
	assert.Equal(t, "rejected", apiErr.Error())
	assert.Equal(t, 500, transportErr.Code())
	assert.Equal(t, 400, apiErr.Code())
	assert.ErrorIs(t, transportErr, cause)

	wrapped := fmt.Errorf("linking account: %w", apiErr)
	assert.True(t, IsAPIError(wrapped))
	assert.False(t, IsTransportError(wrapped))
	assert.False(t, IsConfigurationError(wrapped))
	assert.False(t, IsAPIError(cause))
	assert.False(t, IsAPIError(nil))
}
