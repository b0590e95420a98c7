// Package handler exposes the link service over HTTP
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/damon-houk/plaid-stripe-link/internal/application/service"
	"github.com/damon-houk/plaid-stripe-link/internal/domain/repository"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/api"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/logger"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/middleware"
)

const maxRequestBytes = 1 << 20

// LinkHandler handles HTTP requests for processor token exchanges
type LinkHandler struct {
	service *service.LinkService
	logger  logger.Logger
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(service *service.LinkService, log logger.Logger) *LinkHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &LinkHandler{
		service: service,
		logger:  log,
	}
}

// CreateBankAccountToken handles exchanging a public token for a Stripe bank account token
func (h *LinkHandler) CreateBankAccountToken(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreateBankAccountTokenRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"Body must be a JSON object with public_token and account_id", http.StatusBadRequest, requestID)
		return
	}

	result, err := h.service.CreateStripeBankAccountToken(r.Context(), req.PublicToken, req.AccountID)
	if err != nil {
		h.handleLinkError(w, err, requestID)
		return
	}

	sendJSON(w, http.StatusCreated, CreateBankAccountTokenResponse{
		ExchangeID:             result.ExchangeID,
		StripeBankAccountToken: result.BankAccountToken,
	})
}

func (h *LinkHandler) handleLinkError(w http.ResponseWriter, err error, requestID string) {
	var plaidErr *api.Error

	switch {
	case errors.Is(err, service.ErrInvalidLinkRequest):
		sendErrorResponse(w, h.logger, "Invalid link request", err.Error(), http.StatusBadRequest, requestID)
	case errors.As(err, &plaidErr) && plaidErr.Kind == api.APIError:
		description := fmt.Sprintf("Plaid rejected the request with status %d", plaidErr.Code())
		if plaidErr.Response != nil {
			if code, ok := plaidErr.Response.Body["error_code"].(string); ok {
				description += " (" + code + ")"
			}
		}
		sendErrorResponse(w, h.logger, "Plaid API error", description, http.StatusBadGateway, requestID)
	case errors.As(err, &plaidErr) && plaidErr.Kind == api.TransportError:
		h.logger.Error("Plaid unreachable", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Plaid temporarily unavailable",
			"The Plaid API could not be reached. Please try again later.", http.StatusServiceUnavailable, requestID)
	default:
		h.logger.Error("Unexpected error in link handler", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError, requestID)
	}
}

// GetExchange handles retrieving the audit record of an exchange
func (h *LinkHandler) GetExchange(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	record, err := h.service.GetExchange(r.Context(), id)
	if errors.Is(err, repository.ErrExchangeNotFound) {
		sendErrorResponse(w, h.logger, "Exchange not found",
			"The requested exchange could not be found", http.StatusNotFound, requestID)
		return
	}
	if err != nil {
		h.logger.Error("Failed to retrieve exchange", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError, requestID)
		return
	}

	sendJSON(w, http.StatusOK, ExchangeResponse{
		ID:          record.ID,
		RequestID:   record.RequestID,
		Environment: record.Environment.String(),
		AccountID:   record.AccountID,
		Status:      string(record.Status),
		FailureKind: record.FailureKind,
		FailureCode: record.FailureCode,
		CreatedAt:   record.CreatedAt,
	})
}

// Health reports liveness
func (h *LinkHandler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Environment: h.service.Environment().String(),
	})
}

// RegisterRoutes registers the link handler routes
func (h *LinkHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/processor/stripe/bank_account_token", h.CreateBankAccountToken).Methods(http.MethodPost)
	router.HandleFunc("/exchanges/{id}", h.GetExchange).Methods(http.MethodGet)
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	h.logger.Info("Link routes registered", map[string]interface{}{
		"routes": []string{
			"POST /processor/stripe/bank_account_token",
			"GET /exchanges/{id}",
			"GET /health",
		},
	})
}

func sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	sendJSON(w, statusCode, ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	})
}
