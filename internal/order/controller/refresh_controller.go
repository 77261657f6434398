package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"palantir/internal/dto"
	apperrors "palantir/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RefreshPricesUseCase interface {
	Execute(ctx context.Context, orderID uint) (*dto.RefreshSummary, error)
}

type RefreshController struct {
	refreshUC RefreshPricesUseCase
	logger    *zap.Logger
}

func NewRefreshController(refreshUC RefreshPricesUseCase, logger *zap.Logger) *RefreshController {
	return &RefreshController{
		refreshUC: refreshUC,
		logger:    logger,
	}
}

// HandleRefreshPrices re-prices one sales order from the catalog. A summary
// with no updated lines comes back as 422 so callers can tell a no-op apart
// from a refresh that moved prices.
func (c *RefreshController) HandleRefreshPrices(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	// Parse orderId from path
	orderIDStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil {
		logger.Warn("invalid orderId in path", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return
	}

	summary, err := c.refreshUC.Execute(r.Context(), uint(orderID))
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	status := http.StatusOK
	if !summary.Success {
		status = http.StatusUnprocessableEntity
	}

	c.writeJSON(w, status, dto.RefreshResponse{
		TraceID:      traceID,
		OrderID:      uint(orderID),
		Success:      summary.Success,
		UpdatedCount: summary.UpdatedCount,
		FailedCount:  summary.FailedCount,
		UpdatedItems: summary.UpdatedItems,
		FailedItems:  summary.FailedItems,
		Message:      summary.Message,
		Timestamp:    time.Now().UTC(),
	})
}

func (c *RefreshController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusForbidden, "FORBIDDEN", err.Error(), "")
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), "")
		return
	}

	if _, ok := apperrors.IsConfigurationError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusServiceUnavailable, "CONFIGURATION_ERROR", err.Error(), "")
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", "")
}

func (c *RefreshController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code, message, detail string) {
	c.writeJSON(w, statusCode, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *RefreshController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *RefreshController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
