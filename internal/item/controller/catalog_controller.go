package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"palantir/internal/dto"
	"palantir/internal/egis"
	apperrors "palantir/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SearchCatalogUseCase interface {
	Search(ctx context.Context, req dto.SearchRequest) (*egis.SearchResult, error)
}

type ImportItemsUseCase interface {
	ImportItems(ctx context.Context, req dto.ImportRequest) error
}

type ProductInfoUseCase interface {
	BestPrice(ctx context.Context, productNumber string) (*egis.PriceInfo, error)
	Specification(ctx context.Context, productNumber string) (string, error)
}

type CatalogController struct {
	searchUC SearchCatalogUseCase
	importUC ImportItemsUseCase
	infoUC   ProductInfoUseCase
	logger   *zap.Logger
}

func NewCatalogController(searchUC SearchCatalogUseCase, importUC ImportItemsUseCase, infoUC ProductInfoUseCase, logger *zap.Logger) *CatalogController {
	return &CatalogController{
		searchUC: searchUC,
		importUC: importUC,
		infoUC:   infoUC,
		logger:   logger,
	}
}

func (c *CatalogController) HandleSearch(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.searchUC.Search(r.Context(), req)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *CatalogController) HandleImport(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.importUC.ImportItems(r.Context(), req); err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *CatalogController) HandleBestPrice(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	productNumber := chi.URLParam(r, "productNumber")

	info, err := c.infoUC.BestPrice(r.Context(), productNumber)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	if info == nil {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "PRICE_NOT_AVAILABLE",
			"the catalog lists no price for product "+productNumber, "")
		return
	}

	c.writeJSON(w, http.StatusOK, info)
}

func (c *CatalogController) HandleSpecification(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	productNumber := chi.URLParam(r, "productNumber")

	spec, err := c.infoUC.Specification(r.Context(), productNumber)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	if spec == "" {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "SPECIFICATION_NOT_AVAILABLE",
			"the catalog carries no specification for product "+productNumber, "")
		return
	}

	c.writeJSON(w, http.StatusOK, dto.SpecificationResponse{
		ProductNumber: productNumber,
		Specification: spec,
	})
}

func (c *CatalogController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
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

	if te, ok := apperrors.IsTransportError(err); ok {
		if te.Timeout {
			c.writeErrorResponse(w, traceID, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", te.Message, "")
			return
		}
		c.writeErrorResponse(w, traceID, http.StatusBadGateway, "UPSTREAM_UNREACHABLE", te.Message, "")
		return
	}

	if he, ok := apperrors.IsHTTPStatusError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusBadGateway, "UPSTREAM_ERROR", he.Error(), "")
		return
	}

	if _, ok := apperrors.IsEmptyResponseError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusBadGateway, "UPSTREAM_EMPTY_RESPONSE", err.Error(), "")
		return
	}

	if _, ok := apperrors.IsXMLDecodeError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusBadGateway, "UPSTREAM_DECODE_ERROR", "catalog response could not be decoded", "")
		return
	}

	if ce, ok := apperrors.IsCatalogAPIError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusBadGateway, "CATALOG_ERROR", ce.Message, ce.Description)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", "")
}

func (c *CatalogController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code, message, detail string) {
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

func (c *CatalogController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *CatalogController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
