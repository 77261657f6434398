package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RefreshFailureReason string

const (
	ReasonItemNotFoundInCatalog RefreshFailureReason = "ITEM_NOT_FOUND_IN_CATALOG"
	ReasonPriceNotAvailable     RefreshFailureReason = "PRICE_NOT_AVAILABLE"
	ReasonCatalogLookupFailed   RefreshFailureReason = "CATALOG_LOOKUP_FAILED"
)

type UpdatedOrderItem struct {
	ItemCode string          `json:"itemCode"`
	OldRate  decimal.Decimal `json:"oldRate"`
	NewRate  decimal.Decimal `json:"newRate"`
}

type FailedOrderItem struct {
	ItemCode string               `json:"itemCode"`
	Reason   RefreshFailureReason `json:"reason"`
	Detail   string               `json:"detail,omitempty"`
}

// RefreshSummary reports a price-refresh batch. Success is true when at
// least one line was updated; per-line failures ride along either way.
type RefreshSummary struct {
	Success      bool               `json:"success"`
	UpdatedCount int                `json:"updatedCount"`
	FailedCount  int                `json:"failedCount"`
	UpdatedItems []UpdatedOrderItem `json:"updatedItems"`
	FailedItems  []FailedOrderItem  `json:"failedItems"`
	Message      string             `json:"message"`
}

type RefreshResponse struct {
	TraceID      string             `json:"traceId"`
	OrderID      uint               `json:"orderId"`
	Success      bool               `json:"success"`
	UpdatedCount int                `json:"updatedCount"`
	FailedCount  int                `json:"failedCount"`
	UpdatedItems []UpdatedOrderItem `json:"updatedItems"`
	FailedItems  []FailedOrderItem  `json:"failedItems"`
	Message      string             `json:"message"`
	Timestamp    time.Time          `json:"timestamp"`
}
