package usecase

import (
	"context"

	"go.uber.org/zap"

	"palantir/internal/dto"
	apperrors "palantir/internal/errors"
)

const writeSalesOrdersRole = "sales_order:write"

type PermissionChecker interface {
	HasRole(ctx context.Context, role string) bool
}

type RefreshService interface {
	RefreshPrices(ctx context.Context, orderID uint) (*dto.RefreshSummary, error)
}

// RefreshPricesUseCase re-prices the catalog lines of one sales order from
// the distributor's current purchase prices.
type RefreshPricesUseCase struct {
	perms   PermissionChecker
	service RefreshService
	logger  *zap.Logger
}

func NewRefreshPricesUseCase(perms PermissionChecker, service RefreshService, logger *zap.Logger) *RefreshPricesUseCase {
	return &RefreshPricesUseCase{
		perms:   perms,
		service: service,
		logger:  logger,
	}
}

func (uc *RefreshPricesUseCase) Execute(ctx context.Context, orderID uint) (*dto.RefreshSummary, error) {
	if orderID == 0 {
		return nil, apperrors.NewValidationError("orderId must be positive")
	}

	if !uc.perms.HasRole(ctx, writeSalesOrdersRole) {
		return nil, apperrors.NewForbiddenError("missing sales_order:write permission")
	}

	uc.logger.Info("price refresh requested", zap.Uint("orderId", orderID))

	return uc.service.RefreshPrices(ctx, orderID)
}
