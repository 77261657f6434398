package usecase

import (
	"context"

	"palantir/internal/egis"
	apperrors "palantir/internal/errors"

	"go.uber.org/zap"
)

type ProductInfoClient interface {
	BestPrice(ctx context.Context, productNumber string) (*egis.PriceInfo, error)
	ProductSpecification(ctx context.Context, productNumber string) (string, error)
}

// ProductInfoUseCase serves the per-product lookups that do not touch the
// local store: current best price and the assembled specification text.
type ProductInfoUseCase struct {
	catalog ProductInfoClient
	logger  *zap.Logger
}

func NewProductInfoUseCase(catalog ProductInfoClient, logger *zap.Logger) *ProductInfoUseCase {
	return &ProductInfoUseCase{
		catalog: catalog,
		logger:  logger,
	}
}

// BestPrice returns the catalog's current best price for the product, or
// nil when the catalog lists no price block for it.
func (uc *ProductInfoUseCase) BestPrice(ctx context.Context, productNumber string) (*egis.PriceInfo, error) {
	if productNumber == "" {
		return nil, apperrors.NewValidationError("productNumber is required")
	}

	info, err := uc.catalog.BestPrice(ctx, productNumber)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("best price lookup", zap.String("productNumber", productNumber), zap.Bool("priceFound", info != nil))

	return info, nil
}

// Specification returns the assembled HTML specification for the product,
// or "" when the catalog carries no usable description.
func (uc *ProductInfoUseCase) Specification(ctx context.Context, productNumber string) (string, error) {
	if productNumber == "" {
		return "", apperrors.NewValidationError("productNumber is required")
	}

	return uc.catalog.ProductSpecification(ctx, productNumber)
}
