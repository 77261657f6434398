package usecase

import (
	"context"

	"palantir/internal/dto"
	apperrors "palantir/internal/errors"

	"go.uber.org/zap"
)

type ImportService interface {
	ImportItems(ctx context.Context, items []dto.ImportItem) error
}

type ImportItemsUseCase struct {
	service ImportService
	logger  *zap.Logger
}

func NewImportItemsUseCase(service ImportService, logger *zap.Logger) *ImportItemsUseCase {
	return &ImportItemsUseCase{
		service: service,
		logger:  logger,
	}
}

func (uc *ImportItemsUseCase) ImportItems(ctx context.Context, req dto.ImportRequest) error {
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("no items to import")
	}

	uc.logger.Info("item import started", zap.Int("itemCount", len(req.Items)))

	return uc.service.ImportItems(ctx, req.Items)
}
