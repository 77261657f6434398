package usecase

import (
	"context"
	"testing"

	"palantir/internal/dto"
	apperrors "palantir/internal/errors"

	"go.uber.org/zap"
)

type mockImportService struct {
	ImportItemsFunc func(ctx context.Context, items []dto.ImportItem) error
}

func (m *mockImportService) ImportItems(ctx context.Context, items []dto.ImportItem) error {
	return m.ImportItemsFunc(ctx, items)
}

func TestImportItems_EmptyRequest(t *testing.T) {
	ctx := context.Background()

	service := &mockImportService{}

	uc := NewImportItemsUseCase(service, zap.NewNop())

	err := uc.ImportItems(ctx, dto.ImportRequest{})

	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestImportItems_DelegatesToService(t *testing.T) {
	ctx := context.Background()

	var gotItems []dto.ImportItem
	service := &mockImportService{
		ImportItemsFunc: func(ctx context.Context, items []dto.ImportItem) error {
			gotItems = items
			return nil
		},
	}

	uc := NewImportItemsUseCase(service, zap.NewNop())

	req := dto.ImportRequest{Items: []dto.ImportItem{
		{ProprietaryProductNumber: "1194109"},
		{ProprietaryProductNumber: "2003517", ExistsLocally: true},
	}}

	if err := uc.ImportItems(ctx, req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(gotItems) != 2 {
		t.Fatalf("expected 2 items passed to service, got %d", len(gotItems))
	}

	if gotItems[1].ProprietaryProductNumber != "2003517" {
		t.Errorf("expected items forwarded in order, got %q", gotItems[1].ProprietaryProductNumber)
	}
}

func TestImportItems_ServiceErrorPropagates(t *testing.T) {
	ctx := context.Background()

	service := &mockImportService{
		ImportItemsFunc: func(ctx context.Context, items []dto.ImportItem) error {
			return apperrors.NewConfigurationError("selling price list is not configured")
		},
	}

	uc := NewImportItemsUseCase(service, zap.NewNop())

	err := uc.ImportItems(ctx, dto.ImportRequest{Items: []dto.ImportItem{{ProprietaryProductNumber: "1194109"}}})

	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	if _, ok := apperrors.IsConfigurationError(err); !ok {
		t.Errorf("expected ConfigurationError, got %T", err)
	}
}
