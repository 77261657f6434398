package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"palantir/internal/dto"
	apperrors "palantir/internal/errors"
)

type mockPermissionChecker struct {
	HasRoleFunc func(ctx context.Context, role string) bool
}

func (m *mockPermissionChecker) HasRole(ctx context.Context, role string) bool {
	return m.HasRoleFunc(ctx, role)
}

type mockRefreshService struct {
	RefreshPricesFunc func(ctx context.Context, orderID uint) (*dto.RefreshSummary, error)
}

func (m *mockRefreshService) RefreshPrices(ctx context.Context, orderID uint) (*dto.RefreshSummary, error) {
	return m.RefreshPricesFunc(ctx, orderID)
}

func allowAll() *mockPermissionChecker {
	return &mockPermissionChecker{
		HasRoleFunc: func(ctx context.Context, role string) bool { return true },
	}
}

func TestRefreshPricesUseCase_RejectsZeroOrderID(t *testing.T) {
	uc := NewRefreshPricesUseCase(allowAll(), &mockRefreshService{}, zap.NewNop())

	_, err := uc.Execute(context.Background(), 0)

	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestRefreshPricesUseCase_RequiresWriteRole(t *testing.T) {
	var checkedRole string
	perms := &mockPermissionChecker{
		HasRoleFunc: func(ctx context.Context, role string) bool {
			checkedRole = role
			return false
		},
	}
	service := &mockRefreshService{
		RefreshPricesFunc: func(ctx context.Context, orderID uint) (*dto.RefreshSummary, error) {
			t.Errorf("service should not be reached without the role")
			return nil, nil
		},
	}

	uc := NewRefreshPricesUseCase(perms, service, zap.NewNop())

	_, err := uc.Execute(context.Background(), 42)

	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Errorf("expected ForbiddenError, got %T", err)
	}

	if checkedRole != "sales_order:write" {
		t.Errorf("expected sales_order:write check, got %q", checkedRole)
	}
}

func TestRefreshPricesUseCase_DelegatesToService(t *testing.T) {
	want := &dto.RefreshSummary{Success: true, UpdatedCount: 2, Message: "updated 2 of 2 catalog items"}

	var gotOrderID uint
	service := &mockRefreshService{
		RefreshPricesFunc: func(ctx context.Context, orderID uint) (*dto.RefreshSummary, error) {
			gotOrderID = orderID
			return want, nil
		},
	}

	uc := NewRefreshPricesUseCase(allowAll(), service, zap.NewNop())

	got, err := uc.Execute(context.Background(), 42)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotOrderID != 42 {
		t.Errorf("expected order 42, got %d", gotOrderID)
	}

	if got != want {
		t.Errorf("expected the service summary to pass through")
	}
}

func TestRefreshPricesUseCase_ServiceErrorPropagates(t *testing.T) {
	service := &mockRefreshService{
		RefreshPricesFunc: func(ctx context.Context, orderID uint) (*dto.RefreshSummary, error) {
			return nil, apperrors.NewNotFoundError("sales order 42 not found")
		},
	}

	uc := NewRefreshPricesUseCase(allowAll(), service, zap.NewNop())

	_, err := uc.Execute(context.Background(), 42)

	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}
