package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"palantir/internal/domain"
	"palantir/internal/dto"
	"palantir/internal/egis"
	apperrors "palantir/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.SalesOrder, error)
	UpdateItemPricing(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) error
	UpdateTotals(ctx context.Context, tx *sql.Tx, order domain.SalesOrder) error
}

type ItemRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.Item, error)
}

type BestPriceClient interface {
	BestPrice(ctx context.Context, productNumber string) (*egis.PriceInfo, error)
}

// RefreshService re-prices the catalog-sourced lines of a sales order from
// fresh best-price lookups. Per-line failures are collected, never raised;
// only configuration, database and order-lookup problems abort the batch.
type RefreshService struct {
	db        TransactionManager
	orderRepo SalesOrderRepository
	itemRepo  ItemRepository
	catalog   BestPriceClient
	logger    *zap.Logger
}

func NewRefreshService(
	db TransactionManager,
	orderRepo SalesOrderRepository,
	itemRepo ItemRepository,
	catalog BestPriceClient,
	logger *zap.Logger,
) *RefreshService {
	return &RefreshService{
		db:        db,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		catalog:   catalog,
		logger:    logger,
	}
}

func (s *RefreshService) RefreshPrices(ctx context.Context, orderID uint) (*dto.RefreshSummary, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := s.collectCatalogLines(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info("price refresh started",
		zap.Uint("orderId", orderID),
		zap.Int("catalogLines", len(lines)),
		zap.Int("totalLines", len(order.Items)))

	if len(lines) == 0 {
		return &dto.RefreshSummary{
			Success:      false,
			UpdatedItems: []dto.UpdatedOrderItem{},
			FailedItems:  []dto.FailedOrderItem{},
			Message:      "no catalog items on this order",
		}, nil
	}

	updated := []dto.UpdatedOrderItem{}
	failed := []dto.FailedOrderItem{}
	var updatedLines []*domain.SalesOrderItem

	for _, line := range lines {
		rate, failure := s.lookupRate(ctx, line.ItemCode)
		if failure != nil {
			failed = append(failed, *failure)
			s.logger.Warn("line not refreshed",
				zap.Uint("orderId", orderID),
				zap.String("itemCode", line.ItemCode),
				zap.String("reason", string(failure.Reason)))
			continue
		}

		oldRate := line.Rate
		line.ApplyCatalogRate(rate)
		updatedLines = append(updatedLines, line)
		updated = append(updated, dto.UpdatedOrderItem{
			ItemCode: line.ItemCode,
			OldRate:  oldRate,
			NewRate:  rate,
		})
		s.logger.Info("line refreshed",
			zap.Uint("orderId", orderID),
			zap.String("itemCode", line.ItemCode),
			zap.String("newRate", rate.String()))
	}

	if len(updated) == 0 {
		return &dto.RefreshSummary{
			Success:      false,
			FailedCount:  len(failed),
			UpdatedItems: updated,
			FailedItems:  failed,
			Message:      "no prices could be updated",
		}, nil
	}

	order.RecalculateTotals()

	if err := s.persist(ctx, order, updatedLines); err != nil {
		return nil, err
	}

	s.logger.Info("price refresh committed",
		zap.Uint("orderId", orderID),
		zap.Int("updatedCount", len(updated)),
		zap.Int("failedCount", len(failed)))

	return &dto.RefreshSummary{
		Success:      true,
		UpdatedCount: len(updated),
		FailedCount:  len(failed),
		UpdatedItems: updated,
		FailedItems:  failed,
		Message:      fmt.Sprintf("updated %d of %d catalog items", len(updated), len(lines)),
	}, nil
}

// collectCatalogLines picks the lines to refresh. The line's own flag wins;
// lines created before the flag existed carry nil and defer to the item
// record. An item record that no longer exists makes the line ineligible.
func (s *RefreshService) collectCatalogLines(ctx context.Context, order *domain.SalesOrder) ([]*domain.SalesOrderItem, error) {
	var lines []*domain.SalesOrderItem

	for i := range order.Items {
		line := &order.Items[i]

		if line.FromCatalog != nil {
			if *line.FromCatalog {
				lines = append(lines, line)
			}
			continue
		}

		item, err := s.itemRepo.FindByCode(ctx, line.ItemCode)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				continue
			}
			return nil, err
		}
		if item.FromCatalog {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// lookupRate queries the catalog for one line and classifies the outcome.
// Any error from the client is downgraded to a per-line failure.
func (s *RefreshService) lookupRate(ctx context.Context, itemCode string) (decimal.Decimal, *dto.FailedOrderItem) {
	info, err := s.catalog.BestPrice(ctx, itemCode)
	if err != nil {
		return decimal.Zero, &dto.FailedOrderItem{
			ItemCode: itemCode,
			Reason:   dto.ReasonCatalogLookupFailed,
			Detail:   err.Error(),
		}
	}

	if info == nil {
		return decimal.Zero, &dto.FailedOrderItem{
			ItemCode: itemCode,
			Reason:   dto.ReasonItemNotFoundInCatalog,
		}
	}

	if info.PurchasePrice == "" {
		return decimal.Zero, &dto.FailedOrderItem{
			ItemCode: itemCode,
			Reason:   dto.ReasonPriceNotAvailable,
		}
	}

	rate, err := decimal.NewFromString(info.PurchasePrice)
	if err != nil {
		return decimal.Zero, &dto.FailedOrderItem{
			ItemCode: itemCode,
			Reason:   dto.ReasonPriceNotAvailable,
			Detail:   fmt.Sprintf("unparseable price %q", info.PurchasePrice),
		}
	}

	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, &dto.FailedOrderItem{
			ItemCode: itemCode,
			Reason:   dto.ReasonPriceNotAvailable,
			Detail:   fmt.Sprintf("price %s is not positive", info.PurchasePrice),
		}
	}

	return rate, nil
}

func (s *RefreshService) persist(ctx context.Context, order *domain.SalesOrder, lines []*domain.SalesOrderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	for _, line := range lines {
		if err := s.orderRepo.UpdateItemPricing(ctx, tx, *line); err != nil {
			s.logger.Error("failed to persist line pricing",
				zap.Uint("orderId", order.ID),
				zap.String("itemCode", line.ItemCode),
				zap.Error(err))
			return err
		}
	}

	if err := s.orderRepo.UpdateTotals(ctx, tx, *order); err != nil {
		s.logger.Error("failed to persist order totals", zap.Uint("orderId", order.ID), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", order.ID), zap.Error(err))
		return err
	}

	return nil
}
