package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"palantir/internal/config"
	"palantir/internal/domain"
	"palantir/internal/dto"
	"palantir/internal/errors"
)

type ItemRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.Item, error)
	Insert(ctx context.Context, item domain.Item) error
	Update(ctx context.Context, item domain.Item) error
}

type BrandRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, brand domain.Brand) error
}

type ItemGroupRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, group domain.ItemGroup) error
}

type ItemPriceRepository interface {
	PriceListExists(ctx context.Context, name string) (bool, error)
	FindByItemAndList(ctx context.Context, itemCode, priceList string) (*domain.ItemPrice, error)
	Insert(ctx context.Context, price domain.ItemPrice) error
	UpdateRate(ctx context.Context, id uint, rate decimal.Decimal) error
}

// ImportService reconciles catalog items against the local store: items are
// created when absent and field-diffed when present, with price rows
// upserted per configured price list.
type ImportService struct {
	itemRepo  ItemRepository
	brandRepo BrandRepository
	groupRepo ItemGroupRepository
	priceRepo ItemPriceRepository
	cfg       config.EGISConfig
	logger    *zap.Logger
}

func NewImportService(
	itemRepo ItemRepository,
	brandRepo BrandRepository,
	groupRepo ItemGroupRepository,
	priceRepo ItemPriceRepository,
	cfg config.EGISConfig,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		itemRepo:  itemRepo,
		brandRepo: brandRepo,
		groupRepo: groupRepo,
		priceRepo: priceRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

// ImportItems runs the create-or-update reconciliation for a batch of
// catalog items. Preconditions are checked once before any write; a failing
// item aborts the batch since items are assumed valid once fetched.
func (s *ImportService) ImportItems(ctx context.Context, items []dto.ImportItem) error {
	if err := s.checkPreconditions(ctx); err != nil {
		return err
	}

	s.logger.Info("importing catalog items", zap.Int("count", len(items)))

	for _, item := range items {
		if item.ProprietaryProductNumber == "" {
			return errors.NewValidationError("catalog item without a proprietary product number")
		}

		var err error
		if item.ExistsLocally {
			err = s.updateItem(ctx, item)
		} else {
			err = s.createItem(ctx, item)
		}
		if err != nil {
			return fmt.Errorf("importing item %s: %w", item.ProprietaryProductNumber, err)
		}
	}

	return nil
}

func (s *ImportService) checkPreconditions(ctx context.Context) error {
	if s.cfg.SellingPriceList == "" {
		return errors.NewConfigurationError(
			"selling price list is not configured, set it before importing catalog items")
	}
	if s.cfg.ItemGroup == "" {
		return errors.NewConfigurationError(
			"catalog item group is not configured, set it before importing catalog items")
	}

	exists, err := s.priceRepo.PriceListExists(ctx, s.cfg.SellingPriceList)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewConfigurationError(fmt.Sprintf(
			"selling price list %q does not exist, create it before importing catalog items",
			s.cfg.SellingPriceList))
	}

	exists, err = s.groupRepo.Exists(ctx, s.cfg.ItemGroup)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewConfigurationError(fmt.Sprintf(
			"item group %q does not exist, create it before importing catalog items",
			s.cfg.ItemGroup))
	}

	return nil
}

func (s *ImportService) createItem(ctx context.Context, item dto.ImportItem) error {
	brand, err := s.resolveBrand(ctx, item)
	if err != nil {
		return err
	}
	group, err := s.resolveItemGroup(ctx, item)
	if err != nil {
		return err
	}

	// The standard rate follows the purchase price. Recommended retail
	// figures are unrealistically high and only ever land in the separate
	// retail price list row.
	record := domain.Item{
		Code:                      item.ProprietaryProductNumber,
		Name:                      item.ProprietaryProductDescription,
		Description:               item.ProprietaryProductDescription,
		ItemGroup:                 group,
		Brand:                     brand,
		ManufacturerProductNumber: item.ManufacturerProductNumber,
		GlobalProductNumber:       item.GlobalProductNumber,
		ImageURL:                  item.ImageURL,
		StandardRate:              parseRate(item.PurchasePrice),
		Currency:                  currencyOrDefault(item.CurrencyCode),
		FromCatalog:               true,
		CatalogProductNumber:      item.ProprietaryProductNumber,
	}

	if err := s.itemRepo.Insert(ctx, record); err != nil {
		return err
	}

	s.logger.Debug("created item from catalog",
		zap.String("itemCode", record.Code),
		zap.String("brand", brand),
		zap.String("itemGroup", group),
	)

	return s.reconcilePrices(ctx, item, true)
}

func (s *ImportService) updateItem(ctx context.Context, item dto.ImportItem) error {
	existing, err := s.itemRepo.FindByCode(ctx, item.ProprietaryProductNumber)
	if err != nil {
		return err
	}

	brand, err := s.resolveBrand(ctx, item)
	if err != nil {
		return err
	}
	group, err := s.resolveItemGroup(ctx, item)
	if err != nil {
		return err
	}

	changed := false
	if existing.Name != item.ProprietaryProductDescription {
		existing.Name = item.ProprietaryProductDescription
		changed = true
	}
	if existing.Description != item.ProprietaryProductDescription {
		existing.Description = item.ProprietaryProductDescription
		changed = true
	}
	if existing.ManufacturerProductNumber != item.ManufacturerProductNumber {
		existing.ManufacturerProductNumber = item.ManufacturerProductNumber
		changed = true
	}
	if existing.GlobalProductNumber != item.GlobalProductNumber {
		existing.GlobalProductNumber = item.GlobalProductNumber
		changed = true
	}
	if existing.Brand != brand {
		existing.Brand = brand
		changed = true
	}
	if existing.ItemGroup != group {
		existing.ItemGroup = group
		changed = true
	}
	if !existing.FromCatalog {
		existing.FromCatalog = true
		changed = true
	}
	if existing.CatalogProductNumber != item.ProprietaryProductNumber {
		existing.CatalogProductNumber = item.ProprietaryProductNumber
		changed = true
	}

	if changed {
		if err := s.itemRepo.Update(ctx, *existing); err != nil {
			return err
		}
		s.logger.Debug("updated item from catalog", zap.String("itemCode", existing.Code))
	}

	return s.reconcilePrices(ctx, item, false)
}

// resolveBrand returns the brand name after making sure the record exists,
// creating it with the catalog's manufacturer id when missing. Items
// without a manufacturer name carry no brand.
func (s *ImportService) resolveBrand(ctx context.Context, item dto.ImportItem) (string, error) {
	name := item.ManufacturerName
	if name == "" {
		return "", nil
	}

	exists, err := s.brandRepo.Exists(ctx, name)
	if err != nil {
		return "", err
	}
	if !exists {
		brand := domain.Brand{Name: name, ManufacturerID: item.ManufacturerID}
		if err := s.brandRepo.Insert(ctx, brand); err != nil {
			return "", err
		}
	}

	return name, nil
}

// resolveItemGroup returns the group for the item's catalog product group,
// creating it under the configured parent group when missing. Items without
// a product group land directly in the configured group.
func (s *ImportService) resolveItemGroup(ctx context.Context, item dto.ImportItem) (string, error) {
	name := item.ProductGroupID
	if name == "" {
		return s.cfg.ItemGroup, nil
	}

	exists, err := s.groupRepo.Exists(ctx, name)
	if err != nil {
		return "", err
	}
	if !exists {
		group := domain.ItemGroup{Name: name, ParentGroup: s.cfg.ItemGroup}
		if err := s.groupRepo.Insert(ctx, group); err != nil {
			return "", err
		}
	}

	return name, nil
}

// reconcilePrices upserts the selling price row from the purchase price and,
// when a retail list is configured and exists, the retail row from the
// recommended retail price. On the create path the selling row is written
// even for a missing purchase price so every imported item carries one.
func (s *ImportService) reconcilePrices(ctx context.Context, item dto.ImportItem, created bool) error {
	currency := currencyOrDefault(item.CurrencyCode)

	err := s.reconcilePriceRow(ctx, item.ProprietaryProductNumber, s.cfg.SellingPriceList,
		item.PurchasePrice, currency, created)
	if err != nil {
		return err
	}

	if s.cfg.RetailPriceList == "" || item.RecommendedRetailPrice == "" {
		return nil
	}
	exists, err := s.priceRepo.PriceListExists(ctx, s.cfg.RetailPriceList)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	return s.reconcilePriceRow(ctx, item.ProprietaryProductNumber, s.cfg.RetailPriceList,
		item.RecommendedRetailPrice, currency, false)
}

func (s *ImportService) reconcilePriceRow(ctx context.Context, itemCode, priceList, raw, currency string, alwaysInsert bool) error {
	rate := parseRate(raw)

	existing, err := s.priceRepo.FindByItemAndList(ctx, itemCode, priceList)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); !ok {
			return err
		}
		if !alwaysInsert && raw == "" {
			return nil
		}
		return s.priceRepo.Insert(ctx, domain.ItemPrice{
			ItemCode:  itemCode,
			PriceList: priceList,
			Rate:      rate,
			Currency:  currency,
		})
	}

	if !existing.Rate.Equal(rate) {
		return s.priceRepo.UpdateRate(ctx, existing.ID, rate)
	}

	return nil
}

func parseRate(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return rate
}

func currencyOrDefault(code string) string {
	if code == "" {
		return "EUR"
	}
	return code
}
