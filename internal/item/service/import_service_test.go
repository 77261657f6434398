package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"palantir/internal/config"
	"palantir/internal/domain"
	"palantir/internal/dto"
	"palantir/internal/errors"
)

// Mock implementations

type mockItemRepository struct {
	FindByCodeFunc func(ctx context.Context, code string) (*domain.Item, error)
	InsertFunc     func(ctx context.Context, item domain.Item) error
	UpdateFunc     func(ctx context.Context, item domain.Item) error
}

func (m *mockItemRepository) FindByCode(ctx context.Context, code string) (*domain.Item, error) {
	return m.FindByCodeFunc(ctx, code)
}

func (m *mockItemRepository) Insert(ctx context.Context, item domain.Item) error {
	return m.InsertFunc(ctx, item)
}

func (m *mockItemRepository) Update(ctx context.Context, item domain.Item) error {
	return m.UpdateFunc(ctx, item)
}

type mockBrandRepository struct {
	ExistsFunc func(ctx context.Context, name string) (bool, error)
	InsertFunc func(ctx context.Context, brand domain.Brand) error
}

func (m *mockBrandRepository) Exists(ctx context.Context, name string) (bool, error) {
	return m.ExistsFunc(ctx, name)
}

func (m *mockBrandRepository) Insert(ctx context.Context, brand domain.Brand) error {
	return m.InsertFunc(ctx, brand)
}

type mockItemGroupRepository struct {
	ExistsFunc func(ctx context.Context, name string) (bool, error)
	InsertFunc func(ctx context.Context, group domain.ItemGroup) error
}

func (m *mockItemGroupRepository) Exists(ctx context.Context, name string) (bool, error) {
	return m.ExistsFunc(ctx, name)
}

func (m *mockItemGroupRepository) Insert(ctx context.Context, group domain.ItemGroup) error {
	return m.InsertFunc(ctx, group)
}

type mockItemPriceRepository struct {
	PriceListExistsFunc   func(ctx context.Context, name string) (bool, error)
	FindByItemAndListFunc func(ctx context.Context, itemCode, priceList string) (*domain.ItemPrice, error)
	InsertFunc            func(ctx context.Context, price domain.ItemPrice) error
	UpdateRateFunc        func(ctx context.Context, id uint, rate decimal.Decimal) error
}

func (m *mockItemPriceRepository) PriceListExists(ctx context.Context, name string) (bool, error) {
	return m.PriceListExistsFunc(ctx, name)
}

func (m *mockItemPriceRepository) FindByItemAndList(ctx context.Context, itemCode, priceList string) (*domain.ItemPrice, error) {
	return m.FindByItemAndListFunc(ctx, itemCode, priceList)
}

func (m *mockItemPriceRepository) Insert(ctx context.Context, price domain.ItemPrice) error {
	return m.InsertFunc(ctx, price)
}

func (m *mockItemPriceRepository) UpdateRate(ctx context.Context, id uint, rate decimal.Decimal) error {
	return m.UpdateRateFunc(ctx, id, rate)
}

// Test helpers

const existingItemCode = "1194109"

func testEGISConfig() config.EGISConfig {
	return config.EGISConfig{
		SellingPriceList: "Standard Selling",
		RetailPriceList:  "Standard Retail",
		ItemGroup:        "EGIS",
	}
}

func catalogImportItem() dto.ImportItem {
	return dto.ImportItem{
		ExistsLocally:                 false,
		ProprietaryProductNumber:      "1194109",
		ProprietaryProductDescription: "Cisco Catalyst 1300 24-port switch",
		ManufacturerName:              "Cisco",
		ManufacturerID:                "210",
		ManufacturerProductNumber:     "C1300-24T-4G",
		GlobalProductNumber:           "0195875297561",
		ProductGroupID:                "2205",
		ImageURL:                      "https://img.example.com/1194109.jpg",
		PurchasePrice:                 "231.58",
		CurrencyCode:                  "EUR",
		RecommendedRetailPrice:        "319.00",
	}
}

// knownLists answers existence checks for price lists and item groups.
func knownLists(names ...string) func(ctx context.Context, name string) (bool, error) {
	return func(ctx context.Context, name string) (bool, error) {
		for _, n := range names {
			if n == name {
				return true, nil
			}
		}
		return false, nil
	}
}

func notFoundPrices() *mockItemPriceRepository {
	return &mockItemPriceRepository{
		PriceListExistsFunc: knownLists("Standard Selling", "Standard Retail"),
		FindByItemAndListFunc: func(ctx context.Context, itemCode, priceList string) (*domain.ItemPrice, error) {
			return nil, errors.NewNotFoundError("no price row")
		},
		InsertFunc: func(ctx context.Context, price domain.ItemPrice) error {
			return nil
		},
		UpdateRateFunc: func(ctx context.Context, id uint, rate decimal.Decimal) error {
			return nil
		},
	}
}

func newTestImportService(
	itemRepo *mockItemRepository,
	brandRepo *mockBrandRepository,
	groupRepo *mockItemGroupRepository,
	priceRepo *mockItemPriceRepository,
	cfg config.EGISConfig,
) *ImportService {
	return NewImportService(itemRepo, brandRepo, groupRepo, priceRepo, cfg, zap.NewNop())
}

// Tests

func TestImportItems_SellingPriceListNotConfigured(t *testing.T) {
	cfg := testEGISConfig()
	cfg.SellingPriceList = ""

	svc := newTestImportService(&mockItemRepository{}, &mockBrandRepository{}, &mockItemGroupRepository{}, &mockItemPriceRepository{}, cfg)

	err := svc.ImportItems(context.Background(), []dto.ImportItem{catalogImportItem()})

	if _, ok := errors.IsConfigurationError(err); !ok {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestImportItems_SellingPriceListMissingInStore(t *testing.T) {
	priceRepo := &mockItemPriceRepository{
		PriceListExistsFunc: knownLists(),
	}
	groupRepo := &mockItemGroupRepository{
		ExistsFunc: knownLists("EGIS"),
	}

	svc := newTestImportService(&mockItemRepository{}, &mockBrandRepository{}, groupRepo, priceRepo, testEGISConfig())

	err := svc.ImportItems(context.Background(), []dto.ImportItem{catalogImportItem()})

	cfgErr, ok := errors.IsConfigurationError(err)
	if !ok {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if cfgErr.Message == "" {
		t.Errorf("expected descriptive message")
	}
}

func TestImportItems_ItemGroupMissingInStore(t *testing.T) {
	priceRepo := &mockItemPriceRepository{
		PriceListExistsFunc: knownLists("Standard Selling"),
	}
	groupRepo := &mockItemGroupRepository{
		ExistsFunc: knownLists(),
	}

	svc := newTestImportService(&mockItemRepository{}, &mockBrandRepository{}, groupRepo, priceRepo, testEGISConfig())

	err := svc.ImportItems(context.Background(), []dto.ImportItem{catalogImportItem()})

	if _, ok := errors.IsConfigurationError(err); !ok {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestImportItems_CreatesItemWithPrices(t *testing.T) {
	var insertedItem *domain.Item
	var insertedBrand *domain.Brand
	var insertedGroup *domain.ItemGroup
	var insertedPrices []domain.ItemPrice

	itemRepo := &mockItemRepository{
		InsertFunc: func(ctx context.Context, item domain.Item) error {
			insertedItem = &item
			return nil
		},
	}
	brandRepo := &mockBrandRepository{
		ExistsFunc: func(ctx context.Context, name string) (bool, error) { return false, nil },
		InsertFunc: func(ctx context.Context, brand domain.Brand) error {
			insertedBrand = &brand
			return nil
		},
	}
	groupRepo := &mockItemGroupRepository{
		ExistsFunc: knownLists("EGIS"),
		InsertFunc: func(ctx context.Context, group domain.ItemGroup) error {
			insertedGroup = &group
			return nil
		},
	}
	priceRepo := notFoundPrices()
	priceRepo.InsertFunc = func(ctx context.Context, price domain.ItemPrice) error {
		insertedPrices = append(insertedPrices, price)
		return nil
	}

	svc := newTestImportService(itemRepo, brandRepo, groupRepo, priceRepo, testEGISConfig())

	err := svc.ImportItems(context.Background(), []dto.ImportItem{catalogImportItem()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if insertedItem == nil {
		t.Fatal("expected item insert")
	}
	if insertedItem.Code != "1194109" {
		t.Errorf("expected item code 1194109, got %s", insertedItem.Code)
	}
	if insertedItem.Brand != "Cisco" {
		t.Errorf("expected brand Cisco, got %s", insertedItem.Brand)
	}
	if insertedItem.ItemGroup != "2205" {
		t.Errorf("expected item group 2205, got %s", insertedItem.ItemGroup)
	}
	if !insertedItem.FromCatalog {
		t.Error("expected fromCatalog flag set")
	}
	if insertedItem.CatalogProductNumber != "1194109" {
		t.Errorf("expected catalog product number kept, got %s", insertedItem.CatalogProductNumber)
	}
	if !insertedItem.StandardRate.Equal(decimal.RequireFromString("231.58")) {
		t.Errorf("expected standard rate from purchase price, got %s", insertedItem.StandardRate)
	}

	if insertedBrand == nil || insertedBrand.ManufacturerID != "210" {
		t.Errorf("expected brand created with manufacturer id, got %+v", insertedBrand)
	}
	if insertedGroup == nil || insertedGroup.ParentGroup != "EGIS" {
		t.Errorf("expected group created under configured parent, got %+v", insertedGroup)
	}

	if len(insertedPrices) != 2 {
		t.Fatalf("expected selling and retail price rows, got %d", len(insertedPrices))
	}
	if insertedPrices[0].PriceList != "Standard Selling" || !insertedPrices[0].Rate.Equal(decimal.RequireFromString("231.58")) {
		t.Errorf("unexpected selling row: %+v", insertedPrices[0])
	}
	if insertedPrices[1].PriceList != "Standard Retail" || !insertedPrices[1].Rate.Equal(decimal.RequireFromString("319.00")) {
		t.Errorf("unexpected retail row: %+v", insertedPrices[1])
	}
}

func TestImportItems_CreateWithoutPurchasePriceStillWritesSellingRow(t *testing.T) {
	var insertedPrices []domain.ItemPrice

	itemRepo := &mockItemRepository{
		InsertFunc: func(ctx context.Context, item domain.Item) error { return nil },
	}
	brandRepo := &mockBrandRepository{
		ExistsFunc: func(ctx context.Context, name string) (bool, error) { return true, nil },
	}
	groupRepo := &mockItemGroupRepository{
		ExistsFunc: knownLists("EGIS", "2205"),
	}
	priceRepo := notFoundPrices()
	priceRepo.InsertFunc = func(ctx context.Context, price domain.ItemPrice) error {
		insertedPrices = append(insertedPrices, price)
		return nil
	}

	item := catalogImportItem()
	item.PurchasePrice = ""
	item.RecommendedRetailPrice = ""

	svc := newTestImportService(itemRepo, brandRepo, groupRepo, priceRepo, testEGISConfig())

	if err := svc.ImportItems(context.Background(), []dto.ImportItem{item}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(insertedPrices) != 1 {
		t.Fatalf("expected only the selling row, got %d", len(insertedPrices))
	}
	if insertedPrices[0].PriceList != "Standard Selling" || !insertedPrices[0].Rate.IsZero() {
		t.Errorf("expected zero-rate selling row, got %+v", insertedPrices[0])
	}
}

func TestImportItems_UpdateWithoutChangesSkipsItemWrite(t *testing.T) {
	updateCalled := false

	existing := &domain.Item{
		Code:                      existingItemCode,
		Name:                      "Cisco Catalyst 1300 24-port switch",
		Description:               "Cisco Catalyst 1300 24-port switch",
		ItemGroup:                 "2205",
		Brand:                     "Cisco",
		ManufacturerProductNumber: "C1300-24T-4G",
		GlobalProductNumber:       "0195875297561",
		FromCatalog:               true,
		CatalogProductNumber:      existingItemCode,
	}

	itemRepo := &mockItemRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*domain.Item, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, item domain.Item) error {
			updateCalled = true
			return nil
		},
	}
	brandRepo := &mockBrandRepository{
		ExistsFunc: func(ctx context.Context, name string) (bool, error) { return true, nil },
	}
	groupRepo := &mockItemGroupRepository{
		ExistsFunc: knownLists("EGIS", "2205"),
	}
	priceRepo := notFoundPrices()
	priceRepo.FindByItemAndListFunc = func(ctx context.Context, itemCode, priceList string) (*domain.ItemPrice, error) {
		rate := "231.58"
		if priceList == "Standard Retail" {
			rate = "319.00"
		}
		return &domain.ItemPrice{ID: 7, ItemCode: itemCode, PriceList: priceList,
			Rate: decimal.RequireFromString(rate)}, nil
	}
	priceRepo.UpdateRateFunc = func(ctx context.Context, id uint, rate decimal.Decimal) error {
		t.Errorf("unexpected rate update to %s", rate)
		return nil
	}

	item := catalogImportItem()
	item.ExistsLocally = true

	svc := newTestImportService(itemRepo, brandRepo, groupRepo, priceRepo, testEGISConfig())

	if err := svc.ImportItems(context.Background(), []dto.ImportItem{item}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updateCalled {
		t.Error("expected no item write when nothing changed")
	}
}

func TestImportItems_UpdateWritesChangedFields(t *testing.T) {
	var updatedItem *domain.Item

	existing := &domain.Item{
		Code:                 existingItemCode,
		Name:                 "Old name",
		Description:          "Old description",
		ItemGroup:            "2205",
		Brand:                "Cisco",
		FromCatalog:          true,
		CatalogProductNumber: existingItemCode,
	}

	itemRepo := &mockItemRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*domain.Item, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, item domain.Item) error {
			updatedItem = &item
			return nil
		},
	}
	brandRepo := &mockBrandRepository{
		ExistsFunc: func(ctx context.Context, name string) (bool, error) { return true, nil },
	}
	groupRepo := &mockItemGroupRepository{
		ExistsFunc: knownLists("EGIS", "2205"),
	}

	item := catalogImportItem()
	item.ExistsLocally = true

	svc := newTestImportService(itemRepo, brandRepo, groupRepo, notFoundPrices(), testEGISConfig())

	if err := svc.ImportItems(context.Background(), []dto.ImportItem{item}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updatedItem == nil {
		t.Fatal("expected item update")
	}
	if updatedItem.Name != "Cisco Catalyst 1300 24-port switch" {
		t.Errorf("expected name updated, got %s", updatedItem.Name)
	}
	if updatedItem.ManufacturerProductNumber != "C1300-24T-4G" {
		t.Errorf("expected manufacturer number updated, got %s", updatedItem.ManufacturerProductNumber)
	}
}

func TestImportItems_UpdateReconcilesChangedPrice(t *testing.T) {
	var updatedRate decimal.Decimal
	var updatedID uint

	itemRepo := &mockItemRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*domain.Item, error) {
			return &domain.Item{Code: code, Name: "Cisco Catalyst 1300 24-port switch",
				Description: "Cisco Catalyst 1300 24-port switch", ItemGroup: "2205", Brand: "Cisco",
				ManufacturerProductNumber: "C1300-24T-4G", GlobalProductNumber: "0195875297561",
				FromCatalog: true, CatalogProductNumber: code}, nil
		},
	}
	brandRepo := &mockBrandRepository{
		ExistsFunc: func(ctx context.Context, name string) (bool, error) { return true, nil },
	}
	groupRepo := &mockItemGroupRepository{
		ExistsFunc: knownLists("EGIS", "2205"),
	}
	priceRepo := notFoundPrices()
	priceRepo.FindByItemAndListFunc = func(ctx context.Context, itemCode, priceList string) (*domain.ItemPrice, error) {
		if priceList == "Standard Selling" {
			return &domain.ItemPrice{ID: 42, Rate: decimal.RequireFromString("199.00")}, nil
		}
		return &domain.ItemPrice{ID: 43, Rate: decimal.RequireFromString("319.00")}, nil
	}
	priceRepo.UpdateRateFunc = func(ctx context.Context, id uint, rate decimal.Decimal) error {
		updatedID = id
		updatedRate = rate
		return nil
	}

	item := catalogImportItem()
	item.ExistsLocally = true

	svc := newTestImportService(itemRepo, brandRepo, groupRepo, priceRepo, testEGISConfig())

	if err := svc.ImportItems(context.Background(), []dto.ImportItem{item}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updatedID != 42 {
		t.Errorf("expected selling row 42 updated, got %d", updatedID)
	}
	if !updatedRate.Equal(decimal.RequireFromString("231.58")) {
		t.Errorf("expected rate 231.58, got %s", updatedRate)
	}
}

func TestImportItems_RetailRowSkippedWhenListMissing(t *testing.T) {
	var insertedPrices []domain.ItemPrice

	itemRepo := &mockItemRepository{
		InsertFunc: func(ctx context.Context, item domain.Item) error { return nil },
	}
	brandRepo := &mockBrandRepository{
		ExistsFunc: func(ctx context.Context, name string) (bool, error) { return true, nil },
	}
	groupRepo := &mockItemGroupRepository{
		ExistsFunc: knownLists("EGIS", "2205"),
	}
	priceRepo := notFoundPrices()
	priceRepo.PriceListExistsFunc = knownLists("Standard Selling")
	priceRepo.InsertFunc = func(ctx context.Context, price domain.ItemPrice) error {
		insertedPrices = append(insertedPrices, price)
		return nil
	}

	svc := newTestImportService(itemRepo, brandRepo, groupRepo, priceRepo, testEGISConfig())

	if err := svc.ImportItems(context.Background(), []dto.ImportItem{catalogImportItem()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(insertedPrices) != 1 || insertedPrices[0].PriceList != "Standard Selling" {
		t.Errorf("expected only the selling row, got %+v", insertedPrices)
	}
}

func TestImportItems_MissingProductNumber(t *testing.T) {
	priceRepo := notFoundPrices()
	groupRepo := &mockItemGroupRepository{ExistsFunc: knownLists("EGIS")}

	svc := newTestImportService(&mockItemRepository{}, &mockBrandRepository{}, groupRepo, priceRepo, testEGISConfig())

	err := svc.ImportItems(context.Background(), []dto.ImportItem{{}})

	if _, ok := errors.IsValidationError(err); !ok {
		t.Errorf("expected validation error, got %v", err)
	}
}
