package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is the local product record. Code is the catalog's proprietary
// product number for items imported from EGIS; CatalogProductNumber keeps
// that number separately so renamed items can still be re-queried.
type Item struct {
	Code                      string
	Name                      string
	Description               string
	ItemGroup                 string
	Brand                     string
	ManufacturerProductNumber string
	GlobalProductNumber       string
	ImageURL                  string
	StandardRate              decimal.Decimal
	Currency                  string
	FromCatalog               bool
	CatalogProductNumber      string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

type Brand struct {
	Name           string
	ManufacturerID string
	CreatedAt      time.Time
}

type ItemGroup struct {
	Name        string
	ParentGroup string
	CreatedAt   time.Time
}

// ItemPrice is one rate row per (item, price list). The selling list row
// always carries the catalog purchase price; a retail list row, when
// configured, carries the recommended retail price.
type ItemPrice struct {
	ID        uint
	ItemCode  string
	PriceList string
	Rate      decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
