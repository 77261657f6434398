package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesOrder struct {
	ID         uint
	Customer   string
	Status     string
	Currency   string
	Total      decimal.Decimal
	NetTotal   decimal.Decimal
	TotalTaxes decimal.Decimal
	GrandTotal decimal.Decimal
	Items      []SalesOrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	SalesOrderStatusDraft     = "DRAFT"
	SalesOrderStatusSubmitted = "SUBMITTED"
	SalesOrderStatusCancelled = "CANCELLED"
)

// SalesOrderItem is one order line. The five rate-bearing fields
// (PriceListRate, Rate, Amount, NetRate, NetAmount) and their base-currency
// mirrors are always written together. FromCatalog marks lines whose item
// was imported from the catalog; nil on lines created before the flag
// existed, in which case the item record decides.
type SalesOrderItem struct {
	ID                 uint
	OrderID            uint
	ItemCode           string
	Qty                decimal.Decimal
	PriceListRate      decimal.Decimal
	Rate               decimal.Decimal
	Amount             decimal.Decimal
	NetRate            decimal.Decimal
	NetAmount          decimal.Decimal
	BasePriceListRate  decimal.Decimal
	BaseRate           decimal.Decimal
	BaseAmount         decimal.Decimal
	BaseNetRate        decimal.Decimal
	BaseNetAmount      decimal.Decimal
	MarginType         string
	MarginRateOrAmount decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	ConversionFactor   decimal.Decimal
	FromCatalog        *bool
}

// ApplyCatalogRate overwrites the line's pricing with a freshly fetched
// catalog rate. Margins and discounts are zeroed first so the price-list
// rate and the effective rate coincide exactly; base-currency mirrors are
// written only when the line carries a conversion factor.
func (i *SalesOrderItem) ApplyCatalogRate(rate decimal.Decimal) {
	i.MarginType = ""
	i.MarginRateOrAmount = decimal.Zero
	i.DiscountPercentage = decimal.Zero
	i.DiscountAmount = decimal.Zero

	amount := rate.Mul(i.Qty)
	i.PriceListRate = rate
	i.Rate = rate
	i.Amount = amount
	i.NetRate = rate
	i.NetAmount = amount

	if !i.ConversionFactor.IsZero() {
		i.BasePriceListRate = rate.Mul(i.ConversionFactor)
		i.BaseRate = rate.Mul(i.ConversionFactor)
		i.BaseAmount = amount.Mul(i.ConversionFactor)
		i.BaseNetRate = rate.Mul(i.ConversionFactor)
		i.BaseNetAmount = amount.Mul(i.ConversionFactor)
	}
}

// RecalculateTotals rebuilds the order totals from its lines. TotalTaxes is
// kept as stored; GrandTotal follows it.
func (o *SalesOrder) RecalculateTotals() {
	total := decimal.Zero
	netTotal := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
		netTotal = netTotal.Add(item.NetAmount)
	}
	o.Total = total
	o.NetTotal = netTotal
	o.GrandTotal = o.NetTotal.Add(o.TotalTaxes)
}
