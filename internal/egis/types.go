package egis

import "time"

// TransactionHeader identifies the caller in every EBC request document.
type TransactionHeader struct {
	ERP         string
	Login       string
	Password    string
	GeneratedAt time.Time
}

// SearchOptions narrows a catalog search. The zero value is valid: booleans
// default to false, price bounds stay empty and the filter lists collapse
// to the schema's expected filler tags.
type SearchOptions struct {
	OnlyActive        bool     `json:"onlyActive"`
	OnlyStocked       bool     `json:"onlyStocked"`
	OnlyInDescription bool     `json:"onlyInDescription"`
	MinPrice          string   `json:"minPrice"`
	MaxPrice          string   `json:"maxPrice"`
	DistributorName   []string `json:"distributorName"`
	ManufacturerName  []string `json:"manufacturerName"`
	ProductGroupID    []string `json:"productGroupId"`
	SortOrder         string   `json:"sortOrder"`
}

// ManufacturerName carries the element text plus the id attribute the
// catalog attaches to it.
type ManufacturerName struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type ProductIdentification struct {
	ProprietaryProductNumber      string            `json:"proprietaryProductNumber,omitempty"`
	ProprietaryProductDescription string            `json:"proprietaryProductDescription,omitempty"`
	ManufacturerName              *ManufacturerName `json:"manufacturerName,omitempty"`
	ManufacturerProductNumber     string            `json:"manufacturerProductNumber,omitempty"`
	GlobalProductNumber           string            `json:"globalProductNumber,omitempty"`
	ProductGroupID                string            `json:"productGroupId,omitempty"`
}

type UnitPrice struct {
	PurchasePrice          string `json:"purchasePrice"`
	CurrencyCode           string `json:"currencyCode,omitempty"`
	DateTime               string `json:"dateTime,omitempty"`
	RecommendedRetailPrice string `json:"recommendedRetailPrice"`
}

// CatalogItem is one product as returned by a search query. ExistsLocally
// is computed against the local item store after parsing, never decoded.
type CatalogItem struct {
	ProductIdentification *ProductIdentification `json:"productIdentification,omitempty"`
	UnitPrice             *UnitPrice             `json:"unitPrice,omitempty"`
	ImageURL              string                 `json:"imageUrl,omitempty"`
	ExistsLocally         bool                   `json:"existsLocally"`
}

// ProductNumber returns the item's proprietary product number, the primary
// external key, or "" when identification is missing.
func (i CatalogItem) ProductNumber() string {
	if i.ProductIdentification == nil {
		return ""
	}
	return i.ProductIdentification.ProprietaryProductNumber
}

type SearchHeader struct {
	TotalResults string `json:"totalResults,omitempty"`
	FirstResult  string `json:"firstResult,omitempty"`
	LastResult   string `json:"lastResult,omitempty"`
}

type SearchResult struct {
	Header SearchHeader  `json:"header"`
	Items  []CatalogItem `json:"items"`
}

// PriceInfo is the distilled payload of a best-price response.
type PriceInfo struct {
	PurchasePrice string `json:"purchasePrice"`
	Currency      string `json:"currency"`
	RetailPrice   string `json:"retailPrice"`
}
