package dto

import "palantir/internal/egis"

// ImportItem is the flattened form of a catalog item as submitted by the
// search UI for import. ExistsLocally mirrors the flag computed during the
// search and decides the create-or-update branch.
type ImportItem struct {
	ExistsLocally                 bool   `json:"existsLocally"`
	ProprietaryProductNumber      string `json:"proprietaryProductNumber"`
	ProprietaryProductDescription string `json:"proprietaryProductDescription"`
	ManufacturerName              string `json:"manufacturerName"`
	ManufacturerID                string `json:"manufacturerId"`
	ManufacturerProductNumber     string `json:"manufacturerProductNumber"`
	GlobalProductNumber           string `json:"globalProductNumber"`
	ProductGroupID                string `json:"productGroupId"`
	ImageURL                      string `json:"imageUrl"`
	PurchasePrice                 string `json:"purchasePrice"`
	CurrencyCode                  string `json:"currencyCode"`
	RecommendedRetailPrice        string `json:"recommendedRetailPrice"`
}

type ImportRequest struct {
	Items []ImportItem `json:"items"`
}

// NewImportItem flattens a parsed catalog item into its import form.
func NewImportItem(item egis.CatalogItem) ImportItem {
	out := ImportItem{
		ExistsLocally: item.ExistsLocally,
		ImageURL:      item.ImageURL,
	}
	if pi := item.ProductIdentification; pi != nil {
		out.ProprietaryProductNumber = pi.ProprietaryProductNumber
		out.ProprietaryProductDescription = pi.ProprietaryProductDescription
		out.ManufacturerProductNumber = pi.ManufacturerProductNumber
		out.GlobalProductNumber = pi.GlobalProductNumber
		out.ProductGroupID = pi.ProductGroupID
		if pi.ManufacturerName != nil {
			out.ManufacturerName = pi.ManufacturerName.Name
			out.ManufacturerID = pi.ManufacturerName.ID
		}
	}
	if up := item.UnitPrice; up != nil {
		out.PurchasePrice = up.PurchasePrice
		out.CurrencyCode = up.CurrencyCode
		out.RecommendedRetailPrice = up.RecommendedRetailPrice
	}
	return out
}
