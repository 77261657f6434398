package dto

type SpecificationResponse struct {
	ProductNumber string `json:"productNumber"`
	Specification string `json:"specification"`
}
