package egis

import (
	"encoding/xml"
	"strconv"
	"strings"

	apperrors "palantir/internal/errors"
)

// EBC schema namespaces. Request documents are qualified with the query
// namespace; the service answers in the matching *Response namespace,
// except that some deployments omit the namespace entirely on best-price
// payloads, which is why that decoder carries an unqualified fallback.
const (
	nsXSI = "http://www.w3.org/2001/XMLSchema-instance"

	nsSearchQuery    = "http://www.egis-online.de/EBC/schema/SearchQuery"
	nsSearchResponse = "http://www.egis-online.de/EBC/schema/SearchQueryResponse"

	nsBestPriceQuery    = "http://www.egis-online.de/EBC/schema/BestPriceQuery"
	nsBestPriceResponse = "http://www.egis-online.de/EBC/schema/BestPriceQueryResponse"

	nsProductSpecQuery    = "http://www.egis-online.de/EBC/schema/ProductSpecificationQuery"
	nsProductSpecResponse = "http://www.egis-online.de/EBC/schema/ProductSpecificationQueryResponse"
)

const (
	headerVersionID  = "1.00"
	headerTimeLayout = "2006-01-02 15:04:05"
	defaultCurrency  = "EUR"
)

type headerDoc struct {
	VersionID          string `xml:"VersionId"`
	GenerationDateTime string `xml:"GenerationDateTime"`
	ERP                string `xml:"ERP"`
	Login              string `xml:"Login"`
	Password           string `xml:"Password"`
}

func newHeaderDoc(h TransactionHeader) headerDoc {
	return headerDoc{
		VersionID:          headerVersionID,
		GenerationDateTime: h.GeneratedAt.Format(headerTimeLayout),
		ERP:                h.ERP,
		Login:              h.Login,
		Password:           h.Password,
	}
}

type searchOptionsDoc struct {
	OnlyActive        string `xml:"OnlyActive"`
	OnlyStocked       string `xml:"OnlyStocked"`
	OnlyInDescription string `xml:"OnlyInDescription"`
	MinPrice          string `xml:"MinPrice"`
	MaxPrice          string `xml:"MaxPrice"`
}

type paginationDoc struct {
	StartRow string `xml:"StartRow"`
}

type searchBodyDoc struct {
	SearchTerm       string           `xml:"SearchTerm,omitempty"`
	SearchOptions    searchOptionsDoc `xml:"SearchOptions"`
	DistributorName  []string         `xml:"DistributorName"`
	ManufacturerName []string         `xml:"ManufacturerName"`
	ProductGroupID   []string         `xml:"ProductGroupId"`
	SortOrder        string           `xml:"SortOrder,omitempty"`
	Pagination       paginationDoc    `xml:"Pagination"`
}

type searchQueryDoc struct {
	XMLName        xml.Name  `xml:"SearchQuery"`
	XMLNSXSI       string    `xml:"xmlns:xsi,attr"`
	XMLNS          string    `xml:"xmlns,attr"`
	SchemaLocation string    `xml:"xsi:schemaLocation,attr"`
	Header         headerDoc `xml:"TransactionHeader"`
	Search         struct {
		Query searchBodyDoc `xml:"Query"`
	} `xml:"Search"`
}

type bestPriceBodyDoc struct {
	ProprietaryProductNumber string `xml:"ProprietaryProductNumber"`
	IncludeZeroStockItems    string `xml:"IncludeZeroStockItems"`
}

type bestPriceQueryDoc struct {
	XMLName        xml.Name  `xml:"BestPriceQuery"`
	XMLNSXSI       string    `xml:"xmlns:xsi,attr"`
	XMLNS          string    `xml:"xmlns,attr"`
	SchemaLocation string    `xml:"xsi:schemaLocation,attr"`
	Header         headerDoc `xml:"TransactionHeader"`
	BestPrice      struct {
		Query bestPriceBodyDoc `xml:"Query"`
	} `xml:"BestPrice"`
}

type productSpecBodyDoc struct {
	ProprietaryProductNumber string `xml:"ProprietaryProductNumber"`
}

type productSpecQueryDoc struct {
	XMLName              xml.Name  `xml:"ProductSpecificationQuery"`
	XMLNSXSI             string    `xml:"xmlns:xsi,attr"`
	XMLNS                string    `xml:"xmlns,attr"`
	SchemaLocation       string    `xml:"xsi:schemaLocation,attr"`
	Header               headerDoc `xml:"TransactionHeader"`
	ProductSpecification struct {
		Query productSpecBodyDoc `xml:"Query"`
	} `xml:"ProductSpecification"`
}

func schemaLocation(ns, xsd string) string {
	return ns + " " + xsd
}

func boolTag(v bool) string {
	return strconv.FormatBool(v)
}

// fillerList pads an empty filter list so the document always carries the
// tags the schema validator expects. count is the number of empty tags.
func fillerList(values []string, count int) []string {
	if len(values) > 0 {
		return values
	}
	return make([]string, count)
}

func marshalDoc(doc any) ([]byte, error) {
	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, apperrors.NewInternalError("marshaling catalog request", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// BuildSearchQuery renders a SearchQuery document. A nil opts searches the
// whole catalog with default options; startRow below 1 is clamped to the
// first page.
func BuildSearchQuery(h TransactionHeader, searchTerm string, opts *SearchOptions, startRow int) ([]byte, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	if startRow < 1 {
		startRow = 1
	}

	doc := searchQueryDoc{
		XMLNSXSI:       nsXSI,
		XMLNS:          nsSearchQuery,
		SchemaLocation: schemaLocation(nsSearchQuery, "SearchQuery.xsd"),
		Header:         newHeaderDoc(h),
	}
	doc.Search.Query = searchBodyDoc{
		SearchTerm: searchTerm,
		SearchOptions: searchOptionsDoc{
			OnlyActive:        boolTag(opts.OnlyActive),
			OnlyStocked:       boolTag(opts.OnlyStocked),
			OnlyInDescription: boolTag(opts.OnlyInDescription),
			MinPrice:          opts.MinPrice,
			MaxPrice:          opts.MaxPrice,
		},
		DistributorName:  fillerList(opts.DistributorName, 2),
		ManufacturerName: fillerList(opts.ManufacturerName, 1),
		ProductGroupID:   fillerList(opts.ProductGroupID, 1),
		SortOrder:        opts.SortOrder,
		Pagination:       paginationDoc{StartRow: strconv.Itoa(startRow)},
	}
	return marshalDoc(doc)
}

// BuildBestPriceQuery renders a BestPriceQuery document for one product.
// Zero-stock items are always included so a price is returned even when no
// distributor has the product on hand.
func BuildBestPriceQuery(h TransactionHeader, productNumber string) ([]byte, error) {
	doc := bestPriceQueryDoc{
		XMLNSXSI:       nsXSI,
		XMLNS:          nsBestPriceQuery,
		SchemaLocation: schemaLocation(nsBestPriceQuery, "BestPriceQuery.xsd"),
		Header:         newHeaderDoc(h),
	}
	doc.BestPrice.Query = bestPriceBodyDoc{
		ProprietaryProductNumber: productNumber,
		IncludeZeroStockItems:    "true",
	}
	return marshalDoc(doc)
}

// BuildProductSpecificationQuery renders a ProductSpecificationQuery
// document for one product.
func BuildProductSpecificationQuery(h TransactionHeader, productNumber string) ([]byte, error) {
	doc := productSpecQueryDoc{
		XMLNSXSI:       nsXSI,
		XMLNS:          nsProductSpecQuery,
		SchemaLocation: schemaLocation(nsProductSpecQuery, "ProductSpecificationQuery.xsd"),
		Header:         newHeaderDoc(h),
	}
	doc.ProductSpecification.Query = productSpecBodyDoc{ProprietaryProductNumber: productNumber}
	return marshalDoc(doc)
}

// node is a generic element-tree view of a response document. Responses are
// walked rather than unmarshaled into fixed structs because lookup rules
// differ per document kind: search responses are matched strictly by
// namespace while best-price responses tolerate unqualified elements.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

func parseTree(body []byte) (*node, error) {
	var root node
	if err := xml.Unmarshal(body, &root); err != nil {
		return nil, apperrors.NewXMLDecodeError("parsing catalog response", string(body), err)
	}
	return &root, nil
}

// child returns the first child element named local. An empty space matches
// any namespace, which is what the tolerant lookups rely on.
func (n *node) child(space, local string) *node {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local != local {
			continue
		}
		if space == "" || c.XMLName.Space == space {
			return c
		}
	}
	return nil
}

func (n *node) find(space string, path ...string) *node {
	cur := n
	for _, name := range path {
		cur = cur.child(space, name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// findAll collects every descendant element with the given name, in
// document order.
func (n *node) findAll(space, local string) []*node {
	var out []*node
	var walk func(cur *node)
	walk = func(cur *node) {
		for i := range cur.Children {
			c := &cur.Children[i]
			if c.XMLName.Local == local && (space == "" || c.XMLName.Space == space) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func (n *node) text(space, local string) string {
	if c := n.child(space, local); c != nil {
		return strings.TrimSpace(c.Content)
	}
	return ""
}

func (n *node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// checkException returns a CatalogAPIError when the transaction header
// carries an Exception block, nil otherwise.
func checkException(root *node, space string) error {
	header := root.find(space, "TransactionHeader")
	if header == nil && space != "" {
		header = root.find("", "TransactionHeader")
	}
	if header == nil {
		return nil
	}
	exc := header.child(space, "Exception")
	if exc == nil {
		exc = header.child("", "Exception")
	}
	if exc == nil {
		return nil
	}
	matchSpace := exc.XMLName.Space
	return apperrors.NewCatalogAPIError(
		exc.text(matchSpace, "ErrorNumber"),
		exc.text(matchSpace, "ErrorMessage"),
		exc.text(matchSpace, "ErrorDescription"),
	)
}

// ParseSearchResponse decodes a SearchQueryResponse document into header
// totals and catalog items. A service-side exception comes back as a
// CatalogAPIError.
func ParseSearchResponse(body []byte) (*SearchResult, error) {
	root, err := parseTree(body)
	if err != nil {
		return nil, err
	}
	ns := nsSearchResponse
	if err := checkException(root, ns); err != nil {
		return nil, err
	}

	result := &SearchResult{Items: []CatalogItem{}}
	if header := root.find(ns, "Search", "Header"); header != nil {
		result.Header = SearchHeader{
			TotalResults: header.text(ns, "TotalResults"),
			FirstResult:  header.text(ns, "FirstResult"),
			LastResult:   header.text(ns, "LastResult"),
		}
	}
	for _, item := range root.findAll(ns, "Item") {
		result.Items = append(result.Items, decodeSearchItem(item, ns))
	}
	return result, nil
}

func decodeSearchItem(item *node, ns string) CatalogItem {
	out := CatalogItem{}
	if ident := item.child(ns, "ProductIdentification"); ident != nil {
		pi := &ProductIdentification{
			ProprietaryProductNumber:      ident.text(ns, "ProprietaryProductNumber"),
			ProprietaryProductDescription: ident.text(ns, "ProprietaryProductDescription"),
			ManufacturerProductNumber:     ident.text(ns, "ManufacturerProductNumber"),
			GlobalProductNumber:           ident.text(ns, "GlobalProductNumber"),
			ProductGroupID:                ident.text(ns, "ProductGroupId"),
		}
		if mfr := ident.child(ns, "ManufacturerName"); mfr != nil {
			pi.ManufacturerName = &ManufacturerName{
				ID:   mfr.attr("id"),
				Name: strings.TrimSpace(mfr.Content),
			}
		}
		out.ProductIdentification = pi
	}
	if price := item.child(ns, "UnitPrice"); price != nil {
		out.UnitPrice = &UnitPrice{
			PurchasePrice:          price.text(ns, "PurchasePrice"),
			CurrencyCode:           price.text(ns, "CurrencyCode"),
			DateTime:               price.text(ns, "DateTime"),
			RecommendedRetailPrice: price.text(ns, "RecommendedRetailPrice"),
		}
	}
	if img := item.child(ns, "ImageUrl"); img != nil {
		out.ImageURL = strings.TrimSpace(img.Content)
	}
	return out
}

// ParseBestPriceResponse extracts the unit price block from a
// BestPriceQueryResponse. The namespaced path is tried first, then an
// unqualified one. A missing price block yields (nil, nil) so callers can
// distinguish "no price" from a decode failure.
func ParseBestPriceResponse(body []byte) (*PriceInfo, error) {
	root, err := parseTree(body)
	if err != nil {
		return nil, err
	}
	ns := nsBestPriceResponse
	if err := checkException(root, ns); err != nil {
		return nil, err
	}

	price := root.find(ns, "BestPrice", "Item", "DistributorProductItem", "UnitPrice")
	if price == nil {
		price = root.find("", "BestPrice", "Item", "DistributorProductItem", "UnitPrice")
	}
	if price == nil {
		return nil, nil
	}

	info := &PriceInfo{
		PurchasePrice: price.text("", "PurchasePrice"),
		Currency:      price.text("", "CurrencyCode"),
		RetailPrice:   price.text("", "RecommendedRetailPrice"),
	}
	if info.Currency == "" {
		info.Currency = defaultCurrency
	}
	return info, nil
}

// Substrings that mark a feature as presentation noise rather than product
// data. Matched case-insensitively against both name and value.
var skippedFeatureMarkers = []string{"image", "picture", "logo", "url", "link", "datasheet"}

func skipFeature(name, value string) bool {
	name = strings.ToLower(name)
	value = strings.ToLower(value)
	for _, marker := range skippedFeatureMarkers {
		if strings.Contains(name, marker) || strings.Contains(value, marker) {
			return true
		}
	}
	return false
}

// breakSentences rewrites sentence boundaries as HTML line breaks so the
// text renders as a list-like description in the item form.
func breakSentences(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ". ", "<br>")
}

// ParseProductSpecificationResponse assembles a product description from a
// ProductSpecificationQueryResponse: the long summary, the marketing text
// when it differs, and the feature table. When none of those are present it
// falls back to the short summary, then the short description, then "".
func ParseProductSpecificationResponse(body []byte) (string, error) {
	root, err := parseTree(body)
	if err != nil {
		return "", err
	}
	ns := nsProductSpecResponse
	if err := checkException(root, ns); err != nil {
		return "", err
	}

	spec := root.find(ns, "ProductSpecification", "Item", "ProductDataSheet")
	if spec == nil {
		spec = root.find("", "ProductSpecification", "Item", "ProductDataSheet")
	}
	if spec == nil {
		return "", nil
	}
	matchSpace := spec.XMLName.Space

	longSummary := spec.text(matchSpace, "LongSummaryDescription")
	marketing := spec.text(matchSpace, "MarketingText")

	var parts []string
	if longSummary != "" {
		parts = append(parts, breakSentences(longSummary))
	}
	if marketing != "" && marketing != longSummary {
		parts = append(parts, breakSentences(marketing))
	}
	if features := collectFeatures(spec, matchSpace); features != "" {
		parts = append(parts, features)
	}
	if len(parts) > 0 {
		return strings.Join(parts, "<br>"), nil
	}

	if short := spec.text(matchSpace, "ShortSummaryDescription"); short != "" {
		return short, nil
	}
	return spec.text(matchSpace, "ShortDescription"), nil
}

func collectFeatures(spec *node, space string) string {
	var lines []string
	for i := range spec.Children {
		c := &spec.Children[i]
		if c.XMLName.Local != "Feature" {
			continue
		}
		name := c.text(space, "Name")
		value := c.text(space, "Value")
		if name == "" || value == "" || skipFeature(name, value) {
			continue
		}
		lines = append(lines, name+": "+value)
	}
	return strings.Join(lines, "<br>")
}
