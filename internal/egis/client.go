package egis

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"palantir/internal/config"
	apperrors "palantir/internal/errors"
)

// The API component segment differs between the German and the English
// deployment of the service; the query function names do not.
const (
	componentGerman  = "Artikelstamm"
	componentEnglish = "ProductMaster"
	germanHostMarker = "egis-online.de"

	functionSearch      = "searchQuery"
	functionBestPrice   = "bestpriceQuery"
	functionProductSpec = "productSpecificationQuery"

	contentTypeXML = "text/xml; charset=utf-8"

	defaultRequestTimeout = 30 * time.Second
)

// Client issues EBC query documents against the configured catalog API and
// decodes the responses. It is safe for concurrent use.
type Client struct {
	cfg        config.EGISConfig
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

func NewClient(cfg config.EGISConfig, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

// Search runs a catalog search. A zero-item result is not an error.
func (c *Client) Search(ctx context.Context, term string, opts *SearchOptions, startRow int) (*SearchResult, error) {
	header, err := c.header()
	if err != nil {
		return nil, err
	}
	payload, err := BuildSearchQuery(header, term, opts, startRow)
	if err != nil {
		return nil, err
	}
	body, err := c.post(ctx, functionSearch, payload)
	if err != nil {
		return nil, err
	}
	return ParseSearchResponse(body)
}

// BestPrice looks up the lowest distributor purchase price for one product.
// It returns (nil, nil) when the catalog answers without a price block.
func (c *Client) BestPrice(ctx context.Context, productNumber string) (*PriceInfo, error) {
	header, err := c.header()
	if err != nil {
		return nil, err
	}
	payload, err := BuildBestPriceQuery(header, productNumber)
	if err != nil {
		return nil, err
	}
	body, err := c.post(ctx, functionBestPrice, payload)
	if err != nil {
		return nil, err
	}
	return ParseBestPriceResponse(body)
}

// ProductSpecification fetches the assembled description text for one
// product, or "" when the catalog has nothing usable.
func (c *Client) ProductSpecification(ctx context.Context, productNumber string) (string, error) {
	header, err := c.header()
	if err != nil {
		return "", err
	}
	payload, err := BuildProductSpecificationQuery(header, productNumber)
	if err != nil {
		return "", err
	}
	body, err := c.post(ctx, functionProductSpec, payload)
	if err != nil {
		return "", err
	}
	return ParseProductSpecificationResponse(body)
}

func (c *Client) header() (TransactionHeader, error) {
	password, err := c.cfg.ResolvePassword()
	if err != nil {
		return TransactionHeader{}, apperrors.NewConfigurationError(
			"EGIS password could not be read, check the EGIS password file setting: " + err.Error())
	}
	return TransactionHeader{
		ERP:         c.cfg.ERP,
		Login:       c.cfg.Login,
		Password:    password,
		GeneratedAt: c.now(),
	}, nil
}

func (c *Client) endpoint(function string) (string, error) {
	base := strings.TrimRight(c.cfg.URL, "/")
	if base == "" {
		return "", apperrors.NewConfigurationError(
			"EGIS URL is not configured, set it before querying the catalog")
	}
	component := componentEnglish
	if strings.Contains(base, germanHostMarker) {
		component = componentGerman
	}
	return base + "/" + component + "/" + function, nil
}

func (c *Client) post(ctx context.Context, function string, payload []byte) ([]byte, error) {
	endpoint, err := c.endpoint(function)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewInternalError("building catalog request", err)
	}
	req.Header.Set("Content-Type", contentTypeXML)

	c.logger.Debug("querying catalog API",
		zap.String("endpoint", endpoint),
		zap.Int("payloadBytes", len(payload)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("catalog API request timed out", zap.String("endpoint", endpoint))
			return nil, apperrors.NewTransportError("catalog API request timed out, try again", true, err)
		}
		c.logger.Warn("catalog API request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, apperrors.NewTransportError("connecting to catalog API, check the EGIS URL", false, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError("reading catalog API response", false, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		c.logger.Warn("catalog API returned unexpected status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return nil, apperrors.NewHTTPStatusError(resp.StatusCode, string(body))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperrors.NewEmptyResponseError(
			"catalog API returned an empty response, check the EGIS URL and credentials")
	}
	return body, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
