package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// CatalogClient talks to the remote catalog gateway. Pagination is
// limit/skip based; search and category are separate endpoints.
type CatalogClient interface {
	ListProducts(ctx context.Context, limit, skip int) (*domain.ProductPage, error)
	SearchProducts(ctx context.Context, query string, limit, skip int) (*domain.ProductPage, error)
	ProductsByCategory(ctx context.Context, category string, limit, skip int) (*domain.ProductPage, error)
	GetProduct(ctx context.Context, productID int) (*domain.Product, error)
}

type catalogHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewCatalogHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) CatalogClient {
	return &catalogHTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *catalogHTTPClient) ListProducts(ctx context.Context, limit, skip int) (*domain.ProductPage, error) {
	endpoint := fmt.Sprintf("%s/products?limit=%d&skip=%d", c.baseURL, limit, skip)
	return c.fetchPage(ctx, endpoint)
}

func (c *catalogHTTPClient) SearchProducts(ctx context.Context, query string, limit, skip int) (*domain.ProductPage, error) {
	endpoint := fmt.Sprintf("%s/products/search?q=%s&limit=%d&skip=%d",
		c.baseURL, url.QueryEscape(query), limit, skip)
	return c.fetchPage(ctx, endpoint)
}

func (c *catalogHTTPClient) ProductsByCategory(ctx context.Context, category string, limit, skip int) (*domain.ProductPage, error) {
	endpoint := fmt.Sprintf("%s/products/category/%s?limit=%d&skip=%d",
		c.baseURL, url.PathEscape(category), limit, skip)
	return c.fetchPage(ctx, endpoint)
}

func (c *catalogHTTPClient) fetchPage(ctx context.Context, endpoint string) (*domain.ProductPage, error) {
	c.log.Debugf("CatalogClient: Requesting product page from URL: %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to create page request: %v", err)
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to execute page request: %v", err)
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("CatalogClient: Page request failed with status %d (%s)", resp.StatusCode, endpoint)
		return nil, &domain.GatewayError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	var page domain.ProductPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.log.Errorf("CatalogClient: Failed to decode page response: %v", err)
		return nil, &domain.NetworkError{Err: fmt.Errorf("failed to decode catalog response: %w", err)}
	}

	c.log.Debugf("CatalogClient: Received %d products (total=%d, skip=%d)",
		len(page.Products), page.Total, page.Skip)
	return &page, nil
}

func (c *catalogHTTPClient) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	endpoint := fmt.Sprintf("%s/products/%d", c.baseURL, productID)
	c.log.Debugf("CatalogClient: Requesting product info from URL: %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to create GetProduct request for ID %d: %v", productID, err)
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to execute GetProduct request for ID %d: %v", productID, err)
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Warnf("CatalogClient: Product with ID %d not found (status %d)", productID, resp.StatusCode)
		return nil, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("CatalogClient: GetProduct request for ID %d failed with status %d", productID, resp.StatusCode)
		return nil, &domain.GatewayError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		c.log.Errorf("CatalogClient: Failed to decode GetProduct response for ID %d: %v", productID, err)
		return nil, &domain.NetworkError{Err: fmt.Errorf("failed to decode catalog response: %w", err)}
	}

	if product.ID != productID {
		c.log.Warnf("CatalogClient: Mismatched product ID in response. Requested %d, got %d", productID, product.ID)
	}

	return &product, nil
}
