package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// RemoteCart is the cart document as the cart gateway echoes it. The gateway
// is authoritative for replace operations, so the full document is decoded.
type RemoteCart struct {
	ID       int              `json:"id"`
	Products []RemoteCartItem `json:"products"`
	UserID   int              `json:"userId"`
}

type RemoteCartItem struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Thumbnail string  `json:"thumbnail"`
}

type cartAddRequest struct {
	UserID   int            `json:"userId"`
	Products []cartItemBody `json:"products"`
}

type cartReplaceRequest struct {
	Products []cartItemBody `json:"products"`
}

type cartItemBody struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// CartClient talks to the remote cart gateway.
type CartClient interface {
	GetCart(ctx context.Context, cartID int) (*RemoteCart, error)
	AddProduct(ctx context.Context, userID, productID, quantity int) (*RemoteCart, error)
	ReplaceCart(ctx context.Context, cartID int, lines []domain.CartLine) (*RemoteCart, error)
}

type cartHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewCartHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) CartClient {
	return &cartHTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *cartHTTPClient) GetCart(ctx context.Context, cartID int) (*RemoteCart, error) {
	endpoint := fmt.Sprintf("%s/carts/%d", c.baseURL, cartID)
	c.log.Debugf("CartClient: Requesting cart from URL: %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Errorf("CartClient: Failed to create GetCart request for ID %d: %v", cartID, err)
		return nil, fmt.Errorf("failed to create cart request: %w", err)
	}

	return c.do(req, endpoint, cartID)
}

func (c *cartHTTPClient) AddProduct(ctx context.Context, userID, productID, quantity int) (*RemoteCart, error) {
	endpoint := c.baseURL + "/carts/add"
	body := cartAddRequest{
		UserID:   userID,
		Products: []cartItemBody{{ID: productID, Quantity: quantity}},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		c.log.Errorf("CartClient: Failed to marshal add request for product %d: %v", productID, err)
		return nil, fmt.Errorf("failed to prepare cart add data: %w", err)
	}

	c.log.Debugf("CartClient: Adding product %d (quantity %d) for user %d", productID, quantity, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		c.log.Errorf("CartClient: Failed to create AddProduct request: %v", err)
		return nil, fmt.Errorf("failed to create cart add request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, endpoint, productID)
}

func (c *cartHTTPClient) ReplaceCart(ctx context.Context, cartID int, lines []domain.CartLine) (*RemoteCart, error) {
	endpoint := fmt.Sprintf("%s/carts/%d", c.baseURL, cartID)

	body := cartReplaceRequest{Products: make([]cartItemBody, 0, len(lines))}
	for _, line := range lines {
		body.Products = append(body.Products, cartItemBody{ID: line.ProductID, Quantity: line.Quantity})
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		c.log.Errorf("CartClient: Failed to marshal replace request for cart %d: %v", cartID, err)
		return nil, fmt.Errorf("failed to prepare cart update data: %w", err)
	}

	c.log.Debugf("CartClient: Replacing cart %d with %d lines", cartID, len(body.Products))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		c.log.Errorf("CartClient: Failed to create ReplaceCart request for ID %d: %v", cartID, err)
		return nil, fmt.Errorf("failed to create cart update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, endpoint, cartID)
}

func (c *cartHTTPClient) do(req *http.Request, endpoint string, entityID int) (*RemoteCart, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CartClient: Failed to execute request to %s: %v", endpoint, err)
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Warnf("CartClient: Entity %d not found (status %d, %s)", entityID, resp.StatusCode, endpoint)
		return nil, fmt.Errorf("cart entity %d: %w", entityID, domain.ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.log.Errorf("CartClient: Request to %s failed with status %d", endpoint, resp.StatusCode)
		return nil, &domain.GatewayError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	var cart RemoteCart
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		c.log.Errorf("CartClient: Failed to decode cart response from %s: %v", endpoint, err)
		return nil, &domain.NetworkError{Err: fmt.Errorf("failed to decode cart response: %w", err)}
	}

	return &cart, nil
}
