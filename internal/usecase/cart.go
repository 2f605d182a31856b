package usecase

import (
	"context"
	"fmt"
	"sync"

	"storefront_service/internal/clients"
	"storefront_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// CartView is the cart snapshot handed to the delivery layer: the lines, the
// derived total, and the last recorded gateway error, if any.
type CartView struct {
	domain.Cart
	LastError string `json:"last_error,omitempty"`
}

// CartUseCase owns the local cart lines, synchronized with the remote cart
// gateway. Mutations are optimistic-then-reconciled with a deliberate
// asymmetry: add merges locally first and fires the gateway call after, while
// remove and quantity updates send the full intended line collection and
// replace local state with exactly what the gateway echoes back.
type CartUseCase interface {
	Load(ctx context.Context) error
	Cart() CartView
	Add(ctx context.Context, productID int) (CartView, error)
	Remove(ctx context.Context, productID int) (CartView, error)
	UpdateQuantity(ctx context.Context, productID, quantity int) (CartView, error)
}

type cartUseCase struct {
	mu      sync.Mutex
	cartID  int
	userID  int
	lines   []domain.CartLine
	lastErr error

	cartClient    clients.CartClient
	catalogClient clients.CatalogClient
	log           *logrus.Logger
}

func NewCartUseCase(
	cartClient clients.CartClient,
	catalogClient clients.CatalogClient,
	cartID, userID int,
	logger *logrus.Logger,
) CartUseCase {
	return &cartUseCase{
		cartID:        cartID,
		userID:        userID,
		cartClient:    cartClient,
		catalogClient: catalogClient,
		log:           logger,
	}
}

// Load seeds the local cart from the gateway. A failure leaves the cart empty
// and is recoverable by retrying any cart operation.
func (uc *cartUseCase) Load(ctx context.Context) error {
	remote, err := uc.cartClient.GetCart(ctx, uc.cartID)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to fetch initial cart %d: %v", uc.cartID, err)
		uc.mu.Lock()
		uc.lastErr = err
		uc.mu.Unlock()
		return fmt.Errorf("failed to fetch cart %d: %w", uc.cartID, err)
	}

	uc.mu.Lock()
	uc.applyEcho(remote)
	uc.lastErr = nil
	uc.mu.Unlock()

	uc.log.Infof("Use Case: Cart %d loaded with %d lines", uc.cartID, len(remote.Products))
	return nil
}

func (uc *cartUseCase) Cart() CartView {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.view()
}

// Add is the optimistic-local operation: the line is merged (or inserted)
// immediately, then the gateway call is issued. A gateway failure is recorded
// on the view rather than rolling the merge back. Add is gated on a fresh
// availability check; failure to confirm availability rejects the add.
func (uc *cartUseCase) Add(ctx context.Context, productID int) (CartView, error) {
	product, err := uc.catalogClient.GetProduct(ctx, productID)
	if err != nil {
		uc.log.Warnf("Use Case: Availability check failed for product %d, rejecting add: %v", productID, err)
		return CartView{}, fmt.Errorf("availability of product %d could not be confirmed: %w", productID, err)
	}
	if product.Stock <= 0 {
		uc.log.Warnf("Use Case: Product %d is out of stock, rejecting add", productID)
		return CartView{}, fmt.Errorf("product %d: %w", productID, domain.ErrUnavailable)
	}

	uc.mu.Lock()
	merged := false
	for i := range uc.lines {
		if uc.lines[i].ProductID == productID {
			uc.lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		uc.lines = append(uc.lines, domain.CartLine{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  1,
			Thumbnail: product.Thumbnail,
		})
	}
	uc.mu.Unlock()

	uc.log.Infof("Use Case: Product %d added to cart locally (merged=%t)", productID, merged)

	_, err = uc.cartClient.AddProduct(ctx, uc.userID, productID, 1)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lastErr = err
	if err != nil {
		uc.log.Warnf("Use Case: Cart gateway add for product %d failed, keeping local state: %v", productID, err)
	}
	return uc.view(), nil
}

// Remove sends the intended line collection without the product and replaces
// local state with the gateway echo. On failure local state is unchanged.
func (uc *cartUseCase) Remove(ctx context.Context, productID int) (CartView, error) {
	uc.mu.Lock()
	intended := make([]domain.CartLine, 0, len(uc.lines))
	found := false
	for _, line := range uc.lines {
		if line.ProductID == productID {
			found = true
			continue
		}
		intended = append(intended, line)
	}
	uc.mu.Unlock()

	if !found {
		return CartView{}, fmt.Errorf("cart line for product %d: %w", productID, domain.ErrNotFound)
	}

	return uc.replace(ctx, intended)
}

// UpdateQuantity clamps the quantity below at zero (zero removes the line)
// and reconciles through the gateway echo.
func (uc *cartUseCase) UpdateQuantity(ctx context.Context, productID, quantity int) (CartView, error) {
	if quantity < 0 {
		quantity = 0
	}

	uc.mu.Lock()
	intended := make([]domain.CartLine, len(uc.lines))
	copy(intended, uc.lines)
	found := false
	for i := range intended {
		if intended[i].ProductID == productID {
			intended[i].Quantity = quantity
			found = true
			break
		}
	}
	uc.mu.Unlock()

	if !found {
		return CartView{}, fmt.Errorf("cart line for product %d: %w", productID, domain.ErrNotFound)
	}

	return uc.replace(ctx, intended)
}

func (uc *cartUseCase) replace(ctx context.Context, intended []domain.CartLine) (CartView, error) {
	echo, err := uc.cartClient.ReplaceCart(ctx, uc.cartID, intended)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err != nil {
		uc.lastErr = err
		uc.log.Warnf("Use Case: Cart replace failed, local state unchanged: %v", err)
		return uc.view(), fmt.Errorf("cart update failed: %w", err)
	}

	uc.applyEcho(echo)
	uc.lastErr = nil
	uc.log.Infof("Use Case: Cart %d reconciled to %d lines from gateway echo", uc.cartID, len(uc.lines))
	return uc.view(), nil
}

// applyEcho replaces local lines with the gateway's authoritative echo,
// dropping zero-quantity lines. Callers hold the mutex.
func (uc *cartUseCase) applyEcho(echo *clients.RemoteCart) {
	if echo.ID != 0 {
		uc.cartID = echo.ID
	}
	uc.lines = uc.lines[:0]
	for _, item := range echo.Products {
		if item.Quantity <= 0 {
			continue
		}
		uc.lines = append(uc.lines, domain.CartLine{
			ProductID: item.ID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Thumbnail: item.Thumbnail,
		})
	}
}

// view builds a snapshot. Callers hold the mutex.
func (uc *cartUseCase) view() CartView {
	lines := make([]domain.CartLine, len(uc.lines))
	copy(lines, uc.lines)

	v := CartView{
		Cart: domain.Cart{
			ID:    uc.cartID,
			Lines: lines,
			Total: domain.CartTotal(lines),
		},
	}
	if uc.lastErr != nil {
		v.LastError = uc.lastErr.Error()
	}
	return v
}
