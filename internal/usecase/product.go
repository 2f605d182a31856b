package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront_service/internal/clients"
	"storefront_service/internal/domain"

	"github.com/sirupsen/logrus"
)

const relatedProductsLimit = 4

// ProductUseCase serves the product detail view: the product joined with
// related products from its category, a local rating re-average that never
// goes upstream, and availability checks with a per-view polling mode.
type ProductUseCase interface {
	Detail(ctx context.Context, productID int) (*domain.ProductDetail, error)
	Rate(ctx context.Context, productID int, rating float64) (*domain.Product, error)
	CheckAvailability(ctx context.Context, productID int) bool
	WatchAvailability(ctx context.Context, productID int) <-chan bool
}

type productUseCase struct {
	client       clients.CatalogClient
	pollInterval time.Duration
	log          *logrus.Logger

	mu              sync.Mutex
	ratingOverrides map[int]float64
}

func NewProductUseCase(client clients.CatalogClient, pollInterval time.Duration, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		client:          client,
		pollInterval:    pollInterval,
		ratingOverrides: make(map[int]float64),
		log:             logger,
	}
}

func (uc *productUseCase) Detail(ctx context.Context, productID int) (*domain.ProductDetail, error) {
	product, err := uc.client.GetProduct(ctx, productID)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to fetch product %d: %v", productID, err)
		return nil, err
	}
	uc.applyRatingOverride(product)

	detail := &domain.ProductDetail{Product: *product}

	relatedPage, err := uc.client.ProductsByCategory(ctx, product.Category, relatedProductsLimit, 0)
	if err != nil {
		// The detail view is still useful without related products.
		uc.log.Warnf("Use Case: Failed to fetch related products for %q: %v", product.Category, err)
		return detail, nil
	}

	for _, related := range relatedPage.Products {
		if related.ID == product.ID {
			continue
		}
		detail.Related = append(detail.Related, related)
	}
	return detail, nil
}

// Rate re-averages the product's rating with the submitted one and keeps the
// result as a local override. Nothing is persisted upstream.
func (uc *productUseCase) Rate(ctx context.Context, productID int, rating float64) (*domain.Product, error) {
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("rating %.1f is out of range", rating)
	}

	product, err := uc.client.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	uc.applyRatingOverride(product)

	updated := (product.Rating + rating) / 2

	uc.mu.Lock()
	uc.ratingOverrides[productID] = updated
	uc.mu.Unlock()

	product.Rating = updated
	uc.log.Infof("Use Case: Product %d rated %.1f, local rating now %.2f", productID, rating, updated)
	return product, nil
}

// CheckAvailability reports stock > 0. A failed check is treated as
// unavailable, never as available.
func (uc *productUseCase) CheckAvailability(ctx context.Context, productID int) bool {
	product, err := uc.client.GetProduct(ctx, productID)
	if err != nil {
		uc.log.Warnf("Use Case: Availability check for product %d failed, reporting unavailable: %v", productID, err)
		return false
	}
	return product.Stock > 0
}

// WatchAvailability emits the availability immediately and then on every poll
// tick. The poll loop stops and the channel closes when ctx is cancelled,
// which is how a torn-down view stops its polling.
func (uc *productUseCase) WatchAvailability(ctx context.Context, productID int) <-chan bool {
	updates := make(chan bool, 1)

	go func() {
		defer close(updates)

		ticker := time.NewTicker(uc.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case updates <- uc.CheckAvailability(ctx, productID):
			case <-ctx.Done():
				uc.log.Debugf("Use Case: Availability watch for product %d cancelled", productID)
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				uc.log.Debugf("Use Case: Availability watch for product %d cancelled", productID)
				return
			}
		}
	}()

	return updates
}

func (uc *productUseCase) applyRatingOverride(product *domain.Product) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if override, ok := uc.ratingOverrides[product.ID]; ok {
		product.Rating = override
	}
}
