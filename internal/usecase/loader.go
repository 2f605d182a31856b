package usecase

import (
	"context"
	"sync"

	"storefront_service/internal/clients"
	"storefront_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// LoaderState is a point-in-time snapshot of the paginated loader.
type LoaderState struct {
	Products  []domain.Product
	Offset    int
	Exhausted bool
	InFlight  bool
	Err       error
}

// PaginatedLoader fetches catalog pages lazily in fixed-size batches and
// accumulates them with identity-based deduplication. At most one page request
// is in flight at a time. Resets bump an epoch counter; a response issued
// before a reset is discarded when it lands, so stale-filter data can never
// resurface in the fresh accumulation.
type PaginatedLoader struct {
	mu       sync.Mutex
	client   clients.CatalogClient
	pageSize int
	log      *logrus.Logger

	criteria  domain.FilterCriteria
	products  []domain.Product
	seen      map[int]struct{}
	offset    int
	exhausted bool
	inFlight  bool
	lastErr   error
	epoch     uint64
}

func NewPaginatedLoader(client clients.CatalogClient, pageSize int, logger *logrus.Logger) *PaginatedLoader {
	return &PaginatedLoader{
		client:   client,
		pageSize: pageSize,
		seen:     make(map[int]struct{}),
		criteria: domain.DefaultFilterCriteria(),
		log:      logger,
	}
}

// Reset discards all accumulated state and rebinds the loader to the given
// criteria. Safe to call while a page request is in flight: the late response
// is dropped on arrival.
func (l *PaginatedLoader) Reset(criteria domain.FilterCriteria) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.epoch++
	l.criteria = criteria
	l.products = nil
	l.seen = make(map[int]struct{})
	l.offset = 0
	l.exhausted = false
	l.inFlight = false
	l.lastErr = nil

	l.log.Debugf("Loader: Reset (epoch %d, category=%q, search=%q)",
		l.epoch, criteria.Category, criteria.Search)
}

// LoadNext fetches one page at the current offset. Preconditions: no load in
// flight, not exhausted. The offset advances by the raw item count the gateway
// returned, not the deduplicated count, matching upstream pagination semantics.
func (l *PaginatedLoader) LoadNext(ctx context.Context) error {
	l.mu.Lock()
	if l.inFlight {
		l.mu.Unlock()
		return domain.ErrLoadInFlight
	}
	if l.exhausted {
		l.mu.Unlock()
		return domain.ErrExhausted
	}
	l.inFlight = true
	l.lastErr = nil
	epoch := l.epoch
	skip := l.offset
	criteria := l.criteria
	l.mu.Unlock()

	page, err := l.fetchPage(ctx, criteria, skip)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.epoch != epoch {
		// The loader was reset while this request was in flight. The reset
		// already cleared the in-flight flag; the response must not be merged.
		l.log.Debugf("Loader: Discarding stale page response (epoch %d, current %d)", epoch, l.epoch)
		return nil
	}

	l.inFlight = false
	if err != nil {
		l.lastErr = err
		l.log.Warnf("Loader: Page fetch at offset %d failed: %v", skip, err)
		return err
	}

	appended := 0
	for _, p := range page.Products {
		if _, dup := l.seen[p.ID]; dup {
			continue
		}
		l.seen[p.ID] = struct{}{}
		l.products = append(l.products, p)
		appended++
	}

	l.offset += len(page.Products)
	l.exhausted = len(page.Products) == 0 || page.Total <= l.offset

	l.log.Infof("Loader: Appended %d/%d products (offset=%d, total=%d, exhausted=%t)",
		appended, len(page.Products), l.offset, page.Total, l.exhausted)
	return nil
}

// fetchPage selects the gateway query mode: text search takes precedence over
// category scoping, plain listing otherwise.
func (l *PaginatedLoader) fetchPage(ctx context.Context, criteria domain.FilterCriteria, skip int) (*domain.ProductPage, error) {
	switch {
	case criteria.Search != "":
		return l.client.SearchProducts(ctx, criteria.Search, l.pageSize, skip)
	case criteria.Category != "":
		return l.client.ProductsByCategory(ctx, criteria.Category, l.pageSize, skip)
	default:
		return l.client.ListProducts(ctx, l.pageSize, skip)
	}
}

// Snapshot returns a copy of the current loader state.
func (l *PaginatedLoader) Snapshot() LoaderState {
	l.mu.Lock()
	defer l.mu.Unlock()

	products := make([]domain.Product, len(l.products))
	copy(products, l.products)
	return LoaderState{
		Products:  products,
		Offset:    l.offset,
		Exhausted: l.exhausted,
		InFlight:  l.inFlight,
		Err:       l.lastErr,
	}
}
