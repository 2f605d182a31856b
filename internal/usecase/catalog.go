package usecase

import (
	"context"
	"errors"
	"fmt"

	"storefront_service/internal/clients"
	"storefront_service/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	suggestionLimit    = 5
	minSuggestionQuery = 2
)

// CatalogUseCase ties the filter store, the paginated loader and the windowed
// presenter together into the catalog view. Filter changes reset the loader;
// the window triggers at most one page load per request when the scroll
// position nears the end of loaded data.
type CatalogUseCase interface {
	Window(ctx context.Context, scrollTop int) CatalogWindow
	Retry(ctx context.Context, scrollTop int) CatalogWindow
	Filters() domain.FilterCriteria
	UpdateFilters(patch domain.FilterPatch) domain.FilterCriteria
	ResetFilters() domain.FilterCriteria
	Suggest(ctx context.Context, query string) ([]domain.Product, error)
}

type catalogUseCase struct {
	filters   FilterStore
	loader    *PaginatedLoader
	presenter *WindowedPresenter
	client    clients.CatalogClient
	log       *logrus.Logger
}

func NewCatalogUseCase(
	filters FilterStore,
	loader *PaginatedLoader,
	presenter *WindowedPresenter,
	client clients.CatalogClient,
	logger *logrus.Logger,
) CatalogUseCase {
	uc := &catalogUseCase{
		filters:   filters,
		loader:    loader,
		presenter: presenter,
		client:    client,
		log:       logger,
	}

	// Any filter change invalidates the accumulated pages.
	filters.Subscribe(func(criteria domain.FilterCriteria) {
		uc.loader.Reset(criteria)
	})

	return uc
}

func (uc *catalogUseCase) Window(ctx context.Context, scrollTop int) CatalogWindow {
	criteria := uc.filters.Current()
	window := uc.presenter.Window(uc.loader.Snapshot(), criteria, scrollTop)

	if window.NeedsMore {
		err := uc.loader.LoadNext(ctx)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrLoadInFlight), errors.Is(err, domain.ErrExhausted):
			// Lost the race against another request; the snapshot below
			// reflects whoever won.
			uc.log.Debugf("Use Case: Skipping page load: %v", err)
		default:
			uc.log.Warnf("Use Case: Page load failed, window will carry the error: %v", err)
		}
		window = uc.presenter.Window(uc.loader.Snapshot(), criteria, scrollTop)
	}

	return window
}

// Retry is the manual errored -> loading-more transition: it forces another
// page load even though the loader carries a recorded error, then recomputes
// the window. Scroll-triggered loads never retry a failed fetch on their own.
func (uc *catalogUseCase) Retry(ctx context.Context, scrollTop int) CatalogWindow {
	err := uc.loader.LoadNext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrLoadInFlight), errors.Is(err, domain.ErrExhausted):
		uc.log.Debugf("Use Case: Retry skipped: %v", err)
	default:
		uc.log.Warnf("Use Case: Retry failed: %v", err)
	}
	return uc.presenter.Window(uc.loader.Snapshot(), uc.filters.Current(), scrollTop)
}

func (uc *catalogUseCase) Filters() domain.FilterCriteria {
	return uc.filters.Current()
}

func (uc *catalogUseCase) UpdateFilters(patch domain.FilterPatch) domain.FilterCriteria {
	return uc.filters.Update(patch)
}

func (uc *catalogUseCase) ResetFilters() domain.FilterCriteria {
	return uc.filters.Reset()
}

// Suggest returns up to 5 search suggestions. Queries of 2 characters or
// fewer return nothing without touching the gateway.
func (uc *catalogUseCase) Suggest(ctx context.Context, query string) ([]domain.Product, error) {
	if len(query) <= minSuggestionQuery {
		return []domain.Product{}, nil
	}

	page, err := uc.client.SearchProducts(ctx, query, suggestionLimit, 0)
	if err != nil {
		uc.log.Warnf("Use Case: Suggestion query %q failed: %v", query, err)
		return nil, fmt.Errorf("suggestion query failed: %w", err)
	}
	return page.Products, nil
}
