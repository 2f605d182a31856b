package usecase

import (
	"storefront_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// PresenterState is the windowed presenter's state machine position.
type PresenterState string

const (
	StateSettled     PresenterState = "settled"
	StateLoadingMore PresenterState = "loading-more"
	StateExhausted   PresenterState = "exhausted"
	StateErrored     PresenterState = "errored"
)

// PresenterConfig carries the windowing constants: products per row, the
// estimated row height in pixels, the scrollable viewport height, and the
// overscan margin in rows.
type PresenterConfig struct {
	RowSize        int
	RowHeight      int
	ViewportHeight int
	Overscan       int
}

// VisibleRow is one materialized row inside (or near) the viewport.
type VisibleRow struct {
	Index    int              `json:"index"`
	Offset   int              `json:"offset"`
	Products []domain.Product `json:"products"`
}

// CatalogWindow is what the catalog view renders: the visible rows, the total
// scrollable extent, and whether the loader should be asked for another page.
type CatalogWindow struct {
	Rows          []VisibleRow   `json:"rows"`
	RowCount      int            `json:"row_count"`
	TotalHeight   int            `json:"total_height"`
	FilteredCount int            `json:"filtered_count"`
	LoadedCount   int            `json:"loaded_count"`
	State         PresenterState `json:"state"`
	NeedsMore     bool           `json:"needs_more"`
	Error         string         `json:"error,omitempty"`
}

// WindowedPresenter derives the filtered, row-partitioned, viewport-limited
// view from a loader snapshot. Numeric constraints are applied locally on
// already-fetched pages only, so a strict filter may legitimately show fewer
// items than one page until more pages are pulled in.
type WindowedPresenter struct {
	cfg PresenterConfig
	log *logrus.Logger
}

func NewWindowedPresenter(cfg PresenterConfig, logger *logrus.Logger) *WindowedPresenter {
	return &WindowedPresenter{cfg: cfg, log: logger}
}

// FilterProducts applies the criteria's numeric constraints. Category and
// search were already applied by the loader's gateway query selection.
func (p *WindowedPresenter) FilterProducts(products []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if criteria.Matches(product) {
			filtered = append(filtered, product)
		}
	}
	return filtered
}

// Window computes the visible row window at the given scroll offset.
func (p *WindowedPresenter) Window(snapshot LoaderState, criteria domain.FilterCriteria, scrollTop int) CatalogWindow {
	filtered := p.FilterProducts(snapshot.Products, criteria)

	rowCount := (len(filtered) + p.cfg.RowSize - 1) / p.cfg.RowSize
	window := CatalogWindow{
		RowCount:      rowCount,
		TotalHeight:   rowCount * p.cfg.RowHeight,
		FilteredCount: len(filtered),
		LoadedCount:   len(snapshot.Products),
		State:         p.state(snapshot),
	}
	if snapshot.Err != nil {
		window.Error = snapshot.Err.Error()
	}

	if scrollTop < 0 {
		scrollTop = 0
	}

	first := scrollTop/p.cfg.RowHeight - p.cfg.Overscan
	if first < 0 {
		first = 0
	}
	last := (scrollTop+p.cfg.ViewportHeight)/p.cfg.RowHeight + p.cfg.Overscan
	if last > rowCount-1 {
		last = rowCount - 1
	}

	for i := first; i <= last; i++ {
		start := i * p.cfg.RowSize
		end := start + p.cfg.RowSize
		if end > len(filtered) {
			end = len(filtered)
		}
		window.Rows = append(window.Rows, VisibleRow{
			Index:    i,
			Offset:   i * p.cfg.RowHeight,
			Products: filtered[start:end],
		})
	}

	// Another page is wanted once the window reaches the last materialized
	// row. An empty window (nothing filtered in yet) also counts.
	reachedEnd := rowCount == 0 || last >= rowCount-1
	window.NeedsMore = reachedEnd && !snapshot.Exhausted && !snapshot.InFlight && snapshot.Err == nil

	return window
}

func (p *WindowedPresenter) state(snapshot LoaderState) PresenterState {
	switch {
	case snapshot.Err != nil:
		return StateErrored
	case snapshot.InFlight:
		return StateLoadingMore
	case snapshot.Exhausted:
		return StateExhausted
	default:
		return StateSettled
	}
}
