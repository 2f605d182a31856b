package domain

import (
	"encoding/json"
	"math"
)

// FilterCriteria holds the catalog filter state. MaxPrice uses +Inf as the
// "unbounded" sentinel. Category and search select the gateway query mode;
// the numeric fields are applied locally on already-fetched pages.
type FilterCriteria struct {
	Category string  `json:"category"`
	Search   string  `json:"search"`
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	Rating   float64 `json:"rating"`
}

// DefaultFilterCriteria returns the unfiltered state.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		MinPrice: 0,
		MaxPrice: math.Inf(1),
		Rating:   0,
	}
}

// MarshalJSON renders the unbounded MaxPrice sentinel as null, since +Inf has
// no JSON representation.
func (f FilterCriteria) MarshalJSON() ([]byte, error) {
	type plain FilterCriteria
	out := struct {
		plain
		MaxPrice *float64 `json:"max_price"`
	}{plain: plain(f)}
	if !math.IsInf(f.MaxPrice, 1) {
		out.MaxPrice = &f.MaxPrice
	}
	return json.Marshal(out)
}

// FilterPatch is a partial update: nil fields keep the current value.
type FilterPatch struct {
	Category *string  `json:"category"`
	Search   *string  `json:"search"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	Rating   *float64 `json:"rating"`
}

// Matches reports whether a product satisfies the numeric constraints.
// Category and search are not re-checked here: the loader already scoped the
// gateway query by them.
func (f FilterCriteria) Matches(p Product) bool {
	return p.Price >= f.MinPrice &&
		(math.IsInf(f.MaxPrice, 1) || p.Price <= f.MaxPrice) &&
		p.Rating >= f.Rating
}
