package domain

// Product is a catalog entry as served by the catalog gateway. Instances are
// immutable once fetched; the only local adjustment is a rating re-average on
// the detail view, which never flows back upstream.
type Product struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Rating    float64 `json:"rating"`
	Category  string  `json:"category"`
	Thumbnail string  `json:"thumbnail"`
	Stock     int     `json:"stock"`
}

// ProductPage is one page of a paginated catalog response. Total and Skip
// mirror the gateway's pagination fields; the loader relies on them to decide
// exhaustion.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// ProductDetail is the detail view: the product itself plus up to a handful of
// related products from the same category.
type ProductDetail struct {
	Product Product   `json:"product"`
	Related []Product `json:"related"`
}
