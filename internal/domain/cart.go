package domain

// CartLine is one product entry in the cart. A line with quantity 0 is
// logically removed and never stored.
type CartLine struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Thumbnail string  `json:"thumbnail"`
}

// Cart is the local view of the remote cart, identified by the gateway's cart id.
type Cart struct {
	ID    int        `json:"id"`
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}

// CartTotal computes the derived cart total. It is recomputed on every read
// rather than cached, so it can never go stale against the lines.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}
