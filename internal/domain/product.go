package domain

// Product is a catalog product as served by the external catalog API.
// Products are immutable once fetched; everything outside the catalog
// client treats them as read-only.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// Rating is the aggregate customer rating attached to a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}
