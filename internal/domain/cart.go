package domain

// CartItem is a line in a customer's cart. Name, price and image are
// captured when the item is added and are not refreshed afterwards; a
// checkout submitted from a cart carries these captured values.
type CartItem struct {
	ProductID uint64  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}
