package model

// CartItem is one line of the remote cart for a (customer, store) pair.
// Stock is enriched client-side from a per-item inventory lookup and stays
// nil when that lookup never succeeded.
type CartItem struct {
	LineItemID  int     `json:"order_item_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"img_url"`
	Stock       *int    `json:"stock,omitempty"`
}

// Subtotal is the captured unit price times quantity.
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
