package model

type OrderStatus string

const (
	OrderStatusComplete OrderStatus = "complete"
	OrderStatusInCart   OrderStatus = "in_cart"
)

// Order is an order header from the history endpoint.
type Order struct {
	OrderID       int         `json:"order_id"`
	CustomerID    int         `json:"customer_id"`
	OrderNumber   int         `json:"order_number"`
	OrderDateTime int64       `json:"order_datetime"` // unix millis
	TotalPrice    float64     `json:"total_price"`
	Status        OrderStatus `json:"status"`
	StoreID       int         `json:"store_id"`
}

// OrderItem is one purchased line of an order. IsReturn marks lines already
// sent back through the return flow.
type OrderItem struct {
	OrderItemID int     `json:"order_item_id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"img_url"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	IsReturn    bool    `json:"is_return"`
}

// OrderWithItems is the order-detail response shape.
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}
