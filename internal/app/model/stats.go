package model

// TopSeller is one row of the admin top-sellers report.
type TopSeller struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"img_url"`
	TotalSold   int     `json:"total_sold"`
}

// RegionStats aggregates orders by the best performing region. State and City
// are pointers because the backend reports null when there is no order data.
type RegionStats struct {
	State        *string `json:"state"`
	City         *string `json:"city"`
	OrderCount   int     `json:"order_count"`
	TotalRevenue float64 `json:"total_revenue"`
}
