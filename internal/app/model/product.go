package model

// Product is a catalog entry. Stock is store-specific and only present on
// responses scoped to a store.
type Product struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"img_url"`
}

// ProductWithStock is a Product joined with the selected store's inventory.
type ProductWithStock struct {
	Product
	Stock int `json:"stock"`
}
