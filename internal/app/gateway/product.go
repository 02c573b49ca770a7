package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mkim/storefront-client/internal/app/model"
)

// Products lists the catalog with stock for one store.
func (c *Client) Products(ctx context.Context, storeID int) ([]model.ProductWithStock, error) {
	query := url.Values{"store_id": {strconv.Itoa(storeID)}}
	var products []model.ProductWithStock
	if err := c.doJSON(ctx, http.MethodGet, "/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductStock fetches one product with its stock at one store. The cart
// engine uses it to enrich line items after a sync.
func (c *Client) ProductStock(ctx context.Context, storeID, productID int) (*model.ProductWithStock, error) {
	query := url.Values{
		"store_id":   {strconv.Itoa(storeID)},
		"product_id": {strconv.Itoa(productID)},
	}
	var product model.ProductWithStock
	if err := c.doJSON(ctx, http.MethodGet, "/products/", query, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
