package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mkim/storefront-client/internal/app/model"
)

type cartResponse struct {
	Items []model.CartItem `json:"items"`
}

// Cart fetches the remote cart for a (customer, store) pair.
func (c *Client) Cart(ctx context.Context, customerID, storeID int) ([]model.CartItem, error) {
	query := url.Values{
		"customer_id": {strconv.Itoa(customerID)},
		"store_id":    {strconv.Itoa(storeID)},
	}
	var resp cartResponse
	if err := c.doJSON(ctx, http.MethodGet, "/cart", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

type addToCartRequest struct {
	CustomerID int `json:"customer_id"`
	ProductID  int `json:"product_id"`
	Quantity   int `json:"quantity"`
	StoreID    int `json:"store_id"`
}

// AddToCart sends an upsert-quantity request; the server merges quantities
// when the product is already in the cart.
func (c *Client) AddToCart(ctx context.Context, customerID, productID, quantity, storeID int) error {
	return c.doJSON(ctx, http.MethodPost, "/cart/add_to_cart", nil, addToCartRequest{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		StoreID:    storeID,
	}, nil)
}

type updateCartItemRequest struct {
	CustomerID int `json:"customer_id"`
	Quantity   int `json:"quantity"`
}

// UpdateCartItem sets the absolute quantity of one line item.
func (c *Client) UpdateCartItem(ctx context.Context, lineItemID, customerID, quantity int) error {
	path := fmt.Sprintf("/cart/items/%d", lineItemID)
	return c.doJSON(ctx, http.MethodPut, path, nil, updateCartItemRequest{
		CustomerID: customerID,
		Quantity:   quantity,
	}, nil)
}

type deleteCartItemRequest struct {
	CustomerID int `json:"customer_id"`
}

// DeleteCartItem removes one line item.
func (c *Client) DeleteCartItem(ctx context.Context, lineItemID, customerID int) error {
	path := fmt.Sprintf("/cart/items/%d", lineItemID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, deleteCartItemRequest{
		CustomerID: customerID,
	}, nil)
}
