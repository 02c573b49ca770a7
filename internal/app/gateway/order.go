package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mkim/storefront-client/internal/app/model"
)

type checkoutRequest struct {
	CustomerID int `json:"customer_id"`
	StoreID    int `json:"store_id"`
}

// Checkout converts the remote cart for the pair into a completed order.
func (c *Client) Checkout(ctx context.Context, customerID, storeID int) error {
	return c.doJSON(ctx, http.MethodPost, "/orders/checkout", nil, checkoutRequest{
		CustomerID: customerID,
		StoreID:    storeID,
	}, nil)
}

// PastOrders lists completed orders for a customer, newest first.
func (c *Client) PastOrders(ctx context.Context, customerID int) ([]model.Order, error) {
	query := url.Values{"customer_id": {strconv.Itoa(customerID)}}
	var orders []model.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/past_orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderDetail fetches one order header with its items.
func (c *Client) OrderDetail(ctx context.Context, orderID, customerID int) (*model.OrderWithItems, error) {
	path := fmt.Sprintf("/orders/%d", orderID)
	query := url.Values{"customer_id": {strconv.Itoa(customerID)}}
	var order model.OrderWithItems
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

type returnItemsRequest struct {
	CustomerID   int   `json:"customer_id"`
	OrderItemIDs []int `json:"order_item_ids"`
}

// ReturnItems marks the given order items for return.
func (c *Client) ReturnItems(ctx context.Context, orderID, customerID int, orderItemIDs []int) error {
	path := fmt.Sprintf("/orders/%d/return", orderID)
	return c.doJSON(ctx, http.MethodPost, path, nil, returnItemsRequest{
		CustomerID:   customerID,
		OrderItemIDs: orderItemIDs,
	}, nil)
}
