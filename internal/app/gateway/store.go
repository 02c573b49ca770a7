package gateway

import (
	"context"
	"net/http"

	"github.com/mkim/storefront-client/internal/app/model"
)

// ListStores returns every physical store location.
func (c *Client) ListStores(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	if err := c.doJSON(ctx, http.MethodGet, "/stores", nil, nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}
