package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mkim/storefront-client/internal/app/model"
)

// TopSellers returns the best selling products across all stores.
func (c *Client) TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var sellers []model.TopSeller
	if err := c.doJSON(ctx, http.MethodGet, "/stats/top-sellers", query, nil, &sellers); err != nil {
		return nil, err
	}
	return sellers, nil
}

// BestRegion returns the region with the highest order volume.
func (c *Client) BestRegion(ctx context.Context) (*model.RegionStats, error) {
	var region model.RegionStats
	if err := c.doJSON(ctx, http.MethodGet, "/stats/best-region", nil, nil, &region); err != nil {
		return nil, err
	}
	return &region, nil
}
