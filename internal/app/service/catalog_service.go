package service

import (
	"context"

	"github.com/mkim/storefront-client/internal/app/model"
	"github.com/mkim/storefront-client/pkg/logger"
)

// CatalogGateway is the slice of the backend API for browsing.
type CatalogGateway interface {
	ListStores(ctx context.Context) ([]model.Store, error)
	Products(ctx context.Context, storeID int) ([]model.ProductWithStock, error)
	ProductStock(ctx context.Context, storeID, productID int) (*model.ProductWithStock, error)
}

// CatalogService exposes store and product browsing. It holds no state.
type CatalogService interface {
	Stores(ctx context.Context) ([]model.Store, error)
	Products(ctx context.Context, storeID int) ([]model.ProductWithStock, error)
	ProductStock(ctx context.Context, storeID, productID int) (*model.ProductWithStock, error)
}

type catalogService struct {
	gateway CatalogGateway
}

func NewCatalogService(gateway CatalogGateway) CatalogService {
	return &catalogService{gateway: gateway}
}

func (s *catalogService) Stores(ctx context.Context) ([]model.Store, error) {
	stores, err := s.gateway.ListStores(ctx)
	if err != nil {
		logger.Error("Failed to list stores", err)
		return nil, err
	}
	return stores, nil
}

func (s *catalogService) Products(ctx context.Context, storeID int) ([]model.ProductWithStock, error) {
	products, err := s.gateway.Products(ctx, storeID)
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return products, nil
}

func (s *catalogService) ProductStock(ctx context.Context, storeID, productID int) (*model.ProductWithStock, error) {
	product, err := s.gateway.ProductStock(ctx, storeID, productID)
	if err != nil {
		logger.Error("Failed to fetch product stock", err, map[string]interface{}{
			"store_id":   storeID,
			"product_id": productID,
		})
		return nil, err
	}
	return product, nil
}
