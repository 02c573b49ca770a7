package service

import (
	"context"

	"github.com/mkim/storefront-client/internal/app/model"
	apperrors "github.com/mkim/storefront-client/internal/errors"
	"github.com/mkim/storefront-client/pkg/logger"
)

// OrderGateway is the slice of the backend API the order flows talk to.
type OrderGateway interface {
	Checkout(ctx context.Context, customerID, storeID int) error
	PastOrders(ctx context.Context, customerID int) ([]model.Order, error)
	OrderDetail(ctx context.Context, orderID, customerID int) (*model.OrderWithItems, error)
	ReturnItems(ctx context.Context, orderID, customerID int, orderItemIDs []int) error
}

// OrderService covers checkout, order history, and returns.
type OrderService interface {
	Checkout(ctx context.Context) error
	PastOrders(ctx context.Context) ([]model.Order, error)
	OrderDetail(ctx context.Context, orderID int) (*model.OrderWithItems, error)
	ReturnItems(ctx context.Context, orderID int, orderItemIDs []int) error
}

type orderService struct {
	gateway OrderGateway
	session IdentitySource
	stores  StoreSource
	cart    CartService
}

func NewOrderService(gateway OrderGateway, session IdentitySource, stores StoreSource, cart CartService) OrderService {
	return &orderService{
		gateway: gateway,
		session: session,
		stores:  stores,
		cart:    cart,
	}
}

// Checkout converts the remote cart into an order. On success the local cart
// is cleared without notifying the backend; order creation already consumed
// the remote cart.
func (s *orderService) Checkout(ctx context.Context) error {
	customer := s.session.Customer()
	if customer == nil {
		return apperrors.Precondition(apperrors.PreconditionNoSession, "no customer identity; log in and complete your profile first")
	}
	store := s.stores.Selected()
	if store == nil {
		return apperrors.Precondition(apperrors.PreconditionNoStore, "no store selected")
	}

	logger.Info("Checking out", map[string]interface{}{
		"customer_id": customer.CustomerID,
		"store_id":    store.StoreID,
		"total":       s.cart.Total(),
	})

	if err := s.gateway.Checkout(ctx, customer.CustomerID, store.StoreID); err != nil {
		logger.Error("Checkout failed", err, map[string]interface{}{
			"customer_id": customer.CustomerID,
			"store_id":    store.StoreID,
		})
		return err
	}

	s.cart.Clear()

	logger.Info("Checkout complete", map[string]interface{}{
		"customer_id": customer.CustomerID,
		"store_id":    store.StoreID,
	})
	return nil
}

func (s *orderService) PastOrders(ctx context.Context) ([]model.Order, error) {
	customer := s.session.Customer()
	if customer == nil {
		return nil, apperrors.Precondition(apperrors.PreconditionNoSession, "no customer identity")
	}

	orders, err := s.gateway.PastOrders(ctx, customer.CustomerID)
	if err != nil {
		logger.Error("Failed to fetch order history", err, map[string]interface{}{
			"customer_id": customer.CustomerID,
		})
		return nil, err
	}
	return orders, nil
}

func (s *orderService) OrderDetail(ctx context.Context, orderID int) (*model.OrderWithItems, error) {
	customer := s.session.Customer()
	if customer == nil {
		return nil, apperrors.Precondition(apperrors.PreconditionNoSession, "no customer identity")
	}

	order, err := s.gateway.OrderDetail(ctx, orderID, customer.CustomerID)
	if err != nil {
		logger.Error("Failed to fetch order detail", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return order, nil
}

func (s *orderService) ReturnItems(ctx context.Context, orderID int, orderItemIDs []int) error {
	customer := s.session.Customer()
	if customer == nil {
		return apperrors.Precondition(apperrors.PreconditionNoSession, "no customer identity")
	}
	if len(orderItemIDs) == 0 {
		return apperrors.Validation(apperrors.ValidationRequired, "no order items selected for return")
	}

	if err := s.gateway.ReturnItems(ctx, orderID, customer.CustomerID, orderItemIDs); err != nil {
		logger.Error("Failed to return items", err, map[string]interface{}{
			"order_id": orderID,
			"items":    len(orderItemIDs),
		})
		return err
	}

	logger.Info("Items marked for return", map[string]interface{}{
		"order_id": orderID,
		"items":    len(orderItemIDs),
	})
	return nil
}
