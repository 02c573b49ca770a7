package service

import (
	"context"
	"errors"
	"sync"

	"github.com/mkim/storefront-client/internal/app/model"
	apperrors "github.com/mkim/storefront-client/internal/errors"
	"github.com/mkim/storefront-client/internal/event"
	"github.com/mkim/storefront-client/pkg/logger"
)

var ErrLineItemNotFound = errors.New("line item not found")

// CartGateway is the slice of the backend API the cart engine talks to.
type CartGateway interface {
	Cart(ctx context.Context, customerID, storeID int) ([]model.CartItem, error)
	AddToCart(ctx context.Context, customerID, productID, quantity, storeID int) error
	UpdateCartItem(ctx context.Context, lineItemID, customerID, quantity int) error
	DeleteCartItem(ctx context.Context, lineItemID, customerID int) error
	ProductStock(ctx context.Context, storeID, productID int) (*model.ProductWithStock, error)
}

// IdentitySource exposes the customer identity the cart is keyed by.
type IdentitySource interface {
	Customer() *model.Customer
}

// StoreSource exposes the selected store the cart is scoped to.
type StoreSource interface {
	Selected() *model.Store
}

// CartService is the cart engine for the current (customer, store) pair. With
// no customer or no store the cart is empty and read-only. Mutations that
// lack either key fail with a precondition error before any network call.
//
// Responses carry a monotonic request generation; a response that resolves
// after a newer request was issued is discarded instead of clobbering state.
type CartService interface {
	Init(ctx context.Context) error
	Dispose()

	Sync(ctx context.Context) error
	Add(ctx context.Context, productID, quantity int, unitPrice float64) error
	SetQuantity(ctx context.Context, lineItemID, quantity int) error
	Remove(ctx context.Context, lineItemID int) error
	Clear()

	Items() []model.CartItem
	Total() float64
	Count() int
}

type cartService struct {
	gateway CartGateway
	session IdentitySource
	stores  StoreSource
	bus     *event.Bus

	mu       sync.Mutex
	items    []model.CartItem
	gen      uint64
	cancels  []func()
	disposed bool
}

func NewCartService(gateway CartGateway, session IdentitySource, stores StoreSource, bus *event.Bus) CartService {
	return &cartService{
		gateway: gateway,
		session: session,
		stores:  stores,
		bus:     bus,
	}
}

// Init subscribes to identity and store-selection changes and runs the first
// sync. Each change notification triggers exactly one resync.
func (c *cartService) Init(ctx context.Context) error {
	resync := func(event.Notification) {
		if err := c.Sync(context.Background()); err != nil {
			logger.Warn("Cart resync failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	c.mu.Lock()
	c.cancels = append(c.cancels,
		c.bus.Subscribe(event.TopicSession, resync),
		c.bus.Subscribe(event.TopicStore, resync),
	)
	c.mu.Unlock()

	return c.Sync(ctx)
}

func (c *cartService) Dispose() {
	c.mu.Lock()
	cancels := c.cancels
	c.cancels = nil
	c.disposed = true
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Sync replaces local state with the remote cart for the current pair, then
// enriches each line with current stock. A per-item stock failure keeps that
// item's last-known stock instead of aborting the batch.
func (c *cartService) Sync(ctx context.Context) error {
	customerID, storeID, ok := c.pair()
	if !ok {
		c.mu.Lock()
		c.gen++
		c.items = nil
		c.mu.Unlock()
		return nil
	}

	gen := c.nextGen()

	// Snapshot last-known stock for graceful per-item degradation.
	lastStock := make(map[int]*int)
	c.mu.Lock()
	for _, item := range c.items {
		lastStock[item.ProductID] = item.Stock
	}
	c.mu.Unlock()

	items, err := c.gateway.Cart(ctx, customerID, storeID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"customer_id": customerID,
			"store_id":    storeID,
		})
		c.applyIfCurrent(gen, customerID, storeID, func() {
			c.items = nil
		})
		return err
	}

	for i := range items {
		product, err := c.gateway.ProductStock(ctx, storeID, items[i].ProductID)
		if err != nil {
			logger.Warn("Failed to fetch stock for cart item", map[string]interface{}{
				"product_id": items[i].ProductID,
				"store_id":   storeID,
				"error":      err.Error(),
			})
			items[i].Stock = lastStock[items[i].ProductID]
			continue
		}
		stock := product.Stock
		items[i].Stock = &stock
	}

	applied := c.applyIfCurrent(gen, customerID, storeID, func() {
		c.items = items
	})
	if applied {
		logger.Debug("Cart synced", map[string]interface{}{
			"customer_id": customerID,
			"store_id":    storeID,
			"count":       len(items),
		})
	}
	return nil
}

// Add upserts quantity for a product in the remote cart, then resyncs so the
// local state reflects server-side merges.
func (c *cartService) Add(ctx context.Context, productID, quantity int, unitPrice float64) error {
	customerID, storeID, err := c.requirePair()
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return apperrors.Validation(apperrors.ValidationInvalidInput, "quantity must be positive")
	}

	// Fast-fail when the merged quantity would exceed known stock.
	c.mu.Lock()
	for _, item := range c.items {
		if item.ProductID == productID && item.Stock != nil && item.Quantity+quantity > *item.Stock {
			available := *item.Stock
			c.mu.Unlock()
			logger.Warn("Cannot add to cart: insufficient stock", map[string]interface{}{
				"product_id": productID,
				"requested":  item.Quantity + quantity,
				"available":  available,
			})
			return apperrors.Stock("requested quantity exceeds available stock")
		}
	}
	c.mu.Unlock()

	if err := c.gateway.AddToCart(ctx, customerID, productID, quantity, storeID); err != nil {
		logger.Error("Failed to add to cart", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return err
	}

	logger.Info("Added to cart", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
		"unit_price": unitPrice,
	})
	return c.Sync(ctx)
}

// SetQuantity sets the absolute quantity of a line item. Zero or negative
// delegates to Remove. The local patch is optimistic: no resync afterwards,
// so a concurrent server-side change may be clobbered by the next Sync.
func (c *cartService) SetQuantity(ctx context.Context, lineItemID, quantity int) error {
	if quantity <= 0 {
		return c.Remove(ctx, lineItemID)
	}

	customerID, err := c.requireIdentity()
	if err != nil {
		return err
	}

	c.mu.Lock()
	var target *model.CartItem
	for i := range c.items {
		if c.items[i].LineItemID == lineItemID {
			target = &c.items[i]
			break
		}
	}
	if target == nil {
		c.mu.Unlock()
		return apperrors.Wrap(apperrors.KindNotFound, apperrors.ResourceNotFound, "line item not in cart", ErrLineItemNotFound)
	}
	if target.Stock != nil && quantity > *target.Stock {
		available := *target.Stock
		c.mu.Unlock()
		logger.Warn("Cannot update quantity: insufficient stock", map[string]interface{}{
			"line_item_id": lineItemID,
			"requested":    quantity,
			"available":    available,
		})
		return apperrors.Stock("requested quantity exceeds available stock")
	}
	c.mu.Unlock()

	gen := c.nextGen()

	if err := c.gateway.UpdateCartItem(ctx, lineItemID, customerID, quantity); err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"line_item_id": lineItemID,
		})
		return err
	}

	c.applyIfGen(gen, func() {
		for i := range c.items {
			if c.items[i].LineItemID == lineItemID {
				c.items[i].Quantity = quantity
				return
			}
		}
	})
	return nil
}

// Remove deletes a line item and optimistically filters the local list.
func (c *cartService) Remove(ctx context.Context, lineItemID int) error {
	customerID, err := c.requireIdentity()
	if err != nil {
		return err
	}

	gen := c.nextGen()

	if err := c.gateway.DeleteCartItem(ctx, lineItemID, customerID); err != nil {
		logger.Error("Failed to remove cart item", err, map[string]interface{}{
			"line_item_id": lineItemID,
		})
		return err
	}

	c.applyIfGen(gen, func() {
		kept := c.items[:0]
		for _, item := range c.items {
			if item.LineItemID != lineItemID {
				kept = append(kept, item)
			}
		}
		c.items = kept
	})

	logger.Info("Removed cart item", map[string]interface{}{
		"line_item_id": lineItemID,
	})
	return nil
}

// Clear empties in-memory state without notifying the backend. The checkout
// flow assumes the remote cart was already consumed by order creation.
func (c *cartService) Clear() {
	c.mu.Lock()
	c.gen++
	c.items = nil
	c.mu.Unlock()
}

func (c *cartService) Items() []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]model.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Total is the sum of unit price times quantity, recomputed on every call.
func (c *cartService) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// Count is the sum of all quantities, recomputed on every call.
func (c *cartService) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *cartService) pair() (customerID, storeID int, ok bool) {
	customer := c.session.Customer()
	store := c.stores.Selected()
	if customer == nil || store == nil {
		return 0, 0, false
	}
	return customer.CustomerID, store.StoreID, true
}

func (c *cartService) requirePair() (customerID, storeID int, err error) {
	if customer := c.session.Customer(); customer != nil {
		customerID = customer.CustomerID
	} else {
		return 0, 0, apperrors.Precondition(apperrors.PreconditionNoSession, "no customer identity; log in and complete your profile first")
	}
	if store := c.stores.Selected(); store != nil {
		storeID = store.StoreID
	} else {
		return 0, 0, apperrors.Precondition(apperrors.PreconditionNoStore, "no store selected")
	}
	return customerID, storeID, nil
}

func (c *cartService) requireIdentity() (int, error) {
	customer := c.session.Customer()
	if customer == nil {
		return 0, apperrors.Precondition(apperrors.PreconditionNoSession, "no customer identity; log in and complete your profile first")
	}
	return customer.CustomerID, nil
}

func (c *cartService) nextGen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.gen
}

// applyIfGen runs apply under the lock only when no newer request has been
// issued since gen.
func (c *cartService) applyIfGen(gen uint64, apply func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	apply()
	return true
}

// applyIfCurrent additionally discards the result when the (customer, store)
// pair changed while the request was in flight.
func (c *cartService) applyIfCurrent(gen uint64, customerID, storeID int, apply func()) bool {
	if nowCustomer, nowStore, ok := c.pair(); !ok || nowCustomer != customerID || nowStore != storeID {
		return false
	}
	return c.applyIfGen(gen, apply)
}
