package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/mkim/storefront-client/internal/app/model"
)

// fakeBackend is an in-memory stand-in for the storefront REST backend,
// serving the endpoints the gateway calls.
type fakeBackend struct {
	t  *testing.T
	mu sync.Mutex

	users     map[string]model.User
	passwords map[string]string
	customers map[int]*model.Customer
	nextUID   int
	nextCID   int

	stores   []model.Store
	products map[int]*fakeProduct

	carts      map[string][]model.CartItem
	nextLineID int

	orders      map[int]*model.OrderWithItems
	nextOrderID int

	cartFetches     map[string]int
	addCalls        int
	stockFailures   map[int]bool
	customerInfoErr bool

	server *httptest.Server
}

type fakeProduct struct {
	model.Product
	stock map[int]int // storeID -> stock
}

func newFakeBackend(t *testing.T) *fakeBackend {
	b := &fakeBackend{
		t:             t,
		users:         make(map[string]model.User),
		passwords:     make(map[string]string),
		customers:     make(map[int]*model.Customer),
		nextUID:       1,
		nextCID:       100,
		products:      make(map[int]*fakeProduct),
		carts:         make(map[string][]model.CartItem),
		nextLineID:    1,
		orders:        make(map[int]*model.OrderWithItems),
		nextOrderID:   1,
		cartFetches:   make(map[string]int),
		stockFailures: make(map[int]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.handleLogin)
	mux.HandleFunc("POST /api/auth/register", b.handleRegister)
	mux.HandleFunc("GET /api/customer/customer-info", b.handleCustomerInfo)
	mux.HandleFunc("POST /api/customer/customer-info", b.handleUpsertCustomer)
	mux.HandleFunc("PUT /api/customer/customer-info", b.handleUpsertCustomer)
	mux.HandleFunc("GET /api/stores", b.handleStores)
	mux.HandleFunc("GET /api/cart", b.handleGetCart)
	mux.HandleFunc("POST /api/cart/add_to_cart", b.handleAddToCart)
	mux.HandleFunc("PUT /api/cart/items/{id}", b.handleUpdateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", b.handleDeleteCartItem)
	mux.HandleFunc("POST /api/orders/checkout", b.handleCheckout)
	mux.HandleFunc("GET /api/orders/past_orders", b.handlePastOrders)
	mux.HandleFunc("GET /api/orders/{id}", b.handleOrderDetail)
	mux.HandleFunc("POST /api/orders/{id}/return", b.handleReturnItems)
	mux.HandleFunc("GET /api/products", b.handleProducts)
	mux.HandleFunc("GET /api/products/", b.handleProductStock)
	mux.HandleFunc("GET /api/stats/top-sellers", b.handleTopSellers)
	mux.HandleFunc("GET /api/stats/best-region", b.handleBestRegion)

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) url() string {
	return b.server.URL + "/api"
}

func (b *fakeBackend) addUser(username, password string, role model.UserRole) model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	user := model.User{UID: b.nextUID, UserName: username, Role: role}
	b.nextUID++
	b.users[username] = user
	b.passwords[username] = password
	return user
}

func (b *fakeBackend) addCustomer(uid int) *model.Customer {
	b.mu.Lock()
	defer b.mu.Unlock()
	customer := &model.Customer{
		CustomerID:   b.nextCID,
		CustomerName: fmt.Sprintf("Customer %d", uid),
		Street:       "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
		Country:      "USA",
		UID:          uid,
	}
	b.nextCID++
	b.customers[uid] = customer
	return customer
}

func (b *fakeBackend) addStore(id int, city string) model.Store {
	b.mu.Lock()
	defer b.mu.Unlock()
	store := model.Store{StoreID: id, Street: "10 Retail Rd", City: city, State: "IL", Zip: "62702"}
	b.stores = append(b.stores, store)
	return store
}

func (b *fakeBackend) addProduct(id int, name string, price float64, storeID, stock int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	product, ok := b.products[id]
	if !ok {
		product = &fakeProduct{
			Product: model.Product{ProductID: id, ProductName: name, Category: "general", Price: price},
			stock:   make(map[int]int),
		}
		b.products[id] = product
	}
	product.stock[storeID] = stock
}

func (b *fakeBackend) cartFetchCount(customerID, storeID int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cartFetches[cartKey(customerID, storeID)]
}

func (b *fakeBackend) addCallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addCalls
}

func (b *fakeBackend) setStockFailure(productID int, fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stockFailures[productID] = fail
}

func (b *fakeBackend) setCustomerInfoErr(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.customerInfoErr = fail
}

func cartKey(customerID, storeID int) string {
	return fmt.Sprintf("%d:%d", customerID, storeID)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (b *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"user_name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.users[req.UserName]
	if !ok || b.passwords[req.UserName] != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (b *fakeBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"user_name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[req.UserName]; exists {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}
	user := model.User{UID: b.nextUID, UserName: req.UserName, Role: model.RoleCustomer}
	b.nextUID++
	b.users[req.UserName] = user
	b.passwords[req.UserName] = req.Password
	writeJSON(w, http.StatusCreated, user)
}

func (b *fakeBackend) handleCustomerInfo(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.customerInfoErr {
		writeError(w, http.StatusInternalServerError, "database unavailable")
		return
	}
	uid, _ := strconv.Atoi(r.URL.Query().Get("uid"))
	customer, ok := b.customers[uid]
	if !ok {
		writeError(w, http.StatusNotFound, "no customer info")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (b *fakeBackend) handleUpsertCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UID int `json:"uid"`
		model.ProfileFields
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if req.CustomerName == "" {
		writeError(w, http.StatusBadRequest, "customer_name is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	customer, ok := b.customers[req.UID]
	if !ok {
		customer = &model.Customer{CustomerID: b.nextCID, UID: req.UID}
		b.nextCID++
		b.customers[req.UID] = customer
	}
	customer.CustomerName = req.CustomerName
	customer.PhoneNumber = req.PhoneNumber
	customer.Street = req.Street
	customer.City = req.City
	customer.State = req.State
	customer.ZipCode = req.ZipCode
	customer.Country = req.Country
	writeJSON(w, http.StatusOK, customer)
}

func (b *fakeBackend) handleStores(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.stores)
}

func (b *fakeBackend) handleGetCart(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(r.URL.Query().Get("customer_id"))
	storeID, _ := strconv.Atoi(r.URL.Query().Get("store_id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	key := cartKey(customerID, storeID)
	b.cartFetches[key]++
	items := b.carts[key]
	if items == nil {
		items = []model.CartItem{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (b *fakeBackend) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID int `json:"customer_id"`
		ProductID  int `json:"product_id"`
		Quantity   int `json:"quantity"`
		StoreID    int `json:"store_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.addCalls++
	product, ok := b.products[req.ProductID]
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	stock := product.stock[req.StoreID]
	key := cartKey(req.CustomerID, req.StoreID)

	// Merge with an existing line instead of duplicating the product.
	for i := range b.carts[key] {
		if b.carts[key][i].ProductID == req.ProductID {
			merged := b.carts[key][i].Quantity + req.Quantity
			if merged > stock {
				writeError(w, http.StatusBadRequest, "insufficient stock")
				return
			}
			b.carts[key][i].Quantity = merged
			writeJSON(w, http.StatusOK, b.carts[key][i])
			return
		}
	}

	if req.Quantity > stock {
		writeError(w, http.StatusBadRequest, "insufficient stock")
		return
	}
	item := model.CartItem{
		LineItemID:  b.nextLineID,
		ProductID:   req.ProductID,
		ProductName: product.ProductName,
		UnitPrice:   product.Price,
		Quantity:    req.Quantity,
	}
	b.nextLineID++
	b.carts[key] = append(b.carts[key], item)
	writeJSON(w, http.StatusCreated, item)
}

func (b *fakeBackend) findLine(lineItemID int) (string, int, bool) {
	for key, items := range b.carts {
		for i := range items {
			if items[i].LineItemID == lineItemID {
				return key, i, true
			}
		}
	}
	return "", 0, false
}

func (b *fakeBackend) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	lineItemID, _ := strconv.Atoi(r.PathValue("id"))
	var req struct {
		CustomerID int `json:"customer_id"`
		Quantity   int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	key, i, ok := b.findLine(lineItemID)
	if !ok {
		writeError(w, http.StatusNotFound, "cart item not found")
		return
	}
	b.carts[key][i].Quantity = req.Quantity
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *fakeBackend) handleDeleteCartItem(w http.ResponseWriter, r *http.Request) {
	lineItemID, _ := strconv.Atoi(r.PathValue("id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	key, i, ok := b.findLine(lineItemID)
	if !ok {
		writeError(w, http.StatusNotFound, "cart item not found")
		return
	}
	b.carts[key] = append(b.carts[key][:i], b.carts[key][i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *fakeBackend) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID int `json:"customer_id"`
		StoreID    int `json:"store_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	key := cartKey(req.CustomerID, req.StoreID)
	items := b.carts[key]
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	order := &model.OrderWithItems{
		Order: model.Order{
			OrderID:       b.nextOrderID,
			CustomerID:    req.CustomerID,
			OrderNumber:   b.nextOrderID,
			OrderDateTime: time.Now().UnixMilli(),
			Status:        model.OrderStatusComplete,
			StoreID:       req.StoreID,
		},
	}
	for _, item := range items {
		order.TotalPrice += item.Subtotal()
		order.Items = append(order.Items, model.OrderItem{
			OrderItemID: item.LineItemID,
			OrderID:     order.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	b.orders[order.OrderID] = order
	b.nextOrderID++
	delete(b.carts, key)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *fakeBackend) handlePastOrders(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(r.URL.Query().Get("customer_id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	orders := []model.Order{}
	for _, order := range b.orders {
		if order.CustomerID == customerID {
			orders = append(orders, order.Order)
		}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (b *fakeBackend) handleOrderDetail(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(r.PathValue("id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	order, ok := b.orders[orderID]
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (b *fakeBackend) handleReturnItems(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(r.PathValue("id"))
	var req struct {
		CustomerID   int   `json:"customer_id"`
		OrderItemIDs []int `json:"order_item_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	order, ok := b.orders[orderID]
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	for _, id := range req.OrderItemIDs {
		for i := range order.Items {
			if order.Items[i].OrderItemID == id {
				order.Items[i].IsReturn = true
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *fakeBackend) handleProducts(w http.ResponseWriter, r *http.Request) {
	storeID, _ := strconv.Atoi(r.URL.Query().Get("store_id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	products := []model.ProductWithStock{}
	for _, product := range b.products {
		if stock, ok := product.stock[storeID]; ok {
			products = append(products, model.ProductWithStock{Product: product.Product, Stock: stock})
		}
	}
	writeJSON(w, http.StatusOK, products)
}

func (b *fakeBackend) handleProductStock(w http.ResponseWriter, r *http.Request) {
	storeID, _ := strconv.Atoi(r.URL.Query().Get("store_id"))
	productID, _ := strconv.Atoi(r.URL.Query().Get("product_id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stockFailures[productID] {
		writeError(w, http.StatusInternalServerError, "inventory unavailable")
		return
	}
	product, ok := b.products[productID]
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, model.ProductWithStock{Product: product.Product, Stock: product.stock[storeID]})
}

func (b *fakeBackend) handleTopSellers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []model.TopSeller{
		{ProductID: 101, ProductName: "Garden Trowel", Category: "garden", Price: 32.00, TotalSold: 40},
		{ProductID: 102, ProductName: "Watering Can", Category: "garden", Price: 18.50, TotalSold: 25},
	})
}

func (b *fakeBackend) handleBestRegion(w http.ResponseWriter, r *http.Request) {
	state, city := "IL", "Springfield"
	writeJSON(w, http.StatusOK, model.RegionStats{
		State:        &state,
		City:         &city,
		OrderCount:   12,
		TotalRevenue: 840.50,
	})
}
