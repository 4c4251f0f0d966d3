package memstore

import (
	"context"
	"time"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

func productNewest(p *storage.Product) time.Time { return p.CreatedAt }

// Product categories

func (s *Store) ListProductCategories(_ context.Context) ([]storage.ProductCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.productCategories.scan(func(c *storage.ProductCategory) bool { return c.IsActive })
	return ascending(rows, func(c *storage.ProductCategory) int { return c.SortOrder }), nil
}

func (s *Store) GetProductCategory(_ context.Context, id string) (*storage.ProductCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productCategories.get(id), nil
}

func (s *Store) CreateProductCategory(_ context.Context, c storage.ProductCategory) (*storage.ProductCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = storage.NewID(), now, now
	return s.productCategories.insert(s.next(), c.ID, c), nil
}

func (s *Store) UpdateProductCategory(_ context.Context, id string, p storage.Patch) (*storage.ProductCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productCategories.patch(id, p, storage.Now())
}

func (s *Store) DeleteProductCategory(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productCategories.delete(id), nil
}

// Products

func (s *Store) ListProducts(_ context.Context) ([]storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.products.scan(nil), productNewest), nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.get(id), nil
}

func (s *Store) GetProductBySKU(_ context.Context, sku string) (*storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.find(func(p *storage.Product) bool { return p.SKU == sku }), nil
}

func (s *Store) ListProductsByCategory(_ context.Context, categoryID string) ([]storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.products.scan(func(p *storage.Product) bool {
		return p.IsActive && p.CategoryID != nil && *p.CategoryID == categoryID
	})
	return newestFirst(rows, productNewest), nil
}

func (s *Store) ListFeaturedProducts(_ context.Context) ([]storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.products.scan(func(p *storage.Product) bool { return p.IsActive && p.IsFeatured })
	return newestFirst(rows, productNewest), nil
}

func (s *Store) ListActiveProducts(_ context.Context) ([]storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.products.scan(func(p *storage.Product) bool { return p.IsActive })
	return newestFirst(rows, productNewest), nil
}

func (s *Store) CreateProduct(_ context.Context, pr storage.Product) (*storage.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	pr.ID, pr.CreatedAt, pr.UpdatedAt = storage.NewID(), now, now
	return s.products.insert(s.next(), pr.ID, pr), nil
}

func (s *Store) UpdateProduct(_ context.Context, id string, p storage.Patch) (*storage.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.patch(id, p, storage.Now())
}

func (s *Store) DeleteProduct(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.delete(id), nil
}

func (s *Store) UpdateProductStock(_ context.Context, productID string, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.products.rows[productID]
	if !ok {
		return false, nil
	}
	rec.val.Stock = quantity
	rec.val.UpdatedAt = storage.Now()
	return true, nil
}

func (s *Store) ListLowStockProducts(_ context.Context) ([]storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.products.scan(func(p *storage.Product) bool { return p.IsActive && p.Stock <= p.LowStockThreshold })
	return ascending(rows, func(p *storage.Product) int { return p.Stock }), nil
}

// Product variants

func (s *Store) ListProductVariants(_ context.Context, productID string) ([]storage.ProductVariant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productVariants.scan(func(v *storage.ProductVariant) bool { return v.ProductID == productID }), nil
}

func (s *Store) GetProductVariant(_ context.Context, id string) (*storage.ProductVariant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productVariants.get(id), nil
}

func (s *Store) CreateProductVariant(_ context.Context, v storage.ProductVariant) (*storage.ProductVariant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	v.ID, v.CreatedAt, v.UpdatedAt = storage.NewID(), now, now
	return s.productVariants.insert(s.next(), v.ID, v), nil
}

func (s *Store) UpdateProductVariant(_ context.Context, id string, p storage.Patch) (*storage.ProductVariant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productVariants.patch(id, p, storage.Now())
}

func (s *Store) DeleteProductVariant(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productVariants.delete(id), nil
}

// Inventory

func (s *Store) ListInventoryMovements(_ context.Context, productID string) ([]storage.InventoryMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.inventoryMovements.scan(func(m *storage.InventoryMovement) bool {
		return productID == "" || m.ProductID == productID
	})
	return newestFirst(rows, func(m *storage.InventoryMovement) time.Time { return m.CreatedAt }), nil
}

func (s *Store) CreateInventoryMovement(_ context.Context, m storage.InventoryMovement) (*storage.InventoryMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	m.ID, m.CreatedAt, m.UpdatedAt = storage.NewID(), now, now
	return s.inventoryMovements.insert(s.next(), m.ID, m), nil
}

// Cart

func cartOwner(userID, sessionID string) func(*storage.CartItem) bool {
	return func(c *storage.CartItem) bool {
		return (userID != "" && c.UserID != nil && *c.UserID == userID) ||
			(sessionID != "" && c.SessionID != nil && *c.SessionID == sessionID)
	}
}

func (s *Store) ListCartItems(_ context.Context, userID, sessionID string) ([]storage.CartItem, error) {
	if userID == "" && sessionID == "" {
		return []storage.CartItem{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.cartItems.scan(cartOwner(userID, sessionID))
	return newestFirst(rows, func(c *storage.CartItem) time.Time { return c.CreatedAt }), nil
}

func (s *Store) AddToCart(_ context.Context, item storage.CartItem) (*storage.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	item.ID, item.CreatedAt, item.UpdatedAt = storage.NewID(), now, now
	return s.cartItems.insert(s.next(), item.ID, item), nil
}

func (s *Store) UpdateCartItem(_ context.Context, id string, quantity int) (*storage.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartItems.patch(id, storage.Patch{"quantity": quantity}, storage.Now())
}

func (s *Store) RemoveFromCart(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartItems.delete(id), nil
}

func (s *Store) ClearCart(_ context.Context, userID, sessionID string) (bool, error) {
	if userID == "" && sessionID == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.cartItems.ids(cartOwner(userID, sessionID))
	for _, id := range ids {
		s.cartItems.delete(id)
	}
	return len(ids) > 0, nil
}

// Orders

func orderNewest(o *storage.Order) time.Time { return o.CreatedAt }

func (s *Store) ListOrders(_ context.Context) ([]storage.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.orders.scan(nil), orderNewest), nil
}

func (s *Store) GetOrder(_ context.Context, id string) (*storage.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.get(id), nil
}

func (s *Store) GetOrderByNumber(_ context.Context, orderNumber string) (*storage.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.find(func(o *storage.Order) bool { return o.OrderNumber == orderNumber }), nil
}

func (s *Store) ListUserOrders(_ context.Context, userID string) ([]storage.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.orders.scan(func(o *storage.Order) bool { return o.UserID != nil && *o.UserID == userID })
	return newestFirst(rows, orderNewest), nil
}

func (s *Store) CreateOrder(_ context.Context, o storage.Order) (*storage.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	o.ID, o.CreatedAt, o.UpdatedAt = storage.NewID(), now, now
	if o.OrderNumber == "" {
		o.OrderNumber = storage.NewOrderNumber(now)
	}
	return s.orders.insert(s.next(), o.ID, o), nil
}

func (s *Store) UpdateOrder(_ context.Context, id string, p storage.Patch) (*storage.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.patch(id, p, storage.Now())
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status storage.OrderStatus) (*storage.Order, error) {
	return s.UpdateOrder(ctx, id, storage.Patch{"status": status})
}

func (s *Store) DeleteOrder(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.orders.delete(id) {
		return false, nil
	}
	s.orderItems.deleteWhere(func(i *storage.OrderItem) bool { return i.OrderID == id })
	return true, nil
}

func (s *Store) ListOrderItems(_ context.Context, orderID string) ([]storage.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderItems.scan(func(i *storage.OrderItem) bool { return i.OrderID == orderID }), nil
}

func (s *Store) CreateOrderItem(_ context.Context, item storage.OrderItem) (*storage.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	item.ID, item.CreatedAt, item.UpdatedAt = storage.NewID(), now, now
	return s.orderItems.insert(s.next(), item.ID, item), nil
}

// Customers

func (s *Store) ListCustomers(_ context.Context) ([]storage.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.customers.scan(nil), func(c *storage.Customer) time.Time { return c.CreatedAt }), nil
}

func (s *Store) GetCustomer(_ context.Context, id string) (*storage.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.get(id), nil
}

func (s *Store) GetCustomerByUserID(_ context.Context, userID string) (*storage.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.find(func(c *storage.Customer) bool { return c.UserID != nil && *c.UserID == userID }), nil
}

func (s *Store) CreateCustomer(_ context.Context, c storage.Customer) (*storage.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = storage.NewID(), now, now
	return s.customers.insert(s.next(), c.ID, c), nil
}

func (s *Store) UpdateCustomer(_ context.Context, id string, p storage.Patch) (*storage.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.patch(id, p, storage.Now())
}

func (s *Store) ListCustomerAddresses(_ context.Context, customerID string) ([]storage.CustomerAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customerAddresses.scan(func(a *storage.CustomerAddress) bool { return a.CustomerID == customerID }), nil
}

func (s *Store) CreateCustomerAddress(_ context.Context, a storage.CustomerAddress) (*storage.CustomerAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	a.ID, a.CreatedAt, a.UpdatedAt = storage.NewID(), now, now
	return s.customerAddresses.insert(s.next(), a.ID, a), nil
}

func (s *Store) UpdateCustomerAddress(_ context.Context, id string, p storage.Patch) (*storage.CustomerAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerAddresses.patch(id, p, storage.Now())
}

func (s *Store) DeleteCustomerAddress(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerAddresses.delete(id), nil
}

// Payments

func (s *Store) ListOrderPayments(_ context.Context, orderID string) ([]storage.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.payments.scan(func(p *storage.Payment) bool { return p.OrderID == orderID })
	return newestFirst(rows, func(p *storage.Payment) time.Time { return p.CreatedAt }), nil
}

func (s *Store) GetPayment(_ context.Context, id string) (*storage.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payments.get(id), nil
}

func (s *Store) CreatePayment(_ context.Context, pay storage.Payment) (*storage.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	pay.ID, pay.CreatedAt, pay.UpdatedAt = storage.NewID(), now, now
	return s.payments.insert(s.next(), pay.ID, pay), nil
}

func (s *Store) UpdatePayment(_ context.Context, id string, p storage.Patch) (*storage.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments.patch(id, p, storage.Now())
}

// Shipments

func (s *Store) ListOrderShipments(_ context.Context, orderID string) ([]storage.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.shipments.scan(func(sh *storage.Shipment) bool { return sh.OrderID == orderID })
	return newestFirst(rows, func(sh *storage.Shipment) time.Time { return sh.CreatedAt }), nil
}

func (s *Store) GetShipment(_ context.Context, id string) (*storage.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shipments.get(id), nil
}

func (s *Store) CreateShipment(_ context.Context, sh storage.Shipment) (*storage.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	sh.ID, sh.CreatedAt, sh.UpdatedAt = storage.NewID(), now, now
	return s.shipments.insert(s.next(), sh.ID, sh), nil
}

func (s *Store) UpdateShipment(_ context.Context, id string, p storage.Patch) (*storage.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipments.patch(id, p, storage.Now())
}
