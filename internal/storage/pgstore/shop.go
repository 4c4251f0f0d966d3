package pgstore

import (
	"context"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

// Product categories

func (s *Store) ListProductCategories(ctx context.Context) ([]storage.ProductCategory, error) {
	return list[storage.ProductCategory](ctx, s.db, "list product categories",
		`SELECT * FROM product_categories WHERE is_active ORDER BY sort_order ASC`)
}

func (s *Store) GetProductCategory(ctx context.Context, id string) (*storage.ProductCategory, error) {
	return getOne[storage.ProductCategory](ctx, s.db, "get product category", `SELECT * FROM product_categories WHERE id = $1`, id)
}

func (s *Store) CreateProductCategory(ctx context.Context, c storage.ProductCategory) (*storage.ProductCategory, error) {
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return insert(ctx, s.db, "create product category", "product_categories", &c)
}

func (s *Store) UpdateProductCategory(ctx context.Context, id string, p storage.Patch) (*storage.ProductCategory, error) {
	return update[storage.ProductCategory](ctx, s.db, "update product category", "product_categories", id, p)
}

func (s *Store) DeleteProductCategory(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete product category", "product_categories", id)
}

// Products

func (s *Store) ListProducts(ctx context.Context) ([]storage.Product, error) {
	return list[storage.Product](ctx, s.db, "list products", `SELECT * FROM products ORDER BY created_at DESC`)
}

func (s *Store) GetProduct(ctx context.Context, id string) (*storage.Product, error) {
	return getOne[storage.Product](ctx, s.db, "get product", `SELECT * FROM products WHERE id = $1`, id)
}

func (s *Store) GetProductBySKU(ctx context.Context, sku string) (*storage.Product, error) {
	return getOne[storage.Product](ctx, s.db, "get product by sku", `SELECT * FROM products WHERE sku = $1 LIMIT 1`, sku)
}

func (s *Store) ListProductsByCategory(ctx context.Context, categoryID string) ([]storage.Product, error) {
	return list[storage.Product](ctx, s.db, "list products by category",
		`SELECT * FROM products WHERE category_id = $1 AND is_active ORDER BY created_at DESC`, categoryID)
}

func (s *Store) ListFeaturedProducts(ctx context.Context) ([]storage.Product, error) {
	return list[storage.Product](ctx, s.db, "list featured products",
		`SELECT * FROM products WHERE is_featured AND is_active ORDER BY created_at DESC`)
}

func (s *Store) ListActiveProducts(ctx context.Context) ([]storage.Product, error) {
	return list[storage.Product](ctx, s.db, "list active products",
		`SELECT * FROM products WHERE is_active ORDER BY created_at DESC`)
}

func (s *Store) CreateProduct(ctx context.Context, pr storage.Product) (*storage.Product, error) {
	stamp(&pr.ID, &pr.CreatedAt, &pr.UpdatedAt)
	return insert(ctx, s.db, "create product", "products", &pr)
}

func (s *Store) UpdateProduct(ctx context.Context, id string, p storage.Patch) (*storage.Product, error) {
	return update[storage.Product](ctx, s.db, "update product", "products", id, p)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete product", "products", id)
}

func (s *Store) UpdateProductStock(ctx context.Context, productID string, quantity int) (bool, error) {
	tag, err := s.db.Exec(ctx, `UPDATE products SET stock = $1, updated_at = $2 WHERE id = $3`, quantity, storage.Now(), productID)
	if err != nil {
		return false, wrap("update product stock", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListLowStockProducts(ctx context.Context) ([]storage.Product, error) {
	return list[storage.Product](ctx, s.db, "list low stock products",
		`SELECT * FROM products WHERE is_active AND stock <= low_stock_threshold ORDER BY stock ASC`)
}

// Product variants

func (s *Store) ListProductVariants(ctx context.Context, productID string) ([]storage.ProductVariant, error) {
	return list[storage.ProductVariant](ctx, s.db, "list product variants",
		`SELECT * FROM product_variants WHERE product_id = $1`, productID)
}

func (s *Store) GetProductVariant(ctx context.Context, id string) (*storage.ProductVariant, error) {
	return getOne[storage.ProductVariant](ctx, s.db, "get product variant", `SELECT * FROM product_variants WHERE id = $1`, id)
}

func (s *Store) CreateProductVariant(ctx context.Context, v storage.ProductVariant) (*storage.ProductVariant, error) {
	stamp(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	return insert(ctx, s.db, "create product variant", "product_variants", &v)
}

func (s *Store) UpdateProductVariant(ctx context.Context, id string, p storage.Patch) (*storage.ProductVariant, error) {
	return update[storage.ProductVariant](ctx, s.db, "update product variant", "product_variants", id, p)
}

func (s *Store) DeleteProductVariant(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete product variant", "product_variants", id)
}

// Inventory

func (s *Store) ListInventoryMovements(ctx context.Context, productID string) ([]storage.InventoryMovement, error) {
	if productID == "" {
		return list[storage.InventoryMovement](ctx, s.db, "list inventory movements",
			`SELECT * FROM inventory_movements ORDER BY created_at DESC`)
	}
	return list[storage.InventoryMovement](ctx, s.db, "list inventory movements",
		`SELECT * FROM inventory_movements WHERE product_id = $1 ORDER BY created_at DESC`, productID)
}

func (s *Store) CreateInventoryMovement(ctx context.Context, m storage.InventoryMovement) (*storage.InventoryMovement, error) {
	stamp(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return insert(ctx, s.db, "create inventory movement", "inventory_movements", &m)
}

// Cart

// cartFilter renders the OR of the non-empty owner filters starting at $1.
func cartFilter(userID, sessionID string) (string, []any) {
	switch {
	case userID != "" && sessionID != "":
		return "user_id = $1 OR session_id = $2", []any{userID, sessionID}
	case userID != "":
		return "user_id = $1", []any{userID}
	default:
		return "session_id = $1", []any{sessionID}
	}
}

func (s *Store) ListCartItems(ctx context.Context, userID, sessionID string) ([]storage.CartItem, error) {
	if userID == "" && sessionID == "" {
		return []storage.CartItem{}, nil
	}
	where, args := cartFilter(userID, sessionID)
	return list[storage.CartItem](ctx, s.db, "list cart items",
		`SELECT * FROM cart_items WHERE `+where+` ORDER BY created_at DESC`, args...)
}

func (s *Store) AddToCart(ctx context.Context, item storage.CartItem) (*storage.CartItem, error) {
	stamp(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	return insert(ctx, s.db, "add to cart", "cart_items", &item)
}

func (s *Store) UpdateCartItem(ctx context.Context, id string, quantity int) (*storage.CartItem, error) {
	return update[storage.CartItem](ctx, s.db, "update cart item", "cart_items", id, storage.Patch{"quantity": quantity})
}

func (s *Store) RemoveFromCart(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "remove from cart", "cart_items", id)
}

func (s *Store) ClearCart(ctx context.Context, userID, sessionID string) (bool, error) {
	if userID == "" && sessionID == "" {
		return false, nil
	}
	where, args := cartFilter(userID, sessionID)
	tag, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE `+where, args...)
	if err != nil {
		return false, wrap("clear cart", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Orders

func (s *Store) ListOrders(ctx context.Context) ([]storage.Order, error) {
	return list[storage.Order](ctx, s.db, "list orders", `SELECT * FROM orders ORDER BY created_at DESC`)
}

func (s *Store) GetOrder(ctx context.Context, id string) (*storage.Order, error) {
	return getOne[storage.Order](ctx, s.db, "get order", `SELECT * FROM orders WHERE id = $1`, id)
}

func (s *Store) GetOrderByNumber(ctx context.Context, orderNumber string) (*storage.Order, error) {
	return getOne[storage.Order](ctx, s.db, "get order by number", `SELECT * FROM orders WHERE order_number = $1`, orderNumber)
}

func (s *Store) ListUserOrders(ctx context.Context, userID string) ([]storage.Order, error) {
	return list[storage.Order](ctx, s.db, "list user orders",
		`SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (s *Store) CreateOrder(ctx context.Context, o storage.Order) (*storage.Order, error) {
	stamp(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if o.OrderNumber == "" {
		o.OrderNumber = storage.NewOrderNumber(o.CreatedAt)
	}
	return insert(ctx, s.db, "create order", "orders", &o)
}

func (s *Store) UpdateOrder(ctx context.Context, id string, p storage.Patch) (*storage.Order, error) {
	return update[storage.Order](ctx, s.db, "update order", "orders", id, p)
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status storage.OrderStatus) (*storage.Order, error) {
	return update[storage.Order](ctx, s.db, "update order status", "orders", id, storage.Patch{"status": string(status)})
}

func (s *Store) DeleteOrder(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete order", "orders", id)
}

func (s *Store) ListOrderItems(ctx context.Context, orderID string) ([]storage.OrderItem, error) {
	return list[storage.OrderItem](ctx, s.db, "list order items", `SELECT * FROM order_items WHERE order_id = $1`, orderID)
}

func (s *Store) CreateOrderItem(ctx context.Context, item storage.OrderItem) (*storage.OrderItem, error) {
	stamp(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	return insert(ctx, s.db, "create order item", "order_items", &item)
}

// Customers

func (s *Store) ListCustomers(ctx context.Context) ([]storage.Customer, error) {
	return list[storage.Customer](ctx, s.db, "list customers", `SELECT * FROM customers ORDER BY created_at DESC`)
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*storage.Customer, error) {
	return getOne[storage.Customer](ctx, s.db, "get customer", `SELECT * FROM customers WHERE id = $1`, id)
}

func (s *Store) GetCustomerByUserID(ctx context.Context, userID string) (*storage.Customer, error) {
	return getOne[storage.Customer](ctx, s.db, "get customer by user", `SELECT * FROM customers WHERE user_id = $1 LIMIT 1`, userID)
}

func (s *Store) CreateCustomer(ctx context.Context, c storage.Customer) (*storage.Customer, error) {
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return insert(ctx, s.db, "create customer", "customers", &c)
}

func (s *Store) UpdateCustomer(ctx context.Context, id string, p storage.Patch) (*storage.Customer, error) {
	return update[storage.Customer](ctx, s.db, "update customer", "customers", id, p)
}

func (s *Store) ListCustomerAddresses(ctx context.Context, customerID string) ([]storage.CustomerAddress, error) {
	return list[storage.CustomerAddress](ctx, s.db, "list customer addresses",
		`SELECT * FROM customer_addresses WHERE customer_id = $1`, customerID)
}

func (s *Store) CreateCustomerAddress(ctx context.Context, a storage.CustomerAddress) (*storage.CustomerAddress, error) {
	stamp(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return insert(ctx, s.db, "create customer address", "customer_addresses", &a)
}

func (s *Store) UpdateCustomerAddress(ctx context.Context, id string, p storage.Patch) (*storage.CustomerAddress, error) {
	return update[storage.CustomerAddress](ctx, s.db, "update customer address", "customer_addresses", id, p)
}

func (s *Store) DeleteCustomerAddress(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete customer address", "customer_addresses", id)
}

// Payments and shipments

func (s *Store) ListOrderPayments(ctx context.Context, orderID string) ([]storage.Payment, error) {
	return list[storage.Payment](ctx, s.db, "list order payments",
		`SELECT * FROM payments WHERE order_id = $1 ORDER BY created_at DESC`, orderID)
}

func (s *Store) GetPayment(ctx context.Context, id string) (*storage.Payment, error) {
	return getOne[storage.Payment](ctx, s.db, "get payment", `SELECT * FROM payments WHERE id = $1`, id)
}

func (s *Store) CreatePayment(ctx context.Context, pay storage.Payment) (*storage.Payment, error) {
	stamp(&pay.ID, &pay.CreatedAt, &pay.UpdatedAt)
	return insert(ctx, s.db, "create payment", "payments", &pay)
}

func (s *Store) UpdatePayment(ctx context.Context, id string, p storage.Patch) (*storage.Payment, error) {
	return update[storage.Payment](ctx, s.db, "update payment", "payments", id, p)
}

func (s *Store) ListOrderShipments(ctx context.Context, orderID string) ([]storage.Shipment, error) {
	return list[storage.Shipment](ctx, s.db, "list order shipments",
		`SELECT * FROM shipments WHERE order_id = $1 ORDER BY created_at DESC`, orderID)
}

func (s *Store) GetShipment(ctx context.Context, id string) (*storage.Shipment, error) {
	return getOne[storage.Shipment](ctx, s.db, "get shipment", `SELECT * FROM shipments WHERE id = $1`, id)
}

func (s *Store) CreateShipment(ctx context.Context, sh storage.Shipment) (*storage.Shipment, error) {
	stamp(&sh.ID, &sh.CreatedAt, &sh.UpdatedAt)
	return insert(ctx, s.db, "create shipment", "shipments", &sh)
}

func (s *Store) UpdateShipment(ctx context.Context, id string, p storage.Patch) (*storage.Shipment, error) {
	return update[storage.Shipment](ctx, s.db, "update shipment", "shipments", id, p)
}
