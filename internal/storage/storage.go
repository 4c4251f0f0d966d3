package storage

import "context"

// Storage is the full capability set of a backend.
type Storage interface {
	UserStore
	SiteConfigStore
	TestimonialStore
	FaqStore
	ContactStore
	ProductStore
	InventoryStore
	CartStore
	OrderStore
	CustomerStore
	PaymentStore
	ShipmentStore
	ReservationStore
	SettingsStore
	SectionStore
	BlogStore
	CustomizationStore
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, u User) (*User, error)
	UpdateUser(ctx context.Context, id string, p Patch) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

type SiteConfigStore interface {
	GetSiteConfig(ctx context.Context) (*SiteConfig, error)
	CreateSiteConfig(ctx context.Context, c SiteConfig) (*SiteConfig, error)
	UpdateSiteConfig(ctx context.Context, id string, p Patch) (*SiteConfig, error)
}

type TestimonialStore interface {
	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	GetTestimonial(ctx context.Context, id string) (*Testimonial, error)
	CreateTestimonial(ctx context.Context, t Testimonial) (*Testimonial, error)
	UpdateTestimonial(ctx context.Context, id string, p Patch) (*Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) (bool, error)
}

type FaqStore interface {
	ListFaqCategories(ctx context.Context) ([]FaqCategory, error)
	GetFaqCategory(ctx context.Context, id string) (*FaqCategory, error)
	CreateFaqCategory(ctx context.Context, c FaqCategory) (*FaqCategory, error)
	UpdateFaqCategory(ctx context.Context, id string, p Patch) (*FaqCategory, error)
	DeleteFaqCategory(ctx context.Context, id string) (bool, error)

	ListFaqs(ctx context.Context) ([]Faq, error)
	GetFaq(ctx context.Context, id string) (*Faq, error)
	ListFaqsByCategory(ctx context.Context, categoryID string) ([]Faq, error)
	CreateFaq(ctx context.Context, f Faq) (*Faq, error)
	UpdateFaq(ctx context.Context, id string, p Patch) (*Faq, error)
	DeleteFaq(ctx context.Context, id string) (bool, error)
}

type ContactStore interface {
	ListContactMessages(ctx context.Context) ([]ContactMessage, error)
	GetContactMessage(ctx context.Context, id string) (*ContactMessage, error)
	CreateContactMessage(ctx context.Context, m ContactMessage) (*ContactMessage, error)
	UpdateContactMessage(ctx context.Context, id string, p Patch) (*ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id string) (bool, error)

	GetContactInfo(ctx context.Context) (*ContactInfo, error)
	CreateContactInfo(ctx context.Context, info ContactInfo) (*ContactInfo, error)
	UpdateContactInfo(ctx context.Context, id string, p Patch) (*ContactInfo, error)
}

type ProductStore interface {
	ListProductCategories(ctx context.Context) ([]ProductCategory, error)
	GetProductCategory(ctx context.Context, id string) (*ProductCategory, error)
	CreateProductCategory(ctx context.Context, c ProductCategory) (*ProductCategory, error)
	UpdateProductCategory(ctx context.Context, id string, p Patch) (*ProductCategory, error)
	DeleteProductCategory(ctx context.Context, id string) (bool, error)

	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error)
	ListFeaturedProducts(ctx context.Context) ([]Product, error)
	ListActiveProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, pr Product) (*Product, error)
	UpdateProduct(ctx context.Context, id string, p Patch) (*Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
	// UpdateProductStock sets the stock level; false when the product does not exist.
	UpdateProductStock(ctx context.Context, productID string, quantity int) (bool, error)
	ListLowStockProducts(ctx context.Context) ([]Product, error)

	ListProductVariants(ctx context.Context, productID string) ([]ProductVariant, error)
	GetProductVariant(ctx context.Context, id string) (*ProductVariant, error)
	CreateProductVariant(ctx context.Context, v ProductVariant) (*ProductVariant, error)
	UpdateProductVariant(ctx context.Context, id string, p Patch) (*ProductVariant, error)
	DeleteProductVariant(ctx context.Context, id string) (bool, error)
}

type InventoryStore interface {
	// ListInventoryMovements lists every movement when productID is empty.
	ListInventoryMovements(ctx context.Context, productID string) ([]InventoryMovement, error)
	CreateInventoryMovement(ctx context.Context, m InventoryMovement) (*InventoryMovement, error)
}

// CartStore filters by user OR session; an empty filter value is ignored.
type CartStore interface {
	ListCartItems(ctx context.Context, userID, sessionID string) ([]CartItem, error)
	AddToCart(ctx context.Context, item CartItem) (*CartItem, error)
	UpdateCartItem(ctx context.Context, id string, quantity int) (*CartItem, error)
	RemoveFromCart(ctx context.Context, id string) (bool, error)
	ClearCart(ctx context.Context, userID, sessionID string) (bool, error)
}

type OrderStore interface {
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]Order, error)
	CreateOrder(ctx context.Context, o Order) (*Order, error)
	UpdateOrder(ctx context.Context, id string, p Patch) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error)
	DeleteOrder(ctx context.Context, id string) (bool, error)

	ListOrderItems(ctx context.Context, orderID string) ([]OrderItem, error)
	CreateOrderItem(ctx context.Context, item OrderItem) (*OrderItem, error)
}

type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	GetCustomerByUserID(ctx context.Context, userID string) (*Customer, error)
	CreateCustomer(ctx context.Context, c Customer) (*Customer, error)
	UpdateCustomer(ctx context.Context, id string, p Patch) (*Customer, error)

	ListCustomerAddresses(ctx context.Context, customerID string) ([]CustomerAddress, error)
	CreateCustomerAddress(ctx context.Context, a CustomerAddress) (*CustomerAddress, error)
	UpdateCustomerAddress(ctx context.Context, id string, p Patch) (*CustomerAddress, error)
	DeleteCustomerAddress(ctx context.Context, id string) (bool, error)
}

type PaymentStore interface {
	ListOrderPayments(ctx context.Context, orderID string) ([]Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	CreatePayment(ctx context.Context, pay Payment) (*Payment, error)
	UpdatePayment(ctx context.Context, id string, p Patch) (*Payment, error)
}

type ShipmentStore interface {
	ListOrderShipments(ctx context.Context, orderID string) ([]Shipment, error)
	GetShipment(ctx context.Context, id string) (*Shipment, error)
	CreateShipment(ctx context.Context, s Shipment) (*Shipment, error)
	UpdateShipment(ctx context.Context, id string, p Patch) (*Shipment, error)
}

type ReservationStore interface {
	ListReservations(ctx context.Context) ([]Reservation, error)
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	ListUserReservations(ctx context.Context, userID string) ([]Reservation, error)
	CreateReservation(ctx context.Context, r Reservation) (*Reservation, error)
	// UpdateReservation only applies ReservationMutableFields.
	UpdateReservation(ctx context.Context, id string, p Patch) (*Reservation, error)
	DeleteReservation(ctx context.Context, id string) (bool, error)
	// ListReservationsForDate returns confirmed reservations on a UTC day (YYYY-MM-DD).
	ListReservationsForDate(ctx context.Context, date string) ([]Reservation, error)
}

type SettingsStore interface {
	// GetReservationSettings creates the default row when none exists.
	GetReservationSettings(ctx context.Context) (*ReservationSettings, error)
	CreateReservationSettings(ctx context.Context, s ReservationSettings) (*ReservationSettings, error)
	UpdateReservationSettings(ctx context.Context, p Patch) (*ReservationSettings, error)

	GetPaymentConfig(ctx context.Context) (*PaymentConfig, error)
	UpdatePaymentConfig(ctx context.Context, c PaymentConfig) (*PaymentConfig, error)

	GetEmailConfig(ctx context.Context) (*EmailConfig, error)
	UpdateEmailConfig(ctx context.Context, c EmailConfig) (*EmailConfig, error)
	UpdateEmailTestStatus(ctx context.Context, status EmailTestStatus) error
}

type SectionStore interface {
	ListSections(ctx context.Context) ([]Section, error)
	GetSection(ctx context.Context, id string) (*Section, error)
	CreateSection(ctx context.Context, s Section) (*Section, error)
	UpdateSection(ctx context.Context, id string, p Patch) (*Section, error)
	DeleteSection(ctx context.Context, id string) (bool, error)
}

type BlogStore interface {
	ListBlogPosts(ctx context.Context) ([]BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (*BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error)
	CreateBlogPost(ctx context.Context, post BlogPost) (*BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, p Patch) (*BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) (bool, error)
	// IncrementBlogPostViews reports false on failure instead of an error.
	IncrementBlogPostViews(ctx context.Context, id string) bool
}

type CustomizationStore interface {
	GetPageCustomization(ctx context.Context, pageID, userID string) (*PageCustomization, error)
	ListPageCustomizations(ctx context.Context, userID string) ([]PageCustomization, error)
	CreatePageCustomization(ctx context.Context, c PageCustomization) (*PageCustomization, error)
	UpdatePageCustomization(ctx context.Context, pageID, userID string, p Patch) (*PageCustomization, error)
	// DeletePageCustomization deactivates the row; false only on failure.
	DeletePageCustomization(ctx context.Context, pageID, userID string) bool

	ListVisualCustomizations(ctx context.Context, pageID string) ([]VisualCustomization, error)
	GetVisualCustomization(ctx context.Context, elementSelector, pageID string) (*VisualCustomization, error)
	// SaveVisualCustomization upserts on (element_selector, page_id).
	SaveVisualCustomization(ctx context.Context, c VisualCustomization) (*VisualCustomization, error)
	// CreateVisualCustomization upserts on (element_selector, page_id) like
	// SaveVisualCustomization but records user_id instead of updated_by.
	CreateVisualCustomization(ctx context.Context, c VisualCustomization) (*VisualCustomization, error)
	UpdateVisualCustomization(ctx context.Context, id string, p Patch) (*VisualCustomization, error)
	DeleteVisualCustomization(ctx context.Context, id string) (bool, error)
	// DeleteAllVisualCustomizations reports false only on failure.
	DeleteAllVisualCustomizations(ctx context.Context, pageID string) bool
}
