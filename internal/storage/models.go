package storage

import "time"

// Struct tags: db and json both carry the column name, so a Patch key is
// always a column name regardless of which backend applies it.

type User struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"password"`
	Role      string    `db:"role" json:"role"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type SiteConfig struct {
	ID             string         `db:"id" json:"id"`
	BusinessName   string         `db:"business_name" json:"business_name"`
	Tagline        string         `db:"tagline" json:"tagline"`
	LogoURL        string         `db:"logo_url" json:"logo_url"`
	PrimaryColor   string         `db:"primary_color" json:"primary_color"`
	SecondaryColor string         `db:"secondary_color" json:"secondary_color"`
	Settings       map[string]any `db:"settings" json:"settings"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

type Testimonial struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Company    string    `db:"company" json:"company"`
	Content    string    `db:"content" json:"content"`
	Rating     int       `db:"rating" json:"rating"`
	AvatarURL  string    `db:"avatar_url" json:"avatar_url"`
	IsApproved bool      `db:"is_approved" json:"is_approved"`
	IsFeatured bool      `db:"is_featured" json:"is_featured"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type FaqCategory struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Faq struct {
	ID         string    `db:"id" json:"id"`
	CategoryID *string   `db:"category_id" json:"category_id"`
	Question   string    `db:"question" json:"question"`
	Answer     string    `db:"answer" json:"answer"`
	SortOrder  int       `db:"sort_order" json:"sort_order"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type ContactMessage struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type ContactInfo struct {
	ID            string            `db:"id" json:"id"`
	Phone         string            `db:"phone" json:"phone"`
	Email         string            `db:"email" json:"email"`
	Address       string            `db:"address" json:"address"`
	BusinessHours map[string]any    `db:"business_hours" json:"business_hours"`
	SocialLinks   map[string]string `db:"social_links" json:"social_links"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

type ProductCategory struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Product struct {
	ID                string    `db:"id" json:"id"`
	CategoryID        *string   `db:"category_id" json:"category_id"`
	SKU               string    `db:"sku" json:"sku"`
	Name              string    `db:"name" json:"name"`
	Slug              string    `db:"slug" json:"slug"`
	Description       string    `db:"description" json:"description"`
	PriceCents        int       `db:"price_cents" json:"price_cents"`
	CompareAtCents    *int      `db:"compare_at_cents" json:"compare_at_cents"`
	Stock             int       `db:"stock" json:"stock"`
	LowStockThreshold int       `db:"low_stock_threshold" json:"low_stock_threshold"`
	Images            []string  `db:"images" json:"images"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	IsFeatured        bool      `db:"is_featured" json:"is_featured"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type ProductVariant struct {
	ID         string            `db:"id" json:"id"`
	ProductID  string            `db:"product_id" json:"product_id"`
	Name       string            `db:"name" json:"name"`
	SKU        string            `db:"sku" json:"sku"`
	PriceCents int               `db:"price_cents" json:"price_cents"`
	Stock      int               `db:"stock" json:"stock"`
	Attributes map[string]string `db:"attributes" json:"attributes"`
	IsActive   bool              `db:"is_active" json:"is_active"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time         `db:"updated_at" json:"updated_at"`
}

// InventoryMovement types.
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
)

type InventoryMovement struct {
	ID        string    `db:"id" json:"id"`
	ProductID string    `db:"product_id" json:"product_id"`
	VariantID *string   `db:"variant_id" json:"variant_id"`
	Type      string    `db:"type" json:"type"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Reason    string    `db:"reason" json:"reason"`
	Reference string    `db:"reference" json:"reference"`
	CreatedBy *string   `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CartItem struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"user_id"`
	SessionID *string   `db:"session_id" json:"session_id"`
	ProductID string    `db:"product_id" json:"product_id"`
	VariantID *string   `db:"variant_id" json:"variant_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Order struct {
	ID              string         `db:"id" json:"id"`
	OrderNumber     string         `db:"order_number" json:"order_number"`
	UserID          *string        `db:"user_id" json:"user_id"`
	CustomerID      *string        `db:"customer_id" json:"customer_id"`
	Status          OrderStatus    `db:"status" json:"status"`
	PaymentStatus   string         `db:"payment_status" json:"payment_status"`
	SubtotalCents   int            `db:"subtotal_cents" json:"subtotal_cents"`
	TaxCents        int            `db:"tax_cents" json:"tax_cents"`
	ShippingCents   int            `db:"shipping_cents" json:"shipping_cents"`
	TotalCents      int            `db:"total_cents" json:"total_cents"`
	ShippingAddress map[string]any `db:"shipping_address" json:"shipping_address"`
	Notes           string         `db:"notes" json:"notes"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

type OrderItem struct {
	ID          string    `db:"id" json:"id"`
	OrderID     string    `db:"order_id" json:"order_id"`
	ProductID   string    `db:"product_id" json:"product_id"`
	VariantID   *string   `db:"variant_id" json:"variant_id"`
	ProductName string    `db:"product_name" json:"product_name"`
	Quantity    int       `db:"quantity" json:"quantity"`
	PriceCents  int       `db:"price_cents" json:"price_cents"`
	TotalCents  int       `db:"total_cents" json:"total_cents"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Customer struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"user_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CustomerAddress struct {
	ID         string    `db:"id" json:"id"`
	CustomerID string    `db:"customer_id" json:"customer_id"`
	Label      string    `db:"label" json:"label"`
	Street     string    `db:"street" json:"street"`
	City       string    `db:"city" json:"city"`
	State      string    `db:"state" json:"state"`
	PostalCode string    `db:"postal_code" json:"postal_code"`
	Country    string    `db:"country" json:"country"`
	IsDefault  bool      `db:"is_default" json:"is_default"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type Payment struct {
	ID            string    `db:"id" json:"id"`
	OrderID       string    `db:"order_id" json:"order_id"`
	Provider      string    `db:"provider" json:"provider"`
	Method        string    `db:"method" json:"method"`
	Status        string    `db:"status" json:"status"`
	AmountCents   int       `db:"amount_cents" json:"amount_cents"`
	Currency      string    `db:"currency" json:"currency"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type Shipment struct {
	ID             string     `db:"id" json:"id"`
	OrderID        string     `db:"order_id" json:"order_id"`
	Carrier        string     `db:"carrier" json:"carrier"`
	TrackingNumber string     `db:"tracking_number" json:"tracking_number"`
	Status         string     `db:"status" json:"status"`
	ShippedAt      *time.Time `db:"shipped_at" json:"shipped_at"`
	DeliveredAt    *time.Time `db:"delivered_at" json:"delivered_at"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

type Reservation struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Service   string    `db:"service" json:"service"`
	Date      time.Time `db:"date" json:"date"`
	TimeSlot  string    `db:"time_slot" json:"time_slot"`
	Status    string    `db:"status" json:"status"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DayHours is the opening window of a single weekday.
type DayHours struct {
	Enabled bool   `json:"enabled"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

type ReservationSettings struct {
	ID              string              `db:"id" json:"id"`
	BusinessHours   map[string]DayHours `db:"business_hours" json:"business_hours"`
	DefaultDuration int                 `db:"default_duration" json:"default_duration"`
	BufferTime      int                 `db:"buffer_time" json:"buffer_time"`
	MaxAdvanceDays  int                 `db:"max_advance_days" json:"max_advance_days"`
	AllowedServices []string            `db:"allowed_services" json:"allowed_services"`
	IsActive        bool                `db:"is_active" json:"is_active"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `db:"updated_at" json:"updated_at"`
}

type PaymentConfig struct {
	ID            string    `db:"id" json:"id"`
	Provider      string    `db:"provider" json:"provider"`
	PublicKey     string    `db:"public_key" json:"public_key"`
	SecretKey     string    `db:"secret_key" json:"secret_key"`
	WebhookSecret string    `db:"webhook_secret" json:"webhook_secret"`
	Currency      string    `db:"currency" json:"currency"`
	IsLive        bool      `db:"is_live" json:"is_live"`
	IsEnabled     bool      `db:"is_enabled" json:"is_enabled"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// EmailTestStatus is the outcome of the last SMTP test.
type EmailTestStatus string

const (
	EmailTestSuccess EmailTestStatus = "success"
	EmailTestFailed  EmailTestStatus = "failed"
	EmailTestPending EmailTestStatus = "pending"
)

type EmailConfig struct {
	ID           string          `db:"id" json:"id"`
	SMTPHost     string          `db:"smtp_host" json:"smtp_host"`
	SMTPPort     int             `db:"smtp_port" json:"smtp_port"`
	SMTPUser     string          `db:"smtp_user" json:"smtp_user"`
	SMTPPassword string          `db:"smtp_password" json:"smtp_password"`
	FromEmail    string          `db:"from_email" json:"from_email"`
	FromName     string          `db:"from_name" json:"from_name"`
	IsActive     bool            `db:"is_active" json:"is_active"`
	TestStatus   EmailTestStatus `db:"test_status" json:"test_status"`
	LastTested   *time.Time      `db:"last_tested" json:"last_tested"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

type Section struct {
	ID        string         `db:"id" json:"id"`
	Type      string         `db:"type" json:"type"`
	Title     string         `db:"title" json:"title"`
	Content   map[string]any `db:"content" json:"content"`
	SortOrder int            `db:"sort_order" json:"sort_order"`
	IsVisible bool           `db:"is_visible" json:"is_visible"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type BlogPost struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Excerpt     string     `db:"excerpt" json:"excerpt"`
	Content     string     `db:"content" json:"content"`
	CoverImage  string     `db:"cover_image" json:"cover_image"`
	AuthorID    *string    `db:"author_id" json:"author_id"`
	Status      string     `db:"status" json:"status"`
	Tags        []string   `db:"tags" json:"tags"`
	Views       int        `db:"views" json:"views"`
	PublishedAt *time.Time `db:"published_at" json:"published_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	// AuthorName is derived on read and never stored.
	AuthorName string `db:"-" json:"author_name,omitempty"`
}

type PageCustomization struct {
	ID        string         `db:"id" json:"id"`
	PageID    string         `db:"page_id" json:"page_id"`
	UserID    string         `db:"user_id" json:"user_id"`
	Settings  map[string]any `db:"settings" json:"settings"`
	IsActive  bool           `db:"is_active" json:"is_active"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type VisualCustomization struct {
	ID              string    `db:"id" json:"id"`
	PageID          string    `db:"page_id" json:"page_id"`
	ElementSelector string    `db:"element_selector" json:"element_selector"`
	Property        string    `db:"property" json:"property"`
	Value           string    `db:"value" json:"value"`
	UserID          *string   `db:"user_id" json:"user_id"`
	UpdatedBy       *string   `db:"updated_by" json:"updated_by"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
