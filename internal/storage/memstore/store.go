// Package memstore is the in-memory storage backend. Rows live for the
// lifetime of the process.
package memstore

import (
	"sync"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

var _ storage.Storage = (*Store)(nil)

// Store keeps every entity in its own table behind one lock.
type Store struct {
	mu  sync.RWMutex
	seq uint64

	users                *table[storage.User]
	siteConfigs          *table[storage.SiteConfig]
	testimonials         *table[storage.Testimonial]
	faqCategories        *table[storage.FaqCategory]
	faqs                 *table[storage.Faq]
	contactMessages      *table[storage.ContactMessage]
	contactInfo          *table[storage.ContactInfo]
	productCategories    *table[storage.ProductCategory]
	products             *table[storage.Product]
	productVariants      *table[storage.ProductVariant]
	inventoryMovements   *table[storage.InventoryMovement]
	cartItems            *table[storage.CartItem]
	orders               *table[storage.Order]
	orderItems           *table[storage.OrderItem]
	customers            *table[storage.Customer]
	customerAddresses    *table[storage.CustomerAddress]
	payments             *table[storage.Payment]
	shipments            *table[storage.Shipment]
	reservations         *table[storage.Reservation]
	reservationSettings  *table[storage.ReservationSettings]
	paymentConfigs       *table[storage.PaymentConfig]
	emailConfigs         *table[storage.EmailConfig]
	sections             *table[storage.Section]
	blogPosts            *table[storage.BlogPost]
	pageCustomizations   *table[storage.PageCustomization]
	visualCustomizations *table[storage.VisualCustomization]
}

func New() *Store {
	return &Store{
		users:                newTable[storage.User](),
		siteConfigs:          newTable[storage.SiteConfig](),
		testimonials:         newTable[storage.Testimonial](),
		faqCategories:        newTable[storage.FaqCategory](),
		faqs:                 newTable[storage.Faq](),
		contactMessages:      newTable[storage.ContactMessage](),
		contactInfo:          newTable[storage.ContactInfo](),
		productCategories:    newTable[storage.ProductCategory](),
		products:             newTable[storage.Product](),
		productVariants:      newTable[storage.ProductVariant](),
		inventoryMovements:   newTable[storage.InventoryMovement](),
		cartItems:            newTable[storage.CartItem](),
		orders:               newTable[storage.Order](),
		orderItems:           newTable[storage.OrderItem](),
		customers:            newTable[storage.Customer](),
		customerAddresses:    newTable[storage.CustomerAddress](),
		payments:             newTable[storage.Payment](),
		shipments:            newTable[storage.Shipment](),
		reservations:         newTable[storage.Reservation](),
		reservationSettings:  newTable[storage.ReservationSettings](),
		paymentConfigs:       newTable[storage.PaymentConfig](),
		emailConfigs:         newTable[storage.EmailConfig](),
		sections:             newTable[storage.Section](),
		blogPosts:            newTable[storage.BlogPost](),
		pageCustomizations:   newTable[storage.PageCustomization](),
		visualCustomizations: newTable[storage.VisualCustomization](),
	}
}

// next returns the insertion sequence number. Callers hold mu.
func (s *Store) next() uint64 {
	s.seq++
	return s.seq
}

// Close is a no-op; it lets the selector treat both backends alike.
func (s *Store) Close() {}
