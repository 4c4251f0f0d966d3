package redisx

import "time"

const (
	// Read-through cache of the single-row configuration entities.
	KeySiteConfig          = "storefront:site_config"
	KeyContactInfo         = "storefront:contact_info"
	KeyReservationSettings = "storefront:reservation_settings"

	// Dedup of consumed change events: dedup:{consumer}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLConfigCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)

const (
	// Projections maintained by the changefeed consumer.
	KeyOrderStatus  = "storefront:order_status"  // hash order_id -> status
	KeyReservations = "storefront:reservations"  // hash reservation_id -> status
	KeyInbox        = "storefront:contact_inbox" // newest first, capped
	InboxMax        = 100
)
