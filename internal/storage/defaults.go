package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlogAuthorName is attached to every blog post returned by a backend.
const BlogAuthorName = "Admin"

// DateLayout is the format of the day argument of ListReservationsForDate.
const DateLayout = "2006-01-02"

// NewID returns a fresh row identifier.
func NewID() string { return uuid.NewString() }

// Now is the timestamp source for created_at/updated_at.
func Now() time.Time { return time.Now().UTC() }

// NewOrderNumber formats a human readable order number: ORD-<unix ms>-<5 chars>.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:5]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

// DefaultReservationSettings is the row created when settings are read
// before any have been stored.
func DefaultReservationSettings() ReservationSettings {
	weekday := DayHours{Enabled: true, Open: "09:00", Close: "17:00"}
	weekend := DayHours{Enabled: false, Open: "09:00", Close: "17:00"}
	return ReservationSettings{
		BusinessHours: map[string]DayHours{
			"monday":    weekday,
			"tuesday":   weekday,
			"wednesday": weekday,
			"thursday":  weekday,
			"friday":    weekday,
			"saturday":  weekend,
			"sunday":    weekend,
		},
		DefaultDuration: 60,
		BufferTime:      15,
		MaxAdvanceDays:  30,
		AllowedServices: []string{"Consulta general", "Cita especializada", "Reunión"},
		IsActive:        true,
	}
}
