package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

func reservationNewest(r *storage.Reservation) time.Time { return r.CreatedAt }

func (s *Store) ListReservations(_ context.Context) ([]storage.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.reservations.scan(nil), reservationNewest), nil
}

func (s *Store) GetReservation(_ context.Context, id string) (*storage.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reservations.get(id), nil
}

func (s *Store) ListUserReservations(_ context.Context, userID string) ([]storage.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.reservations.scan(func(r *storage.Reservation) bool { return r.UserID != nil && *r.UserID == userID })
	return newestFirst(rows, reservationNewest), nil
}

func (s *Store) CreateReservation(_ context.Context, r storage.Reservation) (*storage.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	r.ID, r.CreatedAt, r.UpdatedAt = storage.NewID(), now, now
	return s.reservations.insert(s.next(), r.ID, r), nil
}

func (s *Store) UpdateReservation(_ context.Context, id string, p storage.Patch) (*storage.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations.patch(id, p.Only(storage.ReservationMutableFields...), storage.Now())
}

func (s *Store) DeleteReservation(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations.delete(id), nil
}

func (s *Store) ListReservationsForDate(_ context.Context, date string) ([]storage.Reservation, error) {
	day, err := time.Parse(storage.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("list reservations for date: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.reservations.scan(func(r *storage.Reservation) bool {
		return r.Status == storage.ReservationConfirmed && r.Date.UTC().Format(storage.DateLayout) == day.Format(storage.DateLayout)
	})
	return oldestFirst(rows, func(r *storage.Reservation) time.Time { return r.Date }), nil
}

// Reservation settings

func (s *Store) GetReservationSettings(_ context.Context) (*storage.ReservationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSettings(), nil
}

// currentSettings returns the latest settings row, inserting the defaults
// when there is none. Callers hold mu for writing.
func (s *Store) currentSettings() *storage.ReservationSettings {
	rows := newestFirst(s.reservationSettings.scan(nil), func(r *storage.ReservationSettings) time.Time { return r.UpdatedAt })
	if len(rows) > 0 {
		return &rows[0]
	}
	def := storage.DefaultReservationSettings()
	now := storage.Now()
	def.ID, def.CreatedAt, def.UpdatedAt = storage.NewID(), now, now
	return s.reservationSettings.insert(s.next(), def.ID, def)
}

func (s *Store) CreateReservationSettings(_ context.Context, rs storage.ReservationSettings) (*storage.ReservationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	rs.ID, rs.CreatedAt, rs.UpdatedAt = storage.NewID(), now, now
	return s.reservationSettings.insert(s.next(), rs.ID, rs), nil
}

func (s *Store) UpdateReservationSettings(_ context.Context, p storage.Patch) (*storage.ReservationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.currentSettings()
	return s.reservationSettings.patch(current.ID, p, storage.Now())
}

// Payment config

func (s *Store) GetPaymentConfig(_ context.Context) (*storage.PaymentConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paymentConfigs.find(nil), nil
}

func (s *Store) UpdatePaymentConfig(_ context.Context, c storage.PaymentConfig) (*storage.PaymentConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	if existing := s.paymentConfigs.find(nil); existing != nil {
		c.ID, c.CreatedAt, c.UpdatedAt = existing.ID, existing.CreatedAt, now
		return s.paymentConfigs.replace(c.ID, c), nil
	}
	c.ID, c.CreatedAt, c.UpdatedAt = storage.NewID(), now, now
	return s.paymentConfigs.insert(s.next(), c.ID, c), nil
}

// Email config

func (s *Store) latestEmailConfig() *storage.EmailConfig {
	rows := newestFirst(s.emailConfigs.scan(nil), func(c *storage.EmailConfig) time.Time { return c.UpdatedAt })
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

func (s *Store) GetEmailConfig(_ context.Context) (*storage.EmailConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestEmailConfig(), nil
}

func (s *Store) UpdateEmailConfig(_ context.Context, c storage.EmailConfig) (*storage.EmailConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	if existing := s.latestEmailConfig(); existing != nil {
		c.ID, c.CreatedAt, c.UpdatedAt = existing.ID, existing.CreatedAt, now
		return s.emailConfigs.replace(c.ID, c), nil
	}
	c.ID, c.CreatedAt, c.UpdatedAt = storage.NewID(), now, now
	return s.emailConfigs.insert(s.next(), c.ID, c), nil
}

func (s *Store) UpdateEmailTestStatus(_ context.Context, status storage.EmailTestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.latestEmailConfig()
	if existing == nil {
		return nil
	}
	now := storage.Now()
	rec := s.emailConfigs.rows[existing.ID]
	rec.val.TestStatus = status
	rec.val.LastTested = &now
	rec.val.UpdatedAt = now
	return nil
}
