package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

func (s *Store) ListReservations(ctx context.Context) ([]storage.Reservation, error) {
	return list[storage.Reservation](ctx, s.db, "list reservations", `SELECT * FROM reservations ORDER BY created_at DESC`)
}

func (s *Store) GetReservation(ctx context.Context, id string) (*storage.Reservation, error) {
	return getOne[storage.Reservation](ctx, s.db, "get reservation", `SELECT * FROM reservations WHERE id = $1`, id)
}

func (s *Store) ListUserReservations(ctx context.Context, userID string) ([]storage.Reservation, error) {
	return list[storage.Reservation](ctx, s.db, "list user reservations",
		`SELECT * FROM reservations WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (s *Store) CreateReservation(ctx context.Context, r storage.Reservation) (*storage.Reservation, error) {
	stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	return insert(ctx, s.db, "create reservation", "reservations", &r)
}

func (s *Store) UpdateReservation(ctx context.Context, id string, p storage.Patch) (*storage.Reservation, error) {
	return update[storage.Reservation](ctx, s.db, "update reservation", "reservations", id,
		p.Only(storage.ReservationMutableFields...))
}

func (s *Store) DeleteReservation(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete reservation", "reservations", id)
}

func (s *Store) ListReservationsForDate(ctx context.Context, date string) ([]storage.Reservation, error) {
	if _, err := time.Parse(storage.DateLayout, date); err != nil {
		return nil, fmt.Errorf("list reservations for date: %w", err)
	}
	return list[storage.Reservation](ctx, s.db, "list reservations for date",
		`SELECT * FROM reservations
		 WHERE (date AT TIME ZONE 'UTC')::date = $1::date AND status = $2
		 ORDER BY date ASC`, date, storage.ReservationConfirmed)
}

// Reservation settings

func (s *Store) latestSettings(ctx context.Context) (*storage.ReservationSettings, error) {
	return getOne[storage.ReservationSettings](ctx, s.db, "get reservation settings",
		`SELECT * FROM reservation_settings ORDER BY updated_at DESC LIMIT 1`)
}

// GetReservationSettings inserts the default row on first read.
func (s *Store) GetReservationSettings(ctx context.Context) (*storage.ReservationSettings, error) {
	rs, err := s.latestSettings(ctx)
	if err != nil || rs != nil {
		return rs, err
	}
	return s.CreateReservationSettings(ctx, storage.DefaultReservationSettings())
}

func (s *Store) CreateReservationSettings(ctx context.Context, rs storage.ReservationSettings) (*storage.ReservationSettings, error) {
	stamp(&rs.ID, &rs.CreatedAt, &rs.UpdatedAt)
	return insert(ctx, s.db, "create reservation settings", "reservation_settings", &rs)
}

func (s *Store) UpdateReservationSettings(ctx context.Context, p storage.Patch) (*storage.ReservationSettings, error) {
	current, err := s.GetReservationSettings(ctx)
	if err != nil {
		return nil, wrap("update reservation settings", err)
	}
	return update[storage.ReservationSettings](ctx, s.db, "update reservation settings", "reservation_settings", current.ID, p)
}

// Payment config

func (s *Store) GetPaymentConfig(ctx context.Context) (*storage.PaymentConfig, error) {
	return getOne[storage.PaymentConfig](ctx, s.db, "get payment config",
		`SELECT * FROM payment_config ORDER BY created_at ASC LIMIT 1`)
}

// UpdatePaymentConfig overwrites the existing row or inserts the first one.
func (s *Store) UpdatePaymentConfig(ctx context.Context, c storage.PaymentConfig) (*storage.PaymentConfig, error) {
	existing, err := s.GetPaymentConfig(ctx)
	if err != nil {
		return nil, wrap("update payment config", err)
	}
	if existing != nil {
		return update[storage.PaymentConfig](ctx, s.db, "update payment config", "payment_config", existing.ID, rowPatch(&c))
	}
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return insert(ctx, s.db, "create payment config", "payment_config", &c)
}

// Email config

func (s *Store) GetEmailConfig(ctx context.Context) (*storage.EmailConfig, error) {
	return getOne[storage.EmailConfig](ctx, s.db, "get email config",
		`SELECT * FROM email_config ORDER BY updated_at DESC LIMIT 1`)
}

func (s *Store) UpdateEmailConfig(ctx context.Context, c storage.EmailConfig) (*storage.EmailConfig, error) {
	existing, err := s.GetEmailConfig(ctx)
	if err != nil {
		return nil, wrap("update email config", err)
	}
	if existing != nil {
		return update[storage.EmailConfig](ctx, s.db, "update email config", "email_config", existing.ID, rowPatch(&c))
	}
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return insert(ctx, s.db, "create email config", "email_config", &c)
}

// UpdateEmailTestStatus records the outcome on the current row; without a
// row it does nothing.
func (s *Store) UpdateEmailTestStatus(ctx context.Context, status storage.EmailTestStatus) error {
	existing, err := s.GetEmailConfig(ctx)
	if err != nil {
		return wrap("update email test status", err)
	}
	if existing == nil {
		return nil
	}
	now := storage.Now()
	_, err = s.db.Exec(ctx, `UPDATE email_config SET test_status = $1, last_tested = $2, updated_at = $2 WHERE id = $3`,
		string(status), now, existing.ID)
	if err != nil {
		return wrap("update email test status", err)
	}
	return nil
}

// rowPatch turns a full row into a patch of all its columns.
func rowPatch[T any](v *T) storage.Patch {
	cols := storage.Columns[T]()
	vals := columnValues(v)
	p := make(storage.Patch, len(cols))
	for i, c := range cols {
		p[c] = vals[i]
	}
	return p
}
