package events

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/storage"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Store publishes a change event after every successful write to orders,
// reservations and contact messages. Everything else passes through.
type Store struct {
	storage.Storage
	pub      Publisher
	producer string
	log      *slog.Logger
}

var _ storage.Storage = (*Store)(nil)

func New(inner storage.Storage, pub Publisher, producer string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{Storage: inner, pub: pub, producer: producer, log: logger}
}

func (s *Store) emit(ctx context.Context, eventType, id string, payload any) {
	env := newEnvelope(eventType, s.producer, middleware.GetReqID(ctx), id, kafka.MustMarshal(payload))
	s.pub.Publish([]byte(id), kafka.MustMarshal(env),
		kafkago.Header{Key: HeaderEventType, Value: []byte(eventType)},
		kafkago.Header{Key: HeaderEventVersion, Value: []byte(strconv.Itoa(Version))},
	)
	s.log.Debug("event published", "type", eventType, "id", id, "event_id", env.EventID)
}

// Orders

func (s *Store) CreateOrder(ctx context.Context, o storage.Order) (*storage.Order, error) {
	out, err := s.Storage.CreateOrder(ctx, o)
	if err == nil && out != nil {
		s.emit(ctx, EventOrderCreated, out.ID, out)
	}
	return out, err
}

func (s *Store) UpdateOrder(ctx context.Context, id string, p storage.Patch) (*storage.Order, error) {
	out, err := s.Storage.UpdateOrder(ctx, id, p)
	if err == nil && out != nil {
		s.emit(ctx, EventOrderUpdated, out.ID, out)
	}
	return out, err
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status storage.OrderStatus) (*storage.Order, error) {
	out, err := s.Storage.UpdateOrderStatus(ctx, id, status)
	if err == nil && out != nil {
		s.emit(ctx, EventOrderUpdated, out.ID, out)
	}
	return out, err
}

func (s *Store) DeleteOrder(ctx context.Context, id string) (bool, error) {
	ok, err := s.Storage.DeleteOrder(ctx, id)
	if err == nil && ok {
		s.emit(ctx, EventOrderDeleted, id, DeletedPayload{ID: id})
	}
	return ok, err
}

// Reservations

func (s *Store) CreateReservation(ctx context.Context, r storage.Reservation) (*storage.Reservation, error) {
	out, err := s.Storage.CreateReservation(ctx, r)
	if err == nil && out != nil {
		s.emit(ctx, EventReservationCreated, out.ID, out)
	}
	return out, err
}

func (s *Store) UpdateReservation(ctx context.Context, id string, p storage.Patch) (*storage.Reservation, error) {
	out, err := s.Storage.UpdateReservation(ctx, id, p)
	if err == nil && out != nil {
		s.emit(ctx, EventReservationUpdated, out.ID, out)
	}
	return out, err
}

func (s *Store) DeleteReservation(ctx context.Context, id string) (bool, error) {
	ok, err := s.Storage.DeleteReservation(ctx, id)
	if err == nil && ok {
		s.emit(ctx, EventReservationDeleted, id, DeletedPayload{ID: id})
	}
	return ok, err
}

// Contact messages

func (s *Store) CreateContactMessage(ctx context.Context, m storage.ContactMessage) (*storage.ContactMessage, error) {
	out, err := s.Storage.CreateContactMessage(ctx, m)
	if err == nil && out != nil {
		s.emit(ctx, EventContactMessageCreated, out.ID, out)
	}
	return out, err
}
