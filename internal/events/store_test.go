package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront/internal/logx"
	"github.com/ariefcatur/go-storefront/internal/storage"
	"github.com/ariefcatur/go-storefront/internal/storage/memstore"
)

type sent struct {
	key     string
	env     Envelope
	headers map[string]string
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []sent
}

func (p *fakePublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	var env Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		panic(err)
	}
	h := map[string]string{}
	for _, x := range headers {
		h[x.Key] = string(x.Value)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, sent{key: string(key), env: env, headers: h})
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.env.EventType)
	}
	return out
}

func newStore(t *testing.T) (*Store, *fakePublisher) {
	t.Helper()
	pub := &fakePublisher{}
	return New(memstore.New(), pub, "storefront-test", logx.Discard()), pub
}

func TestOrderLifecycleEvents(t *testing.T) {
	s, pub := newStore(t)
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	o, err := s.CreateOrder(ctx, storage.Order{Status: storage.OrderPending, TotalCents: 1500})
	require.NoError(t, err)
	_, err = s.UpdateOrderStatus(ctx, o.ID, storage.OrderShipped)
	require.NoError(t, err)
	ok, err := s.DeleteOrder(ctx, o.ID)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, []string{EventOrderCreated, EventOrderUpdated, EventOrderDeleted}, pub.types())

	first := pub.msgs[0]
	require.Equal(t, o.ID, first.key)
	require.Equal(t, o.ID, first.env.CorrelationID)
	require.Equal(t, "storefront-test", first.env.Producer)
	require.Equal(t, "req-42", first.env.TraceID)
	require.Equal(t, Version, first.env.EventVersion)
	require.NotEmpty(t, first.env.EventID)
	require.Equal(t, EventOrderCreated, first.headers[HeaderEventType])
	require.Equal(t, "1", first.headers[HeaderEventVersion])

	var got storage.Order
	require.NoError(t, json.Unmarshal(pub.msgs[1].env.Payload, &got))
	require.Equal(t, storage.OrderShipped, got.Status)

	var del DeletedPayload
	require.NoError(t, json.Unmarshal(pub.msgs[2].env.Payload, &del))
	require.Equal(t, o.ID, del.ID)
}

func TestNoEventWithoutWrite(t *testing.T) {
	s, pub := newStore(t)
	ctx := context.Background()

	o, err := s.UpdateOrder(ctx, "missing", storage.Patch{"notes": "x"})
	require.NoError(t, err)
	require.Nil(t, o)

	ok, err := s.DeleteReservation(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	r, err := s.UpdateReservation(ctx, "missing", storage.Patch{"status": "confirmed"})
	require.NoError(t, err)
	require.Nil(t, r)

	require.Empty(t, pub.types())
}

func TestReservationAndContactEvents(t *testing.T) {
	s, pub := newStore(t)
	ctx := context.Background()

	r, err := s.CreateReservation(ctx, storage.Reservation{Name: "Ana", Status: storage.ReservationPending})
	require.NoError(t, err)
	_, err = s.UpdateReservation(ctx, r.ID, storage.Patch{"status": storage.ReservationConfirmed})
	require.NoError(t, err)
	_, err = s.CreateContactMessage(ctx, storage.ContactMessage{Name: "Bo", Message: "hi"})
	require.NoError(t, err)

	require.Equal(t, []string{EventReservationCreated, EventReservationUpdated, EventContactMessageCreated}, pub.types())
	require.Empty(t, pub.msgs[0].env.TraceID)
}

func TestReadsPassThrough(t *testing.T) {
	s, pub := newStore(t)
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, storage.Product{Name: "Mug"})
	require.NoError(t, err)
	list, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Empty(t, pub.types())
}
