package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront/internal/logx"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	fail   bool
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return errors.New("broker down")
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestProducerFlushesOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, 16, logx.Discard())
	p.Start(context.Background())

	p.Publish([]byte("o1"), []byte(`{"a":1}`), kafka.Header{Key: "x-event-type", Value: []byte("OrderCreated")})
	p.Publish([]byte("o2"), []byte(`{"a":2}`))
	p.Close()
	p.WaitClosed()

	require.True(t, w.closed)
	require.Len(t, w.msgs, 2)
	require.Equal(t, "o1", string(w.msgs[0].Key))
	require.Equal(t, "x-event-type", w.msgs[0].Headers[0].Key)
}

func TestProducerSurvivesWriteErrors(t *testing.T) {
	w := &fakeWriter{fail: true}
	p := NewProducerWithWriter(w, 4, logx.Discard())
	p.Start(context.Background())
	p.Publish([]byte("k"), []byte("v"))
	p.Close()
	p.WaitClosed()
	require.True(t, w.closed)
	require.Empty(t, w.msgs)
}

func TestPublishDropsWhenFull(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, 1, logx.Discard())
	p.Publish([]byte("a"), nil)
	p.Publish([]byte("b"), nil)
	p.Start(context.Background())
	p.Close()
	p.WaitClosed()
	require.Len(t, w.msgs, 1)
	require.Equal(t, "a", string(w.msgs[0].Key))
}

func TestUnwrapPayload(t *testing.T) {
	type payload struct {
		ID string `json:"id"`
	}
	got, err := UnwrapPayload[payload](MustMarshal(payload{ID: "x"}))
	require.NoError(t, err)
	require.Equal(t, "x", got.ID)

	_, err = UnwrapPayload[payload]([]byte("{"))
	require.ErrorContains(t, err, "decode payload")
}
