package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront/internal/logx"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	next      int
	fetchErr  error
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if r.next < len(r.msgs) {
		m := r.msgs[r.next]
		r.next++
		r.mu.Unlock()
		return m, nil
	}
	err := r.fetchErr
	r.mu.Unlock()
	if err != nil {
		return kafka.Message{}, err
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) commits() []kafka.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]kafka.Message(nil), r.committed...)
}

func msg(partition int, offset int64) kafka.Message {
	return kafka.Message{Partition: partition, Offset: offset}
}

func offsetsByPartition(msgs []kafka.Message) map[int][]int64 {
	out := map[int][]int64{}
	for _, m := range msgs {
		out[m.Partition] = append(out[m.Partition], m.Offset)
	}
	return out
}

func run(t *testing.T, c *Consumer, h Handler) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx, h) }()
	t.Cleanup(cancel)
	return cancel, done
}

func TestConsumerKeepsPartitionOrder(t *testing.T) {
	r := &fakeReader{msgs: []kafka.Message{msg(0, 0), msg(1, 0), msg(0, 1), msg(1, 1), msg(0, 2)}}
	c := NewConsumerWithReader(r, 4, logx.Discard())

	var mu sync.Mutex
	var handled []kafka.Message
	cancel, done := run(t, c, func(_ context.Context, m kafka.Message) error {
		if m.Partition == 0 && m.Offset == 0 {
			time.Sleep(20 * time.Millisecond)
		}
		mu.Lock()
		handled = append(handled, m)
		mu.Unlock()
		return nil
	})

	require.Eventually(t, func() bool { return len(r.commits()) == 5 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	want := map[int][]int64{0: {0, 1, 2}, 1: {0, 1}}
	require.Equal(t, want, offsetsByPartition(handled))
	require.Equal(t, want, offsetsByPartition(r.commits()))
	require.True(t, r.closed)
}

func TestConsumerRetriesBeforeMovingOn(t *testing.T) {
	r := &fakeReader{msgs: []kafka.Message{msg(0, 0), msg(0, 1)}}
	c := NewConsumerWithReader(r, 2, logx.Discard())
	c.MinBackoff, c.MaxBackoff = time.Millisecond, 2*time.Millisecond

	var mu sync.Mutex
	attempts := map[int64]int{}
	var order []int64
	cancel, done := run(t, c, func(_ context.Context, m kafka.Message) error {
		mu.Lock()
		defer mu.Unlock()
		attempts[m.Offset]++
		if m.Offset == 0 && attempts[0] < 3 {
			return errors.New("redis down")
		}
		order = append(order, m.Offset)
		return nil
	})

	require.Eventually(t, func() bool { return len(r.commits()) == 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 3, attempts[0])
	require.Equal(t, []int64{0, 1}, order)
	require.Equal(t, map[int][]int64{0: {0, 1}}, offsetsByPartition(r.commits()))
}

func TestConsumerLeavesFailedMessageUncommittedOnShutdown(t *testing.T) {
	r := &fakeReader{msgs: []kafka.Message{msg(0, 0), msg(0, 1)}}
	c := NewConsumerWithReader(r, 1, logx.Discard())
	c.MinBackoff, c.MaxBackoff = time.Millisecond, time.Millisecond

	calls := make(chan int64, 100)
	cancel, done := run(t, c, func(_ context.Context, m kafka.Message) error {
		calls <- m.Offset
		return errors.New("always")
	})

	require.Equal(t, int64(0), <-calls)
	require.Equal(t, int64(0), <-calls)
	cancel()
	require.NoError(t, <-done)
	require.Empty(t, r.commits())
	require.True(t, r.closed)
	close(calls)
	for off := range calls {
		require.Equal(t, int64(0), off)
	}
}

func TestConsumerReturnsFetchError(t *testing.T) {
	r := &fakeReader{fetchErr: errors.New("group coordinator gone")}
	c := NewConsumerWithReader(r, 2, logx.Discard())

	err := c.Start(context.Background(), func(context.Context, kafka.Message) error { return nil })
	require.EqualError(t, err, "group coordinator gone")
	require.True(t, r.closed)
}
