package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler returns nil only when the message was processed and its offset
// may be committed.
type Handler func(ctx context.Context, m kafka.Message) error

// Reader is the part of *kafka.Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer fans messages out to a fixed set of workers. Every partition is
// owned by one worker, so messages of a partition are handled and committed
// in offset order. A failing message is retried with backoff until it
// succeeds or the context ends; later messages of its partition wait.
type Consumer struct {
	r       Reader
	workers int
	log     *slog.Logger

	MinBackoff time.Duration
	MaxBackoff time.Duration
}

func NewConsumer(brokers []string, group, topic string, workers int, logger *slog.Logger) *Consumer {
	return NewConsumerWithReader(kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	}), workers, logger)
}

func NewConsumerWithReader(r Reader, workers int, logger *slog.Logger) *Consumer {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		r:          r,
		workers:    workers,
		log:        logger,
		MinBackoff: 200 * time.Millisecond,
		MaxBackoff: 10 * time.Second,
	}
}

// Start fetches messages until ctx ends or the reader fails. It waits for
// the workers to finish before closing the reader.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	queues := make([]chan kafka.Message, c.workers)
	var wg sync.WaitGroup
	for i := range queues {
		queues[i] = make(chan kafka.Message, 128)
		wg.Add(1)
		go func(q <-chan kafka.Message) {
			defer wg.Done()
			for m := range q {
				if !c.process(ctx, h, m) {
					return
				}
			}
		}(queues[i])
	}

	err := c.fetch(ctx, queues)
	for _, q := range queues {
		close(q)
	}
	wg.Wait()
	if cerr := c.r.Close(); cerr != nil {
		c.log.Warn("kafka reader close", "err", cerr)
	}
	return err
}

func (c *Consumer) fetch(ctx context.Context, queues []chan kafka.Message) error {
	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case queues[m.Partition%len(queues)] <- m:
		case <-ctx.Done():
			return nil
		}
	}
}

// process handles and commits m, retrying until it succeeds. It reports
// false when ctx ended first; m is then left uncommitted for redelivery.
func (c *Consumer) process(ctx context.Context, h Handler, m kafka.Message) bool {
	backoff := c.MinBackoff
	for {
		err := h(ctx, m)
		if err == nil {
			err = c.r.CommitMessages(ctx, m)
		}
		if err == nil {
			return true
		}
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return false
		}
		c.log.Warn("consumer retry", "partition", m.Partition, "offset", m.Offset, "backoff", backoff, "err", err)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return false
		}
		backoff = min(backoff*2, c.MaxBackoff)
	}
}
