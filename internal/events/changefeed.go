package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/storage"
)

// Changefeed consumes change events and keeps small Redis projections of
// them: order status by id, reservation status by id and a capped inbox of
// contact message ids.
type Changefeed struct {
	Redis    *redis.Client
	Consumer string // dedup namespace
	Log      *slog.Logger
}

// Handle is installed as the kafka.Consumer handler.
func (c *Changefeed) Handle(ctx context.Context, m kafkago.Message) error {
	var env Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// a poison message is logged and committed
		c.Log.Warn("changefeed: bad envelope", "offset", m.Offset, "err", err)
		return nil
	}

	fresh, err := redisx.Claim(ctx, c.Redis, fmt.Sprintf(redisx.KeyDedup, c.Consumer, env.EventID), redisx.TTLDedup)
	if err != nil {
		return fmt.Errorf("dedup %s: %w", env.EventID, err)
	}
	if !fresh {
		c.Log.Debug("changefeed: duplicate", "event_id", env.EventID)
		return nil
	}

	if err := c.apply(ctx, env); err != nil {
		// release the claim so a redelivery is processed
		c.Redis.Del(ctx, fmt.Sprintf(redisx.KeyDedup, c.Consumer, env.EventID))
		return err
	}
	c.Log.Info("changefeed", "type", env.EventType, "id", env.CorrelationID,
		"event_id", env.EventID, "trace_id", env.TraceID)
	return nil
}

func (c *Changefeed) apply(ctx context.Context, env Envelope) error {
	switch env.EventType {
	case EventOrderCreated, EventOrderUpdated:
		o, err := kafka.UnwrapPayload[storage.Order](env.Payload)
		if err != nil {
			return err
		}
		return c.Redis.HSet(ctx, redisx.KeyOrderStatus, o.ID, string(o.Status)).Err()
	case EventOrderDeleted:
		d, err := kafka.UnwrapPayload[DeletedPayload](env.Payload)
		if err != nil {
			return err
		}
		return c.Redis.HDel(ctx, redisx.KeyOrderStatus, d.ID).Err()
	case EventReservationCreated, EventReservationUpdated:
		r, err := kafka.UnwrapPayload[storage.Reservation](env.Payload)
		if err != nil {
			return err
		}
		return c.Redis.HSet(ctx, redisx.KeyReservations, r.ID, string(r.Status)).Err()
	case EventReservationDeleted:
		d, err := kafka.UnwrapPayload[DeletedPayload](env.Payload)
		if err != nil {
			return err
		}
		return c.Redis.HDel(ctx, redisx.KeyReservations, d.ID).Err()
	case EventContactMessageCreated:
		msg, err := kafka.UnwrapPayload[storage.ContactMessage](env.Payload)
		if err != nil {
			return err
		}
		_, err = c.Redis.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.LPush(ctx, redisx.KeyInbox, msg.ID)
			p.LTrim(ctx, redisx.KeyInbox, 0, redisx.InboxMax-1)
			return nil
		})
		return err
	default:
		c.Log.Debug("changefeed: ignored", "type", env.EventType)
		return nil
	}
}
