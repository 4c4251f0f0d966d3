// Package cache wraps a storage backend with a Redis read-through cache for
// the single-row configuration entities. Every other operation goes
// straight to the wrapped backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/storage"
)

type Store struct {
	storage.Storage

	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

// New wraps inner. ttl <= 0 uses redisx.TTLConfigCache.
func New(inner storage.Storage, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = redisx.TTLConfigCache
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{Storage: inner, rdb: rdb, ttl: ttl, log: logger}
}

// genKey counts the writes to the row cached under key.
func genKey(key string) string { return key + ":gen" }

// readThrough serves key from Redis or loads it and fills the cache. Redis
// failures are logged and the wrapped backend answers.
//
// The fill only happens when no write bumped the generation of key between
// the generation read before the load and the SET, so a load racing with a
// write never caches the pre-write row.
func readThrough[T any](ctx context.Context, s *Store, key string, load func(context.Context) (*T, error)) (*T, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		derr := json.Unmarshal(raw, &v)
		if derr == nil {
			return &v, nil
		}
		s.log.Warn("cache decode", "key", key, "err", derr)
	case !errors.Is(err, redis.Nil):
		s.log.Warn("cache get", "key", key, "err", err)
		return load(ctx)
	}

	gen, err := generation(ctx, s.rdb, key)
	if err != nil {
		s.log.Warn("cache generation", "key", key, "err", err)
		return load(ctx)
	}
	v, err := load(ctx)
	if err != nil || v == nil {
		return v, err
	}
	raw, err = json.Marshal(v)
	if err != nil {
		return v, nil
	}
	err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := generation(ctx, tx, key)
		if err != nil {
			return err
		}
		if cur != gen {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, raw, s.ttl)
			return nil
		})
		return err
	}, genKey(key))
	switch {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		s.log.Debug("cache fill skipped, row changed during load", "key", key)
	default:
		s.log.Warn("cache set", "key", key, "err", err)
	}
	return v, nil
}

var errStale = errors.New("cache: generation changed")

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, c getter, key string) (int64, error) {
	n, err := c.Get(ctx, genKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// invalidate bumps the generation of key and drops it after a successful
// write.
func (s *Store) invalidate(ctx context.Context, key string, err error) {
	if err != nil {
		return
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey(key))
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		s.log.Warn("cache invalidate", "key", key, "err", err)
	}
}

func (s *Store) GetSiteConfig(ctx context.Context) (*storage.SiteConfig, error) {
	return readThrough(ctx, s, redisx.KeySiteConfig, s.Storage.GetSiteConfig)
}

func (s *Store) CreateSiteConfig(ctx context.Context, c storage.SiteConfig) (*storage.SiteConfig, error) {
	out, err := s.Storage.CreateSiteConfig(ctx, c)
	s.invalidate(ctx, redisx.KeySiteConfig, err)
	return out, err
}

func (s *Store) UpdateSiteConfig(ctx context.Context, id string, p storage.Patch) (*storage.SiteConfig, error) {
	out, err := s.Storage.UpdateSiteConfig(ctx, id, p)
	s.invalidate(ctx, redisx.KeySiteConfig, err)
	return out, err
}

func (s *Store) GetContactInfo(ctx context.Context) (*storage.ContactInfo, error) {
	return readThrough(ctx, s, redisx.KeyContactInfo, s.Storage.GetContactInfo)
}

func (s *Store) CreateContactInfo(ctx context.Context, info storage.ContactInfo) (*storage.ContactInfo, error) {
	out, err := s.Storage.CreateContactInfo(ctx, info)
	s.invalidate(ctx, redisx.KeyContactInfo, err)
	return out, err
}

func (s *Store) UpdateContactInfo(ctx context.Context, id string, p storage.Patch) (*storage.ContactInfo, error) {
	out, err := s.Storage.UpdateContactInfo(ctx, id, p)
	s.invalidate(ctx, redisx.KeyContactInfo, err)
	return out, err
}

func (s *Store) GetReservationSettings(ctx context.Context) (*storage.ReservationSettings, error) {
	return readThrough(ctx, s, redisx.KeyReservationSettings, s.Storage.GetReservationSettings)
}

func (s *Store) CreateReservationSettings(ctx context.Context, rs storage.ReservationSettings) (*storage.ReservationSettings, error) {
	out, err := s.Storage.CreateReservationSettings(ctx, rs)
	s.invalidate(ctx, redisx.KeyReservationSettings, err)
	return out, err
}

func (s *Store) UpdateReservationSettings(ctx context.Context, p storage.Patch) (*storage.ReservationSettings, error) {
	out, err := s.Storage.UpdateReservationSettings(ctx, p)
	s.invalidate(ctx, redisx.KeyReservationSettings, err)
	return out, err
}
