// Package backend chooses the storage backend once per process.
package backend

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ariefcatur/go-storefront/internal/config"
	"github.com/ariefcatur/go-storefront/internal/storage"
	"github.com/ariefcatur/go-storefront/internal/storage/memstore"
	"github.com/ariefcatur/go-storefront/internal/storage/pgstore"
)

const (
	KindDatabase = config.StorageDatabase
	KindMemory   = config.StorageMemory
)

// Persistent is a storage backend holding external resources.
type Persistent interface {
	storage.Storage
	Ping(ctx context.Context) error
	Close()
}

// Factory opens the persistent backend.
type Factory func(ctx context.Context, cfg config.Postgres, logger *slog.Logger) (Persistent, error)

type Option func(*Selector)

// WithPersistentFactory replaces pgstore.Open as the persistent constructor.
func WithPersistentFactory(f Factory) Option {
	return func(s *Selector) { s.factory = f }
}

type Selector struct {
	cfg     config.Config
	log     *slog.Logger
	factory Factory

	once  sync.Once
	store storage.Storage
	pers  Persistent
	kind  string
}

func NewSelector(cfg config.Config, logger *slog.Logger, opts ...Option) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Selector{cfg: cfg, log: logger, factory: openPostgres}
	for _, o := range opts {
		o(s)
	}
	return s
}

func openPostgres(ctx context.Context, cfg config.Postgres, logger *slog.Logger) (Persistent, error) {
	return pgstore.Open(ctx, pgstore.Options{
		DSN:            cfg.DSN,
		MaxConns:       cfg.MaxConns,
		ConnectTimeout: cfg.ConnectTimeout,
	}, logger)
}

// Get returns the process backend. The first call constructs it; later calls
// return the same instance. It never fails: a persistent backend that cannot
// be opened is replaced by the in-memory one.
func (s *Selector) Get(ctx context.Context) storage.Storage {
	s.once.Do(func() { s.choose(ctx) })
	return s.store
}

func (s *Selector) choose(ctx context.Context) {
	switch s.cfg.StorageType {
	case KindDatabase:
		p, err := s.factory(ctx, s.cfg.Postgres, s.log)
		if err == nil {
			s.store, s.pers, s.kind = p, p, KindDatabase
			s.log.Info("storage backend selected", "kind", KindDatabase)
			return
		}
		s.log.Warn("database unavailable, falling back to in-memory storage", "err", err)
	case KindMemory, "":
	default:
		s.log.Warn("unknown storage type, using in-memory storage", "storage_type", s.cfg.StorageType)
	}
	s.store, s.kind = memstore.New(), KindMemory
	s.log.Info("storage backend selected", "kind", KindMemory)
}

// Kind reports the chosen backend, selecting it if needed.
func (s *Selector) Kind() string {
	s.Get(context.Background())
	return s.kind
}

// Ping checks the persistent backend; the in-memory one is always ready.
func (s *Selector) Ping(ctx context.Context) error {
	s.Get(ctx)
	if s.pers == nil {
		return nil
	}
	return s.pers.Ping(ctx)
}

// Close releases the persistent backend if one was opened.
func (s *Selector) Close() {
	if s.pers != nil {
		s.pers.Close()
	}
}
