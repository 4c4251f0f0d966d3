package backend

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront/internal/config"
	"github.com/ariefcatur/go-storefront/internal/logx"
	"github.com/ariefcatur/go-storefront/internal/storage"
	"github.com/ariefcatur/go-storefront/internal/storage/memstore"
)

type fakePersistent struct {
	*memstore.Store
	pingErr error
	closed  atomic.Bool
}

func (f *fakePersistent) Ping(context.Context) error { return f.pingErr }
func (f *fakePersistent) Close() { f.closed.Store(true) }

func cfgFor(kind string) config.Config {
	return config.Config{StorageType: kind, Postgres: config.Postgres{DSN: "postgres://x", ConnectTimeout: time.Second}}
}

func TestFallbackWhenFactoryFails(t *testing.T) {
	calls := 0
	s := NewSelector(cfgFor(KindDatabase), logx.Discard(), WithPersistentFactory(
		func(context.Context, config.Postgres, *slog.Logger) (Persistent, error) {
			calls++
			return nil, errors.New("connection refused")
		}))

	st := s.Get(context.Background())
	require.NotNil(t, st)
	require.IsType(t, &memstore.Store{}, st)
	require.Equal(t, KindMemory, s.Kind())
	require.NoError(t, s.Ping(context.Background()))
	s.Get(context.Background())
	require.Equal(t, 1, calls)
	s.Close()
}

func TestDatabaseWhenFactorySucceeds(t *testing.T) {
	fp := &fakePersistent{Store: memstore.New()}
	s := NewSelector(cfgFor(KindDatabase), logx.Discard(), WithPersistentFactory(
		func(_ context.Context, pg config.Postgres, _ *slog.Logger) (Persistent, error) {
			require.Equal(t, "postgres://x", pg.DSN)
			return fp, nil
		}))

	require.Same(t, fp, s.Get(context.Background()).(*fakePersistent))
	require.Equal(t, KindDatabase, s.Kind())

	fp.pingErr = errors.New("down")
	require.Error(t, s.Ping(context.Background()))

	s.Close()
	require.True(t, fp.closed.Load())
}

func TestMemoryModes(t *testing.T) {
	for _, kind := range []string{"", KindMemory, "sqlite"} {
		s := NewSelector(cfgFor(kind), logx.Discard(), WithPersistentFactory(
			func(context.Context, config.Postgres, *slog.Logger) (Persistent, error) {
				t.Fatal("factory must not be called")
				return nil, nil
			}))
		require.Equal(t, KindMemory, s.Kind(), kind)
	}
}

func TestSameInstanceAcrossGoroutines(t *testing.T) {
	var calls atomic.Int32
	s := NewSelector(cfgFor(KindDatabase), logx.Discard(), WithPersistentFactory(
		func(context.Context, config.Postgres, *slog.Logger) (Persistent, error) {
			calls.Add(1)
			return &fakePersistent{Store: memstore.New()}, nil
		}))

	got := make([]storage.Storage, 32)
	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = s.Get(context.Background())
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for _, st := range got {
		require.Same(t, got[0].(*fakePersistent), st.(*fakePersistent))
	}
}

func TestUnreachableDatabaseFallsBack(t *testing.T) {
	cfg := config.Config{StorageType: KindDatabase, Postgres: config.Postgres{
		DSN:            "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1",
		MaxConns:       2,
		ConnectTimeout: 2 * time.Second,
	}}
	s := NewSelector(cfg, logx.Discard())

	require.NotPanics(t, func() { s.Get(context.Background()) })
	require.Equal(t, KindMemory, s.Kind())
	s.Close()
}
