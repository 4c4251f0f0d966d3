package redisx

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestClaimAndExists(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := New(mr.Addr())
	defer rdb.Close()
	ctx := context.Background()
	key := fmt.Sprintf(KeyDedup, "changefeed", "evt-1")

	ok, err := Exists(ctx, rdb, key)
	require.NoError(t, err)
	require.False(t, ok)

	first, err := Claim(ctx, rdb, key, TTLDedup)
	require.NoError(t, err)
	require.True(t, first)
	second, err := Claim(ctx, rdb, key, TTLDedup)
	require.NoError(t, err)
	require.False(t, second)

	ok, err = Exists(ctx, rdb, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, TTLDedup, mr.TTL(key))
}
