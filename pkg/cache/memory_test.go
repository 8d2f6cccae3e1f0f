package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, KeyMarketProvince, []string{"Sancti Spiritus", "Villa Clara"}, time.Minute))

	var got []string
	found, err := c.Get(ctx, KeyMarketProvince, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Sancti Spiritus", "Villa Clara"}, got)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	require.NoError(t, c.Set(ctx, "k", 1, time.Second))

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	var v int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "agromap:admin:stats", 1, 0))
	require.NoError(t, c.Set(ctx, "agromap:markets:provinces", 2, 0))

	require.NoError(t, c.DeletePattern(ctx, "agromap:admin:*"))

	var v int
	found, _ := c.Get(ctx, "agromap:admin:stats", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, "agromap:markets:provinces", &v)
	assert.True(t, found)
}
