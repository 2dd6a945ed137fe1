package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Names []string `json:"names"`
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	var got snapshot
	found, err := c.Get(ctx, CustomersKey("all"), &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, CustomersKey("all"), snapshot{Names: []string{"Ana", "Budi"}}))
	found, err = c.Get(ctx, CustomersKey("all"), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Ana", "Budi"}, got.Names)

	require.NoError(t, c.Delete(ctx, CustomersKey("all"), PaymentsKey("2025-03")))
	found, _ = c.Get(ctx, CustomersKey("all"), &got)
	assert.False(t, found)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Hour)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, PaymentsKey("2025-03"), snapshot{Names: []string{"x"}}))

	now = now.Add(59 * time.Minute)
	var got snapshot
	found, _ := c.Get(ctx, PaymentsKey("2025-03"), &got)
	assert.True(t, found)

	now = now.Add(2 * time.Minute)
	found, _ = c.Get(ctx, PaymentsKey("2025-03"), &got)
	assert.False(t, found)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "customers:due:10", CustomersKey("due:10"))
	assert.Equal(t, "payments:2025-03", PaymentsKey("2025-03"))
}
