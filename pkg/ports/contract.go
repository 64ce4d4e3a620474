package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentCacheContract runs a suite of tests to verify that a DocumentCache
// implementation adheres to the defined interface contract.
func RunDocumentCacheContract(t *testing.T, cache DocumentCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		payload := []byte(`{"rules":[]}`)

		err := cache.Set(ctx, key, payload)
		require.NoError(t, err, "Set should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, payload, got)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := cache.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, []byte("first")))
		require.NoError(t, cache.Set(ctx, key, []byte("second")))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("Isolation", func(t *testing.T) {
		payload := []byte("original")
		require.NoError(t, cache.Set(ctx, key, payload))
		payload[0] = 'X'

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "original", string(got), "cache must not alias caller buffers")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, []byte("data")))

		err := cache.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Deleting a missing key is not an error")
	})
}
