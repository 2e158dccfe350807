package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/pkg/errors"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "weather_alerts")
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, store.Set(ctx, "weather_alerts", []byte(`[]`)))
	data, err := store.Get(ctx, "weather_alerts")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)

	require.NoError(t, store.Delete(ctx, "weather_alerts"))
	_, err = store.Get(ctx, "weather_alerts")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestMemoryStore_ValueIsCopied(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	value := []byte(`{"a":1}`)

	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'X'

	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestMemoryStore_Validation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "")
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsValidationError(store.Set(ctx, "", []byte("x"))))
	assert.True(t, errors.IsValidationError(store.Set(ctx, "k", nil)))
	assert.True(t, errors.IsValidationError(store.Delete(ctx, "")))
	assert.NoError(t, store.Ping(ctx))
	assert.NoError(t, store.Close())
}
