package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("output.conversations_dir", "notes/conv"))
	require.NoError(t, store.Set("journal.enabled", true))

	val, ok := store.Get("output.conversations_dir")
	assert.True(t, ok)
	assert.Equal(t, "notes/conv", val)
	assert.Equal(t, "notes/conv", store.GetString("output.conversations_dir"))
	assert.True(t, store.GetBool("journal.enabled"))
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("display.timezone", "UTC"))
	require.NoError(t, store.Set("display.timezone", "Europe/Berlin"))

	assert.Equal(t, "Europe/Berlin", store.GetString("display.timezone"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("journal.enabled", "yes"))
	require.NoError(t, store.Set("log.format", 42))

	assert.False(t, store.GetBool("journal.enabled"))
	assert.Empty(t, store.GetString("log.format"))
}

func TestConfigStore_Missing(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("key", "value")
		}()
		go func() {
			defer wg.Done()
			_ = store.GetString("key")
		}()
	}
	wg.Wait()

	assert.Equal(t, "value", store.GetString("key"))
}
