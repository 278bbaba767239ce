package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisStore(t *testing.T) {
	t.Run("valid url", func(t *testing.T) {
		store, err := NewRedisStore("redis://localhost:6379/2", "pension:")
		require.NoError(t, err)
		defer store.Close()

		assert.Equal(t, "pension:analysis:abc", store.key("analysis:abc"))
	})

	t.Run("invalid scheme", func(t *testing.T) {
		_, err := NewRedisStore("http://localhost:6379", "")
		assert.Error(t, err)
	})
}
