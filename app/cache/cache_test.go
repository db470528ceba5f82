package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCache(t *testing.T) {
	c, err := NewPageCache(time.Minute)
	require.NoError(t, err)

	t.Run("miss before set", func(t *testing.T) {
		_, ok := c.Get("page:index:1")
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		c.Set("page:index:1", []byte("<html>feed</html>"))
		page, ok := c.Get("page:index:1")
		assert.True(t, ok)
		assert.Equal(t, []byte("<html>feed</html>"), page)
	})

	t.Run("clear drops everything", func(t *testing.T) {
		c.Set("page:index:1", []byte("one"))
		c.Set("page:index:2", []byte("two"))
		c.Clear()

		_, ok := c.Get("page:index:1")
		assert.False(t, ok)
		_, ok = c.Get("page:index:2")
		assert.False(t, ok)
	})
}

func TestPageCacheExpiry(t *testing.T) {
	c, err := NewPageCache(50 * time.Millisecond)
	require.NoError(t, err)

	c.Set("page:index:1", []byte("stale soon"))
	_, ok := c.Get("page:index:1")
	require.True(t, ok)

	time.Sleep(100 * time.Millisecond)
	_, ok = c.Get("page:index:1")
	assert.False(t, ok)
}
