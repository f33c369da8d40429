package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorKey(t *testing.T) {
	secret := []byte("test-visitor-secret")

	t.Run("deterministic", func(t *testing.T) {
		k1, err := VisitorKey(secret, "visitor-1")
		require.NoError(t, err)
		k2, err := VisitorKey(secret, "visitor-1")
		require.NoError(t, err)

		assert.Equal(t, k1, k2)
		assert.Len(t, k1, 64) // hex of 32 bytes
	})

	t.Run("different visitors", func(t *testing.T) {
		k1, err := VisitorKey(secret, "visitor-1")
		require.NoError(t, err)
		k2, err := VisitorKey(secret, "visitor-2")
		require.NoError(t, err)

		assert.NotEqual(t, k1, k2)
	})

	t.Run("different secrets", func(t *testing.T) {
		k1, err := VisitorKey([]byte("secret-a"), "visitor-1")
		require.NoError(t, err)
		k2, err := VisitorKey([]byte("secret-b"), "visitor-1")
		require.NoError(t, err)

		assert.NotEqual(t, k1, k2)
	})

	t.Run("raw id is not embedded", func(t *testing.T) {
		k, err := VisitorKey(secret, "visitor-1")
		require.NoError(t, err)
		assert.NotContains(t, k, "visitor-1")
	})

	t.Run("long secret", func(t *testing.T) {
		long := []byte(strings.Repeat("s", 200))
		k, err := VisitorKey(long, "visitor-1")
		require.NoError(t, err)
		assert.Len(t, k, 64)
	})

	t.Run("empty inputs", func(t *testing.T) {
		_, err := VisitorKey(nil, "visitor-1")
		assert.Error(t, err)
		_, err = VisitorKey(secret, "")
		assert.Error(t, err)
	})
}

func TestKeyer(t *testing.T) {
	secret := []byte("keyer-secret")
	keyer, err := NewKeyer(secret)
	require.NoError(t, err)

	// Изменение исходного среза не влияет на Keyer
	secret[0] = 'X'

	got, err := keyer.Key("visitor-1")
	require.NoError(t, err)
	want, err := VisitorKey([]byte("keyer-secret"), "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = NewKeyer(nil)
	assert.Error(t, err)
}
