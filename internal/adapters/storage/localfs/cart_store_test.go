package localfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogozap/internal/domain"
)

func TestCartStore_RoundTrip(t *testing.T) {
	store := New(t.TempDir())

	items := []domain.CartItem{
		{ProductID: "1", Size: "40", Payment: domain.PaymentPix, Name: "Tenis Runner", Brand: "A", UnitPrice: 100, Quantity: 2, AddedAt: 1700000000000},
		{ProductID: "2", Size: "M", Payment: domain.PaymentCard, Name: "Camisa", Brand: "B", UnitPrice: 55, Quantity: 1, AddedAt: 1700000001000},
	}
	require.NoError(t, store.Save(items))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestCartStore_Load(t *testing.T) {
	t.Run("arquivo ausente é carrinho vazio", func(t *testing.T) {
		store := New(t.TempDir())
		got, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("blob corrompido é carrinho vazio, não erro", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cart.json"), []byte("{lixo"), 0o644))

		got, err := New(dir).Load()
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCartStore_PersistedShape(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	require.NoError(t, store.Save([]domain.CartItem{
		{ProductID: "1", Size: "40", Payment: domain.PaymentPix, UnitPrice: 100, Quantity: 1, AddedAt: 123},
	}))

	data, err := os.ReadFile(filepath.Join(dir, "cart.json"))
	require.NoError(t, err)
	// formato de gravação documentado do store local
	assert.Contains(t, string(data), `"productId":"1"`)
	assert.Contains(t, string(data), `"variantLabel":"40"`)
	assert.Contains(t, string(data), `"paymentMethod":"pix"`)
	assert.Contains(t, string(data), `"insertedAtEpochMs":123`)
}

func TestCartStore_SaveNil(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	require.NoError(t, store.Save(nil))

	data, err := os.ReadFile(filepath.Join(dir, "cart.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
