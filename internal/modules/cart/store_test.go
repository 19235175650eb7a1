package cart

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStorage is a Storage backed by a map, round-tripping through JSON
// the same way the real adapters do.
type memoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string][]byte)}
}

func (m *memoryStorage) Load(key string, v interface{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (m *memoryStorage) Save(key string, v interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	m.data[key] = data
}

func newTestStore() *Store {
	return NewStore(newMemoryStorage(), CartKey, FavoritesKey)
}

func teaItem() Item {
	return Item{ProductID: 1, Name: "Tisane Détox", UnitPrice: 15000, ImageURL: "/img/tisane.jpg", Category: "Infusions"}
}

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	store := newTestStore()

	store.AddToCart(teaItem())
	store.AddToCart(teaItem())

	items := store.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(30000), store.CartTotal())
	assert.Equal(t, 2, store.CartCount())
}

func TestAddToCartNeverDuplicatesProductID(t *testing.T) {
	store := newTestStore()

	for i := 0; i < 5; i++ {
		store.AddToCart(teaItem())
		store.AddToCart(Item{ProductID: 2, Name: "Huile d'Argan", UnitPrice: 8000})
	}

	seen := make(map[int64]bool)
	for _, line := range store.CartItems() {
		assert.False(t, seen[line.ProductID], "duplicate line for product %d", line.ProductID)
		seen[line.ProductID] = true
	}
	assert.Equal(t, 10, store.CartCount())
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	store := newTestStore()
	store.AddToCart(teaItem())
	store.AddToCart(teaItem())

	store.UpdateQuantity(1, 7)

	items := store.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, int64(105000), store.CartTotal())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := newTestStore()
	store.AddToCart(Item{ProductID: 2, Name: "Huile d'Argan", UnitPrice: 8000})

	store.UpdateQuantity(2, 0)

	assert.Empty(t, store.CartItems())
	assert.Equal(t, 0, store.CartCount())
	assert.Equal(t, int64(0), store.CartTotal())
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	store := newTestStore()
	store.AddToCart(teaItem())

	store.UpdateQuantity(1, -3)

	assert.Empty(t, store.CartItems())
}

func TestUpdateQuantityMissingProductIsNoOp(t *testing.T) {
	store := newTestStore()
	store.AddToCart(teaItem())

	store.UpdateQuantity(99, 4)

	items := store.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveFromCartAbsentIsNoOp(t *testing.T) {
	store := newTestStore()
	store.AddToCart(teaItem())

	store.RemoveFromCart(42)

	assert.Len(t, store.CartItems(), 1)
}

func TestClearCartKeepsFavorites(t *testing.T) {
	store := newTestStore()
	store.AddToCart(teaItem())
	store.AddToFavorites(5)

	store.ClearCart()

	assert.Empty(t, store.CartItems())
	assert.Equal(t, 1, store.FavoritesCount())
}

func TestQuantityInvariantAlwaysAtLeastOne(t *testing.T) {
	store := newTestStore()
	store.AddToCart(teaItem())
	store.AddToCart(Item{ProductID: 2, UnitPrice: 8000})
	store.UpdateQuantity(1, 3)
	store.UpdateQuantity(2, 0)
	store.AddToCart(Item{ProductID: 3, UnitPrice: 500})

	for _, line := range store.CartItems() {
		assert.GreaterOrEqual(t, line.Quantity, 1)
	}
}

func TestCartTotalAndCountMatchSums(t *testing.T) {
	store := newTestStore()
	store.AddToCart(Item{ProductID: 1, UnitPrice: 15000})
	store.AddToCart(Item{ProductID: 2, UnitPrice: 8000})
	store.UpdateQuantity(1, 3)
	store.UpdateQuantity(2, 2)

	var wantTotal int64
	wantCount := 0
	for _, line := range store.CartItems() {
		wantTotal += line.UnitPrice * int64(line.Quantity)
		wantCount += line.Quantity
	}
	assert.Equal(t, wantTotal, store.CartTotal())
	assert.Equal(t, wantCount, store.CartCount())
	assert.Equal(t, int64(61000), store.CartTotal())
	assert.Equal(t, 5, store.CartCount())
}

func TestAddToFavoritesIsIdempotent(t *testing.T) {
	store := newTestStore()

	store.AddToFavorites(5)
	store.AddToFavorites(5)

	assert.Equal(t, 1, store.FavoritesCount())
	assert.True(t, store.IsInFavorites(5))

	store.RemoveFromFavorites(5)

	assert.Equal(t, 0, store.FavoritesCount())
	assert.False(t, store.IsInFavorites(5))
}

func TestRemoveFromFavoritesAbsentIsNoOp(t *testing.T) {
	store := newTestStore()
	store.AddToFavorites(5)

	store.RemoveFromFavorites(9)

	assert.Equal(t, 1, store.FavoritesCount())
	assert.True(t, store.IsInFavorites(5))
}

func TestFreshStoreIsEmpty(t *testing.T) {
	store := newTestStore()

	assert.Empty(t, store.CartItems())
	assert.Equal(t, int64(0), store.CartTotal())
	assert.Equal(t, 0, store.CartCount())
	assert.Equal(t, 0, store.FavoritesCount())
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := newMemoryStorage()

	store := NewStore(storage, CartKey, FavoritesKey)
	store.AddToCart(teaItem())
	store.AddToCart(teaItem())
	store.AddToCart(Item{ProductID: 2, Name: "Huile d'Argan", UnitPrice: 8000, Category: "Huiles"})
	store.AddToFavorites(5)
	store.AddToFavorites(7)

	// Simulated reload: a fresh store over the same storage.
	reloaded := NewStore(storage, CartKey, FavoritesKey)

	assert.Equal(t, store.CartItems(), reloaded.CartItems())
	assert.Equal(t, store.Favorites(), reloaded.Favorites())
	assert.Equal(t, store.CartTotal(), reloaded.CartTotal())
	assert.Equal(t, store.CartCount(), reloaded.CartCount())
	assert.Equal(t, store.FavoritesCount(), reloaded.FavoritesCount())
}

func TestLoadIgnoresMalformedPersistedData(t *testing.T) {
	storage := newMemoryStorage()
	storage.data[CartKey] = []byte(`{"version":`)
	storage.data[FavoritesKey] = []byte(`not json`)

	store := NewStore(storage, CartKey, FavoritesKey)

	assert.Empty(t, store.CartItems())
	assert.Equal(t, 0, store.FavoritesCount())
}

func TestLoadIgnoresUnknownStorageVersion(t *testing.T) {
	storage := newMemoryStorage()
	storage.Save(CartKey, persistedCart{Version: 99, Items: []CartLine{{Item: teaItem(), Quantity: 2}}})

	store := NewStore(storage, CartKey, FavoritesKey)

	assert.Empty(t, store.CartItems())
}

func TestLoadDropsInvalidPersistedLines(t *testing.T) {
	storage := newMemoryStorage()
	storage.Save(CartKey, persistedCart{Version: storageVersion, Items: []CartLine{
		{Item: teaItem(), Quantity: 2},
		{Item: Item{ProductID: 2, UnitPrice: 8000}, Quantity: 0},
		{Item: teaItem(), Quantity: 5},
	}})

	store := NewStore(storage, CartKey, FavoritesKey)

	items := store.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartItemsReturnsCopy(t *testing.T) {
	store := newTestStore()
	store.AddToCart(teaItem())

	items := store.CartItems()
	items[0].Quantity = 99

	assert.Equal(t, 1, store.CartItems()[0].Quantity)
}

func TestConcurrentMutationsKeepInvariants(t *testing.T) {
	store := newTestStore()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				store.AddToCart(teaItem())
				store.AddToFavorites(5)
			}
		}()
	}
	wg.Wait()

	items := store.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 400, items[0].Quantity)
	assert.Equal(t, 1, store.FavoritesCount())
}
