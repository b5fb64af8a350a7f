package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costumes_back_end/internal/database"
	"costumes_back_end/internal/models"
)

func TestNew_SeedsEmptyStorage(t *testing.T) {
	storage := database.NewMemory()
	s, _ := newTestStore(t, storage)

	assert.Len(t, s.Products(), 12)
	assert.Len(t, s.Categories(), 5)
	assert.Len(t, s.Orders(), 2)
	assert.Empty(t, s.Cart())

	for _, key := range []string{KeyProducts, KeyCart, KeyCategories, KeyOrders} {
		_, found, err := storage.Get(context.Background(), key)
		require.NoError(t, err)
		assert.True(t, found, "%s doit être écrit au premier chargement", key)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := database.NewMemory()
	s, _ := newTestStore(t, storage)

	s.AddToCart(mustProduct(t, s, "7"), "M", "Gris")
	s.AddToCart(mustProduct(t, s, "7"), "M", "Gris")
	s.RecordView("9")
	require.NoError(t, s.AddCategory(models.Category{ID: "6", Name: "Mariage"}))
	s.AddToCart(mustProduct(t, s, "2"), "", "")
	_, ok := s.SubmitOrder("Sara", "sara@example.com", "Fès")
	require.True(t, ok)
	s.AddToCart(mustProduct(t, s, "11"), "XS", "Noir")

	reloaded, _ := newTestStore(t, storage)

	assert.Equal(t, s.Products(), reloaded.Products())
	assert.Equal(t, s.Recommended(), reloaded.Recommended())
	assert.Equal(t, s.Cart(), reloaded.Cart())
	assert.Equal(t, s.Categories(), reloaded.Categories())
	assert.Equal(t, s.Orders(), reloaded.Orders())
}

func TestLoad_CorruptKeyFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	storage := database.NewMemory()
	require.NoError(t, storage.Set(ctx, KeyProducts, "{pas du json"))
	require.NoError(t, storage.Set(ctx, KeyCategories, "null"))

	cats := []models.Category{{ID: "x", Name: "Unique"}}
	data, err := json.Marshal(cats)
	require.NoError(t, err)
	require.NoError(t, storage.Set(ctx, KeyOrders, "[]"))

	s, _ := newTestStore(t, storage)
	assert.Len(t, s.Products(), 12)
	assert.Len(t, s.Categories(), 5)
	assert.Empty(t, s.Orders(), "une liste vide valide est conservée")

	// la clé corrompue a été réécrite avec les données de départ
	raw, found, err := storage.Get(ctx, KeyProducts)
	require.NoError(t, err)
	require.True(t, found)
	var products []models.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &products))
	assert.Len(t, products, 12)

	require.NoError(t, storage.Set(ctx, KeyCategories, string(data)))
	again, _ := newTestStore(t, storage)
	assert.Equal(t, cats, again.Categories())
}

func TestStoreWorksWithUnavailableStorage(t *testing.T) {
	s, n := newTestStore(t, failingStorage{})

	assert.Len(t, s.Products(), 12)

	s.AddToCart(mustProduct(t, s, "1"), "M", "Noir")
	assert.Len(t, s.Cart(), 1, "l'état en mémoire suit la mutation malgré l'échec d'écriture")
	_, ok := s.SubmitOrder("Karim", "karim@example.com", "")
	assert.True(t, ok)
	assert.Len(t, s.Orders(), 3)
	assert.NotEmpty(t, n.successes)
}

func TestNoopMutationsDoNotWrite(t *testing.T) {
	storage := &countingStorage{Storage: database.NewMemory()}
	s, _ := newTestStore(t, storage)
	base := storage.writes

	s.RemoveFromCart("inconnu")
	s.UpdateQuantity("inconnu", 2)
	s.RecordView("inconnu")
	s.UpdateProduct("inconnu", patchPrice(1))
	s.DeleteProduct("inconnu")
	s.DeleteCategory("inconnu")
	_, _ = s.UpdateOrderStatus("inconnu", models.OrderCompleted)
	s.SubmitOrder("x", "x@example.com", "")

	assert.Equal(t, base, storage.writes)
}

type countingStorage struct {
	database.Storage
	writes int
}

func (c *countingStorage) Set(ctx context.Context, key, value string) error {
	c.writes++
	return c.Storage.Set(ctx, key, value)
}

// flakyStorage échoue sur les premières lectures d'une clé
type flakyStorage struct {
	database.Storage
	key   string
	fails int
}

func (f *flakyStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == f.key && f.fails > 0 {
		f.fails--
		return "", false, errUnavailable
	}
	return f.Storage.Get(ctx, key)
}

func TestLoad_ReadErrorKeepsDurableData(t *testing.T) {
	storage := database.NewMemory()
	s, _ := newTestStore(t, storage)
	s.AddProduct(models.Product{ID: "13", Name: "Gilet Velours", Price: 299.5, Category: "Casual"})

	flaky := &flakyStorage{Storage: storage, key: KeyProducts, fails: 1}
	degraded, _ := newTestStore(t, flaky)
	assert.Len(t, degraded.Products(), 12, "données de départ en mémoire")

	reloaded, _ := newTestStore(t, storage)
	assert.Len(t, reloaded.Products(), 13)
	_, ok := reloaded.Product("13")
	assert.True(t, ok, "le produit ajouté n'est pas écrasé par les données de départ")
}

func TestMutationAfterReadErrorStartsFromDurableData(t *testing.T) {
	storage := database.NewMemory()
	s, _ := newTestStore(t, storage)
	s.AddProduct(models.Product{ID: "13", Name: "Gilet Velours", Price: 299.5, Category: "Casual"})

	flaky := &flakyStorage{Storage: storage, key: KeyProducts, fails: 1}
	degraded, _ := newTestStore(t, flaky)
	degraded.RecordView("2")

	reloaded, _ := newTestStore(t, storage)
	assert.Len(t, reloaded.Products(), 13)
	assert.Equal(t, 4, mustProduct(t, reloaded, "2").Score)
}

func TestMutationsSeeWritesFromAnotherStore(t *testing.T) {
	storage := database.NewMemory()
	server, _ := newTestStore(t, storage)
	admin, _ := newTestStore(t, storage)

	found, err := admin.UpdateOrderStatus("ORD002", models.OrderCancelled)
	require.NoError(t, err)
	require.True(t, found)

	server.AddToCart(mustProduct(t, server, "3"), "S", "Noir")
	order, ok := server.SubmitOrder("Sara", "sara@example.com", "Fès")
	require.True(t, ok)
	assert.Equal(t, "ORD003", order.ID)

	reloaded, _ := newTestStore(t, storage)
	orders := reloaded.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, models.OrderCancelled, orders[1].Status)

	require.NoError(t, admin.AddCategory(models.Category{ID: "6", Name: "Mariage"}))
	assert.ErrorIs(t, server.AddCategory(models.Category{ID: "7", Name: "mariage"}), ErrCategoryExists)
}

func TestNew_WithoutNotifierIsSilent(t *testing.T) {
	s := New(context.Background(), database.NewMemory())
	assert.IsType(t, nopNotifier{}, s.notifier)

	s.AddToCart(mustProduct(t, s, "1"), "M", "Noir")
	assert.Len(t, s.Cart(), 1)
}
