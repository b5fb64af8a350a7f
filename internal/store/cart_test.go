package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCart_MergesSameVariant(t *testing.T) {
	s, n := newTestStore(t, nil)
	p := mustProduct(t, s, "1")

	s.AddToCart(p, "M", "Noir")
	s.AddToCart(p, "M", "Noir")

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, "M", cart[0].SelectedSize)
	assert.Equal(t, "Noir", cart[0].SelectedColor)

	// seule la création de ligne est notifiée
	assert.Equal(t, []string{"Tuxedo Classic Noir ajouté au panier"}, n.successes)
}

func TestAddToCart_DistinctVariantsAreDistinctLines(t *testing.T) {
	s, _ := newTestStore(t, nil)
	p := mustProduct(t, s, "1")

	s.AddToCart(p, "M", "Noir")
	s.AddToCart(p, "S", "Noir")
	s.AddToCart(p, "M", "Bleu")
	s.AddToCart(p, "", "")

	assert.Len(t, s.Cart(), 4)
	assert.Equal(t, 4, s.CartCount())
}

func TestAddToCart_StoresSnapshot(t *testing.T) {
	s, _ := newTestStore(t, nil)
	p := mustProduct(t, s, "2")

	s.AddToCart(p, "L", "Bleu")
	price := 10.0
	require.True(t, s.UpdateProduct("2", patchPrice(price)))

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 949.99, cart[0].Product.Price, "le panier garde le prix au moment de l'ajout")

	// modifier la copie retournée ne change pas le panier
	cart[0].Quantity = 99
	cart[0].Product.Sizes[0] = "ZZ"
	again := s.Cart()
	assert.Equal(t, 1, again[0].Quantity)
	assert.NotEqual(t, "ZZ", again[0].Product.Sizes[0])
}

func TestRemoveFromCart_RemovesEveryVariant(t *testing.T) {
	s, _ := newTestStore(t, nil)
	p1 := mustProduct(t, s, "1")
	p2 := mustProduct(t, s, "2")

	s.AddToCart(p1, "XS", "Noir")
	s.AddToCart(p1, "S", "Bleu")
	s.AddToCart(p1, "M", "")
	s.AddToCart(p2, "L", "Bleu")

	s.RemoveFromCart("1")

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "2", cart[0].Product.ID)

	s.RemoveFromCart("inconnu")
	assert.Len(t, s.Cart(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	s, _ := newTestStore(t, nil)
	p := mustProduct(t, s, "1")
	s.AddToCart(p, "S", "Noir")
	s.AddToCart(p, "M", "Noir")

	s.UpdateQuantity("1", 5)
	cart := s.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, 5, cart[0].Quantity, "première ligne du produit")
	assert.Equal(t, 1, cart[1].Quantity)

	s.UpdateQuantity("inconnu", 3)
	assert.Equal(t, 6, s.CartCount())

	s.UpdateQuantity("1", 0)
	assert.Empty(t, s.Cart(), "quantité 0 supprime toutes les lignes du produit")
}

func TestUpdateQuantity_NegativeRemoves(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.AddToCart(mustProduct(t, s, "3"), "", "")

	s.UpdateQuantity("3", -2)
	assert.Empty(t, s.Cart())
}

func TestClearCart(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.AddToCart(mustProduct(t, s, "1"), "", "")
	s.AddToCart(mustProduct(t, s, "2"), "", "")

	s.ClearCart()
	assert.Empty(t, s.Cart())
	assert.Equal(t, 0.0, s.CartTotal())
}

func TestCartTotal(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.AddToCart(mustProduct(t, s, "1"), "", "")
	s.AddToCart(mustProduct(t, s, "2"), "", "")
	s.AddToCart(mustProduct(t, s, "2"), "", "")

	assert.Equal(t, 2799.97, s.CartTotal())
}
