package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotal_IsExact(t *testing.T) {
	items := []CartItem{
		{Product: Product{ID: "1", Price: 899.99}, Quantity: 1},
		{Product: Product{ID: "2", Price: 949.99}, Quantity: 2},
	}
	assert.Equal(t, 2799.97, CartTotal(items))
	assert.Equal(t, 3, CartCount(items))
	assert.Equal(t, 1899.98, items[1].LineTotal())
	assert.Equal(t, 0.0, CartTotal(nil))
}

func TestSumAmounts(t *testing.T) {
	assert.Equal(t, 0.3, SumAmounts(0.1, 0.2))
	assert.Equal(t, 0.0, SumAmounts())
}

func TestCartItemMatches(t *testing.T) {
	item := CartItem{Product: Product{ID: "1"}, SelectedSize: "M", SelectedColor: "Noir"}
	assert.True(t, item.Matches("1", "M", "Noir"))
	assert.False(t, item.Matches("1", "L", "Noir"))
	assert.False(t, item.Matches("1", "M", ""))
	assert.False(t, item.Matches("2", "M", "Noir"))
}

func TestProductClone_IsIndependent(t *testing.T) {
	p := Product{ID: "1", Sizes: []string{"S", "M"}, Colors: []string{"Noir"}}
	c := p.Clone()
	c.Sizes[0] = "XL"
	c.Colors[0] = "Bleu"
	assert.Equal(t, "S", p.Sizes[0])
	assert.Equal(t, "Noir", p.Colors[0])
	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasColor("Bleu"))
}

func TestProductPatch(t *testing.T) {
	assert.True(t, ProductPatch{}.Empty())

	name := "Nouveau"
	p := Product{ID: "1", Name: "Ancien", Price: 100, Score: 3}
	out := ProductPatch{Name: &name}.Apply(p)

	assert.Equal(t, "1", out.ID)
	assert.Equal(t, "Nouveau", out.Name)
	assert.Equal(t, 100.0, out.Price)
	assert.Equal(t, 3, out.Score, "le score n'est jamais modifié par un patch")
	assert.Equal(t, "Ancien", p.Name)
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderPending.Valid())
	assert.True(t, OrderCompleted.Valid())
	assert.True(t, OrderCancelled.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestIsDeliveryCity(t *testing.T) {
	assert.True(t, IsDeliveryCity("Casablanca"))
	assert.True(t, IsDeliveryCity("Fès"))
	assert.False(t, IsDeliveryCity("Paris"))
	assert.False(t, IsDeliveryCity(""))
}
