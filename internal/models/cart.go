package models

import "github.com/shopspring/decimal"

// CartItem garde une copie du produit au moment de l'ajout, pas une référence.
type CartItem struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedSize  string  `json:"selectedSize,omitempty"`
	SelectedColor string  `json:"selectedColor,omitempty"`
}

// Matches compare l'identité d'une ligne : (produit, taille, couleur)
func (i CartItem) Matches(productID, size, color string) bool {
	return i.Product.ID == productID && i.SelectedSize == size && i.SelectedColor == color
}

func (i CartItem) LineTotal() float64 {
	return lineTotal(i).InexactFloat64()
}

func (i CartItem) Clone() CartItem {
	c := i
	c.Product = i.Product.Clone()
	return c
}

// CartTotal calcule la somme des lignes en décimal pour éviter les erreurs d'arrondi
// (899.99 + 2×949.99 doit donner exactement 2799.97).
func CartTotal(items []CartItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(lineTotal(item))
	}
	return total.InexactFloat64()
}

// SumAmounts additionne des montants en décimal
func SumAmounts(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}

// CartCount retourne le nombre total d'articles (somme des quantités)
func CartCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func CloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func lineTotal(i CartItem) decimal.Decimal {
	return decimal.NewFromFloat(i.Product.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}
