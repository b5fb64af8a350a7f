package store

import (
	"fmt"

	"costumes_back_end/internal/models"
)

func emptyCart() []models.CartItem { return []models.CartItem{} }

// AddToCart ajoute une copie du produit. Une ligne est identifiée par
// (produit, taille, couleur) : si elle existe déjà, sa quantité augmente de 1.
func (s *Store) AddToCart(p models.Product, size, color string) {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyCart)

	found := false
	for i := range s.cart {
		if s.cart[i].Matches(p.ID, size, color) {
			s.cart[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.cart = append(s.cart, models.CartItem{
			Product:       p.Clone(),
			Quantity:      1,
			SelectedSize:  size,
			SelectedColor: color,
		})
		fx.successes = append(fx.successes, fmt.Sprintf("%s ajouté au panier", p.Name))
	}
	s.persist(KeyCart)
	fx.event(SliceCart, "add")

	s.mu.Unlock()
	s.flush(fx)
}

// RemoveFromCart supprime toutes les lignes du produit, quelles que soient
// la taille et la couleur choisies.
func (s *Store) RemoveFromCart(productID string) {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyCart)
	if s.removeLinesLocked(productID) {
		s.persist(KeyCart)
		fx.event(SliceCart, "remove")
	}
	s.mu.Unlock()
	s.flush(fx)
}

// UpdateQuantity fixe la quantité de la première ligne du produit ;
// une quantité <= 0 revient à RemoveFromCart.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}

	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyCart)
	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			if s.cart[i].Quantity != quantity {
				s.cart[i].Quantity = quantity
				s.persist(KeyCart)
				fx.event(SliceCart, "quantity")
			}
			break
		}
	}
	s.mu.Unlock()
	s.flush(fx)
}

func (s *Store) ClearCart() {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyCart)
	s.clearCartLocked(&fx)
	s.mu.Unlock()
	s.flush(fx)
}

func (s *Store) clearCartLocked(fx *effects) {
	s.cart = emptyCart()
	s.persist(KeyCart)
	fx.event(SliceCart, "clear")
}

func (s *Store) removeLinesLocked(productID string) bool {
	kept := make([]models.CartItem, 0, len(s.cart))
	for _, item := range s.cart {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(s.cart)
	s.cart = kept
	return removed
}
