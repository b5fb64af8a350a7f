package store

import (
	"fmt"
	"strings"

	"costumes_back_end/internal/models"
)

// Points ajoutés au score d'un produit
const (
	viewScore     = 1
	purchaseScore = 5
)

// RecordView ajoute 1 au score du produit ; id inconnu ignoré
func (s *Store) RecordView(productID string) {
	s.bumpScore(productID, viewScore, "view")
}

// RecordPurchase ajoute 5 au score du produit ; id inconnu ignoré
func (s *Store) RecordPurchase(productID string) {
	s.bumpScore(productID, purchaseScore, "purchase")
}

func (s *Store) bumpScore(productID string, delta int, action string) {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyProducts)
	if s.bumpScoreLocked(productID, delta) {
		s.productsChangedLocked(&fx, action)
	}
	s.mu.Unlock()
	s.flush(fx)
}

func (s *Store) bumpScoreLocked(productID string, delta int) bool {
	i := s.productIndex(productID)
	if i < 0 {
		return false
	}
	s.products[i].Score += delta
	return true
}

// AddProduct ajoute un produit complet (l'id est attribué par l'appelant)
func (s *Store) AddProduct(p models.Product) {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyProducts)
	s.products = append(s.products, p.Clone())
	s.productsChangedLocked(&fx, "add")
	fx.successes = append(fx.successes, fmt.Sprintf("Produit %s ajouté", p.Name))
	s.mu.Unlock()
	s.flush(fx)
}

// UpdateProduct fusionne les champs renseignés ; retourne false si l'id est inconnu
func (s *Store) UpdateProduct(id string, patch models.ProductPatch) bool {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyProducts)
	i := s.productIndex(id)
	if i >= 0 {
		s.products[i] = patch.Apply(s.products[i])
		s.productsChangedLocked(&fx, "update")
		fx.successes = append(fx.successes, "Produit mis à jour")
	}
	s.mu.Unlock()
	s.flush(fx)
	return i >= 0
}

// DeleteProduct retire définitivement le produit ; le panier et les commandes
// gardent leurs copies.
func (s *Store) DeleteProduct(id string) bool {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyProducts)
	i := s.productIndex(id)
	if i >= 0 {
		s.products = append(s.products[:i:i], s.products[i+1:]...)
		s.productsChangedLocked(&fx, "delete")
		fx.successes = append(fx.successes, "Produit supprimé")
	}
	s.mu.Unlock()
	s.flush(fx)
	return i >= 0
}

// AddCategory refuse un nom vide ou déjà présent (comparaison insensible à la casse)
func (s *Store) AddCategory(c models.Category) error {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyCategories)
	err := s.addCategoryLocked(c, &fx)
	s.mu.Unlock()
	s.flush(fx)
	return err
}

func (s *Store) addCategoryLocked(c models.Category, fx *effects) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.ID == "" || c.Name == "" {
		return ErrInvalidCategory
	}
	for _, existing := range s.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			fx.failures = append(fx.failures, "Cette catégorie existe déjà")
			return fmt.Errorf("%w: %s", ErrCategoryExists, c.Name)
		}
	}

	s.categories = append(s.categories, c)
	s.persist(KeyCategories)
	fx.event(SliceCategories, "add")
	fx.successes = append(fx.successes, fmt.Sprintf("Catégorie %s ajoutée", c.Name))
	return nil
}

// DeleteCategory ne touche pas aux produits qui référencent encore ce nom
func (s *Store) DeleteCategory(id string) bool {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyCategories)
	deleted := false
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i:i], s.categories[i+1:]...)
			deleted = true
			break
		}
	}
	if deleted {
		s.persist(KeyCategories)
		fx.event(SliceCategories, "delete")
		fx.successes = append(fx.successes, "Catégorie supprimée")
	}
	s.mu.Unlock()
	s.flush(fx)
	return deleted
}

// productsChangedLocked recalcule les recommandations et sauvegarde les produits
func (s *Store) productsChangedLocked(fx *effects, action string) {
	s.refreshRecommended()
	s.persist(KeyProducts)
	fx.event(SliceProducts, action)
}
