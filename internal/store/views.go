package store

import (
	"sort"
	"strings"

	"costumes_back_end/internal/models"
)

const (
	recommendedCount = 4
	bestSellerCount  = 3
	// PromotionsCategory est une catégorie virtuelle : elle regroupe une
	// sélection fixe de produits au lieu de filtrer sur le nom.
	PromotionsCategory = "promotions"
)

// refreshRecommended recalcule entièrement le top 4 par score décroissant.
// Le tri est stable : à score égal, l'ordre de la liste est conservé.
func (s *Store) refreshRecommended() {
	sorted := cloneProducts(s.products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	s.recommended = sorted[:min(recommendedCount, len(sorted))]
}

// ProductsByCategory filtre sur le nom exact de la catégorie ;
// "promotions" retourne la sélection promotionnelle.
func (s *Store) ProductsByCategory(name string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.EqualFold(name, PromotionsCategory) {
		return s.promotionsLocked()
	}

	out := []models.Product{}
	for _, p := range s.products {
		if p.Category == name {
			out = append(out, p.Clone())
		}
	}
	return out
}

// BestSellers retourne les 3 premiers produits de la sélection promotionnelle
func (s *Store) BestSellers() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	promos := s.promotionsLocked()
	return promos[:min(bestSellerCount, len(promos))]
}

func (s *Store) promotionsLocked() []models.Product {
	out := []models.Product{}
	for i, p := range s.products {
		if i%5 == 0 || i%7 == 0 {
			out = append(out, p.Clone())
		}
	}
	return out
}

type CategoryGroup struct {
	Category string           `json:"category"`
	Products []models.Product `json:"products"`
}

// CategoryGroups retourne, dans l'ordre des catégories, au plus limit produits
// par catégorie. Les catégories sans produit sont omises.
func (s *Store) CategoryGroups(limit int) []CategoryGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := []CategoryGroup{}
	for _, c := range s.categories {
		var products []models.Product
		for _, p := range s.products {
			if limit > 0 && len(products) >= limit {
				break
			}
			if p.Category == c.Name {
				products = append(products, p.Clone())
			}
		}
		if len(products) > 0 {
			groups = append(groups, CategoryGroup{Category: c.Name, Products: products})
		}
	}
	return groups
}

// Stats calcule les compteurs du tableau de bord admin
func (s *Store) Stats() models.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.DashboardStats{
		TotalProducts:   len(s.products),
		TotalCategories: len(s.categories),
		TotalOrders:     len(s.orders),
		OrdersByStatus:  map[models.OrderStatus]int{},
		CartLines:       len(s.cart),
	}
	totals := make([]float64, 0, len(s.orders))
	for _, o := range s.orders {
		stats.OrdersByStatus[o.Status]++
		totals = append(totals, o.Total)
	}
	stats.TotalRevenue = models.SumAmounts(totals...)
	return stats
}
