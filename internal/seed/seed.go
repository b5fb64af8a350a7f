// Package seed fournit le jeu de données initial de la boutique : 12 costumes,
// 5 catégories et 2 commandes d'exemple.
package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"costumes_back_end/internal/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalog struct {
	Categories []models.Category `yaml:"categories"`
	Sizes      []string          `yaml:"sizes"`
	Colors     []string          `yaml:"colors"`
	Products   []models.Product  `yaml:"products"`
}

var loadCatalog = sync.OnceValues(func() (catalog, error) {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return c, fmt.Errorf("catalogue de départ invalide: %w", err)
	}
	if len(c.Categories) < 4 {
		return c, fmt.Errorf("catalogue de départ: %d catégories, 4 minimum", len(c.Categories))
	}
	return c, nil
})

func mustCatalog() catalog {
	c, err := loadCatalog()
	if err != nil {
		// le fichier est embarqué à la compilation, une erreur ici est un bug
		panic(err)
	}
	return c
}

// Products retourne le catalogue réparti sur les quatre premières catégories,
// avec des tailles et couleurs différentes selon la position du produit.
func Products() []models.Product {
	c := mustCatalog()
	out := make([]models.Product, len(c.Products))
	for i, p := range c.Products {
		p = p.Clone()
		p.Category = c.Categories[i%4].Name
		p.Sizes = append([]string(nil), c.Sizes[:min(3+i%4, len(c.Sizes))]...)
		p.Colors = append([]string(nil), c.Colors[:min(2+i%3, len(c.Colors))]...)
		out[i] = p
	}
	return out
}

func Categories() []models.Category {
	c := mustCatalog()
	return append([]models.Category(nil), c.Categories...)
}

// Orders retourne les deux commandes d'exemple. Elles référencent les produits
// du catalogue brut (avant répartition par catégorie).
func Orders() []models.Order {
	c := mustCatalog()
	first := c.Products[0].Clone()
	second := c.Products[1].Clone()

	orders := []models.Order{
		{
			ID:            "ORD001",
			CustomerName:  "John Doe",
			CustomerEmail: "john@example.com",
			Items: []models.CartItem{
				{Product: first, Quantity: 1, SelectedSize: "M", SelectedColor: "Noir"},
			},
			Status: models.OrderCompleted,
			Date:   "2025-05-15",
		},
		{
			ID:            "ORD002",
			CustomerName:  "Jane Smith",
			CustomerEmail: "jane@example.com",
			Items: []models.CartItem{
				{Product: second, Quantity: 2, SelectedSize: "L", SelectedColor: "Bleu"},
			},
			Status: models.OrderPending,
			Date:   "2025-05-16",
		},
	}
	for i := range orders {
		orders[i].Total = models.CartTotal(orders[i].Items)
	}
	return orders
}
