package models

type Product struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Price       float64  `json:"price" yaml:"price"`
	Description string   `json:"description" yaml:"description"`
	Image       string   `json:"image" yaml:"image"`
	Category    string   `json:"category" yaml:"category"`
	Score       int      `json:"score" yaml:"score"`
	Sizes       []string `json:"sizes,omitempty" yaml:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// Clone retourne une copie indépendante (les tailles et couleurs sont recopiées)
func (p Product) Clone() Product {
	c := p
	if p.Sizes != nil {
		c.Sizes = append([]string(nil), p.Sizes...)
	}
	if p.Colors != nil {
		c.Colors = append([]string(nil), p.Colors...)
	}
	return c
}

// HasSize vérifie qu'une taille fait partie des options du produit
func (p Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

// HasColor vérifie qu'une couleur fait partie des options du produit
func (p Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

// ProductPatch est une mise à jour partielle : seuls les champs non nil sont appliqués.
// Le score n'en fait pas partie, il ne bouge qu'avec les vues et les achats.
type ProductPatch struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Category    *string   `json:"category"`
	Sizes       *[]string `json:"sizes"`
	Colors      *[]string `json:"colors"`
}

// Empty indique qu'aucun champ n'est renseigné
func (u ProductPatch) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Description == nil && u.Image == nil &&
		u.Category == nil && u.Sizes == nil && u.Colors == nil
}

// Apply fusionne le patch dans une copie du produit. L'identifiant ne change jamais.
func (u ProductPatch) Apply(p Product) Product {
	out := p.Clone()
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Price != nil {
		out.Price = *u.Price
	}
	if u.Description != nil {
		out.Description = *u.Description
	}
	if u.Image != nil {
		out.Image = *u.Image
	}
	if u.Category != nil {
		out.Category = *u.Category
	}
	if u.Sizes != nil {
		out.Sizes = append([]string(nil), (*u.Sizes)...)
	}
	if u.Colors != nil {
		out.Colors = append([]string(nil), (*u.Colors)...)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
