package store

import (
	"fmt"

	"costumes_back_end/internal/models"
)

// nextOrderID numérote à partir du nombre de commandes : ORD001, ORD002, ...
func nextOrderID(count int) string {
	return fmt.Sprintf("ORD%03d", count+1)
}

// SubmitOrder transforme le panier en commande "pending" datée du jour,
// ajoute un achat (+5) au score de chaque produit du panier puis vide le panier.
// Retourne false sans rien modifier si le panier est vide.
func (s *Store) SubmitOrder(customerName, customerEmail, city string) (models.Order, bool) {
	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyCart, KeyOrders, KeyProducts)

	if len(s.cart) == 0 {
		s.mu.Unlock()
		return models.Order{}, false
	}

	order := models.Order{
		ID:            nextOrderID(len(s.orders)),
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		City:          city,
		Items:         models.CloneItems(s.cart),
		Total:         models.CartTotal(s.cart),
		Status:        models.OrderPending,
		Date:          s.now().Format("2006-01-02"),
	}
	s.orders = append(s.orders, order)
	s.persist(KeyOrders)
	fx.event(SliceOrders, "submit")

	purchased := false
	for _, item := range order.Items {
		if s.bumpScoreLocked(item.Product.ID, purchaseScore) {
			purchased = true
		}
	}
	if purchased {
		s.productsChangedLocked(&fx, "purchase")
	}

	s.clearCartLocked(&fx)

	fx.successes = append(fx.successes, fmt.Sprintf("Commande %s enregistrée", order.ID))
	fx.orders = append(fx.orders, order)

	s.mu.Unlock()
	s.flush(fx)
	return order.Clone(), true
}

// UpdateOrderStatus change le statut d'une commande. Un id inconnu est ignoré
// (false, nil) ; un statut hors pending/completed/cancelled est refusé.
func (s *Store) UpdateOrderStatus(id string, status models.OrderStatus) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var fx effects
	s.mu.Lock()
	s.syncLocked(KeyOrders)
	found := false
	for i := range s.orders {
		if s.orders[i].ID == id {
			found = true
			if s.orders[i].Status != status {
				s.orders[i].Status = status
				s.persist(KeyOrders)
				fx.event(SliceOrders, "status")
				fx.successes = append(fx.successes, fmt.Sprintf("Commande %s : %s", id, status))
			}
			break
		}
	}
	s.mu.Unlock()
	s.flush(fx)
	return found, nil
}
