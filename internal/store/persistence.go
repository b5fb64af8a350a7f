package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"costumes_back_end/internal/database"
	"costumes_back_end/internal/models"
	"costumes_back_end/internal/seed"
)

// Clés de stockage, une par tranche d'état
const (
	KeyProducts   = "store_products"
	KeyCart       = "store_cart"
	KeyCategories = "store_categories"
	KeyOrders     = "store_orders"
)

// loadState dit d'où vient une tranche au chargement
type loadState int

const (
	loadedFromStorage loadState = iota
	seededMissing               // clé absente, corrompue ou null : la valeur de départ est écrite
	seededUnreadable            // lecture en échec : valeur de départ en mémoire seulement
)

// load lit les quatre clés indépendamment ; appelé sous verrou
func (s *Store) load(ctx context.Context) {
	var seeded []string
	track := func(key string, state loadState) {
		if state == seededMissing {
			seeded = append(seeded, key)
		}
	}

	var state loadState
	s.products, state = loadSlice(ctx, s, KeyProducts, seed.Products)
	track(KeyProducts, state)
	s.cart, state = loadSlice(ctx, s, KeyCart, emptyCart)
	track(KeyCart, state)
	s.categories, state = loadSlice(ctx, s, KeyCategories, seed.Categories)
	track(KeyCategories, state)
	s.orders, state = loadSlice(ctx, s, KeyOrders, seed.Orders)
	track(KeyOrders, state)

	s.refreshRecommended()

	// Les valeurs de départ sont écrites pour que le prochain démarrage les relise.
	// Une clé illisible n'est jamais écrasée ici : elle peut contenir de vraies données.
	for _, key := range seeded {
		s.persist(key)
	}

	log.Printf("✅ Boutique chargée : %d produits, %d catégories, %d commandes, %d lignes panier",
		len(s.products), len(s.categories), len(s.orders), len(s.cart))
}

// loadSlice décode une tranche ; clé absente, illisible ou corrompue → valeur de départ.
func loadSlice[T any](ctx context.Context, s *Store, key string, fallback func() []T) ([]T, loadState) {
	raw, found, err := s.read(ctx, key)
	if err != nil {
		log.Printf("⚠️ Lecture %s impossible, données de départ utilisées: %v", key, err)
		return fallback(), seededUnreadable
	}
	if !found {
		return fallback(), seededMissing
	}

	v, err := decodeSlice[T](raw)
	if err != nil {
		log.Printf("⚠️ Données %s inutilisables, données de départ utilisées: %v", key, err)
		return fallback(), seededMissing
	}
	return v, loadedFromStorage
}

var errNullSlice = errors.New("valeur null")

func decodeSlice[T any](raw string) ([]T, error) {
	var v []T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errNullSlice
	}
	return v, nil
}

func (s *Store) read(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.storage.Get(ctx, key)
}

// syncLocked relit les clés qu'une mutation va réécrire, pour partir de la
// dernière valeur durable (écrite par un autre processus, storectl par exemple).
// En cas d'échec de lecture ou de donnée inutilisable, l'état en mémoire est gardé.
// Appelé sous verrou.
func (s *Store) syncLocked(keys ...string) {
	for _, key := range keys {
		raw, found, err := s.read(context.Background(), key)
		if err != nil {
			log.Printf("⚠️ Relecture %s impossible, état en mémoire conservé: %v", key, err)
			continue
		}
		if !found {
			continue
		}
		switch key {
		case KeyProducts:
			if v, ok := resync[models.Product](key, raw); ok {
				s.products = v
				s.refreshRecommended()
			}
		case KeyCart:
			if v, ok := resync[models.CartItem](key, raw); ok {
				s.cart = v
			}
		case KeyCategories:
			if v, ok := resync[models.Category](key, raw); ok {
				s.categories = v
			}
		case KeyOrders:
			if v, ok := resync[models.Order](key, raw); ok {
				s.orders = v
			}
		}
	}
}

func resync[T any](key, raw string) ([]T, bool) {
	v, err := decodeSlice[T](raw)
	if err != nil {
		log.Printf("⚠️ Données %s inutilisables, état en mémoire conservé: %v", key, err)
		return nil, false
	}
	return v, true
}

// persist écrit une tranche ; appelé sous verrou. Un échec est journalisé
// mais l'état en mémoire reste celui de la mutation.
func (s *Store) persist(key string) {
	var v any
	switch key {
	case KeyProducts:
		v = s.products
	case KeyCart:
		v = s.cart
	case KeyCategories:
		v = s.categories
	case KeyOrders:
		v = s.orders
	default:
		log.Printf("❌ Clé de stockage inconnue: %s", key)
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("❌ Erreur encodage %s: %v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.storage.Set(ctx, key, string(data)); err != nil {
		log.Printf("❌ Erreur sauvegarde %s: %v", key, err)
	}
}

// Storage expose le backend utilisé (pour la fermeture à l'arrêt)
func (s *Store) Storage() database.Storage {
	return s.storage
}
