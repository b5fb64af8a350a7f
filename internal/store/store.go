// Package store contient l'état partagé de la boutique : produits, catégories,
// panier et commandes. Chaque mutation est écrite immédiatement dans le stockage
// durable, une clé par tranche d'état.
//
// Un Store est construit une seule fois au démarrage (New) puis passé à ceux qui
// en ont besoin. Les opérations sont sérialisées : chacune s'exécute entièrement,
// écriture comprise, avant la suivante.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"costumes_back_end/internal/database"
	"costumes_back_end/internal/models"
)

var (
	ErrCategoryExists  = errors.New("catégorie déjà existante")
	ErrInvalidCategory = errors.New("catégorie invalide")
	ErrInvalidStatus   = errors.New("statut de commande invalide")
)

// Notifier reçoit les messages destinés à l'utilisateur (toasts). Envoi sans retour.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Slice string

const (
	SliceProducts   Slice = "products"
	SliceCart       Slice = "cart"
	SliceCategories Slice = "categories"
	SliceOrders     Slice = "orders"
)

// Event décrit une mutation terminée
type Event struct {
	Slice  Slice  `json:"slice"`
	Action string `json:"action"`
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock remplace l'horloge utilisée pour dater les commandes
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimeout borne chaque lecture/écriture du stockage
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

type Store struct {
	mu       sync.Mutex
	storage  database.Storage
	notifier Notifier
	now      func() time.Time
	timeout  time.Duration

	products    []models.Product
	recommended []models.Product
	cart        []models.CartItem
	categories  []models.Category
	orders      []models.Order

	listenersMu    sync.RWMutex
	listeners      []func(Event)
	orderListeners []func(models.Order)
}

// New charge les quatre tranches depuis le stockage (ou les données de départ)
// et retourne un Store prêt à l'emploi. Ne retourne jamais d'erreur de stockage :
// une clé illisible est remplacée par sa valeur de départ.
func New(ctx context.Context, storage database.Storage, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		notifier: nopNotifier{},
		now:      time.Now,
		timeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
	return s
}

// Subscribe enregistre un observateur appelé après chaque mutation
func (s *Store) Subscribe(fn func(Event)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SubscribeOrders enregistre un observateur appelé pour chaque nouvelle commande
func (s *Store) SubscribeOrders(fn func(models.Order)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.orderListeners = append(s.orderListeners, fn)
}

// effects regroupe ce qui doit être déclenché une fois le verrou relâché
type effects struct {
	events    []Event
	successes []string
	failures  []string
	orders    []models.Order
}

func (fx *effects) event(slice Slice, action string) {
	fx.events = append(fx.events, Event{Slice: slice, Action: action})
}

func (s *Store) flush(fx effects) {
	for _, msg := range fx.successes {
		s.notifier.Success(msg)
	}
	for _, msg := range fx.failures {
		s.notifier.Error(msg)
	}

	s.listenersMu.RLock()
	listeners := slices.Clone(s.listeners)
	orderListeners := slices.Clone(s.orderListeners)
	s.listenersMu.RUnlock()

	for _, ev := range fx.events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
	for _, o := range fx.orders {
		for _, fn := range orderListeners {
			fn(o.Clone())
		}
	}
}

// --- Lecture ---

func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProducts(s.products)
}

func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.productIndex(id); i >= 0 {
		return s.products[i].Clone(), true
	}
	return models.Product{}, false
}

// Recommended retourne les 4 produits les mieux notés
func (s *Store) Recommended() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProducts(s.recommended)
}

func (s *Store) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneItems(s.cart)
}

func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CartTotal(s.cart)
}

// CartCount retourne le nombre d'articles (somme des quantités)
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CartCount(s.cart)
}

func (s *Store) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category{}, s.categories...)
}

func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

func (s *Store) Order(id string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return models.Order{}, false
}

func (s *Store) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// nopNotifier est utilisé tant qu'aucun Notifier n'est fourni
type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
