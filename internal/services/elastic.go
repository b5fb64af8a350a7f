package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"costumes_back_end/internal/config"
	"costumes_back_end/internal/models"
	"costumes_back_end/internal/store"
)

const productsIndex = "products"

// ProductIndex recopie le catalogue dans Elasticsearch pour la recherche plein texte.
// Sans client (ELASTIC_URL vide) ou en cas d'erreur, la recherche se fait en mémoire.
type ProductIndex struct {
	client *elasticsearch.Client
	index  string

	mu      sync.Mutex
	indexed map[string]bool
}

func NewProductIndex(cfg config.ElasticSettings) (*ProductIndex, error) {
	idx := &ProductIndex{index: productsIndex, indexed: map[string]bool{}}
	if cfg.URL == "" {
		log.Println("⚠️ Elasticsearch non configuré, recherche en mémoire")
		return idx, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return idx, fmt.Errorf("client Elasticsearch: %w", err)
	}
	idx.client = client
	log.Println("✅ Elasticsearch configuré :", cfg.URL)
	return idx, nil
}

// Enabled indique si un cluster Elasticsearch est utilisé
func (i *ProductIndex) Enabled() bool {
	return i != nil && i.client != nil
}

// Sync indexe chaque produit et retire ceux qui ont disparu du catalogue
func (i *ProductIndex) Sync(ctx context.Context, products []models.Product) {
	if !i.Enabled() {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	current := make(map[string]bool, len(products))
	for _, p := range products {
		current[p.ID] = true
		if err := i.indexProduct(ctx, p); err != nil {
			log.Printf("❌ Indexation %s impossible: %v", p.Name, err)
		}
	}
	for id := range i.indexed {
		if !current[id] {
			if err := i.deleteProduct(ctx, id); err != nil {
				log.Printf("❌ Suppression index %s impossible: %v", id, err)
			}
		}
	}
	i.indexed = current
	log.Printf("✅ %d produits indexés dans Elasticsearch", len(products))
}

// Follow fait tourner la synchronisation dans un seul goroutine jusqu'à l'annulation
// de ctx. La fonction retournée demande une synchronisation : les demandes reçues
// pendant qu'une synchronisation tourne n'en déclenchent qu'une seule, faite sur le
// catalogue relu à ce moment-là.
func (i *ProductIndex) Follow(ctx context.Context, products func() []models.Product) func() {
	return follow(ctx, products, i.Sync)
}

func follow(ctx context.Context, products func() []models.Product, run func(context.Context, []models.Product)) func() {
	pending := make(chan struct{}, 1)
	request := func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-pending:
				run(ctx, products())
			}
		}
	}()
	request()
	return request
}

// ReindexOn indique si un événement doit être recopié dans l'index. Les vues et
// achats ne changent que le score, que la recherche ne lit pas.
func ReindexOn(ev store.Event) bool {
	if ev.Slice != store.SliceProducts {
		return false
	}
	return ev.Action != "view" && ev.Action != "purchase"
}

func (i *ProductIndex) indexProduct(ctx context.Context, p models.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: p.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return errors.New(res.String())
	}
	return nil
}

func (i *ProductIndex) deleteProduct(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: id, Refresh: "true"}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return errors.New(res.String())
	}
	return nil
}

// Search retourne les produits du catalogue correspondant à la requête, dans l'ordre
// de pertinence d'Elasticsearch quand il est disponible.
func (i *ProductIndex) Search(ctx context.Context, query string, catalog []models.Product) []models.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}
	}
	if i.Enabled() {
		ids, err := i.searchIDs(ctx, query)
		if err == nil {
			return pickByID(catalog, ids)
		}
		log.Printf("⚠️ Recherche Elasticsearch impossible, recherche en mémoire: %v", err)
	}
	return MatchProducts(catalog, query)
}

func (i *ProductIndex) searchIDs(ctx context.Context, query string) ([]string, error) {
	var buf bytes.Buffer
	q := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description", "category"},
				"fuzziness": "AUTO",
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %w", err)
	}

	req := esapi.SearchRequest{Index: []string{i.index}, Body: &buf}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("index non trouvé ou vide: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %w", err)
	}

	ids := make([]string, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func pickByID(catalog []models.Product, ids []string) []models.Product {
	byID := make(map[string]models.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	out := []models.Product{}
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// MatchProducts cherche la requête (insensible à la casse) dans le nom,
// la description et la catégorie.
func MatchProducts(catalog []models.Product, query string) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := []models.Product{}
	if needle == "" {
		return out
	}
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out
}
