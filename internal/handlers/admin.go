package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"costumes_back_end/internal/models"
	"costumes_back_end/internal/services"
	"costumes_back_end/internal/store"
	"costumes_back_end/internal/utils"
)

// 🔐 POST /api/admin/login
func (h *Handler) AdminLogin(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		abort(c, http.StatusBadRequest, "Mot de passe requis")
		return
	}
	if !h.Admin.Configured() || h.JWTSecret == "" {
		abort(c, http.StatusServiceUnavailable, "Connexion admin non configurée")
		return
	}
	if !h.Admin.Check(input.Password) {
		log.Printf("⚠️ Échec de connexion admin depuis %s", c.ClientIP())
		abort(c, http.StatusUnauthorized, "Mot de passe incorrect")
		return
	}

	now := h.now()
	token, err := utils.GenerateAdminJWT(h.JWTSecret, now)
	if err != nil {
		log.Printf("❌ Erreur génération JWT: %v", err)
		abort(c, http.StatusInternalServerError, "Erreur génération du token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": now.Add(utils.AdminTokenTTL).Unix(),
	})
}

type productInput struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
}

// 🟢 POST /api/admin/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abort(c, http.StatusBadRequest, "Le champ 'name' est obligatoire")
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		abort(c, http.StatusBadRequest, "Le champ 'name' est obligatoire")
		return
	}
	if input.Price < 0 {
		abort(c, http.StatusBadRequest, "Le prix doit être positif")
		return
	}

	p := models.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
		Category:    input.Category,
		Sizes:       input.Sizes,
		Colors:      input.Colors,
	}
	h.Store.AddProduct(p)
	c.JSON(http.StatusCreated, p)
}

// 🟡 PATCH /api/admin/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abort(c, http.StatusBadRequest, "Données invalides")
		return
	}
	if patch.Empty() {
		abort(c, http.StatusBadRequest, "Aucune modification fournie")
		return
	}
	if patch.Price != nil && *patch.Price < 0 {
		abort(c, http.StatusBadRequest, "Le prix doit être positif")
		return
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		abort(c, http.StatusBadRequest, "Le champ 'name' est obligatoire")
		return
	}

	id := c.Param("id")
	if !h.Store.UpdateProduct(id, patch) {
		abort(c, http.StatusNotFound, "Produit introuvable")
		return
	}
	p, _ := h.Store.Product(id)
	c.JSON(http.StatusOK, p)
}

// 🔴 DELETE /api/admin/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	if !h.Store.DeleteProduct(c.Param("id")) {
		abort(c, http.StatusNotFound, "Produit introuvable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

// 🟢 POST /api/admin/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		abort(c, http.StatusBadRequest, "Données invalides")
		return
	}

	cat := models.Category{ID: uuid.NewString(), Name: strings.TrimSpace(input.Name)}
	err := h.Store.AddCategory(cat)
	switch {
	case errors.Is(err, store.ErrCategoryExists):
		abort(c, http.StatusConflict, "Cette catégorie existe déjà")
		return
	case errors.Is(err, store.ErrInvalidCategory):
		abort(c, http.StatusBadRequest, "Le nom de la catégorie est requis")
		return
	case err != nil:
		abort(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// 🔴 DELETE /api/admin/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	if !h.Store.DeleteCategory(c.Param("id")) {
		abort(c, http.StatusNotFound, "Catégorie introuvable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}

// 📋 GET /api/admin/orders
func (h *Handler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Orders())
}

// 🟡 PATCH /api/admin/orders/:id/status
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		abort(c, http.StatusBadRequest, "Statut requis")
		return
	}

	id := c.Param("id")
	found, err := h.Store.UpdateOrderStatus(id, input.Status)
	if errors.Is(err, store.ErrInvalidStatus) {
		abort(c, http.StatusBadRequest, "Statut invalide (pending, completed ou cancelled)")
		return
	}
	if !found {
		abort(c, http.StatusNotFound, "Commande introuvable")
		return
	}
	order, _ := h.Store.Order(id)
	c.JSON(http.StatusOK, order)
}

// 📧 POST /api/admin/orders/:id/notify
func (h *Handler) NotifyOrder(c *gin.Context) {
	order, ok := h.Store.Order(c.Param("id"))
	if !ok {
		abort(c, http.StatusNotFound, "Commande introuvable")
		return
	}

	err := h.Mailer.SendOrderStatus(order)
	if errors.Is(err, services.ErrMailDisabled) {
		abort(c, http.StatusServiceUnavailable, "Envoi d'e-mails désactivé")
		return
	}
	if err != nil {
		abort(c, http.StatusBadGateway, "Échec de l'envoi de l'e-mail")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client notifié par e-mail"})
}

// 📊 GET /api/admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Stats())
}
