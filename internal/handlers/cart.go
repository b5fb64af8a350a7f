package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) cartResponse(c *gin.Context, status int) {
	c.JSON(status, gin.H{
		"items": h.Store.Cart(),
		"total": h.Store.CartTotal(),
		"count": h.Store.CartCount(),
	})
}

// 🛒 GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	h.cartResponse(c, http.StatusOK)
}

// 🟢 POST /api/cart
func (h *Handler) AddToCart(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		abort(c, http.StatusBadRequest, "Données invalides")
		return
	}

	p, ok := h.Store.Product(input.ProductID)
	if !ok {
		abort(c, http.StatusNotFound, "Produit introuvable")
		return
	}
	if input.Size != "" && len(p.Sizes) > 0 && !p.HasSize(input.Size) {
		abort(c, http.StatusBadRequest, "Taille indisponible")
		return
	}
	if input.Color != "" && len(p.Colors) > 0 && !p.HasColor(input.Color) {
		abort(c, http.StatusBadRequest, "Couleur indisponible")
		return
	}

	h.Store.AddToCart(p, input.Size, input.Color)
	h.cartResponse(c, http.StatusOK)
}

// 🟡 PUT /api/cart/:productId
func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	var input struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		abort(c, http.StatusBadRequest, "Quantité requise")
		return
	}

	h.Store.UpdateQuantity(c.Param("productId"), *input.Quantity)
	h.cartResponse(c, http.StatusOK)
}

// 🔴 DELETE /api/cart/:productId
func (h *Handler) RemoveFromCart(c *gin.Context) {
	h.Store.RemoveFromCart(c.Param("productId"))
	h.cartResponse(c, http.StatusOK)
}

// 🔴 DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	h.Store.ClearCart()
	h.cartResponse(c, http.StatusOK)
}
